package models

import "strings"

// RolloutConfig is the live rollout state read from the shared config store.
// Every evaluation re-reads it, so operator changes take effect on the next
// call without a restart.
type RolloutConfig struct {
	Enabled        bool
	Percentage     int
	PublishResults bool
}

// EligibilityConfig holds the layered criteria configuration. Set membership
// is case-insensitive throughout.
type EligibilityConfig struct {
	CriteriaValidationActive bool
	MultipleCriteriaEnabled  bool
	AllowedSubjectTypes      []string
	AllowedAllowlistIDs      []string
	AllowedRegions           []string
}

// SubjectTypeAllowed reports whether subjectType passes the allowed-types
// check. An empty allowlist passes everything.
func (c EligibilityConfig) SubjectTypeAllowed(subjectType string) bool {
	return memberOrEmpty(c.AllowedSubjectTypes, subjectType)
}

// AllowlistIDAllowed reports whether the normalized identifier passes the
// allowlist check. An empty allowlist passes everything.
func (c EligibilityConfig) AllowlistIDAllowed(normalizedID string) bool {
	return memberOrEmpty(c.AllowedAllowlistIDs, normalizedID)
}

// RegionAllowed reports whether region passes the allowed-regions check.
// An empty allowlist passes everything.
func (c EligibilityConfig) RegionAllowed(region string) bool {
	return memberOrEmpty(c.AllowedRegions, region)
}

func memberOrEmpty(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, member := range set {
		if strings.EqualFold(strings.TrimSpace(member), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}
