package handler

import (
	"switchyard/internal/rollout/models"
)

// RolloutResponse is the HTTP representation of the rollout state.
type RolloutResponse struct {
	Enabled        bool `json:"enabled"`
	Percentage     int  `json:"percentage"`
	PublishResults bool `json:"publish_results"`
}

// FromRolloutConfig converts the domain config to an HTTP response.
func FromRolloutConfig(cfg models.RolloutConfig) RolloutResponse {
	return RolloutResponse{
		Enabled:        cfg.Enabled,
		Percentage:     cfg.Percentage,
		PublishResults: cfg.PublishResults,
	}
}

// EligibilityResponse is the HTTP representation of the criteria config.
type EligibilityResponse struct {
	CriteriaValidationActive bool     `json:"criteria_validation_active"`
	MultipleCriteriaEnabled  bool     `json:"multiple_criteria_enabled"`
	AllowedSubjectTypes      []string `json:"allowed_subject_types"`
	AllowedAllowlistIDs      []string `json:"allowed_allowlist_ids"`
	AllowedRegions           []string `json:"allowed_regions"`
}

// FromEligibilityConfig converts the domain config to an HTTP response.
func FromEligibilityConfig(cfg models.EligibilityConfig) EligibilityResponse {
	return EligibilityResponse{
		CriteriaValidationActive: cfg.CriteriaValidationActive,
		MultipleCriteriaEnabled:  cfg.MultipleCriteriaEnabled,
		AllowedSubjectTypes:      emptyIfNil(cfg.AllowedSubjectTypes),
		AllowedAllowlistIDs:      emptyIfNil(cfg.AllowedAllowlistIDs),
		AllowedRegions:           emptyIfNil(cfg.AllowedRegions),
	}
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
