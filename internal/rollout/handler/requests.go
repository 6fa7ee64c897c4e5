package handler

import (
	dErrors "switchyard/pkg/domain-errors"
)

// UpdateRolloutRequest is the HTTP request body for PUT /admin/rollout.
// All fields are optional; absent fields keep their current value.
type UpdateRolloutRequest struct {
	Enabled        *bool `json:"enabled"`
	Percentage     *int  `json:"percentage"`
	PublishResults *bool `json:"publish_results"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
// Range checking happens at the service's write boundary; the handler only
// rejects bodies that change nothing.
func (r *UpdateRolloutRequest) Validate() error {
	if r.Enabled == nil && r.Percentage == nil && r.PublishResults == nil {
		return dErrors.New(dErrors.CodeValidation, "at least one field is required")
	}
	return nil
}

// UpdateEligibilityRequest is the HTTP request body for
// PUT /admin/rollout/eligibility. All fields are optional; list fields
// replace the stored set when present (an empty list clears it).
type UpdateEligibilityRequest struct {
	CriteriaValidationActive *bool    `json:"criteria_validation_active"`
	MultipleCriteriaEnabled  *bool    `json:"multiple_criteria_enabled"`
	AllowedSubjectTypes      []string `json:"allowed_subject_types"`
	AllowedAllowlistIDs      []string `json:"allowed_allowlist_ids"`
	AllowedRegions           []string `json:"allowed_regions"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *UpdateEligibilityRequest) Validate() error {
	if r.CriteriaValidationActive == nil && r.MultipleCriteriaEnabled == nil &&
		r.AllowedSubjectTypes == nil && r.AllowedAllowlistIDs == nil && r.AllowedRegions == nil {
		return dErrors.New(dErrors.CodeValidation, "at least one field is required")
	}
	for _, list := range [][]string{r.AllowedSubjectTypes, r.AllowedAllowlistIDs, r.AllowedRegions} {
		if len(list) > 200 {
			return dErrors.New(dErrors.CodeValidation, "list fields accept at most 200 entries")
		}
	}
	return nil
}
