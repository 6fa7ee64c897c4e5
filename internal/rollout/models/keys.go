package models

// Config store keys. Values are scalars or comma-joined lists; there is no
// multi-key transactional guarantee, so each key stands alone.
const (
	KeyRolloutEnabled      = "rollout:enabled"
	KeyRolloutPercentage   = "rollout:percentage"
	KeyPublishResults      = "rollout:publish-results"
	KeyCriteriaActive      = "eligibility:criteria-active"
	KeyMultipleCriteria    = "eligibility:multiple-criteria"
	KeyAllowedSubjectTypes = "eligibility:allowed-subject-types"
	KeyAllowedAllowlistIDs = "eligibility:allowed-allowlist-ids"
	KeyAllowedRegions      = "eligibility:allowed-regions"
)
