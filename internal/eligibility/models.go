package eligibility

import "strings"

// Attribute keys recognized in criteria maps.
const (
	// AttrAllowlistID carries the identifier checked against the configured
	// allowlist (a national ID in the demo domain). Contextual.
	AttrAllowlistID = "allowlist_id"
	// AttrCheckExternal requests a check against the external eligibility
	// service. Contextual.
	AttrCheckExternal = "check_external"
	// AttrRegion carries the subject's region. Contextual.
	AttrRegion = "region"
	// AttrPurchaseHistory flags whether the subject has purchase history.
	// Behavioral.
	AttrPurchaseHistory = "has_purchase_history"
)

// Criteria is an immutable snapshot of a request's subject, built fresh per
// call. Attribute maps are free-form; the policy only interprets the keys
// above.
type Criteria struct {
	SubjectID   int64
	SubjectType string
	Behavioral  map[string]any
	Contextual  map[string]any
}

// AllowlistID returns the raw allowlist identifier, empty when absent.
func (c Criteria) AllowlistID() string {
	s, _ := c.Contextual[AttrAllowlistID].(string)
	return s
}

// CheckExternal reports whether the criteria request an external check.
func (c Criteria) CheckExternal() bool {
	return truthy(c.Contextual[AttrCheckExternal])
}

// Region returns the subject's region attribute, empty when absent.
func (c Criteria) Region() string {
	s, _ := c.Contextual[AttrRegion].(string)
	return s
}

// Verdict is the outcome of one policy evaluation. The reason is a human
// diagnostic, never parsed downstream, and the verdict is never persisted.
type Verdict struct {
	Eligible bool
	Reason   string
}

func eligible(reason string) Verdict {
	return Verdict{Eligible: true, Reason: reason}
}

func ineligible(reason string) Verdict {
	return Verdict{Eligible: false, Reason: reason}
}

// truthy interprets the loose attribute values that arrive through JSON:
// booleans, "true"/"1" strings, and non-zero numbers count as true.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1" || s == "yes"
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return false
	}
}

// NormalizeIdentifier strips everything but letters and digits so formatted
// identifiers ("123.456.789-09") compare equal to their bare form.
func NormalizeIdentifier(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
