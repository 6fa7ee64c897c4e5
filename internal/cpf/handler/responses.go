package handler

import "switchyard/internal/cpf/service"

// FormatResponse is the HTTP response body for POST /cpf/format.
type FormatResponse struct {
	Formatted string `json:"formatted"`
	Eligible  bool   `json:"eligible"`
	Reason    string `json:"reason"`
}

// FromResult maps a service result to its response representation.
func FromResult(res service.FormatResult) FormatResponse {
	return FormatResponse{
		Formatted: res.Formatted,
		Eligible:  res.Verdict.Eligible,
		Reason:    res.Verdict.Reason,
	}
}
