package handler

import (
	"strings"

	"switchyard/internal/cpf/service"
	dErrors "switchyard/pkg/domain-errors"
)

// FormatRequest is the HTTP request body for POST /cpf/format.
type FormatRequest struct {
	SubjectID   int64          `json:"subject_id"`
	SubjectType string         `json:"subject_type"`
	CPF         string         `json:"cpf"`
	Behavioral  map[string]any `json:"behavioral,omitempty"`
	Contextual  map[string]any `json:"contextual,omitempty"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *FormatRequest) Validate() error {
	r.CPF = strings.TrimSpace(r.CPF)
	r.SubjectType = strings.TrimSpace(r.SubjectType)

	if r.CPF == "" {
		return dErrors.New(dErrors.CodeValidation, "cpf is required")
	}
	if r.SubjectID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "subject_id must be positive")
	}
	return nil
}

// ToInput converts the request into the service input.
func (r *FormatRequest) ToInput() service.FormatInput {
	return service.FormatInput{
		SubjectID:   r.SubjectID,
		SubjectType: r.SubjectType,
		CPF:         r.CPF,
		Behavioral:  r.Behavioral,
		Contextual:  r.Contextual,
	}
}
