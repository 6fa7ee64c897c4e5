// Package cpf validates and formats Brazilian CPF numbers. The two
// formatters are the demo control/candidate pair for the rollout engine: the
// legacy one builds the mask by hand, the new one delegates to a regexp.
// Both must produce identical output for every valid input.
package cpf

import (
	"regexp"
	"strings"

	dErrors "switchyard/pkg/domain-errors"
)

var digitsOnly = regexp.MustCompile(`\D`)

var maskPattern = regexp.MustCompile(`^(\d{3})(\d{3})(\d{3})(\d{2})$`)

// Normalize strips every non-digit character.
func Normalize(raw string) string {
	return digitsOnly.ReplaceAllString(raw, "")
}

// Valid reports whether raw is a well-formed CPF with correct check digits.
func Valid(raw string) bool {
	cpf := Normalize(raw)
	if len(cpf) != 11 {
		return false
	}
	// Repeated-digit sequences pass the checksum but are not valid CPFs.
	if strings.Count(cpf, string(cpf[0])) == 11 {
		return false
	}
	return checkDigit(cpf, 9) == int(cpf[9]-'0') &&
		checkDigit(cpf, 10) == int(cpf[10]-'0')
}

// checkDigit computes the verification digit over the first length digits.
func checkDigit(cpf string, length int) int {
	sum := 0
	for i := 0; i < length; i++ {
		sum += int(cpf[i]-'0') * (length + 1 - i)
	}
	rest := sum * 10 % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// FormatLegacy is the trusted formatter: manual slicing into the
// ###.###.###-## mask.
func FormatLegacy(raw string) (string, error) {
	cpf := Normalize(raw)
	if !Valid(cpf) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid CPF")
	}
	var b strings.Builder
	b.Grow(14)
	b.WriteString(cpf[0:3])
	b.WriteByte('.')
	b.WriteString(cpf[3:6])
	b.WriteByte('.')
	b.WriteString(cpf[6:9])
	b.WriteByte('-')
	b.WriteString(cpf[9:11])
	return b.String(), nil
}

// Format is the candidate formatter: regexp-based masking.
func Format(raw string) (string, error) {
	cpf := Normalize(raw)
	if !Valid(cpf) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid CPF")
	}
	return maskPattern.ReplaceAllString(cpf, "$1.$2.$3-$4"), nil
}
