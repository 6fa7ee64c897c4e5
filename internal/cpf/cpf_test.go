package cpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "switchyard/pkg/domain-errors"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "12345678909", Normalize("123.456.789-09"))
	assert.Equal(t, "12345678909", Normalize(" 123 456 789 09 "))
	assert.Equal(t, "", Normalize("---"))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "bare valid", input: "12345678909", want: true},
		{name: "formatted valid", input: "123.456.789-09", want: true},
		{name: "another valid", input: "111.444.777-35", want: true},
		{name: "wrong check digit", input: "12345678900", want: false},
		{name: "wrong first check digit", input: "12345678919", want: false},
		{name: "repeated digits", input: "111.111.111-11", want: false},
		{name: "too short", input: "1234567890", want: false},
		{name: "too long", input: "123456789091", want: false},
		{name: "empty", input: "", want: false},
		{name: "letters only", input: "abcdefghijk", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Valid(tc.input))
		})
	}
}

func TestFormatLegacy(t *testing.T) {
	got, err := FormatLegacy("12345678909")
	require.NoError(t, err)
	assert.Equal(t, "123.456.789-09", got)

	got, err = FormatLegacy("123.456.789-09")
	require.NoError(t, err)
	assert.Equal(t, "123.456.789-09", got)
}

func TestFormatLegacy_Invalid(t *testing.T) {
	_, err := FormatLegacy("11111111111")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
}

func TestFormat(t *testing.T) {
	got, err := Format("111.444.777-35")
	require.NoError(t, err)
	assert.Equal(t, "111.444.777-35", got)
}

func TestFormat_Invalid(t *testing.T) {
	_, err := Format("not a cpf")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
}

// The two formatters must agree on every valid input; the comparison engine
// treats any divergence as a mismatch.
func TestFormattersAgree(t *testing.T) {
	for _, input := range []string{
		"12345678909",
		"123.456.789-09",
		"111.444.777-35",
		"111444777-35",
	} {
		legacy, err := FormatLegacy(input)
		require.NoError(t, err)
		modern, err := Format(input)
		require.NoError(t, err)
		assert.Equal(t, legacy, modern, "input %q", input)
	}
}
