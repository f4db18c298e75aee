package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "staging", NormalizeName("  Staging "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestValidateNewName(t *testing.T) {
	existing := []string{"dev", "prod"}
	cases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty passes", input: ""},
		{name: "valid", input: "staging"},
		{name: "normalized", input: " QA-1 "},
		{name: "sentinel", input: NewEnvOption, wantErr: ErrReservedName},
		{name: "sentinel padded", input: "  + new env ", wantErr: ErrReservedName},
		{name: "leading digit", input: "1dev", wantErr: ErrInvalidName},
		{name: "spaces inside", input: "my env", wantErr: ErrInvalidName},
		{name: "too long", input: "a234567890123456789012345678901234", wantErr: ErrInvalidName},
		{name: "duplicate", input: "Dev", wantErr: ErrAlreadyExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateNewName(tc.input, existing)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
