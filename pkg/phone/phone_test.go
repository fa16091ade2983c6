package phone_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaleh/formgate/pkg/phone"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"saudi local with leading zero", "0501234567", "966501234567"},
		{"saudi canonical unchanged", "966501234567", "966501234567"},
		{"saudi bare mobile", "501234567", "966501234567"},
		{"saudi with plus", "+966501234567", "966501234567"},
		{"saudi with spaces and dashes", "050-123 4567", "966501234567"},
		{"egypt canonical unchanged", "201012345678", "201012345678"},
		{"egypt local with leading zero", "01012345678", "201012345678"},
		{"egypt bare mobile", "1012345678", "201012345678"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := phone.Normalize(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"unrecognized prefix", "123456789"},
		{"empty", ""},
		{"letters", "05012a4567"},
		{"saudi too short", "96650123456"},
		{"saudi wrong mobile prefix", "966401234567"},
		{"egypt wrong length", "2010123456"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := phone.Normalize(tc.input)
			require.Error(t, err)

			var fmtErr *phone.FormatError
			assert.True(t, errors.As(err, &fmtErr))
		})
	}
}
