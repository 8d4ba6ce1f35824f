package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStudentIDRule(t *testing.T) {
	t.Parallel()

	type req struct {
		StudentID string `validate:"required,student_id"`
	}

	cv := NewCustomValidator()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"full id", "x123456789", false},
		{"short id", "x12345", false},
		{"bare prefix", "x", false},
		{"missing prefix", "12345", true},
		{"too many digits", "x1234567890", true},
		{"letters after prefix", "xab12", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := cv.Validate(req{StudentID: tt.id})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
