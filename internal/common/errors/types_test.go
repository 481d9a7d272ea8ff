package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name:     "simple validation error",
			err:      ValidationError("ts must match timestamp format"),
			contains: []string{"validation", "ts must match timestamp format"},
		},
		{
			name:     "auth error",
			err:      AuthError("signature mismatch"),
			contains: []string{"authentication", "signature mismatch"},
		},
		{
			name:     "storage error with cause",
			err:      StorageError("insert failed", fmt.Errorf("disk I/O error")),
			contains: []string{"storage", "insert failed", "cause=disk I/O error"},
		},
		{
			name:     "error with context",
			err:      StorageError("insert failed", nil).WithContext("message_id", "msg_001"),
			contains: []string{"storage", "message_id=msg_001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Error() = %q, want substring %q", got, want)
				}
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := StorageError("ping failed", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is() = false, want true for wrapped cause")
	}

	if ValidationError("bad payload").Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause is set")
	}
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"matching type", AuthError("missing signature"), ErrTypeAuth, true},
		{"different type", AuthError("missing signature"), ErrTypeValidation, false},
		{"plain error", fmt.Errorf("plain"), ErrTypeInternal, false},
		{"nil error", nil, ErrTypeAuth, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsType(tt.err, tt.errType); got != tt.want {
				t.Errorf("IsType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetType(t *testing.T) {
	if got := GetType(ValidationError("x")); got != ErrTypeValidation {
		t.Errorf("GetType() = %v, want %v", got, ErrTypeValidation)
	}

	if got := GetType(fmt.Errorf("plain")); got != ErrTypeInternal {
		t.Errorf("GetType() = %v, want %v for non-AppError", got, ErrTypeInternal)
	}

	if got := GetType(nil); got != ErrorType("") {
		t.Errorf("GetType() = %v, want empty for nil", got)
	}
}
