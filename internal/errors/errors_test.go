package errors

import (
	stderrors "errors"
	"testing"

	"connscore/domain/core"
)

func TestWrapPreservesValidationCode(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		wantCode string
	}{
		{
			name:     "domain validation sentinel",
			cause:    core.ErrInvalidPopulation,
			wantCode: CodeValidationError,
		},
		{
			name:     "wrapped domain validation",
			cause:    core.NewWindowError(5, 8, 10),
			wantCode: CodeValidationError,
		},
		{
			name:     "plain error",
			cause:    stderrors.New("disk on fire"),
			wantCode: CodeInternalError,
		},
		{
			name:     "existing app error keeps its code",
			cause:    InvalidInput("bad kind"),
			wantCode: CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.cause, "sweep failed")
			if got := GetCode(wrapped); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
			if !stderrors.Is(wrapped, tt.cause) {
				t.Error("wrapped error lost its cause chain")
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil must return nil")
	}
}
