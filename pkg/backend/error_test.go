package backend

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), KindTimeout},
		{"typed error keeps kind", &Error{Kind: KindUnparseable}, KindUnparseable},
		{"wrapped typed error", fmt.Errorf("call: %w", &Error{Kind: KindUnsupported}), KindUnsupported},
		{"plain error", errors.New("boom"), KindRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewErrorPreservesExistingKind(t *testing.T) {
	original := &Error{Kind: KindTimeout, Err: errors.New("too slow")}
	got := NewError(KindRequestFailed, fmt.Errorf("wrapped: %w", original))
	if got.Kind != KindTimeout {
		t.Fatalf("expected original kind preserved, got %q", got.Kind)
	}
}

func TestRecoverable(t *testing.T) {
	tests := map[Kind]bool{
		KindTimeout:           true,
		KindRequestFailed:     true,
		KindUnparseable:       true,
		KindUnsupported:       false,
		KindAllAttemptsFailed: false,
	}
	for kind, want := range tests {
		if got := Recoverable(kind); got != want {
			t.Errorf("Recoverable(%s) = %t, want %t", kind, got, want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindRequestFailed, Err: errors.New("upstream 503")}
	if err.Error() != "request_failed: upstream 503" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	statusOnly := &Error{Kind: KindRequestFailed, Status: 429}
	if statusOnly.Error() != "request_failed (status=429)" {
		t.Fatalf("unexpected message %q", statusOnly.Error())
	}
}
