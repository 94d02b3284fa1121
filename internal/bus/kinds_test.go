package bus

import (
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
		{"transient", wrap(KindTransient, errNotConnected), KindTransient},
		{"loop", wrap(KindLoop, errNotConnected), KindLoop},
		{"reconnect", wrap(KindReconnect, errors.New("refused")), KindReconnect},
		{"wrapped", fmt.Errorf("session: %w", wrap(KindLoop, errNotConnected)), KindLoop},
		{"unclassified", errors.New("surprise"), KindFatal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("%s: expected kind %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := wrap(KindLoop, errNotConnected)
	if !errors.Is(err, errNotConnected) {
		t.Error("wrapped error should match the underlying sentinel")
	}
	msg := err.Error()
	if msg != "bus loop failure: not connected to broker" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestKindString(t *testing.T) {
	if KindTransient.String() != "transient" || KindReconnect.String() != "reconnect" {
		t.Error("unexpected kind names")
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("unexpected fallback name: %s", Kind(42))
	}
}
