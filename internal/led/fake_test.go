package led

import (
	"errors"
	"testing"
)

func TestFakeStripRecordsOps(t *testing.T) {
	f := NewFakeStrip()

	if err := f.SetEnabled(true); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if err := f.SetBrightness(1.0); err != nil {
		t.Fatalf("SetBrightness: %v", err)
	}
	if err := f.Fill(Green); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if !f.Enabled || f.Brightness != 1.0 || f.Color != Green {
		t.Errorf("unexpected final state: %+v", f)
	}
	if len(f.Ops) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(f.Ops))
	}
	if f.Ops[0].Kind != "enable" || f.Ops[1].Kind != "brightness" || f.Ops[2].Kind != "fill" {
		t.Errorf("unexpected op order: %+v", f.Ops)
	}
}

func TestFakeStripError(t *testing.T) {
	f := NewFakeStrip()
	f.Err = errors.New("boom")

	if err := f.SetEnabled(true); err == nil {
		t.Error("expected error from SetEnabled")
	}
	if len(f.Ops) != 0 {
		t.Errorf("failed calls should not be recorded, got %+v", f.Ops)
	}
}

func TestFakeStripReset(t *testing.T) {
	f := NewFakeStrip()
	f.SetEnabled(true)
	f.Fill(White)
	f.Close()

	f.Reset()
	if f.Enabled || f.Closed || len(f.Ops) != 0 || f.Color != (RGB{}) {
		t.Errorf("Reset did not clear state: %+v", f)
	}
}
