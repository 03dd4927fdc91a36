package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBalanceSnapshotDerive(t *testing.T) {
	s := NewBalanceSnapshot()
	s.Time = decimal.NewFromInt(1000)
	s.TimeAdjustments = decimal.NewFromInt(-100)
	s.Disbursements = decimal.NewFromInt(200)
	s.Fees = decimal.NewFromInt(50)
	s.Provision = decimal.NewFromInt(30)
	s.Derive()

	if !s.GrossWip.Equal(decimal.NewFromInt(1050)) {
		t.Errorf("expected gross wip 1050, got %s", s.GrossWip)
	}
	if !s.NetWip.Equal(decimal.NewFromInt(1080)) {
		t.Errorf("expected net wip 1080, got %s", s.NetWip)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected invariant error: %v", err)
	}
}

func TestBalanceSnapshotValidateDetectsDrift(t *testing.T) {
	s := NewBalanceSnapshot()
	s.Time = decimal.NewFromInt(100)
	s.Derive()
	s.GrossWip = s.GrossWip.Add(decimal.NewFromInt(1))

	if err := s.Validate(); err == nil {
		t.Fatal("expected invariant violation, got nil")
	}
}

func TestSnapshotResultRoundTrip(t *testing.T) {
	s := NewBalanceSnapshot()
	s.Time = decimal.RequireFromString("123.45")
	s.Derive()

	res := &SnapshotResult{
		EntityKind: EntityTask,
		EntityID:   "T-1",
		Dimension:  DimensionOverall,
		Overall:    s,
	}

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got SnapshotResult
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !got.Overall.Time.Equal(s.Time) {
		t.Errorf("expected time %s, got %s", s.Time, got.Overall.Time)
	}
	if !got.Overall.GrossWip.Equal(s.GrossWip) {
		t.Errorf("expected gross wip %s, got %s", s.GrossWip, got.Overall.GrossWip)
	}
}

func TestParseEntityKind(t *testing.T) {
	tests := []struct {
		in      string
		want    EntityKind
		wantErr bool
	}{
		{"task", EntityTask, false},
		{"client", EntityClient, false},
		{"firm", EntityFirm, false},
		{"Task", "", true},
		{"", "", true},
		{"partner", "", true},
	}

	for _, tt := range tests {
		got, err := ParseEntityKind(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseEntityKind(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEntityKind(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseEntityKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDimension(t *testing.T) {
	if d, err := ParseDimension(""); err != nil || d != DimensionOverall {
		t.Errorf("empty dimension should default to overall, got %q err %v", d, err)
	}
	if _, err := ParseDimension("aging"); err == nil {
		t.Error("aging is not a snapshot dimension and must not parse")
	}
	if _, err := ParseDimension("per_partner"); err == nil {
		t.Error("expected error for unknown dimension")
	}
}
