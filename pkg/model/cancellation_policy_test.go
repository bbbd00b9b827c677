package model

import "testing"

func TestNormalizedSortsDescending(t *testing.T) {
	p := CancellationPolicy{
		Tiers: []RefundTier{
			{HoursBefore: 24, RefundPercent: 50},
			{HoursBefore: 72, RefundPercent: 100},
			{HoursBefore: 48, RefundPercent: 75},
			{HoursBefore: 0, RefundPercent: 0},
		},
	}

	tiers := p.Normalized()
	want := []int{72, 48, 24, 0}
	if len(tiers) != len(want) {
		t.Fatalf("Normalized() returned %d tiers, want %d", len(tiers), len(want))
	}
	for i, hours := range want {
		if tiers[i].HoursBefore != hours {
			t.Errorf("tiers[%d].HoursBefore = %d, want %d", i, tiers[i].HoursBefore, hours)
		}
	}
}

func TestNormalizedAppendsTerminalTier(t *testing.T) {
	p := CancellationPolicy{
		Tiers: []RefundTier{
			{HoursBefore: 48, RefundPercent: 100},
		},
	}

	tiers := p.Normalized()
	last := tiers[len(tiers)-1]
	if last.HoursBefore != 0 || last.RefundPercent != 0 {
		t.Errorf("last tier = %+v, want terminal {0, 0}", last)
	}
}

func TestNormalizedDoesNotMutateInput(t *testing.T) {
	p := CancellationPolicy{
		Tiers: []RefundTier{
			{HoursBefore: 24, RefundPercent: 50},
			{HoursBefore: 72, RefundPercent: 100},
		},
	}

	_ = p.Normalized()
	if p.Tiers[0].HoursBefore != 24 {
		t.Error("Normalized() mutated the original tier order")
	}
}
