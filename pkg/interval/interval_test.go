package interval

import "testing"

func TestToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9:30", 0, true},
		{"09:3", 0, true},
		{"0930", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
		{"12-30", 0, true},
		{"10:3a", 0, true},
		{"10:5x", 0, true},
		{"1a:30", 0, true},
		{"-1:30", 0, true},
		{"10: 3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ToMinutes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToMinutes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 60, 570, 1439} {
		s := FormatMinutes(m)
		got, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("ToMinutes(FormatMinutes(%d)) error = %v", m, err)
		}
		if got != m {
			t.Errorf("round trip %d -> %q -> %d", m, s, got)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical ranges", 600, 660, 600, 660, true},
		{"partial overlap at end", 600, 660, 630, 690, true},
		{"partial overlap at start", 630, 690, 600, 660, true},
		{"containment", 600, 720, 630, 660, true},
		{"touching end to start", 600, 660, 660, 720, false},
		{"touching start to end", 660, 720, 600, 660, false},
		{"disjoint", 600, 660, 720, 780, false},
		{"one minute overlap", 600, 661, 660, 720, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
			// The predicate is symmetric.
			if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %s", tt.name)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-09-07"); err != nil {
		t.Errorf("ParseDate(valid) error = %v", err)
	}
	for _, bad := range []string{"07-09-2026", "2026/09/07", "2026-13-01", "2026-09-32", "tomorrow", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error, got nil", bad)
		}
	}
}

func TestWeekday(t *testing.T) {
	day, err := Weekday("2026-09-07")
	if err != nil {
		t.Fatalf("Weekday() error = %v", err)
	}
	if day != "Monday" {
		t.Errorf("Weekday(2026-09-07) = %s, want Monday", day)
	}
}

func TestAt(t *testing.T) {
	instant, err := At("2026-09-07", "10:30")
	if err != nil {
		t.Fatalf("At() error = %v", err)
	}
	if instant.Hour() != 10 || instant.Minute() != 30 {
		t.Errorf("At() = %v, want 10:30 on the date", instant)
	}
	if instant.Year() != 2026 || instant.Month() != 9 || instant.Day() != 7 {
		t.Errorf("At() date part = %v, want 2026-09-07", instant)
	}
}
