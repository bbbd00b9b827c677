package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic trim",
			input: "  hello  ",
			want:  "hello",
		},
		{
			name:  "multiple spaces between words",
			input: "Oil    Change",
			want:  "Oil Change",
		},
		{
			name:  "tabs and newlines",
			input: "Brake\t\nInspection",
			want:  "Brake Inspection",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café Détailing™ ",
			want:  "Café Détailing™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeServiceType(t *testing.T) {
	if got := NormalizeServiceType("  full   detail "); got != "full detail" {
		t.Errorf("NormalizeServiceType() = %q, want %q", got, "full detail")
	}
}
