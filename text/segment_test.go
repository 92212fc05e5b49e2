package text

import "testing"

func TestParagraphDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"empty", "", DirectionLTR},
		{"latin", "Hello, world", DirectionLTR},
		{"digits only", "12345", DirectionLTR},
		{"hebrew", "שלום", DirectionRTL},
		{"arabic", "مرحبا", DirectionRTL},
		{"rtl with trailing latin", "שלום abc", DirectionRTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParagraphDirection(tt.text); got != tt.want {
				t.Errorf("ParagraphDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	if DirectionLTR.String() != "ltr" || DirectionRTL.String() != "rtl" {
		t.Errorf("Direction strings = %q, %q", DirectionLTR, DirectionRTL)
	}
}

func TestSplitRunsEmpty(t *testing.T) {
	if runs := SplitRuns(""); runs != nil {
		t.Errorf("SplitRuns(\"\") = %v, want nil", runs)
	}
}

func TestSplitRunsSingleDirection(t *testing.T) {
	runs := SplitRuns("plain latin text")
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Direction != DirectionLTR {
		t.Errorf("direction = %v, want ltr", r.Direction)
	}
	if r.Start != 0 || r.End != len("plain latin text") {
		t.Errorf("run spans [%d,%d), want the whole string", r.Start, r.End)
	}
}

func TestSplitRunsMixed(t *testing.T) {
	text := "abc שלום xyz"
	runs := SplitRuns(text)
	if len(runs) < 2 {
		t.Fatalf("got %d runs, want at least 2", len(runs))
	}

	var sawRTL, sawLTR bool
	total := 0
	for _, r := range runs {
		if r.Text != text[r.Start:r.End] {
			t.Errorf("run text %q does not match offsets [%d,%d)", r.Text, r.Start, r.End)
		}
		total += r.End - r.Start
		switch r.Direction {
		case DirectionRTL:
			sawRTL = true
		case DirectionLTR:
			sawLTR = true
		}
	}
	if total != len(text) {
		t.Errorf("runs cover %d bytes, want %d", total, len(text))
	}
	if !sawRTL || !sawLTR {
		t.Errorf("runs = %+v, want both directions present", runs)
	}
}
