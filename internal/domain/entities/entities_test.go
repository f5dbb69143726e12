package entities

import "testing"

func TestLooseFloat_StripsNonNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"6.5", 6.5},
		{"6.5 LPA", 6.5},
		{"Rs 9", 9},
		{"Rs. 9", 0.9}, // the dot survives stripping and joins the digit
		{"12", 12},
		{"", 0},
		{"n/a", 0},
		{"about twelve", 0},
	}
	for _, c := range cases {
		if got := LooseFloat(c.in); got != c.want {
			t.Errorf("LooseFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLooseInt_Truncates(t *testing.T) {
	if got := LooseInt("12 offers"); got != 12 {
		t.Errorf("got %d, want 12", got)
	}
	if got := LooseInt("3.9"); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	if got := LooseInt("garbage"); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestYearSpan(t *testing.T) {
	cases := []struct {
		start int
		want  string
	}{
		{2024, "2024-25"},
		{2023, "2023-24"},
		{1999, "1999-00"},
		{2099, "2099-00"},
	}
	for _, c := range cases {
		if got := YearSpan(c.start); got != c.want {
			t.Errorf("YearSpan(%d) = %q, want %q", c.start, got, c.want)
		}
	}
}

func TestFormatLPA_NoTrailingZeros(t *testing.T) {
	if got := FormatLPA(6.5); got != "6.5" {
		t.Errorf("got %q, want 6.5", got)
	}
	if got := FormatLPA(9); got != "9" {
		t.Errorf("got %q, want 9", got)
	}
	if got := FormatLPA(10.25); got != "10.25" {
		t.Errorf("got %q, want 10.25", got)
	}
}

func TestReply_Empty(t *testing.T) {
	if !(Reply{}).Empty() {
		t.Error("zero reply should be empty")
	}
	if !(Reply{Text: "   "}).Empty() {
		t.Error("whitespace-only reply should be empty")
	}
	if (Reply{Text: "hi"}).Empty() {
		t.Error("non-blank reply should not be empty")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Who Is The HOD?  "); got != "who is the hod?" {
		t.Errorf("got %q", got)
	}
}
