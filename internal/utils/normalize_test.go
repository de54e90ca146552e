package utils

import "testing"

func TestContainsFold(t *testing.T) {
	cases := []struct {
		s, q string
		want bool
	}{
		{"POSTER", "post", true},
		{"poster", "POST", true},
		{"Desain Póster", "poster", true},
		{"UI/UX Design", "ux", true},
		{"Data Science", "web", false},
		{"anything", "", true},
		{"anything", "   ", true},
		{"", "x", false},
	}
	for _, c := range cases {
		if got := ContainsFold(c.s, c.q); got != c.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", c.s, c.q, got, c.want)
		}
	}
}

func TestTrimMax(t *testing.T) {
	if got := TrimMax("  hello  ", 3); got != "hel" {
		t.Errorf("TrimMax = %q", got)
	}
	if got := TrimMax("hi", 10); got != "hi" {
		t.Errorf("TrimMax = %q", got)
	}
}
