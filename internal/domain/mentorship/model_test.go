package mentorship

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusCompleted, false},
		{StatusAccepted, StatusCompleted, true},
		{StatusAccepted, StatusDeclined, false},
		{StatusAccepted, StatusPending, false},
		{StatusDeclined, StatusAccepted, false},
		{StatusDeclined, StatusPending, false},
		{StatusCompleted, StatusAccepted, false},
		{StatusCompleted, StatusPending, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if st, ok := ParseStatus("pending"); !ok || st != StatusPending {
		t.Errorf("ParseStatus(pending) = %v, %v", st, ok)
	}
	if st, ok := ParseStatus(" ACCEPTED "); !ok || st != StatusAccepted {
		t.Errorf("ParseStatus( ACCEPTED ) = %v, %v", st, ok)
	}
	if _, ok := ParseStatus("reopened"); ok {
		t.Error("ParseStatus(reopened) should not parse")
	}
	if _, ok := ParseStatus(""); ok {
		t.Error("ParseStatus(empty) should not parse")
	}
}
