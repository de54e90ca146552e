package mentor

import "testing"

func TestFilterMentors(t *testing.T) {
	list := []Mentor{
		{ID: "1", Name: "Budi", Peminatan: "Desain POSTER"},
		{ID: "2", Name: "Sari Poster", Peminatan: "UI/UX"},
		{ID: "3", Name: "Andi", Peminatan: "Data Science"},
	}

	got := filterMentors(list, "post")
	if len(got) != 2 {
		t.Fatalf("filter(post) returned %d mentors, want 2", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("filter(post) = %v", got)
	}

	if got := filterMentors(list, "SCIENCE"); len(got) != 1 || got[0].ID != "3" {
		t.Errorf("filter(SCIENCE) = %v, want mentor 3 only", got)
	}

	if got := filterMentors(list, ""); len(got) != 3 {
		t.Errorf("empty query filtered the list: %v", got)
	}

	if got := filterMentors(list, "zzz"); len(got) != 0 {
		t.Errorf("filter(zzz) = %v, want empty", got)
	}
}
