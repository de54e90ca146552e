package lomba

import "testing"

func TestFilterLombas(t *testing.T) {
	list := []Lomba{
		{ID: "1", NamaLomba: "Lomba Desain POSTER Nasional", Penyelenggara: "Kemdikbud"},
		{ID: "2", NamaLomba: "Hackathon 2025", Penyelenggara: "Poster Studio"},
		{ID: "3", NamaLomba: "Essay Competition", Penyelenggara: "UI"},
	}

	if got := filterLombas(list, "post"); len(got) != 2 {
		t.Fatalf("filter(post) returned %d entries, want 2", len(got))
	}

	if got := filterLombas(list, "HACKATHON"); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("filter(HACKATHON) = %v", got)
	}

	if got := filterLombas(list, ""); len(got) != 3 {
		t.Errorf("empty query filtered the list: %v", got)
	}
}
