package chat

import (
	"testing"
	"time"
)

func TestDirectRoomIDSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"u1", "m1"},
		{"m1", "u1"},
		{"alice", "bob"},
		{"zz", "aa"},
		{"a", "a"},
	}
	for _, p := range pairs {
		if got, want := DirectRoomID(p[0], p[1]), DirectRoomID(p[1], p[0]); got != want {
			t.Errorf("DirectRoomID(%q,%q)=%q but reversed gives %q", p[0], p[1], got, want)
		}
	}
}

func TestDirectRoomIDSorted(t *testing.T) {
	if got := DirectRoomID("u1", "m1"); got != "m1_u1" {
		t.Errorf("DirectRoomID(u1,m1) = %q, want m1_u1", got)
	}
	if got := DirectRoomID("m1", "u1"); got != "m1_u1" {
		t.Errorf("DirectRoomID(m1,u1) = %q, want m1_u1", got)
	}
}

func TestNewDirectRoomDoc(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id, doc := NewDirectRoomDoc("u1", "m1", now)

	if id != "m1_u1" {
		t.Fatalf("room id = %q, want m1_u1", id)
	}
	if doc["type"] != RoomTypeDirect {
		t.Errorf("type = %v, want %s", doc["type"], RoomTypeDirect)
	}

	participants, ok := doc["participants"].([]string)
	if !ok || len(participants) != 2 {
		t.Fatalf("participants = %v, want exactly the two users", doc["participants"])
	}

	unread, ok := doc["unreadCount"].(map[string]int64)
	if !ok {
		t.Fatalf("unreadCount missing or wrong type: %v", doc["unreadCount"])
	}
	for _, uid := range []string{"u1", "m1"} {
		if n, ok := unread[uid]; !ok || n != 0 {
			t.Errorf("unreadCount[%s] = %d (present=%v), want zero seed", uid, n, ok)
		}
	}
}

func TestUnionParticipantsIdempotent(t *testing.T) {
	cur := []string{"a", "b", "c"}

	once := unionParticipants(cur, []string{"c", "d", "d", "e"})
	twice := unionParticipants(once, []string{"c", "d", "d", "e"})

	want := []string{"a", "b", "c", "d", "e"}
	if len(once) != len(want) {
		t.Fatalf("union = %v, want %v", once, want)
	}
	for i := range want {
		if once[i] != want[i] {
			t.Fatalf("union = %v, want %v", once, want)
		}
	}
	if len(twice) != len(once) {
		t.Errorf("second union grew the set: %v -> %v", once, twice)
	}
}

// Stored participant arrays come from a shared collection other writers
// also touch, so a duplicated uid in the document must not hide a real
// addition or leak into the unread-counter seeds.
func TestNewParticipantsWithDuplicatedStoredUID(t *testing.T) {
	stored := []string{"a", "a", "b"}

	added := newParticipants(stored, []string{"c"})
	if len(added) != 1 || added[0] != "c" {
		t.Fatalf("newParticipants(%v, [c]) = %v, want [c]", stored, added)
	}

	merged := unionParticipants(stored, added)
	want := []string{"a", "b", "c"}
	if len(merged) != len(want) {
		t.Fatalf("union = %v, want %v", merged, want)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Fatalf("union = %v, want %v", merged, want)
		}
	}

	if again := newParticipants(merged, []string{"c", "b"}); len(again) != 0 {
		t.Errorf("re-adding existing members yields %v, want none", again)
	}
	if blanks := newParticipants(stored, []string{"", "  ", "a"}); len(blanks) != 0 {
		t.Errorf("blank and existing ids yield %v, want none", blanks)
	}
}

func TestUnionParticipantsSkipsBlank(t *testing.T) {
	got := unionParticipants([]string{"a"}, []string{"", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("union = %v, want [a b]", got)
	}
}
