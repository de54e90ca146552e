package chat

import (
	"context"
	"errors"
	"testing"
)

// Group-creation validation runs before any storage access, so these paths
// are exercised against a nil repo.
func TestCreateGroupValidation(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateGroupInput
		want error
	}{
		{"blank name", CreateGroupInput{Name: "  ", MentorID: "m1", MemberIDs: []string{"u1"}}, ErrEmptyName},
		{"no mentor", CreateGroupInput{Name: "Tim Poster", MemberIDs: []string{"u1"}}, ErrNoMentorSelected},
		{"no members", CreateGroupInput{Name: "Tim Poster", MentorID: "m1"}, ErrNoMembersSelected},
		{"members all blank", CreateGroupInput{Name: "Tim Poster", MentorID: "m1", MemberIDs: []string{"", " "}}, ErrNoMembersSelected},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.CreateGroup(ctx, "creator", "Creator", c.in)
			if !errors.Is(err, c.want) {
				t.Errorf("CreateGroup = %v, want %v", err, c.want)
			}
			if !IsErrValidation(err) {
				t.Errorf("expected a typed validation error, got %v", err)
			}
		})
	}
}

func TestSendMessageRequiresContent(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.SendMessage(context.Background(), "u1", "", SendMessageInput{})
	if !IsErrBadRequest(err) {
		t.Errorf("SendMessage with no room = %v, want bad request", err)
	}
}
