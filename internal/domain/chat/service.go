package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/notify"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/utils"
)

// unreadFanout bounds the parallel per-room unread count queries so a long
// chat list cannot open an unbounded number of concurrent reads.
const unreadFanout = 8

// previewMaxLen caps the denormalized lastMessageText preview; the full
// text lives on the message document.
const previewMaxLen = 120

type Service struct {
	repo      *Repo
	notifySvc *notify.Service // optional push delivery
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// SetNotifier sets the push delivery service for new-message notifications.
func (s *Service) SetNotifier(n *notify.Service) {
	s.notifySvc = n
}

// CreateGroup validates and creates a group room plus its synthetic SYSTEM
// message in one batch. The unread counter map starts at zero for every
// participant.
func (s *Service) CreateGroup(ctx context.Context, creatorUID, creatorName string, in CreateGroupInput) (*Room, error) {
	in.Trim()

	if in.Name == "" {
		return nil, ErrEmptyName
	}
	if in.MentorID == "" {
		return nil, ErrNoMentorSelected
	}
	if len(in.MemberIDs) == 0 {
		return nil, ErrNoMembersSelected
	}

	participants := unionParticipants([]string{creatorUID, in.MentorID}, in.MemberIDs)

	unread := make(map[string]int64, len(participants))
	for _, uid := range participants {
		unread[uid] = 0
	}

	now := time.Now().UTC()
	systemText := fmt.Sprintf("%s created the group", creatorName)

	room := Room{
		Participants:    participants,
		Type:            RoomTypeGroup,
		GroupName:       in.Name,
		CreatedBy:       creatorUID,
		LastMessageText: systemText,
		LastActivity:    now,
		UnreadCount:     unread,
		CreatedAt:       now,
	}

	return s.repo.CreateGroupRoom(ctx, room, systemText)
}

// AddParticipants appends the given users to the room, skipping any that
// are already present. Read-then-write, not transactional: acceptable
// because the participant list has set semantics and duplicate adds are
// no-ops.
func (s *Service) AddParticipants(ctx context.Context, callerUID, roomID string, newUserIDs []string) (*Room, error) {
	if roomID == "" {
		return nil, fmt.Errorf("%w: roomId is required", ErrBadRequest)
	}
	if len(newUserIDs) == 0 {
		return nil, fmt.Errorf("%w: userIds is required", ErrBadRequest)
	}

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !contains(room.Participants, callerUID) {
		return nil, fmt.Errorf("%w: only participants can add members", ErrUnauthorized)
	}
	if room.Type != RoomTypeGroup {
		return nil, fmt.Errorf("%w: participants can only be added to group rooms", ErrBadRequest)
	}

	added := newParticipants(room.Participants, newUserIDs)
	if len(added) == 0 {
		return room, nil // nothing new, idempotent no-op
	}

	merged := unionParticipants(room.Participants, added)
	if err := s.repo.SetParticipants(ctx, roomID, merged, added); err != nil {
		return nil, err
	}

	room.Participants = merged
	return room, nil
}

// SendMessage appends the message, then best-effort refreshes the room
// preview and unread counters, then best-effort pushes a notification.
// Only the message append can fail the call; a stale preview is an
// accepted degraded state, not an error.
func (s *Service) SendMessage(ctx context.Context, senderUID, roomID string, in SendMessageInput) (*Message, error) {
	in.Trim()
	if roomID == "" {
		return nil, fmt.Errorf("%w: roomId is required", ErrBadRequest)
	}
	if in.Text == "" && in.ImageURL == "" {
		return nil, fmt.Errorf("%w: message text or image is required", ErrBadRequest)
	}

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !contains(room.Participants, senderUID) {
		return nil, fmt.Errorf("%w: sender is not a participant", ErrUnauthorized)
	}

	msgType := MessageTypeText
	if in.ImageURL != "" {
		msgType = MessageTypeImage
	}

	now := time.Now().UTC()
	msg, err := s.repo.AddMessage(ctx, roomID, Message{
		Text:      in.Text,
		ImageURL:  in.ImageURL,
		Type:      msgType,
		SenderID:  senderUID,
		Timestamp: now,
		IsRead:    false,
	})
	if err != nil {
		return nil, err
	}

	preview := utils.TrimMax(in.Text, previewMaxLen)
	if preview == "" {
		preview = "\U0001F4F7 Photo"
	}
	if err := s.repo.UpdatePreview(ctx, roomID, senderUID, preview, room.Participants, now); err != nil {
		log.Printf("[chat] room %s preview update failed after message %s: %v", roomID, msg.ID, err)
	}

	if s.notifySvc != nil {
		targets := make([]string, 0, len(room.Participants))
		for _, uid := range room.Participants {
			if uid != senderUID {
				targets = append(targets, uid)
			}
		}
		title := room.GroupName
		if title == "" {
			title = "New message"
		}
		if err := s.notifySvc.PushToUsers(ctx, targets, title, preview, roomID); err != nil {
			log.Printf("[chat] push for room %s failed: %v", roomID, err)
		}
	}

	return msg, nil
}

// ListMessages returns the room's messages oldest-first, participants only.
func (s *Service) ListMessages(ctx context.Context, callerUID, roomID string, limit int) ([]Message, error) {
	if roomID == "" {
		return nil, fmt.Errorf("%w: roomId is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !contains(room.Participants, callerUID) {
		return nil, fmt.Errorf("%w: only participants can read messages", ErrUnauthorized)
	}

	return s.repo.ListMessages(ctx, roomID, limit)
}

// ListRooms returns the user's chat list with unread counts. The per-room
// count queries fan out in parallel with a bounded group; a single room's
// failure counts as zero rather than failing the whole list.
func (s *Service) ListRooms(ctx context.Context, uid string, limit int) ([]RoomListItem, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rooms, err := s.repo.RoomsForUser(ctx, uid, limit)
	if err != nil {
		return nil, err
	}

	items := make([]RoomListItem, len(rooms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(unreadFanout)

	for i, room := range rooms {
		items[i] = RoomListItem{Room: room}
		g.Go(func() error {
			n, err := s.repo.CountUnread(gctx, room.ID, uid)
			if err != nil {
				log.Printf("[chat] unread count for room %s failed, using 0: %v", room.ID, err)
				return nil
			}
			items[i].Unread = n
			return nil
		})
	}
	_ = g.Wait()

	return items, nil
}

// MarkRead marks all messages from other participants as read and zeroes
// the caller's unread counter on the room.
func (s *Service) MarkRead(ctx context.Context, uid, roomID string) (int, error) {
	if roomID == "" {
		return 0, fmt.Errorf("%w: roomId is required", ErrBadRequest)
	}

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if !contains(room.Participants, uid) {
		return 0, fmt.Errorf("%w: only participants can mark messages read", ErrUnauthorized)
	}

	return s.repo.MarkRead(ctx, roomID, uid)
}

// GetRoom returns a single room, participants only.
func (s *Service) GetRoom(ctx context.Context, callerUID, roomID string) (*Room, error) {
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !contains(room.Participants, callerUID) {
		return nil, fmt.Errorf("%w: not a participant", ErrUnauthorized)
	}
	return room, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
