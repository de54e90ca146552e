package mentorship

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// CreateRequest opens a new PENDING request from the mentee to a mentor.
// Requests are not unique-keyed: after a decline or completion the mentee
// may simply open a new one.
func (s *Service) CreateRequest(ctx context.Context, menteeUID string, in CreateRequestInput) (*Request, error) {
	in.Trim()
	if menteeUID == "" {
		return nil, fmt.Errorf("%w: mentee uid is required", ErrBadRequest)
	}
	if in.MentorID == "" {
		return nil, fmt.Errorf("%w: mentorId is required", ErrBadRequest)
	}
	if in.MentorID == menteeUID {
		return nil, fmt.Errorf("%w: cannot request mentorship from yourself", ErrBadRequest)
	}

	req := Request{
		MenteeID:         menteeUID,
		MentorID:         in.MentorID,
		MenteeName:       in.MenteeName,
		MenteePhotoURL:   in.MenteePhotoURL,
		Status:           StatusPending,
		RequestTimestamp: time.Now().UTC(),
		SessionCount:     0,
	}

	return s.repo.Create(ctx, req)
}

type AcceptResult struct {
	Request *Request `json:"request"`
	RoomID  string   `json:"roomId"`
}

// Accept moves a PENDING request to ACCEPTED and upserts the pair's direct
// chat room in one batch. Only the addressed mentor may accept.
func (s *Service) Accept(ctx context.Context, mentorUID, requestID string) (*AcceptResult, error) {
	if requestID == "" {
		return nil, fmt.Errorf("%w: requestId is required", ErrBadRequest)
	}

	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.MentorID != mentorUID {
		return nil, fmt.Errorf("%w: only the addressed mentor can accept", ErrUnauthorized)
	}
	if !CanTransition(req.Status, StatusAccepted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, StatusAccepted)
	}

	roomID, err := s.repo.Accept(ctx, req)
	if err != nil {
		return nil, err
	}

	req.Status = StatusAccepted
	return &AcceptResult{Request: req, RoomID: roomID}, nil
}

// Decline moves a PENDING request to DECLINED. No room is created and no
// compensating action runs.
func (s *Service) Decline(ctx context.Context, mentorUID, requestID string) (*Request, error) {
	if requestID == "" {
		return nil, fmt.Errorf("%w: requestId is required", ErrBadRequest)
	}

	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.MentorID != mentorUID {
		return nil, fmt.Errorf("%w: only the addressed mentor can decline", ErrUnauthorized)
	}
	if !CanTransition(req.Status, StatusDeclined) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, StatusDeclined)
	}

	if err := s.repo.SetStatus(ctx, requestID, StatusDeclined); err != nil {
		return nil, err
	}
	req.Status = StatusDeclined
	return req, nil
}

// Complete is the administrative hook for closing out an accepted
// mentorship. Nothing in the app itself triggers it; it is reachable only
// from the admin surface.
func (s *Service) Complete(ctx context.Context, requestID string) (*Request, error) {
	if requestID == "" {
		return nil, fmt.Errorf("%w: requestId is required", ErrBadRequest)
	}

	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(req.Status, StatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, StatusCompleted)
	}

	if err := s.repo.SetStatus(ctx, requestID, StatusCompleted); err != nil {
		return nil, err
	}
	req.Status = StatusCompleted
	return req, nil
}

// ListForMentor returns the mentor's incoming requests, newest first.
func (s *Service) ListForMentor(ctx context.Context, mentorUID string, limit int) ([]Request, error) {
	if mentorUID == "" {
		return nil, fmt.Errorf("%w: mentor uid is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListForMentor(ctx, mentorUID, limit)
}

// ListForMentee returns the mentee's outgoing requests, newest first.
func (s *Service) ListForMentee(ctx context.Context, menteeUID string, limit int) ([]Request, error) {
	if menteeUID == "" {
		return nil, fmt.Errorf("%w: mentee uid is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListForMentee(ctx, menteeUID, limit)
}
