package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stazhbg/internship-portal/internal/registry"
)

// ChatService exposes company-student chat rooms. Messages are ordered and
// append-only; there are no delivery or read-receipt guarantees.
type ChatService interface {
	// RoomsFor returns the rooms the actor is a member of. Admins see all.
	RoomsFor(ctx context.Context, actor domain.User) ([]domain.ChatRoom, error)

	// Messages returns a room's messages in append order. The actor must
	// be a member of the room.
	Messages(ctx context.Context, actor domain.User, roomID string) ([]domain.Message, error)

	// Post appends a message to the room, attributed to the actor.
	Post(ctx context.Context, actor domain.User, roomID, content string) (*domain.Message, error)
}

type ChatServiceImpl struct {
	reg *registry.Registry
	log *slog.Logger
}

func NewChatService(reg *registry.Registry, log *slog.Logger) *ChatServiceImpl {
	return &ChatServiceImpl{reg: reg, log: log}
}

func (s *ChatServiceImpl) RoomsFor(_ context.Context, actor domain.User) ([]domain.ChatRoom, error) {
	all := s.reg.ChatRooms()
	if actor.Role == domain.RoleAdmin {
		return all, nil
	}

	out := make([]domain.ChatRoom, 0, len(all))
	for _, room := range all {
		if isRoomMember(room, actor) {
			out = append(out, room)
		}
	}

	return out, nil
}

func (s *ChatServiceImpl) Messages(_ context.Context, actor domain.User, roomID string) ([]domain.Message, error) {
	const op = "internal.service.Messages"

	room, err := s.reg.ChatRoomByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if actor.Role != domain.RoleAdmin && !isRoomMember(room, actor) {
		return nil, fmt.Errorf("%s: %w: not a member of this room", op, apperrors.ErrForbidden)
	}

	messages, err := s.reg.MessagesByRoom(roomID)
	if err != nil {
		return nil, fmt.Errorf("%s: registry.MessagesByRoom failed: %w", op, err)
	}

	return messages, nil
}

func (s *ChatServiceImpl) Post(_ context.Context, actor domain.User, roomID, content string) (*domain.Message, error) {
	const op = "internal.service.Post"

	if content == "" {
		return nil, fmt.Errorf("%s: %w: message content is empty", op, apperrors.ErrValidation)
	}

	room, err := s.reg.ChatRoomByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if actor.Role != domain.RoleAdmin && !isRoomMember(room, actor) {
		return nil, fmt.Errorf("%s: %w: not a member of this room", op, apperrors.ErrForbidden)
	}

	msg := domain.Message{
		ID:         newID(),
		ChatRoomID: roomID,
		SenderID:   actor.ID,
		Content:    content,
		CreatedAt:  now(),
	}

	if err := s.reg.AddMessage(msg); err != nil {
		return nil, fmt.Errorf("%s: registry.AddMessage failed: %w", op, err)
	}

	s.log.Debug("message posted",
		slog.String("room_id", roomID),
		slog.String("sender_id", actor.ID),
	)

	return &msg, nil
}

func isRoomMember(room domain.ChatRoom, user domain.User) bool {
	switch user.Role {
	case domain.RoleCompany:
		return user.CompanyID == room.CompanyID
	case domain.RoleStudent:
		for _, id := range room.StudentIDs {
			if id == user.ID {
				return true
			}
		}
	}

	return false
}
