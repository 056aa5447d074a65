package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stazhbg/internship-portal/internal/registry"
)

// MeetingService exposes the live-meeting schedule. Meetings are created by
// the admin schedule and read-only afterwards.
type MeetingService interface {
	// Schedule creates a meeting between a company and a set of students.
	// Admin only.
	Schedule(ctx context.Context, actor domain.User, input MeetingInput) (*domain.Meeting, error)

	// ListFor returns the schedule scoped to the requesting role.
	ListFor(ctx context.Context, actor domain.User) ([]domain.Meeting, error)
}

type MeetingInput struct {
	CompanyID  string
	StudentIDs []string
	StartTime  time.Time
	EndTime    time.Time
	Location   string
	Notes      string
}

type MeetingServiceImpl struct {
	reg *registry.Registry
	log *slog.Logger
}

func NewMeetingService(reg *registry.Registry, log *slog.Logger) *MeetingServiceImpl {
	return &MeetingServiceImpl{reg: reg, log: log}
}

func (s *MeetingServiceImpl) Schedule(_ context.Context, actor domain.User, input MeetingInput) (*domain.Meeting, error) {
	const op = "internal.service.Schedule"

	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%s: %w: only admins schedule meetings", op, apperrors.ErrForbidden)
	}

	if len(input.StudentIDs) == 0 {
		return nil, fmt.Errorf("%s: %w: at least one student required", op, apperrors.ErrValidation)
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, fmt.Errorf("%s: %w: meeting must end after it starts", op, apperrors.ErrValidation)
	}

	ts := now()
	meeting := domain.Meeting{
		ID:         newID(),
		CompanyID:  input.CompanyID,
		StudentIDs: input.StudentIDs,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Location:   input.Location,
		Notes:      input.Notes,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	if err := s.reg.AddMeeting(meeting); err != nil {
		return nil, fmt.Errorf("%s: registry.AddMeeting failed: %w", op, err)
	}

	s.log.Info("meeting scheduled",
		slog.String("meeting_id", meeting.ID),
		slog.String("company_id", meeting.CompanyID),
	)

	return &meeting, nil
}

func (s *MeetingServiceImpl) ListFor(_ context.Context, actor domain.User) ([]domain.Meeting, error) {
	const op = "internal.service.MeetingListFor"

	all := s.reg.Meetings()

	switch actor.Role {
	case domain.RoleAdmin:
		return all, nil
	case domain.RoleCompany:
		out := make([]domain.Meeting, 0, len(all))
		for _, m := range all {
			if m.CompanyID == actor.CompanyID {
				out = append(out, m)
			}
		}

		return out, nil
	case domain.RoleStudent:
		out := make([]domain.Meeting, 0, len(all))
		for _, m := range all {
			for _, id := range m.StudentIDs {
				if id == actor.ID {
					out = append(out, m)
					break
				}
			}
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%s: %w: unknown role '%s'", op, apperrors.ErrForbidden, actor.Role)
	}
}
