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

// PhaseService sequences the program phases. Phase order is insertion order,
// never date order: the wizard reflects program design, not the calendar.
type PhaseService interface {
	// Timeline derives the state of every phase relative to the single
	// active one and attaches the workflow action permitted to role.
	Timeline(ctx context.Context, role domain.Role) ([]PhaseStatus, error)

	// ActivePhase returns the first phase flagged active, if any.
	ActivePhase(ctx context.Context) (*domain.Phase, error)

	// Create appends a new phase to the sequence.
	Create(ctx context.Context, input PhaseInput) (*domain.Phase, error)

	// Update modifies a phase in place; its position is preserved.
	Update(ctx context.Context, phaseID string, input PhaseInput) (*domain.Phase, error)

	// SetActive activates the target phase and deactivates all others,
	// keeping the at-most-one-active invariant at the mutation boundary.
	SetActive(ctx context.Context, phaseID string) (*domain.Phase, error)

	// Deactivate clears the active flag of the target phase. It may leave
	// the program with no active phase, in which case no workflow action
	// is permitted for any role.
	Deactivate(ctx context.Context, phaseID string) (*domain.Phase, error)
}

// PhaseStatus is a phase together with its derived state and, when the phase
// is the active one, the action the requesting role may take.
type PhaseStatus struct {
	Phase  domain.Phase      `json:"phase"`
	State  domain.PhaseState `json:"state"`
	Action *WorkflowAction   `json:"action,omitempty"`
}

// WorkflowAction is a navigation entry point exposed by the active phase.
type WorkflowAction struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type PhaseInput struct {
	Type        domain.PhaseType
	Name        string
	Description string
	StartDate   string
	EndDate     string
}

type PhaseServiceImpl struct {
	reg *registry.Registry
	log *slog.Logger
}

func NewPhaseService(reg *registry.Registry, log *slog.Logger) *PhaseServiceImpl {
	return &PhaseServiceImpl{reg: reg, log: log}
}

func (s *PhaseServiceImpl) Timeline(_ context.Context, role domain.Role) ([]PhaseStatus, error) {
	phases := s.reg.Phases()

	activeIdx := -1
	for i, p := range phases {
		if p.IsActive {
			activeIdx = i
			break
		}
	}

	timeline := make([]PhaseStatus, len(phases))
	for i, p := range phases {
		status := PhaseStatus{Phase: p, State: deriveState(i, activeIdx)}

		if status.State == domain.PhaseActive {
			if action, ok := ActionFor(role, p.Type); ok {
				status.Action = &action
			}
		}

		timeline[i] = status
	}

	return timeline, nil
}

func (s *PhaseServiceImpl) ActivePhase(_ context.Context) (*domain.Phase, error) {
	for _, p := range s.reg.Phases() {
		if p.IsActive {
			return &p, nil
		}
	}

	return nil, fmt.Errorf("%w: no active phase", apperrors.ErrPhaseNotActive)
}

func (s *PhaseServiceImpl) Create(_ context.Context, input PhaseInput) (*domain.Phase, error) {
	const op = "internal.service.Create"

	if !input.Type.IsValid() {
		return nil, fmt.Errorf("%s: %w: unknown phase type '%s'", op, apperrors.ErrValidation, input.Type)
	}

	ts := now()
	phase := domain.Phase{
		ID:          newID(),
		Type:        input.Type,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	var err error
	if phase.StartDate, phase.EndDate, err = parsePhaseDates(input); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.reg.AddPhase(phase); err != nil {
		return nil, fmt.Errorf("%s: registry.AddPhase failed: %w", op, err)
	}

	s.log.Info("phase created",
		slog.String("phase_id", phase.ID),
		slog.String("type", string(phase.Type)),
	)

	return &phase, nil
}

func (s *PhaseServiceImpl) Update(_ context.Context, phaseID string, input PhaseInput) (*domain.Phase, error) {
	const op = "internal.service.Update"

	if input.Type != "" && !input.Type.IsValid() {
		return nil, fmt.Errorf("%s: %w: unknown phase type '%s'", op, apperrors.ErrValidation, input.Type)
	}

	start, end, err := parsePhaseDates(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.reg.UpdatePhase(phaseID, func(p domain.Phase) domain.Phase {
		if input.Type != "" {
			p.Type = input.Type
		}
		if input.Name != "" {
			p.Name = input.Name
		}
		if input.Description != "" {
			p.Description = input.Description
		}
		if !start.IsZero() {
			p.StartDate = start
		}
		if !end.IsZero() {
			p.EndDate = end
		}
		p.UpdatedAt = now()

		return p
	})
	if err != nil {
		return nil, fmt.Errorf("%s: registry.UpdatePhase failed: %w", op, err)
	}

	return &updated, nil
}

func (s *PhaseServiceImpl) SetActive(_ context.Context, phaseID string) (*domain.Phase, error) {
	const op = "internal.service.SetActive"

	phase, err := s.reg.SetSoleActivePhase(phaseID)
	if err != nil {
		return nil, fmt.Errorf("%s: registry.SetSoleActivePhase failed: %w", op, err)
	}

	s.log.Info("phase activated", slog.String("phase_id", phaseID))

	return &phase, nil
}

func (s *PhaseServiceImpl) Deactivate(_ context.Context, phaseID string) (*domain.Phase, error) {
	const op = "internal.service.Deactivate"

	phase, err := s.reg.UpdatePhase(phaseID, func(p domain.Phase) domain.Phase {
		if p.IsActive {
			p.IsActive = false
			p.UpdatedAt = now()
		}

		return p
	})
	if err != nil {
		return nil, fmt.Errorf("%s: registry.UpdatePhase failed: %w", op, err)
	}

	return &phase, nil
}

// deriveState places index i relative to the active index. With no active
// phase every phase derives as future and no action is exposed.
func deriveState(i, activeIdx int) domain.PhaseState {
	switch {
	case activeIdx == -1 || i > activeIdx:
		return domain.PhaseFuture
	case i == activeIdx:
		return domain.PhaseActive
	default:
		return domain.PhasePast
	}
}

// ActionFor maps (role, active phase type) to the permitted workflow entry
// point. It is a pure function; transport and timeline share it.
func ActionFor(role domain.Role, phaseType domain.PhaseType) (WorkflowAction, bool) {
	switch role {
	case domain.RoleStudent:
		switch phaseType {
		case domain.PhaseChoose5:
			return WorkflowAction{Label: "Choose companies", Path: "/student/choose-5"}, true
		case domain.PhaseTop3Choice:
			return WorkflowAction{Label: "Rank top 3", Path: "/student/top3"}, true
		}
	case domain.RoleCompany:
		if phaseType.IsReviewRound() {
			return WorkflowAction{Label: "Review applications", Path: "/company/applications"}, true
		}
	case domain.RoleAdmin:
		return WorkflowAction{Label: "Manage phases", Path: "/admin/phases"}, true
	}

	return WorkflowAction{}, false
}

func parsePhaseDates(input PhaseInput) (start, end time.Time, err error) {
	if input.StartDate != "" {
		if start, err = parseDate(input.StartDate); err != nil {
			return start, end, fmt.Errorf("%w: bad start date: %v", apperrors.ErrValidation, err)
		}
	}
	if input.EndDate != "" {
		if end, err = parseDate(input.EndDate); err != nil {
			return start, end, fmt.Errorf("%w: bad end date: %v", apperrors.ErrValidation, err)
		}
	}

	return start, end, nil
}
