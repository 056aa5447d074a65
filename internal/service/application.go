package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stazhbg/internship-portal/internal/registry"

	"github.com/stazhbg/internship-portal/pkg/logger/sl"
)

const (
	maxShortlistSize = 5
	topChoicesCount  = 3
)

// ApplicationService manages the application lifecycle:
// pending -> accepted | rejected, both terminal.
type ApplicationService interface {
	// SubmitShortlist creates pending applications for 1 to 5 distinct
	// companies, prioritized by list position. The choose5 phase must be
	// active and a student may submit once per phase.
	SubmitShortlist(ctx context.Context, studentID string, companyIDs []string) ([]domain.Application, error)

	// SubmitTopThree creates pending applications for exactly 3 distinct
	// companies ranked first to third. The top3Choice phase must be
	// active; a CV is mandatory, a motivation letter only when the first
	// choice requires one.
	SubmitTopThree(ctx context.Context, studentID string, companyIDs []string, cvURL, motivationLetterURL string) ([]domain.Application, error)

	// Decide moves a pending application to accepted or rejected. Only a
	// user of the owning company or an admin may decide; deciding a
	// non-pending application fails with ErrInvalidTransition.
	Decide(ctx context.Context, actor domain.User, applicationID string, accept bool) (*domain.Application, error)

	// ListFor returns applications scoped to the requesting role:
	// students see their own, companies their company's, admins all.
	ListFor(ctx context.Context, actor domain.User) ([]domain.Application, error)

	// Statistics aggregates per-company application counts by status.
	Statistics(ctx context.Context) ([]CompanyStats, error)
}

// CompanyStats is the admin dashboard aggregate for one company.
type CompanyStats struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Pending     int    `json:"pending"`
	Accepted    int    `json:"accepted"`
	Rejected    int    `json:"rejected"`
}

type ApplicationServiceImpl struct {
	reg    *registry.Registry
	phases PhaseService
	log    *slog.Logger
}

func NewApplicationService(reg *registry.Registry, phases PhaseService, log *slog.Logger) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		reg:    reg,
		phases: phases,
		log:    log,
	}
}

func (s *ApplicationServiceImpl) SubmitShortlist(ctx context.Context, studentID string, companyIDs []string) ([]domain.Application, error) {
	const op = "internal.service.SubmitShortlist"

	phase, err := s.requireActivePhase(ctx, domain.PhaseChoose5)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(companyIDs) == 0 || len(companyIDs) > maxShortlistSize {
		return nil, fmt.Errorf("%s: %w: between 1 and %d companies required, got %d",
			op, apperrors.ErrValidation, maxShortlistSize, len(companyIDs))
	}

	return s.submit(ctx, op, studentID, phase, companyIDs, "", "")
}

func (s *ApplicationServiceImpl) SubmitTopThree(ctx context.Context, studentID string, companyIDs []string, cvURL, motivationLetterURL string) ([]domain.Application, error) {
	const op = "internal.service.SubmitTopThree"

	phase, err := s.requireActivePhase(ctx, domain.PhaseTop3Choice)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(companyIDs) != topChoicesCount {
		return nil, fmt.Errorf("%s: %w: exactly %d companies required, got %d",
			op, apperrors.ErrValidation, topChoicesCount, len(companyIDs))
	}

	if cvURL == "" {
		return nil, fmt.Errorf("%s: %w: a CV document is required", op, apperrors.ErrValidation)
	}

	first, err := s.reg.CompanyByID(companyIDs[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if first.RequiresMotivationLetter && motivationLetterURL == "" {
		return nil, fmt.Errorf("%s: %w: company '%s' requires a motivation letter",
			op, apperrors.ErrValidation, first.Name)
	}

	return s.submit(ctx, op, studentID, phase, companyIDs, cvURL, motivationLetterURL)
}

// submit runs the checks shared by both ranked submissions and appends the
// batch atomically.
func (s *ApplicationServiceImpl) submit(
	_ context.Context,
	op string,
	studentID string,
	phase *domain.Phase,
	companyIDs []string,
	cvURL, motivationLetterURL string,
) ([]domain.Application, error) {
	student, err := s.reg.UserByID(studentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if student.Role != domain.RoleStudent {
		return nil, fmt.Errorf("%s: %w: only students submit choices", op, apperrors.ErrForbidden)
	}

	seen := make(map[string]struct{}, len(companyIDs))
	for _, id := range companyIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s: %w: duplicate company '%s'", op, apperrors.ErrValidation, id)
		}
		seen[id] = struct{}{}

		if _, err := s.reg.CompanyByID(id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	for _, existing := range s.reg.Applications() {
		if existing.StudentID == studentID && existing.PhaseID == phase.ID {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.AlreadySubmittedError{
				StudentID: studentID,
				PhaseID:   phase.ID,
			})
		}
	}

	ts := now()
	apps := make([]domain.Application, len(companyIDs))
	for i, companyID := range companyIDs {
		apps[i] = domain.Application{
			ID:                  newID(),
			StudentID:           studentID,
			CompanyID:           companyID,
			PhaseID:             phase.ID,
			Priority:            i + 1,
			Status:              domain.StatusPending,
			CvURL:               cvURL,
			MotivationLetterURL: motivationLetterURL,
			CreatedAt:           ts,
			UpdatedAt:           ts,
		}
	}

	if err := s.reg.AddApplications(apps); err != nil {
		return nil, fmt.Errorf("%s: registry.AddApplications failed: %w", op, err)
	}

	s.log.Info("choices submitted",
		slog.String("student_id", studentID),
		slog.String("phase_id", phase.ID),
		slog.Int("count", len(apps)),
	)

	return apps, nil
}

func (s *ApplicationServiceImpl) Decide(_ context.Context, actor domain.User, applicationID string, accept bool) (*domain.Application, error) {
	const op = "internal.service.Decide"

	app, err := s.reg.ApplicationByID(applicationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch actor.Role {
	case domain.RoleAdmin:
		// Admins may decide any application.
	case domain.RoleCompany:
		if actor.CompanyID != app.CompanyID {
			return nil, fmt.Errorf("%s: %w: application belongs to another company", op, apperrors.ErrForbidden)
		}
	case domain.RoleStudent:
		return nil, fmt.Errorf("%s: %w: students cannot decide applications", op, apperrors.ErrForbidden)
	default:
		return nil, fmt.Errorf("%s: %w: unknown role '%s'", op, apperrors.ErrForbidden, actor.Role)
	}

	status := domain.StatusRejected
	if accept {
		status = domain.StatusAccepted
	}

	updated, err := s.reg.SetApplicationStatus(applicationID, status)
	if err != nil {
		s.log.Warn("decision rejected", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("application decided",
		slog.String("application_id", applicationID),
		slog.String("status", string(status)),
		slog.String("decided_by", actor.ID),
	)

	return &updated, nil
}

func (s *ApplicationServiceImpl) ListFor(_ context.Context, actor domain.User) ([]domain.Application, error) {
	const op = "internal.service.ListFor"

	all := s.reg.Applications()

	switch actor.Role {
	case domain.RoleAdmin:
		return all, nil
	case domain.RoleStudent:
		return filterApplications(all, func(a domain.Application) bool {
			return a.StudentID == actor.ID
		}), nil
	case domain.RoleCompany:
		return filterApplications(all, func(a domain.Application) bool {
			return a.CompanyID == actor.CompanyID
		}), nil
	default:
		return nil, fmt.Errorf("%s: %w: unknown role '%s'", op, apperrors.ErrForbidden, actor.Role)
	}
}

func (s *ApplicationServiceImpl) Statistics(_ context.Context) ([]CompanyStats, error) {
	byCompany := make(map[string]*CompanyStats)

	companies := s.reg.Companies()
	stats := make([]CompanyStats, len(companies))
	for i, c := range companies {
		stats[i] = CompanyStats{CompanyID: c.ID, CompanyName: c.Name}
		byCompany[c.ID] = &stats[i]
	}

	for _, a := range s.reg.Applications() {
		entry, ok := byCompany[a.CompanyID]
		if !ok {
			continue
		}

		switch a.Status {
		case domain.StatusPending:
			entry.Pending++
		case domain.StatusAccepted:
			entry.Accepted++
		case domain.StatusRejected:
			entry.Rejected++
		}
	}

	return stats, nil
}

func (s *ApplicationServiceImpl) requireActivePhase(ctx context.Context, want domain.PhaseType) (*domain.Phase, error) {
	phase, err := s.phases.ActivePhase(ctx)
	if err != nil {
		return nil, err
	}

	if phase.Type != want {
		return nil, fmt.Errorf("%w: phase '%s' is active, '%s' required",
			apperrors.ErrPhaseNotActive, phase.Type, want)
	}

	return phase, nil
}

func filterApplications(apps []domain.Application, keep func(domain.Application) bool) []domain.Application {
	out := make([]domain.Application, 0, len(apps))
	for _, a := range apps {
		if keep(a) {
			out = append(out, a)
		}
	}

	return out
}
