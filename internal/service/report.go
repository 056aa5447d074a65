package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stazhbg/internship-portal/internal/registry"
)

// ReportService manages the feedback artifacts at the end of the program:
// student reviews of companies and final internship reports with optional
// admin feedback. Both are append-only.
type ReportService interface {
	// SubmitReview records a student's rating and comment for a company.
	SubmitReview(ctx context.Context, actor domain.User, companyID string, rating int, comment string) (*domain.Review, error)

	// SubmitReport records a student's final report document reference.
	SubmitReport(ctx context.Context, actor domain.User, companyID, reportURL string) (*domain.FinalReport, error)

	// AddFeedback attaches admin feedback to a submitted report.
	AddFeedback(ctx context.Context, actor domain.User, reportID, feedback string) (*domain.FinalReport, error)

	// ReportsFor returns final reports scoped to the requesting role:
	// students see their own, admins all.
	ReportsFor(ctx context.Context, actor domain.User) ([]domain.FinalReport, error)

	// Reviews returns all submitted reviews. Admin only.
	Reviews(ctx context.Context, actor domain.User) ([]domain.Review, error)
}

type ReportServiceImpl struct {
	reg *registry.Registry
	log *slog.Logger
}

func NewReportService(reg *registry.Registry, log *slog.Logger) *ReportServiceImpl {
	return &ReportServiceImpl{reg: reg, log: log}
}

func (s *ReportServiceImpl) SubmitReview(_ context.Context, actor domain.User, companyID string, rating int, comment string) (*domain.Review, error) {
	const op = "internal.service.SubmitReview"

	if actor.Role != domain.RoleStudent {
		return nil, fmt.Errorf("%s: %w: only students submit reviews", op, apperrors.ErrForbidden)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%s: %w: rating must be between 1 and 5", op, apperrors.ErrValidation)
	}

	review := domain.Review{
		ID:        newID(),
		StudentID: actor.ID,
		CompanyID: companyID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now(),
	}

	if err := s.reg.AddReview(review); err != nil {
		return nil, fmt.Errorf("%s: registry.AddReview failed: %w", op, err)
	}

	return &review, nil
}

func (s *ReportServiceImpl) SubmitReport(_ context.Context, actor domain.User, companyID, reportURL string) (*domain.FinalReport, error) {
	const op = "internal.service.SubmitReport"

	if actor.Role != domain.RoleStudent {
		return nil, fmt.Errorf("%s: %w: only students submit reports", op, apperrors.ErrForbidden)
	}
	if reportURL == "" {
		return nil, fmt.Errorf("%s: %w: report document is required", op, apperrors.ErrValidation)
	}

	ts := now()
	report := domain.FinalReport{
		ID:        newID(),
		StudentID: actor.ID,
		CompanyID: companyID,
		ReportURL: reportURL,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if err := s.reg.AddFinalReport(report); err != nil {
		return nil, fmt.Errorf("%s: registry.AddFinalReport failed: %w", op, err)
	}

	s.log.Info("final report submitted",
		slog.String("student_id", actor.ID),
		slog.String("company_id", companyID),
	)

	return &report, nil
}

func (s *ReportServiceImpl) AddFeedback(_ context.Context, actor domain.User, reportID, feedback string) (*domain.FinalReport, error) {
	const op = "internal.service.AddFeedback"

	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%s: %w: only admins leave report feedback", op, apperrors.ErrForbidden)
	}

	report, err := s.reg.SetReportFeedback(reportID, feedback)
	if err != nil {
		return nil, fmt.Errorf("%s: registry.SetReportFeedback failed: %w", op, err)
	}

	return &report, nil
}

func (s *ReportServiceImpl) ReportsFor(_ context.Context, actor domain.User) ([]domain.FinalReport, error) {
	const op = "internal.service.ReportsFor"

	all := s.reg.FinalReports()

	switch actor.Role {
	case domain.RoleAdmin:
		return all, nil
	case domain.RoleStudent:
		out := make([]domain.FinalReport, 0, len(all))
		for _, r := range all {
			if r.StudentID == actor.ID {
				out = append(out, r)
			}
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%s: %w: reports are not visible to this role", op, apperrors.ErrForbidden)
	}
}

func (s *ReportServiceImpl) Reviews(_ context.Context, actor domain.User) ([]domain.Review, error) {
	const op = "internal.service.Reviews"

	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%s: %w: reviews are admin-only", op, apperrors.ErrForbidden)
	}

	return s.reg.Reviews(), nil
}
