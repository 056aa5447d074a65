package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stazhbg/internship-portal/internal/registry"
)

// AdminService covers the administrative catalogue operations: inviting a
// company into the program and listing accounts.
type AdminService interface {
	// InviteCompany creates a company record together with its first
	// employee account. The employee starts with an incomplete profile
	// and is routed through setup on first sign-in.
	InviteCompany(ctx context.Context, actor domain.User, input InviteInput) (*domain.Company, *domain.User, error)

	// Users lists every account in the catalogue. Admin only.
	Users(ctx context.Context, actor domain.User) ([]domain.User, error)

	// Companies lists the company catalogue; visible to every role.
	Companies(ctx context.Context) ([]domain.Company, error)

	// Company resolves a single company by ID.
	Company(ctx context.Context, id string) (*domain.Company, error)
}

type InviteInput struct {
	CompanyName   string
	ContactPerson string
	ContactEmail  string
}

type AdminServiceImpl struct {
	reg *registry.Registry
	log *slog.Logger
}

func NewAdminService(reg *registry.Registry, log *slog.Logger) *AdminServiceImpl {
	return &AdminServiceImpl{reg: reg, log: log}
}

func (s *AdminServiceImpl) InviteCompany(_ context.Context, actor domain.User, input InviteInput) (*domain.Company, *domain.User, error) {
	const op = "internal.service.InviteCompany"

	if actor.Role != domain.RoleAdmin {
		return nil, nil, fmt.Errorf("%s: %w: only admins send invites", op, apperrors.ErrForbidden)
	}

	ts := now()
	company := domain.Company{
		ID:            newID(),
		Name:          input.CompanyName,
		ContactPerson: input.ContactPerson,
		ContactEmail:  input.ContactEmail,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}

	employee := domain.User{
		ID:        newID(),
		Email:     input.ContactEmail,
		Name:      input.ContactPerson,
		Role:      domain.RoleCompany,
		CompanyID: company.ID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	company.EmployeeIDs = []string{employee.ID}

	if err := s.reg.CreateCompanyWithEmployee(company, employee); err != nil {
		return nil, nil, fmt.Errorf("%s: registry.CreateCompanyWithEmployee failed: %w", op, err)
	}

	s.log.Info("company invited",
		slog.String("company_id", company.ID),
		slog.String("contact_email", input.ContactEmail),
	)

	return &company, &employee, nil
}

func (s *AdminServiceImpl) Users(_ context.Context, actor domain.User) ([]domain.User, error) {
	const op = "internal.service.Users"

	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%s: %w: user listing is admin-only", op, apperrors.ErrForbidden)
	}

	return s.reg.Users(), nil
}

func (s *AdminServiceImpl) Companies(_ context.Context) ([]domain.Company, error) {
	return s.reg.Companies(), nil
}

func (s *AdminServiceImpl) Company(_ context.Context, id string) (*domain.Company, error) {
	const op = "internal.service.Company"

	company, err := s.reg.CompanyByID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &company, nil
}
