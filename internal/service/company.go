package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stazhbg/internship-portal/internal/registry"
)

// CompanyService lets company employees maintain their company's public
// profile and internship terms.
type CompanyService interface {
	// UpdateProfile merges the non-nil fields into the actor's company
	// record. The actor must be an employee of that company.
	UpdateProfile(ctx context.Context, actor domain.User, update CompanyProfileUpdate) (*domain.Company, error)
}

// CompanyProfileUpdate carries the optional fields of the company profile
// forms. Nil fields are left untouched.
type CompanyProfileUpdate struct {
	Name                     *string
	Description              *string
	Logo                     *string
	Website                  *string
	Address                  *string
	Technologies             *[]string
	Specialties              *[]string
	InternshipDescription    *string
	InternshipPositions      *int
	InternshipRequirements   *string
	InternshipType           *string
	PresentationURL          *string
	PlanURL                  *string
	RequiresMotivationLetter *bool
	ContactPerson            *string
	ContactEmail             *string
	ContactPhone             *string
}

type CompanyServiceImpl struct {
	reg *registry.Registry
	log *slog.Logger
}

func NewCompanyService(reg *registry.Registry, log *slog.Logger) *CompanyServiceImpl {
	return &CompanyServiceImpl{reg: reg, log: log}
}

func (s *CompanyServiceImpl) UpdateProfile(_ context.Context, actor domain.User, update CompanyProfileUpdate) (*domain.Company, error) {
	const op = "internal.service.UpdateCompanyProfile"

	if actor.Role != domain.RoleCompany {
		return nil, fmt.Errorf("%s: %w: only company employees edit the company profile", op, apperrors.ErrForbidden)
	}
	if actor.CompanyID == "" {
		return nil, fmt.Errorf("%s: %w: account is not attached to a company", op, apperrors.ErrForbidden)
	}

	updated, err := s.reg.UpdateCompany(actor.CompanyID, func(c domain.Company) domain.Company {
		applyCompanyProfileUpdate(&c, update)
		c.UpdatedAt = now()

		return c
	})
	if err != nil {
		return nil, fmt.Errorf("%s: registry.UpdateCompany failed: %w", op, err)
	}

	s.log.Info("company profile updated",
		slog.String("company_id", actor.CompanyID),
		slog.String("updated_by", actor.ID),
	)

	return &updated, nil
}

func applyCompanyProfileUpdate(c *domain.Company, update CompanyProfileUpdate) {
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Description != nil {
		c.Description = *update.Description
	}
	if update.Logo != nil {
		c.Logo = *update.Logo
	}
	if update.Website != nil {
		c.Website = *update.Website
	}
	if update.Address != nil {
		c.Address = *update.Address
	}
	if update.Technologies != nil {
		c.Technologies = *update.Technologies
	}
	if update.Specialties != nil {
		c.Specialties = *update.Specialties
	}
	if update.InternshipDescription != nil {
		c.InternshipDescription = *update.InternshipDescription
	}
	if update.InternshipPositions != nil {
		c.InternshipPositions = *update.InternshipPositions
	}
	if update.InternshipRequirements != nil {
		c.InternshipRequirements = *update.InternshipRequirements
	}
	if update.InternshipType != nil {
		c.InternshipType = *update.InternshipType
	}
	if update.PresentationURL != nil {
		c.PresentationURL = *update.PresentationURL
	}
	if update.PlanURL != nil {
		c.PlanURL = *update.PlanURL
	}
	if update.RequiresMotivationLetter != nil {
		c.RequiresMotivationLetter = *update.RequiresMotivationLetter
	}
	if update.ContactPerson != nil {
		c.ContactPerson = *update.ContactPerson
	}
	if update.ContactEmail != nil {
		c.ContactEmail = *update.ContactEmail
	}
	if update.ContactPhone != nil {
		c.ContactPhone = *update.ContactPhone
	}
}
