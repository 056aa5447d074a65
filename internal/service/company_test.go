package service

import (
	"context"
	"testing"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyServiceImpl_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	reg := newSeededRegistry(t)
	service := NewCompanyService(reg, testLogger())

	employee := domain.User{ID: "emp-chaos", Role: domain.RoleCompany, CompanyID: "comp-chaos"}

	requiresLetter := true
	positions := 5
	technologies := []string{"C++", "Python", "Rust"}
	internshipType := "onsite"

	updated, err := service.UpdateProfile(ctx, employee, CompanyProfileUpdate{
		RequiresMotivationLetter: &requiresLetter,
		InternshipPositions:      &positions,
		Technologies:             &technologies,
		InternshipType:           &internshipType,
	})
	require.NoError(t, err)

	assert.True(t, updated.RequiresMotivationLetter)
	assert.Equal(t, 5, updated.InternshipPositions)
	assert.Equal(t, technologies, updated.Technologies)
	assert.Equal(t, "onsite", updated.InternshipType)
	// Untouched fields survive the merge.
	assert.Equal(t, "Chaos Group", updated.Name)
	assert.Equal(t, "careers@chaos.com", updated.ContactEmail)

	// The edit lands in the catalogue, not just the returned copy.
	stored, err := reg.CompanyByID("comp-chaos")
	require.NoError(t, err)
	assert.True(t, stored.RequiresMotivationLetter)
}

func TestCompanyServiceImpl_UpdateProfile_Forbidden(t *testing.T) {
	ctx := context.Background()

	service := NewCompanyService(newSeededRegistry(t), testLogger())

	name := "Hijacked"

	testCases := []struct {
		name  string
		actor domain.User
	}{
		{
			name:  "students do not edit company profiles",
			actor: domain.User{ID: "student-1", Role: domain.RoleStudent},
		},
		{
			name:  "admins do not edit company profiles",
			actor: domain.User{ID: "admin-1", Role: domain.RoleAdmin},
		},
		{
			name:  "detached company account has no company to edit",
			actor: domain.User{ID: "emp-floating", Role: domain.RoleCompany},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.UpdateProfile(ctx, tc.actor, CompanyProfileUpdate{Name: &name})
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
		})
	}
}

func TestCompanyServiceImpl_UpdateProfile_GatesTopThree(t *testing.T) {
	ctx := context.Background()

	reg := newSeededRegistry(t)
	companyService := NewCompanyService(reg, testLogger())
	phases := NewPhaseService(reg, testLogger())
	applications := NewApplicationService(reg, phases, testLogger())

	// Chaos does not require a motivation letter in the seed; flip it on
	// and the top-3 document check must start enforcing it.
	requiresLetter := true
	_, err := companyService.UpdateProfile(ctx,
		domain.User{ID: "emp-chaos", Role: domain.RoleCompany, CompanyID: "comp-chaos"},
		CompanyProfileUpdate{RequiresMotivationLetter: &requiresLetter},
	)
	require.NoError(t, err)

	_, err = reg.SetSoleActivePhase("phase-top3")
	require.NoError(t, err)

	_, err = applications.SubmitTopThree(ctx, "student-3",
		[]string{"comp-chaos", "comp-sap", "comp-nemetschek"},
		"https://files.school.bg/cv.pdf", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
