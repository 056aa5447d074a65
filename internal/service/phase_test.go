package service

import (
	"context"
	"testing"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseServiceImpl_Timeline(t *testing.T) {
	ctx := context.Background()

	service := NewPhaseService(newSeededRegistry(t), testLogger())

	timeline, err := service.Timeline(ctx, domain.RoleStudent)
	require.NoError(t, err)
	require.Len(t, timeline, 6)

	// The seeded program starts with choose5 active; everything after it
	// is future and nothing is past.
	assert.Equal(t, domain.PhaseActive, timeline[0].State)
	for _, status := range timeline[1:] {
		assert.Equal(t, domain.PhaseFuture, status.State)
		assert.Nil(t, status.Action)
	}

	require.NotNil(t, timeline[0].Action)
	assert.Equal(t, "/student/choose-5", timeline[0].Action.Path)
}

func TestPhaseServiceImpl_Timeline_StatesFollowActivePhase(t *testing.T) {
	ctx := context.Background()

	service := NewPhaseService(newSeededRegistry(t), testLogger())

	_, err := service.SetActive(ctx, "phase-top3")
	require.NoError(t, err)

	timeline, err := service.Timeline(ctx, domain.RoleStudent)
	require.NoError(t, err)

	states := make([]domain.PhaseState, 0, len(timeline))
	for _, status := range timeline {
		states = append(states, status.State)
	}

	assert.Equal(t, []domain.PhaseState{
		domain.PhasePast, domain.PhasePast, domain.PhaseActive,
		domain.PhaseFuture, domain.PhaseFuture, domain.PhaseFuture,
	}, states)

	require.NotNil(t, timeline[2].Action)
	assert.Equal(t, "/student/top3", timeline[2].Action.Path)
}

func TestPhaseServiceImpl_Timeline_NoActivePhase(t *testing.T) {
	ctx := context.Background()

	service := NewPhaseService(newSeededRegistry(t), testLogger())

	_, err := service.Deactivate(ctx, "phase-choose5")
	require.NoError(t, err)

	timeline, err := service.Timeline(ctx, domain.RoleAdmin)
	require.NoError(t, err)

	for _, status := range timeline {
		assert.Equal(t, domain.PhaseFuture, status.State)
		assert.Nil(t, status.Action)
	}

	_, err = service.ActivePhase(ctx)
	assert.ErrorIs(t, err, apperrors.ErrPhaseNotActive)
}

func TestPhaseServiceImpl_SetActive(t *testing.T) {
	ctx := context.Background()

	reg := newSeededRegistry(t)
	service := NewPhaseService(reg, testLogger())

	_, err := service.SetActive(ctx, "phase-round1")
	require.NoError(t, err)

	phase, err := service.SetActive(ctx, "phase-round2")
	require.NoError(t, err)
	assert.True(t, phase.IsActive)

	count := 0
	for _, p := range reg.Phases() {
		if p.IsActive {
			count++
			assert.Equal(t, "phase-round2", p.ID)
		}
	}
	assert.Equal(t, 1, count)
}

func TestPhaseServiceImpl_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		input         PhaseInput
		expectedError error
	}{
		{
			name: "Success: phase is appended to the sequence",
			input: PhaseInput{
				Type: domain.PhaseRound3, Name: "Extra round",
				StartDate: "2026-09-01", EndDate: "2026-09-08",
			},
		},
		{
			name:          "Failure: unknown phase type",
			input:         PhaseInput{Type: domain.PhaseType("graduation"), Name: "Graduation"},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "Failure: malformed start date",
			input:         PhaseInput{Type: domain.PhaseRound1, Name: "Round", StartDate: "next tuesday"},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reg := newSeededRegistry(t)
			service := NewPhaseService(reg, testLogger())

			phase, err := service.Create(ctx, tc.input)

			if tc.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Len(t, reg.Phases(), 6)
			} else {
				require.NoError(t, err)
				require.NotNil(t, phase)
				assert.NotEmpty(t, phase.ID)
				assert.False(t, phase.IsActive)

				phases := reg.Phases()
				require.Len(t, phases, 7)
				assert.Equal(t, phase.ID, phases[6].ID)
			}
		})
	}
}

func TestPhaseServiceImpl_Update(t *testing.T) {
	ctx := context.Background()

	reg := newSeededRegistry(t)
	service := NewPhaseService(reg, testLogger())

	updated, err := service.Update(ctx, "phase-meetings", PhaseInput{
		Name: "Live meetings week",
	})
	require.NoError(t, err)
	assert.Equal(t, "Live meetings week", updated.Name)
	// Unspecified fields stay as they were.
	assert.Equal(t, domain.PhaseLiveMeetings, updated.Type)

	// Position in the wizard sequence is preserved.
	assert.Equal(t, "phase-meetings", reg.Phases()[1].ID)

	_, err = service.Update(ctx, "phase-missing", PhaseInput{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestActionFor(t *testing.T) {
	testCases := []struct {
		name         string
		role         domain.Role
		phaseType    domain.PhaseType
		expectedPath string
		expectedOK   bool
	}{
		{"student during shortlist", domain.RoleStudent, domain.PhaseChoose5, "/student/choose-5", true},
		{"student during top3", domain.RoleStudent, domain.PhaseTop3Choice, "/student/top3", true},
		{"student during meetings has no action", domain.RoleStudent, domain.PhaseLiveMeetings, "", false},
		{"student during review rounds has no action", domain.RoleStudent, domain.PhaseRound1, "", false},
		{"company during round 1", domain.RoleCompany, domain.PhaseRound1, "/company/applications", true},
		{"company during round 3", domain.RoleCompany, domain.PhaseRound3, "/company/applications", true},
		{"company during shortlist has no action", domain.RoleCompany, domain.PhaseChoose5, "", false},
		{"admin always manages phases", domain.RoleAdmin, domain.PhaseLiveMeetings, "/admin/phases", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			action, ok := ActionFor(tc.role, tc.phaseType)

			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedPath, action.Path)
		})
	}
}
