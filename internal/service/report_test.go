package service

import (
	"context"
	"testing"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportServiceImpl_SubmitReview(t *testing.T) {
	ctx := context.Background()

	student := domain.User{ID: "student-1", Role: domain.RoleStudent}

	testCases := []struct {
		name          string
		actor         domain.User
		companyID     string
		rating        int
		expectedError error
	}{
		{
			name:  "Success: rating within range",
			actor: student, companyID: "comp-sap", rating: 4,
		},
		{
			name:  "Failure: rating too low",
			actor: student, companyID: "comp-sap", rating: 0,
			expectedError: apperrors.ErrValidation,
		},
		{
			name:  "Failure: rating too high",
			actor: student, companyID: "comp-sap", rating: 6,
			expectedError: apperrors.ErrValidation,
		},
		{
			name:  "Failure: employees do not review",
			actor: domain.User{ID: "emp-chaos", Role: domain.RoleCompany}, companyID: "comp-sap", rating: 4,
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:  "Failure: unknown company",
			actor: student, companyID: "comp-missing", rating: 4,
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := NewReportService(newSeededRegistry(t), testLogger())

			review, err := service.SubmitReview(ctx, tc.actor, tc.companyID, tc.rating, "solid mentorship")

			if tc.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, review)
			assert.Equal(t, tc.rating, review.Rating)
			assert.Equal(t, tc.actor.ID, review.StudentID)
		})
	}
}

func TestReportServiceImpl_ReportLifecycle(t *testing.T) {
	ctx := context.Background()

	service := NewReportService(newSeededRegistry(t), testLogger())

	student := domain.User{ID: "student-1", Role: domain.RoleStudent}
	otherStudent := domain.User{ID: "student-2", Role: domain.RoleStudent}
	admin := domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	report, err := service.SubmitReport(ctx, student, "comp-nemetschek", "https://files.school.bg/report.pdf")
	require.NoError(t, err)
	assert.Empty(t, report.Feedback)

	_, err = service.SubmitReport(ctx, student, "comp-nemetschek", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	withFeedback, err := service.AddFeedback(ctx, admin, report.ID, "Well structured, add more detail on testing.")
	require.NoError(t, err)
	assert.Equal(t, "Well structured, add more detail on testing.", withFeedback.Feedback)

	_, err = service.AddFeedback(ctx, student, report.ID, "self-praise")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	own, err := service.ReportsFor(ctx, student)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, report.ID, own[0].ID)

	none, err := service.ReportsFor(ctx, otherStudent)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := service.ReportsFor(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = service.ReportsFor(ctx, domain.User{ID: "emp-chaos", Role: domain.RoleCompany})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestReportServiceImpl_Reviews(t *testing.T) {
	ctx := context.Background()

	service := NewReportService(newSeededRegistry(t), testLogger())

	student := domain.User{ID: "student-1", Role: domain.RoleStudent}
	admin := domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	_, err := service.SubmitReview(ctx, student, "comp-sap", 5, "great program")
	require.NoError(t, err)

	reviews, err := service.Reviews(ctx, admin)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)

	_, err = service.Reviews(ctx, student)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
