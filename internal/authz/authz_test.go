package authz

import (
	"testing"

	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	student := &domain.User{ID: "s1", Role: domain.RoleStudent, ProfileCompleted: true}
	newStudent := &domain.User{ID: "s2", Role: domain.RoleStudent, ProfileCompleted: false}
	employee := &domain.User{ID: "e1", Role: domain.RoleCompany, ProfileCompleted: true, CompanyID: "c1"}
	newEmployee := &domain.User{ID: "e2", Role: domain.RoleCompany, ProfileCompleted: false, CompanyID: "c1"}
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, ProfileCompleted: true}

	testCases := []struct {
		name     string
		user     *domain.User
		path     string
		expected Decision
	}{
		{
			name:     "nobody signed in goes to login",
			user:     nil,
			path:     "/dashboard",
			expected: Decision{Redirect: LoginPath},
		},
		{
			name:     "incomplete student is forced into setup",
			user:     newStudent,
			path:     "/dashboard",
			expected: Decision{Redirect: StudentSetupPath},
		},
		{
			name:     "incomplete student may open own setup",
			user:     newStudent,
			path:     StudentSetupPath,
			expected: Decision{Allowed: true},
		},
		{
			name:     "incomplete employee is forced into employee setup",
			user:     newEmployee,
			path:     "/company/applications",
			expected: Decision{Redirect: EmployeeSetupPath},
		},
		{
			name:     "incomplete employee may open company setup",
			user:     newEmployee,
			path:     CompanySetupPath,
			expected: Decision{Allowed: true},
		},
		{
			name:     "student cannot open admin area",
			user:     student,
			path:     "/admin/users",
			expected: Decision{Redirect: DashboardPath},
		},
		{
			name:     "student cannot open company area",
			user:     student,
			path:     "/company/applications",
			expected: Decision{Redirect: DashboardPath},
		},
		{
			name:     "employee cannot open student area",
			user:     employee,
			path:     "/student/choose-5",
			expected: Decision{Redirect: DashboardPath},
		},
		{
			name:     "admin opens admin area",
			user:     admin,
			path:     "/admin/phases",
			expected: Decision{Allowed: true},
		},
		{
			name:     "admin cannot open company area",
			user:     admin,
			path:     "/company/applications",
			expected: Decision{Redirect: DashboardPath},
		},
		{
			name:     "student opens own area",
			user:     student,
			path:     "/student/top3",
			expected: Decision{Allowed: true},
		},
		{
			name:     "shared paths are open to every signed-in role",
			user:     student,
			path:     "/dashboard",
			expected: Decision{Allowed: true},
		},
		{
			name:     "prefix match is segment-aware",
			user:     student,
			path:     "/administration",
			expected: Decision{Allowed: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Authorize(tc.user, tc.path))
		})
	}
}

func TestAuthorize_Deterministic(t *testing.T) {
	user := &domain.User{ID: "s1", Role: domain.RoleStudent, ProfileCompleted: false}

	first := Authorize(user, "/company/applications")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Authorize(user, "/company/applications"))
	}
}
