// package authz implements the role-gated view router as a pure guard
// function. Rules are evaluated in a fixed order so overlapping prefixes
// resolve deterministically, never by last-match-wins.
package authz

import (
	"strings"

	"github.com/stazhbg/internship-portal/internal/domain"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"

	StudentSetupPath  = "/student/profile-setup"
	EmployeeSetupPath = "/company/employee-profile-setup"
	CompanySetupPath  = "/company/profile-setup"

	adminPrefix   = "/admin"
	companyPrefix = "/company"
	studentPrefix = "/student"
)

// Decision is the outcome of a guard check: either the request is allowed
// or the caller must be redirected.
type Decision struct {
	Allowed  bool
	Redirect string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(to string) Decision {
	return Decision{Redirect: to}
}

// Authorize gates path for user. user is nil when nobody is signed in.
// It is total and deterministic: identical inputs always yield identical
// decisions.
func Authorize(user *domain.User, path string) Decision {
	if user == nil {
		return redirect(LoginPath)
	}

	// Incomplete profiles are routed through the role's setup flow before
	// anything else is reachable.
	if user.Role == domain.RoleStudent && !user.ProfileCompleted && path != StudentSetupPath {
		return redirect(StudentSetupPath)
	}

	if user.Role == domain.RoleCompany && !user.ProfileCompleted &&
		path != EmployeeSetupPath && path != CompanySetupPath {
		return redirect(EmployeeSetupPath)
	}

	if hasPrefix(path, adminPrefix) && user.Role != domain.RoleAdmin {
		return redirect(DashboardPath)
	}

	if hasPrefix(path, companyPrefix) && user.Role != domain.RoleCompany &&
		!strings.HasPrefix(path, CompanySetupPath) {
		return redirect(DashboardPath)
	}

	if hasPrefix(path, studentPrefix) && user.Role != domain.RoleStudent &&
		!strings.HasPrefix(path, StudentSetupPath) {
		return redirect(DashboardPath)
	}

	return allow()
}

// hasPrefix matches a path segment prefix: "/admin" matches "/admin" and
// "/admin/users" but not "/administration".
func hasPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}

	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
