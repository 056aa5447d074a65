// package domain holds the entities of the internship program and their
// closed enumerations. All cross-entity references are by string ID and are
// resolved through the registry, never by embedded pointers.
package domain

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	}

	return false
}

// PhaseType enumerates the stages of the program. The zero value is invalid.
type PhaseType string

const (
	PhaseChoose5      PhaseType = "choose5"
	PhaseLiveMeetings PhaseType = "liveMeetings"
	PhaseTop3Choice   PhaseType = "top3Choice"
	PhaseRound1       PhaseType = "round1"
	PhaseRound2       PhaseType = "round2"
	PhaseRound3       PhaseType = "round3"
)

// IsValid reports whether t is one of the known phase types.
func (t PhaseType) IsValid() bool {
	switch t {
	case PhaseChoose5, PhaseLiveMeetings, PhaseTop3Choice, PhaseRound1, PhaseRound2, PhaseRound3:
		return true
	}

	return false
}

// IsReviewRound reports whether t is one of the company-side application
// review rounds.
func (t PhaseType) IsReviewRound() bool {
	switch t {
	case PhaseRound1, PhaseRound2, PhaseRound3:
		return true
	}

	return false
}

// PhaseState is the derived position of a phase relative to the single
// active one. It is never stored; the sequencer computes it on read.
type PhaseState string

const (
	PhasePast   PhaseState = "past"
	PhaseActive PhaseState = "active"
	PhaseFuture PhaseState = "future"
)

// ApplicationStatus is the lifecycle state of a student application.
// Pending is the only non-terminal state.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// IsValid reports whether s is one of the known statuses.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}

	return false
}

// IsTerminal reports whether s permits no further transitions.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             Role      `json:"role"`
	ProfileCompleted bool      `json:"profile_completed"`
	Phone            string    `json:"phone,omitempty"`
	ClassSection     string    `json:"class_section,omitempty"`
	ProfilePicture   string    `json:"profile_picture,omitempty"`
	Technologies     []string  `json:"technologies,omitempty"`
	Github           string    `json:"github,omitempty"`
	Linkedin         string    `json:"linkedin,omitempty"`
	Position         string    `json:"position,omitempty"`
	CompanyID        string    `json:"company_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Company struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	Description              string    `json:"description"`
	Logo                     string    `json:"logo,omitempty"`
	Website                  string    `json:"website,omitempty"`
	Address                  string    `json:"address,omitempty"`
	Technologies             []string  `json:"technologies"`
	Specialties              []string  `json:"specialties"`
	EmployeeIDs              []string  `json:"employee_ids"`
	InternshipDescription    string    `json:"internship_description"`
	InternshipPositions      int       `json:"internship_positions"`
	InternshipRequirements   string    `json:"internship_requirements"`
	InternshipType           string    `json:"internship_type,omitempty"`
	PresentationURL          string    `json:"presentation_url,omitempty"`
	PlanURL                  string    `json:"plan_url,omitempty"`
	RequiresMotivationLetter bool      `json:"requires_motivation_letter"`
	ContactPerson            string    `json:"contact_person,omitempty"`
	ContactEmail             string    `json:"contact_email,omitempty"`
	ContactPhone             string    `json:"contact_phone,omitempty"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

type Phase struct {
	ID          string    `json:"id"`
	Type        PhaseType `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	// StartDate and EndDate are advisory display data. IsActive alone
	// gates phase activity.
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Application is immutable once created except for Status.
type Application struct {
	ID                  string            `json:"id"`
	StudentID           string            `json:"student_id"`
	CompanyID           string            `json:"company_id"`
	PhaseID             string            `json:"phase_id"`
	Priority            int               `json:"priority"`
	Status              ApplicationStatus `json:"status"`
	CvURL               string            `json:"cv_url,omitempty"`
	MotivationLetterURL string            `json:"motivation_letter_url,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

type Meeting struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	StudentIDs []string  `json:"student_ids"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Location   string    `json:"location"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ChatRoom struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	StudentIDs []string  `json:"student_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Message is append-only and attributed to its sender.
type Message struct {
	ID         string    `json:"id"`
	ChatRoomID string    `json:"chat_room_id"`
	SenderID   string    `json:"sender_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type Review struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	CompanyID string    `json:"company_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type FinalReport struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	CompanyID string    `json:"company_id"`
	ReportURL string    `json:"report_url"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
