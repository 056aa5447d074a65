package registry

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/stazhbg/internship-portal/internal/domain"
)

// Seed loads the demo catalogue: the six program phases in wizard order,
// three partner companies with their employee accounts, a handful of
// students, and enough applications, meetings and chat traffic to exercise
// every view.
func Seed(log *slog.Logger) (*Registry, error) {
	r := New(log)

	now := time.Now().UTC()
	programStart := time.Date(now.Year(), time.March, 1, 0, 0, 0, 0, time.UTC)

	companies := []domain.Company{
		{
			ID:                       "comp-nemetschek",
			Name:                     "Nemetschek Bulgaria",
			Description:              "Software engineering for the construction industry.",
			Website:                  "https://nemetschek.bg",
			Address:                  "Sofia, 1 Business Park",
			Technologies:             []string{"C++", "C#", "TypeScript"},
			Specialties:              []string{"CAD", "Cloud"},
			InternshipDescription:    "Work on a desktop CAD plugin with a mentor.",
			InternshipPositions:      4,
			InternshipRequirements:   "Basic C++ or C# knowledge.",
			InternshipType:           "onsite",
			RequiresMotivationLetter: true,
			ContactPerson:            "Maria Petrova",
			ContactEmail:             "internships@nemetschek.bg",
			CreatedAt:                programStart,
			UpdatedAt:                programStart,
		},
		{
			ID:                     "comp-chaos",
			Name:                   "Chaos Group",
			Description:            "Rendering and visualization software.",
			Website:                "https://chaos.com",
			Address:                "Sofia, Mladost 1A",
			Technologies:           []string{"C++", "Python"},
			Specialties:            []string{"Graphics", "Rendering"},
			InternshipDescription:  "Ray-tracing tooling and test automation.",
			InternshipPositions:    3,
			InternshipRequirements: "Interest in computer graphics.",
			InternshipType:         "hybrid",
			ContactPerson:          "Ivan Dimitrov",
			ContactEmail:           "careers@chaos.com",
			CreatedAt:              programStart,
			UpdatedAt:              programStart,
		},
		{
			ID:                     "comp-sap",
			Name:                   "SAP Labs Bulgaria",
			Description:            "Enterprise software development lab.",
			Website:                "https://sap.com",
			Address:                "Sofia, Business Park building 10",
			Technologies:           []string{"Java", "Go", "JavaScript"},
			Specialties:            []string{"Cloud", "Enterprise"},
			InternshipDescription:  "Cloud platform services internship.",
			InternshipPositions:    6,
			InternshipRequirements: "Java or Go fundamentals.",
			InternshipType:         "online",
			ContactPerson:          "Elena Georgieva",
			ContactEmail:           "students@sap.com",
			CreatedAt:              programStart,
			UpdatedAt:              programStart,
		},
	}

	for _, c := range companies {
		if err := r.AddCompany(c); err != nil {
			return nil, fmt.Errorf("seed company: %w", err)
		}
	}

	users := []domain.User{
		{
			ID: "admin-1", Email: "admin@school.bg", Name: "Program Admin",
			Role: domain.RoleAdmin, ProfileCompleted: true,
		},
		{
			ID: "student-1", Email: "georgi@school.bg", Name: "Georgi Ivanov",
			Role: domain.RoleStudent, ProfileCompleted: true,
			ClassSection: "11A", Technologies: []string{"Go", "Python"},
		},
		{
			ID: "student-2", Email: "maria@school.bg", Name: "Maria Stoyanova",
			Role: domain.RoleStudent, ProfileCompleted: true,
			ClassSection: "11B", Technologies: []string{"C++", "JavaScript"},
		},
		{
			ID: "student-3", Email: "petar@school.bg", Name: "Petar Kolev",
			Role: domain.RoleStudent, ProfileCompleted: false,
			ClassSection: "11A",
		},
		{
			ID: "emp-nemetschek", Email: "maria.petrova@nemetschek.bg", Name: "Maria Petrova",
			Role: domain.RoleCompany, ProfileCompleted: true,
			Position: "Engineering Manager", CompanyID: "comp-nemetschek",
		},
		{
			ID: "emp-chaos", Email: "ivan.dimitrov@chaos.com", Name: "Ivan Dimitrov",
			Role: domain.RoleCompany, ProfileCompleted: true,
			Position: "Team Lead", CompanyID: "comp-chaos",
		},
	}

	for i := range users {
		users[i].CreatedAt = programStart
		users[i].UpdatedAt = programStart
		if err := r.AddUser(users[i]); err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
	}

	if err := r.AttachEmployee("comp-nemetschek", "emp-nemetschek"); err != nil {
		return nil, fmt.Errorf("seed employee link: %w", err)
	}
	if err := r.AttachEmployee("comp-chaos", "emp-chaos"); err != nil {
		return nil, fmt.Errorf("seed employee link: %w", err)
	}

	phaseSpan := func(weeks int) (time.Time, time.Time) {
		start := programStart.AddDate(0, 0, weeks*7)
		return start, start.AddDate(0, 0, 7)
	}

	phaseDefs := []struct {
		id   string
		typ  domain.PhaseType
		name string
		desc string
	}{
		{"phase-choose5", domain.PhaseChoose5, "Company shortlist", "Students pick up to five companies to meet."},
		{"phase-meetings", domain.PhaseLiveMeetings, "Live meetings", "Companies present and meet shortlisted students."},
		{"phase-top3", domain.PhaseTop3Choice, "Top 3 ranking", "Students rank their final three choices and upload documents."},
		{"phase-round1", domain.PhaseRound1, "Application round 1", "First-choice companies review applications."},
		{"phase-round2", domain.PhaseRound2, "Application round 2", "Second-choice companies review remaining applications."},
		{"phase-round3", domain.PhaseRound3, "Application round 3", "Final matching round."},
	}

	for i, def := range phaseDefs {
		start, end := phaseSpan(i)
		phase := domain.Phase{
			ID:          def.id,
			Type:        def.typ,
			Name:        def.name,
			Description: def.desc,
			StartDate:   start,
			EndDate:     end,
			IsActive:    def.typ == domain.PhaseChoose5,
			CreatedAt:   programStart,
			UpdatedAt:   programStart,
		}
		if err := r.AddPhase(phase); err != nil {
			return nil, fmt.Errorf("seed phase: %w", err)
		}
	}

	apps := []domain.Application{
		{
			ID: "app-1", StudentID: "student-1", CompanyID: "comp-nemetschek",
			PhaseID: "phase-choose5", Priority: 1, Status: domain.StatusPending,
			CreatedAt: programStart, UpdatedAt: programStart,
		},
		{
			ID: "app-2", StudentID: "student-1", CompanyID: "comp-chaos",
			PhaseID: "phase-choose5", Priority: 2, Status: domain.StatusPending,
			CreatedAt: programStart, UpdatedAt: programStart,
		},
		{
			ID: "app-3", StudentID: "student-2", CompanyID: "comp-sap",
			PhaseID: "phase-choose5", Priority: 1, Status: domain.StatusPending,
			CreatedAt: programStart, UpdatedAt: programStart,
		},
	}
	if err := r.AddApplications(apps); err != nil {
		return nil, fmt.Errorf("seed applications: %w", err)
	}

	meetingStart := programStart.AddDate(0, 0, 10).Add(10 * time.Hour)
	meetings := []domain.Meeting{
		{
			ID: "meeting-1", CompanyID: "comp-nemetschek",
			StudentIDs: []string{"student-1", "student-2"},
			StartTime:  meetingStart, EndTime: meetingStart.Add(time.Hour),
			Location: "Room 204", Notes: "Bring laptops.",
			CreatedAt: programStart, UpdatedAt: programStart,
		},
		{
			ID: "meeting-2", CompanyID: "comp-chaos",
			StudentIDs: []string{"student-1"},
			StartTime:  meetingStart.Add(2 * time.Hour), EndTime: meetingStart.Add(3 * time.Hour),
			Location: "Online", CreatedAt: programStart, UpdatedAt: programStart,
		},
	}
	for _, m := range meetings {
		if err := r.AddMeeting(m); err != nil {
			return nil, fmt.Errorf("seed meeting: %w", err)
		}
	}

	room := domain.ChatRoom{
		ID: "room-1", CompanyID: "comp-nemetschek",
		StudentIDs: []string{"student-1", "student-2"},
		CreatedAt:  programStart, UpdatedAt: programStart,
	}
	if err := r.AddChatRoom(room); err != nil {
		return nil, fmt.Errorf("seed chat room: %w", err)
	}

	msg := domain.Message{
		ID: "msg-1", ChatRoomID: "room-1", SenderID: "emp-nemetschek",
		Content:   "Welcome! Ask us anything about the internship.",
		CreatedAt: programStart,
	}
	if err := r.AddMessage(msg); err != nil {
		return nil, fmt.Errorf("seed message: %w", err)
	}

	return r, nil
}
