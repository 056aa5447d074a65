// package registry implements the in-memory domain catalogue. It is
// pre-populated at start-up and is the single source of truth for users,
// companies, phases, applications, meetings, chat and feedback artifacts.
//
// Every mutator validates referential integrity before touching state, so a
// failed call leaves the catalogue exactly as it was. Reads return copies;
// callers never hold references into the internal maps.
package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
)

type Registry struct {
	mu sync.RWMutex

	users     map[string]domain.User
	companies map[string]domain.Company
	chatRooms map[string]domain.ChatRoom

	// Insertion order is significant for phases (the wizard sequence) and
	// preserved for the rest so listings are deterministic.
	phases       []domain.Phase
	applications []domain.Application
	meetings     []domain.Meeting
	messages     []domain.Message
	reviews      []domain.Review
	reports      []domain.FinalReport

	companyOrder []string
	userOrder    []string
	roomOrder    []string

	log *slog.Logger
}

func New(log *slog.Logger) *Registry {
	return &Registry{
		users:     make(map[string]domain.User),
		companies: make(map[string]domain.Company),
		chatRooms: make(map[string]domain.ChatRoom),
		log:       log,
	}
}

func notFound(entity, id string) error {
	return &apperrors.ReferenceNotFoundError{Entity: entity, ID: id}
}

// --- lookups ---

func (r *Registry) UserByID(id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, notFound("user", id)
	}

	return u, nil
}

func (r *Registry) CompanyByID(id string) (domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companies[id]
	if !ok {
		return domain.Company{}, notFound("company", id)
	}

	return c, nil
}

func (r *Registry) PhaseByID(id string) (domain.Phase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.phases {
		if p.ID == id {
			return p, nil
		}
	}

	return domain.Phase{}, notFound("phase", id)
}

func (r *Registry) ApplicationByID(id string) (domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.applications {
		if a.ID == id {
			return a, nil
		}
	}

	return domain.Application{}, notFound("application", id)
}

func (r *Registry) ChatRoomByID(id string) (domain.ChatRoom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.chatRooms[id]
	if !ok {
		return domain.ChatRoom{}, notFound("chat room", id)
	}

	return room, nil
}

func (r *Registry) FinalReportByID(id string) (domain.FinalReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rep := range r.reports {
		if rep.ID == id {
			return rep, nil
		}
	}

	return domain.FinalReport{}, notFound("final report", id)
}

// --- ordered snapshots ---

func (r *Registry) Phases() []domain.Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Phase, len(r.phases))
	copy(out, r.phases)

	return out
}

func (r *Registry) Applications() []domain.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Application, len(r.applications))
	copy(out, r.applications)

	return out
}

func (r *Registry) Companies() []domain.Company {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Company, 0, len(r.companyOrder))
	for _, id := range r.companyOrder {
		out = append(out, r.companies[id])
	}

	return out
}

func (r *Registry) Users() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.userOrder))
	for _, id := range r.userOrder {
		out = append(out, r.users[id])
	}

	return out
}

func (r *Registry) Meetings() []domain.Meeting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Meeting, len(r.meetings))
	copy(out, r.meetings)

	return out
}

func (r *Registry) ChatRooms() []domain.ChatRoom {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ChatRoom, 0, len(r.roomOrder))
	for _, id := range r.roomOrder {
		out = append(out, r.chatRooms[id])
	}

	return out
}

func (r *Registry) MessagesByRoom(roomID string) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.chatRooms[roomID]; !ok {
		return nil, notFound("chat room", roomID)
	}

	var out []domain.Message
	for _, m := range r.messages {
		if m.ChatRoomID == roomID {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *Registry) Reviews() []domain.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Review, len(r.reviews))
	copy(out, r.reviews)

	return out
}

func (r *Registry) FinalReports() []domain.FinalReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.FinalReport, len(r.reports))
	copy(out, r.reports)

	return out
}

// --- mutators ---

func (r *Registry) AddUser(u domain.User) error {
	const op = "internal.registry.AddUser"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; ok {
		return fmt.Errorf("%s: %w: user '%s'", op, apperrors.ErrAlreadyExists, u.ID)
	}

	if u.CompanyID != "" {
		if _, ok := r.companies[u.CompanyID]; !ok {
			return fmt.Errorf("%s: %w", op, notFound("company", u.CompanyID))
		}
	}

	r.users[u.ID] = u
	r.userOrder = append(r.userOrder, u.ID)

	return nil
}

// UpsertUser inserts or replaces a user record. Sign-in uses it because the
// demo flow constructs accounts on the fly.
func (r *Registry) UpsertUser(u domain.User) error {
	const op = "internal.registry.UpsertUser"

	r.mu.Lock()
	defer r.mu.Unlock()

	if u.CompanyID != "" {
		if _, ok := r.companies[u.CompanyID]; !ok {
			return fmt.Errorf("%s: %w", op, notFound("company", u.CompanyID))
		}
	}

	if _, ok := r.users[u.ID]; !ok {
		r.userOrder = append(r.userOrder, u.ID)
	}
	r.users[u.ID] = u

	return nil
}

func (r *Registry) AddCompany(c domain.Company) error {
	const op = "internal.registry.AddCompany"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[c.ID]; ok {
		return fmt.Errorf("%s: %w: company '%s'", op, apperrors.ErrAlreadyExists, c.ID)
	}

	for _, id := range c.EmployeeIDs {
		if _, ok := r.users[id]; !ok {
			return fmt.Errorf("%s: %w", op, notFound("user", id))
		}
	}

	r.companies[c.ID] = c
	r.companyOrder = append(r.companyOrder, c.ID)

	return nil
}

// UpdateCompany applies fn to the stored company under the write lock. fn
// receives a copy and returns the replacement; the company's position in the
// listing never changes.
func (r *Registry) UpdateCompany(id string, fn func(domain.Company) domain.Company) (domain.Company, error) {
	const op = "internal.registry.UpdateCompany"

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.companies[id]
	if !ok {
		return domain.Company{}, fmt.Errorf("%s: %w", op, notFound("company", id))
	}

	updated := fn(c)
	updated.ID = c.ID
	r.companies[id] = updated

	return updated, nil
}

// CreateCompanyWithEmployee inserts a company together with its first
// employee account in one locked step, so a failed insert leaves neither
// record behind. The caller links the two records by ID beforehand.
func (r *Registry) CreateCompanyWithEmployee(c domain.Company, u domain.User) error {
	const op = "internal.registry.CreateCompanyWithEmployee"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[c.ID]; ok {
		return fmt.Errorf("%s: %w: company '%s'", op, apperrors.ErrAlreadyExists, c.ID)
	}
	if _, ok := r.users[u.ID]; ok {
		return fmt.Errorf("%s: %w: user '%s'", op, apperrors.ErrAlreadyExists, u.ID)
	}

	r.companies[c.ID] = c
	r.companyOrder = append(r.companyOrder, c.ID)
	r.users[u.ID] = u
	r.userOrder = append(r.userOrder, u.ID)

	return nil
}

func (r *Registry) AttachEmployee(companyID, userID string) error {
	const op = "internal.registry.AttachEmployee"

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.companies[companyID]
	if !ok {
		return fmt.Errorf("%s: %w", op, notFound("company", companyID))
	}
	if _, ok := r.users[userID]; !ok {
		return fmt.Errorf("%s: %w", op, notFound("user", userID))
	}

	c.EmployeeIDs = append(c.EmployeeIDs, userID)
	c.UpdatedAt = time.Now().UTC()
	r.companies[companyID] = c

	return nil
}

func (r *Registry) AddPhase(p domain.Phase) error {
	const op = "internal.registry.AddPhase"

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.phases {
		if existing.ID == p.ID {
			return fmt.Errorf("%s: %w: phase '%s'", op, apperrors.ErrAlreadyExists, p.ID)
		}
	}

	r.phases = append(r.phases, p)

	return nil
}

// UpdatePhase applies fn to the stored phase under the write lock. fn
// receives a copy and returns the replacement; the phase's position in the
// sequence never changes.
func (r *Registry) UpdatePhase(id string, fn func(domain.Phase) domain.Phase) (domain.Phase, error) {
	const op = "internal.registry.UpdatePhase"

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.phases {
		if p.ID == id {
			updated := fn(p)
			updated.ID = p.ID
			r.phases[i] = updated

			return updated, nil
		}
	}

	return domain.Phase{}, fmt.Errorf("%s: %w", op, notFound("phase", id))
}

// SetSoleActivePhase activates the target phase and deactivates every other
// one in a single locked pass, keeping at most one phase active.
func (r *Registry) SetSoleActivePhase(id string) (domain.Phase, error) {
	const op = "internal.registry.SetSoleActivePhase"

	r.mu.Lock()
	defer r.mu.Unlock()

	target := -1
	for i, p := range r.phases {
		if p.ID == id {
			target = i
			break
		}
	}
	if target == -1 {
		return domain.Phase{}, fmt.Errorf("%s: %w", op, notFound("phase", id))
	}

	now := time.Now().UTC()
	for i := range r.phases {
		active := i == target
		if r.phases[i].IsActive != active {
			r.phases[i].IsActive = active
			r.phases[i].UpdatedAt = now
		}
	}

	return r.phases[target], nil
}

func (r *Registry) AddApplications(apps []domain.Application) error {
	const op = "internal.registry.AddApplications"

	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate the whole batch before appending anything so a bad entry
	// cannot leave a partial submission behind.
	for _, a := range apps {
		if _, ok := r.users[a.StudentID]; !ok {
			return fmt.Errorf("%s: %w", op, notFound("user", a.StudentID))
		}
		if _, ok := r.companies[a.CompanyID]; !ok {
			return fmt.Errorf("%s: %w", op, notFound("company", a.CompanyID))
		}

		found := false
		for _, p := range r.phases {
			if p.ID == a.PhaseID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s: %w", op, notFound("phase", a.PhaseID))
		}
	}

	r.applications = append(r.applications, apps...)

	return nil
}

func (r *Registry) SetApplicationStatus(id string, status domain.ApplicationStatus) (domain.Application, error) {
	const op = "internal.registry.SetApplicationStatus"

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.applications {
		if a.ID != id {
			continue
		}

		if a.Status.IsTerminal() {
			return domain.Application{}, fmt.Errorf("%s: %w", op, &apperrors.InvalidTransitionError{
				ApplicationID: id,
				From:          a.Status,
				To:            status,
			})
		}

		r.applications[i].Status = status
		r.applications[i].UpdatedAt = time.Now().UTC()

		return r.applications[i], nil
	}

	return domain.Application{}, fmt.Errorf("%s: %w", op, notFound("application", id))
}

func (r *Registry) AddMeeting(m domain.Meeting) error {
	const op = "internal.registry.AddMeeting"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[m.CompanyID]; !ok {
		return fmt.Errorf("%s: %w", op, notFound("company", m.CompanyID))
	}
	for _, id := range m.StudentIDs {
		if _, ok := r.users[id]; !ok {
			return fmt.Errorf("%s: %w", op, notFound("user", id))
		}
	}

	r.meetings = append(r.meetings, m)

	return nil
}

func (r *Registry) AddChatRoom(room domain.ChatRoom) error {
	const op = "internal.registry.AddChatRoom"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chatRooms[room.ID]; ok {
		return fmt.Errorf("%s: %w: chat room '%s'", op, apperrors.ErrAlreadyExists, room.ID)
	}
	if _, ok := r.companies[room.CompanyID]; !ok {
		return fmt.Errorf("%s: %w", op, notFound("company", room.CompanyID))
	}
	for _, id := range room.StudentIDs {
		if _, ok := r.users[id]; !ok {
			return fmt.Errorf("%s: %w", op, notFound("user", id))
		}
	}

	r.chatRooms[room.ID] = room
	r.roomOrder = append(r.roomOrder, room.ID)

	return nil
}

func (r *Registry) AddMessage(m domain.Message) error {
	const op = "internal.registry.AddMessage"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chatRooms[m.ChatRoomID]; !ok {
		return fmt.Errorf("%s: %w", op, notFound("chat room", m.ChatRoomID))
	}
	if _, ok := r.users[m.SenderID]; !ok {
		return fmt.Errorf("%s: %w", op, notFound("user", m.SenderID))
	}

	r.messages = append(r.messages, m)

	return nil
}

func (r *Registry) AddReview(rev domain.Review) error {
	const op = "internal.registry.AddReview"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[rev.StudentID]; !ok {
		return fmt.Errorf("%s: %w", op, notFound("user", rev.StudentID))
	}
	if _, ok := r.companies[rev.CompanyID]; !ok {
		return fmt.Errorf("%s: %w", op, notFound("company", rev.CompanyID))
	}

	r.reviews = append(r.reviews, rev)

	return nil
}

func (r *Registry) AddFinalReport(rep domain.FinalReport) error {
	const op = "internal.registry.AddFinalReport"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[rep.StudentID]; !ok {
		return fmt.Errorf("%s: %w", op, notFound("user", rep.StudentID))
	}
	if _, ok := r.companies[rep.CompanyID]; !ok {
		return fmt.Errorf("%s: %w", op, notFound("company", rep.CompanyID))
	}

	r.reports = append(r.reports, rep)

	return nil
}

func (r *Registry) SetReportFeedback(id, feedback string) (domain.FinalReport, error) {
	const op = "internal.registry.SetReportFeedback"

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rep := range r.reports {
		if rep.ID == id {
			r.reports[i].Feedback = feedback
			r.reports[i].UpdatedAt = time.Now().UTC()

			return r.reports[i], nil
		}
	}

	return domain.FinalReport{}, fmt.Errorf("%s: %w", op, notFound("final report", id))
}
