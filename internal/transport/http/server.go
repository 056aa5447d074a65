// package http implements the HTTP transport layer for the portal.
// It decodes incoming requests, applies the session and role guards, calls
// the appropriate service methods and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/authz"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stazhbg/internship-portal/internal/service"
	"github.com/stazhbg/internship-portal/internal/validation"
	"github.com/stazhbg/internship-portal/pkg/logger/sl"
)

// Server holds the dependencies of the HTTP layer.
type Server struct {
	log                *slog.Logger
	identityService    service.IdentityService
	phaseService       service.PhaseService
	applicationService service.ApplicationService
	companyService     service.CompanyService
	meetingService     service.MeetingService
	chatService        service.ChatService
	reportService      service.ReportService
	adminService       service.AdminService
}

func NewServer(
	log *slog.Logger,
	is service.IdentityService,
	ps service.PhaseService,
	as service.ApplicationService,
	cos service.CompanyService,
	ms service.MeetingService,
	cs service.ChatService,
	rs service.ReportService,
	adm service.AdminService,
) *Server {
	return &Server{
		log:                log,
		identityService:    is,
		phaseService:       ps,
		applicationService: as,
		companyService:     cos,
		meetingService:     ms,
		chatService:        cs,
		reportService:      rs,
		adminService:       adm,
	}
}

// Routes sets up the router with all middleware and endpoints. Everything
// except sign-in and metrics sits behind the session and role guards.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())
	mux.Post("/auth/sign-in", s.PostSignIn)

	mux.Group(func(r chi.Router) {
		r.Use(s.withIdentity)

		// Auth endpoints need a session but bypass the view guard, otherwise
		// an incomplete profile could never be completed.
		r.Group(func(r chi.Router) {
			r.Use(s.requireIdentity)

			r.Post("/auth/sign-out", s.PostSignOut)
			r.Get("/auth/me", s.GetMe)
			r.Patch("/auth/profile", s.PatchProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.guard)

			r.Get("/phases", s.GetPhases)
			r.Get("/companies", s.GetCompanies)
			r.Get("/companies/{id}", s.GetCompany)
			r.Get("/applications", s.GetApplications)
			r.Get("/meetings", s.GetMeetings)

			r.Get("/chat/rooms", s.GetChatRooms)
			r.Get("/chat/rooms/{roomID}/messages", s.GetRoomMessages)
			r.Post("/chat/rooms/{roomID}/messages", s.PostRoomMessage)

			r.Post("/student/choose-5", s.PostShortlist)
			r.Post("/student/top3", s.PostTopThree)
			r.Post("/student/reviews", s.PostReview)
			r.Post("/student/report", s.PostReport)
			r.Get("/student/reports", s.GetReports)

			// The setup alias keeps the profile form reachable while the
			// employee's own profile is still incomplete.
			r.Patch("/company/profile", s.PatchCompanyProfile)
			r.Patch("/company/profile-setup", s.PatchCompanyProfile)
			r.Post("/company/applications/{id}/decision", s.PostDecision)

			r.Post("/admin/phases", s.PostPhase)
			r.Patch("/admin/phases/{id}", s.PatchPhase)
			r.Post("/admin/phases/{id}/activate", s.PostActivatePhase)
			r.Post("/admin/phases/{id}/deactivate", s.PostDeactivatePhase)
			r.Get("/admin/users", s.GetUsers)
			r.Post("/admin/invites", s.PostInvite)
			r.Post("/admin/meetings", s.PostMeeting)
			r.Get("/admin/statistics", s.GetStatistics)
			r.Get("/admin/reports", s.GetReports)
			r.Post("/admin/reports/{id}/feedback", s.PostReportFeedback)
			r.Get("/admin/reviews", s.GetReviews)
		})
	})

	return mux
}

func (s *Server) PostSignIn(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostSignIn"

	var req signInRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	user := domain.User{
		ID:               req.ID,
		Email:            req.Email,
		Name:             req.Name,
		Role:             domain.Role(req.Role),
		ProfileCompleted: req.ProfileCompleted,
		Phone:            req.Phone,
		ClassSection:     req.ClassSection,
		Position:         req.Position,
		CompanyID:        req.CompanyID,
		Technologies:     req.Technologies,
	}

	token, signedIn, err := s.identityService.SignIn(r.Context(), user)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  signedIn,
	})
}

func (s *Server) PostSignOut(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostSignOut"

	if err := s.identityService.SignOut(r.Context(), tokenFrom(r.Context())); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]*domain.User{"user": identityFrom(r.Context())})
}

func (s *Server) PatchProfile(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PatchProfile"

	var req updateProfileRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	update := service.ProfileUpdate{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		ClassSection:     req.ClassSection,
		ProfilePicture:   req.ProfilePicture,
		Technologies:     req.Technologies,
		Github:           req.Github,
		Linkedin:         req.Linkedin,
		Position:         req.Position,
		ProfileCompleted: req.ProfileCompleted,
	}

	user, err := s.identityService.UpdateProfile(r.Context(), tokenFrom(r.Context()), update)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.User{"user": user})
}

func (s *Server) GetPhases(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetPhases"

	user := identityFrom(r.Context())

	timeline, err := s.phaseService.Timeline(r.Context(), user.Role)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]service.PhaseStatus{"phases": timeline})
}

func (s *Server) GetCompanies(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetCompanies"

	companies, err := s.adminService.Companies(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Company{"companies": companies})
}

func (s *Server) GetCompany(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetCompany"

	company, err := s.adminService.Company(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Company{"company": company})
}

func (s *Server) GetApplications(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetApplications"

	apps, err := s.applicationService.ListFor(r.Context(), *identityFrom(r.Context()))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Application{"applications": apps})
}

func (s *Server) PostShortlist(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostShortlist"

	var req shortlistRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	apps, err := s.applicationService.SubmitShortlist(r.Context(), identityFrom(r.Context()).ID, req.CompanyIDs)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string][]domain.Application{"applications": apps})
}

func (s *Server) PostTopThree(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostTopThree"

	var req topThreeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	apps, err := s.applicationService.SubmitTopThree(
		r.Context(),
		identityFrom(r.Context()).ID,
		req.CompanyIDs,
		req.CvURL,
		req.MotivationLetterURL,
	)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string][]domain.Application{"applications": apps})
}

func (s *Server) PatchCompanyProfile(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PatchCompanyProfile"

	var req updateCompanyRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	update := service.CompanyProfileUpdate{
		Name:                     req.Name,
		Description:              req.Description,
		Logo:                     req.Logo,
		Website:                  req.Website,
		Address:                  req.Address,
		Technologies:             req.Technologies,
		Specialties:              req.Specialties,
		InternshipDescription:    req.InternshipDescription,
		InternshipPositions:      req.InternshipPositions,
		InternshipRequirements:   req.InternshipRequirements,
		InternshipType:           req.InternshipType,
		PresentationURL:          req.PresentationURL,
		PlanURL:                  req.PlanURL,
		RequiresMotivationLetter: req.RequiresMotivationLetter,
		ContactPerson:            req.ContactPerson,
		ContactEmail:             req.ContactEmail,
		ContactPhone:             req.ContactPhone,
	}

	company, err := s.companyService.UpdateProfile(r.Context(), *identityFrom(r.Context()), update)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Company{"company": company})
}

func (s *Server) PostDecision(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostDecision"

	var req decisionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	app, err := s.applicationService.Decide(
		r.Context(),
		*identityFrom(r.Context()),
		chi.URLParam(r, "id"),
		req.Decision == "accept",
	)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Application{"application": app})
}

func (s *Server) GetMeetings(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetMeetings"

	meetings, err := s.meetingService.ListFor(r.Context(), *identityFrom(r.Context()))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Meeting{"meetings": meetings})
}

func (s *Server) PostMeeting(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostMeeting"

	var req scheduleMeetingRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		s.handleServiceError(w, op, fmt.Errorf("%w: bad start_time: %v", apperrors.ErrValidation, err))
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		s.handleServiceError(w, op, fmt.Errorf("%w: bad end_time: %v", apperrors.ErrValidation, err))
		return
	}

	meeting, err := s.meetingService.Schedule(r.Context(), *identityFrom(r.Context()), service.MeetingInput{
		CompanyID:  req.CompanyID,
		StudentIDs: req.StudentIDs,
		StartTime:  start,
		EndTime:    end,
		Location:   req.Location,
		Notes:      req.Notes,
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Meeting{"meeting": meeting})
}

func (s *Server) GetChatRooms(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetChatRooms"

	rooms, err := s.chatService.RoomsFor(r.Context(), *identityFrom(r.Context()))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.ChatRoom{"rooms": rooms})
}

func (s *Server) GetRoomMessages(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetRoomMessages"

	messages, err := s.chatService.Messages(r.Context(), *identityFrom(r.Context()), chi.URLParam(r, "roomID"))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Message{"messages": messages})
}

func (s *Server) PostRoomMessage(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostRoomMessage"

	var req postMessageRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	msg, err := s.chatService.Post(r.Context(), *identityFrom(r.Context()), chi.URLParam(r, "roomID"), req.Content)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Message{"message": msg})
}

func (s *Server) PostReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostReview"

	var req submitReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	review, err := s.reportService.SubmitReview(
		r.Context(), *identityFrom(r.Context()), req.CompanyID, req.Rating, req.Comment)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Review{"review": review})
}

func (s *Server) PostReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostReport"

	var req submitReportRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	report, err := s.reportService.SubmitReport(
		r.Context(), *identityFrom(r.Context()), req.CompanyID, req.ReportURL)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.FinalReport{"report": report})
}

func (s *Server) GetReports(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetReports"

	reports, err := s.reportService.ReportsFor(r.Context(), *identityFrom(r.Context()))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.FinalReport{"reports": reports})
}

func (s *Server) PostReportFeedback(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostReportFeedback"

	var req reportFeedbackRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	report, err := s.reportService.AddFeedback(
		r.Context(), *identityFrom(r.Context()), chi.URLParam(r, "id"), req.Feedback)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.FinalReport{"report": report})
}

func (s *Server) GetReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetReviews"

	reviews, err := s.reportService.Reviews(r.Context(), *identityFrom(r.Context()))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Review{"reviews": reviews})
}

func (s *Server) PostPhase(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostPhase"

	var req createPhaseRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	phase, err := s.phaseService.Create(r.Context(), service.PhaseInput{
		Type:        domain.PhaseType(req.Type),
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Phase{"phase": phase})
}

func (s *Server) PatchPhase(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PatchPhase"

	var req updatePhaseRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	phase, err := s.phaseService.Update(r.Context(), chi.URLParam(r, "id"), service.PhaseInput{
		Type:        domain.PhaseType(req.Type),
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Phase{"phase": phase})
}

func (s *Server) PostActivatePhase(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostActivatePhase"

	phase, err := s.phaseService.SetActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Phase{"phase": phase})
}

func (s *Server) PostDeactivatePhase(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostDeactivatePhase"

	phase, err := s.phaseService.Deactivate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Phase{"phase": phase})
}

func (s *Server) GetUsers(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetUsers"

	users, err := s.adminService.Users(r.Context(), *identityFrom(r.Context()))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.User{"users": users})
}

func (s *Server) PostInvite(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostInvite"

	var req inviteRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	company, employee, err := s.adminService.InviteCompany(r.Context(), *identityFrom(r.Context()), service.InviteInput{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]any{
		"company":  company,
		"employee": employee,
	})
}

func (s *Server) GetStatistics(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetStatistics"

	stats, err := s.applicationService.Statistics(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]service.CompanyStats{"statistics": stats})
}

// respond encodes data to JSON and writes it with the given status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate deserializes a JSON request body into a struct and runs
// validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all handlers.
// It logs the internal error and maps it to a user-facing HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var validationErr *validation.ValidationError

	switch {
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, apperrors.ErrValidation):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNoActiveSession):
		s.respond(w, http.StatusUnauthorized, map[string]string{
			"error":    apperrors.ErrNoActiveSession.Error(),
			"redirect": authz.LoginPath,
		})
	case errors.Is(err, apperrors.ErrForbidden):
		s.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrPhaseNotActive):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrAlreadyExists):
		s.respondError(w, http.StatusConflict, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
