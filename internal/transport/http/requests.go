package http

type signInRequest struct {
	ID               string   `json:"id" validate:"omitempty,custom_id,max=100"`
	Email            string   `json:"email" validate:"required,email"`
	Name             string   `json:"name" validate:"required,min=2,max=100"`
	Role             string   `json:"role" validate:"required,role"`
	ProfileCompleted bool     `json:"profile_completed"`
	Phone            string   `json:"phone" validate:"omitempty,max=30"`
	ClassSection     string   `json:"class_section" validate:"omitempty,max=10"`
	Position         string   `json:"position" validate:"omitempty,max=100"`
	CompanyID        string   `json:"company_id" validate:"omitempty,custom_id,max=100"`
	Technologies     []string `json:"technologies" validate:"omitempty,dive,min=1,max=50"`
}

type updateProfileRequest struct {
	Name             *string   `json:"name" validate:"omitempty,min=2,max=100"`
	Email            *string   `json:"email" validate:"omitempty,email"`
	Phone            *string   `json:"phone" validate:"omitempty,max=30"`
	ClassSection     *string   `json:"class_section" validate:"omitempty,max=10"`
	ProfilePicture   *string   `json:"profile_picture" validate:"omitempty,max=500"`
	Technologies     *[]string `json:"technologies" validate:"omitempty,dive,min=1,max=50"`
	Github           *string   `json:"github" validate:"omitempty,max=200"`
	Linkedin         *string   `json:"linkedin" validate:"omitempty,max=200"`
	Position         *string   `json:"position" validate:"omitempty,max=100"`
	ProfileCompleted *bool     `json:"profile_completed"`
}

type updateCompanyRequest struct {
	Name                     *string   `json:"name" validate:"omitempty,min=2,max=100"`
	Description              *string   `json:"description" validate:"omitempty,max=2000"`
	Logo                     *string   `json:"logo" validate:"omitempty,max=500"`
	Website                  *string   `json:"website" validate:"omitempty,max=200"`
	Address                  *string   `json:"address" validate:"omitempty,max=200"`
	Technologies             *[]string `json:"technologies" validate:"omitempty,dive,min=1,max=50"`
	Specialties              *[]string `json:"specialties" validate:"omitempty,dive,min=1,max=50"`
	InternshipDescription    *string   `json:"internship_description" validate:"omitempty,max=2000"`
	InternshipPositions      *int      `json:"internship_positions" validate:"omitempty,min=0,max=1000"`
	InternshipRequirements   *string   `json:"internship_requirements" validate:"omitempty,max=2000"`
	InternshipType           *string   `json:"internship_type" validate:"omitempty,oneof=onsite hybrid online"`
	PresentationURL          *string   `json:"presentation_url" validate:"omitempty,max=500"`
	PlanURL                  *string   `json:"plan_url" validate:"omitempty,max=500"`
	RequiresMotivationLetter *bool     `json:"requires_motivation_letter"`
	ContactPerson            *string   `json:"contact_person" validate:"omitempty,min=2,max=100"`
	ContactEmail             *string   `json:"contact_email" validate:"omitempty,email"`
	ContactPhone             *string   `json:"contact_phone" validate:"omitempty,max=30"`
}

type shortlistRequest struct {
	CompanyIDs []string `json:"company_ids" validate:"required,min=1,max=5,dive,required,custom_id"`
}

type topThreeRequest struct {
	CompanyIDs          []string `json:"company_ids" validate:"required,len=3,dive,required,custom_id"`
	CvURL               string   `json:"cv_url" validate:"required,max=500"`
	MotivationLetterURL string   `json:"motivation_letter_url" validate:"omitempty,max=500"`
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

type createPhaseRequest struct {
	Type        string `json:"type" validate:"required,phase_type"`
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	StartDate   string `json:"start_date" validate:"omitempty,max=35"`
	EndDate     string `json:"end_date" validate:"omitempty,max=35"`
}

type updatePhaseRequest struct {
	Type        string `json:"type" validate:"omitempty,phase_type"`
	Name        string `json:"name" validate:"omitempty,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	StartDate   string `json:"start_date" validate:"omitempty,max=35"`
	EndDate     string `json:"end_date" validate:"omitempty,max=35"`
}

type inviteRequest struct {
	CompanyName   string `json:"company_name" validate:"required,min=2,max=100"`
	ContactPerson string `json:"contact_person" validate:"required,min=2,max=100"`
	ContactEmail  string `json:"contact_email" validate:"required,email"`
}

type scheduleMeetingRequest struct {
	CompanyID  string   `json:"company_id" validate:"required,custom_id,max=100"`
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,required,custom_id"`
	StartTime  string   `json:"start_time" validate:"required"`
	EndTime    string   `json:"end_time" validate:"required"`
	Location   string   `json:"location" validate:"required,max=200"`
	Notes      string   `json:"notes" validate:"omitempty,max=500"`
}

type postMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type submitReviewRequest struct {
	CompanyID string `json:"company_id" validate:"required,custom_id,max=100"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"omitempty,max=2000"`
}

type submitReportRequest struct {
	CompanyID string `json:"company_id" validate:"required,custom_id,max=100"`
	ReportURL string `json:"report_url" validate:"required,max=500"`
}

type reportFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,min=1,max=2000"`
}
