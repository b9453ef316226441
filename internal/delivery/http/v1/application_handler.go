package v1

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/miguelmlop25/gestion-vacantes/internal/delivery/http/response"
	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
	"github.com/miguelmlop25/gestion-vacantes/pkg/apperror"
	"github.com/miguelmlop25/gestion-vacantes/pkg/storage"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers candidate and employer application routes
func NewApplicationHandler(candidates *gin.RouterGroup, employers *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	candidates.POST("/vacancies/:id/apply", handler.Apply)
	candidates.GET("/applications", handler.MyApplications)
	candidates.GET("/dashboard", handler.Dashboard)
	candidates.GET("/vacancies/:id/applied", handler.HasApplied)

	employers.GET("/vacancies/:id/applications", handler.ListByVacancy)
	employers.GET("/applications", handler.ListAll)
	employers.GET("/applications/:id/cv", handler.DownloadCV)
	employers.POST("/applications/:id/interview", handler.ScheduleInterview)
	employers.POST("/applications/:id/reject", handler.Reject)
	employers.POST("/applications/:id/review", handler.MarkReviewed)
}

// Apply godoc
// @Summary      Apply to a vacancy
// @Description  Multipart upload; the "cv" file is required (pdf, doc or docx, max 5MB)
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path      int   true  "Vacancy ID"
// @Param        cv  formData  file  true  "CV attachment"
// @Success      201  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /candidates/vacancies/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	candidateID := c.GetInt64(string(domain.KeyUserID))

	vacancyID, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid vacancy ID"))
		return
	}

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		c.Error(apperror.InvalidAttachment("A CV attachment is required"))
		return
	}
	if fileHeader.Size > storage.MaxAttachmentSize {
		c.Error(apperror.InvalidAttachment("attachment exceeds the 5MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxAttachmentSize+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	app, err := h.applicationUC.Apply(c, candidateID, vacancyID, fileHeader.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// MyApplications godoc
// @Summary      List the candidate's applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /candidates/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	candidateID := c.GetInt64(string(domain.KeyUserID))

	applications, err := h.applicationUC.ListByCandidate(c, candidateID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// DashboardCounts summarizes a candidate's activity
type DashboardCounts struct {
	PendingApplications int64 `json:"pending_applications"`
	UpcomingInterviews  int64 `json:"upcoming_interviews"`
}

// Dashboard godoc
// @Summary      Candidate dashboard counters
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=DashboardCounts}
// @Router       /candidates/dashboard [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Dashboard(c *gin.Context) {
	candidateID := c.GetInt64(string(domain.KeyUserID))

	pending, err := h.applicationUC.CountPending(c, candidateID)
	if err != nil {
		c.Error(err)
		return
	}
	interviews, err := h.applicationUC.CountUpcomingInterviews(c, candidateID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard counts", DashboardCounts{
		PendingApplications: pending,
		UpcomingInterviews:  interviews,
	})
}

// HasApplied godoc
// @Summary      Check whether the candidate already applied to a vacancy
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=bool}
// @Router       /candidates/vacancies/{id}/applied [get]
// @Security     BearerAuth
func (h *ApplicationHandler) HasApplied(c *gin.Context) {
	candidateID := c.GetInt64(string(domain.KeyUserID))

	vacancyID, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid vacancy ID"))
		return
	}

	applied, err := h.applicationUC.HasApplied(c, candidateID, vacancyID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application check", applied)
}

// ListByVacancy godoc
// @Summary      List applications for one of the employer's vacancies
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      403  {object}  response.Response
// @Router       /employers/vacancies/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByVacancy(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	vacancyID, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid vacancy ID"))
		return
	}

	applications, err := h.applicationUC.ListByVacancy(c, employerID, vacancyID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// ListAll godoc
// @Summary      List applications across all the employer's vacancies
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /employers/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListAll(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	applications, err := h.applicationUC.ListByEmployer(c, employerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// AttachmentLink points at a downloadable copy of a submitted CV
type AttachmentLink struct {
	URL string `json:"url"`
}

// DownloadCV godoc
// @Summary      Get a download link for an application's CV
// @Description  Returns a presigned URL (S3) or a server path (local storage)
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=AttachmentLink}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/applications/{id}/cv [get]
// @Security     BearerAuth
func (h *ApplicationHandler) DownloadCV(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	applicationID, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	location, err := h.applicationUC.ResolveAttachment(c, employerID, applicationID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Attachment link generated", AttachmentLink{URL: location})
}

// ScheduleInterviewRequest is the payload for booking an interview
type ScheduleInterviewRequest struct {
	At      time.Time `json:"at" binding:"required,future_date" time_format:"2006-01-02T15:04:05Z07:00"`
	Details string    `json:"details"`
}

// ScheduleInterview godoc
// @Summary      Schedule an interview
// @Description  Books the interview and moves the application to accepted
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "Application ID"
// @Param        body  body      ScheduleInterviewRequest  true  "Interview data"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /employers/applications/{id}/interview [post]
// @Security     BearerAuth
func (h *ApplicationHandler) ScheduleInterview(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	applicationID, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.ScheduleInterview(c, employerID, applicationID, req.At, req.Details)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview scheduled", app)
}

// RejectRequest carries the optional rejection reason
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject godoc
// @Summary      Reject an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int            true   "Application ID"
// @Param        body  body      RejectRequest  false  "Rejection reason"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /employers/applications/{id}/reject [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Reject(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	applicationID, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.Reject(c, employerID, applicationID, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application rejected", app)
}

// MarkReviewed godoc
// @Summary      Mark an application as reviewed
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /employers/applications/{id}/review [post]
// @Security     BearerAuth
func (h *ApplicationHandler) MarkReviewed(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	applicationID, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	app, err := h.applicationUC.MarkReviewed(c, employerID, applicationID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application marked as reviewed", app)
}
