package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/miguelmlop25/gestion-vacantes/internal/delivery/http/response"
	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
	"github.com/miguelmlop25/gestion-vacantes/pkg/apperror"
)

type VacancyHandler struct {
	vacancyUC domain.VacancyUsecase
}

// NewVacancyHandler registers public search routes and employer lifecycle routes
func NewVacancyHandler(public *gin.RouterGroup, employers *gin.RouterGroup, vacancyUC domain.VacancyUsecase) {
	handler := &VacancyHandler{vacancyUC: vacancyUC}

	public.GET("/vacancies", handler.Search)
	public.GET("/vacancies/:id", handler.GetByID)

	employers.POST("/vacancies", handler.Publish)
	employers.GET("/vacancies", handler.ListMine)
	employers.PUT("/vacancies/:id", handler.Update)
	employers.POST("/vacancies/:id/close", handler.Close)
	employers.DELETE("/vacancies/:id", handler.Delete)
}

// VacancyRequest is the payload for publishing or updating a vacancy
type VacancyRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	Requirements   *string    `json:"requirements"`
	Location       string     `json:"location" binding:"required"`
	EmploymentType string     `json:"employment_type" binding:"required,employment_type"`
	Salary         *float64   `json:"salary"`
	ClosesAt       *time.Time `json:"closes_at" binding:"omitempty,future_date"`
	Status         string     `json:"status" binding:"omitempty,oneof=published closed"`
}

func (r *VacancyRequest) toDomain() *domain.Vacancy {
	status := r.Status
	if status == "" {
		status = domain.VacancyStatusPublished
	}
	return &domain.Vacancy{
		Title:          r.Title,
		Description:    r.Description,
		Requirements:   r.Requirements,
		Location:       r.Location,
		EmploymentType: r.EmploymentType,
		Salary:         r.Salary,
		ClosesAt:       r.ClosesAt,
		Status:         status,
	}
}

// Search godoc
// @Summary      Search open vacancies
// @Description  Filters are optional and combined with AND; without filters all open vacancies are returned newest-first
// @Tags         vacancies
// @Produce      json
// @Param        location  query     string  false  "Location substring, case-insensitive"
// @Param        type      query     string  false  "Employment type (exact)"
// @Param        keyword   query     string  false  "Keyword on title or description"
// @Success      200       {object}  response.Response{data=[]domain.Vacancy}
// @Router       /vacancies [get]
func (h *VacancyHandler) Search(c *gin.Context) {
	filter := domain.VacancySearchFilter{
		Location:       c.Query("location"),
		EmploymentType: c.Query("type"),
		Keyword:        c.Query("keyword"),
	}

	vacancies, err := h.vacancyUC.Search(c, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancies retrieved", vacancies)
}

// GetByID godoc
// @Summary      Get a vacancy by id
// @Tags         vacancies
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=domain.Vacancy}
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id} [get]
func (h *VacancyHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid vacancy ID"))
		return
	}

	vacancy, err := h.vacancyUC.GetByID(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy retrieved", vacancy)
}

// Publish godoc
// @Summary      Publish a vacancy
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        body  body      VacancyRequest  true  "Vacancy data"
// @Success      201   {object}  response.Response{data=domain.Vacancy}
// @Failure      400   {object}  response.Response
// @Router       /employers/vacancies [post]
// @Security     BearerAuth
func (h *VacancyHandler) Publish(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	var req VacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	vacancy := req.toDomain()
	if err := h.vacancyUC.Publish(c, employerID, vacancy); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Vacancy published", vacancy)
}

// ListMine godoc
// @Summary      List the employer's vacancies
// @Tags         vacancies
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Vacancy}
// @Router       /employers/vacancies [get]
// @Security     BearerAuth
func (h *VacancyHandler) ListMine(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	vacancies, err := h.vacancyUC.ListByEmployer(c, employerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancies retrieved", vacancies)
}

// Update godoc
// @Summary      Update a vacancy
// @Description  Overwrites the editable fields; the publication date never changes
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Vacancy ID"
// @Param        body  body      VacancyRequest  true  "Vacancy data"
// @Success      200   {object}  response.Response{data=domain.Vacancy}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /employers/vacancies/{id} [put]
// @Security     BearerAuth
func (h *VacancyHandler) Update(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	id, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid vacancy ID"))
		return
	}

	var req VacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	vacancy := req.toDomain()
	vacancy.ID = id
	if err := h.vacancyUC.Update(c, employerID, vacancy); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy updated", vacancy)
}

// Close godoc
// @Summary      Close a vacancy
// @Tags         vacancies
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/vacancies/{id}/close [post]
// @Security     BearerAuth
func (h *VacancyHandler) Close(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	id, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid vacancy ID"))
		return
	}

	// Ownership is enforced here, before the unconditional close below.
	if err := h.requireOwnership(c, employerID, id); err != nil {
		c.Error(err)
		return
	}

	if err := h.vacancyUC.Close(c, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy closed", nil)
}

// Delete godoc
// @Summary      Delete a vacancy and all its applications
// @Tags         vacancies
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/vacancies/{id} [delete]
// @Security     BearerAuth
func (h *VacancyHandler) Delete(c *gin.Context) {
	employerID := c.GetInt64(string(domain.KeyUserID))

	id, err := parseID(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid vacancy ID"))
		return
	}

	if err := h.requireOwnership(c, employerID, id); err != nil {
		c.Error(err)
		return
	}

	if err := h.vacancyUC.Delete(c, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy deleted", nil)
}

func (h *VacancyHandler) requireOwnership(c *gin.Context, employerID, vacancyID int64) error {
	vacancy, err := h.vacancyUC.GetByID(c, vacancyID)
	if err != nil {
		return err
	}
	if vacancy.EmployerID != employerID {
		return apperror.Forbidden("You do not own this vacancy")
	}
	return nil
}

func parseID(c *gin.Context, param string) (int64, error) {
	return strconv.ParseInt(c.Param(param), 10, 64)
}
