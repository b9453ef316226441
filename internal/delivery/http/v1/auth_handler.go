package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miguelmlop25/gestion-vacantes/internal/delivery/http/response"
	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
	"github.com/miguelmlop25/gestion-vacantes/pkg/apperror"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers registration and login routes. The loginLimiter
// applies to the login route only.
func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, loginLimiter gin.HandlerFunc, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := public.Group("/auth")
	{
		auth.POST("/register/candidate", handler.RegisterCandidate)
		auth.POST("/register/employer", handler.RegisterEmployer)
		auth.POST("/login", loginLimiter, handler.Login)
	}

	protected.GET("/auth/me", handler.Me)
}

type RegisterCandidateRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Name     string   `json:"name" binding:"required"`
	Password string   `json:"password" binding:"required,min=8"`
	Skills   []string `json:"skills"`
}

// RegisterCandidate godoc
// @Summary      Register a candidate account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterCandidateRequest  true  "Candidate data"
// @Success      201   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /auth/register/candidate [post]
func (h *AuthHandler) RegisterCandidate(c *gin.Context) {
	var req RegisterCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.RegisterCandidate(c, req.Email, req.Name, req.Password, req.Skills)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate account created", user)
}

type RegisterEmployerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanyName string `json:"company_name" binding:"required"`
}

// RegisterEmployer godoc
// @Summary      Register an employer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterEmployerRequest  true  "Employer data"
// @Success      201   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /auth/register/employer [post]
func (h *AuthHandler) RegisterEmployer(c *gin.Context) {
	var req RegisterEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.RegisterEmployer(c, req.Email, req.Name, req.Password, req.CompanyName)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Employer account created", user)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login godoc
// @Summary      Log in and receive a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  response.Response{data=LoginResponse}
// @Failure      401   {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, user, err := h.authUC.Login(c, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", LoginResponse{Token: token, User: user})
}

// Me godoc
// @Summary      Get the authenticated account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}
