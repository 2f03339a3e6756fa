package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/acquisitions/internal/application"
	"github.com/oksasatya/acquisitions/internal/domain/entity"
	"github.com/oksasatya/acquisitions/internal/interface/middleware"
	"github.com/oksasatya/acquisitions/pkg/apperror"
	"github.com/oksasatya/acquisitions/pkg/helpers"
	"github.com/oksasatya/acquisitions/pkg/response"
	"github.com/oksasatya/acquisitions/pkg/validation"
)

type AuthHandler struct {
	Svc     *userapp.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *userapp.Service, logger *logrus.Logger, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required,personname"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,role"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userResponse is the public shape of a user in auth responses.
type userResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

func toUserResponse(u entity.SafeUser) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp POST /api/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	email := normalizeEmail(req.Email)

	u, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrDuplicateEmail):
			response.Message(c, http.StatusConflict, apperror.PublicMessage(err))
		case errors.Is(err, apperror.ErrValidation):
			response.ValidationFailed(c, map[string]string{"role": apperror.PublicMessage(err)})
		default:
			_ = c.Error(err)
		}
		return
	}

	if !h.issueSession(c, u) {
		return
	}
	h.Logger.WithFields(logrus.Fields{"email": email, "request_id": c.GetString("request_id")}).Info("user registered successfully")
	c.JSON(http.StatusCreated, authResponse{Message: "User registered", User: toUserResponse(u)})
}

// SignIn POST /api/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Authenticate(c.Request.Context(), normalizeEmail(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidCredentials) {
			response.Message(c, http.StatusUnauthorized, apperror.PublicMessage(err))
			return
		}
		_ = c.Error(err)
		return
	}

	if !h.issueSession(c, u) {
		return
	}
	c.JSON(http.StatusOK, authResponse{Message: "User signed in", User: toUserResponse(u)})
}

// SignOut POST /api/auth/sign-out
// Always succeeds; an active redis session named by the token is revoked.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if uid := c.GetString(middleware.CtxUserID); uid != "" {
		if err := h.Svc.RevokeSession(c.Request.Context(), uid, c.GetString(middleware.CtxSessionID)); err != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Warn("revoke session failed")
		}
	}
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "User signed out")
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(u)})
}

func (h *AuthHandler) issueSession(c *gin.Context, u entity.SafeUser) bool {
	sess, err := h.Svc.IssueToken(c.Request.Context(), u)
	if err != nil {
		_ = c.Error(err)
		return false
	}
	h.Cookies.SetToken(c, sess.Token, sess.ExpiresAt)
	return true
}
