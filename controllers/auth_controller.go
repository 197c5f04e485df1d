// controllers/auth_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/middleware"
	"stayafrika-backend/models"
	"stayafrika-backend/services"
	"stayafrika-backend/session"
	"stayafrika-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type RegisterPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Bio         string `json:"bio"`
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ---------------------------
// Controller
// ---------------------------

type AuthController struct {
	Auth     *services.AuthService
	Sessions session.Store
}

func NewAuthController(auth *services.AuthService, sessions session.Store) *AuthController {
	return &AuthController{Auth: auth, Sessions: sessions}
}

func (ac *AuthController) secureCookies() bool {
	return strings.EqualFold(utils.EnvOrDefault("COOKIE_SECURE", "false"), "true")
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, int(session.TTL.Seconds()), "/", "", ac.secureCookies(), true)
}

// Register creates the account and logs the caller in.
func (ac *AuthController) Register(c *gin.Context) {
	var payload RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, apperrors.ErrInvalidInput)
		return
	}

	user, err := ac.Auth.Register(c.Request.Context(), services.RegisterInput{
		Email:       payload.Email,
		Password:    payload.Password,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Role:        payload.Role,
		PhoneNumber: payload.PhoneNumber,
		Bio:         payload.Bio,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	token, err := ac.Sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	ac.setSessionCookie(c, token)
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, apperrors.ErrInvalidInput)
		return
	}

	user, err := ac.Auth.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	token, err := ac.Sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	ac.setSessionCookie(c, token)
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (ac *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		_ = ac.Sessions.Destroy(c.Request.Context(), token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.secureCookies(), true)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// UpdateMe patches the caller's own profile fields.
func (ac *AuthController) UpdateMe(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}

	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, apperrors.ErrInvalidInput)
		return
	}

	updated, err := ac.Auth.UpdateProfile(c.Request.Context(), user.ID, patch)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}
