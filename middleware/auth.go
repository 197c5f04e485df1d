package middleware

import (
	"github.com/gin-gonic/gin"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
	"stayafrika-backend/session"
	"stayafrika-backend/storage"
	"stayafrika-backend/utils"
)

// SessionCookie is the opaque session token cookie.
const SessionCookie = "sid"

const userKey = "currentUser"

// AuthMiddleware resolves the session cookie to a user and gates routes by
// role. Identity resolution is read-only; it never mutates the store.
type AuthMiddleware struct {
	Sessions session.Store
	Store    storage.Storage
}

func NewAuthMiddleware(sessions session.Store, store storage.Storage) *AuthMiddleware {
	return &AuthMiddleware{Sessions: sessions, Store: store}
}

// resolve loads the caller from the session cookie, or nil when anonymous.
func (m *AuthMiddleware) resolve(c *gin.Context) (*models.User, error) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return nil, nil
	}
	userID, err := m.Sessions.Get(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}
	return m.Store.GetUser(c.Request.Context(), userID)
}

// GetUser returns the authenticated caller placed by the middleware.
func GetUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// RequireAuthenticated rejects anonymous callers with 401.
func (m *AuthMiddleware) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolve(c)
		if err != nil || user == nil {
			utils.JSONError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireHost rejects anonymous callers with 401 and callers outside
// {host, admin} with 403.
func (m *AuthMiddleware) RequireHost() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolve(c)
		if err != nil || user == nil {
			utils.JSONError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if user.Role != models.RoleHost && user.Role != models.RoleAdmin {
			utils.JSONError(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolve(c)
		if err != nil || user == nil {
			utils.JSONError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if user.Role != models.RoleAdmin {
			utils.JSONError(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// Identify resolves the caller when present but lets anonymous requests
// through. Used by the public catalog so admins can ask for unapproved rows.
func (m *AuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := m.resolve(c); err == nil && user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}
