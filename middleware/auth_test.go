package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayafrika-backend/models"
	"stayafrika-backend/session"
	"stayafrika-backend/storage"
)

func newGuardRouter(t *testing.T) (*gin.Engine, *AuthMiddleware, storage.Storage, session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStorage()
	sessions := session.NewMemoryStore()
	guard := NewAuthMiddleware(sessions, store)

	r := gin.New()
	echo := func(c *gin.Context) {
		user, _ := GetUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	}
	r.GET("/auth", guard.RequireAuthenticated(), echo)
	r.GET("/host", guard.RequireHost(), echo)
	r.GET("/admin", guard.RequireAdmin(), echo)
	r.GET("/open", guard.Identify(), func(c *gin.Context) {
		if user, ok := GetUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"id": user.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": nil})
	})
	return r, guard, store, sessions
}

func login(t *testing.T, store storage.Storage, sessions session.Store, email, role string) *http.Cookie {
	t.Helper()
	user := &models.User{Email: email, Password: "x", FirstName: "A", LastName: "B", Role: role}
	require.NoError(t, store.CreateUser(context.Background(), user))
	token, err := sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookie, Value: token}
}

func doRequest(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGuardRequiresSession(t *testing.T) {
	r, _, _, _ := newGuardRouter(t)

	for _, path := range []string{"/auth", "/host", "/admin"} {
		w := doRequest(r, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := doRequest(r, "/auth", &http.Cookie{Name: SessionCookie, Value: "bogus"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardRoleGates(t *testing.T) {
	r, _, store, sessions := newGuardRouter(t)
	guest := login(t, store, sessions, "guest@example.com", models.RoleGuest)
	host := login(t, store, sessions, "host@example.com", models.RoleHost)
	admin := login(t, store, sessions, "admin@example.com", models.RoleAdmin)

	tests := []struct {
		path   string
		cookie *http.Cookie
		want   int
	}{
		{"/auth", guest, http.StatusOK},
		{"/host", guest, http.StatusForbidden},
		{"/admin", guest, http.StatusForbidden},
		{"/host", host, http.StatusOK},
		{"/admin", host, http.StatusForbidden},
		{"/host", admin, http.StatusOK},
		{"/admin", admin, http.StatusOK},
	}
	for _, tt := range tests {
		w := doRequest(r, tt.path, tt.cookie)
		assert.Equal(t, tt.want, w.Code, "%s as %s", tt.path, tt.cookie.Value)
	}
}

func TestIdentifyAllowsAnonymous(t *testing.T) {
	r, _, store, sessions := newGuardRouter(t)

	w := doRequest(r, "/open", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": null}`, w.Body.String())

	guest := login(t, store, sessions, "guest@example.com", models.RoleGuest)
	w = doRequest(r, "/open", guest)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": 1}`, w.Body.String())
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r, _, store, sessions := newGuardRouter(t)
	guest := login(t, store, sessions, "guest@example.com", models.RoleGuest)

	w := doRequest(r, "/auth", guest)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, sessions.Destroy(context.Background(), guest.Value))
	w = doRequest(r, "/auth", guest)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
