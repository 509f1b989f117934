package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"visioblog/backend/internal/api/handler"
	"visioblog/backend/internal/models"
	"visioblog/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityStorage serves the two fixed identities the auth tests need. The
// rest of the interface is inherited and unused.
type identityStorage struct {
	storage.Storage
}

func (identityStorage) GetUserByID(id string) (*models.User, error) {
	if id == "user-1" {
		return &models.User{ID: "user-1", Pseudo: "alice", Email: "alice@example.com"}, nil
	}
	return nil, storage.ErrUserNotFound
}

func (identityStorage) GetAdminByID(id string) (*models.Admin, error) {
	if id == "admin-1" {
		return &models.Admin{ID: "admin-1", Pseudo: "titi", Email: "titi@blog.local"}, nil
	}
	return nil, storage.ErrAdminNotFound
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := handler.NewHandler(nil, nil, identityStorage{}, "test-secret")
	r := gin.New()
	r.GET("/token", h.GetToken)
	r.GET("/whoami", h.AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pseudo": c.GetString("pseudo")})
	})
	r.GET("/admin-only", h.AuthRequired(), h.AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func fetchToken(t *testing.T, r *gin.Engine, id, role string) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/token?id="+id+"&role="+role, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestTokenRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	token := fetchToken(t, r, "user-1", "user")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestTokenViaQueryParam(t *testing.T) {
	// Websocket clients cannot set headers; the token rides a query param.
	r := newTestRouter(t)
	token := fetchToken(t, r, "user-1", "user")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTokenUnknownIdentity(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/token?id=ghost&role=user", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthRequired_RejectsMissingAndGarbageTokens(t *testing.T) {
	r := newTestRouter(t)

	for name, header := range map[string]string{
		"missing": "",
		"garbage": "Bearer not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAdminRequired(t *testing.T) {
	r := newTestRouter(t)

	userToken := fetchToken(t, r, "user-1", "user")
	adminToken := fetchToken(t, r, "admin-1", "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
