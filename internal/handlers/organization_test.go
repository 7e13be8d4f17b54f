package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/joblane/joblane-api/internal/config"
	"github.com/joblane/joblane-api/internal/constants"
	"github.com/joblane/joblane-api/internal/middleware"
	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/repository"
	"github.com/joblane/joblane-api/internal/services"
)

type orgTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupOrgTestEnv(t *testing.T) orgTestEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)

	authService := services.NewAuthService(userRepo, sessionRepo)
	orgService := services.NewOrganizationService(orgRepo)
	oauthService := services.NewOAuthService(&config.Config{}, userRepo)

	authHandler := NewAuthHandler(authService, oauthService, zap.NewNop())
	orgHandler := NewOrganizationHandler(orgService, authService, zap.NewNop())

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.LoadSession(authService, zap.NewNop()))

	r.POST("/api/auth/sign-up/email", authHandler.SignupEmail)

	orgs := r.Group("/api/organizations")
	orgs.Use(middleware.RequireAuth())
	{
		orgs.POST("", orgHandler.Create)
		orgs.GET("", orgHandler.List)
		orgs.GET("/:id", orgHandler.Get)
		orgs.PATCH("/:id", orgHandler.Update)
		orgs.DELETE("/:id", orgHandler.Delete)
		orgs.POST("/:id/invitations", orgHandler.Invite)
		orgs.POST("/:id/set-active", orgHandler.SetActive)
		orgs.DELETE("/:id/members/:user_id", orgHandler.RemoveMember)
	}
	invitations := r.Group("/api/invitations")
	invitations.Use(middleware.RequireAuth())
	{
		invitations.GET("", orgHandler.MyInvitations)
		invitations.POST("/:id/accept", orgHandler.AcceptInvitation)
		invitations.POST("/:id/reject", orgHandler.RejectInvitation)
	}

	return orgTestEnv{db: db, router: r, authService: authService}
}

// signupUser registers a user through the API and returns their cookies.
func signupUser(t *testing.T, r *gin.Engine, email string) []*http.Cookie {
	t.Helper()

	w := postJSON(t, r, "/api/auth/sign-up/email", map[string]string{
		"firstName":       "Test",
		"lastName":        "User",
		"email":           email,
		"password":        "secret1",
		"confirmPassword": "secret1",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return w.Result().Cookies()
}

func createOrg(t *testing.T, r *gin.Engine, cookies []*http.Cookie, name, slug string) string {
	t.Helper()

	w := postJSON(t, r, "/api/organizations", map[string]string{
		"name": name,
		"slug": slug,
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func getWithCookies(t *testing.T, r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrganizationHandler_CreateAndList(t *testing.T) {
	env := setupOrgTestEnv(t)
	cookies := signupUser(t, env.router, "owner@example.com")

	orgID := createOrg(t, env.router, cookies, "Acme", "acme")

	// The creator is the owner member.
	var member models.Member
	require.NoError(t, env.db.Where("organization_id = ?", orgID).First(&member).Error)
	assert.Equal(t, models.RoleOwner, member.Role)

	w := getWithCookies(t, env.router, "/api/organizations", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Organizations []struct {
			Slug string `json:"slug"`
			Role string `json:"role"`
		} `json:"organizations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Organizations, 1)
	assert.Equal(t, "acme", resp.Organizations[0].Slug)
	assert.Equal(t, "owner", resp.Organizations[0].Role)
}

func TestOrganizationHandler_DuplicateSlug(t *testing.T) {
	env := setupOrgTestEnv(t)
	cookies := signupUser(t, env.router, "owner@example.com")

	createOrg(t, env.router, cookies, "Acme", "acme")

	w := postJSON(t, env.router, "/api/organizations", map[string]string{
		"name": "Other",
		"slug": "acme",
	}, cookies)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrganizationHandler_GetHiddenFromNonMembers(t *testing.T) {
	env := setupOrgTestEnv(t)
	owner := signupUser(t, env.router, "owner@example.com")
	stranger := signupUser(t, env.router, "stranger@example.com")

	orgID := createOrg(t, env.router, owner, "Acme", "acme")

	w := getWithCookies(t, env.router, "/api/organizations/"+orgID, owner)
	assert.Equal(t, http.StatusOK, w.Code)

	w = getWithCookies(t, env.router, "/api/organizations/"+orgID, stranger)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrganizationHandler_UpdateOwnerOnly(t *testing.T) {
	env := setupOrgTestEnv(t)
	owner := signupUser(t, env.router, "owner@example.com")
	orgID := createOrg(t, env.router, owner, "Acme", "acme")

	body, err := json.Marshal(map[string]interface{}{
		"name": "Acme Renamed",
		"metadata": map[string]interface{}{
			"newApplicationsEmailNotifications": true,
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/organizations/"+orgID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range owner {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name     string `json:"name"`
		Metadata struct {
			NewApplicationsEmailNotifications bool `json:"newApplicationsEmailNotifications"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Acme Renamed", resp.Name)
	assert.True(t, resp.Metadata.NewApplicationsEmailNotifications)
}

func TestOrganizationHandler_InvitationFlow(t *testing.T) {
	env := setupOrgTestEnv(t)
	owner := signupUser(t, env.router, "owner@example.com")
	invitee := signupUser(t, env.router, "invitee@example.com")

	orgID := createOrg(t, env.router, owner, "Acme", "acme")

	w := postJSON(t, env.router, "/api/organizations/"+orgID+"/invitations", map[string]string{
		"email": "invitee@example.com",
	}, owner)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate pending invitation is rejected.
	w = postJSON(t, env.router, "/api/organizations/"+orgID+"/invitations", map[string]string{
		"email": "invitee@example.com",
	}, owner)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The invitee sees it.
	w = getWithCookies(t, env.router, "/api/invitations", invitee)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Invitations []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"invitations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Invitations, 1)
	invitationID := listResp.Invitations[0].ID

	// A different user cannot accept it.
	stranger := signupUser(t, env.router, "stranger@example.com")
	w = postJSON(t, env.router, "/api/invitations/"+invitationID+"/accept", nil, stranger)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The invitee accepts and becomes a member.
	w = postJSON(t, env.router, "/api/invitations/"+invitationID+"/accept", nil, invitee)
	require.Equal(t, http.StatusOK, w.Code)

	var memberCount int64
	env.db.Model(&models.Member{}).Where("organization_id = ?", orgID).Count(&memberCount)
	assert.Equal(t, int64(2), memberCount)

	var inv models.Invitation
	require.NoError(t, env.db.First(&inv, "id = ?", invitationID).Error)
	assert.Equal(t, models.InvitationAccepted, inv.Status)

	// Settled invitations cannot be accepted again.
	w = postJSON(t, env.router, "/api/invitations/"+invitationID+"/accept", nil, invitee)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrganizationHandler_RemoveMember(t *testing.T) {
	env := setupOrgTestEnv(t)
	owner := signupUser(t, env.router, "owner@example.com")
	invitee := signupUser(t, env.router, "member@example.com")

	orgID := createOrg(t, env.router, owner, "Acme", "acme")

	w := postJSON(t, env.router, "/api/organizations/"+orgID+"/invitations", map[string]string{
		"email": "member@example.com",
	}, owner)
	require.Equal(t, http.StatusCreated, w.Code)

	w = getWithCookies(t, env.router, "/api/invitations", invitee)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Invitations []struct {
			ID string `json:"id"`
		} `json:"invitations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Invitations, 1)

	w = postJSON(t, env.router, "/api/invitations/"+listResp.Invitations[0].ID+"/accept", nil, invitee)
	require.Equal(t, http.StatusOK, w.Code)

	var member models.Member
	require.NoError(t, env.db.Where("organization_id = ? AND role = ?", orgID, models.RoleMember).First(&member).Error)

	// The owner row cannot be removed.
	var ownerMember models.Member
	require.NoError(t, env.db.Where("organization_id = ? AND role = ?", orgID, models.RoleOwner).First(&ownerMember).Error)
	req := httptest.NewRequest(http.MethodDelete, "/api/organizations/"+orgID+"/members/"+ownerMember.UserID, nil)
	for _, c := range owner {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A regular member can be removed.
	req = httptest.NewRequest(http.MethodDelete, "/api/organizations/"+orgID+"/members/"+member.UserID, nil)
	for _, c := range owner {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	env.db.Model(&models.Member{}).Where("organization_id = ?", orgID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOrganizationHandler_SetActive(t *testing.T) {
	env := setupOrgTestEnv(t)
	owner := signupUser(t, env.router, "owner@example.com")
	orgID := createOrg(t, env.router, owner, "Acme", "acme")

	w := postJSON(t, env.router, "/api/organizations/"+orgID+"/set-active", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)

	var session models.Session
	require.NoError(t, env.db.First(&session).Error)
	require.NotNil(t, session.ActiveOrganizationID)
	assert.Equal(t, orgID, *session.ActiveOrganizationID)
}

func TestOrganizationHandler_RequiresAuth(t *testing.T) {
	env := setupOrgTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/organizations", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated.", w.Body.String())
}
