package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogicum/models"
	"blogicum/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *testApp) apiRequest(method, path, body string, as *models.User) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		token, err := utils.GenerateJWT(a.cfg.JWTSecret, as.ID, a.cfg.JWTTTL)
		require.NoError(a.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(req, nil)
}

func TestStaticPages(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/about/", "/rules/"} {
		assert.Equal(t, http.StatusOK, app.get(path, nil).Code, path)
	}
	assert.Equal(t, http.StatusOK, app.get("/health", nil).Code)
}

func TestUnknownRouteRendersNotFoundPage(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/no/such/page/", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")

	api := app.get("/api/v1/nothing", nil)
	assert.Equal(t, http.StatusNotFound, api.Code)
	assert.Contains(t, api.Header().Get("Content-Type"), "application/json")
}

func TestAPIPosts(t *testing.T) {
	app := newTestApp(t)
	visible := app.post("ApiVisible")
	draft := app.post("ApiDraft", unpublished)
	app.comment(visible, app.reader, "one")

	w := app.apiRequest(http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data     []models.Post `json:"data"`
		Page     int           `json:"page"`
		NumPages int           `json:"num_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "ApiVisible", resp.Data[0].Title)
	assert.EqualValues(t, 1, resp.Data[0].CommentCount)
	assert.Equal(t, 1, resp.Page)

	path := fmt.Sprintf("/api/v1/posts/%d", draft.ID)
	assert.Equal(t, http.StatusNotFound, app.apiRequest(http.MethodGet, path, "", app.reader).Code)
	assert.Equal(t, http.StatusOK, app.apiRequest(http.MethodGet, path, "", app.author).Code)
}

func TestAPIAuth(t *testing.T) {
	app := newTestApp(t)

	w := app.apiRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"author","password":"secret1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	bad := app.apiRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"author","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, bad.Code)

	assert.Equal(t, http.StatusUnauthorized, app.apiRequest(http.MethodGet, "/api/v1/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusOK, app.apiRequest(http.MethodGet, "/api/v1/auth/me", "", app.reader).Code)

	created := app.apiRequest(http.MethodPost, "/api/v1/auth/register", `{"username":"apiuser","password":"secret12"}`, nil)
	assert.Equal(t, http.StatusCreated, created.Code)
	dup := app.apiRequest(http.MethodPost, "/api/v1/auth/register", `{"username":"apiuser","password":"secret12"}`, nil)
	assert.Equal(t, http.StatusConflict, dup.Code)
}

func TestAPICategoriesRequireStaff(t *testing.T) {
	app := newTestApp(t)
	staff := app.user("editor")
	require.NoError(t, app.db.Model(staff).Update("is_staff", true).Error)

	body := `{"title":"Food","description":"Eating out","slug":"food"}`

	assert.Equal(t, http.StatusUnauthorized, app.apiRequest(http.MethodPost, "/api/v1/categories", body, nil).Code)
	assert.Equal(t, http.StatusForbidden, app.apiRequest(http.MethodPost, "/api/v1/categories", body, app.reader).Code)

	w := app.apiRequest(http.MethodPost, "/api/v1/categories", body, staff)
	require.Equal(t, http.StatusCreated, w.Code)

	dup := app.apiRequest(http.MethodPost, "/api/v1/categories", body, staff)
	assert.Equal(t, http.StatusConflict, dup.Code)

	badSlug := app.apiRequest(http.MethodPost, "/api/v1/categories", `{"title":"X","description":"X","slug":"not a slug"}`, staff)
	assert.Equal(t, http.StatusBadRequest, badSlug.Code)

	public := app.apiRequest(http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, public.Code)
	assert.NotContains(t, public.Body.String(), `"slug":"drafts"`)
	assert.Contains(t, public.Body.String(), `"slug":"food"`)

	all := app.apiRequest(http.MethodGet, "/api/v1/categories", "", staff)
	assert.Contains(t, all.Body.String(), `"slug":"drafts"`)

	path := fmt.Sprintf("/api/v1/categories/%d", app.hidden.ID)
	assert.Equal(t, http.StatusOK, app.apiRequest(http.MethodDelete, path, "", staff).Code)
	assert.Equal(t, http.StatusNotFound, app.apiRequest(http.MethodDelete, path, "", staff).Code)
}

func TestAPILocations(t *testing.T) {
	app := newTestApp(t)
	staff := app.user("editor")
	require.NoError(t, app.db.Model(staff).Update("is_staff", true).Error)

	w := app.apiRequest(http.MethodPost, "/api/v1/locations", `{"name":"Kazan","is_published":false}`, staff)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Location `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.IsPublished)

	path := fmt.Sprintf("/api/v1/locations/%d", resp.Data.ID)
	updated := app.apiRequest(http.MethodPut, path, `{"name":"Kazan","is_published":true}`, staff)
	require.Equal(t, http.StatusOK, updated.Code)
	assert.Contains(t, updated.Body.String(), `"is_published":true`)

	assert.Equal(t, http.StatusForbidden, app.apiRequest(http.MethodGet, "/api/v1/locations", "", app.reader).Code)
}

func TestAPIDeleteAccountCascades(t *testing.T) {
	app := newTestApp(t)
	post := app.post("Gone")
	app.comment(post, app.reader, "also gone")

	w := app.apiRequest(http.MethodDelete, "/api/v1/users/me", "", app.author)
	require.Equal(t, http.StatusOK, w.Code)

	var posts, comments int64
	app.db.Model(&models.Post{}).Count(&posts)
	app.db.Model(&models.Comment{}).Count(&comments)
	assert.Zero(t, posts)
	assert.Zero(t, comments)
}
