package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogicum/config"
	"blogicum/controllers"
	"blogicum/database/dbtest"
	"blogicum/handlers"
	"blogicum/middleware"
	"blogicum/models"
	"blogicum/routes"
	"blogicum/services"
	"blogicum/storage"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testApp is the whole site wired against an in-memory database.
type testApp struct {
	t        *testing.T
	db       *gorm.DB
	cfg      *config.Config
	router   *gin.Engine
	author   *models.User
	reader   *models.User
	visible  *models.Category
	hidden   *models.Category
	location *models.Location
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := dbtest.NewTestDB(t)
	cfg := &config.Config{
		JWTSecret:    "test-secret",
		JWTTTL:       time.Hour,
		MediaBackend: "local",
		MediaDir:     t.TempDir(),
		MediaURL:     "/media/",
	}

	store := storage.NewLocal(cfg.MediaDir, cfg.MediaURL)
	users := services.NewUserService(db)
	categories := services.NewCategoryService(db)
	locations := services.NewLocationService(db)
	posts := services.NewPostService(db, store)
	comments := services.NewCommentService(db, nil)

	router, err := routes.NewRouter(cfg, &routes.Handlers{
		Users:    users,
		Posts:    controllers.NewPostController(posts, comments, categories, locations),
		Comments: controllers.NewCommentController(posts, comments),
		Profiles: controllers.NewProfileController(users, posts),
		Auth:     controllers.NewAuthController(users, cfg),
		API:      controllers.NewAPIController(posts, categories, locations),
		WS:       handlers.NewWebSocketHandler(services.NewHubService(), nil),
	})
	require.NoError(t, err)

	app := &testApp{t: t, db: db, cfg: cfg, router: router}
	app.author = app.user("author")
	app.reader = app.user("reader")
	app.visible = app.category("travel", true)
	app.hidden = app.category("drafts", false)
	app.location = &models.Location{Name: "Moscow", IsPublished: true}
	require.NoError(t, db.Create(app.location).Error)
	return app
}

func (a *testApp) user(username string) *models.User {
	u := &models.User{Username: username, Password: "secret1", IsActive: true}
	require.NoError(a.t, u.HashPassword())
	require.NoError(a.t, a.db.Create(u).Error)
	return u
}

func (a *testApp) category(slug string, published bool) *models.Category {
	c := &models.Category{Title: slug, Description: slug, Slug: slug, IsPublished: published}
	require.NoError(a.t, a.db.Create(c).Error)
	return c
}

// post stores a publicly visible post by the app author; mutate adjusts it first.
func (a *testApp) post(title string, mutate ...func(*models.Post)) *models.Post {
	p := &models.Post{
		Title:       title,
		Text:        title + " body",
		PubDate:     time.Now().UTC().Add(-time.Hour),
		AuthorID:    a.author.ID,
		CategoryID:  &a.visible.ID,
		IsPublished: true,
	}
	for _, m := range mutate {
		m(p)
	}
	require.NoError(a.t, a.db.Omit(clause.Associations).Create(p).Error)
	return p
}

func (a *testApp) comment(post *models.Post, author *models.User, text string) *models.Comment {
	c := &models.Comment{PostID: post.ID, AuthorID: author.ID, Text: text}
	require.NoError(a.t, a.db.Omit(clause.Associations).Create(c).Error)
	return c
}

func (a *testApp) do(req *http.Request, as *models.User) *httptest.ResponseRecorder {
	a.t.Helper()
	if as != nil {
		token, err := utils.GenerateJWT(a.cfg.JWTSecret, as.ID, a.cfg.JWTTTL)
		require.NoError(a.t, err)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, as *models.User) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), as)
}

func (a *testApp) postForm(path string, form url.Values, as *models.User) *httptest.ResponseRecorder {
	return a.do(newFormRequest(path, form), as)
}

func newFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func unpublished(p *models.Post) { p.IsPublished = false }

func scheduled(p *models.Post) { p.PubDate = time.Now().UTC().Add(24 * time.Hour) }
