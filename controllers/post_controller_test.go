package controllers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogicum/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexListsOnlyPubliclyVisiblePosts(t *testing.T) {
	app := newTestApp(t)
	app.post("VisiblePost")
	app.post("DraftPost", unpublished)
	app.post("FuturePost", scheduled)
	app.post("HiddenCategoryPost", func(p *models.Post) { p.CategoryID = &app.hidden.ID })

	w := app.get("/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "VisiblePost")
	assert.NotContains(t, body, "DraftPost")
	assert.NotContains(t, body, "FuturePost")
	assert.NotContains(t, body, "HiddenCategoryPost")
}

func TestIndexPaginatesByTen(t *testing.T) {
	app := newTestApp(t)
	base := time.Now().UTC().Add(-48 * time.Hour)
	for i := 0; i < 11; i++ {
		offset := time.Duration(i) * time.Minute
		app.post(fmt.Sprintf("Entry%02d", i), func(p *models.Post) { p.PubDate = base.Add(offset) })
	}

	first := app.get("/", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "Entry10")
	assert.NotContains(t, first.Body.String(), "Entry00")

	second := app.get("/?page=2", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "Entry00")
	assert.NotContains(t, second.Body.String(), "Entry10")

	assert.Equal(t, http.StatusNotFound, app.get("/?page=3", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.get("/?page=abc", nil).Code)
}

func TestCategoryPage(t *testing.T) {
	app := newTestApp(t)
	other := app.category("food", true)
	app.post("TravelPost")
	app.post("FoodPost", func(p *models.Post) { p.CategoryID = &other.ID })

	w := app.get("/category/travel/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TravelPost")
	assert.NotContains(t, w.Body.String(), "FoodPost")

	assert.Equal(t, http.StatusNotFound, app.get("/category/drafts/", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.get("/category/missing/", nil).Code)
}

func TestPostDetailVisibility(t *testing.T) {
	app := newTestApp(t)
	visible := app.post("OpenPost")
	draft := app.post("SecretDraft", unpublished)
	future := app.post("LaterPost", scheduled)

	w := app.get(fmt.Sprintf("/posts/%d/", visible.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OpenPost")

	for _, p := range []*models.Post{draft, future} {
		path := fmt.Sprintf("/posts/%d/", p.ID)
		assert.Equal(t, http.StatusNotFound, app.get(path, nil).Code, path)
		assert.Equal(t, http.StatusNotFound, app.get(path, app.reader).Code, path)
		assert.Equal(t, http.StatusOK, app.get(path, app.author).Code, path)
	}

	assert.Equal(t, http.StatusNotFound, app.get("/posts/9999/", nil).Code)
}

func TestPostDetailShowsCommentFormOnlyToUsers(t *testing.T) {
	app := newTestApp(t)
	post := app.post("Commented")
	path := fmt.Sprintf("/posts/%d/", post.ID)
	action := fmt.Sprintf(`action="/posts/%d/comment/"`, post.ID)

	assert.NotContains(t, app.get(path, nil).Body.String(), action)
	assert.Contains(t, app.get(path, app.reader).Body.String(), action)
}

func TestCreatePostRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/posts/create/", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fposts%2Fcreate%2F", w.Header().Get("Location"))
}

func TestCreatePost(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusOK, app.get("/posts/create/", app.author).Code)

	w := app.postForm("/posts/create/", url.Values{
		"title":        {"Fresh"},
		"text":         {"Fresh text"},
		"pub_date":     {"2024-01-02T10:30"},
		"category":     {fmt.Sprint(app.visible.ID)},
		"location":     {fmt.Sprint(app.location.ID)},
		"is_published": {"true"},
		"author":       {fmt.Sprint(app.reader.ID)},
	}, app.author)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author/", w.Header().Get("Location"))

	var post models.Post
	require.NoError(t, app.db.Where("title = ?", "Fresh").First(&post).Error)
	assert.Equal(t, app.author.ID, post.AuthorID)
	assert.True(t, post.IsPublished)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC), post.PubDate.UTC())
	require.NotNil(t, post.LocationID)
	assert.Equal(t, app.location.ID, *post.LocationID)
}

func TestCreatePostRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t)

	missing := app.postForm("/posts/create/", url.Values{"text": {"no title"}}, app.author)
	assert.Equal(t, http.StatusOK, missing.Code)

	hiddenCategory := app.postForm("/posts/create/", url.Values{
		"title":    {"Hidden"},
		"text":     {"text"},
		"pub_date": {"2024-01-02T10:30"},
		"category": {fmt.Sprint(app.hidden.ID)},
	}, app.author)
	assert.Equal(t, http.StatusOK, hiddenCategory.Code)

	var count int64
	app.db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}

func TestEditPostByAuthor(t *testing.T) {
	app := newTestApp(t)
	post := app.post("Before")
	path := fmt.Sprintf("/posts/%d/edit/", post.ID)

	assert.Equal(t, http.StatusOK, app.get(path, app.author).Code)

	w := app.postForm(path, url.Values{
		"title":    {"After"},
		"text":     {"changed"},
		"pub_date": {"2024-01-02T10:30"},
		"category": {fmt.Sprint(app.visible.ID)},
	}, app.author)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	var updated models.Post
	require.NoError(t, app.db.First(&updated, post.ID).Error)
	assert.Equal(t, "After", updated.Title)
	assert.False(t, updated.IsPublished)
	assert.Nil(t, updated.LocationID)
}

func TestEditAndDeletePostByOtherUserRedirect(t *testing.T) {
	app := newTestApp(t)
	post := app.post("Guarded")
	detail := fmt.Sprintf("/posts/%d/", post.ID)

	for _, path := range []string{detail + "edit/", detail + "delete/"} {
		w := app.get(path, app.reader)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, detail, w.Header().Get("Location"), path)

		w = app.postForm(path, url.Values{"title": {"Hijacked"}, "text": {"x"}}, app.reader)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, detail, w.Header().Get("Location"), path)
	}

	var stored models.Post
	require.NoError(t, app.db.First(&stored, post.ID).Error)
	assert.Equal(t, "Guarded", stored.Title)
}

func TestDeletePostCascadesToComments(t *testing.T) {
	app := newTestApp(t)
	post := app.post("Doomed")
	app.comment(post, app.reader, "bye")
	path := fmt.Sprintf("/posts/%d/delete/", post.ID)

	assert.Equal(t, http.StatusOK, app.get(path, app.author).Code)

	w := app.postForm(path, url.Values{}, app.author)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var posts, comments int64
	app.db.Model(&models.Post{}).Count(&posts)
	app.db.Model(&models.Comment{}).Count(&comments)
	assert.Zero(t, posts)
	assert.Zero(t, comments)
}

func TestCrossOriginFormPostIsForbidden(t *testing.T) {
	app := newTestApp(t)
	post := app.post("Target")

	req := newFormRequest(fmt.Sprintf("/posts/%d/comment/", post.ID), url.Values{"text": {"hi"}})
	req.Header.Set("Origin", "http://evil.test")
	w := app.do(req, app.reader)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var count int64
	app.db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreatePostWithImageIsServedFromMedia(t *testing.T) {
	app := newTestApp(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"title":        "Pictured",
		"text":         "with a photo",
		"pub_date":     "2024-01-02T10:30",
		"category":     fmt.Sprint(app.visible.ID),
		"is_published": "true",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts/create/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := app.do(req, app.author)
	require.Equal(t, http.StatusFound, w.Code)

	var post models.Post
	require.NoError(t, app.db.Where("title = ?", "Pictured").First(&post).Error)
	require.True(t, strings.HasPrefix(post.Image, "/media/posts_images/"), post.Image)

	served := app.get(post.Image, nil)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, "not really a png", served.Body.String())
}
