package services

import (
	"testing"
	"time"

	"blogicum/database/dbtest"
	"blogicum/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t        *testing.T
	db       *gorm.DB
	author   *models.User
	reader   *models.User
	visible  *models.Category
	hidden   *models.Category
	location *models.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{t: t, db: dbtest.NewTestDB(t)}
	f.author = f.user("author")
	f.reader = f.user("reader")
	f.visible = f.category("travel", true)
	f.hidden = f.category("drafts", false)
	f.location = &models.Location{Name: "Moscow", IsPublished: true}
	require.NoError(t, f.db.Create(f.location).Error)
	return f
}

func (f *fixture) user(username string) *models.User {
	u := &models.User{Username: username, Password: "secret1", IsActive: true}
	require.NoError(f.t, u.HashPassword())
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

func (f *fixture) category(slug string, published bool) *models.Category {
	c := &models.Category{Title: slug, Description: slug, Slug: slug, IsPublished: published}
	require.NoError(f.t, f.db.Create(c).Error)
	return c
}

type postOpt func(*models.Post)

func published(v bool) postOpt { return func(p *models.Post) { p.IsPublished = v } }

func pubDate(d time.Time) postOpt { return func(p *models.Post) { p.PubDate = d } }

func inCategory(c *models.Category) postOpt {
	return func(p *models.Post) {
		if c == nil {
			p.CategoryID = nil
			return
		}
		p.CategoryID = &c.ID
	}
}

func byAuthor(u *models.User) postOpt { return func(p *models.Post) { p.AuthorID = u.ID } }

func atLocation(l *models.Location) postOpt { return func(p *models.Post) { p.LocationID = &l.ID } }

// post creates a publicly visible post by the fixture author unless opts say otherwise.
func (f *fixture) post(title string, opts ...postOpt) *models.Post {
	p := &models.Post{
		Title:       title,
		Text:        title + " text",
		PubDate:     testNow.Add(-time.Hour),
		AuthorID:    f.author.ID,
		CategoryID:  &f.visible.ID,
		IsPublished: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(f.t, f.db.Omit(clause.Associations).Create(p).Error)
	return p
}

func (f *fixture) comment(post *models.Post, author *models.User, text string) *models.Comment {
	c := &models.Comment{PostID: post.ID, AuthorID: author.ID, Text: text}
	require.NoError(f.t, f.db.Omit(clause.Associations).Create(c).Error)
	return c
}

type recordedNotification struct {
	userID      uint
	messageType string
	data        interface{}
}

type fakeNotifier struct {
	sent []recordedNotification
}

func (n *fakeNotifier) NotifyUser(userID uint, messageType string, data interface{}) {
	n.sent = append(n.sent, recordedNotification{userID: userID, messageType: messageType, data: data})
}

func titles(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}
