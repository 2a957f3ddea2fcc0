package services

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"blogapi/database"
	"blogapi/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "blog.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := database.Open(sqlite.Open(dsn), quietLogger())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type recordedEvent struct {
	PostID uint
	Type   string
}

type recordingPublisher struct {
	events []recordedEvent
}

func (r *recordingPublisher) Publish(postID uint, eventType string, _ interface{}) {
	r.events = append(r.events, recordedEvent{PostID: postID, Type: eventType})
}

type fixture struct {
	db       *gorm.DB
	guard    *Guard
	events   *recordingPublisher
	users    *UserService
	posts    *PostService
	comments *CommentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(newTestDB(t))
}

func newFixtureOn(db *gorm.DB) *fixture {
	guard := NewGuard(1)
	events := &recordingPublisher{}
	posts := NewPostService(db, guard, events)
	posts.now = func() time.Time { return fixedNow }

	return &fixture{
		db:       db,
		guard:    guard,
		events:   events,
		users:    NewUserService(db),
		posts:    posts,
		comments: NewCommentService(db, guard, events),
	}
}

func (f *fixture) register(t *testing.T, name, email string) Identity {
	t.Helper()

	user, err := f.users.Register(context.Background(), &models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password-" + name,
	})
	require.NoError(t, err)
	return Authenticated(user)
}

func (f *fixture) createPost(t *testing.T, author Identity, title string) *models.Post {
	t.Helper()

	post, err := f.posts.CreatePost(context.Background(), author, &models.PostRequest{
		Title:    title,
		Subtitle: "sub " + title,
		ImgURL:   "https://example.com/" + title + ".jpg",
		Body:     "<p>body of " + title + "</p>",
	})
	require.NoError(t, err)
	return post
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
