package services

import (
	"context"
	"testing"

	"blogapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentRequiresLogin(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin", "admin@x.com")
	post := f.createPost(t, admin, "p")

	_, err := f.comments.AddComment(context.Background(), Anonymous(), post.ID, "hi")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, countRows(t, f.db, &models.Comment{}, ""))
}

func TestAddCommentMissingPost(t *testing.T) {
	f := newFixture(t)
	reader := f.register(t, "reader", "reader@x.com")

	_, err := f.comments.AddComment(context.Background(), reader, 404, "hi")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAddAndListComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.register(t, "admin", "admin@x.com")
	reader := f.register(t, "reader", "reader@x.com")
	post := f.createPost(t, admin, "p")

	_, err := f.comments.AddComment(ctx, reader, post.ID, "first")
	require.NoError(t, err)
	_, err = f.comments.AddComment(ctx, admin, post.ID, `<b>second</b><script>x()</script>`)
	require.NoError(t, err)

	comments, err := f.comments.ListForPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, reader.UserID, comments[0].AuthorID)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "reader", comments[0].Author.Name)
	assert.Equal(t, "<b>second</b>", comments[1].Text)

	assert.Contains(t, f.events.events, recordedEvent{PostID: post.ID, Type: EventCommentAdded})
}

func TestListCommentsMissingPost(t *testing.T) {
	f := newFixture(t)

	_, err := f.comments.ListForPost(context.Background(), 12)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeleteComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.register(t, "admin", "admin@x.com")
	alice := f.register(t, "alice", "alice@x.com")
	bob := f.register(t, "bob", "bob@x.com")
	post := f.createPost(t, admin, "p")

	byAlice, err := f.comments.AddComment(ctx, alice, post.ID, "alice says")
	require.NoError(t, err)
	byBob, err := f.comments.AddComment(ctx, bob, post.ID, "bob says")
	require.NoError(t, err)

	assert.ErrorIs(t, f.comments.DeleteComment(ctx, bob, post.ID, byAlice.ID), ErrForbidden)
	assert.ErrorIs(t, f.comments.DeleteComment(ctx, Anonymous(), post.ID, byAlice.ID), ErrUnauthorized)

	require.NoError(t, f.comments.DeleteComment(ctx, alice, post.ID, byAlice.ID))
	require.NoError(t, f.comments.DeleteComment(ctx, admin, post.ID, byBob.ID))

	assert.Zero(t, countRows(t, f.db, &models.Comment{}, ""))

	// Parent post and authors are untouched.
	_, err = f.posts.GetPost(ctx, post.ID)
	assert.NoError(t, err)
	_, err = f.users.FindByID(ctx, alice.UserID)
	assert.NoError(t, err)
}

func TestDeleteCommentNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.register(t, "admin", "admin@x.com")
	first := f.createPost(t, admin, "first")
	second := f.createPost(t, admin, "second")

	c, err := f.comments.AddComment(ctx, admin, first.ID, "on first")
	require.NoError(t, err)

	assert.ErrorIs(t, f.comments.DeleteComment(ctx, admin, first.ID, 999), ErrCommentNotFound)
	assert.ErrorIs(t, f.comments.DeleteComment(ctx, admin, second.ID, c.ID), ErrNotFound)
	assert.Equal(t, int64(1), countRows(t, f.db, &models.Comment{}, ""))
}
