package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip replays the cookies set on rec onto a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionLoginLogout(t *testing.T) {
	store := NewSessionStore("test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Login(rec, httptest.NewRequest(http.MethodPost, "/", nil), 5))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Zero(t, cookies[0].MaxAge)

	id, ok := store.UserID(roundTrip(rec))
	require.True(t, ok)
	assert.Equal(t, uint(5), id)

	out := httptest.NewRecorder()
	require.NoError(t, store.Logout(out, roundTrip(rec)))

	_, ok = store.UserID(roundTrip(out))
	assert.False(t, ok)
}

func TestSessionRejectsForeignCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, NewSessionStore("one", false).Login(rec, httptest.NewRequest(http.MethodPost, "/", nil), 1))

	_, ok := NewSessionStore("two", false).UserID(roundTrip(rec))
	assert.False(t, ok)
}

func TestSessionFlashesArePopped(t *testing.T) {
	store := NewSessionStore("test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.AddFlash(rec, httptest.NewRequest(http.MethodPost, "/", nil), "successfully registered"))

	read := httptest.NewRecorder()
	assert.Equal(t, []string{"successfully registered"}, store.Flashes(read, roundTrip(rec)))

	assert.Empty(t, store.Flashes(httptest.NewRecorder(), roundTrip(read)))
}
