package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithSession(t *testing.T, cookies []*http.Cookie, fn func(c echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/google", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	handler := NewSessionMiddleware("session-secret-for-tests", false)(fn)
	require.NoError(t, handler(echo.New().NewContext(req, rec)))
	return rec
}

func TestOAuthState(t *testing.T) {
	saved := runWithSession(t, nil, func(c echo.Context) error {
		return SaveOAuthState(c, "state-123")
	})
	cookies := saved.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionKey, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	tests := []struct {
		name     string
		cookies  []*http.Cookie
		state    string
		expected bool
	}{
		{name: "matching state", cookies: cookies, state: "state-123", expected: true},
		{name: "different state", cookies: cookies, state: "state-456", expected: false},
		{name: "empty state", cookies: cookies, state: "", expected: false},
		{name: "no session cookie", state: "state-123", expected: false},
		{
			name:     "tampered cookie",
			cookies:  []*http.Cookie{{Name: SessionKey, Value: "forged"}},
			state:    "state-123",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ok bool
			rec := runWithSession(t, tt.cookies, func(c echo.Context) error {
				ok = ConsumeOAuthState(c, tt.state)
				return nil
			})
			assert.Equal(t, tt.expected, ok)

			// the session cookie is always expired after a callback
			for _, cookie := range rec.Result().Cookies() {
				if cookie.Name == SessionKey {
					assert.Less(t, cookie.MaxAge, 0)
				}
			}
		})
	}
}

func TestSaveOAuthState_ReplacesCorruptCookie(t *testing.T) {
	rec := runWithSession(t, []*http.Cookie{{Name: SessionKey, Value: "forged"}}, func(c echo.Context) error {
		return SaveOAuthState(c, "state-789")
	})

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	var ok bool
	runWithSession(t, cookies, func(c echo.Context) error {
		ok = ConsumeOAuthState(c, "state-789")
		return nil
	})
	assert.True(t, ok)
}
