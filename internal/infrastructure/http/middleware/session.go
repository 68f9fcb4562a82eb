package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// SessionKey는 OAuth state를 보관하는 쿠키 세션 이름입니다.
const SessionKey = "oauth_session"

const (
	oauthStateKey    = "state"
	oauthStateMaxAge = 10 * 60
)

// NewSessionMiddleware 쿠키 기반 세션 미들웨어 생성.
// 세션은 OAuth 로그인 중 state 검증에만 사용됩니다.
func NewSessionMiddleware(secret string, production bool) echo.MiddlewareFunc {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/api/v1/auth/oauth",
		MaxAge:   oauthStateMaxAge,
		HttpOnly: true,
		Secure:   production,
		// 제공자에서 돌아오는 리다이렉트에도 쿠키가 전달되어야 합니다
		SameSite: http.SameSiteLaxMode,
	}
	return session.Middleware(store)
}

// SaveOAuthState state 값을 세션에 저장
func SaveOAuthState(c echo.Context, state string) error {
	// 손상되거나 키가 바뀐 쿠키는 새 세션으로 덮어씁니다
	sess, err := session.Get(SessionKey, c)
	if sess == nil {
		return err
	}
	sess.Values[oauthStateKey] = state
	return sess.Save(c.Request(), c.Response())
}

// ConsumeOAuthState 저장된 state와 비교하고 세션을 비웁니다.
func ConsumeOAuthState(c echo.Context, state string) bool {
	sess, err := session.Get(SessionKey, c)
	if err != nil {
		return false
	}

	saved, _ := sess.Values[oauthStateKey].(string)
	delete(sess.Values, oauthStateKey)
	sess.Options.MaxAge = -1
	_ = sess.Save(c.Request(), c.Response())

	if saved == "" || state == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(saved), []byte(state)) == 1
}
