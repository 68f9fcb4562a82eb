package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// 컨텍스트 키 상수
const (
	UserIDKey = "user_id"
	UserKey   = "user"
	TokenKey  = "access_token"
)

// TokenCookieName 액세스 토큰 쿠키 이름
const TokenCookieName = "token"

// JWTAuthMiddleware는 Bearer 토큰 인증을 처리하는 미들웨어입니다.
// 토큰 검증, 폐기, 비밀번호 변경 확인은 AuthUseCase에 위임합니다.
type JWTAuthMiddleware struct {
	authUseCase interfaces.AuthUseCase
	logger      *zap.Logger
}

// NewJWTAuthMiddleware는 새로운 인증 미들웨어를 생성합니다.
func NewJWTAuthMiddleware(authUseCase interfaces.AuthUseCase, logger *zap.Logger) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// ExtractToken Authorization 헤더를 먼저 보고, 없으면 token 쿠키를 사용합니다.
func ExtractToken(c echo.Context) string {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := c.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Handle는 요청에서 토큰을 추출하고 검증하는 핸들러 함수를 반환합니다.
func (m *JWTAuthMiddleware) Handle() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// 1. 요청에서 토큰 추출
			token := ExtractToken(c)
			if token == "" {
				return domainErrors.ErrUnauthenticated
			}

			// 2. 인증 유스케이스를 통해 토큰 검증
			user, err := m.authUseCase.Authenticate(c.Request().Context(), dto.BearerCredential{Token: token})
			if err != nil {
				m.logger.Info("인증 실패",
					zap.String("error", err.Error()),
					zap.String("ip", c.RealIP()),
					zap.String("path", c.Request().URL.Path),
				)
				return err
			}

			// 3. 검증된 사용자 정보를 컨텍스트에 저장
			c.Set(UserIDKey, user.ID)
			c.Set(UserKey, user)
			c.Set(TokenKey, token)

			return next(c)
		}
	}
}

// UserID 인증된 사용자 ID
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

// CurrentUser 인증된 사용자
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(UserKey).(*entity.User)
	return user
}

// AccessToken 요청에 사용된 토큰
func AccessToken(c echo.Context) string {
	token, _ := c.Get(TokenKey).(string)
	return token
}
