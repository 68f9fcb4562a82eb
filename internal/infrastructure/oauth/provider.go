package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// 제공자 이름
const (
	ProviderGoogle = "google"
	ProviderGithub = "github"
)

const (
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	githubUserURL     = "https://api.github.com/user"
	githubEmailsURL   = "https://api.github.com/user/emails"
)

// ErrNoVerifiedEmail 제공자가 확인된 이메일을 주지 않은 경우
var ErrNoVerifiedEmail = errors.New("identity provider returned no verified email")

// ClientConfig OAuth 클라이언트 설정
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled 클라이언트 정보가 모두 있는지 확인
func (c ClientConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURL != ""
}

// NewProviders 설정된 제공자만 생성
func NewProviders(google, github ClientConfig, logger *zap.Logger) []service.OAuthProvider {
	var providers []service.OAuthProvider
	if google.Enabled() {
		providers = append(providers, NewGoogleProvider(google, logger))
	}
	if github.Enabled() {
		providers = append(providers, NewGithubProvider(github, logger))
	}
	return providers
}

type profileFetcher func(ctx context.Context, client *http.Client) (*service.OAuthProfile, error)

// Provider x/oauth2 기반 외부 인증 제공자
type Provider struct {
	name   string
	config *oauth2.Config
	fetch  profileFetcher
	logger *zap.Logger
}

// NewGoogleProvider 구글 로그인 제공자 생성
func NewGoogleProvider(cfg ClientConfig, logger *zap.Logger) *Provider {
	return &Provider{
		name: ProviderGoogle,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		fetch:  fetchGoogleProfile,
		logger: logger,
	}
}

// NewGithubProvider 깃허브 로그인 제공자 생성
func NewGithubProvider(cfg ClientConfig, logger *zap.Logger) *Provider {
	return &Provider{
		name: ProviderGithub,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoints.GitHub,
			Scopes:       []string{"read:user", "user:email"},
		},
		fetch:  fetchGithubProfile,
		logger: logger,
	}
}

// Name 제공자 이름
func (p *Provider) Name() string {
	return p.name
}

// AuthCodeURL 동의 화면 URL
func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange 인가 코드를 토큰으로 교환하고 사용자 프로필 조회
func (p *Provider) Exchange(ctx context.Context, code string) (*service.OAuthProfile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		p.logger.Warn("OAuth 코드 교환 실패", zap.String("provider", p.name), zap.Error(err))
		return nil, fmt.Errorf("%s 코드 교환 실패: %w", p.name, err)
	}

	profile, err := p.fetch(ctx, p.config.Client(ctx, token))
	if err != nil {
		p.logger.Warn("OAuth 프로필 조회 실패", zap.String("provider", p.name), zap.Error(err))
		return nil, err
	}
	profile.Provider = p.name
	return profile, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func fetchGoogleProfile(ctx context.Context, client *http.Client) (*service.OAuthProfile, error) {
	var info struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := getJSON(ctx, client, googleUserInfoURL, &info); err != nil {
		return nil, err
	}
	if info.Email == "" || !info.EmailVerified {
		return nil, ErrNoVerifiedEmail
	}

	return &service.OAuthProfile{
		ProviderID: info.Sub,
		Email:      info.Email,
		Name:       info.Name,
		AvatarURL:  info.Picture,
	}, nil
}

func fetchGithubProfile(ctx context.Context, client *http.Client) (*service.OAuthProfile, error) {
	var user struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := getJSON(ctx, client, githubUserURL, &user); err != nil {
		return nil, err
	}

	// 공개 이메일은 확인 여부를 알 수 없으므로 이메일 목록에서 primary+verified 선택
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := getJSON(ctx, client, githubEmailsURL, &emails); err != nil {
		return nil, err
	}

	email := ""
	for _, e := range emails {
		if e.Primary && e.Verified {
			email = e.Email
			break
		}
	}
	if email == "" {
		return nil, ErrNoVerifiedEmail
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return &service.OAuthProfile{
		ProviderID: strconv.FormatInt(user.ID, 10),
		Email:      email,
		Name:       name,
		AvatarURL:  user.AvatarURL,
	}, nil
}
