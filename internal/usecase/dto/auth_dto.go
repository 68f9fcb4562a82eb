package dto

import (
	"io"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// Credential is one of PasswordCredential, BearerCredential or ProviderCredential.
// The set is closed: only this package can add variants.
type Credential interface {
	credential()
}

// PasswordCredential email and password login
type PasswordCredential struct {
	Email    string
	Password string
}

// BearerCredential a previously issued access token
type BearerCredential struct {
	Token string
}

// ProviderCredential an identity confirmed by an external OAuth provider
type ProviderCredential struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
}

func (PasswordCredential) credential() {}
func (BearerCredential) credential() {}
func (ProviderCredential) credential() {}

// SignupParams signup parameters
type SignupParams struct {
	Email    string
	Password string
	Name     string
}

// LoginResult issued access token and the authenticated user
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// UpdateProfileParams profile fields to change; nil means unchanged
type UpdateProfileParams struct {
	Name *string
}

// ImageUpload an image file received from a client
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
