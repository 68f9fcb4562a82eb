package interfaces

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
)

// AuthUseCase identity and account management
type AuthUseCase interface {
	// Authenticate resolves any credential variant to a user
	Authenticate(ctx context.Context, credential dto.Credential) (*entity.User, error)

	// Signup creates an unverified account and sends the verification email
	Signup(ctx context.Context, params dto.SignupParams) (*entity.User, error)

	// Login authenticates with email and password and issues a token
	Login(ctx context.Context, email, password string) (*dto.LoginResult, error)

	// OAuthURL returns the provider consent URL for the given state
	OAuthURL(provider, state string) (string, error)

	// LoginWithProvider exchanges an OAuth code and issues a token
	LoginWithProvider(ctx context.Context, provider, code string) (*dto.LoginResult, error)

	// Logout revokes the token
	Logout(ctx context.Context, token string) error

	// VerifyEmail consumes an email verification token
	VerifyEmail(ctx context.Context, token string) error

	// ResendVerification issues a fresh verification token
	ResendVerification(ctx context.Context, email string) error

	// ForgotPassword sends a password reset link when the account exists
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and sets a new password
	ResetPassword(ctx context.Context, token, newPassword string) error

	// ChangePassword changes the password and issues a replacement token
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*dto.LoginResult, error)

	// Me returns the current user
	Me(ctx context.Context, userID string) (*entity.User, error)

	// UpdateProfile changes profile fields
	UpdateProfile(ctx context.Context, userID string, params dto.UpdateProfileParams) (*entity.User, error)

	// UploadAvatar stores a new avatar image
	UploadAvatar(ctx context.Context, userID string, upload dto.ImageUpload) (*entity.User, error)

	// DeleteAccount removes the user, their memberships, assignments and owned workspaces
	DeleteAccount(ctx context.Context, userID string) error
}
