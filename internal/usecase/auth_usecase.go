package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// AuthConfig password policy
type AuthConfig struct {
	HashCost          int
	PasswordMinLength int
}

// AuthUseCase authentication and account implementation
type AuthUseCase struct {
	logger        *zap.Logger
	clock         service.Clock
	config        AuthConfig
	transactor    repository.Transactor
	userRepo      repository.UserRepository
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.MemberRepository
	taskRepo      repository.TaskRepository
	tokens        service.TokenService
	revocations   service.RevocationStore
	email         interfaces.EmailUseCase
	blobStore     service.BlobStore
	providers     map[string]service.OAuthProvider
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(
	logger *zap.Logger,
	clock service.Clock,
	config AuthConfig,
	repos *repository.Repositories,
	tokens service.TokenService,
	revocations service.RevocationStore,
	email interfaces.EmailUseCase,
	blobStore service.BlobStore,
	providers []service.OAuthProvider,
) interfaces.AuthUseCase {
	byName := make(map[string]service.OAuthProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	if config.PasswordMinLength <= 0 {
		config.PasswordMinLength = 8
	}

	return &AuthUseCase{
		logger:        logger,
		clock:         clock,
		config:        config,
		transactor:    repos.Transactor,
		userRepo:      repos.User,
		workspaceRepo: repos.Workspace,
		memberRepo:    repos.Member,
		taskRepo:      repos.Task,
		tokens:        tokens,
		revocations:   revocations,
		email:         email,
		blobStore:     blobStore,
		providers:     byName,
	}
}

// Authenticate dispatches over the closed credential set
func (uc *AuthUseCase) Authenticate(ctx context.Context, credential dto.Credential) (*entity.User, error) {
	switch c := credential.(type) {
	case dto.PasswordCredential:
		return uc.authenticatePassword(ctx, c)
	case dto.BearerCredential:
		return uc.authenticateBearer(ctx, c)
	case dto.ProviderCredential:
		return uc.authenticateProvider(ctx, c)
	default:
		return nil, domainErrors.ErrInvalidCredentials
	}
}

// authenticatePassword always runs one bcrypt comparison, against a dummy hash when the
// account is missing or has no password, so response time does not reveal registered emails.
func (uc *AuthUseCase) authenticatePassword(ctx context.Context, c dto.PasswordCredential) (*entity.User, error) {
	user, err := uc.userRepo.FindByEmail(ctx, entity.NormalizeEmail(c.Email))
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to look up user")
	}

	hash, salt := dummyPassword()
	if user != nil && user.HasPassword() {
		hash, salt = user.PasswordHash, user.PasswordSalt
	}
	verifyErr := VerifyPassword(hash, c.Password, salt)

	if user == nil || !user.HasPassword() || verifyErr != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, domainErrors.ErrEmailNotVerified
	}
	return user, nil
}

func (uc *AuthUseCase) authenticateBearer(ctx context.Context, c dto.BearerCredential) (*entity.User, error) {
	if c.Token == "" {
		return nil, domainErrors.ErrUnauthenticated
	}

	claims, err := uc.tokens.Parse(c.Token)
	if err != nil {
		return nil, domainErrors.ErrInvalidToken
	}

	revoked, err := uc.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to check token revocation")
	}
	if revoked {
		return nil, domainErrors.ErrInvalidToken
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to load user")
	}
	if user == nil {
		return nil, domainErrors.ErrInvalidToken
	}
	if user.IssuedBeforePasswordChange(claims.IssuedAt) {
		return nil, domainErrors.ErrStaleToken
	}
	return user, nil
}

// authenticateProvider matches by email first, then by provider identity, else creates a verified user
func (uc *AuthUseCase) authenticateProvider(ctx context.Context, c dto.ProviderCredential) (*entity.User, error) {
	email := entity.NormalizeEmail(c.Email)
	if c.Provider == "" || c.ProviderID == "" || email == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to look up user")
	}
	if user != nil {
		var fields []repository.UserField
		if user.Provider == nil || user.ProviderID == nil {
			user.LinkProvider(c.Provider, c.ProviderID)
			fields = append(fields, repository.UserFieldProvider)
		}
		if !user.EmailVerified {
			// the password of an unverified signup is not tied to the address owner
			user.MarkVerified()
			user.DiscardPassword(uc.clock.Now())
			fields = append(fields, repository.UserFieldVerification, repository.UserFieldPassword)
		}
		if err := uc.userRepo.Update(ctx, user, fields...); err != nil {
			return nil, updateFailed(err, domainErrors.ErrInvalidCredentials, "failed to link provider")
		}
		return user, nil
	}

	user, err = uc.userRepo.FindByProvider(ctx, c.Provider, c.ProviderID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to look up user")
	}
	if user != nil {
		return user, nil
	}

	id, err := GenerateUniqueID(PrefixUser)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate user id")
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = ExtractUsernameFromEmail(email)
	}
	user = &entity.User{
		ID:            id,
		Email:         email,
		Name:          name,
		EmailVerified: true,
	}
	if c.AvatarURL != "" {
		avatar := c.AvatarURL
		user.AvatarURL = &avatar
	}
	user.LinkProvider(c.Provider, c.ProviderID)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, repository.ErrDuplicate) {
			return nil, domainErrors.ErrEmailTaken
		}
		return nil, apperrors.Dependency(err, "failed to create user")
	}

	uc.logger.Info("User created from identity provider",
		zap.String("user_id", user.ID),
		zap.String("provider", c.Provider))
	return user, nil
}

// Signup creates an unverified account. If the verification email cannot be sent the account is removed again.
func (uc *AuthUseCase) Signup(ctx context.Context, params dto.SignupParams) (*entity.User, error) {
	email := entity.NormalizeEmail(params.Email)
	if !strings.Contains(email, "@") {
		return nil, domainErrors.Validation("invalid email address")
	}
	if err := uc.checkPassword(params.Password); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to check email")
	}
	if existing != nil {
		return nil, domainErrors.ErrEmailTaken
	}

	hash, salt, err := HashPassword(params.Password, uc.config.HashCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}
	token, tokenHash, err := GenerateToken()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate verification token")
	}
	id, err := GenerateUniqueID(PrefixUser)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate user id")
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = ExtractUsernameFromEmail(email)
	}
	expiresAt := uc.clock.Now().Add(VerificationTokenTTLHours * time.Hour)
	user := &entity.User{
		ID:                    id,
		Email:                 email,
		Name:                  name,
		PasswordHash:          hash,
		PasswordSalt:          salt,
		VerificationTokenHash: &tokenHash,
		VerificationExpiresAt: &expiresAt,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, repository.ErrDuplicate) {
			return nil, domainErrors.ErrEmailTaken
		}
		return nil, apperrors.Dependency(err, "failed to create user")
	}

	if err := uc.email.SendVerificationEmail(ctx, email, name, token); err != nil {
		if delErr := uc.userRepo.Delete(ctx, user.ID); delErr != nil {
			uc.logger.Error("Failed to roll back signup after mail failure",
				zap.String("user_id", user.ID),
				zap.Error(delErr))
		}
		return nil, apperrors.Dependency(err, "failed to send verification email")
	}

	uc.logger.Info("User signed up", zap.String("user_id", user.ID))
	return user, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*dto.LoginResult, error) {
	user, err := uc.Authenticate(ctx, dto.PasswordCredential{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) OAuthURL(provider, state string) (string, error) {
	p, ok := uc.providers[provider]
	if !ok {
		return "", domainErrors.ErrUnknownProvider
	}
	return p.AuthCodeURL(state), nil
}

func (uc *AuthUseCase) LoginWithProvider(ctx context.Context, provider, code string) (*dto.LoginResult, error) {
	p, ok := uc.providers[provider]
	if !ok {
		return nil, domainErrors.ErrUnknownProvider
	}

	profile, err := p.Exchange(ctx, code)
	if err != nil {
		uc.logger.Warn("OAuth code exchange failed", zap.String("provider", provider), zap.Error(err))
		return nil, apperrors.NewAppError(apperrors.ErrUnauthenticated, "sign in with "+provider+" failed", err)
	}

	user, err := uc.Authenticate(ctx, dto.ProviderCredential{
		Provider:   profile.Provider,
		ProviderID: profile.ProviderID,
		Email:      profile.Email,
		Name:       profile.Name,
		AvatarURL:  profile.AvatarURL,
	})
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Logout revokes the token until its natural expiry. An already invalid token is a no-op.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(uc.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := uc.revocations.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return apperrors.Dependency(err, "failed to revoke token")
	}
	return nil
}

func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domainErrors.ErrInvalidOrExpiredLink
	}

	user, err := uc.userRepo.FindByVerificationTokenHash(ctx, HashToken(token))
	if err != nil {
		return apperrors.Dependency(err, "failed to look up verification token")
	}
	if user == nil || user.VerificationExpiresAt == nil || !user.VerificationExpiresAt.After(uc.clock.Now()) {
		return domainErrors.ErrInvalidOrExpiredLink
	}

	user.MarkVerified()
	if err := uc.userRepo.Update(ctx, user, repository.UserFieldVerification); err != nil {
		return updateFailed(err, domainErrors.ErrInvalidOrExpiredLink, "failed to verify email")
	}
	return nil
}

// ResendVerification is silent for unknown emails
func (uc *AuthUseCase) ResendVerification(ctx context.Context, email string) error {
	user, err := uc.userRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return apperrors.Dependency(err, "failed to look up user")
	}
	if user == nil {
		return nil
	}
	if user.EmailVerified {
		return domainErrors.ErrAlreadyVerified
	}

	token, tokenHash, err := GenerateToken()
	if err != nil {
		return apperrors.Wrap(err, "failed to generate verification token")
	}
	expiresAt := uc.clock.Now().Add(VerificationTokenTTLHours * time.Hour)
	user.VerificationTokenHash = &tokenHash
	user.VerificationExpiresAt = &expiresAt
	if err := uc.userRepo.Update(ctx, user, repository.UserFieldVerification); err != nil {
		if apperrors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperrors.Dependency(err, "failed to store verification token")
	}

	if err := uc.email.SendVerificationEmail(ctx, user.Email, user.Name, token); err != nil {
		return apperrors.Dependency(err, "failed to send verification email")
	}
	return nil
}

// ForgotPassword is silent for unknown emails
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return apperrors.Dependency(err, "failed to look up user")
	}
	if user == nil {
		return nil
	}

	token, tokenHash, err := GenerateToken()
	if err != nil {
		return apperrors.Wrap(err, "failed to generate reset token")
	}
	expiresAt := uc.clock.Now().Add(PasswordResetTokenTTLHours * time.Hour)
	user.PasswordResetTokenHash = &tokenHash
	user.PasswordResetExpiresAt = &expiresAt
	if err := uc.userRepo.Update(ctx, user, repository.UserFieldPasswordReset); err != nil {
		if apperrors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperrors.Dependency(err, "failed to store reset token")
	}

	if err := uc.email.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
		return apperrors.Dependency(err, "failed to send password reset email")
	}
	return nil
}

// ResetPassword sets a new password and invalidates every token issued before now
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := uc.checkPassword(newPassword); err != nil {
		return err
	}
	if token == "" {
		return domainErrors.ErrInvalidOrExpiredLink
	}

	user, err := uc.userRepo.FindByResetTokenHash(ctx, HashToken(token))
	if err != nil {
		return apperrors.Dependency(err, "failed to look up reset token")
	}
	if user == nil || user.PasswordResetExpiresAt == nil || !user.PasswordResetExpiresAt.After(uc.clock.Now()) {
		return domainErrors.ErrInvalidOrExpiredLink
	}

	if err := uc.setPassword(user, newPassword); err != nil {
		return err
	}
	user.PasswordResetTokenHash = nil
	user.PasswordResetExpiresAt = nil
	// the reset link proves ownership of the address
	user.MarkVerified()

	fields := []repository.UserField{repository.UserFieldPassword, repository.UserFieldPasswordReset, repository.UserFieldVerification}
	if err := uc.userRepo.Update(ctx, user, fields...); err != nil {
		return updateFailed(err, domainErrors.ErrInvalidOrExpiredLink, "failed to reset password")
	}

	uc.logger.Info("Password reset", zap.String("user_id", user.ID))
	return nil
}

// ChangePassword returns a fresh token since the caller's current one becomes stale
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*dto.LoginResult, error) {
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasPassword() {
		if err := VerifyPassword(user.PasswordHash, currentPassword, user.PasswordSalt); err != nil {
			return nil, domainErrors.ErrInvalidCredentials
		}
	}
	if err := uc.checkPassword(newPassword); err != nil {
		return nil, err
	}

	if err := uc.setPassword(user, newPassword); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, user, repository.UserFieldPassword); err != nil {
		return nil, updateFailed(err, domainErrors.ErrUserNotFound, "failed to change password")
	}

	uc.logger.Info("Password changed", zap.String("user_id", user.ID))
	return uc.issue(user)
}

func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return uc.loadUser(ctx, userID)
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, params dto.UpdateProfileParams) (*entity.User, error) {
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, domainErrors.Validation("name is required")
		}
		user.Name = name
		if err := uc.userRepo.Update(ctx, user, repository.UserFieldName); err != nil {
			return nil, updateFailed(err, domainErrors.ErrUserNotFound, "failed to update profile")
		}
	}
	return user, nil
}

func (uc *AuthUseCase) UploadAvatar(ctx context.Context, userID string, upload dto.ImageUpload) (*entity.User, error) {
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := uploadImage(ctx, uc.blobStore, FolderAvatars, user.ID, upload)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = &url
	if err := uc.userRepo.Update(ctx, user, repository.UserFieldAvatar); err != nil {
		return nil, updateFailed(err, domainErrors.ErrUserNotFound, "failed to update avatar")
	}
	return user, nil
}

// DeleteAccount removes owned workspaces (with their full cascade), memberships, assignments and the user.
// Comments the user wrote in other workspaces are kept.
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, userID string) error {
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		owned, err := uc.workspaceRepo.ListOwnedBy(ctx, user.ID)
		if err != nil {
			return apperrors.Dependency(err, "failed to list owned workspaces")
		}
		for _, workspace := range owned {
			if err := uc.workspaceRepo.DeleteCascade(ctx, workspace.ID); err != nil {
				return apperrors.Dependency(err, "failed to delete owned workspace")
			}
		}
		if err := uc.memberRepo.DeleteByUser(ctx, user.ID); err != nil {
			return apperrors.Dependency(err, "failed to delete memberships")
		}
		if err := uc.taskRepo.DeleteAssignmentsByUser(ctx, user.ID); err != nil {
			return apperrors.Dependency(err, "failed to delete assignments")
		}
		if err := uc.userRepo.Delete(ctx, user.ID); err != nil {
			return apperrors.Dependency(err, "failed to delete user")
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("Account deleted", zap.String("user_id", user.ID))
	return nil
}

func (uc *AuthUseCase) loadUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to load user")
	}
	if user == nil {
		return nil, domainErrors.ErrUserNotFound
	}
	return user, nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResult, error) {
	token, claims, err := uc.tokens.Issue(user.ID, uc.clock.Now())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}
	return &dto.LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	}, nil
}

func (uc *AuthUseCase) checkPassword(password string) error {
	if len(password) < uc.config.PasswordMinLength {
		return domainErrors.ErrWeakPassword
	}
	if len(password) > MaxPasswordLength {
		return domainErrors.Validation("password is too long")
	}
	return nil
}

func (uc *AuthUseCase) setPassword(user *entity.User, password string) error {
	hash, salt, err := HashPassword(password, uc.config.HashCost)
	if err != nil {
		return apperrors.Wrap(err, "failed to hash password")
	}
	now := uc.clock.Now()
	user.PasswordHash = hash
	user.PasswordSalt = salt
	user.PasswordChangedAt = &now
	return nil
}
