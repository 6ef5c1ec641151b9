package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
	"wanderlust/internal/storage"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// AssetStore stores uploaded files and returns their public URL.
type AssetStore interface {
	Put(ctx context.Context, folder, ext string, data []byte) (string, error)
}

// AuthService handles accounts, credentials and profiles.
type AuthService struct {
	userRepo   repository.UserRepository
	tripRepo   repository.TripRepository
	tokens     *TokenIssuer
	assets     AssetStore
	directory  *AuthorDirectory
	bcryptCost int
}

// NewAuthService creates a new AuthService. A zero bcryptCost selects bcrypt.DefaultCost.
func NewAuthService(
	userRepo repository.UserRepository,
	tripRepo repository.TripRepository,
	tokens *TokenIssuer,
	assets AssetStore,
	directory *AuthorDirectory,
	bcryptCost int,
) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		tripRepo:   tripRepo,
		tokens:     tokens,
		assets:     assets,
		directory:  directory,
		bcryptCost: bcryptCost,
	}
}

// AuthResult is a signed token together with the authenticated user.
type AuthResult struct {
	Token string
	User  domain.PublicUser
}

// Register creates an account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateAccount
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           domain.NewID(),
		Email:        email,
		PasswordHash: string(hash),
		Username:     local,
		Name:         local,
		SavedTrips:   []string{},
		LikedTrips:   []string{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	return s.signIn(user, 0)
}

// Login verifies credentials and signs the caller in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	count, err := s.tripRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.signIn(user, count)
}

// CurrentUser returns the authenticated user. A token whose user is gone is unauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.public(ctx, user)
}

// GetUser returns the public profile of any user.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	if !domain.IsStoredID(userID) {
		return nil, repository.ErrNotFound
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.public(ctx, user)
}

// ProfilePatch lists the profile fields to change. Nil fields are left untouched.
type ProfilePatch struct {
	Name     *string
	Username *string
	Bio      *string
	Avatar   *string
}

// UpdateProfile applies patch to the authenticated user.
// Usernames are not required to be unique.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.PublicUser, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
		}
		user.Username = username
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		user.Avatar = strings.TrimSpace(*patch.Avatar)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	s.directory.Invalidate(ctx, user.ID)

	return s.public(ctx, user)
}

// UploadAvatar stores a square thumbnail of the image and points the avatar at it.
func (s *AuthService) UploadAvatar(ctx context.Context, userID, contentType string, data []byte) (*domain.PublicUser, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	thumb, err := storage.AvatarThumbnail(contentType, data)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, fmt.Errorf("%w: avatar must be an image", ErrInvalidInput)
		}
		return nil, err
	}

	url, err := s.assets.Put(ctx, "avatars", ".jpg", thumb)
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	user.Avatar = url
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	s.directory.Invalidate(ctx, user.ID)

	return s.public(ctx, user)
}

func (s *AuthService) requireUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) public(ctx context.Context, user *domain.User) (*domain.PublicUser, error) {
	count, err := s.tripRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	pub := user.Public(count)
	return &pub, nil
}

func (s *AuthService) signIn(user *domain.User, createdTrips int) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Public(createdTrips)}, nil
}
