package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stazhbg/internship-portal/internal/registry"
	"github.com/stazhbg/internship-portal/internal/repository"
)

// IdentityService manages the signed-in identity. There is no credential
// check: callers construct a user with an assigned role and sign it in
// directly. Every mutation rewrites the persisted snapshot in full.
type IdentityService interface {
	// SignIn registers the user in the catalogue, persists the identity
	// snapshot and returns the session token.
	SignIn(ctx context.Context, user domain.User) (string, *domain.User, error)

	// Resume loads the identity stored under token.
	// It returns apperrors.ErrNoActiveSession if the token is unknown.
	Resume(ctx context.Context, token string) (*domain.User, error)

	// SignOut removes the persisted snapshot. Unknown tokens are ignored.
	SignOut(ctx context.Context, token string) error

	// UpdateProfile merges the non-nil fields into the current identity
	// and re-persists it. It returns apperrors.ErrNoActiveSession if no
	// identity is signed in under token.
	UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*domain.User, error)
}

// ProfileUpdate carries the optional profile fields of the setup forms.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name             *string
	Email            *string
	Phone            *string
	ClassSection     *string
	ProfilePicture   *string
	Technologies     *[]string
	Github           *string
	Linkedin         *string
	Position         *string
	ProfileCompleted *bool
}

type IdentityServiceImpl struct {
	sessions repository.SessionRepository
	reg      *registry.Registry
	log      *slog.Logger
}

func NewIdentityService(sessions repository.SessionRepository, reg *registry.Registry, log *slog.Logger) *IdentityServiceImpl {
	return &IdentityServiceImpl{
		sessions: sessions,
		reg:      reg,
		log:      log,
	}
}

func (s *IdentityServiceImpl) SignIn(ctx context.Context, user domain.User) (string, *domain.User, error) {
	const op = "internal.service.SignIn"

	if !user.Role.IsValid() {
		return "", nil, fmt.Errorf("%s: %w: unknown role '%s'", op, apperrors.ErrValidation, user.Role)
	}

	if user.ID == "" {
		user.ID = newID()
	}

	ts := now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = ts
	}
	user.UpdatedAt = ts

	if err := s.reg.UpsertUser(user); err != nil {
		return "", nil, fmt.Errorf("%s: registry.UpsertUser failed: %w", op, err)
	}

	token := newID()
	if err := s.persist(ctx, token, user); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user signed in",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return token, &user, nil
}

func (s *IdentityServiceImpl) Resume(ctx context.Context, token string) (*domain.User, error) {
	const op = "internal.service.Resume"

	snapshot, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNoActiveSession)
		}

		return nil, fmt.Errorf("%s: sessions.Get failed: %w", op, err)
	}

	var user domain.User
	if err := json.Unmarshal(snapshot, &user); err != nil {
		return nil, fmt.Errorf("%s: corrupt identity snapshot: %w", op, err)
	}

	return &user, nil
}

func (s *IdentityServiceImpl) SignOut(ctx context.Context, token string) error {
	const op = "internal.service.SignOut"

	if err := s.sessions.Remove(ctx, token); err != nil {
		return fmt.Errorf("%s: sessions.Remove failed: %w", op, err)
	}

	return nil
}

func (s *IdentityServiceImpl) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*domain.User, error) {
	const op = "internal.service.UpdateProfile"

	user, err := s.Resume(ctx, token)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(user, update)
	user.UpdatedAt = now()

	if err := s.reg.UpsertUser(*user); err != nil {
		return nil, fmt.Errorf("%s: registry.UpsertUser failed: %w", op, err)
	}

	if err := s.persist(ctx, token, *user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *IdentityServiceImpl) persist(ctx context.Context, token string, user domain.User) error {
	snapshot, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal identity snapshot: %w", err)
	}

	if err := s.sessions.Set(ctx, token, snapshot); err != nil {
		return fmt.Errorf("sessions.Set failed: %w", err)
	}

	return nil
}

func applyProfileUpdate(user *domain.User, update ProfileUpdate) {
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.ClassSection != nil {
		user.ClassSection = *update.ClassSection
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.Technologies != nil {
		user.Technologies = *update.Technologies
	}
	if update.Github != nil {
		user.Github = *update.Github
	}
	if update.Linkedin != nil {
		user.Linkedin = *update.Linkedin
	}
	if update.Position != nil {
		user.Position = *update.Position
	}
	if update.ProfileCompleted != nil {
		user.ProfileCompleted = *update.ProfileCompleted
	}
}
