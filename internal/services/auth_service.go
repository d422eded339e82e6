package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/storage"
)

type authServiceImpl struct {
	logger         zerolog.Logger
	store          storage.Store
	avatarMaxBytes int
}

func NewAuthService(
	logger zerolog.Logger,
	store storage.Store,
	avatarMaxBytes int,
) AuthService {
	return &authServiceImpl{
		logger:         logger,
		store:          store,
		avatarMaxBytes: avatarMaxBytes,
	}
}

// loadUsers reads the users collection. Storage failures other than a
// missing document are logged and degrade to an empty collection, so a
// storage outage reads the same as a first run.
func (s *authServiceImpl) loadUsers() []models.User {
	users, err := storage.GetJSON[[]models.User](s.store, storage.UsersKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Err(err).
				Msg("failed to load users collection")
		}
		return []models.User{}
	}
	return users
}

func (s *authServiceImpl) persistUsers(users []models.User) {
	err := storage.SetJSON(s.store, storage.UsersKey, users)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to persist users collection")
		return
	}
	s.logger.Debug().
		Int("count", len(users)).
		Msg("persisted users collection")
}

func (s *authServiceImpl) persistSession(ref *models.SessionRef) {
	err := storage.SetJSON(s.store, storage.CurrentUserKey, ref)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to persist session")
	}
}

func (s *authServiceImpl) Register(_ context.Context, params RegisterParams) (*models.User, error) {
	if errs := ValidateSignUp(params); len(errs) > 0 {
		first := errs[0]
		s.logger.Error().
			Str("field", first.Field).
			Str("reason", first.Message).
			Msg("sign-up input rejected")
		return nil, &first
	}

	users := s.loadUsers()

	if IsNameExists(users, params.Name) {
		s.logger.Error().
			Str("name", params.Name).
			Msg("user name already exists")
		return nil, &ValidationError{Field: "name", Message: "Name already exists"}
	}
	if IsEmailExists(users, params.Email) {
		s.logger.Error().
			Str("email", params.Email).
			Msg("user email already exists")
		return nil, &ValidationError{Field: "email", Message: "Email already exists"}
	}

	avatar := params.Avatar
	if avatar == "" {
		avatar = models.DefaultAvatar
	} else if len(avatar) > s.avatarMaxBytes {
		s.logger.Error().
			Int("bytes", len(avatar)).
			Int("max_bytes", s.avatarMaxBytes).
			Msg("avatar too large")
		return nil, &ValidationError{Field: "avatar", Message: "Image size must be less than 2MB"}
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}

	user := models.User{
		ID:        userUUID.String(),
		Name:      strings.TrimSpace(params.Name),
		Email:     strings.ToLower(strings.TrimSpace(params.Email)),
		Password:  params.Password,
		Avatar:    avatar,
		CreatedAt: time.Now(),
		Tasks:     []models.Task{},
		Statuses:  []models.Status{},
	}

	users = append(users, user)
	s.persistUsers(users)
	s.persistSession(&models.SessionRef{UserID: user.ID})

	s.logger.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("registered user")
	return &user, nil
}

func (s *authServiceImpl) Login(_ context.Context, params LoginParams) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	users := s.loadUsers()
	for i := range users {
		if strings.ToLower(strings.TrimSpace(users[i].Email)) != email {
			continue
		}
		if users[i].Password != params.Password {
			continue
		}

		user := users[i]
		s.persistSession(&models.SessionRef{UserID: user.ID})

		s.logger.Info().
			Str("user_id", user.ID).
			Msg("logged in")
		return &user, nil
	}

	s.logger.Error().
		Str("email", email).
		Msg("credentials did not match any user")
	return nil, ErrInvalidCredentials
}

func (s *authServiceImpl) Logout(_ context.Context) error {
	// An explicit null, not a removed key.
	s.persistSession(nil)

	s.logger.Info().Msg("logged out")
	return nil
}

func (s *authServiceImpl) CurrentUser(_ context.Context) (*models.User, error) {
	ref, err := storage.GetJSON[*models.SessionRef](s.store, storage.CurrentUserKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Err(err).
				Msg("failed to load session")
		}
		return nil, nil
	}
	if ref == nil {
		return nil, nil
	}

	users := s.loadUsers()
	for i := range users {
		if users[i].ID == ref.UserID {
			user := users[i]
			return &user, nil
		}
	}

	// Dangling pointer reads as logged out.
	s.logger.Debug().
		Str("user_id", ref.UserID).
		Msg("session points at an unknown user")
	return nil, nil
}

func (s *authServiceImpl) IsAuthenticated(ctx context.Context) bool {
	user, err := s.CurrentUser(ctx)
	return err == nil && user != nil
}
