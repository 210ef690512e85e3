package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gamify/internal/interfaces"
	"gamify/internal/models"
	"gamify/internal/pkg/caching"

	"github.com/google/uuid"
	"github.com/samber/do"
)

type ServiceUser struct {
	container *do.Injector
	users     interfaces.UserRepository
	cache     caching.Cache
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	users, err := do.Invoke[interfaces.UserRepository](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, users, cache}, nil
}

func (service *ServiceUser) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	return caching.UseCache(ctx, service.cache, DBKeyUser(userID), CACHE_TTL_15_SECONDS, func() (*models.User, error) {
		user, err := service.users.Find(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return user, err
	})
}

func (service *ServiceUser) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return service.users.FindAll(ctx)
}

func (service *ServiceUser) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	if strings.TrimSpace(user.Username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	if user.Email != "" {
		if _, err := mail.ParseAddress(user.Email); err != nil {
			return nil, fmt.Errorf("invalid email: %w", err)
		}
	}

	if _, err := service.users.FindByUsername(ctx, user.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if user.Email != "" {
		if _, err := service.users.FindByEmail(ctx, user.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if err := service.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	// new users go straight onto the board with a provisional rank
	serviceLeaderboard, err := do.Invoke[*ServiceLeaderboard](service.container)
	if err != nil {
		return nil, err
	}
	if _, err := serviceLeaderboard.CreateEntry(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

func (service *ServiceUser) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := service.users.Update(ctx, user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUser(user.ID))
	return user, nil
}
