package datastore

import (
	"context"
	"time"

	"gamify/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_app_user_department").IfNotExists().Column("department").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindUserByID(ctx context.Context, db bun.IDB, userID string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func FindUserByUsername(ctx context.Context, db bun.IDB, username string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("username = ?", username).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func FindUserByEmail(ctx context.Context, db bun.IDB, email string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("email = ?", email).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func GetAllUsers(ctx context.Context, db bun.IDB) ([]models.User, error) {
	var users []models.User
	err := db.NewSelect().Model(&users).Order("created_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func CreateUser(ctx context.Context, db bun.IDB, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	_, err := db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func EditUser(ctx context.Context, db bun.IDB, user *models.User) (*models.User, error) {
	user.UpdatedAt = time.Now()
	_, err := db.NewUpdate().Model(user).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UserStore adapts the package funcs to the repository surface services
// resolve from the container.
type UserStore struct {
	db *bun.DB
}

func NewUserStore(db *bun.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Find(ctx context.Context, userID string) (*models.User, error) {
	return FindUserByID(ctx, idb(ctx, s.db), userID)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return FindUserByUsername(ctx, idb(ctx, s.db), username)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return FindUserByEmail(ctx, idb(ctx, s.db), email)
}

func (s *UserStore) FindAll(ctx context.Context) ([]models.User, error) {
	return GetAllUsers(ctx, idb(ctx, s.db))
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := CreateUser(ctx, idb(ctx, s.db), user)
	return err
}

func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	_, err := EditUser(ctx, idb(ctx, s.db), user)
	return err
}
