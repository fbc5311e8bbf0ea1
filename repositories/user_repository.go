package repositories

import (
	"context"
	"errors"

	"kartvizit.link/models"

	"gorm.io/gorm"
)

// IUserRepository kullanıcı işlemleri.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateAPIKeyHash(ctx context.Context, id uint, hash string) error
}

type UserRepository struct {
	base *BaseRepository[models.User]
	db   *gorm.DB
}

func NewUserRepositoryWithDB(db *gorm.DB) IUserRepository {
	return &UserRepository{base: NewBaseRepository[models.User](db), db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.base.Create(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return r.base.FindByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := getDB(r.db, ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UpdateAPIKeyHash sadece api_key_hash sütununu yazar.
func (r *UserRepository) UpdateAPIKeyHash(ctx context.Context, id uint, hash string) error {
	if hash == "" {
		return errors.New("boş API anahtarı özeti")
	}
	result := getDB(r.db, ctx).Model(&models.User{}).Where("id = ?", id).Update("api_key_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IUserRepository = (*UserRepository)(nil)
