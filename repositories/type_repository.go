package repositories

import (
	"context"

	"kartvizit.link/models"

	"gorm.io/gorm"
)

// ITypeRepository link hizmet türleri.
type ITypeRepository interface {
	FindByName(ctx context.Context, name string) (*models.Type, error)
	FirstOrCreate(ctx context.Context, t *models.Type) error
}

type TypeRepository struct {
	db *gorm.DB
}

func NewTypeRepositoryWithDB(db *gorm.DB) ITypeRepository {
	return &TypeRepository{db: db}
}

func (r *TypeRepository) FindByName(ctx context.Context, name string) (*models.Type, error) {
	var t models.Type
	if err := getDB(r.db, ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// FirstOrCreate ada göre kaydı bulur, yoksa oluşturur (seeder için).
func (r *TypeRepository) FirstOrCreate(ctx context.Context, t *models.Type) error {
	return getDB(r.db, ctx).Where(models.Type{Name: t.Name}).Attrs(models.Type{Description: t.Description}).FirstOrCreate(t).Error
}

var _ ITypeRepository = (*TypeRepository)(nil)
