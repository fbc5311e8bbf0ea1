package repositories

import (
	"context"
	"errors"

	"kartvizit.link/models"

	"gorm.io/gorm"
)

// ErrNotFound repository katmanının bulunamadı hatası. Servisler kendi hatalarına çevirir.
var ErrNotFound = errors.New("kayıt bulunamadı")

type txKey struct{}

// WithTx transaction'ı context'e koyar; bu context ile çağrılan repository'ler aynı tx'i kullanır.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// getDB context'te transaction varsa onu, yoksa ana bağlantıyı context ile döndürür.
func getDB(db *gorm.DB, ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// IBaseRepository tek tablolu basit modeller için ortak işlemler.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, query string, args ...any) (int64, error)
}

// BaseRepository IBaseRepository'nin GORM uygulaması.
type BaseRepository[T any] struct {
	db *gorm.DB
}

func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("oluşturulacak kayıt nil olamaz")
	}
	return getDB(r.db, ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := getDB(r.db, ctx).First(&entity, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &entity, nil
}

// Delete soft delete yapar; context'te kullanıcı varsa deleted_by doldurulur.
func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) error {
	db := getDB(r.db, ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if userID, ok := models.UserIDFromContext(ctx); ok {
			if err := tx.Model(new(T)).Where("id = ?", id).UpdateColumn("deleted_by", userID).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(new(T), id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Count koşula uyan kayıt sayısı. query boşsa tüm tablo sayılır.
func (r *BaseRepository[T]) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	db := getDB(r.db, ctx).Model(new(T))
	if query != "" {
		db = db.Where(query, args...)
	}
	err := db.Count(&count).Error
	return count, err
}

var _ IBaseRepository[models.Type] = (*BaseRepository[models.Type])(nil)
