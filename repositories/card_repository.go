package repositories

import (
	"context"
	"errors"
	"strings"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardSortColumns liste uç noktasında izin verilen sıralama alanları ve SQL karşılıkları.
var CardSortColumns = map[string]string{
	"created_at": "cards.created_at",
	"id":         "cards.id",
	"is_enabled": "cards.is_enabled",
	"first_name": "card_details.first_name",
	"last_name":  "card_details.last_name",
	"company":    "card_details.company",
}

// ICardRepository kartvizit veritabanı işlemleri için arayüz.
type ICardRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Card, error)
	FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Card, int64, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	Create(ctx context.Context, card *models.Card) error
	Update(ctx context.Context, card *models.Card) error
	UpdateDetail(ctx context.Context, detail *models.CardDetail) error
	ReplaceContacts(ctx context.Context, cardID uint, contacts []models.CardContact) error
	Delete(ctx context.Context, id uint) error
}

// CardRepository ICardRepository arayüzünü uygular.
type CardRepository struct {
	base *BaseRepository[models.Card]
	db   *gorm.DB
}

// NewCardRepositoryWithDB verilen bağlantıyla çalışır (testler ve transaction'lar için).
func NewCardRepositoryWithDB(db *gorm.DB) ICardRepository {
	return &CardRepository{base: NewBaseRepository[models.Card](db), db: db}
}

// preloaded render ve public sayfa için gereken tüm ilişkileri yükler.
func preloaded(db *gorm.DB) *gorm.DB {
	return db.Preload("Detail").
		Preload("Contacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("kind asc, position asc, id asc")
		}).
		Preload("Link.Type")
}

// FindByID kartviziti Detail, Contacts ve Link ile bulur. Sahiplik kontrolü servistedir.
func (r *CardRepository) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var card models.Card
	if err := preloaded(getDB(r.db, ctx)).First(&card, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("CardRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		}
		return nil, notFound(err)
	}
	return &card, nil
}

// FindAllByUserIDPaginated kullanıcıya ait kartvizitleri ad/şirket aramasıyla sayfalı listeler.
func (r *CardRepository) FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Card, int64, error) {
	if userID == 0 {
		return nil, 0, errors.New("geçersiz User ID")
	}
	params.Normalize(CardSortKeys()...)

	var cards []models.Card
	var total int64

	filtered := func() *gorm.DB {
		q := getDB(r.db, ctx).Model(&models.Card{}).
			Joins("JOIN card_details ON card_details.card_id = cards.id AND card_details.deleted_at IS NULL").
			Where("cards.creator_user_id = ?", userID)
		if params.Search != "" {
			like := "%" + strings.ToLower(params.Search) + "%"
			q = q.Where(
				"LOWER(card_details.first_name) LIKE ? OR LOWER(card_details.last_name) LIKE ? OR LOWER(card_details.company) LIKE ?",
				like, like, like,
			)
		}
		return q
	}

	if err := filtered().Count(&total).Error; err != nil {
		configslog.Log.Error("CardRepository.FindAllByUserIDPaginated: sayım hatası", zap.Uint("user_id", userID), zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return cards, 0, nil
	}

	err := filtered().Select("cards.*").
		Order(CardSortColumns[params.SortBy] + " " + params.OrderBy).
		Limit(params.PerPage).Offset(params.Offset()).
		Preload("Detail").Preload("Link").
		Find(&cards).Error
	if err != nil {
		configslog.Log.Error("CardRepository.FindAllByUserIDPaginated: DB hatası", zap.Uint("user_id", userID), zap.Error(err))
		return nil, 0, err
	}
	return cards, total, nil
}

// CardSortKeys izinli sıralama alanları.
func CardSortKeys() []string {
	// ilk eleman varsayılan sıralama alanıdır
	return []string{"created_at", "id", "is_enabled", "first_name", "last_name", "company"}
}

// CountByUserID kullanıcıya ait kartvizit sayısı.
func (r *CardRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.New("geçersiz User ID")
	}
	return r.base.Count(ctx, "creator_user_id = ?", userID)
}

// Create kartı Detail ve Contacts ile birlikte oluşturur.
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	return r.base.Create(ctx, card)
}

// Update sadece ana tablo alanlarını kaydeder; ilişkiler ayrı güncellenir.
func (r *CardRepository) Update(ctx context.Context, card *models.Card) error {
	if card == nil || card.ID == 0 {
		return errors.New("güncellenecek kart geçerli değil")
	}
	return getDB(r.db, ctx).Omit(clause.Associations).Save(card).Error
}

// UpdateDetail detay kaydını kaydeder.
func (r *CardRepository) UpdateDetail(ctx context.Context, detail *models.CardDetail) error {
	if detail == nil || detail.ID == 0 {
		return errors.New("güncellenecek kart detayı geçerli değil")
	}
	return getDB(r.db, ctx).Save(detail).Error
}

// ReplaceContacts kartın ikincil iletişim kayıtlarını verilen listeyle değiştirir.
// Eski kayıtlar kalıcı silinir; birincil bayrağı tutarlılığı servis katmanında sağlanır.
func (r *CardRepository) ReplaceContacts(ctx context.Context, cardID uint, contacts []models.CardContact) error {
	db := getDB(r.db, ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("card_id = ?", cardID).Delete(&models.CardContact{}).Error; err != nil {
			return err
		}
		if len(contacts) == 0 {
			return nil
		}
		for i := range contacts {
			contacts[i].ID = 0
			contacts[i].CardID = cardID
		}
		return tx.Create(&contacts).Error
	})
}

// Delete kartı soft delete ile siler. Link'in silinmesi servisin sorumluluğundadır.
func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ ICardRepository = (*CardRepository)(nil)
