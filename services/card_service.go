package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/compose"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CardServiceError özel servis hataları
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound       CardServiceError = "kartvizit bulunamadı"
	ErrCardCreationFailed CardServiceError = "kartvizit oluşturulamadı"
	ErrCardUpdateFailed   CardServiceError = "kartvizit güncellenemedi"
	ErrCardDeletionFailed CardServiceError = "kartvizit silinemedi"
	ErrCardForbidden      CardServiceError = "bu işlem için yetkiniz yok"
	ErrCrdInvalidInput    CardServiceError = "geçersiz girdi verisi"
	ErrCardNameRequired   CardServiceError = "isim ve soyisim zorunludur"

	ErrCrdLinkCreationFailed CardServiceError = "kartvizit için link oluşturulamadı"
	ErrCrdTypeNotFound       CardServiceError = "kartvizit hizmet türü bulunamadı"
)

const maxKeyAttempts = 5

// CardInput oluşturma ve güncelleme gövdesi.
type CardInput struct {
	Detail    models.CardDetail    `json:"detail"`
	Contacts  []models.CardContact `json:"contacts"`
	IsEnabled *bool                `json:"is_enabled"`
}

// ICardService kartvizit işlemleri için arayüz.
type ICardService interface {
	CreateCard(ctx context.Context, creatorUserID uint, input CardInput) (*models.Card, error)
	GetCardByID(ctx context.Context, id uint, requestingUserID uint) (*models.Card, error)
	GetCardByKey(ctx context.Context, key string) (*models.Card, error)
	GetCardsForUserPaginated(ctx context.Context, creatorUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateCard(ctx context.Context, id uint, updatingUserID uint, input CardInput) (*models.Card, error)
	DeleteCard(ctx context.Context, id uint, deletingUserID uint) error
	GetCardCountForUser(ctx context.Context, creatorUserID uint) (int64, error)
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo     repositories.ICardRepository
	linkRepo repositories.ILinkRepository
	typeRepo repositories.ITypeRepository
	userRepo repositories.IUserRepository
	db       *gorm.DB
}

// NewCardService yeni bir CardService örneği oluşturur.
func NewCardService() ICardService {
	return NewCardServiceWithDB(configsdatabase.GetDB())
}

// NewCardServiceWithDB tüm repository'leri verilen bağlantıyla kurar.
func NewCardServiceWithDB(db *gorm.DB) ICardService {
	return &CardService{
		repo:     repositories.NewCardRepositoryWithDB(db),
		linkRepo: repositories.NewLinkRepositoryWithDB(db),
		typeRepo: repositories.NewTypeRepositoryWithDB(db),
		userRepo: repositories.NewUserRepositoryWithDB(db),
		db:       db,
	}
}

// ValidateCardDetail temel validasyonları yapar.
func ValidateCardDetail(detail models.CardDetail) error {
	if strings.TrimSpace(detail.FirstName) == "" || strings.TrimSpace(detail.LastName) == "" {
		return ErrCardNameRequired
	}
	for _, c := range []struct{ field, value string }{
		{"primary_color", detail.PrimaryColor},
		{"secondary_color", detail.SecondaryColor},
	} {
		if c.value == "" {
			continue
		}
		if _, err := compose.ParseHexColor(c.value); err != nil {
			return fmt.Errorf("%s: %w", c.field, err)
		}
	}
	return nil
}

// NormalizeContacts ikincil iletişim kayıtlarını temizler ve sıralar.
// Boş değerler atılır, Position gönderim sırasıdır. Her tür için ilk işaretli kayıt
// birincil kalır, sonrakilerin işareti kaldırılır; hiç işaret yoksa ilk kayıt birincil olur.
func NormalizeContacts(contacts []models.CardContact) ([]models.CardContact, error) {
	out := make([]models.CardContact, 0, len(contacts))
	position := map[models.ContactKind]int{}
	for _, c := range contacts {
		c.Kind = models.ContactKind(strings.ToLower(strings.TrimSpace(string(c.Kind))))
		if !validKind(c.Kind) {
			return nil, fmt.Errorf("%w: bilinmeyen iletişim türü %q", ErrCrdInvalidInput, c.Kind)
		}
		c.Value = strings.TrimSpace(c.Value)
		if c.Value == "" {
			continue
		}
		c.Type = strings.ToLower(strings.TrimSpace(c.Type))
		if c.Type == "" {
			c.Type = "work"
		}
		c.Position = position[c.Kind]
		position[c.Kind]++
		out = append(out, c)
	}

	for _, kind := range models.ContactKinds {
		first := -1
		primary := false
		for i := range out {
			if out[i].Kind != kind {
				continue
			}
			if first < 0 {
				first = i
			}
			if out[i].IsPrimary {
				if primary {
					out[i].IsPrimary = false
				}
				primary = true
			}
		}
		if first >= 0 && !primary {
			out[first].IsPrimary = true
		}
	}
	return out, nil
}

func validKind(k models.ContactKind) bool {
	for _, known := range models.ContactKinds {
		if k == known {
			return true
		}
	}
	return false
}

// authorize isteği yapan kullanıcının kart sahibi ya da sistem kullanıcısı olduğunu doğrular.
func (s *CardService) authorize(ctx context.Context, card *models.Card, userID uint) error {
	if card.CreatorUserID == userID {
		return nil
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err == nil && user.IsSystem {
		return nil
	}
	configslog.Log.Warn("Yetkisiz kartvizit erişim denemesi", zap.Uint("cardID", card.ID), zap.Uint("userID", userID), zap.Uint("ownerID", card.CreatorUserID))
	return ErrCardForbidden
}

// CreateCard kartviziti, detayını, iletişim kayıtlarını ve linkini tek transaction içinde oluşturur.
func (s *CardService) CreateCard(ctx context.Context, creatorUserID uint, input CardInput) (*models.Card, error) {
	if creatorUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz oluşturan kullanıcı ID", ErrCrdInvalidInput)
	}
	if err := ValidateCardDetail(input.Detail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrdInvalidInput, err)
	}
	contacts, err := NormalizeContacts(input.Contacts)
	if err != nil {
		return nil, err
	}

	var created *models.Card
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, creatorUserID), tx)

		cardType, err := s.typeRepo.FindByName(txCtx, models.TypeNameCard)
		if err != nil {
			configslog.Log.Error("Kartvizit tipi bulunamadı", zap.String("type_name", models.TypeNameCard), zap.Error(err))
			return ErrCrdTypeNotFound
		}

		key, err := s.newLinkKey(txCtx)
		if err != nil {
			return err
		}
		link := models.Link{Key: key, TypeID: cardType.ID, CreatorUserID: creatorUserID}
		if err := s.linkRepo.Create(txCtx, &link); err != nil {
			configslog.Log.Error("Link oluşturulamadı", zap.Error(err))
			return ErrCrdLinkCreationFailed
		}

		detail := input.Detail
		detail.ID = 0
		enabled, allowSave := input.IsEnabled == nil || *input.IsEnabled, detail.AllowSaveContact
		card := models.Card{
			LinkID:        link.ID,
			CreatorUserID: creatorUserID,
			IsEnabled:     enabled,
			Detail:        detail,
			Contacts:      contacts,
		}
		if err := s.repo.Create(txCtx, &card); err != nil {
			configslog.Log.Error("Kartvizit oluşturulamadı", zap.Error(err))
			return ErrCardCreationFailed
		}
		// default:true sütunlarında GORM sıfır değeri varsayılanla değiştirir; false ayrıca yazılır
		if !enabled {
			card.IsEnabled = false
			if err := s.repo.Update(txCtx, &card); err != nil {
				return ErrCardCreationFailed
			}
		}
		if !allowSave {
			card.Detail.AllowSaveContact = false
			if err := s.repo.UpdateDetail(txCtx, &card.Detail); err != nil {
				return ErrCardCreationFailed
			}
		}
		if err := s.linkRepo.SetTarget(txCtx, link.ID, card.ID); err != nil {
			configslog.Log.Error("Link hedefi güncellenemedi", zap.Uint("link_id", link.ID), zap.Error(err))
			return ErrCrdLinkCreationFailed
		}

		link.TargetID = card.ID
		link.Type = *cardType
		card.Link = link
		created = &card
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Kartvizit ve link oluşturuldu: CardID %d, LinkKey %s", created.ID, created.Link.Key)
	return created, nil
}

// newLinkKey benzersiz link anahtarı üretir; çakışmada birkaç kez yeniden dener.
func (s *CardService) newLinkKey(ctx context.Context) (string, error) {
	for i := 0; i < maxKeyAttempts; i++ {
		key, err := utils.GenerateSecureRandomString(models.LinkKeyLength)
		if err != nil {
			return "", ErrCrdLinkCreationFailed
		}
		exists, err := s.linkRepo.KeyExists(ctx, key)
		if err != nil {
			return "", ErrCrdLinkCreationFailed
		}
		if !exists {
			return key, nil
		}
		configslog.Log.Warn("Link key çakışması, yeniden deneniyor", zap.String("key", key))
	}
	return "", ErrCrdLinkCreationFailed
}

// GetCardByID kartviziti sahiplik kontrolüyle getirir.
func (s *CardService) GetCardByID(ctx context.Context, id uint, requestingUserID uint) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("GetCardByID: repo hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.authorize(ctx, card, requestingUserID); err != nil {
		return nil, err
	}
	return card, nil
}

// GetCardByKey public link anahtarı ile aktif kartviziti getirir.
func (s *CardService) GetCardByKey(ctx context.Context, key string) (*models.Card, error) {
	if len(key) != models.LinkKeyLength {
		return nil, ErrCardNotFound
	}

	link, err := s.linkRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if link.Type.Name != models.TypeNameCard {
		configslog.Log.Warn("Yanlış tipte link anahtarı ile kartvizit arandı", zap.String("key", key), zap.String("link_type", link.Type.Name))
		return nil, ErrCardNotFound
	}

	card, err := s.repo.FindByID(ctx, link.TargetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Error("Tutarsız veri: link var ama kartvizit yok", zap.Uint("link_id", link.ID), zap.Uint("target_id", link.TargetID))
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if !card.IsEnabled {
		configslog.Log.Info("Pasif kartvizit erişim denemesi", zap.String("key", key), zap.Uint("card_id", card.ID))
		return nil, ErrCardNotFound
	}
	return card, nil
}

// GetCardsForUserPaginated kullanıcıya ait kartvizitleri sayfalayarak getirir.
func (s *CardService) GetCardsForUserPaginated(ctx context.Context, creatorUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if creatorUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrCrdInvalidInput)
	}
	cards, total, err := s.repo.FindAllByUserIDPaginated(ctx, creatorUserID, params)
	if err != nil {
		configslog.Log.Error("Kullanıcı kartvizitleri alınırken hata", zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
		return nil, err
	}
	params.Normalize()
	return queryparams.NewPaginatedResult(cards, total, params), nil
}

// UpdateCard detayları, aktiflik durumunu ve iletişim kayıtlarını günceller.
func (s *CardService) UpdateCard(ctx context.Context, id uint, updatingUserID uint, input CardInput) (*models.Card, error) {
	if id == 0 || updatingUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz ID veya güncelleyen kullanıcı ID", ErrCrdInvalidInput)
	}
	if err := ValidateCardDetail(input.Detail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrdInvalidInput, err)
	}
	contacts, err := NormalizeContacts(input.Contacts)
	if err != nil {
		return nil, err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, updatingUserID), tx)

		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCardNotFound
			}
			return err
		}
		if err := s.authorize(txCtx, existing, updatingUserID); err != nil {
			return err
		}

		if input.IsEnabled != nil {
			existing.IsEnabled = *input.IsEnabled
		}

		detail := input.Detail
		detail.BaseModel = existing.Detail.BaseModel
		detail.CardID = existing.ID
		if err := s.repo.UpdateDetail(txCtx, &detail); err != nil {
			configslog.Log.Error("Kartvizit detayı güncellenemedi", zap.Uint("detailID", detail.ID), zap.Error(err))
			return ErrCardUpdateFailed
		}
		if err := s.repo.Update(txCtx, existing); err != nil {
			configslog.Log.Error("Kartvizit güncellenemedi", zap.Uint("id", id), zap.Error(err))
			return ErrCardUpdateFailed
		}
		if err := s.repo.ReplaceContacts(txCtx, existing.ID, contacts); err != nil {
			configslog.Log.Error("İletişim kayıtları güncellenemedi", zap.Uint("id", id), zap.Error(err))
			return ErrCardUpdateFailed
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Kartvizit güncellendi: ID %d", id)
	return s.repo.FindByID(ctx, id)
}

// DeleteCard kartviziti ve ilişkili linkini siler.
func (s *CardService) DeleteCard(ctx context.Context, id uint, deletingUserID uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya silen kullanıcı ID", ErrCrdInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, deletingUserID), tx)

		card, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCardNotFound
			}
			return err
		}
		if err := s.authorize(txCtx, card, deletingUserID); err != nil {
			return err
		}

		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCardNotFound
			}
			configslog.Log.Error("Kartvizit silinirken hata", zap.Uint("id", id), zap.Error(err))
			return ErrCardDeletionFailed
		}
		if card.LinkID != 0 {
			if err := s.linkRepo.Delete(txCtx, card.LinkID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
				configslog.Log.Error("Link silinirken hata", zap.Uint("link_id", card.LinkID), zap.Error(err))
				return ErrCardDeletionFailed
			}
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}
	configslog.SLog.Infof("Kartvizit ve linki silindi: Card ID %d", id)
	return nil
}

// GetCardCountForUser kullanıcıya ait kartvizit sayısını alır.
func (s *CardService) GetCardCountForUser(ctx context.Context, creatorUserID uint) (int64, error) {
	count, err := s.repo.CountByUserID(ctx, creatorUserID)
	if err != nil {
		configslog.Log.Error("Kullanıcı kartvizit sayısı alınırken hata", zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

var _ ICardService = (*CardService)(nil)
