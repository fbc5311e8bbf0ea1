package services

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/layout"
	"kartvizit.link/pkg/prefs"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PreferenceServiceError özel servis hataları
type PreferenceServiceError string

func (e PreferenceServiceError) Error() string { return string(e) }

const (
	ErrPrefInvalidInput PreferenceServiceError = "geçersiz tercih verisi"
	ErrPrefSaveFailed   PreferenceServiceError = "tercihler kaydedilemedi"
	ErrPrefLoadFailed   PreferenceServiceError = "tercihler okunamadı"
)

// IPreferenceService kart ve varyant başına stil tercihleri. Her çağrı kart sahipliğini doğrular.
type IPreferenceService interface {
	Load(ctx context.Context, cardID, userID uint, variant layout.Variant) (any, error)
	NameTag(ctx context.Context, cardID, userID uint) (prefs.NameTag, error)
	QRTag(ctx context.Context, cardID, userID uint) (prefs.QRTag, error)
	Background(ctx context.Context, cardID, userID uint) (prefs.Background, error)
	SaveNameTag(ctx context.Context, cardID, userID uint, p prefs.NameTag) (*models.NameTagPreference, error)
	SaveQRTag(ctx context.Context, cardID, userID uint, p prefs.QRTag) (*models.QRTagPreference, error)
	SaveBackground(ctx context.Context, cardID, userID uint, p prefs.Background) (*models.BackgroundPreference, error)
}

type PreferenceService struct {
	cards      ICardService
	nameTags   repositories.IPreferenceRepository[models.NameTagPreference]
	qrTags     repositories.IPreferenceRepository[models.QRTagPreference]
	background repositories.IPreferenceRepository[models.BackgroundPreference]
}

func NewPreferenceService(cards ICardService) IPreferenceService {
	return NewPreferenceServiceWithDB(configsdatabase.GetDB(), cards)
}

func NewPreferenceServiceWithDB(db *gorm.DB, cards ICardService) IPreferenceService {
	return newPreferenceService(db, cards)
}

func newPreferenceService(db *gorm.DB, cards ICardService) *PreferenceService {
	return &PreferenceService{
		cards:      cards,
		nameTags:   repositories.NewPreferenceRepositoryWithDB[models.NameTagPreference](db),
		qrTags:     repositories.NewPreferenceRepositoryWithDB[models.QRTagPreference](db),
		background: repositories.NewPreferenceRepositoryWithDB[models.BackgroundPreference](db),
	}
}

// stored kayıtlı satırı döndürür; hiç kaydedilmemişse def kullanılır.
func stored[T repositories.PreferenceRow, P any](ctx context.Context, repo repositories.IPreferenceRepository[T], cardID uint, def func() P, get func(*T) P) (P, error) {
	row, err := repo.FindByCardID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return def(), nil
		}
		configslog.Log.Error("Tercihler okunamadı", zap.Uint("card_id", cardID), zap.Error(err))
		var zero P
		return zero, ErrPrefLoadFailed
	}
	return get(row), nil
}

func (s *PreferenceService) storedNameTag(ctx context.Context, cardID uint) (prefs.NameTag, error) {
	return stored(ctx, s.nameTags, cardID, prefs.DefaultNameTag, func(r *models.NameTagPreference) prefs.NameTag { return r.NameTag })
}

func (s *PreferenceService) storedQRTag(ctx context.Context, cardID uint) (prefs.QRTag, error) {
	return stored(ctx, s.qrTags, cardID, prefs.DefaultQRTag, func(r *models.QRTagPreference) prefs.QRTag { return r.QRTag })
}

func (s *PreferenceService) storedBackground(ctx context.Context, cardID uint) (prefs.Background, error) {
	return stored(ctx, s.background, cardID, prefs.DefaultBackground, func(r *models.BackgroundPreference) prefs.Background { return r.Background })
}

func (s *PreferenceService) owned(ctx context.Context, cardID, userID uint) error {
	_, err := s.cards.GetCardByID(ctx, cardID, userID)
	return err
}

// Load varyanta göre tercih yapısını döndürür.
func (s *PreferenceService) Load(ctx context.Context, cardID, userID uint, variant layout.Variant) (any, error) {
	switch variant {
	case layout.VariantStandard:
		return s.NameTag(ctx, cardID, userID)
	case layout.VariantQR:
		return s.QRTag(ctx, cardID, userID)
	case layout.VariantBackground:
		return s.Background(ctx, cardID, userID)
	}
	return nil, fmt.Errorf("%w: bilinmeyen varyant %q", ErrPrefInvalidInput, variant)
}

func (s *PreferenceService) NameTag(ctx context.Context, cardID, userID uint) (prefs.NameTag, error) {
	if err := s.owned(ctx, cardID, userID); err != nil {
		return prefs.NameTag{}, err
	}
	return s.storedNameTag(ctx, cardID)
}

func (s *PreferenceService) QRTag(ctx context.Context, cardID, userID uint) (prefs.QRTag, error) {
	if err := s.owned(ctx, cardID, userID); err != nil {
		return prefs.QRTag{}, err
	}
	return s.storedQRTag(ctx, cardID)
}

func (s *PreferenceService) Background(ctx context.Context, cardID, userID uint) (prefs.Background, error) {
	if err := s.owned(ctx, cardID, userID); err != nil {
		return prefs.Background{}, err
	}
	return s.storedBackground(ctx, cardID)
}

func invalidPrefs(err error) error {
	return fmt.Errorf("%w: %v", ErrPrefInvalidInput, err)
}

// SaveNameTag doğrular ve kart için tek satırı oluşturur ya da günceller.
func (s *PreferenceService) SaveNameTag(ctx context.Context, cardID, userID uint, p prefs.NameTag) (*models.NameTagPreference, error) {
	if err := s.owned(ctx, cardID, userID); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, invalidPrefs(err)
	}
	row, err := s.nameTags.Save(models.WithUserID(ctx, userID), cardID, &models.NameTagPreference{CardID: cardID, NameTag: p})
	if err != nil {
		return nil, ErrPrefSaveFailed
	}
	return row, nil
}

// SaveQRTag kayıtlı QR boyutu her zaman tam boy sınırlarıyla doğrulanır.
func (s *PreferenceService) SaveQRTag(ctx context.Context, cardID, userID uint, p prefs.QRTag) (*models.QRTagPreference, error) {
	if err := s.owned(ctx, cardID, userID); err != nil {
		return nil, err
	}
	if err := p.Validate(prefs.ModeFull); err != nil {
		return nil, invalidPrefs(err)
	}
	row, err := s.qrTags.Save(models.WithUserID(ctx, userID), cardID, &models.QRTagPreference{CardID: cardID, QRTag: p})
	if err != nil {
		return nil, ErrPrefSaveFailed
	}
	return row, nil
}

func (s *PreferenceService) SaveBackground(ctx context.Context, cardID, userID uint, p prefs.Background) (*models.BackgroundPreference, error) {
	if err := s.owned(ctx, cardID, userID); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, invalidPrefs(err)
	}
	row, err := s.background.Save(models.WithUserID(ctx, userID), cardID, &models.BackgroundPreference{CardID: cardID, Background: p})
	if err != nil {
		return nil, ErrPrefSaveFailed
	}
	return row, nil
}

var _ IPreferenceService = (*PreferenceService)(nil)
