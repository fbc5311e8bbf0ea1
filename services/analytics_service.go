package services

import (
	"context"
	"strings"
	"time"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxEventSourceLength = 50

// IAnalyticsService kart olaylarını kaydeder ve özetler.
type IAnalyticsService interface {
	Record(ctx context.Context, cardID uint, kind models.CardEventKind, source string)
	Summary(ctx context.Context, cardID, userID uint, since time.Time) ([]repositories.KindCount, error)
}

type AnalyticsService struct {
	repo  repositories.ICardEventRepository
	cards ICardService
}

func NewAnalyticsService(cards ICardService) IAnalyticsService {
	return NewAnalyticsServiceWithDB(configsdatabase.GetDB(), cards)
}

func NewAnalyticsServiceWithDB(db *gorm.DB, cards ICardService) IAnalyticsService {
	return &AnalyticsService{repo: repositories.NewCardEventRepositoryWithDB(db), cards: cards}
}

// Record olayı kaydeder; hata isteği etkilemez, sadece loglanır.
func (s *AnalyticsService) Record(ctx context.Context, cardID uint, kind models.CardEventKind, source string) {
	source = strings.TrimSpace(source)
	if len(source) > maxEventSourceLength {
		source = source[:maxEventSourceLength]
	}
	event := &models.CardEvent{CardID: cardID, Kind: kind, Source: source}
	if err := s.repo.Create(ctx, event); err != nil {
		configslog.Log.Warn("Kart olayı kaydedilemedi", zap.Uint("card_id", cardID), zap.String("kind", string(kind)), zap.Error(err))
	}
}

// Summary sahiplik kontrolünden sonra türe göre olay sayılarını döndürür.
func (s *AnalyticsService) Summary(ctx context.Context, cardID, userID uint, since time.Time) ([]repositories.KindCount, error) {
	if _, err := s.cards.GetCardByID(ctx, cardID, userID); err != nil {
		return nil, err
	}
	return s.repo.CountByKind(ctx, cardID, since)
}

var _ IAnalyticsService = (*AnalyticsService)(nil)
