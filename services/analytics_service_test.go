package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kartvizit.link/models"
)

func TestAnalyticsSummary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, db, "owner@example.com", false)
	other := newTestUser(t, db, "other@example.com", false)
	cards := NewCardServiceWithDB(db)
	card := newTestCard(t, cards, owner.ID)
	svc := NewAnalyticsServiceWithDB(db, cards)

	svc.Record(ctx, card.ID, models.CardEventView, "")
	svc.Record(ctx, card.ID, models.CardEventView, "")
	svc.Record(ctx, card.ID, models.CardEventScan, "nametag")

	counts, err := svc.Summary(ctx, card.ID, owner.ID, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	got := map[models.CardEventKind]int64{}
	for _, c := range counts {
		got[c.Kind] = c.Total
	}
	if got[models.CardEventView] != 2 || got[models.CardEventScan] != 1 {
		t.Errorf("özet %v, beklenen view=2 scan=1", got)
	}

	if _, err := svc.Summary(ctx, card.ID, other.ID, time.Time{}); !errors.Is(err, ErrCardForbidden) {
		t.Errorf("başkasının özeti ErrCardForbidden vermeli, gelen %v", err)
	}
}
