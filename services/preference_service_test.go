package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"kartvizit.link/models"
	"kartvizit.link/pkg/layout"
	"kartvizit.link/pkg/prefs"
)

func TestPreferenceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, db, "owner@example.com", false)
	cards := NewCardServiceWithDB(db)
	card := newTestCard(t, cards, owner.ID)
	svc := NewPreferenceServiceWithDB(db, cards)

	got, err := svc.QRTag(ctx, card.ID, owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, prefs.DefaultQRTag()) {
		t.Errorf("kayıt yokken varsayılanlar dönmeli: %+v", got)
	}

	p := prefs.DefaultQRTag()
	p.TopBannerText = "Hello, my name is"
	p.BottomBannerText = "Ada"
	p.QRSize = 320
	left := 18.0
	p.LeftMargin = &left
	first, err := svc.SaveQRTag(ctx, card.ID, owner.ID, p)
	if err != nil {
		t.Fatal(err)
	}

	p.TopBannerColor = "#DA7756"
	p.QRSize = 400
	second, err := svc.SaveQRTag(ctx, card.ID, owner.ID, p)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Errorf("ikinci kayıt aynı satırı güncellemeli: %d != %d", second.ID, first.ID)
	}

	var rows int64
	db.Model(&models.QRTagPreference{}).Where("card_id = ?", card.ID).Count(&rows)
	if rows != 1 {
		t.Errorf("kart başına tek satır olmalı, %d var", rows)
	}

	loaded, err := svc.Load(ctx, card.ID, owner.ID, layout.VariantQR)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, p) {
		t.Errorf("okunan tercih kaydedilenle aynı olmalı:\n got %+v\nwant %+v", loaded, p)
	}
}

func TestPreferenceSaveFalseBooleans(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, db, "owner@example.com", false)
	cards := NewCardServiceWithDB(db)
	card := newTestCard(t, cards, owner.ID)
	svc := NewPreferenceServiceWithDB(db, cards)

	p := prefs.DefaultBackground()
	if _, err := svc.SaveBackground(ctx, card.ID, owner.ID, p); err != nil {
		t.Fatal(err)
	}
	p.IncludeQR = false
	p.IncludeTitle = false
	p.Position = string(layout.AnchorTopRight)
	if _, err := svc.SaveBackground(ctx, card.ID, owner.ID, p); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Background(ctx, card.ID, owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.IncludeQR || got.IncludeTitle || got.Position != string(layout.AnchorTopRight) {
		t.Errorf("false değerler güncellenmeli: %+v", got)
	}
}

func TestPreferenceValidationAndOwnership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, db, "owner@example.com", false)
	other := newTestUser(t, db, "other@example.com", false)
	cards := NewCardServiceWithDB(db)
	card := newTestCard(t, cards, owner.ID)
	svc := NewPreferenceServiceWithDB(db, cards)

	bad := prefs.DefaultNameTag()
	bad.TextColor = "#FFF"
	if _, err := svc.SaveNameTag(ctx, card.ID, owner.ID, bad); !errors.Is(err, ErrPrefInvalidInput) {
		t.Errorf("geçersiz renk ErrPrefInvalidInput vermeli, gelen %v", err)
	}

	// önizleme boyutu kayıtta kabul edilmez
	small := prefs.DefaultQRTag()
	small.QRSize = 50
	if _, err := svc.SaveQRTag(ctx, card.ID, owner.ID, small); !errors.Is(err, ErrPrefInvalidInput) {
		t.Errorf("tam boy sınırı dışı ErrPrefInvalidInput vermeli, gelen %v", err)
	}

	if _, err := svc.NameTag(ctx, card.ID, other.ID); !errors.Is(err, ErrCardForbidden) {
		t.Errorf("başkasının tercihleri ErrCardForbidden vermeli, gelen %v", err)
	}
	if _, err := svc.SaveNameTag(ctx, card.ID, other.ID, prefs.DefaultNameTag()); !errors.Is(err, ErrCardForbidden) {
		t.Errorf("başkasının kartına kayıt ErrCardForbidden vermeli, gelen %v", err)
	}
}
