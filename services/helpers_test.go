package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"kartvizit.link/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB geçici dizinde tüm tabloları oluşturulmuş bir SQLite veritabanı açar.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("sqlite açılamadı: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Type{}, &models.Link{},
		&models.Card{}, &models.CardDetail{}, &models.CardContact{},
		&models.NameTagPreference{}, &models.QRTagPreference{}, &models.BackgroundPreference{},
		&models.RateLimitEvent{}, &models.CardEvent{},
	)
	if err != nil {
		t.Fatalf("migrasyon: %v", err)
	}
	if err := db.Create(&models.Type{Name: models.TypeNameCard}).Error; err != nil {
		t.Fatalf("tip oluşturulamadı: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string, isSystem bool) *models.User {
	t.Helper()
	svc := NewUserServiceWithDB(db).(*UserService)
	svc.cost = bcrypt.MinCost
	u, err := svc.CreateUser(context.Background(), "Test "+email, email, isSystem)
	if err != nil {
		t.Fatalf("kullanıcı oluşturulamadı: %v", err)
	}
	return u
}

func newTestCard(t *testing.T, cards ICardService, userID uint, contacts ...models.CardContact) *models.Card {
	t.Helper()
	card, err := cards.CreateCard(context.Background(), userID, CardInput{
		Detail: models.CardDetail{
			FirstName:        "Ada",
			LastName:         "Lovelace",
			Title:            "VP/Sales",
			Company:          "O'Brien & Sons, Inc.",
			Email:            "ada@example.com",
			AllowSaveContact: true,
		},
		Contacts: contacts,
	})
	if err != nil {
		t.Fatalf("kart oluşturulamadı: %v", err)
	}
	return card
}
