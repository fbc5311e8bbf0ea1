package models

import "kartvizit.link/pkg/prefs"

// NameTagPreference kart başına standart isim etiketi tercihleri.
// İlk kayıtta oluşturulur, sonraki kayıtlar aynı satırı günceller.
type NameTagPreference struct {
	BaseModel
	CardID        uint `gorm:"uniqueIndex;not null" json:"card_id"`
	prefs.NameTag `gorm:"embedded"`
}

// QRTagPreference kart başına QR çerçeveli etiket tercihleri.
type QRTagPreference struct {
	BaseModel
	CardID      uint `gorm:"uniqueIndex;not null" json:"card_id"`
	prefs.QRTag `gorm:"embedded"`
}

// BackgroundPreference kart başına sanal arka plan tercihleri.
type BackgroundPreference struct {
	BaseModel
	CardID           uint `gorm:"uniqueIndex;not null" json:"card_id"`
	prefs.Background `gorm:"embedded"`
}
