package models

// CardEventKind analitik olay türü.
type CardEventKind string

const (
	CardEventView     CardEventKind = "view"     // Public kart sayfası görüntülendi
	CardEventScan     CardEventKind = "scan"     // QR kod ile gelindi (src parametresi)
	CardEventDownload CardEventKind = "download" // İsim etiketi / arka plan indirildi
	CardEventVCard    CardEventKind = "vcard"    // vCard indirildi
)

// CardEvent karta ait analitik kaydı. Sadece eklenir, güncellenmez.
type CardEvent struct {
	BaseModel
	CardID uint          `gorm:"index;not null" json:"card_id"`
	Kind   CardEventKind `gorm:"type:varchar(20);index;not null" json:"kind"`
	Source string        `gorm:"type:varchar(50)" json:"source"` // nametag, qrtag, background, direct...
}
