package models

// ContactKind ikincil iletişim koleksiyonunu belirtir.
type ContactKind string

const (
	ContactKindEmail   ContactKind = "email"
	ContactKindPhone   ContactKind = "phone"
	ContactKindWebsite ContactKind = "website"
)

// ContactKinds geçerli koleksiyonlar, sabit sırada.
var ContactKinds = []ContactKind{ContactKindEmail, ContactKindPhone, ContactKindWebsite}

// CardContact karta ait ikincil e-posta, telefon veya web sitesi kaydı.
// Her (kart, tür) için en fazla bir kayıt IsPrimary olabilir.
type CardContact struct {
	BaseModel
	CardID    uint        `gorm:"index:idx_card_contact_kind;not null" json:"card_id"`
	Kind      ContactKind `gorm:"type:varchar(20);index:idx_card_contact_kind;not null" json:"kind"`
	Type      string      `gorm:"type:varchar(20);default:'work'" json:"type"` // work, home, mobile, other
	Label     string      `gorm:"type:varchar(100)" json:"label"`
	Value     string      `gorm:"type:varchar(255);not null" json:"value"`
	IsPrimary bool        `gorm:"default:false" json:"is_primary"`
	Position  int         `gorm:"default:0" json:"position"` // Eklenme sırası
}
