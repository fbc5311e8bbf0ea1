package models

// Card dijital kartvizitin ana kaydıdır.
type Card struct {
	BaseModel
	LinkID         uint  `gorm:"uniqueIndex;not null" json:"link_id"`
	CreatorUserID  uint  `gorm:"index;not null" json:"creator_user_id"`
	OrganizationID *uint `gorm:"index" json:"organization_id,omitempty"` // Opsiyonel
	IsEnabled      bool  `gorm:"default:true;index" json:"is_enabled"`   // Kartvizit aktif mi?

	// GORM İlişkileri
	Link     Link          `gorm:"foreignKey:LinkID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"link"`
	Detail   CardDetail    `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"detail"`
	Contacts []CardContact `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"contacts"`
}

// DisplayName ön ek ve son ek dahil tam adı döndürür.
func (c Card) DisplayName() string {
	return c.Detail.FullName()
}
