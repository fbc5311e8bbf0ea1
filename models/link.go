package models

// LinkKeyLength public link anahtarının sabit uzunluğu.
const LinkKeyLength = 20

// Link benzersiz bir 'Key'i belirli bir hizmete bağlar ve sahibini tutar.
type Link struct {
	BaseModel
	Key           string `gorm:"type:varchar(20);uniqueIndex;not null" json:"key"`
	TypeID        uint   `gorm:"not null;index" json:"type_id"`                 // types.id FK
	TargetID      uint   `gorm:"not null;index:idx_link_target" json:"target_id"` // Hedef ID
	CreatorUserID uint   `gorm:"index;not null" json:"creator_user_id"`         // users.id FK

	// GORM İlişkileri
	Type    Type `gorm:"foreignKey:TypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"type"`
	Creator User `gorm:"foreignKey:CreatorUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}
