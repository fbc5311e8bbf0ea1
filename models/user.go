package models

// UserStatus hesap durumunu belirtir.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusPassive UserStatus = "passive"
)

// User kart sahibi veya sistem yöneticisi.
type User struct {
	BaseModel
	Name       string     `gorm:"type:varchar(150);not null" json:"name"`
	Email      string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	IsSystem   bool       `gorm:"default:false;index" json:"is_system"`
	Status     UserStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	APIKeyHash string     `gorm:"type:varchar(255)" json:"-"` // bcrypt, X-API-Key doğrulaması için
}

// IsActive hesabın kullanılabilir olup olmadığını döndürür.
func (u User) IsActive() bool {
	return u.Status == "" || u.Status == UserStatusActive
}
