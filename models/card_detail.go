package models

import "strings"

// CardDetail dijital kartvizitin detaylarını içerir.
type CardDetail struct {
	BaseModel
	CardID uint `gorm:"uniqueIndex;not null" json:"card_id"` // cards.id FK

	// Kişisel Bilgiler
	Prefix     string `gorm:"type:varchar(20)" json:"prefix" form:"prefix"` // Örn: Dr., Av.
	FirstName  string `gorm:"type:varchar(100);not null" json:"first_name" form:"first_name"`
	LastName   string `gorm:"type:varchar(100);not null" json:"last_name" form:"last_name"`
	Suffix     string `gorm:"type:varchar(20)" json:"suffix" form:"suffix"`   // Örn: Jr., PhD.
	Title      string `gorm:"type:varchar(100)" json:"title" form:"title"`    // Ünvan
	Company    string `gorm:"type:varchar(150)" json:"company" form:"company"` // Şirket Adı
	Department string `gorm:"type:varchar(100)" json:"department" form:"department"`
	Bio        string `gorm:"type:text" json:"bio" form:"bio"`

	// Birincil İletişim Bilgileri (ikincil olanlar CardContact tablosunda)
	Email       string `gorm:"type:varchar(100);index" json:"email" form:"email"`
	PhoneNumber string `gorm:"type:varchar(30)" json:"phone_number" form:"phone_number"`
	Website     string `gorm:"type:varchar(255)" json:"website" form:"website"`
	Address     string `gorm:"type:text" json:"address" form:"address"`

	// Medya: media store içindeki opak dosya adları
	ProfilePhoto string `gorm:"type:varchar(255)" json:"profile_photo" form:"profile_photo"`
	CompanyLogo  string `gorm:"type:varchar(255)" json:"company_logo" form:"company_logo"`
	CoverImage   string `gorm:"type:varchar(255)" json:"cover_image" form:"cover_image"`

	// Tema
	Theme          string `gorm:"type:varchar(50)" json:"theme" form:"theme"`
	PrimaryColor   string `gorm:"type:varchar(7)" json:"primary_color" form:"primary_color"` // #RRGGBB
	SecondaryColor string `gorm:"type:varchar(7)" json:"secondary_color" form:"secondary_color"`

	AllowSaveContact bool `gorm:"default:true" json:"allow_save_contact" form:"allow_save_contact"` // vCard indirme izni
}

// FullName "Dr. Ada Lovelace, PhD" biçiminde adı birleştirir.
func (d CardDetail) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Prefix, d.FirstName, d.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	name := strings.Join(parts, " ")
	if s := strings.TrimSpace(d.Suffix); s != "" {
		name += ", " + s
	}
	return name
}
