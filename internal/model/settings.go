package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserSettings holds the branding and contact attributes rendered on an
// agent's public share pages. One row per user, created lazily with
// defaults on first read.
type UserSettings struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`

	CompanyName    string `json:"company_name" gorm:"not null;default:Imobiliária"`
	LogoURL        string `json:"logo_url"`
	PrimaryColor   string `json:"primary_color" gorm:"default:#1a1a2e"`
	SecondaryColor string `json:"secondary_color" gorm:"default:#e94560"`
	AccentColor    string `json:"accent_color" gorm:"default:#f5a623"`

	AboutTitle string `json:"about_title" gorm:"default:Sobre Nós"`
	AboutText  string `json:"about_text" gorm:"type:text"`

	WhatsappNumber string `json:"whatsapp_number"`
	Email          string `json:"email"`
	Address        string `json:"address"`

	// Flexible key/url map (instagram, facebook, site...) so new networks
	// don't need schema changes.
	SocialLinks datatypes.JSON `json:"social_links"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// DefaultSettings is returned for owners that never saved a settings row.
func DefaultSettings(userID uint) UserSettings {
	return UserSettings{
		UserID:         userID,
		CompanyName:    "Imobiliária",
		PrimaryColor:   "#1a1a2e",
		SecondaryColor: "#e94560",
		AccentColor:    "#f5a623",
		AboutTitle:     "Sobre Nós",
		AboutText:      "Somos uma imobiliária especializada em imóveis de alto padrão.",
	}
}
