package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property Status — business state, independent of the Active flag.
type PropertyStatus string

const (
	PropertyStatusDisponivel PropertyStatus = "disponivel"
	PropertyStatusReservado  PropertyStatus = "reservado"
	PropertyStatusVendido    PropertyStatus = "vendido"
	PropertyStatusAlugado    PropertyStatus = "alugado"
)

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyStatusDisponivel, PropertyStatusReservado, PropertyStatusVendido, PropertyStatusAlugado:
		return true
	}
	return false
}

// Property Types
type PropertyType string

const (
	PropertyTypeApartamento PropertyType = "apartamento"
	PropertyTypeCasa        PropertyType = "casa"
	PropertyTypeCobertura   PropertyType = "cobertura"
	PropertyTypeTerreno     PropertyType = "terreno"
	PropertyTypeComercial   PropertyType = "comercial"
)

type Property struct {
	gorm.Model
	Title string `json:"title" gorm:"not null"`

	// ShareCode is the public identifier used in share links so internal
	// ids never leak. Generated once, never updated.
	ShareCode string `json:"share_code" gorm:"uniqueIndex;not null"`

	UserID uint `json:"user_id" gorm:"index"`

	// Active is the soft-delete flag. DeletedAt from gorm.Model stays
	// unused here: inactive rows must remain readable in the master-only
	// inactive view.
	Active bool           `json:"active" gorm:"default:true;not null"`
	Status PropertyStatus `json:"status" gorm:"not null;default:disponivel"`

	// Location fields
	Address      string `json:"address" gorm:"not null"`
	Neighborhood string `json:"neighborhood" gorm:"not null"`
	City         string `json:"city" gorm:"not null"`
	State        string `json:"state" gorm:"not null;default:RJ"`

	// Features fields
	PropertyType    PropertyType `json:"property_type" gorm:"not null;index"`
	TotalArea       float64      `json:"total_area"`
	Bedrooms        int          `json:"bedrooms"`
	Suites          int          `json:"suites"`
	Bathrooms       int          `json:"bathrooms"`
	ParkingSpaces   int          `json:"parking_spaces"`
	Characteristics string       `json:"characteristics" gorm:"type:text"`

	Price    float64  `json:"price" gorm:"not null"`
	CondoFee *float64 `json:"condo_fee"`
	IPTU     *float64 `json:"iptu"`

	Featured bool `json:"featured" gorm:"default:false"`

	User   User    `json:"-" gorm:"foreignKey:UserID"`
	Photos []Photo `json:"photos" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

type Photo struct {
	gorm.Model
	PropertyID uint   `json:"property_id" gorm:"index;not null"`
	URL        string `json:"url" gorm:"not null"`
	Caption    string `json:"caption"`

	// Order ranks photos within one property; lowest value is the cover.
	// Gaps after deletions are fine, only the relative ranking matters.
	// Stored as sort_order because "order" is reserved in SQL.
	Order int `json:"order" gorm:"column:sort_order;not null;default:0;index"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

// BeforeCreate assigns the public share code when the property is first saved
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ShareCode == "" {
		p.ShareCode = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PropertyStatusDisponivel
	}
	return nil
}
