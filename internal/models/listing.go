package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Address disclosure modes. Private and exclude listings are dropped from map
// results; the detail view shows a redacted address instead.
const (
	DisclosurePublic  = "public"
	DisclosurePrivate = "private"
	DisclosureExclude = "exclude"
)

// Listing is a property advertisement. Only one of the area columns and one
// of the price columns is typically populated per row, depending on the
// property and transaction type.
type Listing struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"default:now()" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Address           string `gorm:"not null" json:"address"`
	AddressDisclosure string `gorm:"type:varchar(20);default:'public'" json:"addressDisclosure"`
	Visible           bool   `gorm:"default:true" json:"visible"`

	Description string         `json:"description"`
	Themes      datatypes.JSON `gorm:"type:jsonb" json:"themes"`
	Popularity  *string        `gorm:"type:varchar(30)" json:"popularity"`
	Floor       *int           `json:"floor"`
	Views       *int64         `json:"views"`

	// Areas, m². Pyeong input is converted before it reaches the store.
	ActualArea      *float64 `json:"actualArea"`
	SupplyArea      *float64 `json:"supplyArea"`
	LandArea        *float64 `json:"landArea"`
	BuildingArea    *float64 `json:"buildingArea"`
	TotalArea       *float64 `json:"totalArea"`
	NetLeasableArea *float64 `json:"netLeasableArea"`

	// Prices, won. The transaction type selects the active column.
	SalePrice    *int64 `json:"salePrice"`    // 매매
	LumpSumPrice *int64 `json:"lumpSumPrice"` // 전세
	RentalPrice  *int64 `json:"rentalPrice"`  // 월세
	Deposit      *int64 `json:"deposit"`

	PropertyTypeID    *uint            `gorm:"index" json:"-"`
	PropertyType      *PropertyType    `gorm:"foreignKey:PropertyTypeID" json:"-"`
	TransactionTypeID *uint            `gorm:"index" json:"-"`
	TransactionType   *TransactionType `gorm:"foreignKey:TransactionTypeID" json:"-"`
	RoomOptionID      *uint            `gorm:"index" json:"-"`
	RoomOption        *RoomOption      `gorm:"foreignKey:RoomOptionID" json:"-"`
	BathroomOptionID  *uint            `gorm:"index" json:"-"`
	BathroomOption    *BathroomOption  `gorm:"foreignKey:BathroomOptionID" json:"-"`
}

// RedactedAddress trims the address down to its district part for listings
// whose full address must not be disclosed.
func (l *Listing) RedactedAddress() string {
	parts := strings.Fields(l.Address)
	if len(parts) <= 2 {
		return l.Address
	}
	return strings.Join(parts[:2], " ") + " ***"
}

// ThemeList decodes the JSON theme array, nil-safe.
func (l *Listing) ThemeList() []string {
	if len(l.Themes) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(l.Themes, &tags); err != nil {
		return nil
	}
	return tags
}
