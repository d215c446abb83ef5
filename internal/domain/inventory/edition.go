package inventory

import "time"

// Edition statuses (closed set).
const (
	StatusInProduction = "in_production"
	StatusInStudio     = "in_studio"
	StatusAtGallery    = "at_gallery"
	StatusAtMuseum     = "at_museum"
	StatusInTransit    = "in_transit"
	StatusSold         = "sold"
	StatusGifted       = "gifted"
	StatusLost         = "lost"
	StatusDamaged      = "damaged"
)

var EditionStatuses = []string{
	StatusInProduction,
	StatusInStudio,
	StatusAtGallery,
	StatusAtMuseum,
	StatusInTransit,
	StatusSold,
	StatusGifted,
	StatusLost,
	StatusDamaged,
}

func ValidStatus(s string) bool {
	for _, v := range EditionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Edition struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ArtworkID string   `gorm:"type:uuid;not null;index" json:"artwork_id"`
	Artwork   *Artwork `gorm:"constraint:OnDelete:CASCADE;" json:"artwork,omitempty"`

	EditionNumber string `gorm:"column:edition_number" json:"edition_number,omitempty"`
	Status        string `gorm:"not null;default:'in_studio';index" json:"status"`

	LocationID *string   `gorm:"type:uuid;index" json:"location_id,omitempty"`
	Location   *Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location,omitempty"`

	SalePrice    *float64   `gorm:"column:sale_price" json:"sale_price,omitempty"`
	SaleCurrency string     `gorm:"column:sale_currency" json:"sale_currency,omitempty"`
	Buyer        string     `json:"buyer,omitempty"`
	SaleDate     *time.Time `gorm:"column:sale_date" json:"sale_date,omitempty"`

	Condition     string `json:"condition,omitempty"`
	StorageDetail string `gorm:"column:storage_detail" json:"storage_detail,omitempty"`

	// Only meaningful for at_gallery (consignment) / at_museum (loan).
	// Not enforced at the schema level; the confirmation card decides
	// which pair to present.
	ConsignmentStart *time.Time `gorm:"column:consignment_start" json:"consignment_start,omitempty"`
	ConsignmentEnd   *time.Time `gorm:"column:consignment_end" json:"consignment_end,omitempty"`
	LoanStart        *time.Time `gorm:"column:loan_start" json:"loan_start,omitempty"`
	LoanEnd          *time.Time `gorm:"column:loan_end" json:"loan_end,omitempty"`

	History []EditionHistory `gorm:"foreignKey:EditionID;constraint:OnDelete:CASCADE;" json:"history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
