package editions

import "time"

// ---------- requests

type CreateEditionRequest struct {
	EditionNumber string  `json:"edition_number"`
	Status        string  `json:"status"`
	LocationID    *string `json:"location_id"`
	Condition     string  `json:"condition"`
	StorageDetail string  `json:"storage_detail"`
}

type UpdateEditionRequest struct {
	EditionNumber *string  `json:"edition_number"`
	Status        *string  `json:"status"`
	LocationID    *string  `json:"location_id"`
	SalePrice     *float64 `json:"sale_price"`
	SaleCurrency  *string  `json:"sale_currency"`
	Buyer         *string  `json:"buyer"`
	SaleDate      *string  `json:"sale_date"` // YYYY-MM-DD
	Condition     *string  `json:"condition"`
	StorageDetail *string  `json:"storage_detail"`

	ConsignmentStart *string `json:"consignment_start"`
	ConsignmentEnd   *string `json:"consignment_end"`
	LoanStart        *string `json:"loan_start"`
	LoanEnd          *string `json:"loan_end"`

	Note string `json:"note"`
}

func parseDay(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
