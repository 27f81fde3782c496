package models

import "time"

// Listing is a bookable property. OwnerID is set at creation and never
// changes; Version backs the compare-and-swap update path.
type Listing struct {
	ID          string
	OwnerID     string
	Title       string
	Address     string
	Photos      []string
	Description string
	Perks       []string
	ExtraInfo   string
	CheckIn     string
	CheckOut    string
	MaxGuests   int
	Price       int64
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
