package models

import "time"

// Booking reserves a listing for a date range. Price is computed server-side
// from the listing's nightly rate when the booking is created.
type Booking struct {
	ID        string
	ListingID string
	UserID    string
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	Name      string
	Phone     string
	Price     int64
	CreatedAt time.Time

	// Listing is populated on reads that join the listing row.
	Listing *Listing
}
