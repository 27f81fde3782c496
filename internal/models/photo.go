package models

import "time"

// Photo tracks an uploaded image in object storage. ListingID stays nil
// until the photo is referenced by a listing; unattached photos are garbage
// collected after a grace period.
type Photo struct {
	ID        string
	UserID    string
	ListingID *string
	ObjectKey string
	Format    string
	SizeBytes int64
	CreatedAt time.Time
}
