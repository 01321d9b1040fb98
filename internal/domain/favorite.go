package domain

import "time"

// Favorite is a client bookmark of a companion
type Favorite struct {
	ClientID    int64
	CompanionID int64
	CreatedAt   time.Time
}
