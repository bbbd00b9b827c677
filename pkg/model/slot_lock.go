package model

import "time"

// SlotLock is an advisory lock document serializing booking writes for one
// business+date. Uniqueness of _id provides mutual exclusion; ExpiresAt is
// backed by a TTL index so crashed holders cannot wedge a calendar day.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
