package model

import "time"

// SlotLock is an advisory lock held while a reservation for a slot is being
// created. The unique _id closes the read-then-write window of the conflict
// check; ExpiresAt lets a TTL index reap locks from crashed writers.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
