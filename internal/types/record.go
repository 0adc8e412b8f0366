package types

import (
	"strconv"
	"time"
)

// Record is a single normalized entry of the moderation log.
// Values are never modified after normalization.
type Record struct {
	ID          int64      `json:"id"`          // Unique within its kind only
	Kind        Kind       `json:"kind"`        // Injected by the normalizer
	Player      string     `json:"player"`      // Display name exactly as supplied
	Reason      string     `json:"reason"`      // Free text, may be empty
	Issuer      *string    `json:"issuer"`      // Nil when the payload had no issuer
	CreatedAt   time.Time  `json:"createdAt"`   // Zero when missing or unparseable
	ExpiresAt   *time.Time `json:"expiresAt"`   // Nil for permanent punishments and kicks
	Duration    *string    `json:"duration"`    // Original duration label, display only
	HasDuration bool       `json:"hasDuration"` // Whether the payload carried a duration key
	ImageURL    string     `json:"imageUrl"`    // Evidence reference, absolute or API-relative
}

// Key returns an identifier that is unique across all kinds.
func (r *Record) Key() string {
	return string(r.Kind) + "-" + strconv.FormatInt(r.ID, 10)
}

// IsPermanent reports whether the record has no expiry instant.
func (r *Record) IsPermanent() bool {
	return r.ExpiresAt == nil
}
