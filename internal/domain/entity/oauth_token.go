package entity

import "time"

// TokenRecord is the stored OAuth token pair for the JobAdder integration.
// A single record exists per integration name; it is overwritten on every
// exchange or refresh. ExpiresAt is the real expiry reported by the provider,
// with no safety margin baked in - the margin is applied at read time.
type TokenRecord struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
