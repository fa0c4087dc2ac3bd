package domain

import "time"

// Token is an issued bearer token. ID is the token's jti.
type Token struct {
	ID        string
	Value     string
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiresIn returns the remaining lifetime at now, never negative.
func (t Token) ExpiresIn(now time.Time) time.Duration {
	if d := t.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
