package model

import "time"

// ShareToken : публичная ссылка на документ с ограниченным сроком действия
type ShareToken struct {
	Token        string     `db:"token" json:"token"`
	DocumentUUID string     `db:"document_uuid" json:"document_uuid"`
	IssuedAt     time.Time  `db:"issued_at" json:"issued_at"`
	ExpiresAt    time.Time  `db:"expires_at" json:"expires_at"`
	RevokedAt    *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
	URL          string     `db:"-" json:"url,omitempty"`
}

func (t *ShareToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Check : токен действует строго при issuedAt <= now < expiresAt и если не отозван
func (t *ShareToken) Check(now time.Time) error {
	switch {
	case t.Revoked():
		return ErrTokenRevoked
	case now.Before(t.IssuedAt):
		return ErrTokenNotYetValid
	case !now.Before(t.ExpiresAt):
		return ErrTokenExpired
	}
	return nil
}

func (t *ShareToken) Active(now time.Time) bool {
	return t.Check(now) == nil
}
