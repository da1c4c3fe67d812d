// Package domain defines credential records and their expiry rules.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/passvault/internal/errors"
	policyDomain "github.com/allisson/passvault/internal/policy/domain"
)

// Record is a stored credential. The secret is only ever held encrypted.
type Record struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Title           string
	EncryptedSecret []byte
	URL             string
	AccountUsername string
	CreatedAt       time.Time
	ExpiresAt       *time.Time
}

// IsExpired reports whether the record has an expiry strictly before now.
func (r *Record) IsExpired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// RecordView is a decrypted record as returned to its owner. When the secret
// cannot be decrypted Secret is empty and Err is set; the rest stays usable.
type RecordView struct {
	ID              uuid.UUID
	Title           string
	Secret          string
	URL             string
	AccountUsername string
	CreatedAt       time.Time
	ExpiresAt       *time.Time
	Expired         bool
	Err             error
}

// AddRecordInput holds the fields of a new record. ExpiresDays is optional.
type AddRecordInput struct {
	Title           string
	Secret          string
	URL             string
	AccountUsername string
	ExpiresDays     *int
}

// AddRecordOutput is the outcome of storing a record.
type AddRecordOutput struct {
	Record   *Record
	Strength policyDomain.Report
}

// RecordPatch carries the fields of an update. Nil slots are left untouched.
type RecordPatch struct {
	Title           *string
	Secret          *string
	URL             *string
	AccountUsername *string
	// ExpiresDays > 0 moves the expiry to now + days; <= 0 removes it.
	ExpiresDays *int
}

// IsEmpty reports whether the patch changes nothing.
func (p RecordPatch) IsEmpty() bool {
	return p.Title == nil && p.Secret == nil && p.URL == nil && p.AccountUsername == nil && p.ExpiresDays == nil
}

// RecordChanges is a patch resolved for storage: the secret is already
// encrypted and the expiry already computed.
type RecordChanges struct {
	Title           *string
	EncryptedSecret []byte
	URL             *string
	AccountUsername *string
	// SetExpiresAt marks ExpiresAt as present; a nil ExpiresAt then clears it.
	SetExpiresAt bool
	ExpiresAt    *time.Time
}

// IsEmpty reports whether no column would change.
func (c RecordChanges) IsEmpty() bool {
	return c.Title == nil && c.EncryptedSecret == nil && c.URL == nil && c.AccountUsername == nil &&
		!c.SetExpiresAt
}

// MaxExpiresDays bounds expires_days so the expiry stays a valid SQL timestamp.
const MaxExpiresDays = 36500

// ExpiresAt returns now plus days for a positive count and nil otherwise.
func ExpiresAt(now time.Time, days int) *time.Time {
	if days <= 0 {
		return nil
	}
	expiresAt := now.AddDate(0, 0, days)
	return &expiresAt
}

// Record errors.
var (
	// ErrRecordNotFound is returned both for a missing record and for one owned
	// by someone else.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "password not found or access denied")
)
