// Package repository provides credential record persistence for PostgreSQL and MySQL.
package repository

import (
	"fmt"
	"strings"

	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
)

// recordColumn is one updatable column of credential_records.
type recordColumn struct {
	name  string
	value func(c vaultDomain.RecordChanges) (any, bool)
}

// recordColumns lists, in a fixed order, every column an update may touch.
// SET clauses are only ever built from these names.
var recordColumns = []recordColumn{
	{name: "title", value: func(c vaultDomain.RecordChanges) (any, bool) {
		if c.Title == nil {
			return nil, false
		}
		return *c.Title, true
	}},
	{name: "encrypted_secret", value: func(c vaultDomain.RecordChanges) (any, bool) {
		return c.EncryptedSecret, c.EncryptedSecret != nil
	}},
	{name: "url", value: func(c vaultDomain.RecordChanges) (any, bool) {
		if c.URL == nil {
			return nil, false
		}
		return *c.URL, true
	}},
	{name: "account_username", value: func(c vaultDomain.RecordChanges) (any, bool) {
		if c.AccountUsername == nil {
			return nil, false
		}
		return *c.AccountUsername, true
	}},
	{name: "expires_at", value: func(c vaultDomain.RecordChanges) (any, bool) {
		if c.ExpiresAt == nil {
			return nil, c.SetExpiresAt
		}
		return *c.ExpiresAt, c.SetExpiresAt
	}},
}

// buildSetClause returns "col = <placeholder>, ..." for the present slots and
// their values. placeholder receives the 1-based argument position.
func buildSetClause(changes vaultDomain.RecordChanges, placeholder func(position int) string) (string, []any) {
	var (
		sets []string
		args []any
	)
	for _, column := range recordColumns {
		value, ok := column.value(changes)
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = %s", column.name, placeholder(len(args))))
	}
	return strings.Join(sets, ", "), args
}
