package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
)

const mysqlRecordSelect = `SELECT id, owner_id, title, encrypted_secret, url, account_username, created_at, expires_at
			  FROM credential_records`

// MySQLRecordRepository implements credential record persistence for MySQL,
// storing ids as BINARY(16).
type MySQLRecordRepository struct {
	db *sql.DB
}

// NewMySQLRecordRepository creates a new MySQLRecordRepository.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}

// Create inserts a new record.
func (m *MySQLRecordRepository) Create(ctx context.Context, record *vaultDomain.Record) error {
	querier := database.GetTx(ctx, m.db)

	id, ownerID, err := marshalIDs(record.ID, record.OwnerID)
	if err != nil {
		return err
	}

	query := `INSERT INTO credential_records
			  (id, owner_id, title, encrypted_secret, url, account_username, created_at, expires_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		ownerID,
		record.Title,
		record.EncryptedSecret,
		record.URL,
		record.AccountUsername,
		record.CreatedAt,
		record.ExpiresAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential record")
	}
	return nil
}

// ListByOwner returns every record of ownerID ordered by creation time.
func (m *MySQLRecordRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*vaultDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	owner, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal owner id")
	}

	query := mysqlRecordSelect + ` WHERE owner_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credential records")
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*vaultDomain.Record
	for rows.Next() {
		record, err := scanMySQLRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credential records")
	}
	return records, nil
}

// GetByID returns the record only when it belongs to ownerID.
func (m *MySQLRecordRepository) GetByID(
	ctx context.Context,
	ownerID, recordID uuid.UUID,
) (*vaultDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	id, owner, err := marshalIDs(recordID, ownerID)
	if err != nil {
		return nil, err
	}

	query := mysqlRecordSelect + ` WHERE id = ? AND owner_id = ?`

	record, err := scanMySQLRecord(querier.QueryRowContext(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// Update locks the owned row with SELECT ... FOR UPDATE and then writes the
// changes. MySQL reports only changed rows as affected, so the lock, not the
// affected count, decides whether the record exists. Callers must run it
// inside a transaction.
func (m *MySQLRecordRepository) Update(
	ctx context.Context,
	ownerID, recordID uuid.UUID,
	changes vaultDomain.RecordChanges,
) error {
	querier := database.GetTx(ctx, m.db)

	id, owner, err := marshalIDs(recordID, ownerID)
	if err != nil {
		return err
	}

	var locked []byte
	err = querier.QueryRowContext(ctx,
		`SELECT id FROM credential_records WHERE id = ? AND owner_id = ? FOR UPDATE`,
		id, owner,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vaultDomain.ErrRecordNotFound
		}
		return apperrors.Wrap(err, "failed to lock credential record")
	}

	set, args := buildSetClause(changes, func(int) string { return "?" })
	if set == "" {
		return nil
	}

	args = append(args, id, owner)
	_, err = querier.ExecContext(ctx,
		`UPDATE credential_records SET `+set+` WHERE id = ? AND owner_id = ?`,
		args...,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential record")
	}
	return nil
}

func marshalIDs(recordID, ownerID uuid.UUID) ([]byte, []byte, error) {
	id, err := recordID.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal record id")
	}
	owner, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal owner id")
	}
	return id, owner, nil
}

func scanMySQLRecord(row rowScanner) (*vaultDomain.Record, error) {
	var record vaultDomain.Record
	var id, ownerID []byte

	err := row.Scan(
		&id,
		&ownerID,
		&record.Title,
		&record.EncryptedSecret,
		&record.URL,
		&record.AccountUsername,
		&record.CreatedAt,
		&record.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan credential record")
	}

	if err := record.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record id")
	}
	if err := record.OwnerID.UnmarshalBinary(ownerID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal owner id")
	}

	normalizeTimes(&record)
	return &record, nil
}
