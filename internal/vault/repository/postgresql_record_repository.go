package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
)

const postgresRecordSelect = `SELECT id, owner_id, title, encrypted_secret, url, account_username, created_at, expires_at
			  FROM credential_records`

// PostgreSQLRecordRepository implements credential record persistence for PostgreSQL.
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecordRepository creates a new PostgreSQLRecordRepository.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{db: db}
}

// Create inserts a new record.
func (p *PostgreSQLRecordRepository) Create(ctx context.Context, record *vaultDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credential_records
			  (id, owner_id, title, encrypted_secret, url, account_username, created_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.OwnerID,
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
func (p *PostgreSQLRecordRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*vaultDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresRecordSelect + ` WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credential records")
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*vaultDomain.Record
	for rows.Next() {
		record, err := scanPostgresRecord(rows)
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
func (p *PostgreSQLRecordRepository) GetByID(
	ctx context.Context,
	ownerID, recordID uuid.UUID,
) (*vaultDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresRecordSelect + ` WHERE id = $1 AND owner_id = $2`

	record, err := scanPostgresRecord(querier.QueryRowContext(ctx, query, recordID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// Update applies changes in a single statement conditioned on owner_id. No
// affected row means the record is missing or foreign.
func (p *PostgreSQLRecordRepository) Update(
	ctx context.Context,
	ownerID, recordID uuid.UUID,
	changes vaultDomain.RecordChanges,
) error {
	querier := database.GetTx(ctx, p.db)

	set, args := buildSetClause(changes, func(position int) string {
		return fmt.Sprintf("$%d", position)
	})
	if set == "" {
		_, err := p.GetByID(ctx, ownerID, recordID)
		return err
	}

	query := fmt.Sprintf(
		`UPDATE credential_records SET %s WHERE id = $%d AND owner_id = $%d`,
		set, len(args)+1, len(args)+2,
	)
	args = append(args, recordID, ownerID)

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return vaultDomain.ErrRecordNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgresRecord(row rowScanner) (*vaultDomain.Record, error) {
	var record vaultDomain.Record
	err := row.Scan(
		&record.ID,
		&record.OwnerID,
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

	normalizeTimes(&record)
	return &record, nil
}

func normalizeTimes(record *vaultDomain.Record) {
	record.CreatedAt = record.CreatedAt.UTC()
	if record.ExpiresAt != nil {
		expiresAt := record.ExpiresAt.UTC()
		record.ExpiresAt = &expiresAt
	}
}
