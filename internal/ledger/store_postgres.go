package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"docseal/internal/canonical"
	"docseal/pkg/domain"
)

// PostgresStore reads sealed records from a PostgreSQL mirror of the external
// ledger. The mirror exists for the borrower-identity query, which the remote
// ledger API cannot serve efficiently; ingest is owned by a separate sync
// process writing through SaveRecord.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed sealed record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const sealedRecordColumns = `artifact_id, loan_id, entity_type_id, content_hash, document, ledger_ref, borrower_email, borrower_id_last4, created_at`

func (s *PostgresStore) LookupByHash(ctx context.Context, hash domain.Digest) (*SealedRecord, error) {
	query := `
		SELECT ` + sealedRecordColumns + `
		FROM sealed_records
		WHERE content_hash = $1
	`
	record, err := scanSealedRecord(s.db.QueryRowContext(ctx, query, hash.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup by hash: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) LookupByIdentifier(ctx context.Context, identifier string) (*SealedRecord, error) {
	query := `
		SELECT ` + sealedRecordColumns + `
		FROM sealed_records
		WHERE artifact_id = $1 OR loan_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	record, err := scanSealedRecord(s.db.QueryRowContext(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup by identifier: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) LookupByBorrowerIdentity(ctx context.Context, identity BorrowerIdentity) ([]SealedRecord, error) {
	if identity.IsZero() {
		return nil, nil
	}
	query := `
		SELECT ` + sealedRecordColumns + `
		FROM sealed_records
		WHERE (borrower_email <> '' AND borrower_email = $1)
		   OR (borrower_id_last4 <> '' AND borrower_id_last4 = $2)
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, identity.Email, identity.IDLast4)
	if err != nil {
		return nil, fmt.Errorf("lookup by borrower identity: %w", err)
	}
	defer rows.Close()

	var records []SealedRecord
	for rows.Next() {
		record, err := scanSealedRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan borrower identity match: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate borrower identity matches: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) FetchLedgerReference(ctx context.Context, artifactID domain.ArtifactID) (string, error) {
	var ref sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT ledger_ref FROM sealed_records WHERE artifact_id = $1`,
		artifactID.String(),
	).Scan(&ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("fetch ledger reference: %w", err)
	}
	return ref.String, nil
}

// SaveRecord upserts a mirrored record. Used only by the mirror's ingest
// path and by integration tests, never by the verification engine.
func (s *PostgresStore) SaveRecord(ctx context.Context, record SealedRecord) error {
	var document []byte
	if record.Document != nil {
		var err error
		document, err = json.Marshal(record.Document)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
	}
	query := `
		INSERT INTO sealed_records (` + sealedRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (artifact_id) DO UPDATE SET
			loan_id = EXCLUDED.loan_id,
			entity_type_id = EXCLUDED.entity_type_id,
			content_hash = EXCLUDED.content_hash,
			document = EXCLUDED.document,
			ledger_ref = EXCLUDED.ledger_ref,
			borrower_email = EXCLUDED.borrower_email,
			borrower_id_last4 = EXCLUDED.borrower_id_last4,
			created_at = EXCLUDED.created_at
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ArtifactID.String(),
		record.LoanID.String(),
		record.EntityTypeID,
		record.ContentHash.String(),
		document,
		record.LedgerRef,
		record.Borrower.Email,
		record.Borrower.IDLast4,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save sealed record: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSealedRecord(row rowScanner) (*SealedRecord, error) {
	var (
		record   SealedRecord
		loanID   string
		document []byte
	)
	err := row.Scan(
		&record.ArtifactID,
		&loanID,
		&record.EntityTypeID,
		&record.ContentHash,
		&document,
		&record.LedgerRef,
		&record.Borrower.Email,
		&record.Borrower.IDLast4,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.LoanID = domain.LoanID(loanID)
	if len(document) > 0 {
		var doc canonical.Document
		if err := json.Unmarshal(document, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal mirrored document: %w", err)
		}
		record.Document = doc
	}
	return &record, nil
}
