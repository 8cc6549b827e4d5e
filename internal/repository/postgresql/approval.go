package postgresql

import (
	"context"
	"fmt"

	"github.com/yahya12213/SiteManagement-sub010/internal/domain/approval"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

type chainRepositoryImpl struct {
	db *database.DB
}

func NewChainRepository(db *database.DB) approval.ChainRepository {
	return &chainRepositoryImpl{db: db}
}

// GetChain implements approval.ChainRepository.
func (c *chainRepositoryImpl) GetChain(ctx context.Context, employeeID string) (approval.Chain, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT ac.rank, ac.manager_id, m.full_name
		FROM approval_chains ac
		JOIN employees m ON m.id = ac.manager_id
		WHERE ac.employee_id = $1
		ORDER BY ac.rank
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get approval chain for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var chain approval.Chain
	for rows.Next() {
		var e approval.Entry
		if err := rows.Scan(&e.Rank, &e.ManagerID, &e.ManagerName); err != nil {
			return nil, err
		}
		chain = append(chain, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return chain, nil
}

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) approval.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

// Append implements approval.RecordRepository.
func (r *recordRepositoryImpl) Append(ctx context.Context, rec approval.Record) (approval.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_records (id, request_kind, request_id, rank, approver_id, action, comment, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, request_kind, request_id, rank, approver_id, action, comment, decided_at
	`

	var saved approval.Record
	err := q.QueryRow(ctx, query,
		rec.ID, rec.RequestKind, rec.RequestID, rec.Rank,
		rec.ApproverID, rec.Action, rec.Comment, rec.DecidedAt,
	).Scan(
		&saved.ID, &saved.RequestKind, &saved.RequestID, &saved.Rank,
		&saved.ApproverID, &saved.Action, &saved.Comment, &saved.DecidedAt,
	)
	if err != nil {
		return approval.Record{}, fmt.Errorf("failed to append approval record: %w", err)
	}

	return saved, nil
}

// ListByRequest implements approval.RecordRepository.
func (r *recordRepositoryImpl) ListByRequest(ctx context.Context, kind approval.RequestKind, requestID string) ([]approval.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, request_kind, request_id, rank, approver_id, action, comment, decided_at
		FROM approval_records
		WHERE request_kind = $1 AND request_id = $2
		ORDER BY decided_at
	`

	rows, err := q.Query(ctx, query, kind, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval records: %w", err)
	}
	defer rows.Close()

	var records []approval.Record
	for rows.Next() {
		var rec approval.Record
		err := rows.Scan(
			&rec.ID, &rec.RequestKind, &rec.RequestID, &rec.Rank,
			&rec.ApproverID, &rec.Action, &rec.Comment, &rec.DecidedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
