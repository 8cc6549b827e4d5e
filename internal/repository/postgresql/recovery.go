package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/recovery"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

type declarationRepositoryImpl struct {
	db *database.DB
}

func NewDeclarationRepository(db *database.DB) recovery.DeclarationRepository {
	return &declarationRepositoryImpl{db: db}
}

// FindForEmployee implements recovery.DeclarationRepository. Scope matching
// joins the employee row: an organization-wide declaration always applies,
// otherwise the declaration's scope id must equal the employee's
// department, segment or centre. The narrowest matching scope wins when
// several declarations share the date.
func (d *declarationRepositoryImpl) FindForEmployee(ctx context.Context, employeeID string, date time.Time) (*recovery.Declaration, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT rd.id, rd.date, rd.is_day_off, rd.scope, rd.scope_id, rd.active, rd.created_at, rd.updated_at
		FROM recovery_declarations rd
		JOIN employees e ON e.id = $1
		WHERE rd.date = $2
			AND rd.active = true
			AND (
				rd.scope = 'all'
				OR (rd.scope = 'department' AND rd.scope_id = e.department_id)
				OR (rd.scope = 'segment' AND rd.scope_id = e.segment_id)
				OR (rd.scope = 'centre' AND rd.scope_id = e.centre_id)
			)
		ORDER BY CASE rd.scope
			WHEN 'centre' THEN 0
			WHEN 'segment' THEN 1
			WHEN 'department' THEN 2
			ELSE 3
		END
		LIMIT 1
	`

	var dec recovery.Declaration
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&dec.ID, &dec.Date, &dec.IsDayOff, &dec.Scope, &dec.ScopeID,
		&dec.Active, &dec.CreatedAt, &dec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find recovery declaration for employee %s: %w", employeeID, err)
	}

	return &dec, nil
}
