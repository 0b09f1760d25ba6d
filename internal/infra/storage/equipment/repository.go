package equipment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/pkg/dbmetrics"
	"github.com/hubtracker/scheduling-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var equipmentColumns = []string{
	"id", "name", "description", "manual_url", "is_schedulable", "created_at", "updated_at",
}

// Repository репозиторий справочника оборудования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оборудования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает оборудование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(equipmentColumns...).
		From("equipment").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var eq domain.Equipment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&eq.ID,
		&eq.Name,
		&eq.Description,
		&eq.ManualURL,
		&eq.IsSchedulable,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan equipment: %w", ErrScanRow, err)
	}

	eq.CreatedAt = createdAt.Time
	eq.UpdatedAt = updatedAt.Time

	return &eq, nil
}

// List получает оборудование по имени.
// При schedulableOnly=true возвращает только участвующее в бронировании.
func (r *Repository) List(ctx context.Context, schedulableOnly bool) ([]*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(equipmentColumns...).
		From("equipment").
		OrderBy("name ASC")

	if schedulableOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_schedulable": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Equipment, 0)
	for rows.Next() {
		var eq domain.Equipment
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&eq.ID,
			&eq.Name,
			&eq.Description,
			&eq.ManualURL,
			&eq.IsSchedulable,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}

		eq.CreatedAt = createdAt.Time
		eq.UpdatedAt = updatedAt.Time
		result = append(result, &eq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Create добавляет оборудование в справочник
func (r *Repository) Create(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("equipment").
		Columns("name", "description", "manual_url", "is_schedulable").
		Values(eq.Name, eq.Description, eq.ManualURL, eq.IsSchedulable).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&eq.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	eq.CreatedAt = createdAt.Time
	eq.UpdatedAt = updatedAt.Time

	return eq, nil
}
