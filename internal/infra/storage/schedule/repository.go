package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/pkg/dbmetrics"
	"github.com/hubtracker/scheduling-service/pkg/psqlbuilder"
)

// uniqueViolation - код ошибки Postgres при нарушении уникальности
const uniqueViolation = "23505"

// Repository репозиторий календарной политики: рабочие часы,
// заблокированные даты и singleton-политика планирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарной политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Operating hours

// GetOperatingHours получает рабочие часы для дня недели (0=Monday..6=Sunday).
// Отсутствие записи означает выходной день - возвращается ErrHoursNotFound.
func (r *Repository) GetOperatingHours(ctx context.Context, dayOfWeek int) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "day_of_week", "start_time", "end_time", "created_at", "updated_at",
	).
		From("operating_hours").
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.OperatingHours
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.ID,
		&hours.DayOfWeek,
		&hours.StartTime,
		&hours.EndTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - scan hours: %w", ErrScanRow, err)
	}

	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return &hours, nil
}

// ListOperatingHours получает все записи рабочих часов, по дням недели
func (r *Repository) ListOperatingHours(ctx context.Context) ([]*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "day_of_week", "start_time", "end_time", "created_at", "updated_at",
	).
		From("operating_hours").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatingHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.OperatingHours, 0)
	for rows.Next() {
		var hours domain.OperatingHours
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&hours.ID,
			&hours.DayOfWeek,
			&hours.StartTime,
			&hours.EndTime,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListOperatingHours - scan row: %w", ErrScanRow, err)
		}

		hours.CreatedAt = createdAt.Time
		hours.UpdatedAt = updatedAt.Time
		result = append(result, &hours)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOperatingHours - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// UpsertOperatingHours создает или обновляет рабочие часы дня недели.
// Уникальность по day_of_week гарантирует не больше одной записи на день.
func (r *Repository) UpsertOperatingHours(ctx context.Context, hours *domain.OperatingHours) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("operating_hours").
		Columns("day_of_week", "start_time", "end_time").
		Values(hours.DayOfWeek, hours.StartTime, hours.EndTime).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE
			SET start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOperatingHours - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&hours.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOperatingHours - execute upsert: %w", ErrExecQuery, err)
	}

	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return hours, nil
}

// DeleteOperatingHours удаляет рабочие часы дня недели (день становится выходным)
func (r *Repository) DeleteOperatingHours(ctx context.Context, dayOfWeek int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("operating_hours").
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOperatingHours - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOperatingHours - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOperatingHours - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoursNotFound
	}

	return nil
}

// Blocked dates

// ListBlockedDates получает заблокированные даты: все ежегодные плюс
// разовые начиная с from
func (r *Repository) ListBlockedDates(ctx context.Context, from time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "blocked_date", "reason", "is_annual_recurring", "created_at", "updated_at",
	).
		From("blocked_dates").
		Where(squirrel.Or{
			squirrel.Eq{"is_annual_recurring": true},
			squirrel.GtOrEq{"blocked_date": from},
		}).
		OrderBy("blocked_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var blocked domain.BlockedDate
		var createdAt, updatedAt sql.NullTime
		var reason string

		if err := rows.Scan(
			&blocked.ID,
			&blocked.Date,
			&reason,
			&blocked.IsAnnualRecurring,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %w", ErrScanRow, err)
		}

		blocked.Reason = textOrNil(reason)
		blocked.CreatedAt = createdAt.Time
		blocked.UpdatedAt = updatedAt.Time
		result = append(result, &blocked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// CreateBlockedDate блокирует календарную дату.
// Повторная блокировка той же даты возвращает ErrDuplicateDate.
func (r *Repository) CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("blocked_date", "reason", "is_annual_recurring").
		Values(blocked.Date, textOrEmpty(blocked.Reason), blocked.IsAnnualRecurring).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&blocked.ID, &createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateDate
		}
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %w", ErrExecQuery, err)
	}

	blocked.CreatedAt = createdAt.Time
	blocked.UpdatedAt = updatedAt.Time

	return blocked, nil
}

// DeleteBlockedDate снимает блокировку даты
func (r *Repository) DeleteBlockedDate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

// Scheduling policy

// GetPolicy получает singleton-политику планирования.
// При первом обращении создает строку с дефолтными значениями.
func (r *Repository) GetPolicy(ctx context.Context) (*domain.SchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	defaults := domain.DefaultSchedulingPolicy()

	insertQuery, insertArgs, err := psqlbuilder.Insert("scheduling_policy").
		Columns("id", "max_booking_duration_hours", "min_booking_notice_hours", "booking_advance_limit_days").
		Values(
			domain.SchedulingPolicyID,
			defaults.MaxBookingDurationHours,
			defaults.MinBookingNoticeHours,
			defaults.BookingAdvanceLimitDays,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - ensure defaults: %w", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"max_booking_duration_hours",
		"min_booking_notice_hours",
		"booking_advance_limit_days",
		"created_at",
		"updated_at",
	).
		From("scheduling_policy").
		Where(squirrel.Eq{"id": domain.SchedulingPolicyID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.SchedulingPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.MaxBookingDurationHours,
		&policy.MinBookingNoticeHours,
		&policy.BookingAdvanceLimitDays,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - scan policy: %w", ErrScanRow, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// UpdatePolicy обновляет singleton-политику планирования
func (r *Repository) UpdatePolicy(ctx context.Context, policy *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Строка могла еще не существовать - выполняем upsert по фиксированному id
	query, args, err := psqlbuilder.Insert("scheduling_policy").
		Columns("id", "max_booking_duration_hours", "min_booking_notice_hours", "booking_advance_limit_days").
		Values(
			domain.SchedulingPolicyID,
			policy.MaxBookingDurationHours,
			policy.MinBookingNoticeHours,
			policy.BookingAdvanceLimitDays,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET max_booking_duration_hours = EXCLUDED.max_booking_duration_hours,
			    min_booking_notice_hours = EXCLUDED.min_booking_notice_hours,
			    booking_advance_limit_days = EXCLUDED.booking_advance_limit_days,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePolicy - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&policy.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePolicy - execute upsert: %w", ErrExecQuery, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}

// Колонка reason объявлена NOT NULL DEFAULT '': отсутствующая причина
// хранится как пустая строка, а не как NULL.
func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// textOrNil выполняет обратное преобразование при чтении:
// пустая строка в колонке означает, что причина не указывалась.
func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
