package venue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий справочных данных заведения:
// смены (shifts), ресурсы (resources) и политика бронирования (venue_policies)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заведений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Venue карточка заведения
type Venue struct {
	ID   int64
	Name string
}

// GetVenue проверяет существование заведения и возвращает его карточку
func (r *Repository) GetVenue(ctx context.Context, venueID int64) (*Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("venues").
		Where(squirrel.Eq{"id": venueID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetVenue - build select query: %v", ErrBuildQuery, err)
	}

	var v Venue
	err = executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &v.Name)
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVenue - scan venue: %v", ErrScanRow, err)
	}

	return &v, nil
}

// GetShifts возвращает все смены заведения (включая неактивные)
// Фильтрация по дню недели выполняется в usecase через Shift.AppliesTo
func (r *Repository) GetShifts(ctx context.Context, venueID int64) ([]*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"venue_id",
		"start_time",
		"end_time",
		"weekdays",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("shifts").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetShifts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetShifts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		var shift domain.Shift
		var weekdays pq.Int64Array
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&shift.ID,
			&shift.VenueID,
			&shift.StartTime,
			&shift.EndTime,
			&weekdays,
			&shift.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetShifts - scan row: %v", ErrScanRow, err)
		}

		shift.Weekdays = make([]int, len(weekdays))
		for i, wd := range weekdays {
			shift.Weekdays[i] = int(wd)
		}
		shift.CreatedAt = createdAt.Time
		shift.UpdatedAt = updatedAt.Time

		shifts = append(shifts, &shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetShifts - rows error: %v", ErrScanRow, err)
	}

	return shifts, nil
}

// GetResources возвращает все ресурсы заведения (столы, комнаты)
func (r *Repository) GetResources(ctx context.Context, venueID int64) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"venue_id",
		"name",
		"capacity",
		"combinable",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetResources - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetResources - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		var resource domain.Resource
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&resource.ID,
			&resource.VenueID,
			&resource.Name,
			&resource.Capacity,
			&resource.Combinable,
			&resource.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetResources - scan row: %v", ErrScanRow, err)
		}

		resource.CreatedAt = createdAt.Time
		resource.UpdatedAt = updatedAt.Time

		resources = append(resources, &resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetResources - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// GetPolicy возвращает политику бронирования заведения
// Если политика не настроена, возвращает ErrPolicyNotFound;
// вызывающая сторона подставляет значения по умолчанию
func (r *Repository) GetPolicy(ctx context.Context, venueID int64) (*domain.VenuePolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"venue_id",
		"default_duration_minutes",
		"buffer_minutes",
		"auto_accept",
		"require_assignment",
		"created_at",
		"updated_at",
	).
		From("venue_policies").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.VenuePolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.VenueID,
		&policy.DefaultDurationMinutes,
		&policy.BufferMinutes,
		&policy.AutoAccept,
		&policy.RequireAssignment,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - scan policy: %v", ErrScanRow, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// UpsertPolicy создает или обновляет политику бронирования заведения
func (r *Repository) UpsertPolicy(ctx context.Context, policy *domain.VenuePolicy) (*domain.VenuePolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_policies").
		Columns(
			"venue_id",
			"default_duration_minutes",
			"buffer_minutes",
			"auto_accept",
			"require_assignment",
		).
		Values(
			policy.VenueID,
			policy.DefaultDurationMinutes,
			policy.BufferMinutes,
			policy.AutoAccept,
			policy.RequireAssignment,
		).
		Suffix(`ON CONFLICT (venue_id) DO UPDATE SET
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			auto_accept = EXCLUDED.auto_accept,
			require_assignment = EXCLUDED.require_assignment,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPolicy - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPolicy - execute upsert: %v", ErrExecQuery, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}
