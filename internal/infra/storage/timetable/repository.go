package timetable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	"github.com/salonbw/SBW-SchedulingService/pkg/dbmetrics"
	"github.com/salonbw/SBW-SchedulingService/pkg/psqlbuilder"
)

// Код нарушения уникального ограничения Postgres
const pgUniqueViolation = "23505"

// Repository репозиторий графиков, слотов и исключений
// Определения графиков принадлежат управлению персоналом; движок планирования
// читает их при резолве рабочих окон и ведет workflow одобрения исключений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория графиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveForDate возвращает активный график сотрудника, действующий на дату,
// вместе со слотами недельного шаблона
// Нет действующего графика — ErrTimetableNotFound (доступность закрывается, не открывается)
func (r *Repository) GetActiveForDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Timetable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"employee_id",
		"name",
		"valid_from",
		"valid_to",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("timetables").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"valid_from": date}).
		Where(squirrel.Or{
			squirrel.Eq{"valid_to": nil},
			squirrel.GtOrEq{"valid_to": date},
		}).
		OrderBy("valid_from DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDate - build select query: %v", ErrBuildQuery, err)
	}

	var tt domain.Timetable
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tt.ID,
		&tt.EmployeeID,
		&tt.Name,
		&tt.ValidFrom,
		&tt.ValidTo,
		&tt.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTimetableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDate - scan timetable: %v", ErrScanRow, err)
	}

	tt.CreatedAt = createdAt.Time
	tt.UpdatedAt = updatedAt.Time

	slots, err := r.getSlots(ctx, tt.ID)
	if err != nil {
		return nil, err
	}
	tt.Slots = slots

	return &tt, nil
}

// getSlots загружает слоты недельного шаблона графика
func (r *Repository) getSlots(ctx context.Context, timetableID int64) ([]domain.TimetableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"timetable_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_break",
		"notes",
	).
		From("timetable_slots").
		Where(squirrel.Eq{"timetable_id": timetableID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.TimetableSlot, 0)
	for rows.Next() {
		var slot domain.TimetableSlot
		if err := rows.Scan(
			&slot.ID,
			&slot.TimetableID,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsBreak,
			&slot.Notes,
		); err != nil {
			return nil, fmt.Errorf("%w: getSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

var exceptionColumns = []string{
	"id",
	"timetable_id",
	"date",
	"type",
	"title",
	"reason",
	"custom_start_time",
	"custom_end_time",
	"is_all_day",
	"is_pending",
	"created_by_id",
	"approved_by_id",
	"approved_at",
	"created_at",
}

// GetExceptionForDate возвращает исключение графика на дату (если есть)
// Возвращает исключение в любом статусе — одобрено оно или нет,
// решает резолвер по IsApproved
func (r *Repository) GetExceptionForDate(ctx context.Context, timetableID int64, date time.Time) (*domain.TimetableException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("timetable_exceptions").
		Where(squirrel.Eq{"timetable_id": timetableID}).
		Where(squirrel.Eq{"date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionForDate - build select query: %v", ErrBuildQuery, err)
	}

	exc, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionForDate - scan exception: %v", ErrScanRow, err)
	}

	return exc, nil
}

// GetExceptionByID возвращает исключение по ID
func (r *Repository) GetExceptionByID(ctx context.Context, id int64) (*domain.TimetableException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("timetable_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByID - build select query: %v", ErrBuildQuery, err)
	}

	exc, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByID - scan exception: %v", ErrScanRow, err)
	}

	return exc, nil
}

// CreateException создает исключение на дату
// Схема закрепляет уникальность (timetable_id, date): второе исключение
// на ту же дату отклоняется с ErrExceptionExists
func (r *Repository) CreateException(ctx context.Context, exc *domain.TimetableException) (*domain.TimetableException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("timetable_exceptions").
		Columns(
			"timetable_id",
			"date",
			"type",
			"title",
			"reason",
			"custom_start_time",
			"custom_end_time",
			"is_all_day",
			"is_pending",
			"created_by_id",
		).
		Values(
			exc.TimetableID,
			domain.DateOnly(exc.Date),
			exc.Type,
			exc.Title,
			exc.Reason,
			exc.CustomStartTime,
			exc.CustomEndTime,
			exc.IsAllDay,
			exc.IsPending,
			exc.CreatedByID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrExceptionExists
		}
		return nil, fmt.Errorf("%w: CreateException - execute insert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time

	return exc, nil
}

// ApproveException одобряет исключение: снимает is_pending
// и фиксирует кто и когда одобрил
func (r *Repository) ApproveException(ctx context.Context, id int64, approverID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("timetable_exceptions").
		Set("is_pending", false).
		Set("approved_by_id", approverID).
		Set("approved_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ApproveException - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ApproveException - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ApproveException - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanException(row rowScanner) (*domain.TimetableException, error) {
	var exc domain.TimetableException
	var createdAt sql.NullTime

	err := row.Scan(
		&exc.ID,
		&exc.TimetableID,
		&exc.Date,
		&exc.Type,
		&exc.Title,
		&exc.Reason,
		&exc.CustomStartTime,
		&exc.CustomEndTime,
		&exc.IsAllDay,
		&exc.IsPending,
		&exc.CreatedByID,
		&exc.ApprovedByID,
		&exc.ApprovedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	exc.CreatedAt = createdAt.Time

	return &exc, nil
}
