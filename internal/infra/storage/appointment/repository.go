package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	"github.com/salonbw/SBW-SchedulingService/pkg/dbmetrics"
	"github.com/salonbw/SBW-SchedulingService/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"client_id",
	"employee_id",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"notes",
	"internal_note",
	"finalized_at",
	"finalized_by_id",
	"paid_amount",
	"cancelled_at",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с визитами
// Движок планирования не создает визиты — только читает их занятые интервалы,
// переносит время и переводит статусы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория визитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает визит по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: перенос читает визит
	// и коммитит новое время как единое целое
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appt, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetOccupiedIntervals возвращает занятые интервалы сотрудника в диапазоне [from, to)
// Учитываются только визиты в занимающих статусах (scheduled, confirmed, in_progress);
// completed, cancelled и no_show слот не занимают — это история, а не ограничение
//
// excludeAppointmentID позволяет переносу визита X игнорировать собственный
// текущий интервал X, продолжая проверку против всего остального
func (r *Repository) GetOccupiedIntervals(ctx context.Context, employeeID int64, from, to time.Time, excludeAppointmentID *int64) ([]domain.OccupiedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		statuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("id", "start_time", "end_time").
		From("appointments").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"status": statuses}).
		// Полуоткрытое пересечение: start < to AND end > from
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC")

	if excludeAppointmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeAppointmentID})
	}

	// Внутри транзакции переноса блокируем занимающий набор сотрудника:
	// два конкурентных переноса на одно время не пройдут проверку по устаревшим данным
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	occupied := make([]domain.OccupiedInterval, 0)
	for rows.Next() {
		var id int64
		var start, end time.Time
		if err := rows.Scan(&id, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: GetOccupiedIntervals - scan row: %v", ErrScanRow, err)
		}
		occupied = append(occupied, domain.OccupiedInterval{
			TimeInterval: domain.TimeInterval{Start: start, End: end},
			Source:       domain.SourceAppointment,
			SourceID:     id,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedIntervals - rows error: %v", ErrScanRow, err)
	}

	return occupied, nil
}

// UpdateSchedule переносит визит на новое время и (опционально) другого сотрудника
// Вызывается только внутри сериализуемой транзакции после проверки конфликтов
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, start, end time.Time, employeeID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("start_time", start).
		Set("end_time", end).
		Set("employee_id", employeeID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// UpdateStatus обновляет статус визита
// Допустимость перехода проверяет сервисный слой по машине состояний
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel переводит визит в cancelled с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Complete переводит визит в completed с отметкой финализации
func (r *Repository) Complete(ctx context.Context, id int64, finalizedByID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCompleted).
		Set("finalized_at", squirrel.Expr("NOW()")).
		Set("finalized_by_id", finalizedByID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// ListForReminderTrigger возвращает визиты-кандидаты для триггера before_appointment:
// статус в занимающем наборе напоминаний (scheduled, confirmed), визит еще не начался,
// а его начало наступает не позже startBy (т.е. якорь start - offset уже прошел)
func (r *Repository) ListForReminderTrigger(ctx context.Context, now, startBy time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"status": []string{string(domain.StatusScheduled), string(domain.StatusConfirmed)}}).
		Where(squirrel.Gt{"start_time": now}).
		Where(squirrel.LtOrEq{"start_time": startBy}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminderTrigger - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminderTrigger - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListForFollowUpTrigger возвращает визиты-кандидаты для триггера after_completion:
// завершенные визиты, финализированные не позже finalizedBy
// (т.е. якорь finalizedAt + offset уже прошел)
func (r *Repository) ListForFollowUpTrigger(ctx context.Context, finalizedBy time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"status": string(domain.StatusCompleted)}).
		Where(squirrel.NotEq{"finalized_at": nil}).
		Where(squirrel.LtOrEq{"finalized_at": finalizedBy}).
		OrderBy("finalized_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForFollowUpTrigger - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForFollowUpTrigger - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.ClientID,
		&appt.EmployeeID,
		&appt.ServiceID,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.Notes,
		&appt.InternalNote,
		&appt.FinalizedAt,
		&appt.FinalizedByID,
		&appt.PaidAmount,
		&appt.CancelledAt,
		&appt.CancellationReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
