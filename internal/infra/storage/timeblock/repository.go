package timeblock

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

var timeBlockColumns = []string{
	"id",
	"employee_id",
	"type",
	"title",
	"start_time",
	"end_time",
	"all_day",
	"recurrence_frequency",
	"recurrence_interval",
	"recurrence_until",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий блокировок времени
// Хранит шаблон блока как есть; разворачивание повторений в конкретные
// интервалы — задача domain.TimeBlock.Occurrences, не SQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку времени
func (r *Repository) Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var freq *domain.RecurrenceFrequency
	var interval *int
	var until *time.Time
	if block.Recurrence != nil {
		freq = &block.Recurrence.Frequency
		interval = &block.Recurrence.Interval
		until = block.Recurrence.Until
	}

	query, args, err := psqlbuilder.Insert("time_blocks").
		Columns(
			"employee_id",
			"type",
			"title",
			"start_time",
			"end_time",
			"all_day",
			"recurrence_frequency",
			"recurrence_interval",
			"recurrence_until",
			"notes",
		).
		Values(
			block.EmployeeID,
			block.Type,
			block.Title,
			block.StartTime,
			block.EndTime,
			block.AllDay,
			freq,
			interval,
			until,
			block.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&block.CreatedAt,
		&block.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return block, nil
}

// GetByID возвращает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(timeBlockColumns...).
		From("time_blocks").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanTimeBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTimeBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return block, nil
}

// Update обновляет блокировку целиком
func (r *Repository) Update(ctx context.Context, block *domain.TimeBlock) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var freq *domain.RecurrenceFrequency
	var interval *int
	var until *time.Time
	if block.Recurrence != nil {
		freq = &block.Recurrence.Frequency
		interval = &block.Recurrence.Interval
		until = block.Recurrence.Until
	}

	query, args, err := psqlbuilder.Update("time_blocks").
		Set("type", block.Type).
		Set("title", block.Title).
		Set("start_time", block.StartTime).
		Set("end_time", block.EndTime).
		Set("all_day", block.AllDay).
		Set("recurrence_frequency", freq).
		Set("recurrence_interval", interval).
		Set("recurrence_until", until).
		Set("notes", block.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": block.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTimeBlockNotFound
	}

	return nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTimeBlockNotFound
	}

	return nil
}

// ListForEmployeeInRange возвращает блокировки сотрудника, способные
// пересечь диапазон [from, to):
//   - одноразовые, реально пересекающие диапазон
//   - повторяющиеся, стартовавшие до конца диапазона и не истекшие к его началу
//
// Повторяющиеся блоки возвращаются как шаблоны; вхождения в диапазоне
// вычисляет вызывающая сторона через Occurrences
func (r *Repository) ListForEmployeeInRange(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(timeBlockColumns...).
		From("time_blocks").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Or{
			// Одноразовые: полуоткрытое пересечение с [from, to)
			squirrel.And{
				squirrel.Eq{"recurrence_frequency": nil},
				squirrel.Lt{"start_time": to},
				squirrel.Gt{"end_time": from},
			},
			// Повторяющиеся: шаблон мог породить вхождение в диапазоне
			squirrel.And{
				squirrel.NotEq{"recurrence_frequency": nil},
				squirrel.Lt{"start_time": to},
				squirrel.Or{
					squirrel.Eq{"recurrence_until": nil},
					squirrel.GtOrEq{"recurrence_until": from},
				},
			},
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForEmployeeInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForEmployeeInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.TimeBlock, 0)
	for rows.Next() {
		block, err := scanTimeBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForEmployeeInRange - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForEmployeeInRange - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeBlock(row rowScanner) (*domain.TimeBlock, error) {
	var block domain.TimeBlock
	var freq *domain.RecurrenceFrequency
	var interval *int
	var until *time.Time

	err := row.Scan(
		&block.ID,
		&block.EmployeeID,
		&block.Type,
		&block.Title,
		&block.StartTime,
		&block.EndTime,
		&block.AllDay,
		&freq,
		&interval,
		&until,
		&block.Notes,
		&block.CreatedAt,
		&block.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if freq != nil {
		pattern := &domain.RecurrencePattern{
			Frequency: *freq,
			Interval:  1,
			Until:     until,
		}
		if interval != nil {
			pattern.Interval = *interval
		}
		block.Recurrence = pattern
	}

	return &block, nil
}
