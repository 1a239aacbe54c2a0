package messagerule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	"github.com/salonbw/SBW-SchedulingService/pkg/dbmetrics"
	"github.com/salonbw/SBW-SchedulingService/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"name",
	"trigger_type",
	"channel",
	"offset_minutes",
	"template_id",
	"content",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил автоматических сообщений и реестра отправок
// Реестр append-only: единственная операция записи — InsertDispatch,
// уникальность (appointment_id, rule_id) закреплена схемой
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает все активные правила
func (r *Repository) ListActive(ctx context.Context) ([]*domain.AutomaticMessageRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("automatic_message_rules").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AutomaticMessageRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetByID возвращает правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AutomaticMessageRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("automatic_message_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return rule, nil
}

// InsertDispatch фиксирует отправку в реестре
// ON CONFLICT DO NOTHING: при существующей паре (appointment_id, rule_id)
// строка не вставляется и возвращается ErrAlreadyDispatched — это штатный
// сигнал идемпотентности, а не сбой
func (r *Repository) InsertDispatch(ctx context.Context, appointmentID, ruleID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("message_dispatches").
		Columns("appointment_id", "rule_id", "sent_at").
		Values(appointmentID, ruleID, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (appointment_id, rule_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: InsertDispatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: InsertDispatch - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: InsertDispatch - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyDispatched
	}

	return nil
}

// HasDispatch проверяет наличие записи в реестре для пары (визит, правило)
func (r *Repository) HasDispatch(ctx context.Context, appointmentID, ruleID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("message_dispatches").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		Where(squirrel.Eq{"rule_id": ruleID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasDispatch - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasDispatch - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.AutomaticMessageRule, error) {
	var rule domain.AutomaticMessageRule

	err := row.Scan(
		&rule.ID,
		&rule.Name,
		&rule.Trigger,
		&rule.Channel,
		&rule.OffsetMinutes,
		&rule.TemplateID,
		&rule.Content,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &rule, nil
}
