package process_messages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	messageRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/messagerule"
	"github.com/salonbw/SBW-SchedulingService/internal/integrations/notifier"
	"github.com/salonbw/SBW-SchedulingService/pkg/metrics"
)

// UseCase use case обработки автоматических сообщений
//
// Гарантия "не более одного раза" держится на уникальности
// (appointment_id, rule_id) в реестре отправок: запись в реестр и отправка
// выполняются в одной транзакции, так что строка реестра фиксируется только
// после того, как шлюз принял сообщение. Конкурентные обработчики одной и
// той же пары не могут отправить дубль — вставка у проигравшего не пройдет
type UseCase struct {
	appointmentRepo AppointmentRepository
	messageRepo     MessageRuleRepository
	notifierClient  NotifierClient
	staffClient     StaffServiceClient
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         *metrics.Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	messageRepo MessageRuleRepository,
	notifierClient NotifierClient,
	staffClient StaffServiceClient,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		messageRepo:     messageRepo,
		notifierClient:  notifierClient,
		staffClient:     staffClient,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithMetrics включает счетчики домена (если метрики сервиса включены)
func (uc *UseCase) WithMetrics(m *metrics.Metrics) *UseCase {
	uc.metrics = m
	return uc
}

// Execute выполняет обработку: все активные правила или одно указанное
// Обработка устойчива к частичным сбоям: неудачная пара помечается failed
// и не мешает остальным, повторный запуск доотправит без дублей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProcessMessages: user=%d, ruleID=%v", req.UserID, req.RuleID)

	rules, err := uc.loadRules(ctx, req.RuleID)
	if err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	resp := &Response{Outcomes: make([]Outcome, 0)}

	for _, rule := range rules {
		candidates, err := uc.loadCandidates(ctx, rule, now)
		if err != nil {
			uc.logger.Error("ProcessMessages: failed to load candidates for rule=%d: %v", rule.ID, err)
			return nil, err
		}

		for _, appointment := range candidates {
			outcome := uc.dispatchOne(ctx, rule, appointment)
			resp.Outcomes = append(resp.Outcomes, outcome)

			if uc.metrics != nil {
				uc.metrics.MessageDispatchesTotal.WithLabelValues(outcome.Status).Inc()
			}

			switch outcome.Status {
			case string(domain.DispatchSent):
				resp.Sent++
			case string(domain.DispatchSkipped):
				resp.Skipped++
			default:
				resp.Failed++
			}
		}
	}

	uc.logger.Info("ProcessMessages: done, sent=%d, skipped=%d, failed=%d", resp.Sent, resp.Skipped, resp.Failed)
	return resp, nil
}

// loadRules возвращает набор правил для обработки
func (uc *UseCase) loadRules(ctx context.Context, ruleID *int64) ([]*domain.AutomaticMessageRule, error) {
	if ruleID == nil {
		rules, err := uc.messageRepo.ListActive(ctx)
		if err != nil {
			uc.logger.Error("ProcessMessages: failed to list active rules: %v", err)
			return nil, fmt.Errorf("%w: failed to list rules: %v", ErrInternal, err)
		}
		return rules, nil
	}

	if *ruleID <= 0 {
		return nil, fmt.Errorf("%w: ruleID must be positive", ErrInvalidInput)
	}

	rule, err := uc.messageRepo.GetByID(ctx, *ruleID)
	if err != nil {
		if errors.Is(err, messageRepo.ErrRuleNotFound) {
			uc.logger.Warn("ProcessMessages: rule id=%d not found", *ruleID)
			return nil, ErrRuleNotFound
		}
		uc.logger.Error("ProcessMessages: failed to get rule id=%d: %v", *ruleID, err)
		return nil, fmt.Errorf("%w: failed to get rule: %v", ErrInternal, err)
	}

	if !rule.IsActive {
		uc.logger.Warn("ProcessMessages: rule id=%d is inactive", *ruleID)
		return nil, ErrRuleInactive
	}

	return []*domain.AutomaticMessageRule{rule}, nil
}

// loadCandidates возвращает визиты, у которых якорное время правила уже наступило
//
// Запросы репозитория дают грубую выборку по окну триггера; последнее слово
// за правилом: статус визита и якорь AnchorTime проверяются здесь.
// before_appointment: якорь startTime-offset <= now, при этом startTime > now —
// напоминания о давно начавшихся визитах не рассылаются
// after_completion: якорь finalizedAt+offset <= now
func (uc *UseCase) loadCandidates(ctx context.Context, rule *domain.AutomaticMessageRule, now time.Time) ([]*domain.Appointment, error) {
	offset := time.Duration(rule.OffsetMinutes) * time.Minute

	var candidates []*domain.Appointment
	var err error

	switch rule.Trigger {
	case domain.TriggerBeforeAppointment:
		candidates, err = uc.appointmentRepo.ListForReminderTrigger(ctx, now, now.Add(offset))
	case domain.TriggerAfterCompletion:
		candidates, err = uc.appointmentRepo.ListForFollowUpTrigger(ctx, now.Add(-offset))
	default:
		uc.logger.Warn("ProcessMessages: rule id=%d has unknown trigger=%s, skipping", rule.ID, rule.Trigger)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load candidates: %v", ErrInternal, err)
	}

	eligible := make([]*domain.Appointment, 0, len(candidates))
	for _, appointment := range candidates {
		if !rule.EligibleStatus(appointment.Status) {
			continue
		}
		anchor, ok := rule.AnchorTime(appointment)
		if !ok || anchor.After(now) {
			continue
		}
		if rule.Trigger == domain.TriggerBeforeAppointment && !appointment.StartTime.After(now) {
			continue
		}
		eligible = append(eligible, appointment)
	}

	return eligible, nil
}

// dispatchOne обрабатывает одну пару (правило, визит)
//
// Протокол: в одной транзакции вставляется строка реестра и отправляется
// сообщение. Отказ шлюза откатывает вставку — пара останется необработанной
// и будет повторена следующим запуском. Существующая строка реестра делает
// вставку no-op и пара пропускается
func (uc *UseCase) dispatchOne(ctx context.Context, rule *domain.AutomaticMessageRule, appointment *domain.Appointment) Outcome {
	outcome := Outcome{
		RuleID:        rule.ID,
		AppointmentID: appointment.ID,
	}

	// Дешевая проверка реестра до рендера и открытия транзакции.
	// Ошибка проверки не блокирует: вставка в транзакции все равно
	// отловит дубль
	if dispatched, err := uc.messageRepo.HasDispatch(ctx, appointment.ID, rule.ID); err == nil && dispatched {
		outcome.Status = string(domain.DispatchSkipped)
		outcome.Detail = "already dispatched"
		return outcome
	}

	content := uc.renderForAppointment(ctx, rule, appointment)

	msg := &notifier.Message{
		ClientID:      appointment.ClientID,
		AppointmentID: appointment.ID,
		RuleID:        rule.ID,
		Channel:       string(rule.Channel),
		Content:       content,
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.messageRepo.InsertDispatch(txCtx, appointment.ID, rule.ID); err != nil {
			return err
		}
		return uc.notifierClient.Send(txCtx, msg)
	})

	switch {
	case err == nil:
		uc.logger.Info("ProcessMessages: sent rule=%d, appointment=%d, channel=%s", rule.ID, appointment.ID, rule.Channel)
		outcome.Status = string(domain.DispatchSent)
	case errors.Is(err, messageRepo.ErrAlreadyDispatched):
		outcome.Status = string(domain.DispatchSkipped)
		outcome.Detail = "already dispatched"
	default:
		uc.logger.Error("ProcessMessages: dispatch failed for rule=%d, appointment=%d: %v", rule.ID, appointment.ID, err)
		outcome.Status = string(domain.DispatchFailed)
		outcome.Detail = err.Error()
	}

	return outcome
}

// renderForAppointment собирает данные для плейсхолдеров и рендерит текст
// Недоступность справочных сервисов не блокирует отправку: плейсхолдер
// остается неразрешенным, сообщение уходит с остальными данными
func (uc *UseCase) renderForAppointment(ctx context.Context, rule *domain.AutomaticMessageRule, appointment *domain.Appointment) string {
	employeeName := "{{employee_name}}"
	if employee, err := uc.staffClient.GetEmployee(ctx, appointment.EmployeeID); err == nil {
		employeeName = employee.FullName
	} else {
		uc.logger.Warn("ProcessMessages: employee id=%d lookup failed: %v", appointment.EmployeeID, err)
	}

	serviceName := "{{service_name}}"
	if service, err := uc.catalogClient.GetService(ctx, appointment.ServiceID); err == nil {
		serviceName = service.Name
	} else {
		uc.logger.Warn("ProcessMessages: service id=%d lookup failed: %v", appointment.ServiceID, err)
	}

	return renderContent(rule.Content, appointment, employeeName, serviceName)
}
