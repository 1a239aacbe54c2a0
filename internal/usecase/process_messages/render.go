package process_messages

import (
	"strings"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
)

// renderContent подставляет данные визита в текст правила
// Поддерживаемые плейсхолдеры: {{date}}, {{time}}, {{employee_name}}, {{service_name}}
// Неизвестные плейсхолдеры остаются как есть и разрешаются шлюзом уведомлений
// (например, {{client_name}} по clientId из сообщения)
func renderContent(template string, appt *domain.Appointment, employeeName, serviceName string) string {
	anchor := appt.StartTime
	replacer := strings.NewReplacer(
		"{{date}}", anchor.Format(domain.DateFormat),
		"{{time}}", anchor.Format(domain.TimeFormat),
		"{{employee_name}}", employeeName,
		"{{service_name}}", serviceName,
	)
	return replacer.Replace(template)
}
