package confirmation

import (
	"fmt"
	"time"
)

// template фиксированный словарь и правила форматирования одной локали.
// Добавление локали - новая запись в таблице templates, чужие строки
// протечь в сообщение не могут: каждая локаль целиком описывает себя сама.
type template struct {
	header     string
	serviceLbl string
	staffLbl   string
	whenLbl    string
	codeLbl    string
	footer     string
	formatDate func(t time.Time) string
	formatTime func(t time.Time) string
}

// templates таблица локаль -> шаблон подтверждения
var templates = map[string]template{
	"ru": {
		header:     "Запись подтверждена!",
		serviceLbl: "Услуга",
		staffLbl:   "Мастер",
		whenLbl:    "Когда",
		codeLbl:    "Код записи",
		footer:     "Ждём вас!",
		formatDate: formatDateRU,
		// русская локаль использует 24-часовой формат
		formatTime: func(t time.Time) string { return t.Format("15:04") },
	},
	"en": {
		header:     "Your appointment is confirmed!",
		serviceLbl: "Service",
		staffLbl:   "Specialist",
		whenLbl:    "When",
		codeLbl:    "Booking code",
		footer:     "See you soon!",
		formatDate: func(t time.Time) string { return t.Format("January 2, 2006") },
		// английская локаль использует 12-часовой формат с AM/PM
		formatTime: func(t time.Time) string { return t.Format("3:04 PM") },
	},
}

// ruMonthsGenitive названия месяцев в родительном падеже для дат вида "5 марта 2026"
var ruMonthsGenitive = [...]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

func formatDateRU(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), ruMonthsGenitive[t.Month()], t.Year())
}
