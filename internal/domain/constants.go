package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Supported confirmation locales
const (
	LocaleRU = "ru"
	LocaleEN = "en"

	// DefaultLocale используется при неизвестной локали клиента
	DefaultLocale = LocaleRU
)

// DefaultSelectionTTL время жизни незавершённого выбора слота.
// Если клиент не подтвердил бронирование за это время, выбор истекает
// и клиенту предлагается выбрать время заново.
const DefaultSelectionTTL = 12 * time.Minute

// ActiveStatuses статусы бронирований, занимающих слот.
// Используется в запросах проверки занятости.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
