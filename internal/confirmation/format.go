// Package confirmation renders a human-readable confirmation message
// for a committed booking. Pure functions of the booking and a locale:
// no side effects, no database access.
package confirmation

import (
	"fmt"
	"strings"

	"github.com/salonhub/booking-engine/internal/domain"
)

// Format возвращает текст подтверждения бронирования для локали клиента.
// Время форматируется в той таймзоне, которую несёт booking.StartsAt -
// confirm_booking передаёт момент уже в локальном времени салона.
// Неизвестная локаль откатывается на локаль по умолчанию.
func Format(booking *domain.Booking, locale string) string {
	tpl, ok := templates[locale]
	if !ok {
		tpl = templates[domain.DefaultLocale]
	}

	var b strings.Builder
	b.WriteString(tpl.header)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s: %s\n", tpl.serviceLbl, booking.ServiceName)
	fmt.Fprintf(&b, "%s: %s\n", tpl.staffLbl, booking.StaffName)
	fmt.Fprintf(&b, "%s: %s, %s\n", tpl.whenLbl, tpl.formatDate(booking.StartsAt), tpl.formatTime(booking.StartsAt))
	fmt.Fprintf(&b, "%s: %s\n\n", tpl.codeLbl, booking.Code)
	b.WriteString(tpl.footer)

	return b.String()
}

// SupportedLocales возвращает список поддерживаемых локалей
func SupportedLocales() []string {
	locales := make([]string, 0, len(templates))
	for l := range templates {
		locales = append(locales, l)
	}
	return locales
}
