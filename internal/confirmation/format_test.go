package confirmation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/booking-engine/internal/domain"
)

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:          1,
		Code:        "K7M2XQ",
		ServiceName: "Стрижка",
		StaffName:   "Мария",
		StartsAt:    time.Date(2026, time.March, 5, 15, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2026, time.March, 5, 16, 0, 0, 0, time.UTC),
		Status:      domain.StatusConfirmed,
	}
}

func TestFormat_RU(t *testing.T) {
	msg := Format(sampleBooking(), "ru")

	assert.Contains(t, msg, "Запись подтверждена!")
	assert.Contains(t, msg, "Стрижка")
	assert.Contains(t, msg, "Мария")
	assert.Contains(t, msg, "5 марта 2026")
	assert.Contains(t, msg, "15:00")
	assert.Contains(t, msg, "K7M2XQ")

	// 24-часовой формат: никаких AM/PM
	assert.NotContains(t, msg, "PM")
	assert.NotContains(t, msg, "AM")
}

func TestFormat_EN(t *testing.T) {
	msg := Format(sampleBooking(), "en")

	assert.Contains(t, msg, "Your appointment is confirmed!")
	assert.Contains(t, msg, "March 5, 2026")
	assert.Contains(t, msg, "3:00 PM")
	assert.Contains(t, msg, "K7M2XQ")
}

func TestFormat_EN_MorningUsesAM(t *testing.T) {
	b := sampleBooking()
	b.StartsAt = time.Date(2026, time.March, 5, 9, 30, 0, 0, time.UTC)

	msg := Format(b, "en")
	assert.Contains(t, msg, "9:30 AM")
}

// Жёсткий контракт: сообщение одной локали не содержит ни одного
// фиксированного токена словаря другой локали
func TestFormat_LocaleIsolation(t *testing.T) {
	ruTokens := fixedTokens(templates["ru"])
	enTokens := fixedTokens(templates["en"])

	enMsg := Format(sampleBooking(), "en")
	for _, token := range ruTokens {
		assert.NotContains(t, enMsg, token, "en message leaks ru vocabulary")
	}

	ruMsg := Format(sampleBooking(), "ru")
	for _, token := range enTokens {
		assert.NotContains(t, ruMsg, token, "ru message leaks en vocabulary")
	}
}

func TestFormat_UnknownLocaleFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Format(sampleBooking(), domain.DefaultLocale), Format(sampleBooking(), "de"))
}

func TestFormat_Deterministic(t *testing.T) {
	b := sampleBooking()
	first := Format(b, "en")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Format(b, "en"))
	}
}

func TestSupportedLocales(t *testing.T) {
	locales := SupportedLocales()
	require.Len(t, locales, 2)
	assert.ElementsMatch(t, []string{"ru", "en"}, locales)
}

// fixedTokens собирает фиксированный словарь шаблона (без дат и времени,
// которые зависят от данных бронирования)
func fixedTokens(tpl template) []string {
	tokens := []string{tpl.header, tpl.serviceLbl, tpl.staffLbl, tpl.whenLbl, tpl.codeLbl, tpl.footer}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok) != "" {
			out = append(out, tok)
		}
	}
	return out
}
