package bookingcode

import (
	"crypto/rand"
	"fmt"
	"io"
)

// alphabet символы для кода бронирования.
// Исключены неоднозначные глифы: 0/O, 1/I/L - код зачитывается клиенту вслух
// и показывается в чате, путаница недопустима.
const alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// CodeLength длина кода бронирования
const CodeLength = 6

// Generator генератор коротких кодов бронирования.
// Уникальность кода гарантируется уникальным индексом в БД,
// генератор лишь делает коллизию маловероятной.
type Generator struct {
	length int
	rand   io.Reader
}

// NewGenerator создает генератор кодов стандартной длины
func NewGenerator() *Generator {
	return &Generator{length: CodeLength, rand: rand.Reader}
}

// Generate возвращает случайный код бронирования.
// Байты >= limit отбрасываются: остаток от деления 256 на размер алфавита
// перекашивал бы распределение в пользу первых символов.
func (g *Generator) Generate() (string, error) {
	const limit = 256 - 256%len(alphabet)

	code := make([]byte, 0, g.length)
	buf := make([]byte, 1)

	for len(code) < g.length {
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return "", fmt.Errorf("bookingcode: failed to read random bytes: %w", err)
		}
		if int(buf[0]) >= limit {
			continue
		}
		code = append(code, alphabet[int(buf[0])%len(alphabet)])
	}

	return string(code), nil
}
