package sessionstore

import "errors"

var (
	// ErrNoActiveSession возвращается, когда у клиента нет сохранённого выбора
	// слота или он истёк. Это бизнес-исход, а не сбой: клиенту предлагается
	// выбрать время заново, ретраи здесь не нужны.
	ErrNoActiveSession = errors.New("sessionstore: no active slot selection")

	// ErrMarshal возвращается при ошибке сериализации выбора слота
	ErrMarshal = errors.New("sessionstore: failed to marshal selection")

	// ErrStore возвращается при ошибке обращения к Redis
	ErrStore = errors.New("sessionstore: storage error")
)
