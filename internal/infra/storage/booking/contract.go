package booking

import (
	"github.com/salonhub/booking-engine/pkg/txmanager"
)

// DBExecutor интерфейс выполнения запросов, реализуется *sql.DB и *sql.Tx.
// Репозиторий достает актуальный executor из контекста через txmanager.GetExecutor,
// поэтому один и тот же код работает и внутри транзакции, и без неё.
type DBExecutor = txmanager.DBExecutor
