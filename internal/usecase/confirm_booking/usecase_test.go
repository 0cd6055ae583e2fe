package confirm_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/booking-engine/internal/domain"
	"github.com/salonhub/booking-engine/internal/infra/sessionstore"
	bookingRepo "github.com/salonhub/booking-engine/internal/infra/storage/booking"
	catalogRepo "github.com/salonhub/booking-engine/internal/infra/storage/catalog"
	"github.com/salonhub/booking-engine/pkg/ptr"
	"github.com/salonhub/booking-engine/pkg/types"
)

// --- фейки ---

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.PendingSelection
	getErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*domain.PendingSelection)}
}

func (s *fakeSessionStore) Get(_ context.Context, customerID string) (*domain.PendingSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	sel, ok := s.sessions[customerID]
	if !ok {
		return nil, sessionstore.ErrNoActiveSession
	}
	cp := *sel
	return &cp, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, customerID)
	return nil
}

func (s *fakeSessionStore) put(sel *domain.PendingSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sel.CustomerID] = sel
}

type fakeCatalog struct {
	salon    *domain.Salon
	staff    *domain.StaffMember
	service  *domain.Service
	salonErr error
}

func (c *fakeCatalog) GetSalon(context.Context, int64) (*domain.Salon, error) {
	if c.salonErr != nil {
		return nil, c.salonErr
	}
	return c.salon, nil
}

func (c *fakeCatalog) GetStaffMember(context.Context, int64) (*domain.StaffMember, error) {
	return c.staff, nil
}

func (c *fakeCatalog) GetService(context.Context, int64) (*domain.Service, error) {
	return c.service, nil
}

// fakeBookingRepo in-memory репозиторий бронирований.
// createErrs - очередь ошибок, возвращаемых Create до успешной вставки.
type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   []*domain.Booking
	nextID     int64
	createErrs []error
	creates    int
	overlapQs  int
}

func (r *fakeBookingRepo) GetActiveOverlapping(_ context.Context, staffID int64, start, end time.Time) ([]*domain.Booking, error) {
	r.overlapQs++
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.StaffID == staffID && b.IsActive() && b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.creates++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return nil, err
	}
	r.nextID++
	b.ID = r.nextID
	r.bookings = append(r.bookings, b)
	return b, nil
}

// fakeTxManager эмулирует сериализуемую транзакцию глобальным мьютексом:
// проверка занятости и вставка выполняются атомарно относительно
// конкурирующих подтверждений
type fakeTxManager struct {
	repo       *fakeBookingRepo
	executions int
	mu         sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.repo.mu.Lock()
	defer m.repo.mu.Unlock()
	m.mu.Lock()
	m.executions++
	m.mu.Unlock()
	return fn(ctx)
}

type fakeCodeGen struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func (g *fakeCodeGen) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.next < len(g.codes) {
		code := g.codes[g.next]
		g.next++
		return code, nil
	}
	g.next++
	return fmt.Sprintf("CODE%02d", g.next), nil
}

type fixedTime struct{ now time.Time }

func (t *fixedTime) Now() time.Time { return t.now }

// recordingSleeper запоминает задержки вместо реального ожидания
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- окружение ---

type env struct {
	uc       *UseCase
	sessions *fakeSessionStore
	repo     *fakeBookingRepo
	catalog  *fakeCatalog
	tx       *fakeTxManager
	sleeper  *recordingSleeper
	now      time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()

	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

	sessions := newFakeSessionStore()
	repo := &fakeBookingRepo{}
	tx := &fakeTxManager{repo: repo}
	sleeper := &recordingSleeper{}

	catalog := &fakeCatalog{
		salon:   &domain.Salon{ID: 1, Name: "Glow", Timezone: "UTC"},
		staff:   &domain.StaffMember{ID: 10, SalonID: 1, DisplayName: "Мария", Active: true},
		service: &domain.Service{ID: 20, SalonID: 1, Name: "Стрижка", DurationMinutes: 60, Active: true},
	}

	uc := NewUseCase(sessions, repo, catalog, tx, &fakeCodeGen{}, 3, 100*time.Millisecond, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	uc.sleeper = sleeper

	return &env{uc: uc, sessions: sessions, repo: repo, catalog: catalog, tx: tx, sleeper: sleeper, now: now}
}

func (e *env) selection(customerID string, startTime types.TimeString) *domain.PendingSelection {
	return &domain.PendingSelection{
		CustomerID:    customerID,
		CustomerPhone: ptr.Ptr("+79991234567"),
		SalonID:       1,
		StaffID:       10,
		ServiceID:     20,
		Date:          e.now.AddDate(0, 0, 1), // завтра
		StartTime:     startTime,
		Locale:        domain.LocaleRU,
		CreatedAt:     e.now,
	}
}

// --- тесты ---

func TestExecute_ConfirmsBooking(t *testing.T) {
	e := newEnv(t)
	e.sessions.put(e.selection("cust-1", "15:00"))

	resp, err := e.uc.Execute(context.Background(), &Request{CustomerID: "cust-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Code)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, "Мария", resp.StaffName)
	assert.Contains(t, resp.Message, resp.Code)
	assert.Equal(t, 1, e.tx.executions)

	// Телефон из выбора переносится на строку бронирования
	require.Len(t, e.repo.bookings, 1)
	require.NotNil(t, e.repo.bookings[0].CustomerPhone)
	assert.Equal(t, "+79991234567", *e.repo.bookings[0].CustomerPhone)

	// Интервал: 15:00 + 60 минут
	assert.Equal(t, 15, resp.StartsAt.Hour())
	assert.Equal(t, 16, resp.EndsAt.Hour())

	// Выбор потреблён: повторное подтверждение требует нового выбора
	_, err = e.uc.Execute(context.Background(), &Request{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestExecute_NoActiveSession(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Execute(context.Background(), &Request{CustomerID: "never-selected"})
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Zero(t, e.tx.executions)
	assert.Empty(t, e.sleeper.delays)
}

func TestExecute_SlotInPast(t *testing.T) {
	e := newEnv(t)

	sel := e.selection("cust-1", "09:00")
	sel.Date = e.now.AddDate(0, 0, -1) // вчера
	e.sessions.put(sel)

	_, err := e.uc.Execute(context.Background(), &Request{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.Zero(t, e.tx.executions, "past check must not open a transaction")
}

func TestExecute_SlotTaken_NotRetried(t *testing.T) {
	e := newEnv(t)

	// Слот уже занят другим клиентом
	e.sessions.put(e.selection("first", "15:00"))
	_, err := e.uc.Execute(context.Background(), &Request{CustomerID: "first"})
	require.NoError(t, err)
	require.Equal(t, 1, e.tx.executions)

	e.sessions.put(e.selection("second", "15:00"))
	_, err = e.uc.Execute(context.Background(), &Request{CustomerID: "second"})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Конфликт - бизнес-исход: ровно одна транзакция, никаких задержек
	assert.Equal(t, 2, e.tx.executions)
	assert.Empty(t, e.sleeper.delays)
}

func TestExecute_OverlappingInterval_Conflicts(t *testing.T) {
	e := newEnv(t)

	// 15:00-16:00 занято, попытка 15:30 пересекается
	e.sessions.put(e.selection("first", "15:00"))
	_, err := e.uc.Execute(context.Background(), &Request{CustomerID: "first"})
	require.NoError(t, err)

	e.sessions.put(e.selection("second", "15:30"))
	_, err = e.uc.Execute(context.Background(), &Request{CustomerID: "second"})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// 16:00 начинается ровно на границе - конфликта нет
	e.sessions.put(e.selection("third", "16:00"))
	_, err = e.uc.Execute(context.Background(), &Request{CustomerID: "third"})
	assert.NoError(t, err)
}

func TestExecute_TransientFailures_RetriesExhausted(t *testing.T) {
	e := newEnv(t)
	e.sessions.put(e.selection("cust-1", "15:00"))

	transient := fmt.Errorf("%w: connection reset", bookingRepo.ErrTransient)
	e.repo.createErrs = []error{transient, transient, transient}

	_, err := e.uc.Execute(context.Background(), &Request{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, ErrTransient)

	// Ровно 3 попытки транзакции
	assert.Equal(t, 3, e.tx.executions)

	// Экспоненциальный backoff: задержка перед каждой следующей попыткой строго растет
	require.Len(t, e.sleeper.delays, 2)
	assert.Equal(t, 100*time.Millisecond, e.sleeper.delays[0])
	assert.Equal(t, 200*time.Millisecond, e.sleeper.delays[1])
	assert.Greater(t, e.sleeper.delays[1], e.sleeper.delays[0])
}

func TestExecute_TransientFailure_ThenSucceeds(t *testing.T) {
	e := newEnv(t)
	e.sessions.put(e.selection("cust-1", "15:00"))

	e.repo.createErrs = []error{fmt.Errorf("%w: timeout", bookingRepo.ErrTransient)}

	resp, err := e.uc.Execute(context.Background(), &Request{CustomerID: "cust-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Code)
	assert.Equal(t, 2, e.tx.executions)
	assert.Len(t, e.sleeper.delays, 1)
}

func TestExecute_CodeCollision_RetriedWithFreshCode(t *testing.T) {
	e := newEnv(t)
	e.sessions.put(e.selection("cust-1", "15:00"))

	// Первая вставка упирается в уникальный индекс кода - транзиентная ошибка
	e.repo.createErrs = []error{fmt.Errorf("%w: duplicate key on bookings_code_key", bookingRepo.ErrTransient)}

	gen := &fakeCodeGen{codes: []string{"AAAAAA", "BBBBBB"}}
	e.uc.codeGen = gen

	resp, err := e.uc.Execute(context.Background(), &Request{CustomerID: "cust-1"})
	require.NoError(t, err)

	// Повторная попытка шла с новым кодом
	assert.Equal(t, "BBBBBB", resp.Code)
}

func TestExecute_CatalogTransientFailure_Retried(t *testing.T) {
	e := newEnv(t)
	e.sessions.put(e.selection("cust-1", "15:00"))

	// Обрыв соединения при чтении справочника - ретраи, а не фатальный исход
	e.catalog.salonErr = fmt.Errorf("%w: GetSalon - scan salon: connection reset", catalogRepo.ErrTransient)

	_, err := e.uc.Execute(context.Background(), &Request{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, ErrTransient)
	assert.Len(t, e.sleeper.delays, 2)
	assert.Zero(t, e.tx.executions, "catalog failure happens before the transaction")
}

func TestExecute_SessionStoreFailure_Retried(t *testing.T) {
	e := newEnv(t)
	e.sessions.getErr = fmt.Errorf("%w: connection refused", sessionstore.ErrStore)

	_, err := e.uc.Execute(context.Background(), &Request{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, ErrTransient)
	assert.Len(t, e.sleeper.delays, 2)
}

func TestExecute_ConcurrentConfirms_ExactlyOneWins(t *testing.T) {
	e := newEnv(t)

	const n = 8
	for i := 0; i < n; i++ {
		e.sessions.put(e.selection(fmt.Sprintf("cust-%d", i), "15:00"))
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	codes := make([]string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := e.uc.Execute(context.Background(), &Request{CustomerID: fmt.Sprintf("cust-%d", i)})
			errs[i] = err
			if err == nil {
				codes[i] = resp.Code
			}
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := 0; i < n; i++ {
		if errs[i] == nil {
			winners++
			assert.NotEmpty(t, codes[i])
		} else {
			assert.ErrorIs(t, errs[i], ErrSlotTaken, "loser %d must observe the conflict", i)
		}
	}

	assert.Equal(t, 1, winners, "exactly one concurrent confirmation must commit")
	assert.Len(t, e.repo.bookings, 1, "exactly one booking row must exist")
}

func TestExecute_EmptyCustomerID(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
