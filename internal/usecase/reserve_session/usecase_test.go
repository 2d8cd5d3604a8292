package reserve_session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	sessionRepo "github.com/kruglovd/CB-SchedulingService/internal/infra/storage/session"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/notifier"
	"github.com/kruglovd/CB-SchedulingService/pkg/ptr"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// fakeSessionRepo эмулирует журнал сессий: мьютекс + карта занятых слотов
// ведут себя как частичный уникальный индекс в БД
type fakeSessionRepo struct {
	mu          sync.Mutex
	nextID      int64
	bySlot      map[string]*domain.Session
	byIdemKey   map[string]*domain.Session
	createCalls int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		nextID:    1,
		bySlot:    make(map[string]*domain.Session),
		byIdemKey: make(map[string]*domain.Session),
	}
}

func slotKey(consultantID int64, date time.Time, start types.TimeString) string {
	return fmt.Sprintf("%d|%s|%s", consultantID, date.Format(domain.DateFormat), start)
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.Session) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++

	key := slotKey(session.ConsultantID, session.SessionDate, session.StartTime)
	if _, taken := f.bySlot[key]; taken {
		return nil, sessionRepo.ErrSlotTaken
	}

	if session.IdempotencyKey != nil {
		if _, exists := f.byIdemKey[*session.IdempotencyKey]; exists {
			return nil, sessionRepo.ErrDuplicateIdempotencyKey
		}
	}

	created := *session
	created.ID = f.nextID
	f.nextID++
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt

	f.bySlot[key] = &created
	if session.IdempotencyKey != nil {
		f.byIdemKey[*session.IdempotencyKey] = &created
	}

	return &created, nil
}

func (f *fakeSessionRepo) GetByIdempotencyKey(_ context.Context, key string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if session, ok := f.byIdemKey[key]; ok {
		result := *session
		return &result, nil
	}
	return nil, sessionRepo.ErrSessionNotFound
}

// fakeResolver отдает фиксированный конфиг и статусы слотов
type fakeResolver struct {
	cfg      domain.ScheduleConfig
	statuses map[types.TimeString]domain.SlotStatus
}

func (f *fakeResolver) Config() domain.ScheduleConfig {
	return f.cfg
}

func (f *fakeResolver) ResolveDay(_ context.Context, _ int64, _ time.Time) ([]domain.ResolvedSlot, error) {
	grid, err := f.cfg.SlotGrid()
	if err != nil {
		return nil, err
	}

	slots := make([]domain.ResolvedSlot, 0, len(grid))
	for _, start := range grid {
		status := domain.SlotAvailable
		if s, ok := f.statuses[start]; ok {
			status = s
		}
		end, _ := start.AddMinutes(f.cfg.SlotDurationMinutes)
		slots = append(slots, domain.ResolvedSlot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: f.cfg.SlotDurationMinutes,
			Status:          status,
		})
	}
	return slots, nil
}

type fakeDirectory struct {
	consultant *directory.Consultant
	err        error
}

func (f *fakeDirectory) GetConsultant(_ context.Context, _ int64) (*directory.Consultant, error) {
	return f.consultant, f.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	booked []notifier.SessionBookedEvent
}

func (f *fakeNotifier) SessionBooked(_ context.Context, event notifier.SessionBookedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked = append(f.booked, event)
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	invalidated int
}

func (f *fakeCache) InvalidateDay(_ context.Context, _ int64, _ time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}

// fakeTxManager исполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeConsultant() *directory.Consultant {
	return &directory.Consultant{
		ID:          7,
		DisplayName: "Dr. Ivanova",
		HourlyRate:  9000,
		Active:      true,
	}
}

func testUseCase(repo *fakeSessionRepo, resolver *fakeResolver, dir *fakeDirectory) *UseCase {
	uc := NewUseCase(repo, resolver, dir, &fakeNotifier{}, &fakeCache{}, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func defaultResolver() *fakeResolver {
	return &fakeResolver{
		cfg: domain.ScheduleConfig{
			OpenTime:            "09:30",
			CloseTime:           "18:30",
			SlotDurationMinutes: 60,
			ClosedWeekday:       time.Sunday,
		},
		statuses: map[types.TimeString]domain.SlotStatus{},
	}
}

// 2026-09-07 is a Monday, 2026-09-06 is a Sunday
var (
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testSunday = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
)

func validRequest() *Request {
	return &Request{
		ConsultantID:    7,
		ClientID:        42,
		Date:            testMonday,
		StartTime:       "10:30",
		DurationMinutes: 60,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := testUseCase(repo, defaultResolver(), &fakeDirectory{consultant: activeConsultant()})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(9000), resp.Price) // 60 min at hourly rate 9000
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
}

func TestUseCase_Execute_PrepaymentConsultantStartsPendingPayment(t *testing.T) {
	repo := newFakeSessionRepo()
	consultant := activeConsultant()
	consultant.RequiresPrepayment = true
	uc := testUseCase(repo, defaultResolver(), &fakeDirectory{consultant: consultant})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingPayment), resp.Status)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "non-positive consultant",
			mutate:  func(req *Request) { req.ConsultantID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "non-positive client",
			mutate:  func(req *Request) { req.ClientID = -1 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			mutate:  func(req *Request) { req.Date = time.Time{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing start time",
			mutate:  func(req *Request) { req.StartTime = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed idempotency key",
			mutate:  func(req *Request) { req.IdempotencyKey = ptr.Ptr("not-a-uuid") },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "date in the past",
			mutate:  func(req *Request) { req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "closed weekday",
			mutate:  func(req *Request) { req.Date = testSunday },
			wantErr: ErrClosedDay,
		},
		{
			name:    "start time off the grid",
			mutate:  func(req *Request) { req.StartTime = "10:00" },
			wantErr: ErrUnknownSlot,
		},
		{
			name:    "wrong duration",
			mutate:  func(req *Request) { req.DurationMinutes = 30 },
			wantErr: ErrUnknownSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSessionRepo()
			uc := testUseCase(repo, defaultResolver(), &fakeDirectory{consultant: activeConsultant()})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.createCalls)
		})
	}
}

func TestUseCase_Execute_ConsultantNotFound(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := testUseCase(repo, defaultResolver(), &fakeDirectory{err: directory.ErrConsultantNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestUseCase_Execute_ConsultantInactive(t *testing.T) {
	repo := newFakeSessionRepo()
	consultant := activeConsultant()
	consultant.Active = false
	uc := testUseCase(repo, defaultResolver(), &fakeDirectory{consultant: consultant})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConsultantInactive)
}

func TestUseCase_Execute_SlotMarkedUnavailable(t *testing.T) {
	repo := newFakeSessionRepo()
	resolver := defaultResolver()
	resolver.statuses["10:30"] = domain.SlotUnavailable
	uc := testUseCase(repo, resolver, &fakeDirectory{consultant: activeConsultant()})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Zero(t, repo.createCalls)
}

func TestUseCase_Execute_SlotAlreadyBookedInResolvedDay(t *testing.T) {
	repo := newFakeSessionRepo()
	resolver := defaultResolver()
	resolver.statuses["10:30"] = domain.SlotBooked
	uc := testUseCase(repo, resolver, &fakeDirectory{consultant: activeConsultant()})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	assert.Zero(t, repo.createCalls)
}

func TestUseCase_Execute_ExactlyOneOfConcurrentReservesWins(t *testing.T) {
	const attempts = 20

	repo := newFakeSessionRepo()
	uc := testUseCase(repo, defaultResolver(), &fakeDirectory{consultant: activeConsultant()})

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(clientID int64) {
			defer wg.Done()
			req := validRequest()
			req.ClientID = clientID
			_, err := uc.Execute(context.Background(), req)
			results <- err
		}(int64(100 + i))
	}

	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrSlotAlreadyBooked):
			conflicts++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
}

func TestUseCase_Execute_IdempotentReplayReturnsExistingSession(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := testUseCase(repo, defaultResolver(), &fakeDirectory{consultant: activeConsultant()})

	key := "8f14e45f-ea6a-4b88-9d5c-2f7a4a6e1c01"

	req := validRequest()
	req.IdempotencyKey = ptr.Ptr(key)

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повтор с тем же ключом возвращает ту же сессию без второй вставки
	replay := validRequest()
	replay.IdempotencyKey = ptr.Ptr(key)

	second, err := uc.Execute(context.Background(), replay)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.createCalls)
}
