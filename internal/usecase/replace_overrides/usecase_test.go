package replace_overrides

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

type fakeAvailabilityRepo struct {
	replaced map[string][]types.TimeString
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{replaced: make(map[string][]types.TimeString)}
}

func (f *fakeAvailabilityRepo) ReplaceForDate(_ context.Context, consultantID int64, date time.Time, starts []types.TimeString) error {
	f.replaced[date.Format(domain.DateFormat)] = starts
	return nil
}

type fakeSessionRepo struct {
	occupied []types.TimeString
}

func (f *fakeSessionRepo) GetOccupiedStarts(_ context.Context, _ int64, _ time.Time) ([]types.TimeString, error) {
	return f.occupied, nil
}

type fakeResolver struct {
	cfg domain.ScheduleConfig
}

func (f *fakeResolver) Config() domain.ScheduleConfig {
	return f.cfg
}

type fakeDirectory struct {
	consultant *directory.Consultant
	err        error
}

func (f *fakeDirectory) GetConsultant(_ context.Context, _ int64) (*directory.Consultant, error) {
	return f.consultant, f.err
}

type fakeCache struct {
	invalidated int
}

func (f *fakeCache) InvalidateDay(_ context.Context, _ int64, _ time.Time) {
	f.invalidated++
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testResolver() *fakeResolver {
	return &fakeResolver{
		cfg: domain.ScheduleConfig{
			OpenTime:            "09:30",
			CloseTime:           "18:30",
			SlotDurationMinutes: 60,
			ClosedWeekday:       time.Sunday,
		},
	}
}

// 2026-09-07 is a Monday, 2026-09-06 is a Sunday
var (
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testSunday = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
)

func testUseCase(availRepo *fakeAvailabilityRepo, sessions *fakeSessionRepo, cache *fakeCache) *UseCase {
	return NewUseCase(
		availRepo,
		sessions,
		testResolver(),
		&fakeDirectory{consultant: &directory.Consultant{ID: 7, Active: true}},
		cache,
		&fakeTxManager{},
		nopLogger{},
	)
}

func validRequest() *Request {
	return &Request{
		ConsultantID:      7,
		CallerID:          7,
		Date:              testMonday,
		UnavailableStarts: []types.TimeString{"10:30", "14:30"},
	}
}

func TestUseCase_Execute_ReplacesOverrides(t *testing.T) {
	availRepo := newFakeAvailabilityRepo()
	cache := &fakeCache{}
	uc := testUseCase(availRepo, &fakeSessionRepo{}, cache)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:30", "14:30"}, availRepo.replaced["2026-09-07"])
	assert.Equal(t, []types.TimeString{"10:30", "14:30"}, resp.UnavailableStarts)
	assert.Equal(t, 1, cache.invalidated)
}

func TestUseCase_Execute_EmptySetClearsOverrides(t *testing.T) {
	availRepo := newFakeAvailabilityRepo()
	uc := testUseCase(availRepo, &fakeSessionRepo{}, &fakeCache{})

	req := validRequest()
	req.UnavailableStarts = nil

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	replaced, ok := availRepo.replaced["2026-09-07"]
	assert.True(t, ok)
	assert.Empty(t, replaced)
}

func TestUseCase_Execute_AccessDenied(t *testing.T) {
	uc := testUseCase(newFakeAvailabilityRepo(), &fakeSessionRepo{}, &fakeCache{})

	req := validRequest()
	req.CallerID = 8

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUseCase_Execute_ClosedDayRejected(t *testing.T) {
	availRepo := newFakeAvailabilityRepo()
	uc := testUseCase(availRepo, &fakeSessionRepo{}, &fakeCache{})

	req := validRequest()
	req.Date = testSunday

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClosedDay)
	assert.Empty(t, availRepo.replaced)
}

func TestUseCase_Execute_OffGridStartRejected(t *testing.T) {
	availRepo := newFakeAvailabilityRepo()
	uc := testUseCase(availRepo, &fakeSessionRepo{}, &fakeCache{})

	req := validRequest()
	req.UnavailableStarts = []types.TimeString{"10:00"}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownSlot)
	assert.Empty(t, availRepo.replaced)
}

func TestUseCase_Execute_BookedSlotRejected(t *testing.T) {
	// Marking a slot with an active session must fail the whole request:
	// an override can never hide a booking
	availRepo := newFakeAvailabilityRepo()
	sessions := &fakeSessionRepo{occupied: []types.TimeString{"14:30"}}
	uc := testUseCase(availRepo, sessions, &fakeCache{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotBooked)
	assert.Empty(t, availRepo.replaced)
}

func TestUseCase_Execute_ConsultantNotFound(t *testing.T) {
	uc := NewUseCase(
		newFakeAvailabilityRepo(),
		&fakeSessionRepo{},
		testResolver(),
		&fakeDirectory{err: directory.ErrConsultantNotFound},
		&fakeCache{},
		&fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "non-positive consultant", mutate: func(req *Request) { req.ConsultantID = 0 }},
		{name: "missing date", mutate: func(req *Request) { req.Date = time.Time{} }},
		{name: "malformed start time", mutate: func(req *Request) { req.UnavailableStarts = []types.TimeString{"25:99"} }},
		{name: "duplicate start time", mutate: func(req *Request) { req.UnavailableStarts = []types.TimeString{"10:30", "10:30"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := testUseCase(newFakeAvailabilityRepo(), &fakeSessionRepo{}, &fakeCache{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
