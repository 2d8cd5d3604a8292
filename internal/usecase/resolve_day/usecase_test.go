package resolve_day

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
)

type fakeResolver struct {
	slots []domain.ResolvedSlot
	calls int
	err   error
}

func (f *fakeResolver) ResolveDay(_ context.Context, _ int64, _ time.Time) ([]domain.ResolvedSlot, error) {
	f.calls++
	return f.slots, f.err
}

type fakeDirectory struct {
	calls int
	err   error
}

func (f *fakeDirectory) GetConsultant(_ context.Context, _ int64) (*directory.Consultant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &directory.Consultant{ID: 7, Active: true}, nil
}

type fakeCache struct {
	stored map[string][]domain.ResolvedSlot
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: make(map[string][]domain.ResolvedSlot)}
}

func (f *fakeCache) key(consultantID int64, date time.Time) string {
	return date.Format(domain.DateFormat)
}

func (f *fakeCache) GetDay(_ context.Context, consultantID int64, date time.Time) ([]domain.ResolvedSlot, bool) {
	slots, ok := f.stored[f.key(consultantID, date)]
	return slots, ok
}

func (f *fakeCache) SetDay(_ context.Context, consultantID int64, date time.Time, slots []domain.ResolvedSlot) {
	f.sets++
	f.stored[f.key(consultantID, date)] = slots
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func testSlots() []domain.ResolvedSlot {
	return []domain.ResolvedSlot{
		{StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60, Status: domain.SlotAvailable},
		{StartTime: "11:00", EndTime: "12:00", DurationMinutes: 60, Status: domain.SlotBooked},
	}
}

func TestUseCase_Execute_MissResolvesAndCaches(t *testing.T) {
	resolver := &fakeResolver{slots: testSlots()}
	dir := &fakeDirectory{}
	cache := newFakeCache()
	uc := NewUseCase(resolver, dir, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ConsultantID: 7, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, testSlots(), resp.Slots)
	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestUseCase_Execute_HitSkipsResolverAndDirectory(t *testing.T) {
	resolver := &fakeResolver{slots: testSlots()}
	dir := &fakeDirectory{}
	cache := newFakeCache()
	cache.stored["2026-09-07"] = testSlots()
	uc := NewUseCase(resolver, dir, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ConsultantID: 7, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, testSlots(), resp.Slots)
	assert.Zero(t, resolver.calls)
	assert.Zero(t, dir.calls)
}

func TestUseCase_Execute_ConsultantNotFound(t *testing.T) {
	resolver := &fakeResolver{}
	dir := &fakeDirectory{err: directory.ErrConsultantNotFound}
	uc := NewUseCase(resolver, dir, newFakeCache(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 7, Date: testDate})
	assert.ErrorIs(t, err, ErrConsultantNotFound)
	assert.Zero(t, resolver.calls)
}

func TestUseCase_Execute_ResolverFailureIsNotCached(t *testing.T) {
	resolver := &fakeResolver{err: assert.AnError}
	cache := newFakeCache()
	uc := NewUseCase(resolver, &fakeDirectory{}, cache, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 7, Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, cache.sets)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(&fakeResolver{}, &fakeDirectory{}, newFakeCache(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ConsultantID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
