package cancel_session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	sessionRepo "github.com/kruglovd/CB-SchedulingService/internal/infra/storage/session"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/notifier"
)

type fakeSessionRepo struct {
	mu      sync.Mutex
	session *domain.Session
	getErr  error
}

func (f *fakeSessionRepo) GetByID(_ context.Context, _ int64) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	result := *f.session
	return &result, nil
}

func (f *fakeSessionRepo) CancelConditional(_ context.Context, _ int64, reason string, cancelledAt time.Time, refundAmount int64, refundPercentage int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.session.CanBeCancelled() {
		return sessionRepo.ErrSessionNotCancellable
	}

	f.session.Status = domain.StatusCancelled
	f.session.CancellationReason = &reason
	f.session.CancelledAt = &cancelledAt
	f.session.RefundAmount = &refundAmount
	f.session.RefundPercentage = &refundPercentage
	return nil
}

type fakeCancellationRepo struct {
	records        []*domain.CancellationRecord
	refundRequests []*domain.RefundRequest
}

func (f *fakeCancellationRepo) CreateRecord(_ context.Context, record *domain.CancellationRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeCancellationRepo) CreateRefundRequest(_ context.Context, request *domain.RefundRequest) (*domain.RefundRequest, error) {
	request.ID = int64(len(f.refundRequests) + 1)
	f.refundRequests = append(f.refundRequests, request)
	return request, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	cancelled []notifier.SessionCancelledEvent
}

func (f *fakeNotifier) SessionCancelled(_ context.Context, event notifier.SessionCancelledEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, event)
	return nil
}

type fakeCache struct {
	invalidated int
}

func (f *fakeCache) InvalidateDay(_ context.Context, _ int64, _ time.Time) {
	f.invalidated++
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

// Session on 2026-09-10 at 15:00 UTC, priced 500 minor units
func confirmedSession() *domain.Session {
	return &domain.Session{
		ID:              11,
		ConsultantID:    7,
		ClientID:        42,
		SessionDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "15:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		Price:           500,
	}
}

func testUseCase(repo *fakeSessionRepo, cancellations *fakeCancellationRepo, cache *fakeCache, now time.Time) *UseCase {
	uc := NewUseCase(repo, cancellations, &fakeNotifier{}, cache, &fakeTxManager{}, time.UTC, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		SessionID: 11,
		CallerID:  42,
		Reason:    "schedule conflict",
	}
}

func TestUseCase_Execute_RefundTiers(t *testing.T) {
	tests := []struct {
		name           string
		now            time.Time
		wantPercentage int
		wantAmount     int64
		wantRequest    bool
	}{
		{
			name:           "more than 48h ahead",
			now:            time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC),
			wantPercentage: 100,
			wantAmount:     500,
			wantRequest:    true,
		},
		{
			name:           "between 24h and 48h",
			now:            time.Date(2026, 9, 9, 10, 0, 0, 0, time.UTC),
			wantPercentage: 75,
			wantAmount:     375,
			wantRequest:    true,
		},
		{
			name:           "between 2h and 24h",
			now:            time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
			wantPercentage: 50,
			wantAmount:     250,
			wantRequest:    true,
		},
		{
			name:           "less than 2h before start",
			now:            time.Date(2026, 9, 10, 14, 0, 1, 0, time.UTC),
			wantPercentage: 0,
			wantAmount:     0,
			wantRequest:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSessionRepo{session: confirmedSession()}
			cancellations := &fakeCancellationRepo{}
			cache := &fakeCache{}
			uc := testUseCase(repo, cancellations, cache, tt.now)

			resp, err := uc.Execute(context.Background(), validRequest())
			require.NoError(t, err)

			assert.Equal(t, tt.wantPercentage, resp.RefundPercentage)
			assert.Equal(t, tt.wantAmount, resp.RefundAmount)
			assert.Equal(t, tt.wantRequest, resp.RefundRequested)

			require.Len(t, cancellations.records, 1)
			assert.Equal(t, tt.wantAmount, cancellations.records[0].RefundAmount)

			if tt.wantRequest {
				require.Len(t, cancellations.refundRequests, 1)
				assert.Equal(t, tt.wantAmount, cancellations.refundRequests[0].Amount)
				assert.Equal(t, domain.RefundPending, cancellations.refundRequests[0].Status)
			} else {
				assert.Empty(t, cancellations.refundRequests)
			}

			assert.Equal(t, domain.StatusCancelled, repo.session.Status)
			assert.Equal(t, 1, cache.invalidated)
		})
	}
}

func TestUseCase_Execute_ConsultantMayCancel(t *testing.T) {
	repo := &fakeSessionRepo{session: confirmedSession()}
	uc := testUseCase(repo, &fakeCancellationRepo{}, &fakeCache{}, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	req := validRequest()
	req.CallerID = 7 // consultant of the session

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestUseCase_Execute_AccessDeniedForStranger(t *testing.T) {
	repo := &fakeSessionRepo{session: confirmedSession()}
	uc := testUseCase(repo, &fakeCancellationRepo{}, &fakeCache{}, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	req := validRequest()
	req.CallerID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusConfirmed, repo.session.Status)
}

func TestUseCase_Execute_SessionNotFound(t *testing.T) {
	repo := &fakeSessionRepo{getErr: sessionRepo.ErrSessionNotFound}
	uc := testUseCase(repo, &fakeCancellationRepo{}, &fakeCache{}, time.Now())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUseCase_Execute_NonCancellableStatuses(t *testing.T) {
	statuses := []domain.SessionStatus{
		domain.StatusPendingPayment,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			session := confirmedSession()
			session.Status = status
			repo := &fakeSessionRepo{session: session}
			cancellations := &fakeCancellationRepo{}
			uc := testUseCase(repo, cancellations, &fakeCache{}, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrInvalidStateTransition)
			assert.Empty(t, cancellations.records)
		})
	}
}

func TestUseCase_Execute_SecondCancelLosesConditionalUpdate(t *testing.T) {
	repo := &fakeSessionRepo{session: confirmedSession()}
	cancellations := &fakeCancellationRepo{}
	uc := testUseCase(repo, cancellations, &fakeCache{}, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	assert.Len(t, cancellations.records, 1)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "non-positive session id", mutate: func(req *Request) { req.SessionID = 0 }},
		{name: "non-positive caller id", mutate: func(req *Request) { req.CallerID = -1 }},
		{name: "empty reason", mutate: func(req *Request) { req.Reason = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSessionRepo{session: confirmedSession()}
			uc := testUseCase(repo, &fakeCancellationRepo{}, &fakeCache{}, time.Now())

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
