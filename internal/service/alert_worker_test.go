package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/testutil"
	"github.com/centavo-app/centavo-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fakeUserLister struct {
	users []uuid.UUID
}

func (f *fakeUserLister) ConnectedUsers() []uuid.UUID {
	return f.users
}

type capturingPublisher struct {
	mu     sync.Mutex
	events map[uuid.UUID][]websocket.Event
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{events: make(map[uuid.UUID][]websocket.Event)}
}

func (p *capturingPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[userID] = append(p.events[userID], event)
}

type capturingSink struct {
	mu    sync.Mutex
	calls [][]domain.Alert
}

func (s *capturingSink) Notify(_ context.Context, alerts []domain.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, alerts)
}

func newWorkerFixture(users ...uuid.UUID) (*AlertWorker, *capturingPublisher, *capturingSink, *testutil.MockIncomeReader, *testutil.MockExpenseReader) {
	incomes := testutil.NewMockIncomeReader()
	expenses := testutil.NewMockExpenseReader()
	categories := testutil.NewMockCategoryReader()
	deposits := testutil.NewMockDepositReader()
	alertService := NewAlertService(incomes, expenses, categories, deposits)

	publisher := newCapturingPublisher()
	sink := &capturingSink{}
	worker := NewAlertWorker(alertService, &fakeUserLister{users: users}, publisher, sink, zerolog.Nop(), time.Hour)
	return worker, publisher, sink, incomes, expenses
}

func TestAlertWorker_SweepPublishesPerUser(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	worker, publisher, sink, incomes, expenses := newWorkerFixture(userA, userB)

	// userA overspends this month; userB has no records
	now := time.Now()
	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userA, Amount: decimal.NewFromInt(100000), Currency: domain.CurrencyARS, Date: now})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userA, Amount: decimal.NewFromInt(150000), Currency: domain.CurrencyARS, Date: now})

	worker.Sweep(context.Background())

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.events[userA]) != 1 {
		t.Fatalf("events for userA = %d, want 1", len(publisher.events[userA]))
	}
	if len(publisher.events[userB]) != 1 {
		t.Fatalf("events for userB = %d, want 1", len(publisher.events[userB]))
	}

	event := publisher.events[userA][0]
	if event.Type != string(websocket.EventTypeRefreshed) || event.Entity != websocket.EntityTypeAlerts {
		t.Errorf("event = %s/%s, want refreshed/alerts", event.Type, event.Entity)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.calls) != 2 {
		t.Errorf("sink calls = %d, want 2", len(sink.calls))
	}
}

func TestAlertWorker_SweepContinuesAfterUserFailure(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	worker, publisher, _, _, expenses := newWorkerFixture(userA, userB)

	expenses.Err = context.DeadlineExceeded
	worker.Sweep(context.Background())

	publisher.mu.Lock()
	got := len(publisher.events[userA]) + len(publisher.events[userB])
	publisher.mu.Unlock()
	if got != 0 {
		t.Errorf("events published = %d, want 0 when reads fail", got)
	}

	// Reads recover; the next sweep publishes for both users
	expenses.Err = nil
	worker.Sweep(context.Background())

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.events[userA]) != 1 || len(publisher.events[userB]) != 1 {
		t.Errorf("events after recovery = %d/%d, want 1/1", len(publisher.events[userA]), len(publisher.events[userB]))
	}
}

func TestAlertWorker_StartStop(t *testing.T) {
	worker, _, _, _, _ := newWorkerFixture()

	worker.Start(context.Background())
	worker.Stop()

	// Stop again is a no-op, not a panic
	worker.Stop()
}
