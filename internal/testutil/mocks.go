package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockIncomeReader is an in-memory implementation of domain.IncomeReader
type MockIncomeReader struct {
	mu      sync.Mutex
	incomes []*domain.Income
	Err     error
}

func NewMockIncomeReader() *MockIncomeReader {
	return &MockIncomeReader{}
}

func (m *MockIncomeReader) AddIncome(income *domain.Income) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.incomes = append(m.incomes, income)
}

func (m *MockIncomeReader) GetByUser(_ context.Context, userID uuid.UUID, rng *domain.DateRange) ([]*domain.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Income
	for _, in := range m.incomes {
		if in.UserID == userID && rng.Contains(in.Date) {
			out = append(out, in)
		}
	}
	return out, nil
}

// MockExpenseReader is an in-memory implementation of domain.ExpenseReader
type MockExpenseReader struct {
	mu       sync.Mutex
	expenses []*domain.Expense
	Err      error
}

func NewMockExpenseReader() *MockExpenseReader {
	return &MockExpenseReader{}
}

func (m *MockExpenseReader) AddExpense(expense *domain.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses = append(m.expenses, expense)
}

func (m *MockExpenseReader) GetByUser(_ context.Context, userID uuid.UUID, rng *domain.DateRange) ([]*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Expense
	for _, ex := range m.expenses {
		if ex.UserID == userID && rng.Contains(ex.Date) {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (m *MockExpenseReader) SumByCategory(_ context.Context, userID, categoryID uuid.UUID, currency domain.Currency, from, to time.Time) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return decimal.Zero, m.Err
	}
	rng := &domain.DateRange{From: from, To: to}
	total := decimal.Zero
	for _, ex := range m.expenses {
		if ex.UserID != userID || ex.Currency != currency || !rng.Contains(ex.Date) {
			continue
		}
		if ex.CategoryID == nil || *ex.CategoryID != categoryID {
			continue
		}
		total = total.Add(ex.Amount)
	}
	return total, nil
}

func (m *MockExpenseReader) SumTagged(_ context.Context, userID uuid.UUID, tagKey string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return decimal.Zero, m.Err
	}
	total := decimal.Zero
	for _, ex := range m.expenses {
		if ex.UserID != userID {
			continue
		}
		for _, tag := range ex.Tags {
			if tag == tagKey {
				total = total.Add(ex.Amount)
				break
			}
		}
	}
	return total, nil
}

// MockCategoryReader is an in-memory implementation of domain.CategoryReader
type MockCategoryReader struct {
	mu         sync.Mutex
	categories []*domain.Category
	Err        error
}

func NewMockCategoryReader() *MockCategoryReader {
	return &MockCategoryReader{}
}

func (m *MockCategoryReader) AddCategory(category *domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = append(m.categories, category)
}

func (m *MockCategoryReader) GetByUser(_ context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// MockDepositReader is an in-memory implementation of domain.DepositReader
type MockDepositReader struct {
	mu       sync.Mutex
	deposits []*domain.FixedTermDeposit
	Err      error
}

func NewMockDepositReader() *MockDepositReader {
	return &MockDepositReader{}
}

func (m *MockDepositReader) AddDeposit(deposit *domain.FixedTermDeposit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits = append(m.deposits, deposit)
}

func (m *MockDepositReader) GetByUser(_ context.Context, userID uuid.UUID) ([]*domain.FixedTermDeposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.FixedTermDeposit
	for _, d := range m.deposits {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

// MockPositionReader is an in-memory implementation of domain.PositionReader
type MockPositionReader struct {
	mu        sync.Mutex
	positions []*domain.InvestmentPosition
	Err       error
}

func NewMockPositionReader() *MockPositionReader {
	return &MockPositionReader{}
}

func (m *MockPositionReader) AddPosition(position *domain.InvestmentPosition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = append(m.positions, position)
}

func (m *MockPositionReader) GetByUser(_ context.Context, userID uuid.UUID) ([]*domain.InvestmentPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.InvestmentPosition
	for _, p := range m.positions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// MockBudgetReader is an in-memory implementation of domain.BudgetReader
type MockBudgetReader struct {
	mu      sync.Mutex
	budgets []*domain.Budget
	Err     error
}

func NewMockBudgetReader() *MockBudgetReader {
	return &MockBudgetReader{}
}

func (m *MockBudgetReader) AddBudget(budget *domain.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgets = append(m.budgets, budget)
}

func (m *MockBudgetReader) GetByUser(_ context.Context, userID uuid.UUID, window *domain.DateRange) ([]*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Budget
	for _, b := range m.budgets {
		if b.UserID == userID && window.Overlaps(b.PeriodStart, b.PeriodEnd) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MockBudgetReader) GetByID(_ context.Context, userID, id uuid.UUID) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, b := range m.budgets {
		if b.UserID == userID && b.ID == id {
			return b, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// MockGoalReader is an in-memory implementation of domain.GoalReader
type MockGoalReader struct {
	mu    sync.Mutex
	goals []*domain.Goal
	Err   error
}

func NewMockGoalReader() *MockGoalReader {
	return &MockGoalReader{}
}

func (m *MockGoalReader) AddGoal(goal *domain.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals = append(m.goals, goal)
}

func (m *MockGoalReader) GetByUser(_ context.Context, userID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Goal
	for _, g := range m.goals {
		if g.UserID != userID {
			continue
		}
		if status != nil && g.Status != *status {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (m *MockGoalReader) GetByID(_ context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, g := range m.goals {
		if g.UserID == userID && g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

// MockRateProvider returns canned rates keyed by "FROM/TO", or
// domain.ErrRateUnavailable when Unavailable is set
type MockRateProvider struct {
	mu          sync.Mutex
	rates       map[string]decimal.Decimal
	Unavailable bool
	Calls       int
}

func NewMockRateProvider() *MockRateProvider {
	return &MockRateProvider{rates: make(map[string]decimal.Decimal)}
}

func (m *MockRateProvider) SetRate(from, to domain.Currency, rate decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[string(from)+"/"+string(to)] = rate
}

func (m *MockRateProvider) GetRate(_ context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if m.Unavailable {
		return decimal.Zero, domain.ErrRateUnavailable
	}
	if r, ok := m.rates[string(from)+"/"+string(to)]; ok {
		return r, nil
	}
	return decimal.Zero, domain.ErrRateUnavailable
}
