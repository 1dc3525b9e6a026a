package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newBudgetFixture() (*BudgetService, *testutil.MockBudgetReader, *testutil.MockExpenseReader) {
	budgets := testutil.NewMockBudgetReader()
	expenses := testutil.NewMockExpenseReader()
	return NewBudgetService(budgets, expenses), budgets, expenses
}

func addBudget(budgets *testutil.MockBudgetReader, userID, categoryID uuid.UUID, amount int64, start, end time.Time) *domain.Budget {
	b := &domain.Budget{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      decimal.NewFromInt(amount),
		Currency:    domain.CurrencyARS,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	budgets.AddBudget(b)
	return b
}

func TestBudgetProgress_Percentage(t *testing.T) {
	svc, budgets, expenses := newBudgetFixture()
	userID := uuid.New()
	categoryID := uuid.New()

	b := addBudget(budgets, userID, categoryID, 1000, date(2025, time.March, 1), date(2025, time.March, 31))
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &categoryID, Amount: decimal.NewFromInt(450), Currency: domain.CurrencyARS, Date: date(2025, time.March, 10)})

	progress, err := svc.GetByID(context.Background(), userID, b.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !progress.Spent.Equal(decimal.NewFromInt(450)) {
		t.Errorf("spent = %s, want 450", progress.Spent)
	}
	if !progress.Remaining.Equal(decimal.NewFromInt(550)) {
		t.Errorf("remaining = %s, want 550", progress.Remaining)
	}
	if !progress.Percentage.Equal(decimal.NewFromInt(45)) {
		t.Errorf("percentage = %s, want 45", progress.Percentage)
	}
	if progress.NearLimit() || progress.Exceeded() {
		t.Error("45% budget should be neither near limit nor exceeded")
	}
}

func TestBudgetProgress_NeverClamped(t *testing.T) {
	svc, budgets, expenses := newBudgetFixture()
	userID := uuid.New()
	categoryID := uuid.New()

	b := addBudget(budgets, userID, categoryID, 1000, date(2025, time.March, 1), date(2025, time.March, 31))
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &categoryID, Amount: decimal.NewFromInt(1500), Currency: domain.CurrencyARS, Date: date(2025, time.March, 10)})

	progress, err := svc.GetByID(context.Background(), userID, b.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !progress.Percentage.Equal(decimal.NewFromInt(150)) {
		t.Errorf("percentage = %s, want 150 (unclamped)", progress.Percentage)
	}
	if !progress.Remaining.Equal(decimal.NewFromInt(-500)) {
		t.Errorf("remaining = %s, want -500", progress.Remaining)
	}
	if !progress.Exceeded() {
		t.Error("150% budget should report exceeded")
	}
}

func TestBudgetProgress_ZeroAmount(t *testing.T) {
	svc, budgets, expenses := newBudgetFixture()
	userID := uuid.New()
	categoryID := uuid.New()

	b := addBudget(budgets, userID, categoryID, 0, date(2025, time.March, 1), date(2025, time.March, 31))
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &categoryID, Amount: decimal.NewFromInt(100), Currency: domain.CurrencyARS, Date: date(2025, time.March, 10)})

	progress, err := svc.GetByID(context.Background(), userID, b.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !progress.Percentage.Equal(decimal.Zero) {
		t.Errorf("zero-amount percentage = %s, want 0", progress.Percentage)
	}
}

func TestBudgetProgress_SpentIgnoresOtherCurrencyAndPeriod(t *testing.T) {
	svc, budgets, expenses := newBudgetFixture()
	userID := uuid.New()
	categoryID := uuid.New()

	b := addBudget(budgets, userID, categoryID, 1000, date(2025, time.March, 1), date(2025, time.March, 31))
	// Different currency
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &categoryID, Amount: decimal.NewFromInt(100), Currency: domain.CurrencyUSD, Date: date(2025, time.March, 10)})
	// Outside the budget period
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &categoryID, Amount: decimal.NewFromInt(100), Currency: domain.CurrencyARS, Date: date(2025, time.April, 1)})

	progress, err := svc.GetByID(context.Background(), userID, b.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !progress.Spent.Equal(decimal.Zero) {
		t.Errorf("spent = %s, want 0", progress.Spent)
	}
}

func TestBudgetGetByID_NotFound(t *testing.T) {
	svc, _, _ := newBudgetFixture()

	_, err := svc.GetByID(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("error = %v, want ErrBudgetNotFound", err)
	}
}

func TestBudgetGetAll_WindowOverlap(t *testing.T) {
	svc, budgets, _ := newBudgetFixture()
	userID := uuid.New()

	addBudget(budgets, userID, uuid.New(), 1000, date(2025, time.March, 1), date(2025, time.March, 31))
	addBudget(budgets, userID, uuid.New(), 2000, date(2025, time.May, 1), date(2025, time.May, 31))

	window := &domain.DateRange{From: date(2025, time.March, 15), To: date(2025, time.April, 15)}
	all, err := svc.GetAll(context.Background(), userID, window)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("budgets in window = %d, want 1", len(all))
	}
	if !all[0].Budget.Amount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("wrong budget matched window: amount = %s", all[0].Budget.Amount)
	}
}

func TestBudgetGetSummary(t *testing.T) {
	svc, budgets, expenses := newBudgetFixture()
	userID := uuid.New()
	groceriesID := uuid.New()
	diningID := uuid.New()
	transportID := uuid.New()

	addBudget(budgets, userID, groceriesID, 1000, date(2025, time.March, 1), date(2025, time.March, 31))
	addBudget(budgets, userID, diningID, 1000, date(2025, time.March, 1), date(2025, time.March, 31))
	addBudget(budgets, userID, transportID, 1000, date(2025, time.March, 1), date(2025, time.March, 31))

	// 80% -> near limit; 120% -> exceeded; 10% -> neither
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &groceriesID, Amount: decimal.NewFromInt(800), Currency: domain.CurrencyARS, Date: date(2025, time.March, 5)})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &diningID, Amount: decimal.NewFromInt(1200), Currency: domain.CurrencyARS, Date: date(2025, time.March, 6)})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &transportID, Amount: decimal.NewFromInt(100), Currency: domain.CurrencyARS, Date: date(2025, time.March, 7)})

	summary, err := svc.GetSummary(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if !summary.TotalBudget.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("total budget = %s, want 3000", summary.TotalBudget)
	}
	if !summary.TotalSpent.Equal(decimal.NewFromInt(2100)) {
		t.Errorf("total spent = %s, want 2100", summary.TotalSpent)
	}
	if !summary.TotalRemaining.Equal(decimal.NewFromInt(900)) {
		t.Errorf("total remaining = %s, want 900", summary.TotalRemaining)
	}
	if !summary.Percentage.Equal(decimal.NewFromInt(70)) {
		t.Errorf("percentage = %s, want 70", summary.Percentage)
	}
	if summary.NearLimitCount != 1 {
		t.Errorf("near limit count = %d, want 1", summary.NearLimitCount)
	}
	if summary.ExceededCount != 1 {
		t.Errorf("exceeded count = %d, want 1", summary.ExceededCount)
	}
}
