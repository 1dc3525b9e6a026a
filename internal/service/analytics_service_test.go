package service

import (
	"context"
	"testing"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newAnalyticsFixture() (*AnalyticsService, *testutil.MockIncomeReader, *testutil.MockExpenseReader, *testutil.MockCategoryReader, *testutil.MockDepositReader, *testutil.MockPositionReader, *testutil.MockRateProvider) {
	incomes := testutil.NewMockIncomeReader()
	expenses := testutil.NewMockExpenseReader()
	categories := testutil.NewMockCategoryReader()
	deposits := testutil.NewMockDepositReader()
	positions := testutil.NewMockPositionReader()
	rates := testutil.NewMockRateProvider()
	svc := NewAnalyticsService(incomes, expenses, categories, deposits, positions, rates, domain.DefaultCurrencyPair())
	return svc, incomes, expenses, categories, deposits, positions, rates
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetSummary_PerCurrencyTotals(t *testing.T) {
	svc, incomes, expenses, _, _, _, _ := newAnalyticsFixture()
	userID := uuid.New()

	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(3000), Currency: domain.CurrencyARS, Date: date(2025, time.March, 5)})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(1000), Currency: domain.CurrencyARS, Date: date(2025, time.March, 10)})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(500), Currency: domain.CurrencyUSD, Date: date(2025, time.March, 12)})

	summary, err := svc.GetSummary(context.Background(), userID, nil, nil)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	ars := summary.Totals[domain.CurrencyARS]
	if !ars.Income.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("ARS income = %s, want 3000", ars.Income)
	}
	if !ars.Expenses.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("ARS expenses = %s, want 1000", ars.Expenses)
	}
	if !ars.Balance.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("ARS balance = %s, want 2000", ars.Balance)
	}
	// 2000/3000*100
	wantRate, _ := decimal.NewFromString("66.6666666666666667")
	if ars.SavingsRate.Sub(wantRate).Abs().GreaterThan(decimal.NewFromFloat(0.0001)) {
		t.Errorf("ARS savings rate = %s, want ~66.67", ars.SavingsRate)
	}

	// USD never contaminated by ARS records
	usd := summary.Totals[domain.CurrencyUSD]
	if !usd.Income.Equal(decimal.Zero) {
		t.Errorf("USD income = %s, want 0", usd.Income)
	}
	if !usd.Expenses.Equal(decimal.NewFromInt(500)) {
		t.Errorf("USD expenses = %s, want 500", usd.Expenses)
	}
	if !usd.Balance.Equal(decimal.NewFromInt(-500)) {
		t.Errorf("USD balance = %s, want -500", usd.Balance)
	}
	if summary.FoldedInto != nil {
		t.Errorf("FoldedInto = %v, want nil", *summary.FoldedInto)
	}
}

func TestGetSummary_ZeroIncomeSavingsRate(t *testing.T) {
	svc, _, expenses, _, _, _, _ := newAnalyticsFixture()
	userID := uuid.New()

	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(750), Currency: domain.CurrencyARS, Date: date(2025, time.March, 1)})

	summary, err := svc.GetSummary(context.Background(), userID, nil, nil)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	ars := summary.Totals[domain.CurrencyARS]
	if !ars.SavingsRate.Equal(decimal.Zero) {
		t.Errorf("savings rate with zero income = %s, want 0", ars.SavingsRate)
	}
	if !ars.Balance.Equal(decimal.NewFromInt(-750)) {
		t.Errorf("balance = %s, want -750", ars.Balance)
	}
}

func TestGetSummary_EmptyMaterializesPair(t *testing.T) {
	svc, _, _, _, _, _, _ := newAnalyticsFixture()

	summary, err := svc.GetSummary(context.Background(), uuid.New(), nil, nil)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if len(summary.Totals) != 2 {
		t.Fatalf("totals entries = %d, want 2", len(summary.Totals))
	}
	for _, cur := range []domain.Currency{domain.CurrencyARS, domain.CurrencyUSD} {
		tot, ok := summary.Totals[cur]
		if !ok {
			t.Fatalf("missing %s entry", cur)
		}
		if !tot.NetWorth.Equal(decimal.Zero) {
			t.Errorf("%s net worth = %s, want 0", cur, tot.NetWorth)
		}
	}
}

func TestGetSummary_NetWorthComponents(t *testing.T) {
	svc, incomes, _, _, deposits, positions, _ := newAnalyticsFixture()
	userID := uuid.New()

	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(1000), Currency: domain.CurrencyARS, Date: date(2025, time.March, 1)})
	deposits.AddDeposit(&domain.FixedTermDeposit{
		ID: uuid.New(), UserID: userID,
		Principal: decimal.NewFromInt(50000), Currency: domain.CurrencyARS,
		InterestAmount: decimal.NewFromInt(4000),
		MaturityDate:   date(2025, time.June, 1),
	})
	latest := decimal.NewFromInt(12)
	positions.AddPosition(&domain.InvestmentPosition{
		ID: uuid.New(), UserID: userID,
		InstrumentTicker: "SPY", InstrumentCurrency: domain.CurrencyUSD,
		Quantity: decimal.NewFromInt(10), AverageBuyPrice: decimal.NewFromInt(9),
		LatestPrice: &latest,
	})

	summary, err := svc.GetSummary(context.Background(), userID, nil, nil)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	ars := summary.Totals[domain.CurrencyARS]
	if ars.DepositCount != 1 {
		t.Errorf("deposit count = %d, want 1", ars.DepositCount)
	}
	if !ars.DepositValue.Equal(decimal.NewFromInt(54000)) {
		t.Errorf("deposit value = %s, want 54000", ars.DepositValue)
	}
	// balance 1000 + deposits 54000
	if !ars.NetWorth.Equal(decimal.NewFromInt(55000)) {
		t.Errorf("ARS net worth = %s, want 55000", ars.NetWorth)
	}

	usd := summary.Totals[domain.CurrencyUSD]
	if !usd.PortfolioValue.Equal(decimal.NewFromInt(120)) {
		t.Errorf("USD portfolio value = %s, want 120", usd.PortfolioValue)
	}
}

func TestGetSummary_FoldIntoTarget(t *testing.T) {
	svc, incomes, expenses, _, _, _, rates := newAnalyticsFixture()
	userID := uuid.New()

	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(100), Currency: domain.CurrencyUSD, Date: date(2025, time.March, 1)})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(1000), Currency: domain.CurrencyARS, Date: date(2025, time.March, 2)})
	rates.SetRate(domain.CurrencyUSD, domain.CurrencyARS, decimal.NewFromInt(1000))

	target := domain.CurrencyARS
	summary, err := svc.GetSummary(context.Background(), userID, nil, &target)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	ars := summary.Totals[domain.CurrencyARS]
	if !ars.Income.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("folded income = %s, want 100000", ars.Income)
	}
	if !ars.Balance.Equal(decimal.NewFromInt(99000)) {
		t.Errorf("folded balance = %s, want 99000", ars.Balance)
	}

	usd := summary.Totals[domain.CurrencyUSD]
	if !usd.Income.Equal(decimal.Zero) || !usd.NetWorth.Equal(decimal.Zero) {
		t.Errorf("USD totals not zeroed after folding: income=%s netWorth=%s", usd.Income, usd.NetWorth)
	}
	if summary.FoldedInto == nil || *summary.FoldedInto != domain.CurrencyARS {
		t.Errorf("FoldedInto = %v, want ARS", summary.FoldedInto)
	}
}

func TestGetSummary_FoldSkipsWhenRateUnavailable(t *testing.T) {
	svc, incomes, _, _, _, _, rates := newAnalyticsFixture()
	userID := uuid.New()

	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(100), Currency: domain.CurrencyUSD, Date: date(2025, time.March, 1)})
	rates.Unavailable = true

	target := domain.CurrencyARS
	summary, err := svc.GetSummary(context.Background(), userID, nil, &target)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	// USD stays unfolded; it must never be converted at rate zero
	usd := summary.Totals[domain.CurrencyUSD]
	if !usd.Income.Equal(decimal.NewFromInt(100)) {
		t.Errorf("USD income = %s, want 100 (unfolded)", usd.Income)
	}
	ars := summary.Totals[domain.CurrencyARS]
	if !ars.Income.Equal(decimal.Zero) {
		t.Errorf("ARS income = %s, want 0", ars.Income)
	}
	if summary.FoldedInto != nil {
		t.Errorf("FoldedInto = %v, want nil when nothing folded", *summary.FoldedInto)
	}
}

func TestGetSummary_ReadFailureFailsWhole(t *testing.T) {
	svc, incomes, _, _, _, _, _ := newAnalyticsFixture()
	incomes.Err = context.DeadlineExceeded

	if _, err := svc.GetSummary(context.Background(), uuid.New(), nil, nil); err == nil {
		t.Fatal("GetSummary() error = nil, want read failure")
	}
}

func TestGetExpensesByCategory(t *testing.T) {
	svc, _, expenses, categories, _, _, _ := newAnalyticsFixture()
	userID := uuid.New()
	foodID := uuid.New()
	rentID := uuid.New()

	categories.AddCategory(&domain.Category{ID: foodID, UserID: userID, Name: "Food", Type: domain.CategoryTypeExpense})
	categories.AddCategory(&domain.Category{ID: rentID, UserID: userID, Name: "Rent", Type: domain.CategoryTypeExpense})

	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &foodID, Amount: decimal.NewFromInt(250), Currency: domain.CurrencyARS, Date: date(2025, time.March, 3)})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, CategoryID: &rentID, Amount: decimal.NewFromInt(750), Currency: domain.CurrencyARS, Date: date(2025, time.March, 4)})
	// Uncategorized expense dropped from rows and from the percentage base
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(9999), Currency: domain.CurrencyARS, Date: date(2025, time.March, 5)})

	rows, err := svc.GetExpensesByCategory(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("GetExpensesByCategory() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// Sorted descending by total
	if rows[0].CategoryName != "Rent" {
		t.Errorf("rows[0] = %s, want Rent", rows[0].CategoryName)
	}
	if !rows[0].Percentage.Equal(decimal.NewFromInt(75)) {
		t.Errorf("Rent percentage = %s, want 75", rows[0].Percentage)
	}
	if !rows[1].Percentage.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Food percentage = %s, want 25", rows[1].Percentage)
	}
}

func TestGetExpensesByCategory_Empty(t *testing.T) {
	svc, _, _, _, _, _, _ := newAnalyticsFixture()

	rows, err := svc.GetExpensesByCategory(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("GetExpensesByCategory() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}

func TestGetIncomeVsExpense_DailyBuckets(t *testing.T) {
	svc, incomes, expenses, _, _, _, _ := newAnalyticsFixture()
	userID := uuid.New()

	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(500), Currency: domain.CurrencyARS, Date: date(2025, time.March, 1)})
	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(300), Currency: domain.CurrencyARS, Date: date(2025, time.March, 1)})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(200), Currency: domain.CurrencyARS, Date: date(2025, time.March, 3)})

	flows, err := svc.GetIncomeVsExpense(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("GetIncomeVsExpense() error = %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("buckets = %d, want 2", len(flows))
	}

	if !flows[0].Date.Equal(date(2025, time.March, 1)) {
		t.Errorf("flows[0].Date = %s, want 2025-03-01", flows[0].Date)
	}
	if !flows[0].Income.Equal(decimal.NewFromInt(800)) {
		t.Errorf("flows[0].Income = %s, want 800", flows[0].Income)
	}
	if !flows[0].Expense.Equal(decimal.Zero) {
		t.Errorf("flows[0].Expense = %s, want 0", flows[0].Expense)
	}
	if !flows[1].Expense.Equal(decimal.NewFromInt(200)) {
		t.Errorf("flows[1].Expense = %s, want 200", flows[1].Expense)
	}
}

func TestGetCashFlow_MonthlyBuckets(t *testing.T) {
	svc, incomes, expenses, _, _, _, _ := newAnalyticsFixture()
	userID := uuid.New()

	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(1000), Currency: domain.CurrencyARS, Date: date(2025, time.January, 15)})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(400), Currency: domain.CurrencyARS, Date: date(2025, time.January, 20)})
	expenses.AddExpense(&domain.Expense{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(100), Currency: domain.CurrencyARS, Date: date(2025, time.February, 2)})

	flows, err := svc.GetCashFlow(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("GetCashFlow() error = %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("buckets = %d, want 2", len(flows))
	}

	if flows[0].Month != "2025-01" {
		t.Errorf("flows[0].Month = %s, want 2025-01", flows[0].Month)
	}
	if !flows[0].Balance.Equal(decimal.NewFromInt(600)) {
		t.Errorf("2025-01 balance = %s, want 600", flows[0].Balance)
	}
	if flows[1].Month != "2025-02" {
		t.Errorf("flows[1].Month = %s, want 2025-02", flows[1].Month)
	}
	if !flows[1].Balance.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("2025-02 balance = %s, want -100", flows[1].Balance)
	}
}

func TestGetSummary_DateRangeFiltersFlows(t *testing.T) {
	svc, incomes, _, _, deposits, _, _ := newAnalyticsFixture()
	userID := uuid.New()

	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(100), Currency: domain.CurrencyARS, Date: date(2025, time.January, 10)})
	incomes.AddIncome(&domain.Income{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(200), Currency: domain.CurrencyARS, Date: date(2025, time.March, 10)})
	// Holdings ignore the range
	deposits.AddDeposit(&domain.FixedTermDeposit{ID: uuid.New(), UserID: userID, Principal: decimal.NewFromInt(1000), Currency: domain.CurrencyARS, MaturityDate: date(2024, time.December, 1)})

	rng := &domain.DateRange{From: date(2025, time.March, 1), To: date(2025, time.March, 31)}
	summary, err := svc.GetSummary(context.Background(), userID, rng, nil)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	ars := summary.Totals[domain.CurrencyARS]
	if !ars.Income.Equal(decimal.NewFromInt(200)) {
		t.Errorf("income = %s, want 200 (range filtered)", ars.Income)
	}
	if ars.DepositCount != 1 {
		t.Errorf("deposit count = %d, want 1 (holdings ignore range)", ars.DepositCount)
	}
}
