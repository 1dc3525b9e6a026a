package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// RateProvider supplies a spot conversion rate between two currencies
type RateProvider interface {
	GetRate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error)
}

// AnalyticsService is the aggregation core: it reduces raw financial records
// into per-currency summaries, category breakdowns, and time-bucketed series.
// It is stateless and read-only.
type AnalyticsService struct {
	incomeReader   domain.IncomeReader
	expenseReader  domain.ExpenseReader
	categoryReader domain.CategoryReader
	depositReader  domain.DepositReader
	positionReader domain.PositionReader
	rates          RateProvider
	pair           domain.CurrencyPair
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	incomeReader domain.IncomeReader,
	expenseReader domain.ExpenseReader,
	categoryReader domain.CategoryReader,
	depositReader domain.DepositReader,
	positionReader domain.PositionReader,
	rates RateProvider,
	pair domain.CurrencyPair,
) *AnalyticsService {
	return &AnalyticsService{
		incomeReader:   incomeReader,
		expenseReader:  expenseReader,
		categoryReader: categoryReader,
		depositReader:  depositReader,
		positionReader: positionReader,
		rates:          rates,
		pair:           pair,
	}
}

// GetSummary computes per-currency income, expense, balance, savings rate and
// net worth components for a user. Income and expense sums honor the optional
// date range; deposits and positions are point-in-time holdings and ignore it.
// When target is non-nil, the other currencies' totals are folded into the
// target using the current spot rate; an unavailable rate leaves those
// currencies unfolded rather than converting at zero.
//
// The four reads run concurrently without a store snapshot; a concurrent
// write by the same user can land between them. Accepted trade-off.
func (s *AnalyticsService) GetSummary(ctx context.Context, userID uuid.UUID, rng *domain.DateRange, target *domain.Currency) (*domain.Summary, error) {
	var (
		incomes   []*domain.Income
		expenses  []*domain.Expense
		deposits  []*domain.FixedTermDeposit
		positions []*domain.InvestmentPosition
	)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	wg.Add(4)
	go func() {
		defer wg.Done()
		incomes, errs[0] = s.incomeReader.GetByUser(ctx, userID, rng)
	}()
	go func() {
		defer wg.Done()
		expenses, errs[1] = s.expenseReader.GetByUser(ctx, userID, rng)
	}()
	go func() {
		defer wg.Done()
		deposits, errs[2] = s.depositReader.GetByUser(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		positions, errs[3] = s.positionReader.GetByUser(ctx, userID)
	}()
	wg.Wait()

	// Fail-fast: any read failure fails the whole summary, never a partial one
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("summary reads: %w", err)
		}
	}

	summary := domain.NewSummary(s.pair)

	for _, in := range incomes {
		t := summary.Get(in.Currency)
		t.Income = t.Income.Add(in.Amount)
	}
	for _, ex := range expenses {
		t := summary.Get(ex.Currency)
		t.Expenses = t.Expenses.Add(ex.Amount)
	}
	for _, d := range deposits {
		t := summary.Get(d.Currency)
		t.DepositCount++
		t.DepositValue = t.DepositValue.Add(d.Value())
	}
	for _, p := range positions {
		t := summary.Get(p.InstrumentCurrency)
		t.PortfolioValue = t.PortfolioValue.Add(p.CurrentValue())
	}

	for _, t := range summary.Totals {
		finishTotals(t)
	}

	if target != nil {
		if err := s.foldInto(ctx, summary, *target); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

// finishTotals derives balance, savings rate and net worth from the summed
// fields of a single currency
func finishTotals(t *domain.CurrencyTotals) {
	t.Balance = t.Income.Sub(t.Expenses)
	if t.Income.IsPositive() {
		t.SavingsRate = t.Balance.Div(t.Income).Mul(oneHundred)
	} else {
		// Zero income means savings rate 0, never NaN or an error
		t.SavingsRate = decimal.Zero
	}
	t.NetWorth = t.Balance.Add(t.DepositValue).Add(t.PortfolioValue)
}

// foldInto converts every other currency's totals into target and zeroes the
// sources. A display transform: folding an already-folded summary again is a
// no-op because the sources are already zero and target-to-target conversion
// is skipped.
func (s *AnalyticsService) foldInto(ctx context.Context, summary *domain.Summary, target domain.Currency) error {
	dst := summary.Get(target)
	folded := false

	for cur, src := range summary.Totals {
		if cur == target {
			continue
		}

		rate, err := s.rates.GetRate(ctx, cur, target)
		if err != nil {
			if errors.Is(err, domain.ErrRateUnavailable) {
				// No rate means skip conversion for this currency, never
				// treat the rate as zero
				continue
			}
			return fmt.Errorf("fold %s into %s: %w", cur, target, err)
		}

		dst.Income = dst.Income.Add(src.Income.Mul(rate))
		dst.Expenses = dst.Expenses.Add(src.Expenses.Mul(rate))
		dst.DepositCount += src.DepositCount
		dst.DepositValue = dst.DepositValue.Add(src.DepositValue.Mul(rate))
		dst.PortfolioValue = dst.PortfolioValue.Add(src.PortfolioValue.Mul(rate))

		*src = domain.CurrencyTotals{
			Currency:       cur,
			Income:         decimal.Zero,
			Expenses:       decimal.Zero,
			Balance:        decimal.Zero,
			SavingsRate:    decimal.Zero,
			DepositValue:   decimal.Zero,
			PortfolioValue: decimal.Zero,
			NetWorth:       decimal.Zero,
		}
		folded = true
	}

	finishTotals(dst)
	if folded {
		summary.FoldedInto = &target
	}
	return nil
}

// GetExpensesByCategory groups expenses by category over the optional range.
// Expenses without a category are dropped from both the rows and the
// percentage base (observed product behavior, kept as-is). Rows sort by total
// descending; ties keep input order.
func (s *AnalyticsService) GetExpensesByCategory(ctx context.Context, userID uuid.UUID, rng *domain.DateRange) ([]domain.CategoryBreakdown, error) {
	expenses, err := s.expenseReader.GetByUser(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("read expenses: %w", err)
	}
	categories, err := s.categoryReader.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	rows := make([]domain.CategoryBreakdown, 0)
	index := make(map[uuid.UUID]int)
	grand := decimal.Zero

	for _, ex := range expenses {
		if ex.CategoryID == nil {
			continue
		}
		catID := *ex.CategoryID
		i, ok := index[catID]
		if !ok {
			i = len(rows)
			index[catID] = i
			rows = append(rows, domain.CategoryBreakdown{
				CategoryID:   catID,
				CategoryName: names[catID],
				Total:        decimal.Zero,
			})
		}
		rows[i].Total = rows[i].Total.Add(ex.Amount)
		grand = grand.Add(ex.Amount)
	}

	for i := range rows {
		if grand.IsPositive() {
			rows[i].Percentage = rows[i].Total.Div(grand).Mul(oneHundred).Round(2)
		} else {
			rows[i].Percentage = decimal.Zero
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})

	return rows, nil
}

// GetIncomeVsExpense buckets incomes and expenses by calendar day. A day with
// only one record kind still appears with the other field at zero; days with
// no records produce no bucket.
func (s *AnalyticsService) GetIncomeVsExpense(ctx context.Context, userID uuid.UUID, rng *domain.DateRange) ([]domain.DailyFlow, error) {
	incomes, err := s.incomeReader.GetByUser(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("read incomes: %w", err)
	}
	expenses, err := s.expenseReader.GetByUser(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("read expenses: %w", err)
	}

	flows := make(map[int64]*domain.DailyFlow)
	for _, in := range incomes {
		day := util.DayOf(in.Date)
		f, ok := flows[day.Unix()]
		if !ok {
			f = &domain.DailyFlow{Date: day, Income: decimal.Zero, Expense: decimal.Zero}
			flows[day.Unix()] = f
		}
		f.Income = f.Income.Add(in.Amount)
	}
	for _, ex := range expenses {
		day := util.DayOf(ex.Date)
		f, ok := flows[day.Unix()]
		if !ok {
			f = &domain.DailyFlow{Date: day, Income: decimal.Zero, Expense: decimal.Zero}
			flows[day.Unix()] = f
		}
		f.Expense = f.Expense.Add(ex.Amount)
	}

	out := make([]domain.DailyFlow, 0, len(flows))
	for _, f := range flows {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out, nil
}

// GetCashFlow buckets incomes and expenses by "YYYY-MM" month key, with a
// per-bucket balance
func (s *AnalyticsService) GetCashFlow(ctx context.Context, userID uuid.UUID, rng *domain.DateRange) ([]domain.MonthlyFlow, error) {
	incomes, err := s.incomeReader.GetByUser(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("read incomes: %w", err)
	}
	expenses, err := s.expenseReader.GetByUser(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("read expenses: %w", err)
	}

	flows := make(map[string]*domain.MonthlyFlow)
	for _, in := range incomes {
		key := util.MonthKey(in.Date)
		f, ok := flows[key]
		if !ok {
			f = &domain.MonthlyFlow{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			flows[key] = f
		}
		f.Income = f.Income.Add(in.Amount)
	}
	for _, ex := range expenses {
		key := util.MonthKey(ex.Date)
		f, ok := flows[key]
		if !ok {
			f = &domain.MonthlyFlow{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			flows[key] = f
		}
		f.Expense = f.Expense.Add(ex.Amount)
	}

	out := make([]domain.MonthlyFlow, 0, len(flows))
	for _, f := range flows {
		f.Balance = f.Income.Sub(f.Expense)
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	return out, nil
}
