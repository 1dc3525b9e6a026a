package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertService evaluates the three early-warning rules: month-over-month
// spending increases, savings-rate health, and upcoming deposit maturities.
// Rules are independent; none suppresses another. Alerts carry no identity
// and are recomputed fully on every call.
type AlertService struct {
	incomeReader   domain.IncomeReader
	expenseReader  domain.ExpenseReader
	categoryReader domain.CategoryReader
	depositReader  domain.DepositReader
}

// NewAlertService creates a new AlertService
func NewAlertService(
	incomeReader domain.IncomeReader,
	expenseReader domain.ExpenseReader,
	categoryReader domain.CategoryReader,
	depositReader domain.DepositReader,
) *AlertService {
	return &AlertService{
		incomeReader:   incomeReader,
		expenseReader:  expenseReader,
		categoryReader: categoryReader,
		depositReader:  depositReader,
	}
}

// GetAlerts computes the full alert set for a user as of now
func (s *AlertService) GetAlerts(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Alert, error) {
	curStart, curEnd := util.MonthBounds(now.Year(), int(now.Month()))
	prevYear, prevMonth := util.PreviousMonth(now.Year(), int(now.Month()))
	prevStart, prevEnd := util.MonthBounds(prevYear, prevMonth)

	var (
		curExpenses  []*domain.Expense
		prevExpenses []*domain.Expense
		curIncomes   []*domain.Income
		deposits     []*domain.FixedTermDeposit
	)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	wg.Add(4)
	go func() {
		defer wg.Done()
		curExpenses, errs[0] = s.expenseReader.GetByUser(ctx, userID, &domain.DateRange{From: curStart, To: curEnd})
	}()
	go func() {
		defer wg.Done()
		prevExpenses, errs[1] = s.expenseReader.GetByUser(ctx, userID, &domain.DateRange{From: prevStart, To: prevEnd})
	}()
	go func() {
		defer wg.Done()
		curIncomes, errs[2] = s.incomeReader.GetByUser(ctx, userID, &domain.DateRange{From: curStart, To: curEnd})
	}()
	go func() {
		defer wg.Done()
		deposits, errs[3] = s.depositReader.GetByUser(ctx, userID)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("alert reads: %w", err)
		}
	}

	alerts := make([]domain.Alert, 0)

	spending, err := s.spendingIncreaseAlerts(ctx, userID, curExpenses, prevExpenses)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, spending...)
	alerts = append(alerts, savingsRateAlerts(curIncomes, curExpenses)...)
	alerts = append(alerts, maturityAlerts(deposits, now)...)

	return alerts, nil
}

// spendingIncreaseAlerts compares each category's current-month spend to the
// prior month. Amounts are summed as raw numbers regardless of currency; the
// absolute floor is read in primary currency units. Preserved naive behavior.
func (s *AlertService) spendingIncreaseAlerts(ctx context.Context, userID uuid.UUID, current, previous []*domain.Expense) ([]domain.Alert, error) {
	curByCat := sumByCategory(current)
	prevByCat := sumByCategory(previous)

	categories, err := s.categoryReader.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	catIDs := make([]uuid.UUID, 0, len(curByCat))
	for id := range curByCat {
		catIDs = append(catIDs, id)
	}
	// Stable output order across calls
	sort.Slice(catIDs, func(i, j int) bool { return catIDs[i].String() < catIDs[j].String() })

	alerts := make([]domain.Alert, 0)
	for _, id := range catIDs {
		cur := curByCat[id]
		prev, ok := prevByCat[id]
		if !ok || !prev.IsPositive() {
			continue
		}
		if cur.LessThan(prev.Mul(domain.SpendingIncreaseRatio)) {
			continue
		}
		if !cur.GreaterThan(domain.SpendingIncreaseMinAmount) {
			continue
		}

		increase := cur.Sub(prev).Div(prev).Mul(oneHundred)
		severity := domain.AlertSeverityWarning
		if increase.GreaterThanOrEqual(domain.SpendingIncreaseDangerPercent) {
			severity = domain.AlertSeverityDanger
		}

		name := names[id]
		if name == "" {
			name = "a category"
		}
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertTypeSpendingIncrease,
			Severity: severity,
			Message:  fmt.Sprintf("Spending on %s is up %s%% versus last month", name, increase.StringFixed(0)),
		})
	}

	return alerts, nil
}

func sumByCategory(expenses []*domain.Expense) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, ex := range expenses {
		if ex.CategoryID == nil {
			continue
		}
		out[*ex.CategoryID] = out[*ex.CategoryID].Add(ex.Amount)
	}
	return out
}

// savingsRateAlerts checks the current month's combined savings rate. Unlike
// the summary, this rule sums both currencies as raw numbers. Preserved naive
// behavior.
func savingsRateAlerts(incomes []*domain.Income, expenses []*domain.Expense) []domain.Alert {
	income := decimal.Zero
	for _, in := range incomes {
		income = income.Add(in.Amount)
	}
	spent := decimal.Zero
	for _, ex := range expenses {
		spent = spent.Add(ex.Amount)
	}

	if !income.IsPositive() {
		// Savings rate is defined as 0 with no income; nothing to flag
		return nil
	}

	rate := income.Sub(spent).Div(income).Mul(oneHundred)
	switch {
	case rate.IsNegative():
		return []domain.Alert{{
			Type:     domain.AlertTypeSavingsRate,
			Severity: domain.AlertSeverityDanger,
			Message:  "You are spending more than you earn this month",
		}}
	case rate.LessThan(domain.SavingsRateWarnBelow) && income.GreaterThan(domain.SavingsRateMinIncome):
		return []domain.Alert{{
			Type:     domain.AlertTypeSavingsRate,
			Severity: domain.AlertSeverityWarning,
			Message:  fmt.Sprintf("Your savings rate this month is only %s%%", rate.StringFixed(1)),
		}}
	}
	return nil
}

// maturityAlerts flags deposits maturing within the next 7 days (inclusive);
// within 3 days the severity escalates from info to warning
func maturityAlerts(deposits []*domain.FixedTermDeposit, now time.Time) []domain.Alert {
	alerts := make([]domain.Alert, 0)
	for _, d := range deposits {
		days := util.DaysUntil(now, d.MaturityDate)
		if days < 0 || days > domain.DepositMaturityWindowDays {
			continue
		}

		severity := domain.AlertSeverityInfo
		if days <= domain.DepositMaturityUrgentDays {
			severity = domain.AlertSeverityWarning
		}

		var message string
		switch days {
		case 0:
			message = fmt.Sprintf("A fixed-term deposit of %s %s matures today", d.Principal.StringFixed(2), d.Currency)
		case 1:
			message = fmt.Sprintf("A fixed-term deposit of %s %s matures tomorrow", d.Principal.StringFixed(2), d.Currency)
		default:
			message = fmt.Sprintf("A fixed-term deposit of %s %s matures in %d days", d.Principal.StringFixed(2), d.Currency, days)
		}

		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertTypeDepositMaturity,
			Severity: severity,
			Message:  message,
		})
	}
	return alerts
}
