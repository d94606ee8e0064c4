package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain"
)

// weekdayLabels are the short Spanish day names for the 7-day chart,
// indexed by time.Weekday (Sunday first).
var weekdayLabels = [7]string{"dom", "lun", "mar", "mie", "jue", "vie", "sab"}

// SalesService records completed sales and aggregates the ledger for the
// dashboard: today / current week / current month totals plus a last-7-days
// series.
type SalesService struct {
	repo domain.SalesRepository
	now  func() time.Time
}

// NewSalesService creates a new sales service with dependencies
func NewSalesService(repo domain.SalesRepository) *SalesService {
	return &SalesService{repo: repo, now: time.Now}
}

// RegisterInvoice records a parsed invoice as a completed sale.
func (s *SalesService) RegisterInvoice(ctx context.Context, invoice domain.Invoice) (domain.Sale, error) {
	if invoice.TotalItems == 0 || len(invoice.Items) == 0 {
		return domain.Sale{}, fmt.Errorf("%w: invoice has no items", domain.ErrInvalidRequest)
	}

	now := s.now()
	sale := domain.Sale{
		ID:        uuid.New().String(),
		Date:      now.Format(time.RFC3339),
		Timestamp: now.Unix(),
		Items:     invoice.Items,
		Total:     invoice.GrandTotal,
	}
	if err := s.repo.AddSale(ctx, &sale); err != nil {
		return domain.Sale{}, fmt.Errorf("recording sale: %w", err)
	}
	return sale, nil
}

// RegisterManual records a quick amount punched in without an invoice.
func (s *SalesService) RegisterManual(ctx context.Context, amount decimal.Decimal, note string) (domain.Sale, error) {
	if !amount.IsPositive() {
		return domain.Sale{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidRequest)
	}
	if note == "" {
		note = "Venta manual"
	}

	now := s.now()
	sale := domain.Sale{
		ID:        uuid.New().String(),
		Date:      now.Format(time.RFC3339),
		Timestamp: now.Unix(),
		Total:     amount.Round(2),
		Note:      note,
	}
	if err := s.repo.AddSale(ctx, &sale); err != nil {
		return domain.Sale{}, fmt.Errorf("recording sale: %w", err)
	}
	return sale, nil
}

// Recent returns today's sales, newest first.
func (s *SalesService) Recent(ctx context.Context) ([]domain.Sale, error) {
	now := s.now()
	return s.repo.SalesBetween(ctx, startOfDay(now).Unix(), now.Unix())
}

// Summary aggregates the ledger for the dashboard. One storage read covers
// the widest window (current month or last 7 days, whichever starts
// earlier); bucketing happens in memory.
func (s *SalesService) Summary(ctx context.Context) (*domain.SalesSummary, error) {
	now := s.now()

	dayStart := startOfDay(now)
	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	chartStart := startOfDay(now.AddDate(0, 0, -6))

	from := monthStart
	if chartStart.Before(from) {
		from = chartStart
	}

	sales, err := s.repo.SalesBetween(ctx, from.Unix(), now.Unix())
	if err != nil {
		return nil, fmt.Errorf("loading sales: %w", err)
	}

	summary := &domain.SalesSummary{
		TodayTotal: decimal.Zero,
		WeekTotal:  decimal.Zero,
		MonthTotal: decimal.Zero,
	}
	dailyTotals := make([]decimal.Decimal, 7)
	for i := range dailyTotals {
		dailyTotals[i] = decimal.Zero
	}

	for _, sale := range sales {
		at := time.Unix(sale.Timestamp, 0).In(now.Location())
		if !at.Before(dayStart) {
			summary.TodayTotal = summary.TodayTotal.Add(sale.Total)
		}
		if !at.Before(weekStart) {
			summary.WeekTotal = summary.WeekTotal.Add(sale.Total)
		}
		if !at.Before(monthStart) {
			summary.MonthTotal = summary.MonthTotal.Add(sale.Total)
		}
		if !at.Before(chartStart) {
			day := int(startOfDay(at).Sub(chartStart).Hours() / 24)
			if day >= 0 && day < 7 {
				dailyTotals[day] = dailyTotals[day].Add(sale.Total)
			}
		}
	}

	maxDaily := decimal.Zero
	for _, total := range dailyTotals {
		if total.GreaterThan(maxDaily) {
			maxDaily = total
		}
	}

	summary.Weekly = make([]domain.DailyTotal, 7)
	for i := 0; i < 7; i++ {
		day := chartStart.AddDate(0, 0, i)
		height := 0
		if maxDaily.IsPositive() {
			height = int(dailyTotals[i].Div(maxDaily).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}
		summary.Weekly[i] = domain.DailyTotal{
			Day:    weekdayLabels[day.Weekday()],
			Total:  dailyTotals[i],
			Height: height,
		}
	}

	return summary, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday 00:00 of t's week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}
