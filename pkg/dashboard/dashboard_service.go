package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/google/uuid"
)

const topDishLimit = 10

// Mailer matches mailing.SendMail so the summary email can be faked in
// tests.
type Mailer func(toEmail string, subject string, body string) error

type (
	DashboardService interface {
		GetDashboard(ctx context.Context, day time.Time) (*domain.DashboardResponse, error)
		EmailDailySummary(ctx context.Context, day time.Time) error
	}

	dashboardService struct {
		dashboardRepository DashboardRepository
		mailer              Mailer
		adminEmail          string
	}
)

func NewDashboardService(dashboardRepository DashboardRepository, mailer Mailer, adminEmail string) DashboardService {
	return &dashboardService{
		dashboardRepository: dashboardRepository,
		mailer:              mailer,
		adminEmail:          adminEmail,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, day time.Time) (*domain.DashboardResponse, error) {
	daily, err := s.dailySummary(ctx, day)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	monthOrders, err := s.dashboardRepository.FindByDateRange(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	// Monthly totals are computed over paid orders only.
	monthly := domain.MonthlySummary{
		Month: int(day.Month()),
		Year:  day.Year(),
	}
	for _, o := range monthOrders {
		if !o.PaymentStatus {
			continue
		}
		monthly.OrderCount++
		monthly.TotalRevenue += o.TotalAmount
	}

	return &domain.DashboardResponse{Daily: *daily, Monthly: monthly}, nil
}

func (s *dashboardService) dailySummary(ctx context.Context, day time.Time) (*domain.DailySummary, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	orders, err := s.dashboardRepository.FindByDateRange(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	summary := &domain.DailySummary{
		Date:      dayStart.Format("2006-01-02"),
		TopDishes: []domain.TopDish{},
	}

	// Dishes are keyed by item identity, not display name: two distinct
	// catalog entries may share a name.
	dishes := map[uuid.UUID]*domain.TopDish{}
	for _, o := range orders {
		summary.OrderCount++
		if o.PaymentStatus {
			summary.PaidOrders++
			summary.TotalRevenue += o.TotalAmount
		}
		for _, item := range o.Items {
			dish, ok := dishes[item.MenuItemID]
			if !ok {
				dish = &domain.TopDish{Name: item.Name}
				dishes[item.MenuItemID] = dish
			}
			dish.Count += item.Quantity
			if o.PaymentStatus {
				dish.Revenue += item.Price * float64(item.Quantity)
			}
		}
	}

	for _, dish := range dishes {
		summary.TopDishes = append(summary.TopDishes, *dish)
	}
	sort.Slice(summary.TopDishes, func(i, j int) bool {
		if summary.TopDishes[i].Count != summary.TopDishes[j].Count {
			return summary.TopDishes[i].Count > summary.TopDishes[j].Count
		}
		return summary.TopDishes[i].Name < summary.TopDishes[j].Name
	})
	if len(summary.TopDishes) > topDishLimit {
		summary.TopDishes = summary.TopDishes[:topDishLimit]
	}

	return summary, nil
}

func (s *dashboardService) EmailDailySummary(ctx context.Context, day time.Time) error {
	summary, err := s.dailySummary(ctx, day)
	if err != nil {
		return err
	}

	var body strings.Builder
	fmt.Fprintf(&body, "<h2>Daily Summary %s</h2>", summary.Date)
	fmt.Fprintf(&body, "<p>Orders: %d (paid: %d)</p>", summary.OrderCount, summary.PaidOrders)
	fmt.Fprintf(&body, "<p>Revenue: &#8377;%.2f</p>", summary.TotalRevenue)
	if len(summary.TopDishes) > 0 {
		body.WriteString("<h3>Top Dishes</h3><ol>")
		for _, dish := range summary.TopDishes {
			fmt.Fprintf(&body, "<li>%s x%d (&#8377;%.2f)</li>", dish.Name, dish.Count, dish.Revenue)
		}
		body.WriteString("</ol>")
	}

	subject := fmt.Sprintf("Daily Summary %s", summary.Date)
	return s.mailer(s.adminEmail, subject, body.String())
}
