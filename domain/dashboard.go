package domain

var (
	MessageSuccessGetDashboard   = "dashboard data retrieved successfully"
	MessageSuccessEmailDashboard = "daily summary emailed successfully"

	MessageFailedGetDashboard   = "failed to retrieve dashboard data"
	MessageFailedEmailDashboard = "failed to email daily summary"
)

type (
	TopDish struct {
		Name    string  `json:"name"`
		Count   int     `json:"count"`
		Revenue float64 `json:"revenue"`
	}

	DailySummary struct {
		Date         string    `json:"date"`
		OrderCount   int       `json:"orderCount"`
		PaidOrders   int       `json:"paidOrders"`
		TotalRevenue float64   `json:"totalRevenue"`
		TopDishes    []TopDish `json:"topDishes"`
	}

	MonthlySummary struct {
		Month        int     `json:"month"`
		Year         int     `json:"year"`
		TotalRevenue float64 `json:"totalRevenue"`
		OrderCount   int     `json:"orderCount"`
	}

	DashboardResponse struct {
		Daily   DailySummary   `json:"daily"`
		Monthly MonthlySummary `json:"monthly"`
	}
)
