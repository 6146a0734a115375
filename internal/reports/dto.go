package reports

import (
	"time"

	"github.com/google/uuid"
)

// OrderRecord is the slice of an order the report builders consume.
type OrderRecord struct {
	ProductID   uuid.UUID
	ProductName string
	AmountCents int64
	CreatedAt   time.Time
}

// OrderTotals is a single-pass aggregate over a window.
type OrderTotals struct {
	TotalCents int64
	OrderCount int64
}

// RangeInfo echoes the resolved window back to the client.
type RangeInfo struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// SalesCard summarizes order volume for the window.
type SalesCard struct {
	TotalAmount string `json:"total_amount"`
	OrderCount  int64  `json:"order_count"`
}

// CustomersCard summarizes customer activity for the window.
type CustomersCard struct {
	UserCount           int64  `json:"user_count"`
	AverageValuePerUser string `json:"average_value_per_user"`
}

// ProductsCard counts the catalog by availability; it ignores the window.
type ProductsCard struct {
	ActiveCount   int64 `json:"active_count"`
	InactiveCount int64 `json:"inactive_count"`
}

// DashboardSummary is the scalar card payload for the admin dashboard.
type DashboardSummary struct {
	Range     RangeInfo     `json:"range"`
	Sales     SalesCard     `json:"sales"`
	Customers CustomersCard `json:"customers"`
	Products  ProductsCard  `json:"products"`
}

// DailySalesPoint is one zero-filled day on the sales chart.
type DailySalesPoint struct {
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	OrderCount int    `json:"order_count"`
}

// DailySignupsPoint is one zero-filled day on the customer signup chart.
type DailySignupsPoint struct {
	Date      string `json:"date"`
	UserCount int    `json:"user_count"`
}

// ProductRevenuePoint is one slice of the revenue-by-product chart.
type ProductRevenuePoint struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Revenue    string    `json:"revenue"`
	OrderCount int64     `json:"order_count"`
}

// DashboardCharts is the chart payload for the admin dashboard.
type DashboardCharts struct {
	Range            RangeInfo             `json:"range"`
	DailySales       []DailySalesPoint     `json:"daily_sales"`
	DailySignups     []DailySignupsPoint   `json:"daily_signups"`
	RevenueByProduct []ProductRevenuePoint `json:"revenue_by_product"`
}
