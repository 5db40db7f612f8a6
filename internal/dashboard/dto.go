package dashboard

import "github.com/shopspring/decimal"

// Stats is the dashboard summary returned to callers. TotalUsers and
// TotalProducts are only populated for admin roles.
type Stats struct {
	TotalOrders     int64           `json:"total_orders"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ThisMonthOrders int64           `json:"this_month_orders"`
	ThisMonthAmount decimal.Decimal `json:"this_month_amount"`
	TotalUsers      *int64          `json:"total_users,omitempty"`
	TotalProducts   *int64          `json:"total_products,omitempty"`
}
