package dto

// DashboardResponse resumen para la pantalla inicial del back-office.
type DashboardResponse struct {
	TotalProducts  int            `json:"total_products"`
	TotalSuppliers int            `json:"total_suppliers"`
	PendingOrders  int            `json:"pending_orders"`
	AlertCounts    map[string]int `json:"alert_counts"` // por AlertType
	LowStock       []LowStockItem `json:"low_stock"`    // top N, ascendente por stock
}
