package entity

// PerformanceMetrics indicadores de desempeño devueltos por el RPC get_performance_metrics.
type PerformanceMetrics struct {
	CompanyID          string  `json:"company_id"`
	PeriodDays         int     `json:"period_days"`
	FulfillmentRate    float64 `json:"fulfillment_rate"`
	OnTimeDeliveryRate float64 `json:"on_time_delivery_rate"`
	CancellationRate   float64 `json:"cancellation_rate"`
	AverageRating      float64 `json:"average_rating"`
	TotalReviews       int     `json:"total_reviews"`
	ResponseTimeHours  float64 `json:"response_time_hours"`
}
