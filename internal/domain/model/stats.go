package model

// GrowthPoint is one day of the signup time series. Count is the number of
// users created on that day, not a running total.
type GrowthPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD (UTC)
	Count int    `json:"count"`
}

type CarTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// DashboardStats is recomputed in full on every request; it is never stored.
type DashboardStats struct {
	MonthlyRevenue  float64        `json:"monthly_revenue"`
	MonthlyTrips    int            `json:"monthly_trips"`
	TotalUsers      int            `json:"total_users"`
	TotalCars       int            `json:"total_cars"`
	UserGrowth      []GrowthPoint  `json:"user_growth"`
	PopularCarTypes []CarTypeCount `json:"popular_car_types"`
}
