package models

// DashboardCount feeds the count cards.
type DashboardCount struct {
	TotalUsers        int `json:"totalUsers"`
	TotalProducts     int `json:"totalProducts"`
	TotalOrders       int `json:"totalOrders"`
	TotalAppointments int `json:"totalAppointments"`
	TotalMemberships  int `json:"totalMemberships"`
}

type GraphPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type GraphStats struct {
	Revenue []GraphPoint `json:"revenue"`
	Orders  []GraphPoint `json:"orders"`
}

// Total sums the revenue series.
func (g GraphStats) Total() float64 {
	var total float64
	for _, p := range g.Revenue {
		total += p.Value
	}
	return total
}

type UsersCounts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	NewUsers int `json:"newUsers"`
}

// Admin is the logged-in administrator's profile.
type Admin struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}
