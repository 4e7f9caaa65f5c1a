package models

import "time"

type ServiceType struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Plan belongs to a service type. KeyFeatures is comma-joined only in forms.
type Plan struct {
	ID            string     `json:"_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Amount        float64    `json:"amount"`
	Discount      float64    `json:"discount"`
	KeyFeatures   StringList `json:"keyFeatures,omitempty"`
	Duration      string     `json:"duration,omitempty"`
	ServiceTypeID ServiceRef `json:"serviceTypeId"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ServiceRef is a service type reference, either a bare id or populated.
type ServiceRef struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func (r *ServiceRef) UnmarshalJSON(data []byte) error {
	type plain ServiceRef
	var p plain
	id, err := decodeRef(data, &p)
	if err != nil {
		return err
	}
	if id != "" {
		*r = ServiceRef{ID: id}
		return nil
	}
	*r = ServiceRef(p)
	return nil
}

func (r ServiceRef) Display() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

type Membership struct {
	ID             string     `json:"_id"`
	Title          string     `json:"title"`
	PlanType       string     `json:"planType"`
	Price          float64    `json:"price"`
	DurationInDays int        `json:"durationInDays"`
	Benefits       StringList `json:"benefits,omitempty"`
	Status         string     `json:"status"`
	IsRecurring    bool       `json:"isRecurring"`
	CreatedAt      time.Time  `json:"createdAt"`
}

var (
	MembershipTitles   = []string{"Basic", "Plus", "Premium"}
	MembershipPlans    = []string{"monthly", "6months", "1year"}
	MembershipStatuses = []string{"active", "inactive"}
	PlanDurations      = []string{"monthly", "quarterly", "yearly"}
)

// DurationForPlanType derives durationInDays from a membership plan type.
// Unknown plan types yield 0.
func DurationForPlanType(planType string) int {
	switch planType {
	case "monthly":
		return 30
	case "6months":
		return 180
	case "1year":
		return 365
	default:
		return 0
	}
}
