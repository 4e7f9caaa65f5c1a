package forms

import (
	"net/url"
	"strconv"

	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
)

type ServiceType struct {
	Name string `form:"name" validate:"required,max=100"`
}

func DecodeServiceType(values url.Values) (ServiceType, Errors) {
	s := ServiceType{Name: text(values, "name")}
	return s, check(s)
}

func ServiceTypeLayout(values url.Values, errs Errors) []Field {
	return fill(values, errs, []Field{
		{Name: "name", Label: "Name", Kind: KindText, Required: true},
	})
}

// Plan keyFeatures are typed comma-joined and sent as an array.
type Plan struct {
	Title         string   `form:"title" validate:"required,max=200"`
	Description   string   `form:"description"`
	Amount        float64  `form:"amount" validate:"gt=0"`
	Discount      float64  `form:"discount" validate:"gte=0,lte=100"`
	KeyFeatures   []string `form:"keyFeatures" validate:"min=1"`
	Duration      string   `form:"duration" validate:"required,option=planDuration"`
	ServiceTypeID string   `form:"serviceTypeId" validate:"required"`
}

func DecodePlan(values url.Values) (Plan, Errors) {
	errs := Errors{}
	p := Plan{
		Title:         text(values, "title"),
		Description:   text(values, "description"),
		Amount:        number(values, "amount", errs),
		Discount:      number(values, "discount", errs),
		KeyFeatures:   models.SplitList(text(values, "keyFeatures")),
		Duration:      text(values, "duration"),
		ServiceTypeID: text(values, "serviceTypeId"),
	}
	return p, merge(errs, check(p))
}

func (p Plan) Input(id string) lenzoo.PlanInput {
	return lenzoo.PlanInput{
		ID:            id,
		Title:         p.Title,
		Description:   p.Description,
		Amount:        p.Amount,
		Discount:      p.Discount,
		KeyFeatures:   p.KeyFeatures,
		Duration:      p.Duration,
		ServiceTypeID: p.ServiceTypeID,
	}
}

func PlanValues(p models.Plan) url.Values {
	return url.Values{
		"title":         {p.Title},
		"description":   {p.Description},
		"amount":        {formatNumber(p.Amount)},
		"discount":      {formatNumber(p.Discount)},
		"keyFeatures":   {p.KeyFeatures.Join()},
		"duration":      {p.Duration},
		"serviceTypeId": {p.ServiceTypeID.ID},
	}
}

// PlanLayout offers the service types returned by the plan picker endpoint.
func PlanLayout(values url.Values, errs Errors, serviceTypes []models.ServiceType) []Field {
	choices := make([]Option, 0, len(serviceTypes))
	for _, st := range serviceTypes {
		choices = append(choices, Option{Value: st.ID, Label: st.Name})
	}
	return fill(values, errs, []Field{
		{Name: "title", Label: "Title", Kind: KindText, Required: true},
		{Name: "serviceTypeId", Label: "Service type", Kind: KindSelect, Options: choices, Required: true},
		{Name: "description", Label: "Description", Kind: KindTextarea},
		{Name: "amount", Label: "Amount", Kind: KindNumber, Required: true},
		{Name: "discount", Label: "Discount (%)", Kind: KindNumber},
		{Name: "duration", Label: "Duration", Kind: KindSelect, Options: options(models.PlanDurations), Required: true},
		{Name: "keyFeatures", Label: "Key features", Kind: KindText, Required: true, Help: "Comma separated."},
	})
}

// Membership durationInDays is never read from the submission; it follows
// the plan type.
type Membership struct {
	Title          string   `form:"title" validate:"required,option=membershipTitle"`
	PlanType       string   `form:"planType" validate:"required,option=membershipPlan"`
	Price          float64  `form:"price" validate:"gt=0"`
	DurationInDays int      `form:"durationInDays"`
	Benefits       []string `form:"benefits"`
	Status         string   `form:"status" validate:"required,option=membershipStatus"`
	IsRecurring    bool     `form:"isRecurring"`
}

func DecodeMembership(values url.Values) (Membership, Errors) {
	errs := Errors{}
	m := Membership{
		Title:       text(values, "title"),
		PlanType:    text(values, "planType"),
		Price:       number(values, "price", errs),
		Benefits:    models.SplitList(text(values, "benefits")),
		Status:      text(values, "status"),
		IsRecurring: isTruthy(text(values, "isRecurring")),
	}
	m.DurationInDays = models.DurationForPlanType(m.PlanType)
	return m, merge(errs, check(m))
}

func (m Membership) Input(id string) lenzoo.MembershipInput {
	return lenzoo.MembershipInput{
		ID:             id,
		Title:          m.Title,
		PlanType:       m.PlanType,
		Price:          m.Price,
		DurationInDays: m.DurationInDays,
		Benefits:       m.Benefits,
		Status:         m.Status,
		IsRecurring:    m.IsRecurring,
	}
}

func MembershipValues(m models.Membership) url.Values {
	return url.Values{
		"title":       {m.Title},
		"planType":    {m.PlanType},
		"price":       {formatNumber(m.Price)},
		"benefits":    {m.Benefits.Join()},
		"status":      {m.Status},
		"isRecurring": {strconv.FormatBool(m.IsRecurring)},
	}
}

// MembershipLayout shows durationInDays as a disabled field computed from
// the selected plan type.
func MembershipLayout(values url.Values, errs Errors) []Field {
	duration := ""
	if d := models.DurationForPlanType(values.Get("planType")); d > 0 {
		duration = strconv.Itoa(d)
	}
	return fill(values, errs, []Field{
		{Name: "title", Label: "Title", Kind: KindSelect, Options: options(models.MembershipTitles), Required: true},
		{Name: "planType", Label: "Plan type", Kind: KindSelect, Options: options(models.MembershipPlans), Required: true},
		{Name: "durationInDays", Label: "Duration (days)", Kind: KindNumber, Value: duration, Disabled: true,
			Help: "Follows the plan type; recalculated when the form is saved."},
		{Name: "price", Label: "Price", Kind: KindNumber, Required: true},
		{Name: "benefits", Label: "Benefits", Kind: KindTextarea, Help: "Comma separated."},
		{Name: "status", Label: "Status", Kind: KindSelect, Options: options(models.MembershipStatuses), Required: true},
		{Name: "isRecurring", Label: "Recurring", Kind: KindCheckbox},
	})
}
