package lenzoo

import (
	"context"
	"net/http"
	"strings"

	"lenzooadmin/internal/models"
)

func (c *Client) ListServiceTypes(ctx context.Context, p ListParams) (Page[models.ServiceType], error) {
	return getPage[models.ServiceType](ctx, c, "getAllServiceTypes", p)
}

// ServiceTypesForPlans returns the full, unpaged list used by the plan form.
func (c *Client) ServiceTypesForPlans(ctx context.Context) ([]models.ServiceType, error) {
	page, err := getPage[models.ServiceType](ctx, c, "getServiceTypesInAdmin", ListParams{})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) AddServiceType(ctx context.Context, name string) (Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{}, ValidationError("name is required")
	}
	return c.write(ctx, http.MethodPost, "addServiceType", map[string]string{"name": name})
}

func (c *Client) UpdateServiceType(ctx context.Context, id, name string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{}, ValidationError("name is required")
	}
	return c.write(ctx, http.MethodPost, "updateServiceType", map[string]string{"id": id, "name": name})
}

func (c *Client) DeleteServiceType(ctx context.Context, id string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	return c.write(ctx, http.MethodPost, "deleteServiceType", map[string]string{"id": id})
}

// PlanInput is the JSON body of addPlan/updatePlan.
type PlanInput struct {
	ID            string   `json:"id,omitempty"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Amount        float64  `json:"amount"`
	Discount      float64  `json:"discount"`
	KeyFeatures   []string `json:"keyFeatures"`
	Duration      string   `json:"duration"`
	ServiceTypeID string   `json:"serviceTypeId"`
}

func (c *Client) ListPlans(ctx context.Context, p ListParams) (Page[models.Plan], error) {
	return getPage[models.Plan](ctx, c, "getAllPlansInAdmin", p)
}

func (c *Client) AddPlan(ctx context.Context, in PlanInput) (Result, error) {
	in.ID = ""
	return c.write(ctx, http.MethodPost, "addPlan", in)
}

func (c *Client) UpdatePlan(ctx context.Context, in PlanInput) (Result, error) {
	if err := requireID(in.ID); err != nil {
		return Result{}, err
	}
	return c.write(ctx, http.MethodPost, "updatePlan", in)
}

func (c *Client) DeletePlan(ctx context.Context, id string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	return c.writeQuery(ctx, http.MethodDelete, "deletePlan", idQuery(id))
}

// MembershipInput is the body of addUpdateMembership; an empty ID creates.
type MembershipInput struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	PlanType       string   `json:"planType"`
	Price          float64  `json:"price"`
	DurationInDays int      `json:"durationInDays"`
	Benefits       []string `json:"benefits"`
	Status         string   `json:"status"`
	IsRecurring    bool     `json:"isRecurring"`
}

func (c *Client) ListMemberships(ctx context.Context, p ListParams) (Page[models.Membership], error) {
	return getPage[models.Membership](ctx, c, "getAllMembership", p)
}

func (c *Client) GetMembership(ctx context.Context, id string) (models.Membership, error) {
	if err := requireID(id); err != nil {
		return models.Membership{}, err
	}
	return getOne[models.Membership](ctx, c, "getMembershipById", idQuery(id), "membership")
}

// SaveMembership creates or updates. durationInDays is always derived from
// the plan type, never taken from the caller.
func (c *Client) SaveMembership(ctx context.Context, in MembershipInput) (Result, error) {
	in.DurationInDays = models.DurationForPlanType(in.PlanType)
	if in.DurationInDays == 0 {
		return Result{}, ValidationError("unknown plan type: " + in.PlanType)
	}
	return c.write(ctx, http.MethodPost, "addUpdateMembership", in)
}

func (c *Client) DeleteMembership(ctx context.Context, id string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	return c.writeQuery(ctx, http.MethodDelete, "deleteMembership", idQuery(id))
}
