package lenzoo

import (
	"context"
	"net/http"
	"net/url"

	"lenzooadmin/internal/models"
)

type TestimonialInput struct {
	ID      string
	Name    string
	Role    string
	Message string
	Image   *Upload
}

func (in TestimonialInput) multipart() *Multipart {
	form := NewMultipart()
	if in.ID != "" {
		form.Field("id", in.ID)
	}
	form.Field("name", in.Name).
		Field("role", in.Role).
		Field("message", in.Message)
	if in.Image != nil {
		form.File("image", *in.Image)
	}
	return form
}

func (c *Client) ListTestimonials(ctx context.Context, p ListParams) (Page[models.Testimonial], error) {
	return getPage[models.Testimonial](ctx, c, "getAllTestimonials", p)
}

func (c *Client) AddTestimonial(ctx context.Context, in TestimonialInput) (Result, error) {
	in.ID = ""
	return c.writeForm(ctx, "addTestimonial", in.multipart())
}

func (c *Client) UpdateTestimonial(ctx context.Context, in TestimonialInput) (Result, error) {
	if err := requireID(in.ID); err != nil {
		return Result{}, err
	}
	return c.writeForm(ctx, "updateTestimonial", in.multipart())
}

// DeleteTestimonial uses GET with the id in the query, as the API expects.
func (c *Client) DeleteTestimonial(ctx context.Context, id string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	return c.writeQuery(ctx, http.MethodGet, "deleteTestimonial", idQuery(id))
}

func (c *Client) UpdateTestimonialIndex(ctx context.Context, id string, newIndex int) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	if newIndex < 0 {
		return Result{}, ValidationError("index must be a non-negative integer")
	}
	return c.write(ctx, http.MethodPost, "updateTestimonialIndex", map[string]any{
		"id":       id,
		"newIndex": newIndex,
	})
}

type ResearchInput struct {
	ID            string
	Title         string
	Description   string
	ServiceChoice string
	Documents     []Upload
}

func (in ResearchInput) multipart() *Multipart {
	form := NewMultipart()
	if in.ID != "" {
		form.Field("id", in.ID)
	}
	form.Field("title", in.Title).
		Field("description", in.Description).
		Field("serviceChoice", in.ServiceChoice)
	for _, doc := range in.Documents {
		form.File("documents", doc)
	}
	return form
}

func (c *Client) ListResearch(ctx context.Context, p ListParams) (Page[models.ResearchAnalysis], error) {
	return getPage[models.ResearchAnalysis](ctx, c, "getAllResearchAnalysis", p)
}

func (c *Client) GetResearch(ctx context.Context, id string) (models.ResearchAnalysis, error) {
	if err := requireID(id); err != nil {
		return models.ResearchAnalysis{}, err
	}
	return getOne[models.ResearchAnalysis](ctx, c, "getResearchAnalysisById", idQuery(id), "researchAnalysis", "research")
}

func (c *Client) AddResearch(ctx context.Context, in ResearchInput) (Result, error) {
	in.ID = ""
	return c.writeForm(ctx, "addResearchAnalysis", in.multipart())
}

func (c *Client) UpdateResearch(ctx context.Context, in ResearchInput) (Result, error) {
	if err := requireID(in.ID); err != nil {
		return Result{}, err
	}
	return c.writeForm(ctx, "updateResearchAnalysis", in.multipart())
}

// DeleteResearch uses GET with the id in the query, as the API expects.
func (c *Client) DeleteResearch(ctx context.Context, id string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	return c.writeQuery(ctx, http.MethodGet, "deleteResearchAnalysis", idQuery(id))
}

// DeleteResearchDocument removes one document by file name from article id.
func (c *Client) DeleteResearchDocument(ctx context.Context, id, fileName string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	if fileName == "" {
		return Result{}, ValidationError("fileName is required")
	}
	return c.write(ctx, http.MethodPost, "deleteResearchDocument", map[string]string{
		"id":       id,
		"fileName": fileName,
	})
}

func (c *Client) GetPolicy(ctx context.Context, policyType string) (models.Policy, error) {
	if !models.IsPolicyType(policyType) {
		return models.Policy{}, ValidationError("unknown policy type: " + policyType)
	}
	p, err := getOne[models.Policy](ctx, c, "getPolicy", url.Values{"type": []string{policyType}}, "policy")
	if err != nil {
		return models.Policy{}, err
	}
	p.Type = policyType
	return p, nil
}

// UpdatePolicy upserts the singleton content for policyType.
func (c *Client) UpdatePolicy(ctx context.Context, policyType, content string, image *Upload) (Result, error) {
	if !models.IsPolicyType(policyType) {
		return Result{}, ValidationError("unknown policy type: " + policyType)
	}
	form := NewMultipart().
		Field("type", policyType).
		Field("content", content)
	if image != nil {
		form.File("image", *image)
	}
	return c.writeForm(ctx, "policyUpdate", form)
}

type FAQInput struct {
	ID       string `json:"id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	IsActive bool   `json:"isActive"`
}

func (c *Client) ListFAQs(ctx context.Context, p ListParams) (Page[models.FAQ], error) {
	return getPage[models.FAQ](ctx, c, "getAllFAQs", p)
}

func (c *Client) GetFAQ(ctx context.Context, id string) (models.FAQ, error) {
	if err := requireID(id); err != nil {
		return models.FAQ{}, err
	}
	return getOne[models.FAQ](ctx, c, "getFAQById", idQuery(id), "faq")
}

func (c *Client) AddFAQ(ctx context.Context, in FAQInput) (Result, error) {
	in.ID = ""
	return c.write(ctx, http.MethodPost, "addFAQ", in)
}

func (c *Client) UpdateFAQ(ctx context.Context, in FAQInput) (Result, error) {
	if err := requireID(in.ID); err != nil {
		return Result{}, err
	}
	return c.write(ctx, http.MethodPut, "updateFAQ", in)
}

func (c *Client) DeleteFAQ(ctx context.Context, id string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	return c.write(ctx, http.MethodPost, "deleteFAQ", map[string]string{"id": id})
}

// SetFAQActive flips isActive without touching question or answer.
func (c *Client) SetFAQActive(ctx context.Context, faq models.FAQ, active bool) (Result, error) {
	return c.UpdateFAQ(ctx, FAQInput{
		ID:       faq.ID,
		Question: faq.Question,
		Answer:   faq.Answer,
		IsActive: active,
	})
}
