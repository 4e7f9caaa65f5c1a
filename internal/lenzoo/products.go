package lenzoo

import (
	"context"
	"net/http"
	"strconv"

	"lenzooadmin/internal/models"
)

// ProductInput is the multipart payload of addProduct/updateProduct. New
// images are appended server-side; the client never diffs existing ones.
type ProductInput struct {
	ID            string
	Name          string
	Title         string
	Description   string
	OriginalPrice float64
	SellingPrice  float64
	ProductType   string
	FrameType     string
	FrameShape    string
	FrameMaterial string
	Gender        string
	SuitableFor   []string
	FrameSize     []string
	FrameColor    []string
	Images        []Upload
	GlbFile       *Upload
}

func (in ProductInput) multipart() *Multipart {
	form := NewMultipart()
	if in.ID != "" {
		form.Field("id", in.ID)
	}
	form.Field("name", in.Name).
		Field("title", in.Title).
		Field("description", in.Description).
		Field("originalPrice", strconv.FormatFloat(in.OriginalPrice, 'f', -1, 64)).
		Field("sellingPrice", strconv.FormatFloat(in.SellingPrice, 'f', -1, 64)).
		Field("productType", in.ProductType).
		Field("frameType", in.FrameType).
		Field("frameShape", in.FrameShape).
		Field("frameMaterial", in.FrameMaterial).
		Field("gender", in.Gender).
		Fields("suitableFor", in.SuitableFor).
		Fields("frameSize", in.FrameSize).
		Fields("frameColor", in.FrameColor)
	for _, img := range in.Images {
		form.File("images", img)
	}
	if in.GlbFile != nil {
		form.File("glbFile", *in.GlbFile)
	}
	return form
}

func (c *Client) ListProducts(ctx context.Context, p ListParams) (Page[models.Product], error) {
	return getPage[models.Product](ctx, c, "getAllProductsInAdmin", p)
}

func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, error) {
	if err := requireID(id); err != nil {
		return models.Product{}, err
	}
	return getOne[models.Product](ctx, c, "getProductById", idQuery(id), "product")
}

func (c *Client) AddProduct(ctx context.Context, in ProductInput) (Result, error) {
	in.ID = ""
	return c.writeForm(ctx, "addProduct", in.multipart())
}

func (c *Client) UpdateProduct(ctx context.Context, in ProductInput) (Result, error) {
	if err := requireID(in.ID); err != nil {
		return Result{}, err
	}
	return c.writeForm(ctx, "updateProduct", in.multipart())
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	return c.write(ctx, http.MethodPost, "deleteProduct", map[string]string{"id": id})
}
