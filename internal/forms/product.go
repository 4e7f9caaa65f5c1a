package forms

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"

	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
)

const (
	FieldImages = "images"
	FieldModel  = "glbFile"
)

// Product is a validated product submission.
type Product struct {
	Name          string   `form:"name" validate:"required,max=200"`
	Title         string   `form:"title" validate:"required,max=200"`
	Description   string   `form:"description"`
	OriginalPrice float64  `form:"originalPrice" validate:"gt=0"`
	SellingPrice  float64  `form:"sellingPrice" validate:"gt=0,ltefield=OriginalPrice"`
	ProductType   string   `form:"productType" validate:"required,option=productType"`
	FrameType     string   `form:"frameType" validate:"option=frameType"`
	FrameShape    string   `form:"frameShape" validate:"option=frameShape"`
	FrameMaterial string   `form:"frameMaterial" validate:"option=frameMaterial"`
	Gender        string   `form:"gender" validate:"required,option=gender"`
	SuitableFor   []string `form:"suitableFor" validate:"min=1,option=suitableFor"`
	FrameSize     []string `form:"frameSize" validate:"option=frameSize"`
	FrameColor    []string `form:"frameColor"`

	Images  []*multipart.FileHeader `form:"-"`
	GlbFile *multipart.FileHeader   `form:"-"`
}

// DecodeProduct reads a product submission. existingImages is how many
// images the product already has; new uploads plus existing ones may not
// exceed models.MaxProductImages, and an over-limit submission is rejected
// whole. frameSize becomes mandatory when editing.
func DecodeProduct(form *multipart.Form, existingImages int, edit bool) (Product, Errors) {
	values := multipartValues(form)
	errs := Errors{}

	p := Product{
		Name:          text(values, "name"),
		Title:         text(values, "title"),
		Description:   text(values, "description"),
		OriginalPrice: number(values, "originalPrice", errs),
		SellingPrice:  number(values, "sellingPrice", errs),
		ProductType:   text(values, "productType"),
		FrameType:     text(values, "frameType"),
		FrameShape:    text(values, "frameShape"),
		FrameMaterial: text(values, "frameMaterial"),
		Gender:        text(values, "gender"),
		SuitableFor:   list(values, "suitableFor"),
		FrameSize:     list(values, "frameSize"),
		FrameColor:    models.SplitList(text(values, "frameColor")),
		Images:        files(form, FieldImages),
		GlbFile:       file(form, FieldModel),
	}

	errs = merge(errs, check(p))
	if edit && len(p.FrameSize) == 0 {
		errs.Add("frameSize", "select at least one")
	}

	errs = merge(errs, ImageCeiling(existingImages, len(p.Images)))
	checkFiles(errs, FieldImages, p.Images, imageExtensions, maxImageSize)
	if p.GlbFile != nil {
		checkFiles(errs, FieldModel, []*multipart.FileHeader{p.GlbFile}, modelExtensions, maxModelSize)
	}
	return p, errs
}

// ImageCeiling rejects uploads that would take a product past
// models.MaxProductImages.
func ImageCeiling(existingImages, added int) Errors {
	errs := Errors{}
	if existingImages+added > models.MaxProductImages {
		errs.Add(FieldImages, fmt.Sprintf("a product can have at most %d images (%d attached, %d new)",
			models.MaxProductImages, existingImages, added))
	}
	return errs
}

func (p Product) Input(id string) lenzoo.ProductInput {
	in := lenzoo.ProductInput{
		ID:            id,
		Name:          p.Name,
		Title:         p.Title,
		Description:   p.Description,
		OriginalPrice: p.OriginalPrice,
		SellingPrice:  p.SellingPrice,
		ProductType:   p.ProductType,
		FrameType:     p.FrameType,
		FrameShape:    p.FrameShape,
		FrameMaterial: p.FrameMaterial,
		Gender:        p.Gender,
		SuitableFor:   p.SuitableFor,
		FrameSize:     p.FrameSize,
		FrameColor:    p.FrameColor,
	}
	for _, fh := range p.Images {
		in.Images = append(in.Images, lenzoo.FileHeaderUpload(fh))
	}
	if p.GlbFile != nil {
		up := lenzoo.FileHeaderUpload(p.GlbFile)
		in.GlbFile = &up
	}
	return in
}

// ProductValues seeds the edit form from a stored product.
func ProductValues(p models.Product) url.Values {
	return url.Values{
		"name":          {p.Name},
		"title":         {p.Title},
		"description":   {p.Description},
		"originalPrice": {formatNumber(p.OriginalPrice)},
		"sellingPrice":  {formatNumber(p.SellingPrice)},
		"productType":   {p.ProductType},
		"frameType":     {p.FrameType},
		"frameShape":    {p.FrameShape},
		"frameMaterial": {p.FrameMaterial},
		"gender":        {p.Gender},
		"suitableFor":   p.SuitableFor,
		"frameSize":     p.FrameSize,
		"frameColor":    {p.FrameColor.Join()},
	}
}

// ProductLayout builds the add/edit product form. existingImages drives the
// help text on the image input; a negative count means it is not known.
func ProductLayout(values url.Values, errs Errors, edit bool, existingImages int) []Field {
	imageHelp := fmt.Sprintf("At most %d images per product, counting those already attached.", models.MaxProductImages)
	if existingImages >= 0 {
		remaining := models.MaxProductImages - existingImages
		if remaining < 0 {
			remaining = 0
		}
		imageHelp = fmt.Sprintf("Up to %d more image(s).", remaining)
	}
	return fill(values, errs, []Field{
		{Name: "name", Label: "Name", Kind: KindText, Required: true},
		{Name: "title", Label: "Title", Kind: KindText, Required: true},
		{Name: "description", Label: "Description", Kind: KindTextarea},
		{Name: "originalPrice", Label: "Original price", Kind: KindNumber, Required: true},
		{Name: "sellingPrice", Label: "Selling price", Kind: KindNumber, Required: true, Help: "Must not exceed the original price."},
		{Name: "productType", Label: "Product type", Kind: KindSelect, Options: options(models.ProductTypes), Required: true},
		{Name: "frameType", Label: "Frame type", Kind: KindSelect, Options: options(models.FrameTypes)},
		{Name: "frameShape", Label: "Frame shape", Kind: KindSelect, Options: options(models.FrameShapes)},
		{Name: "frameMaterial", Label: "Frame material", Kind: KindSelect, Options: options(models.FrameMaterials)},
		{Name: "gender", Label: "Gender", Kind: KindSelect, Options: options(models.Genders), Required: true},
		{Name: "suitableFor", Label: "Suitable for", Kind: KindMulti, Options: options(models.SuitableFor), Required: true},
		{Name: "frameSize", Label: "Frame size", Kind: KindMulti, Options: options(models.FrameSizes), Required: edit},
		{Name: "frameColor", Label: "Frame colours", Kind: KindText, Help: "Comma separated."},
		{Name: FieldImages, Label: "Images", Kind: KindFile, Multiple: true, Accept: AcceptImages,
			Help: imageHelp},
		{Name: FieldModel, Label: "3D model", Kind: KindFile, Accept: AcceptModel, Help: "Optional .glb file."},
	})
}

func formatNumber(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
