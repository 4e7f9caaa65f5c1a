package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/views"
)

func ListProducts(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "products", (*lenzoo.Client).ListProducts)
		if d.superseded(c, "products", err) {
			return
		}
		table := views.Table{
			Heading:  "Products",
			Columns:  []string{"", "Name", "Type", "Price", "Discount", "Added", ""},
			BaseURL:  "/products",
			Search:   true,
			Query:    params.Search,
			View:     params.View,
			NewURL:   "/products/new",
			NewLabel: "Add product",
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_PRODUCTS", err, "Unable to load products.")
		} else {
			table.Pager = pager(res, params)
			for _, p := range res.Items {
				thumb := ""
				if len(p.Images) > 0 {
					thumb = p.Images[0]
				}
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Image: thumb},
						{Text: p.Name, Link: "/products/" + p.ID},
						{Text: p.ProductType},
						{Text: fmt.Sprintf("%.2f / %.2f", p.SellingPrice, p.OriginalPrice)},
						{Text: fmt.Sprintf("%d%%", p.Discount())},
						{Text: p.CreatedAt.Format("02 Jan 2006")},
					},
					Actions: []views.Action{
						{Label: "View", URL: "/products/" + p.ID},
						{Label: "Edit", URL: "/products/" + p.ID + "/edit"},
						deleteAction(deleteProduct, p.ID),
					},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Products", "products", table))
	}
}

func ProductDetail(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := d.api(c).GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			d.redirect(c, "/products", session.FlashError, d.failed(c, "PRODUCT_DETAIL", err, "Unable to load the product."))
			return
		}
		d.render(c, http.StatusOK, "detail.html", views.Page{Title: p.Name, Active: "products", Body: productDetail(p)})
	}
}

func productDetail(p models.Product) views.Detail {
	info := views.Section{Title: "Product", Items: []views.Item{
		{Label: "Title", Value: p.Title},
		{Label: "Description", Value: p.Description},
		{Label: "Original price", Value: fmt.Sprintf("%.2f", p.OriginalPrice)},
		{Label: "Selling price", Value: fmt.Sprintf("%.2f", p.SellingPrice)},
		{Label: "Discount", Value: fmt.Sprintf("%d%%", p.Discount())},
		{Label: "Product type", Value: p.ProductType},
		{Label: "Frame type", Value: p.FrameType},
		{Label: "Frame shape", Value: p.FrameShape},
		{Label: "Frame material", Value: p.FrameMaterial},
		{Label: "Gender", Value: p.Gender},
		{Label: "Suitable for", List: p.SuitableFor},
		{Label: "Frame sizes", List: p.FrameSize},
		{Label: "Frame colours", List: p.FrameColor},
	}}
	if p.GlbFile != "" {
		info.Items = append(info.Items, views.Item{Label: "3D model", Value: "Open 3D preview", File: p.GlbFile})
	}

	gallery := views.Section{Title: "Images"}
	for i, img := range p.Images {
		gallery.Items = append(gallery.Items, views.Item{Label: fmt.Sprintf("Image %d", i+1), Image: img})
	}

	return views.Detail{
		Heading: p.Name,
		BackURL: "/products",
		Actions: []views.Action{
			{Label: "Edit", URL: "/products/" + p.ID + "/edit"},
			deleteAction(deleteProduct, p.ID),
		},
		Sections: []views.Section{info, gallery},
	}
}

func productScreen(id string) formScreen {
	if id == "" {
		return formScreen{title: "Add product", active: "products", action: "/products", cancel: "/products", upload: true}
	}
	return formScreen{title: "Edit product", active: "products", action: "/products/" + id, cancel: "/products/" + id, upload: true}
}

func NewProductForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.renderForm(c, http.StatusOK, productScreen(""), forms.ProductLayout(url.Values{}, nil, false, 0))
	}
}

func CreateProduct(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		fs := productScreen("")
		form, err := parseUpload(c)
		if err != nil {
			d.redirect(c, "/products/new", session.FlashError, "The upload could not be read.")
			return
		}
		in, errs := forms.DecodeProduct(form, 0, false)
		if errs.Any() {
			d.invalid(c, fs, errs, forms.ProductLayout(form.Value, errs, false, 0))
			return
		}
		res, err := d.api(c).AddProduct(c.Request.Context(), in.Input(""))
		if err != nil {
			fs.err = d.failed(c, "ADD_PRODUCT", err, "Unable to add the product.")
			d.renderForm(c, http.StatusOK, fs, forms.ProductLayout(form.Value, nil, false, 0))
			return
		}
		d.record(c, "create", "product", "")
		d.redirect(c, "/products", session.FlashSuccess, successMessage(res, "Product added."))
	}
}

func EditProductForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		p, err := d.api(c).GetProduct(c.Request.Context(), id)
		if err != nil {
			d.redirect(c, "/products", session.FlashError, d.failed(c, "EDIT_PRODUCT", err, "Unable to load the product."))
			return
		}
		d.renderForm(c, http.StatusOK, productScreen(id), forms.ProductLayout(forms.ProductValues(p), nil, true, len(p.Images)))
	}
}

// UpdateProduct validates locally first. Only a valid submission that adds
// images re-reads the product, so the ceiling counts what is attached on the
// server right now.
func UpdateProduct(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		fs := productScreen(id)
		client := d.api(c)

		form, err := parseUpload(c)
		if err != nil {
			d.redirect(c, "/products/"+id+"/edit", session.FlashError, "The upload could not be read.")
			return
		}
		existing := -1
		in, errs := forms.DecodeProduct(form, 0, true)
		if errs.Any() {
			d.invalid(c, fs, errs, forms.ProductLayout(form.Value, errs, true, existing))
			return
		}
		if len(in.Images) > 0 {
			current, err := client.GetProduct(c.Request.Context(), id)
			if err != nil {
				d.redirect(c, "/products", session.FlashError, d.failed(c, "UPDATE_PRODUCT", err, "Unable to load the product."))
				return
			}
			existing = len(current.Images)
			if errs := forms.ImageCeiling(existing, len(in.Images)); errs.Any() {
				d.invalid(c, fs, errs, forms.ProductLayout(form.Value, errs, true, existing))
				return
			}
		}
		res, err := client.UpdateProduct(c.Request.Context(), in.Input(id))
		if err != nil {
			fs.err = d.failed(c, "UPDATE_PRODUCT", err, "Unable to update the product.")
			d.renderForm(c, http.StatusOK, fs, forms.ProductLayout(form.Value, nil, true, existing))
			return
		}
		d.record(c, "update", "product", id)
		d.redirect(c, "/products/"+id, session.FlashSuccess, successMessage(res, "Product updated."))
	}
}
