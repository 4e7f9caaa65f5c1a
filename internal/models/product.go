package models

import "time"

// Product is an eyewear product. Images, colours and capability lists may be
// sent as arrays or comma-joined strings.
type Product struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	OriginalPrice float64    `json:"originalPrice"`
	SellingPrice  float64    `json:"sellingPrice"`
	ProductType   string     `json:"productType,omitempty"`
	FrameType     string     `json:"frameType,omitempty"`
	FrameShape    string     `json:"frameShape,omitempty"`
	FrameMaterial string     `json:"frameMaterial,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	SuitableFor   StringList `json:"suitableFor,omitempty"`
	FrameSize     StringList `json:"frameSize,omitempty"`
	FrameColor    StringList `json:"frameColor,omitempty"`
	Images        StringList `json:"images,omitempty"`
	GlbFile       string     `json:"glbFile,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

const MaxProductImages = 5

var (
	ProductTypes   = []string{"Eyeglasses", "Sunglasses", "Contact Lenses", "Accessories"}
	FrameTypes     = []string{"Full Rim", "Half Rim", "Rimless"}
	FrameShapes    = []string{"Round", "Square", "Rectangle", "Aviator", "Cat Eye", "Oval", "Wayfarer"}
	FrameMaterials = []string{"Metal", "Acetate", "TR90", "Titanium"}
	Genders        = []string{"Men", "Women", "Unisex", "Kids"}
	SuitableFor    = []string{"Oval", "Round", "Square", "Heart", "Diamond", "Oblong"}
	FrameSizes     = []string{"Small", "Medium", "Large"}
)

// Discount returns the percentage saved, rounded down.
func (p Product) Discount() int {
	if p.OriginalPrice <= 0 || p.SellingPrice >= p.OriginalPrice {
		return 0
	}
	return int((p.OriginalPrice - p.SellingPrice) / p.OriginalPrice * 100)
}
