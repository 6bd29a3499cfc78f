// Package fixtures holds the static JSON datasets the storefront runs on.
// Each collection is an independently shaped file; schema differences are
// tolerated here (optional fields, number-or-string ids and prices) and
// normalised by the catalog layer.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

//go:embed data/*.json
var dataFS embed.FS

// FlexID accepts a JSON string or number and stores it as a string.
// Product ids are string-compared throughout the app.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// FlexPrice accepts a JSON number or string. Non-numeric strings (for
// example "Contact for pricing") leave Value unset and keep the raw label.
type FlexPrice struct {
	Value *float64
	Label string
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexPrice) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if v, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64); err == nil {
			f.Value = &v
			return nil
		}
		f.Label = s
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// RawTier is a volume pricing row as it appears in fixture data.
type RawTier struct {
	MinQty  int      `json:"minQty"`
	MaxQty  *int     `json:"maxQty"`
	Price   float64  `json:"price"`
	Savings *float64 `json:"savings"`
}

// RawImage is a product image record.
type RawImage struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// RawProduct is the superset of fields seen across the product collections.
// Individual collections populate only a subset.
type RawProduct struct {
	ID            FlexID     `json:"id"`
	Name          string     `json:"name"`
	Title         string     `json:"title"`
	Price         *FlexPrice `json:"price"`
	PriceNumeric  *float64   `json:"price_numeric"`
	Vendor        string     `json:"vendor"`
	Brand         string     `json:"brand"`
	SKU           string     `json:"sku"`
	ProductType   string     `json:"product_type"`
	CategoryID    string     `json:"categoryId"`
	Description   string     `json:"description"`
	Tags          []string   `json:"tags"`
	Image         string     `json:"image"`
	Images        []RawImage `json:"images"`
	InStock       *bool      `json:"inStock"`
	VolumePricing []RawTier  `json:"volumePricing"`
}

// RawCategory is a category record from the categories fixture.
type RawCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// Site is the site content fixture payload.
type Site struct {
	Name         string   `json:"name"`
	Tagline      string   `json:"tagline"`
	SupportEmail string   `json:"support_email"`
	SupportPhone string   `json:"support_phone"`
	ValueProps   []string `json:"value_props"`
}

// Collections bundles all fixture datasets loaded at startup.
type Collections struct {
	SafetyProducts  []RawProduct
	SafetyShirts    []RawProduct
	SafetyFootwear  []RawProduct
	GeneralProducts []RawProduct
	Categories      []RawCategory
	Site            Site
}

type productFile struct {
	Products []RawProduct `json:"products"`
}

type categoryFile struct {
	Categories []RawCategory `json:"categories"`
}

type siteFile struct {
	Site Site `json:"site"`
}

// Load parses the embedded fixture files. It fails only on malformed JSON;
// missing optional fields are tolerated.
func Load() (*Collections, error) {
	c := &Collections{}

	var err error
	if c.SafetyProducts, err = loadProducts("data/safety_products.json"); err != nil {
		return nil, err
	}
	if c.SafetyShirts, err = loadProducts("data/safety_shirts.json"); err != nil {
		return nil, err
	}
	if c.SafetyFootwear, err = loadProducts("data/safety_footwear.json"); err != nil {
		return nil, err
	}
	if c.GeneralProducts, err = loadProducts("data/products.json"); err != nil {
		return nil, err
	}

	var cats categoryFile
	if err := loadJSON("data/categories.json", &cats); err != nil {
		return nil, err
	}
	c.Categories = cats.Categories

	var site siteFile
	if err := loadJSON("data/site_content.json", &site); err != nil {
		return nil, err
	}
	c.Site = site.Site

	return c, nil
}

// MustLoad panics when the embedded fixtures cannot be parsed.
func MustLoad() *Collections {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func loadProducts(name string) ([]RawProduct, error) {
	var file productFile
	if err := loadJSON(name, &file); err != nil {
		return nil, err
	}
	return file.Products, nil
}

func loadJSON(name string, v any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("fixtures: read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("fixtures: parse %s: %w", name, err)
	}
	return nil
}
