package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ProductFacts is the immutable product description consumed by the scoring engine
type ProductFacts struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients string   `json:"ingredients,omitempty"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Brand       string   `json:"brand,omitempty"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Review is a single customer review. It decodes from either a JSON string
// or an object with a "text" field.
type Review struct {
	Text   string   `json:"text"`
	Rating *float64 `json:"rating,omitempty"`
}

// UnmarshalJSON accepts "great product" as well as {"text": "great product", "rating": 5}
func (r *Review) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		r.Text = text
		r.Rating = nil
		return nil
	}

	type plain Review
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Review(p)
	return nil
}

// AnalyticsSnapshot holds engagement data supplied per analysis call
type AnalyticsSnapshot struct {
	Views   int      `json:"views"`
	Sales   int      `json:"sales"`
	Reviews []Review `json:"reviews"`
	Rating  float64  `json:"rating"`
}

// Product is a catalog entry owned by the product repository
type Product struct {
	ID string `json:"id"`
	ProductFacts
	Specifications map[string]string `json:"specifications,omitempty"`
	Analytics      AnalyticsSnapshot `json:"analytics"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Clone returns a deep copy so callers never share slices with the repository
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Images = append([]string(nil), p.Images...)
	c.Tags = append([]string(nil), p.Tags...)
	c.Analytics.Reviews = append([]Review(nil), p.Analytics.Reviews...)
	if p.Specifications != nil {
		c.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			c.Specifications[k] = v
		}
	}
	return &c
}

// Matches reports whether the lower-cased query appears in any searchable field
func (p *Product) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	fields := []string{p.Name, p.Description, p.Category, p.Brand}
	fields = append(fields, p.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ProductPatch enumerates the fields a partial update may change.
// Nil fields are left untouched; ID and CreatedAt are never updatable.
type ProductPatch struct {
	Name           *string            `json:"name,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Ingredients    *string            `json:"ingredients,omitempty"`
	Category       *string            `json:"category,omitempty"`
	Price          *float64           `json:"price,omitempty"`
	Brand          *string            `json:"brand,omitempty"`
	Images         *[]string          `json:"images,omitempty"`
	Tags           *[]string          `json:"tags,omitempty"`
	Specifications *map[string]string `json:"specifications,omitempty"`
	Analytics      *AnalyticsSnapshot `json:"analytics,omitempty"`
}

// Validate rejects patches that would break catalog invariants
func (pp ProductPatch) Validate() error {
	if pp.Name != nil && strings.TrimSpace(*pp.Name) == "" {
		return NewValidationError("name", "Name cannot be empty")
	}
	if pp.Price != nil && *pp.Price <= 0 {
		return NewValidationError("price", "Price must be greater than zero")
	}
	return nil
}

// Apply returns a patched copy of the product stamped with now
func (pp ProductPatch) Apply(p *Product, now time.Time) *Product {
	out := p.Clone()
	if pp.Name != nil {
		out.Name = *pp.Name
	}
	if pp.Description != nil {
		out.Description = *pp.Description
	}
	if pp.Ingredients != nil {
		out.Ingredients = *pp.Ingredients
	}
	if pp.Category != nil {
		out.Category = *pp.Category
	}
	if pp.Price != nil {
		out.Price = *pp.Price
	}
	if pp.Brand != nil {
		out.Brand = *pp.Brand
	}
	if pp.Images != nil {
		out.Images = append([]string(nil), (*pp.Images)...)
	}
	if pp.Tags != nil {
		out.Tags = append([]string(nil), (*pp.Tags)...)
	}
	if pp.Specifications != nil {
		out.Specifications = make(map[string]string, len(*pp.Specifications))
		for k, v := range *pp.Specifications {
			out.Specifications[k] = v
		}
	}
	if pp.Analytics != nil {
		out.Analytics = *pp.Analytics
		out.Analytics.Reviews = append([]Review(nil), pp.Analytics.Reviews...)
	}
	out.UpdatedAt = now
	return out
}
