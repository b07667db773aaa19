package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/poundtowntx/storefront-backend/pkg/printful"
)

// Recognized option axes. Products may carry zero, one, or both.
const (
	OptionSize  = "size"
	OptionColor = "color"
)

// OptionAxes holds the distinct values seen per axis across a product's
// variants, in first-seen catalog order. An empty slice means the axis does
// not apply and is never required.
type OptionAxes struct {
	Sizes  []string `json:"sizes"`
	Colors []string `json:"colors"`
}

// Selection is the user's in-progress option choice. Empty means not chosen.
type Selection struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// Options extracts the option axes from a product's variants, de-duplicated
// and preserving first-seen order.
func Options(variants []printful.SyncVariant) OptionAxes {
	return OptionAxes{
		Sizes:  distinctOptionValues(variants, OptionSize),
		Colors: distinctOptionValues(variants, OptionColor),
	}
}

func distinctOptionValues(variants []printful.SyncVariant, key string) []string {
	var values []string
	seen := map[string]struct{}{}
	for _, v := range variants {
		value := variantOption(v, key)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}

func variantOption(v printful.SyncVariant, key string) string {
	for _, opt := range v.Options {
		if opt.ID == key {
			return opt.Value.String()
		}
	}
	return ""
}

// DefaultSelection auto-selects any axis with exactly one possible value.
// It is a pure derivation applied once when catalog data loads; rendering
// never mutates selection state.
func DefaultSelection(axes OptionAxes) Selection {
	var sel Selection
	if len(axes.Sizes) == 1 {
		sel.Size = axes.Sizes[0]
	}
	if len(axes.Colors) == 1 {
		sel.Color = axes.Colors[0]
	}
	return sel
}

// CanAddToCart reports whether every axis that has possible values carries a
// selection. Products with no option axes are always addable.
func CanAddToCart(axes OptionAxes, sel Selection) bool {
	return len(MissingOptions(axes, sel)) == 0
}

// MissingOptions names the axes that still need a choice.
func MissingOptions(axes OptionAxes, sel Selection) []string {
	var missing []string
	if len(axes.Sizes) > 0 && sel.Size == "" {
		missing = append(missing, OptionSize)
	}
	if len(axes.Colors) > 0 && sel.Color == "" {
		missing = append(missing, OptionColor)
	}
	return missing
}

// Resolve returns the variant addressed by the current selection, or nil.
//
// A variant matches when, per axis: a selected value equals the variant's
// value, and an unselected axis constrains only variants that carry a value
// for it. Ties resolve to the first variant in catalog order; that ordering
// is deliberate and covered by tests.
func Resolve(variants []printful.SyncVariant, axes OptionAxes, sel Selection) *printful.SyncVariant {
	for i := range variants {
		if matches(variants[i], axes, sel) {
			return &variants[i]
		}
	}
	return nil
}

func matches(v printful.SyncVariant, axes OptionAxes, sel Selection) bool {
	return axisMatches(variantOption(v, OptionSize), axes.Sizes, sel.Size) &&
		axisMatches(variantOption(v, OptionColor), axes.Colors, sel.Color)
}

func axisMatches(variantValue string, axisValues []string, selected string) bool {
	if selected != "" {
		return variantValue == selected
	}
	// No selection yet: only variants without a value for this axis are
	// unconstrained. When the axis does not apply at all, everything matches.
	return variantValue == "" || len(axisValues) == 0
}

// PriceRange spans the minimum and maximum retail price across variants.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Range computes the displayable price span. Unparseable prices are skipped;
// a product with no parseable price yields a zero range.
func Range(variants []printful.SyncVariant) PriceRange {
	var r PriceRange
	seeded := false
	for _, v := range variants {
		price, err := decimal.NewFromString(v.RetailPrice)
		if err != nil {
			continue
		}
		if !seeded {
			r.Min, r.Max = price, price
			seeded = true
			continue
		}
		if price.LessThan(r.Min) {
			r.Min = price
		}
		if price.GreaterThan(r.Max) {
			r.Max = price
		}
	}
	return r
}

// PreviewImage picks the variant's display image: the first preview file,
// falling back to the first file with any usable URL.
func PreviewImage(v printful.SyncVariant) string {
	for _, f := range v.Files {
		if f.Type == "preview" {
			if f.PreviewURL != "" {
				return f.PreviewURL
			}
			return f.URL
		}
	}
	for _, f := range v.Files {
		if f.PreviewURL != "" {
			return f.PreviewURL
		}
		if f.URL != "" {
			return f.URL
		}
	}
	return ""
}

// Display renders "19.99" for a flat range and "19.99-24.99" otherwise.
func (r PriceRange) Display() string {
	if r.Min.Equal(r.Max) {
		return r.Min.StringFixed(2)
	}
	return r.Min.StringFixed(2) + "-" + r.Max.StringFixed(2)
}
