package catalog

import (
	"reflect"
	"testing"

	"github.com/poundtowntx/storefront-backend/pkg/printful"
)

func variant(id int64, price string, opts ...printful.VariantOption) printful.SyncVariant {
	return printful.SyncVariant{
		ID:          id,
		RetailPrice: price,
		Options:     opts,
	}
}

func size(v string) printful.VariantOption {
	return printful.VariantOption{ID: OptionSize, Value: printful.OptionValue(v)}
}

func color(v string) printful.VariantOption {
	return printful.VariantOption{ID: OptionColor, Value: printful.OptionValue(v)}
}

func TestOptionsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	axes := Options([]printful.SyncVariant{
		variant(1, "19.99", size("M"), color("Black")),
		variant(2, "19.99", size("S"), color("Black")),
		variant(3, "19.99", size("M"), color("Red")),
		variant(4, "19.99", size("S"), color("Red")),
	})

	if !reflect.DeepEqual(axes.Sizes, []string{"M", "S"}) {
		t.Fatalf("expected sizes in first-seen order, got %v", axes.Sizes)
	}
	if !reflect.DeepEqual(axes.Colors, []string{"Black", "Red"}) {
		t.Fatalf("expected colors in first-seen order, got %v", axes.Colors)
	}
}

func TestOptionsIgnoresUnknownAxes(t *testing.T) {
	t.Parallel()

	axes := Options([]printful.SyncVariant{
		variant(1, "9.99", printful.VariantOption{ID: "stitch_color", Value: "White"}),
	})

	if len(axes.Sizes) != 0 || len(axes.Colors) != 0 {
		t.Fatalf("expected no recognized axes, got %+v", axes)
	}
}

func TestDefaultSelectionAutoSelectsSingleValueAxis(t *testing.T) {
	t.Parallel()

	sel := DefaultSelection(OptionAxes{
		Sizes:  []string{"S", "M"},
		Colors: []string{"Red"},
	})

	if sel.Size != "" {
		t.Fatalf("expected size unselected, got %q", sel.Size)
	}
	if sel.Color != "Red" {
		t.Fatalf("expected single color auto-selected, got %q", sel.Color)
	}
}

func TestDefaultSelectionNoAxes(t *testing.T) {
	t.Parallel()

	sel := DefaultSelection(OptionAxes{})
	if sel.Size != "" || sel.Color != "" {
		t.Fatalf("expected empty selection, got %+v", sel)
	}
}

func TestCanAddToCart(t *testing.T) {
	t.Parallel()

	axes := OptionAxes{Sizes: []string{"S", "M"}, Colors: []string{"Red"}}

	if CanAddToCart(axes, Selection{Color: "Red"}) {
		t.Fatal("expected unaddable while size missing")
	}
	if !CanAddToCart(axes, Selection{Size: "S", Color: "Red"}) {
		t.Fatal("expected addable with full selection")
	}
	if !CanAddToCart(OptionAxes{}, Selection{}) {
		t.Fatal("expected optionless product always addable")
	}
}

func TestMissingOptions(t *testing.T) {
	t.Parallel()

	axes := OptionAxes{Sizes: []string{"S", "M"}, Colors: []string{"Red", "Black"}}

	got := MissingOptions(axes, Selection{})
	if !reflect.DeepEqual(got, []string{OptionSize, OptionColor}) {
		t.Fatalf("expected both axes missing, got %v", got)
	}
	got = MissingOptions(axes, Selection{Size: "S"})
	if !reflect.DeepEqual(got, []string{OptionColor}) {
		t.Fatalf("expected color missing, got %v", got)
	}
}

func TestResolveFullSelection(t *testing.T) {
	t.Parallel()

	variants := []printful.SyncVariant{
		variant(1, "19.99", size("S"), color("Black")),
		variant(2, "19.99", size("M"), color("Black")),
		variant(3, "19.99", size("S"), color("Red")),
	}
	axes := Options(variants)

	got := Resolve(variants, axes, Selection{Size: "S", Color: "Red"})
	if got == nil || got.ID != 3 {
		t.Fatalf("expected variant 3, got %+v", got)
	}
}

func TestResolveOptionlessProduct(t *testing.T) {
	t.Parallel()

	variants := []printful.SyncVariant{variant(7, "12.50")}
	axes := Options(variants)

	got := Resolve(variants, axes, Selection{})
	if got == nil || got.ID != 7 {
		t.Fatalf("expected the sole variant, got %+v", got)
	}
}

func TestResolveFirstInCatalogOrder(t *testing.T) {
	t.Parallel()

	// Two variants share the same size; the earlier one wins.
	variants := []printful.SyncVariant{
		variant(1, "19.99", size("M")),
		variant(2, "24.99", size("M")),
	}
	axes := Options(variants)

	got := Resolve(variants, axes, Selection{Size: "M"})
	if got == nil || got.ID != 1 {
		t.Fatalf("expected first matching variant, got %+v", got)
	}
}

func TestResolveNoMatch(t *testing.T) {
	t.Parallel()

	variants := []printful.SyncVariant{
		variant(1, "19.99", size("S")),
	}
	axes := Options(variants)

	if got := Resolve(variants, axes, Selection{Size: "XL"}); got != nil {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestResolveUnselectedAxisConstrainsValuedVariants(t *testing.T) {
	t.Parallel()

	// Color is unselected: variants carrying a color value are excluded, so
	// only the color-free variant can match.
	variants := []printful.SyncVariant{
		variant(1, "19.99", size("M"), color("Black")),
		variant(2, "19.99", size("M")),
	}
	axes := Options(variants)

	got := Resolve(variants, axes, Selection{Size: "M"})
	if got == nil || got.ID != 2 {
		t.Fatalf("expected the color-free variant, got %+v", got)
	}
}

func TestPriceRangeDisplay(t *testing.T) {
	t.Parallel()

	spread := Range([]printful.SyncVariant{
		variant(1, "19.99"),
		variant(2, "24.99"),
		variant(3, "24.99"),
	})
	if got := spread.Display(); got != "19.99-24.99" {
		t.Fatalf("expected 19.99-24.99, got %q", got)
	}

	flat := Range([]printful.SyncVariant{
		variant(1, "19.99"),
		variant(2, "19.99"),
	})
	if got := flat.Display(); got != "19.99" {
		t.Fatalf("expected 19.99, got %q", got)
	}
}

func TestPriceRangeSkipsUnparseable(t *testing.T) {
	t.Parallel()

	r := Range([]printful.SyncVariant{
		variant(1, "not-a-price"),
		variant(2, "24.99"),
	})
	if got := r.Display(); got != "24.99" {
		t.Fatalf("expected 24.99, got %q", got)
	}
}

func TestPreviewImage(t *testing.T) {
	t.Parallel()

	v := printful.SyncVariant{Files: []printful.File{
		{Type: "default", URL: "https://files.example.com/print.png"},
		{Type: "preview", PreviewURL: "https://files.example.com/preview.png"},
	}}
	if got := PreviewImage(v); got != "https://files.example.com/preview.png" {
		t.Fatalf("expected preview file url, got %q", got)
	}

	noPreview := printful.SyncVariant{Files: []printful.File{
		{Type: "default", PreviewURL: "https://files.example.com/mock.png"},
	}}
	if got := PreviewImage(noPreview); got != "https://files.example.com/mock.png" {
		t.Fatalf("expected fallback url, got %q", got)
	}

	if got := PreviewImage(printful.SyncVariant{}); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
}
