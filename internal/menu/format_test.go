// internal/menu/format_test.go
package menu

import (
	"strings"
	"testing"
)

func TestFormatCategoryIdempotent(t *testing.T) {
	c := Default()

	first, ok := c.FormatCategory("pizza")
	if !ok {
		t.Fatal("expected pizza category to format")
	}
	second, _ := c.FormatCategory("pizza")
	if first != second {
		t.Error("formatting the same category twice produced different output")
	}

	if !strings.Contains(first, "Pepperoni") || !strings.Contains(first, "$12.99") {
		t.Errorf("pizza listing missing pepperoni line:\n%s", first)
	}

	if _, ok := c.FormatCategory("desserts"); ok {
		t.Error("expected false for unknown category")
	}
}

func TestFormatItem(t *testing.T) {
	c := Default()

	text, ok := c.FormatItem("iced tea")
	if !ok {
		t.Fatal("expected iced tea to format")
	}
	if text != "Iced Tea: Cold tea with ice - $2.49" {
		t.Errorf("unexpected item line: %q", text)
	}

	if _, ok := c.FormatItem("lobster"); ok {
		t.Error("expected false for unknown item")
	}
}

func TestFormatCategoriesAndFull(t *testing.T) {
	c := Default()

	overview := c.FormatCategories()
	for _, want := range []string{"Pizza", "Burger", "Sides", "Drinks"} {
		if !strings.Contains(overview, want) {
			t.Errorf("overview missing %s:\n%s", want, overview)
		}
	}

	full := c.FormatFull()
	if !strings.Contains(full, "PIZZA") || !strings.Contains(full, "Milkshake") {
		t.Errorf("full menu missing entries:\n%s", full)
	}
	if full != c.FormatFull() {
		t.Error("full menu formatting is not deterministic")
	}
}

func TestFormatSummary(t *testing.T) {
	c := Default()
	summary := c.FormatSummary()
	if !strings.Contains(summary, "• Pizza:") || !strings.Contains(summary, "Cheeseburger") {
		t.Errorf("summary missing entries:\n%s", summary)
	}
}
