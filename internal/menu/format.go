// internal/menu/format.go
package menu

import (
	"fmt"
	"strings"
)

// title capitalizes each word. Menu names are plain ASCII.
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatCategories renders the category overview shown for a general menu
// inquiry.
func (c *Catalog) FormatCategories() string {
	var b strings.Builder
	b.WriteString("We offer the following categories:\n")
	for _, cat := range c.categories {
		fmt.Fprintf(&b, "• %s\n", title(cat))
	}
	b.WriteString("\nWhat would you like to know more about?")
	return b.String()
}

// FormatCategory renders every item in one category. Returns false if the
// category does not exist.
func (c *Catalog) FormatCategory(category string) (string, bool) {
	if !c.HasCategory(category) {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Here are our %s options:\n", category)
	for _, name := range c.itemOrder[category] {
		it := c.items[category][name]
		fmt.Fprintf(&b, "• %s: %s - $%.2f\n", title(name), it.Description, it.Price)
	}
	return b.String(), true
}

// FormatItem renders a single item line. Returns false if no category carries
// the item.
func (c *Catalog) FormatItem(name string) (string, bool) {
	_, it, ok := c.Find(name)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s: %s - $%.2f", title(name), it.Description, it.Price), true
}

// FormatFull renders the complete menu.
func (c *Catalog) FormatFull() string {
	var b strings.Builder
	b.WriteString("Here's our full menu:\n\n")
	for _, cat := range c.categories {
		fmt.Fprintf(&b, "%s\n", strings.ToUpper(cat))
		for _, name := range c.itemOrder[cat] {
			it := c.items[cat][name]
			fmt.Fprintf(&b, "• %s: %s - $%.2f\n", title(name), it.Description, it.Price)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSummary renders the compact one-line-per-category listing used when
// item extraction finds nothing in the user's message.
func (c *Catalog) FormatSummary() string {
	var b strings.Builder
	for _, cat := range c.categories {
		names := make([]string, 0, len(c.itemOrder[cat]))
		for _, name := range c.itemOrder[cat] {
			names = append(names, title(name))
		}
		fmt.Fprintf(&b, "• %s: %s\n", title(cat), strings.Join(names, ", "))
	}
	return b.String()
}
