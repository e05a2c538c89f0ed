// internal/menu/catalog_test.go
package menu

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogLookups(t *testing.T) {
	c := Default()

	if got := len(c.Categories()); got != 4 {
		t.Fatalf("expected 4 categories, got %d", got)
	}

	it, ok := c.Item("pizza", "pepperoni")
	if !ok {
		t.Fatal("expected pepperoni in pizza category")
	}
	if it.Price != 12.99 {
		t.Errorf("expected pepperoni price 12.99, got %v", it.Price)
	}

	if _, ok := c.Item("pizza", "sushi"); ok {
		t.Error("did not expect sushi in pizza category")
	}
	if _, ok := c.Item("desserts", "cake"); ok {
		t.Error("did not expect desserts category")
	}
}

func TestCatalogFind(t *testing.T) {
	c := Default()

	cat, it, ok := c.Find("soda")
	if !ok {
		t.Fatal("expected to find soda")
	}
	if cat != "drinks" {
		t.Errorf("expected soda in drinks, got %s", cat)
	}
	if it.Price != 1.99 {
		t.Errorf("expected soda price 1.99, got %v", it.Price)
	}

	if _, _, ok := c.Find("lobster"); ok {
		t.Error("did not expect to find lobster")
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.json")
	data := `{"tacos": {"al pastor": {"price": 3.50, "description": "Pork taco"}}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	it, ok := c.Item("tacos", "al pastor")
	if !ok {
		t.Fatal("expected al pastor in tacos")
	}
	if it.Price != 3.50 {
		t.Errorf("expected price 3.50, got %v", it.Price)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for empty catalog")
	}
}
