package resolve

import (
	"testing"

	"github.com/catalog-ingest-api/internal/tabular"
)

func TestResolveAliasPriority(t *testing.T) {
	r := New(DefaultAliases())

	tests := []struct {
		name   string
		header []string
		row    tabular.Row
		want   func(Fields) (string, string) // got, want
	}{
		{
			name:   "localized title preferred over english",
			header: []string{"Наименование на продукта", "Title"},
			row:    tabular.Row{"Наименование на продукта": "Тиган 28см", "Title": "Pan 28cm"},
			want:   func(f Fields) (string, string) { return f.Title, "Тиган 28см" },
		},
		{
			name:   "blank alias value falls through to next",
			header: []string{"Наименование на продукта", "Title"},
			row:    tabular.Row{"Наименование на продукта": "  ", "Title": "Pan 28cm"},
			want:   func(f Fields) (string, string) { return f.Title, "Pan 28cm" },
		},
		{
			name:   "clean product link resolved separately from affiliate",
			header: []string{"Текстов линк на продукта", "Линк към продукта"},
			row: tabular.Row{
				"Текстов линк на продукта": "http://track.example/r?id=1",
				"Линк към продукта":        "http://shop.example/p/1",
			},
			want: func(f Fields) (string, string) { return f.ProductURL, "http://shop.example/p/1" },
		},
		{
			name:   "sale price alias",
			header: []string{"Цена с намаление, с ДДС"},
			row:    tabular.Row{"Цена с намаление, с ДДС": "9,99"},
			want:   func(f Fields) (string, string) { return f.SalePriceRaw, "9,99" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, want := tt.want(r.Resolve(tt.header, tt.row))
			if got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestResolveLinkFallback(t *testing.T) {
	r := New(DefaultAliases())
	header := []string{"code", "somewhere", "elsewhere"}
	row := tabular.Row{
		"code":      "ABC-123",
		"somewhere": "not a url",
		"elsewhere": "https://shop.example/p/42",
	}

	f := r.Resolve(header, row)
	if f.AffiliateURL != "https://shop.example/p/42" {
		t.Errorf("URL fallback failed, got %q", f.AffiliateURL)
	}
}

func TestResolveImageFallback(t *testing.T) {
	r := New(DefaultAliases())

	t.Run("extension match wins", func(t *testing.T) {
		header := []string{"a", "b"}
		row := tabular.Row{
			"a": "https://cdn.example/page",
			"b": "https://files.example/p/42.jpg",
		}
		f := r.Resolve(header, row)
		if f.ImageURL != "https://files.example/p/42.jpg" {
			t.Errorf("got %q", f.ImageURL)
		}
	})

	t.Run("hint token fallback", func(t *testing.T) {
		header := []string{"a", "b"}
		row := tabular.Row{
			"a": "https://shop.example/p/42",
			"b": "https://img.example/p/42",
		}
		f := r.Resolve(header, row)
		if f.ImageURL != "https://img.example/p/42" {
			t.Errorf("got %q", f.ImageURL)
		}
	})
}

func TestResolvePriceFallback(t *testing.T) {
	r := New(DefaultAliases())
	header := []string{"Retail price text", "Net price"}
	row := tabular.Row{
		"Retail price text": "call us",
		"Net price":         "1 234,56",
	}

	f := r.Resolve(header, row)
	if f.PriceRaw != "1 234,56" {
		t.Errorf("price header scan failed, got %q", f.PriceRaw)
	}
}

func TestLoadAliasesMergesOverDefaults(t *testing.T) {
	aliases, err := LoadAliases("")
	if err != nil {
		t.Fatalf("LoadAliases failed: %v", err)
	}
	if len(aliases[FieldTitle]) == 0 {
		t.Fatal("defaults missing")
	}
}
