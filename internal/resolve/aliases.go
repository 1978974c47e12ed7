package resolve

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Canonical field names, used as alias-table keys and YAML keys
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldCategoryText = "category_text"
	FieldBrand        = "brand"
	FieldAdvertiser   = "advertiser"
	FieldProductCode  = "product_code"
	FieldAffiliateURL = "affiliate_url"
	FieldProductURL   = "product_url"
	FieldImageURL     = "image_url"
	FieldPrice        = "price"
	FieldSalePrice    = "sale_price"
	FieldCurrency     = "currency"
	FieldFreeShipping = "free_shipping"
	FieldGift         = "gift"
)

// Aliases maps a canonical field to its ordered list of feed column headers.
// Scan order is priority order.
type Aliases map[string][]string

// DefaultAliases covers the affiliate network's Bulgarian export plus the
// common English header variants.
func DefaultAliases() Aliases {
	return Aliases{
		FieldAdvertiser:   {"Име рекламодател", "Advertiser", "Merchant"},
		FieldCategoryText: {"Категория", "Category"},
		FieldBrand:        {"Производител", "Manufacturer", "Brand"},
		FieldProductCode:  {"Код продукт", "Product code", "SKU"},
		FieldTitle:        {"Наименование на продукта", "Product name", "Name", "Title"},
		FieldDescription:  {"Описание на продукта", "Description"},
		FieldAffiliateURL: {"Текстов линк на продукта", "Affiliate URL", "Product URL", "URL", "Link"},
		FieldProductURL:   {"Линк към продукта", "Продуктов линк", "Product link", "Product Link"},
		FieldImageURL:     {"Профилна снимка", "Image", "Image URL", "ImageUrl"},
		FieldPrice:        {"Цена с ДДС", "Price", "Price VAT"},
		FieldSalePrice:    {"Цена с намаление, с ДДС", "Sale price", "Discount price"},
		FieldCurrency:     {"Валута", "Currency"},
		FieldFreeShipping: {"Безплатна доставка", "Free shipping", "FreeShipping"},
		FieldGift:         {"Включен подарък", "Gift", "Included gift"},
	}
}

// LoadAliases reads a YAML alias file and merges it over the defaults, so a
// feed-specific file only needs to list the fields it changes.
func LoadAliases(path string) (Aliases, error) {
	merged := DefaultAliases()
	if path == "" {
		return merged, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	var overrides Aliases
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}

	for field, list := range overrides {
		if len(list) > 0 {
			merged[field] = list
		}
	}
	return merged, nil
}
