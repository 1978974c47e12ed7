package service

import (
	"context"
	"fmt"

	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

type seedNode struct {
	name     string
	slug     string
	children []seedNode
}

// defaultCategoryTree is the two-root home/garden hierarchy the catalog
// starts from. Operators extend it later; the seeder only fills an empty
// table.
var defaultCategoryTree = []seedNode{
	{name: "Home", slug: "home", children: []seedNode{
		{name: "Kitchen & Dining", slug: "kitchen", children: []seedNode{
			{name: "Cookware", slug: "cookware"},
			{name: "Bakeware", slug: "bakeware"},
			{name: "Kitchen Tools", slug: "kitchen-tools"},
			{name: "Knives & Cutting", slug: "knives"},
			{name: "Food Storage", slug: "food-storage"},
			{name: "Small Appliances", slug: "small-appliances"},
			{name: "Tableware", slug: "tableware"},
			{name: "Drinkware", slug: "drinkware"},
		}},
		{name: "Cleaning", slug: "cleaning", children: []seedNode{
			{name: "Mops & Brooms", slug: "mops"},
			{name: "Cleaning Tools", slug: "cleaning-tools"},
			{name: "Sponges & Cloths", slug: "sponges"},
			{name: "Buckets", slug: "buckets"},
		}},
		{name: "Storage & Organization", slug: "storage", children: []seedNode{
			{name: "Boxes & Organizers", slug: "boxes"},
			{name: "Drawer Organizers", slug: "drawer-organizers"},
			{name: "Wardrobe Organizers", slug: "wardrobe"},
			{name: "Shelving & Racks", slug: "shelving"},
			{name: "Hangers", slug: "hangers"},
		}},
		{name: "Home Decor", slug: "decor", children: []seedNode{
			{name: "Wall Decor", slug: "wall-decor"},
			{name: "Mirrors", slug: "mirrors"},
			{name: "Candles", slug: "candles"},
			{name: "Clocks", slug: "clocks"},
		}},
		{name: "Lighting", slug: "lighting", children: []seedNode{
			{name: "Ceiling Lights", slug: "ceiling"},
			{name: "Table Lamps", slug: "table-lamps"},
			{name: "Floor Lamps", slug: "floor-lamps"},
			{name: "LED", slug: "led"},
		}},
		{name: "Bathroom", slug: "bathroom", children: []seedNode{
			{name: "Shower Accessories", slug: "shower"},
			{name: "Bath Mats", slug: "bath-mats"},
			{name: "Bathroom Storage", slug: "bathroom-storage"},
		}},
		{name: "Bedroom", slug: "bedroom", children: []seedNode{
			{name: "Bedding", slug: "bedding"},
			{name: "Pillows", slug: "pillows"},
			{name: "Blankets", slug: "blankets"},
		}},
		{name: "Home Improvement", slug: "improvement", children: []seedNode{
			{name: "Hardware", slug: "hardware"},
			{name: "Adhesives", slug: "adhesives"},
			{name: "Tools & Measuring", slug: "measuring"},
		}},
	}},
	{name: "Garden", slug: "garden", children: []seedNode{
		{name: "Plants & Growing", slug: "plants", children: []seedNode{
			{name: "Seeds", slug: "seeds"},
			{name: "Soil & Fertilizers", slug: "soil"},
			{name: "Pots & Planters", slug: "pots"},
		}},
		{name: "Watering & Irrigation", slug: "irrigation", children: []seedNode{
			{name: "Hoses", slug: "hoses"},
			{name: "Sprinklers", slug: "sprinklers"},
			{name: "Drip Irrigation", slug: "drip"},
		}},
		{name: "Garden Tools", slug: "tools", children: []seedNode{
			{name: "Hand Tools", slug: "hand-tools"},
			{name: "Power Tools", slug: "power-tools"},
			{name: "Gloves", slug: "gloves"},
		}},
		{name: "Outdoor Living", slug: "outdoor", children: []seedNode{
			{name: "Outdoor Furniture", slug: "furniture"},
			{name: "Umbrellas & Shades", slug: "umbrellas"},
			{name: "Hammocks", slug: "hammocks"},
		}},
		{name: "BBQ & Cooking", slug: "bbq", children: []seedNode{
			{name: "Grills", slug: "grills"},
			{name: "BBQ Accessories", slug: "bbq-accessories"},
		}},
		{name: "Garden Lighting & Decor", slug: "garden-decor", children: []seedNode{
			{name: "Solar Lights", slug: "solar"},
			{name: "Garden Statues", slug: "statues"},
		}},
	}},
}

// SeedCategories fills an empty categories table with the default tree.
// A non-empty table is left untouched.
func SeedCategories(ctx context.Context, repo repository.CategoryRepository, log zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeded := 0
	for _, root := range defaultCategoryTree {
		n, err := seedSubtree(ctx, repo, root, nil, []string{}, 0, 0)
		if err != nil {
			return err
		}
		seeded += n
	}

	log.Info().Int("nodes", seeded).Msg("Category tree seeded")
	return nil
}

func seedSubtree(ctx context.Context, repo repository.CategoryRepository, n seedNode, parentID *string, parentPath []string, level, order int) (int, error) {
	path := append(append([]string{}, parentPath...), n.slug)
	node := &models.CategoryNode{
		Name:      n.name,
		Slug:      n.slug,
		ParentID:  parentID,
		Path:      path,
		Level:     level,
		SortOrder: order,
		IsActive:  true,
	}
	if err := repo.Upsert(ctx, node); err != nil {
		return 0, fmt.Errorf("seeding %v: %w", path, err)
	}

	total := 1
	for i, child := range n.children {
		sub, err := seedSubtree(ctx, repo, child, &node.ID, path, level+1, i+1)
		if err != nil {
			return total, err
		}
		total += sub
	}
	return total, nil
}
