package pricing

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"project-config-api/internal/domain"
)

// Catalog is a read-only view of categories, items and the effective price table
// for one project. It is never mutated after construction and may be shared
// between goroutines.
type Catalog struct {
	categories   []domain.Category
	items        []domain.Item
	entries      []domain.PriceTableEntry
	priceTableID *uuid.UUID

	categoryIdx   map[uuid.UUID]int
	itemIdx       map[uuid.UUID]int
	variationIdx  map[uuid.UUID]*domain.ItemVariation
	itemCost      map[uuid.UUID]decimal.Decimal
	variationCost map[uuid.UUID]decimal.Decimal
}

// NewCatalog builds a catalog. categories must already be in wizard order
// (see OrderCategories); table may be nil when the project has no effective price table.
func NewCatalog(categories []domain.Category, items []domain.Item, table *domain.PriceTable) *Catalog {
	c := &Catalog{
		categories: categories,
		items:      items,
	}
	if table != nil {
		id := table.ID
		c.priceTableID = &id
		c.entries = table.Entries
	}
	c.index()
	return c
}

func (c *Catalog) index() {
	c.categoryIdx = make(map[uuid.UUID]int, len(c.categories))
	for i := range c.categories {
		c.categoryIdx[c.categories[i].ID] = i
	}

	c.itemIdx = make(map[uuid.UUID]int, len(c.items))
	c.variationIdx = make(map[uuid.UUID]*domain.ItemVariation)
	for i := range c.items {
		c.itemIdx[c.items[i].ID] = i
		for j := range c.items[i].Variations {
			v := &c.items[i].Variations[j]
			c.variationIdx[v.ID] = v
		}
	}

	c.itemCost = make(map[uuid.UUID]decimal.Decimal)
	c.variationCost = make(map[uuid.UUID]decimal.Decimal)
	for _, e := range c.entries {
		if e.VariationID != nil {
			c.variationCost[*e.VariationID] = e.Cost
		} else {
			c.itemCost[e.ItemID] = e.Cost
		}
	}
}

// Categories returns the categories in wizard order
func (c *Catalog) Categories() []domain.Category {
	return c.categories
}

// PriceTableID returns the effective price table, if any
func (c *Catalog) PriceTableID() *uuid.UUID {
	return c.priceTableID
}

// Category looks up a category by ID
func (c *Catalog) Category(id uuid.UUID) (*domain.Category, bool) {
	i, ok := c.categoryIdx[id]
	if !ok {
		return nil, false
	}
	return &c.categories[i], true
}

// Item looks up an item by ID
func (c *Catalog) Item(id uuid.UUID) (*domain.Item, bool) {
	i, ok := c.itemIdx[id]
	if !ok {
		return nil, false
	}
	return &c.items[i], true
}

// Variation looks up a variation by ID
func (c *Catalog) Variation(id uuid.UUID) (*domain.ItemVariation, bool) {
	v, ok := c.variationIdx[id]
	return v, ok
}

// ItemsIn returns the items of a category visible at the given time
func (c *Catalog) ItemsIn(categoryID uuid.UUID, now time.Time) []*domain.Item {
	var out []*domain.Item
	for i := range c.items {
		item := &c.items[i]
		if item.CategoryID == categoryID && item.IsVisibleAt(now) {
			out = append(out, item)
		}
	}
	return out
}

// ItemCost returns the item's additional cost, overridden by the effective price table
func (c *Catalog) ItemCost(item *domain.Item) decimal.Decimal {
	if cost, ok := c.itemCost[item.ID]; ok {
		return cost
	}
	return item.AdditionalCost
}

// VariationCost returns the variation surcharge, overridden by the effective price table
func (c *Catalog) VariationCost(v *domain.ItemVariation) decimal.Decimal {
	if cost, ok := c.variationCost[v.ID]; ok {
		return cost
	}
	return v.Surcharge
}

type catalogJSON struct {
	Categories   []domain.Category        `json:"categories"`
	Items        []domain.Item            `json:"items"`
	Entries      []domain.PriceTableEntry `json:"entries"`
	PriceTableID *uuid.UUID               `json:"price_table_id"`
}

// MarshalJSON encodes the catalog for the snapshot cache
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(catalogJSON{
		Categories:   c.categories,
		Items:        c.items,
		Entries:      c.entries,
		PriceTableID: c.priceTableID,
	})
}

// UnmarshalJSON decodes a cached catalog and rebuilds its indexes
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var raw catalogJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.categories = raw.Categories
	c.items = raw.Items
	c.entries = raw.Entries
	c.priceTableID = raw.PriceTableID
	c.index()
	return nil
}

// OrderCategories flattens a flat category list into wizard order:
// a pre-order walk of the tree with siblings sorted by Order, then Name.
// Categories whose parent is missing are walked after the regular roots.
func OrderCategories(flat []domain.Category) []domain.Category {
	known := make(map[uuid.UUID]bool, len(flat))
	for _, c := range flat {
		known[c.ID] = true
	}

	children := make(map[uuid.UUID][]domain.Category)
	var roots, strays []domain.Category
	for _, c := range flat {
		c.Children = nil
		c.Items = nil
		switch {
		case c.ParentID == nil:
			roots = append(roots, c)
		case known[*c.ParentID]:
			children[*c.ParentID] = append(children[*c.ParentID], c)
		default:
			strays = append(strays, c)
		}
	}

	bySortKey := func(list []domain.Category) {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Order != list[j].Order {
				return list[i].Order < list[j].Order
			}
			return list[i].Name < list[j].Name
		})
	}

	out := make([]domain.Category, 0, len(flat))
	visited := make(map[uuid.UUID]bool, len(flat))
	var walk func(list []domain.Category)
	walk = func(list []domain.Category) {
		bySortKey(list)
		for _, c := range list {
			if visited[c.ID] {
				continue
			}
			visited[c.ID] = true
			out = append(out, c)
			walk(children[c.ID])
		}
	}
	walk(roots)
	walk(strays)
	return out
}

// ResolvePriceTable picks the project's effective price table: the manually
// assigned one when set, otherwise the active table for the project's creation year.
func ResolvePriceTable(project *domain.ConstructionProject, tables []*domain.PriceTable) *domain.PriceTable {
	if project.PriceTableID != nil {
		for _, t := range tables {
			if t.ID == *project.PriceTableID {
				return t
			}
		}
	}
	year := project.CreatedAt.Year()
	for _, t := range tables {
		if t.IsActive && t.Year == year {
			return t
		}
	}
	return nil
}
