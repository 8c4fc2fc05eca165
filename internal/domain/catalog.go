package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxCategoryDepth is the deepest level a category may sit at (root = 0)
const MaxCategoryDepth = 2

// CategoryScope tells whether a category applies to the whole house or to single rooms
type CategoryScope string

const (
	ScopeWholeHouse CategoryScope = "whole_house"
	ScopeRoom       CategoryScope = "room"
)

// IsValid reports whether the scope is one of the known values
func (s CategoryScope) IsValid() bool {
	return s == ScopeWholeHouse || s == ScopeRoom
}

// PricingRule is the cost formula tag assigned to a category at authoring time.
// An empty rule marks a legacy row that has not been classified yet.
type PricingRule string

const (
	PricingRuleUnset       PricingRule = ""
	PricingRuleGeneric     PricingRule = "generic"
	PricingRuleFloor       PricingRule = "floor"
	PricingRuleFacade      PricingRule = "facade"
	PricingRuleVentilation PricingRule = "ventilation"
	PricingRuleBathroom    PricingRule = "bathroom"
)

// IsValid reports whether the rule can be stored on a category
func (r PricingRule) IsValid() bool {
	switch r {
	case PricingRuleGeneric, PricingRuleFloor, PricingRuleFacade, PricingRuleVentilation, PricingRuleBathroom:
		return true
	default:
		return false
	}
}

// Category is a node of the wizard's category tree
type Category struct {
	BaseModel
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Order       int           `gorm:"column:sort_order;not null;default:0;index:idx_categories_parent_order,priority:2" json:"order"`
	Scope       CategoryScope `gorm:"type:varchar(20);not null;default:'whole_house'" json:"scope"`
	PricingRule PricingRule   `gorm:"type:varchar(20);not null;default:''" json:"pricing_rule"`
	ParentID    *uuid.UUID    `gorm:"type:uuid;index:idx_categories_parent_order,priority:1" json:"parent_id"`
	Depth       int           `gorm:"not null;default:0" json:"depth"`
	Children    []Category    `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Items       []Item        `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// Item is a selectable piece of equipment inside a category
type Item struct {
	BaseModel
	CategoryID           uuid.UUID         `gorm:"type:uuid;not null;index:idx_items_category_id" json:"category_id"`
	Name                 string            `gorm:"type:varchar(255);not null" json:"name"`
	AdditionalCost       decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"additional_cost"`
	RequiresQuantity     bool              `gorm:"not null;default:false" json:"requires_quantity"`
	ConsultationRequired bool              `gorm:"not null;default:false" json:"consultation_required"`
	IsStandard           bool              `gorm:"not null;default:false" json:"is_standard"`
	HiddenUntil          *time.Time        `gorm:"type:timestamp" json:"hidden_until,omitempty"`
	Variations           []ItemVariation   `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"variations,omitempty"`
	PriceEntries         []PriceTableEntry `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"price_entries,omitempty"`
}

// TableName specifies the table name for Item
func (Item) TableName() string {
	return "items"
}

// IsVisibleAt reports whether the wizard may show the item at the given time
func (i *Item) IsVisibleAt(now time.Time) bool {
	return i.HiddenUntil == nil || !now.Before(*i.HiddenUntil)
}

// VariationType distinguishes size and color variations
type VariationType string

const (
	VariationTypeSize  VariationType = "size"
	VariationTypeColor VariationType = "color"
)

// ItemVariation is an optional size or color variant with its own surcharge
type ItemVariation struct {
	BaseModel
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_item_variations_item_id" json:"item_id"`
	Type      VariationType   `gorm:"type:varchar(20);not null" json:"type"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Surcharge decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"surcharge"`
}

// TableName specifies the table name for ItemVariation
func (ItemVariation) TableName() string {
	return "item_variations"
}

// PriceTable is a yearly catalog price list
type PriceTable struct {
	BaseModel
	Year     int               `gorm:"not null;index:idx_price_tables_year_active,priority:1" json:"year"`
	IsActive bool              `gorm:"not null;default:false;index:idx_price_tables_year_active,priority:2" json:"is_active"`
	Entries  []PriceTableEntry `gorm:"foreignKey:PriceTableID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

// TableName specifies the table name for PriceTable
func (PriceTable) TableName() string {
	return "price_tables"
}

// PriceTableEntry overrides an item's additional cost (VariationID nil)
// or a variation's surcharge (VariationID set) within one price table
type PriceTableEntry struct {
	BaseModel
	PriceTableID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_price_table_entries_target,priority:1" json:"price_table_id"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_price_table_entries_target,priority:2" json:"item_id"`
	VariationID  *uuid.UUID      `gorm:"type:uuid;uniqueIndex:uq_price_table_entries_target,priority:3" json:"variation_id"`
	Cost         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
}

// TableName specifies the table name for PriceTableEntry
func (PriceTableEntry) TableName() string {
	return "price_table_entries"
}
