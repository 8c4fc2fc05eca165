package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"project-config-api/internal/domain"
)

// AppliedRule names the formula that produced a line total
type AppliedRule string

const (
	AppliedStandard    AppliedRule = "standard"
	AppliedFloorSpace  AppliedRule = "floor_space"
	AppliedFacadeArea  AppliedRule = "facade_area"
	AppliedRoomCount   AppliedRule = "room_count"
	AppliedPerBathroom AppliedRule = "per_bathroom"
	AppliedQuantity    AppliedRule = "quantity"
	AppliedSingle      AppliedRule = "single"
	AppliedOrphaned    AppliedRule = "orphaned"
)

// Selection is one chosen item, optionally with variation, quantity and room/bathroom context
type Selection struct {
	ItemID      uuid.UUID               `json:"item_id"`
	VariationID *uuid.UUID              `json:"variation_id,omitempty"`
	Quantity    *int                    `json:"quantity,omitempty"`
	Context     domain.SelectionContext `json:"context"`
}

// Key identifies a selection within a configuration: item, variation and context.
// Quantity is not part of the key.
func (s Selection) Key() string {
	variation := "-"
	if s.VariationID != nil {
		variation = s.VariationID.String()
	}
	ctx := "-"
	if s.Context.Kind == domain.ContextRoom || s.Context.Kind == domain.ContextBathroom {
		ctx = string(s.Context.Kind) + ":" + s.Context.ID.String()
	}
	return s.ItemID.String() + "|" + variation + "|" + ctx
}

// Line is the priced result of one selection
type Line struct {
	Selection        Selection
	CategoryID       *uuid.UUID
	ItemName         string
	VariationName    string
	ContextLabel     string
	UnitCost         decimal.Decimal
	Multiplier       decimal.Decimal
	Total            decimal.Decimal
	Rule             AppliedRule
	Classification   domain.PricingRule
	LegacyClassified bool
	Orphaned         bool
	Notes            []string
}

// Engine prices selections against a catalog snapshot. It holds no mutable state.
type Engine struct {
	catalog *Catalog
}

// NewEngine creates a pricing engine for the given catalog
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Price computes the line for one selection. item may be nil when the selection
// refers to an item that no longer exists; such lines are priced at zero and flagged.
func (e *Engine) Price(sel Selection, item *domain.Item, category *domain.Category, project *ProjectContext) Line {
	line := Line{
		Selection:    sel,
		ContextLabel: contextLabel(sel.Context, project),
		UnitCost:     decimal.Zero,
		Multiplier:   decimal.Zero,
		Total:        decimal.Zero,
	}

	if item == nil {
		line.Rule = AppliedOrphaned
		line.Orphaned = true
		line.Notes = append(line.Notes, "item is no longer in the catalog")
		return line
	}
	line.ItemName = item.Name
	catID := item.CategoryID
	line.CategoryID = &catID

	unit := e.catalog.ItemCost(item)
	if sel.VariationID != nil {
		v, ok := e.catalog.Variation(*sel.VariationID)
		if !ok || v.ItemID != item.ID {
			line.Rule = AppliedOrphaned
			line.Orphaned = true
			line.Notes = append(line.Notes, "variation is no longer in the catalog")
			return line
		}
		line.VariationName = v.Name
		unit = unit.Add(e.catalog.VariationCost(v))
	}
	line.UnitCost = unit

	rule, legacy := Classify(category)
	line.Classification = rule
	line.LegacyClassified = legacy
	if category == nil {
		line.Notes = append(line.Notes, "category is no longer in the catalog")
	}

	if item.IsStandard {
		line.Rule = AppliedStandard
		return line
	}

	multiplier, applied, notes := multiplierFor(rule, sel, item, category, project)
	line.Multiplier = multiplier
	line.Rule = applied
	line.Notes = append(line.Notes, notes...)
	line.Total = unit.Mul(multiplier)
	if line.Total.IsNegative() {
		line.Total = decimal.Zero
		line.Notes = append(line.Notes, "negative total clamped to zero")
	}
	return line
}

// multiplierFor applies the cost formulas in precedence order, first match wins
func multiplierFor(rule domain.PricingRule, sel Selection, item *domain.Item, category *domain.Category, project *ProjectContext) (decimal.Decimal, AppliedRule, []string) {
	var notes []string

	if rule == domain.PricingRuleFloor && category != nil && category.Scope == domain.ScopeRoom && sel.Context.IsRoom() {
		if room, ok := project.Room(sel.Context.ID); ok {
			return room.FloorSpace, AppliedFloorSpace, nil
		}
		notes = append(notes, "room is not part of the project, priced as a single unit")
	}

	if rule == domain.PricingRuleFacade && category != nil && category.Scope == domain.ScopeWholeHouse &&
		sel.Context.Kind != domain.ContextRoom && sel.Context.Kind != domain.ContextBathroom {
		return project.FacadeArea, AppliedFacadeArea, notes
	}

	if rule == domain.PricingRuleVentilation {
		return decimal.NewFromInt(int64(project.RoomCount())), AppliedRoomCount, notes
	}

	if sel.Context.IsBathroom() {
		return decimal.NewFromInt(1), AppliedPerBathroom, notes
	}

	if item.RequiresQuantity {
		qty := 1
		switch {
		case sel.Quantity == nil:
			notes = append(notes, "quantity missing, defaulted to 1")
		case *sel.Quantity < 1:
			notes = append(notes, fmt.Sprintf("quantity %d below minimum, defaulted to 1", *sel.Quantity))
		default:
			qty = *sel.Quantity
		}
		return decimal.NewFromInt(int64(qty)), AppliedQuantity, notes
	}

	return decimal.NewFromInt(1), AppliedSingle, notes
}

// PriceSelection resolves the item and category of a selection from the catalog and prices it
func (e *Engine) PriceSelection(sel Selection, project *ProjectContext) Line {
	item, ok := e.catalog.Item(sel.ItemID)
	if !ok {
		return e.Price(sel, nil, nil, project)
	}
	category, _ := e.catalog.Category(item.CategoryID)
	return e.Price(sel, item, category, project)
}

// Total sums the line totals of all selections. Orphaned lines contribute zero.
func (e *Engine) Total(selections []Selection, project *ProjectContext) decimal.Decimal {
	total := decimal.Zero
	for _, sel := range selections {
		total = total.Add(e.PriceSelection(sel, project).Total)
	}
	return total
}

func contextLabel(ctx domain.SelectionContext, project *ProjectContext) string {
	switch ctx.Kind {
	case domain.ContextRoom:
		if room, ok := project.Room(ctx.ID); ok {
			return "Room: " + room.Name
		}
		return "Room: unknown"
	case domain.ContextBathroom:
		if b, ok := project.Bathroom(ctx.ID); ok {
			return fmt.Sprintf("Bathroom %d", b.RoomNumber)
		}
		return "Bathroom: unknown"
	default:
		return "Whole house"
	}
}

// Round rounds a money amount for display. Computation never rounds.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatMoney renders an amount with two decimals
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
