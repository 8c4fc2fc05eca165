package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnavailableGroupName labels the group of lines whose item or category left the catalog
const UnavailableGroupName = "Unavailable items"

// Group collects the lines of one category
type Group struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Lines        []Line
	Subtotal     decimal.Decimal
}

// Breakdown is the full priced view of a configuration, grouped by category in wizard order
type Breakdown struct {
	Groups        []Group
	Total         decimal.Decimal
	OrphanedCount int
	LegacyCount   int
}

// Breakdown prices every selection and groups the lines by category.
// Groups follow wizard order; lines without a known category go to a trailing group
// in selection order.
func (e *Engine) Breakdown(selections []Selection, project *ProjectContext) Breakdown {
	out := Breakdown{Total: decimal.Zero}
	lines := make([]Line, 0, len(selections))
	byCategory := make(map[uuid.UUID][]Line)

	for _, sel := range selections {
		line := e.PriceSelection(sel, project)
		if line.LegacyClassified {
			out.LegacyCount++
		}
		if line.Orphaned {
			out.OrphanedCount++
		}
		lines = append(lines, line)
		if !line.Orphaned && line.CategoryID != nil {
			byCategory[*line.CategoryID] = append(byCategory[*line.CategoryID], line)
		}
	}

	grouped := make(map[uuid.UUID]bool)
	for _, cat := range e.catalog.Categories() {
		catLines, ok := byCategory[cat.ID]
		if !ok {
			continue
		}
		grouped[cat.ID] = true
		id := cat.ID
		out.Groups = append(out.Groups, newGroup(&id, cat.Name, catLines))
	}

	var rest []Line
	for _, l := range lines {
		if l.Orphaned || l.CategoryID == nil || !grouped[*l.CategoryID] {
			rest = append(rest, l)
		}
	}
	if len(rest) > 0 {
		out.Groups = append(out.Groups, newGroup(nil, UnavailableGroupName, rest))
	}

	for _, g := range out.Groups {
		out.Total = out.Total.Add(g.Subtotal)
	}
	return out
}

func newGroup(categoryID *uuid.UUID, name string, lines []Line) Group {
	g := Group{CategoryID: categoryID, CategoryName: name, Lines: lines, Subtotal: decimal.Zero}
	for _, l := range lines {
		g.Subtotal = g.Subtotal.Add(l.Total)
	}
	return g
}
