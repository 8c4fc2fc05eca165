package wizard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"project-config-api/internal/domain"
	"project-config-api/internal/pricing"
)

// ValidationError describes why a selection cannot be accepted
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// validateShape checks what a selection must satisfy regardless of the catalog
func validateShape(sel pricing.Selection) error {
	if sel.Quantity != nil && *sel.Quantity < 1 {
		return invalid("quantity", "quantity must be at least 1")
	}
	switch sel.Context.Kind {
	case domain.ContextRoom, domain.ContextBathroom, domain.ContextNone, "":
		return nil
	default:
		return invalid("context", "unknown context kind %q", sel.Context.Kind)
	}
}

// ValidateSelection checks a selection against the catalog snapshot and the project
func ValidateSelection(sel pricing.Selection, snapshot *pricing.Snapshot, now time.Time) error {
	if err := validateShape(sel); err != nil {
		return err
	}

	item, ok := snapshot.Catalog.Item(sel.ItemID)
	if !ok {
		return invalid("itemId", "item %s does not exist", sel.ItemID)
	}
	if !item.IsVisibleAt(now) {
		return invalid("itemId", "item %q is not available yet", item.Name)
	}

	if sel.VariationID != nil {
		v, ok := snapshot.Catalog.Variation(*sel.VariationID)
		if !ok || v.ItemID != item.ID {
			return invalid("variationId", "variation %s does not belong to item %q", *sel.VariationID, item.Name)
		}
	}

	switch sel.Context.Kind {
	case domain.ContextRoom:
		room, ok := snapshot.Project.Room(sel.Context.ID)
		if !ok {
			return invalid("roomId", "room %s is not part of the project", sel.Context.ID)
		}
		if room.Prohibits(item.ID) {
			return invalid("itemId", "item %q is not allowed in room %q", item.Name, room.Name)
		}
	case domain.ContextBathroom:
		if _, ok := snapshot.Project.Bathroom(sel.Context.ID); !ok {
			return invalid("bathroomId", "bathroom %s is not part of the project", sel.Context.ID)
		}
	}
	return nil
}

// ValidateSelections validates every selection. Selections whose key is in
// carried were accepted earlier: they keep their place even when their item has
// since left the catalog, but their quantity and context kind are still checked.
func ValidateSelections(selections []pricing.Selection, carried map[string]bool, snapshot *pricing.Snapshot, now time.Time) error {
	for _, sel := range selections {
		if carried[sel.Key()] {
			if err := validateShape(sel); err != nil {
				return err
			}
			continue
		}
		if err := ValidateSelection(sel, snapshot, now); err != nil {
			return err
		}
	}
	return nil
}

// MissingStandards returns the categories that offer visible standard items
// of which none is selected. A configuration with missing standards cannot be completed.
func MissingStandards(snapshot *pricing.Snapshot, selections []pricing.Selection, now time.Time) []domain.Category {
	selected := make(map[uuid.UUID]bool, len(selections))
	for _, sel := range selections {
		selected[sel.ItemID] = true
	}

	var missing []domain.Category
	for _, cat := range snapshot.Catalog.Categories() {
		hasStandard := false
		satisfied := false
		for _, item := range snapshot.Catalog.ItemsIn(cat.ID, now) {
			if !item.IsStandard {
				continue
			}
			hasStandard = true
			if selected[item.ID] {
				satisfied = true
				break
			}
		}
		if hasStandard && !satisfied {
			missing = append(missing, cat)
		}
	}
	return missing
}
