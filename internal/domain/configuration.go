package domain

import (
	"github.com/google/uuid"
)

// Configuration is one customer's walk through the wizard for a project
type Configuration struct {
	BaseModel
	ProjectID      uuid.UUID           `gorm:"type:uuid;not null;index:idx_configurations_project_id" json:"project_id"`
	Name           string              `gorm:"type:varchar(255);not null" json:"name"`
	IsCompleted    bool                `gorm:"not null;default:false" json:"is_completed"`
	IsLocked       bool                `gorm:"not null;default:false;index:idx_configurations_is_locked" json:"is_locked"`
	LastCategoryID *uuid.UUID          `gorm:"type:uuid" json:"last_category_id"`
	Version        int                 `gorm:"not null;default:0" json:"version"`
	SelectionHash  string              `gorm:"type:varchar(64);not null;default:''" json:"-"`
	Items          []ConfigurationItem `gorm:"foreignKey:ConfigurationID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Configuration
func (Configuration) TableName() string {
	return "configurations"
}

// Position returns the persisted wizard position
func (c *Configuration) Position() WizardPosition {
	return WizardPosition{CategoryID: c.LastCategoryID}
}

// WizardPosition points at the category the wizard was showing when last saved
type WizardPosition struct {
	CategoryID *uuid.UUID `json:"categoryId"`
}

// ContextKind tags what a selection is scoped to
type ContextKind string

const (
	ContextNone     ContextKind = "none"
	ContextRoom     ContextKind = "room"
	ContextBathroom ContextKind = "bathroom"
)

// SelectionContext is the room / bathroom / whole-house scope of a selection.
// Kind and ID travel together so a selection can never point at both a room and a bathroom.
type SelectionContext struct {
	Kind ContextKind
	ID   uuid.UUID
}

// NoContext returns the whole-house context
func NoContext() SelectionContext {
	return SelectionContext{Kind: ContextNone}
}

// RoomContext returns a context scoped to a project room
func RoomContext(roomID uuid.UUID) SelectionContext {
	return SelectionContext{Kind: ContextRoom, ID: roomID}
}

// BathroomContext returns a context scoped to a project bathroom
func BathroomContext(bathroomID uuid.UUID) SelectionContext {
	return SelectionContext{Kind: ContextBathroom, ID: bathroomID}
}

// IsRoom reports whether the context is a room
func (c SelectionContext) IsRoom() bool { return c.Kind == ContextRoom }

// IsBathroom reports whether the context is a bathroom
func (c SelectionContext) IsBathroom() bool { return c.Kind == ContextBathroom }

// ConfigurationItem is one persisted selection of a configuration
type ConfigurationItem struct {
	BaseModel
	ConfigurationID uuid.UUID   `gorm:"type:uuid;not null;index:idx_configuration_items_configuration_id" json:"configuration_id"`
	ItemID          uuid.UUID   `gorm:"type:uuid;not null;index:idx_configuration_items_item_id" json:"item_id"`
	VariationID     *uuid.UUID  `gorm:"type:uuid" json:"variation_id"`
	Quantity        *int        `json:"quantity"`
	ContextKind     ContextKind `gorm:"type:varchar(20);not null;default:'none'" json:"context_kind"`
	ContextID       *uuid.UUID  `gorm:"type:uuid" json:"context_id"`
	Seq             int         `gorm:"not null;default:0" json:"-"`
}

// TableName specifies the table name for ConfigurationItem
func (ConfigurationItem) TableName() string {
	return "configuration_items"
}

// Context decodes the stored kind/id pair. Rows with a kind but no id fall back to no context.
func (ci *ConfigurationItem) Context() SelectionContext {
	if ci.ContextID == nil {
		return NoContext()
	}
	switch ci.ContextKind {
	case ContextRoom:
		return RoomContext(*ci.ContextID)
	case ContextBathroom:
		return BathroomContext(*ci.ContextID)
	default:
		return NoContext()
	}
}

// SetContext stores a selection context on the row
func (ci *ConfigurationItem) SetContext(ctx SelectionContext) {
	switch ctx.Kind {
	case ContextRoom, ContextBathroom:
		id := ctx.ID
		ci.ContextKind = ctx.Kind
		ci.ContextID = &id
	default:
		ci.ContextKind = ContextNone
		ci.ContextID = nil
	}
}
