package dto

import (
	"time"

	"github.com/google/uuid"
)

// Configuration status values derived from the completed / locked flags
const (
	StatusDraft     = "draft"
	StatusCompleted = "completed"
	StatusLocked    = "locked"
)

// CreateConfigurationRequest represents the request to start a configuration for a project
type CreateConfigurationRequest struct {
	Name string `json:"name" binding:"required,max=255" example:"Ground floor v1"`
}

// SelectionRequest is one selected item
// @Description roomId and bathroomId are mutually exclusive; omit both for a whole-house selection
type SelectionRequest struct {
	ItemID      uuid.UUID  `json:"itemId" binding:"required" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	VariationID *uuid.UUID `json:"variationId,omitempty"`
	Quantity    *int       `json:"quantity,omitempty" example:"2"`
	RoomID      *uuid.UUID `json:"roomId,omitempty"`
	BathroomID  *uuid.UUID `json:"bathroomId,omitempty"`
}

// SaveSelectionsRequest replaces the full selection set of a configuration
// @Description categoryId is the wizard position to store with the selections
// @Description expectedVersion enables optimistic concurrency; omit it for last-write-wins
// @Description autosave=true debounces the write and answers 202 Accepted
type SaveSelectionsRequest struct {
	Selections      []SelectionRequest `json:"selections" binding:"dive"`
	CategoryID      *uuid.UUID         `json:"categoryId,omitempty"`
	ExpectedVersion *int               `json:"expectedVersion,omitempty" example:"3"`
	Autosave        bool               `json:"autosave,omitempty" example:"false"`
}

// SelectionResponse is one persisted selection
type SelectionResponse struct {
	ItemID      uuid.UUID  `json:"itemId"`
	VariationID *uuid.UUID `json:"variationId,omitempty"`
	Quantity    *int       `json:"quantity,omitempty"`
	RoomID      *uuid.UUID `json:"roomId,omitempty"`
	BathroomID  *uuid.UUID `json:"bathroomId,omitempty"`
}

// ConfigurationResponse represents a configuration with its selections
type ConfigurationResponse struct {
	ID             uuid.UUID           `json:"configurationId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	ProjectID      uuid.UUID           `json:"projectId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Name           string              `json:"name" example:"Ground floor v1"`
	Status         string              `json:"status" example:"draft"`
	IsCompleted    bool                `json:"isCompleted"`
	IsLocked       bool                `json:"isLocked"`
	LastCategoryID *uuid.UUID          `json:"lastCategoryId,omitempty"`
	Version        int                 `json:"version" example:"3"`
	Selections     []SelectionResponse `json:"selections"`
	CreatedAt      time.Time           `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt      time.Time           `json:"updatedAt" example:"2024-01-15T14:20:00Z"`
}

// SaveResultResponse reports the outcome of a save
// @Description saved is false when the payload matched the stored state
// @Description pending is true when an autosave was scheduled but not yet written
type SaveResultResponse struct {
	Configuration ConfigurationResponse `json:"configuration"`
	Saved         bool                  `json:"saved"`
	Pending       bool                  `json:"pending"`
}

// BreakdownLineResponse is one priced selection
type BreakdownLineResponse struct {
	ItemID         uuid.UUID  `json:"itemId"`
	VariationID    *uuid.UUID `json:"variationId,omitempty"`
	ItemName       string     `json:"itemName" example:"Oak parquet"`
	VariationName  string     `json:"variationName,omitempty" example:"Smoked oak"`
	Context        string     `json:"context" example:"Room: Bedroom"`
	Quantity       *int       `json:"quantity,omitempty"`
	UnitCost       string     `json:"unitCost" example:"10.00"`
	Multiplier     string     `json:"multiplier" example:"20"`
	Total          string     `json:"total" example:"200.00"`
	Rule           string     `json:"rule" example:"floor_space"`
	Classification string     `json:"classification" example:"floor"`
	Legacy         bool       `json:"legacy"`
	Orphaned       bool       `json:"orphaned"`
	Notes          []string   `json:"notes,omitempty"`
}

// BreakdownGroupResponse collects the lines of one category
type BreakdownGroupResponse struct {
	CategoryID   *uuid.UUID              `json:"categoryId,omitempty"`
	CategoryName string                  `json:"categoryName" example:"Flooring"`
	Lines        []BreakdownLineResponse `json:"lines"`
	Subtotal     string                  `json:"subtotal" example:"200.00"`
}

// BreakdownResponse is a priced, category-grouped view of selections
type BreakdownResponse struct {
	Groups        []BreakdownGroupResponse `json:"groups"`
	Total         string                   `json:"total" example:"690.00"`
	OrphanedCount int                      `json:"orphanedCount"`
	LegacyCount   int                      `json:"legacyCount"`
}

// ExportResponse is the document produced by an export
// @Description documentUrl is set when the export was published to object storage
type ExportResponse struct {
	ConfigurationID uuid.UUID         `json:"configurationId"`
	ProjectID       uuid.UUID         `json:"projectId"`
	Name            string            `json:"name"`
	Status          string            `json:"status" example:"locked"`
	Version         int               `json:"version"`
	Breakdown       BreakdownResponse `json:"breakdown"`
	GeneratedAt     time.Time         `json:"generatedAt"`
	DocumentURL     string            `json:"documentUrl,omitempty"`
}
