package dto

import (
	"github.com/google/uuid"
)

// JumpRequest moves the wizard to any category
type JumpRequest struct {
	CategoryID uuid.UUID `json:"categoryId" binding:"required"`
}

// ToggleSelectionRequest adds the selection when absent and removes it when present
type ToggleSelectionRequest struct {
	SelectionRequest
	ExpectedVersion *int `json:"expectedVersion,omitempty"`
}

// PreviewRequest prices arbitrary selections without saving them
type PreviewRequest struct {
	Selections []SelectionRequest `json:"selections" binding:"dive"`
}

// RoomResponse is a room a selection can be scoped to
type RoomResponse struct {
	ID         uuid.UUID `json:"roomId"`
	Name       string    `json:"name" example:"Bedroom"`
	FloorSpace string    `json:"floorSpace" example:"20.00"`
}

// BathroomResponse is a bathroom a selection can be scoped to
type BathroomResponse struct {
	ID         uuid.UUID `json:"bathroomId"`
	RoomNumber int       `json:"roomNumber" example:"1"`
	HasToilet  bool      `json:"hasToilet"`
	HasShower  bool      `json:"hasShower"`
	HasBathtub bool      `json:"hasBathtub"`
}

// WizardStepResponse describes the category the wizard is showing
type WizardStepResponse struct {
	Index    int                  `json:"index" example:"0"`
	Count    int                  `json:"count" example:"12"`
	IsFirst  bool                 `json:"isFirst"`
	IsLast   bool                 `json:"isLast"`
	Category *CategoryRefResponse `json:"category,omitempty"`
	Scope    string               `json:"scope,omitempty" example:"room"`
	Items    []ItemResponse       `json:"items"`
}

// WizardViewResponse is everything the UI needs to render one wizard step
// @Description readOnly is true for locked configurations; navigation works but nothing is persisted
type WizardViewResponse struct {
	ConfigurationID  uuid.UUID             `json:"configurationId"`
	Status           string                `json:"status" example:"draft"`
	ReadOnly         bool                  `json:"readOnly"`
	Version          int                   `json:"version"`
	Step             WizardStepResponse    `json:"step"`
	Path             []CategoryRefResponse `json:"path"`
	Selections       []SelectionResponse   `json:"selections"`
	Rooms            []RoomResponse        `json:"rooms"`
	Bathrooms        []BathroomResponse    `json:"bathrooms"`
	Total            string                `json:"total" example:"690.00"`
	MissingStandards []CategoryRefResponse `json:"missingStandards"`
}
