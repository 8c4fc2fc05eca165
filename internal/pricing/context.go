package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"project-config-api/internal/domain"
)

// ProjectContext carries the project attributes the cost formulas depend on
type ProjectContext struct {
	ProjectID        uuid.UUID                `json:"project_id"`
	FacadeArea       decimal.Decimal          `json:"facade_area"`
	BalconyLength    decimal.Decimal          `json:"balcony_length"`
	BalustradeLength decimal.Decimal          `json:"balustrade_length"`
	Rooms            []domain.ProjectRoom     `json:"rooms"`
	Bathrooms        []domain.ProjectBathroom `json:"bathrooms"`
}

// NewProjectContext copies the pricing-relevant parts of a project
func NewProjectContext(p *domain.ConstructionProject) *ProjectContext {
	return &ProjectContext{
		ProjectID:        p.ID,
		FacadeArea:       p.FacadeArea,
		BalconyLength:    p.BalconyLength,
		BalustradeLength: p.BalustradeLength,
		Rooms:            p.Rooms,
		Bathrooms:        p.Bathrooms,
	}
}

// Room finds a room of the project
func (p *ProjectContext) Room(id uuid.UUID) (*domain.ProjectRoom, bool) {
	for i := range p.Rooms {
		if p.Rooms[i].ID == id {
			return &p.Rooms[i], true
		}
	}
	return nil, false
}

// Bathroom finds a bathroom of the project
func (p *ProjectContext) Bathroom(id uuid.UUID) (*domain.ProjectBathroom, bool) {
	for i := range p.Bathrooms {
		if p.Bathrooms[i].ID == id {
			return &p.Bathrooms[i], true
		}
	}
	return nil, false
}

// RoomCount returns the number of rooms in the project
func (p *ProjectContext) RoomCount() int {
	return len(p.Rooms)
}

// Snapshot is everything a wizard session prices against
type Snapshot struct {
	Catalog *Catalog        `json:"catalog"`
	Project *ProjectContext `json:"project"`
}
