package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ConstructionProject holds the fixed attributes of a house being configured
type ConstructionProject struct {
	BaseModel
	Name             string            `gorm:"type:varchar(255);not null" json:"name"`
	FacadeArea       decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"facade_area"`
	BalconyLength    decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"balcony_length"`
	BalustradeLength decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"balustrade_length"`
	PriceTableID     *uuid.UUID        `gorm:"type:uuid;index:idx_construction_projects_price_table_id" json:"price_table_id"`
	Rooms            []ProjectRoom     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
	Bathrooms        []ProjectBathroom `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"bathrooms,omitempty"`
}

// TableName specifies the table name for ConstructionProject
func (ConstructionProject) TableName() string {
	return "construction_projects"
}

// ProjectRoom is a room of the project with its floor space and excluded items
type ProjectRoom struct {
	BaseModel
	ProjectID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_project_rooms_project_id" json:"project_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	FloorSpace decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"floor_space"`
	// ProhibitedItems lists item ids that may not be selected for this room.
	// Legacy rows stored bare integers here; those are dropped on import.
	ProhibitedItems datatypes.JSONSlice[uuid.UUID] `gorm:"type:json" json:"prohibited_items"`
}

// TableName specifies the table name for ProjectRoom
func (ProjectRoom) TableName() string {
	return "project_rooms"
}

// Prohibits reports whether the item is excluded from this room
func (r *ProjectRoom) Prohibits(itemID uuid.UUID) bool {
	for _, id := range r.ProhibitedItems {
		if id == itemID {
			return true
		}
	}
	return false
}

// ProjectBathroom is a bathroom identified by a user-assigned room number
type ProjectBathroom struct {
	BaseModel
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_project_bathrooms_project_number,priority:1" json:"project_id"`
	RoomNumber int       `gorm:"not null;uniqueIndex:uq_project_bathrooms_project_number,priority:2" json:"room_number"`
	HasToilet  bool      `gorm:"not null;default:false" json:"has_toilet"`
	HasShower  bool      `gorm:"not null;default:false" json:"has_shower"`
	HasBathtub bool      `gorm:"not null;default:false" json:"has_bathtub"`
}

// TableName specifies the table name for ProjectBathroom
func (ProjectBathroom) TableName() string {
	return "project_bathrooms"
}
