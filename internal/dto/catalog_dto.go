package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCategoryRequest represents the request to create a catalog category
// @Description parentId is optional; a category may sit at most two levels below a root
// @Description pricingRule is one of generic, floor, facade, ventilation, bathroom
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=255" example:"Flooring"`
	Order       int        `json:"order" example:"10"`
	Scope       string     `json:"scope" binding:"omitempty,oneof=whole_house room" example:"room"`
	PricingRule string     `json:"pricingRule" binding:"omitempty,oneof=generic floor facade ventilation bathroom" example:"floor"`
	ParentID    *uuid.UUID `json:"parentId,omitempty" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
}

// UpdateCategoryRequest represents the request to update a category. All fields are optional.
// @Description Set moveToRoot to detach the category from its parent; parentId reparents it
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255" example:"Floors"`
	Order       *int       `json:"order" example:"20"`
	Scope       *string    `json:"scope" binding:"omitempty,oneof=whole_house room" example:"whole_house"`
	PricingRule *string    `json:"pricingRule" binding:"omitempty,oneof=generic floor facade ventilation bathroom" example:"generic"`
	ParentID    *uuid.UUID `json:"parentId,omitempty" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	MoveToRoot  bool       `json:"moveToRoot,omitempty" example:"false"`
}

// CategoryResponse represents a category node of the catalog tree
type CategoryResponse struct {
	ID          uuid.UUID          `json:"categoryId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name        string             `json:"name" example:"Flooring"`
	Order       int                `json:"order" example:"10"`
	Scope       string             `json:"scope" example:"room"`
	PricingRule string             `json:"pricingRule" example:"floor"`
	ParentID    *uuid.UUID         `json:"parentId,omitempty"`
	Depth       int                `json:"depth" example:"0"`
	Children    []CategoryResponse `json:"children"`
	CreatedAt   time.Time          `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time          `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// CategoryRefResponse names a category without its subtree
type CategoryRefResponse struct {
	ID   uuid.UUID `json:"categoryId"`
	Name string    `json:"name"`
}

// ItemResponse represents a selectable catalog item with its effective price
// @Description additionalCost already reflects the project's price table
type ItemResponse struct {
	ID                   uuid.UUID           `json:"itemId"`
	Name                 string              `json:"name" example:"Oak parquet"`
	AdditionalCost       string              `json:"additionalCost" example:"10.00"`
	RequiresQuantity     bool                `json:"requiresQuantity"`
	ConsultationRequired bool                `json:"consultationRequired"`
	IsStandard           bool                `json:"isStandard"`
	Variations           []VariationResponse `json:"variations"`
}

// VariationResponse represents a size or color variation of an item
type VariationResponse struct {
	ID        uuid.UUID `json:"variationId"`
	Type      string    `json:"type" example:"color"`
	Name      string    `json:"name" example:"Smoked oak"`
	Surcharge string    `json:"surcharge" example:"2.50"`
}
