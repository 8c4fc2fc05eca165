package service

import (
	"time"

	"github.com/google/uuid"

	"project-config-api/internal/domain"
	"project-config-api/internal/dto"
	"project-config-api/internal/pricing"
	"project-config-api/internal/response"
)

// toSelections converts request selections into pricing selections
func toSelections(reqs []dto.SelectionRequest) ([]pricing.Selection, error) {
	out := make([]pricing.Selection, 0, len(reqs))
	for _, req := range reqs {
		sel, err := toSelection(req)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

func toSelection(req dto.SelectionRequest) (pricing.Selection, error) {
	sel := pricing.Selection{
		ItemID:      req.ItemID,
		VariationID: req.VariationID,
		Quantity:    req.Quantity,
		Context:     domain.NoContext(),
	}
	switch {
	case req.RoomID != nil && req.BathroomID != nil:
		return sel, response.NewValidationError("A selection cannot target a room and a bathroom", req.ItemID.String())
	case req.RoomID != nil:
		sel.Context = domain.RoomContext(*req.RoomID)
	case req.BathroomID != nil:
		sel.Context = domain.BathroomContext(*req.BathroomID)
	}
	return sel, nil
}

// selectionsOf decodes the persisted items of a configuration
func selectionsOf(items []domain.ConfigurationItem) []pricing.Selection {
	out := make([]pricing.Selection, 0, len(items))
	for i := range items {
		out = append(out, pricing.Selection{
			ItemID:      items[i].ItemID,
			VariationID: items[i].VariationID,
			Quantity:    items[i].Quantity,
			Context:     items[i].Context(),
		})
	}
	return out
}

// itemsOf encodes selections as configuration rows, preserving order
func itemsOf(configurationID uuid.UUID, selections []pricing.Selection) []domain.ConfigurationItem {
	out := make([]domain.ConfigurationItem, 0, len(selections))
	for i, sel := range selections {
		item := domain.ConfigurationItem{
			ConfigurationID: configurationID,
			ItemID:          sel.ItemID,
			VariationID:     sel.VariationID,
			Quantity:        sel.Quantity,
			Seq:             i,
		}
		item.SetContext(sel.Context)
		out = append(out, item)
	}
	return out
}

func statusOf(cfg *domain.Configuration) string {
	switch {
	case cfg.IsLocked:
		return dto.StatusLocked
	case cfg.IsCompleted:
		return dto.StatusCompleted
	default:
		return dto.StatusDraft
	}
}

func toSelectionResponse(sel pricing.Selection) dto.SelectionResponse {
	out := dto.SelectionResponse{
		ItemID:      sel.ItemID,
		VariationID: sel.VariationID,
		Quantity:    sel.Quantity,
	}
	id := sel.Context.ID
	switch sel.Context.Kind {
	case domain.ContextRoom:
		out.RoomID = &id
	case domain.ContextBathroom:
		out.BathroomID = &id
	}
	return out
}

func toSelectionResponses(selections []pricing.Selection) []dto.SelectionResponse {
	out := make([]dto.SelectionResponse, 0, len(selections))
	for _, sel := range selections {
		out = append(out, toSelectionResponse(sel))
	}
	return out
}

func toConfigurationResponse(cfg *domain.Configuration) *dto.ConfigurationResponse {
	return &dto.ConfigurationResponse{
		ID:             cfg.ID,
		ProjectID:      cfg.ProjectID,
		Name:           cfg.Name,
		Status:         statusOf(cfg),
		IsCompleted:    cfg.IsCompleted,
		IsLocked:       cfg.IsLocked,
		LastCategoryID: cfg.LastCategoryID,
		Version:        cfg.Version,
		Selections:     toSelectionResponses(selectionsOf(cfg.Items)),
		CreatedAt:      cfg.CreatedAt,
		UpdatedAt:      cfg.UpdatedAt,
	}
}

func toBreakdownResponse(b pricing.Breakdown) dto.BreakdownResponse {
	out := dto.BreakdownResponse{
		Groups:        make([]dto.BreakdownGroupResponse, 0, len(b.Groups)),
		Total:         pricing.FormatMoney(b.Total),
		OrphanedCount: b.OrphanedCount,
		LegacyCount:   b.LegacyCount,
	}
	for _, g := range b.Groups {
		group := dto.BreakdownGroupResponse{
			CategoryID:   g.CategoryID,
			CategoryName: g.CategoryName,
			Lines:        make([]dto.BreakdownLineResponse, 0, len(g.Lines)),
			Subtotal:     pricing.FormatMoney(g.Subtotal),
		}
		for _, l := range g.Lines {
			group.Lines = append(group.Lines, dto.BreakdownLineResponse{
				ItemID:         l.Selection.ItemID,
				VariationID:    l.Selection.VariationID,
				ItemName:       l.ItemName,
				VariationName:  l.VariationName,
				Context:        l.ContextLabel,
				Quantity:       l.Selection.Quantity,
				UnitCost:       pricing.FormatMoney(l.UnitCost),
				Multiplier:     l.Multiplier.String(),
				Total:          pricing.FormatMoney(l.Total),
				Rule:           string(l.Rule),
				Classification: string(l.Classification),
				Legacy:         l.LegacyClassified,
				Orphaned:       l.Orphaned,
				Notes:          l.Notes,
			})
		}
		out.Groups = append(out.Groups, group)
	}
	return out
}

func toCategoryRef(cat *domain.Category) dto.CategoryRefResponse {
	return dto.CategoryRefResponse{ID: cat.ID, Name: cat.Name}
}

func toCategoryRefs(categories []domain.Category) []dto.CategoryRefResponse {
	out := make([]dto.CategoryRefResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryRef(&categories[i]))
	}
	return out
}

func toCategoryResponse(cat *domain.Category) dto.CategoryResponse {
	out := dto.CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Order:       cat.Order,
		Scope:       string(cat.Scope),
		PricingRule: string(cat.PricingRule),
		ParentID:    cat.ParentID,
		Depth:       cat.Depth,
		Children:    make([]dto.CategoryResponse, 0, len(cat.Children)),
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
	for i := range cat.Children {
		out.Children = append(out.Children, toCategoryResponse(&cat.Children[i]))
	}
	return out
}

// toItemResponses lists the visible items of a category with their effective prices
func toItemResponses(catalog *pricing.Catalog, categoryID uuid.UUID, now time.Time) []dto.ItemResponse {
	items := catalog.ItemsIn(categoryID, now)
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		resp := dto.ItemResponse{
			ID:                   item.ID,
			Name:                 item.Name,
			AdditionalCost:       pricing.FormatMoney(catalog.ItemCost(item)),
			RequiresQuantity:     item.RequiresQuantity,
			ConsultationRequired: item.ConsultationRequired,
			IsStandard:           item.IsStandard,
			Variations:           make([]dto.VariationResponse, 0, len(item.Variations)),
		}
		for i := range item.Variations {
			v := &item.Variations[i]
			resp.Variations = append(resp.Variations, dto.VariationResponse{
				ID:        v.ID,
				Type:      string(v.Type),
				Name:      v.Name,
				Surcharge: pricing.FormatMoney(catalog.VariationCost(v)),
			})
		}
		out = append(out, resp)
	}
	return out
}

func toRoomResponses(project *pricing.ProjectContext) []dto.RoomResponse {
	out := make([]dto.RoomResponse, 0, len(project.Rooms))
	for _, r := range project.Rooms {
		out = append(out, dto.RoomResponse{ID: r.ID, Name: r.Name, FloorSpace: pricing.FormatMoney(r.FloorSpace)})
	}
	return out
}

func toBathroomResponses(project *pricing.ProjectContext) []dto.BathroomResponse {
	out := make([]dto.BathroomResponse, 0, len(project.Bathrooms))
	for _, b := range project.Bathrooms {
		out = append(out, dto.BathroomResponse{
			ID:         b.ID,
			RoomNumber: b.RoomNumber,
			HasToilet:  b.HasToilet,
			HasShower:  b.HasShower,
			HasBathtub: b.HasBathtub,
		})
	}
	return out
}
