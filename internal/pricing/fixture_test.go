package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"project-config-api/internal/domain"
)

// testFixture is a small catalog: flooring (room scoped), facade, ventilation,
// bathroom fittings and extras with a quantity item.
type testFixture struct {
	flooring, facade, ventilation, bathroom, extras domain.Category
	parquet, tiles, render, fan, shower, socket     domain.Item
	standardFloor                                   domain.Item
	oak                                             domain.ItemVariation
	bedroom, kitchen                                domain.ProjectRoom
	bath                                            domain.ProjectBathroom
	project                                         *ProjectContext
	catalog                                         *Catalog
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func category(name string, order int, scope domain.CategoryScope, rule domain.PricingRule) domain.Category {
	return domain.Category{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		Name:        name,
		Order:       order,
		Scope:       scope,
		PricingRule: rule,
	}
}

func item(cat domain.Category, name, cost string) domain.Item {
	return domain.Item{
		BaseModel:      domain.BaseModel{ID: uuid.New()},
		CategoryID:     cat.ID,
		Name:           name,
		AdditionalCost: d(cost),
	}
}

func newFixture() *testFixture {
	f := &testFixture{}
	f.flooring = category("Flooring", 1, domain.ScopeRoom, domain.PricingRuleFloor)
	f.facade = category("Facade", 2, domain.ScopeWholeHouse, domain.PricingRuleFacade)
	f.ventilation = category("Ventilation", 3, domain.ScopeWholeHouse, domain.PricingRuleVentilation)
	f.bathroom = category("Bathroom fittings", 4, domain.ScopeWholeHouse, domain.PricingRuleBathroom)
	f.extras = category("Extras", 5, domain.ScopeWholeHouse, domain.PricingRuleGeneric)

	f.parquet = item(f.flooring, "Parquet", "10")
	f.oak = domain.ItemVariation{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		ItemID:    f.parquet.ID,
		Type:      domain.VariationTypeColor,
		Name:      "Oak",
		Surcharge: d("2.5"),
	}
	f.parquet.Variations = []domain.ItemVariation{f.oak}
	f.tiles = item(f.flooring, "Tiles", "7.25")
	f.standardFloor = item(f.flooring, "Laminate", "9")
	f.standardFloor.IsStandard = true
	f.render = item(f.facade, "Mineral render", "5")
	f.fan = item(f.ventilation, "Exhaust fan", "120")
	f.shower = item(f.bathroom, "Rain shower", "800")
	f.socket = item(f.extras, "Extra socket", "45")
	f.socket.RequiresQuantity = true

	f.bedroom = domain.ProjectRoom{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Bedroom", FloorSpace: d("20")}
	f.kitchen = domain.ProjectRoom{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Kitchen", FloorSpace: d("12.5")}
	f.bath = domain.ProjectBathroom{BaseModel: domain.BaseModel{ID: uuid.New()}, RoomNumber: 1, HasShower: true}

	f.project = &ProjectContext{
		ProjectID:  uuid.New(),
		FacadeArea: d("80"),
		Rooms:      []domain.ProjectRoom{f.bedroom, f.kitchen},
		Bathrooms:  []domain.ProjectBathroom{f.bath},
	}

	f.catalog = NewCatalog(
		OrderCategories([]domain.Category{f.extras, f.bathroom, f.ventilation, f.facade, f.flooring}),
		[]domain.Item{f.parquet, f.tiles, f.standardFloor, f.render, f.fan, f.shower, f.socket},
		nil,
	)
	return f
}

func (f *testFixture) engine() *Engine {
	return NewEngine(f.catalog)
}

func intPtr(v int) *int {
	return &v
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
