package pricing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-config-api/internal/domain"
)

func TestOrderCategories_PreOrderBySortKey(t *testing.T) {
	root1 := category("Interior", 2, domain.ScopeRoom, domain.PricingRuleGeneric)
	root2 := category("Exterior", 1, domain.ScopeWholeHouse, domain.PricingRuleGeneric)
	childA := category("Doors", 2, domain.ScopeRoom, domain.PricingRuleGeneric)
	childA.ParentID = uuidPtr(root1.ID)
	childB := category("Floors", 1, domain.ScopeRoom, domain.PricingRuleFloor)
	childB.ParentID = uuidPtr(root1.ID)
	grandchild := category("Skirting", 1, domain.ScopeRoom, domain.PricingRuleGeneric)
	grandchild.ParentID = uuidPtr(childB.ID)
	stray := category("Stray", 0, domain.ScopeRoom, domain.PricingRuleGeneric)
	stray.ParentID = uuidPtr(uuid.New())

	ordered := OrderCategories([]domain.Category{stray, grandchild, childA, root1, childB, root2})

	var names []string
	for _, c := range ordered {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Exterior", "Interior", "Floors", "Skirting", "Doors", "Stray"}, names)
}

func TestOrderCategories_TiesBrokenByName(t *testing.T) {
	b := category("B", 1, domain.ScopeWholeHouse, domain.PricingRuleGeneric)
	a := category("A", 1, domain.ScopeWholeHouse, domain.PricingRuleGeneric)

	ordered := OrderCategories([]domain.Category{b, a})

	require.Len(t, ordered, 2)
	assert.Equal(t, "A", ordered[0].Name)
}

func TestResolvePriceTable(t *testing.T) {
	t2025 := &domain.PriceTable{BaseModel: domain.BaseModel{ID: uuid.New()}, Year: 2025, IsActive: true}
	t2026 := &domain.PriceTable{BaseModel: domain.BaseModel{ID: uuid.New()}, Year: 2026, IsActive: true}
	inactive := &domain.PriceTable{BaseModel: domain.BaseModel{ID: uuid.New()}, Year: 2024}
	tables := []*domain.PriceTable{t2025, t2026, inactive}

	project := &domain.ConstructionProject{BaseModel: domain.BaseModel{CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}}

	t.Run("active table of creation year", func(t *testing.T) {
		assert.Equal(t, t2026, ResolvePriceTable(project, tables))
	})

	t.Run("manual assignment wins", func(t *testing.T) {
		p := *project
		p.PriceTableID = uuidPtr(inactive.ID)
		assert.Equal(t, inactive, ResolvePriceTable(&p, tables))
	})

	t.Run("no matching table", func(t *testing.T) {
		p := *project
		p.CreatedAt = time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.Nil(t, ResolvePriceTable(&p, tables))
	})
}

func TestCatalog_ItemsInHonoursVisibility(t *testing.T) {
	f := newFixture()
	later := fixedNow.Add(24 * time.Hour)
	hidden := item(f.extras, "Wallbox", "900")
	hidden.HiddenUntil = &later

	catalog := NewCatalog(f.catalog.Categories(), []domain.Item{f.socket, hidden}, nil)

	assert.Len(t, catalog.ItemsIn(f.extras.ID, fixedNow), 1)
	assert.Len(t, catalog.ItemsIn(f.extras.ID, later), 2)
}

func TestCatalog_JSONRebuildsIndexes(t *testing.T) {
	f := newFixture()
	data, err := json.Marshal(&Snapshot{Catalog: f.catalog, Project: f.project})
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	it, ok := decoded.Catalog.Item(f.parquet.ID)
	require.True(t, ok)
	assert.Equal(t, "Parquet", it.Name)
	_, ok = decoded.Catalog.Variation(f.oak.ID)
	assert.True(t, ok)

	line := NewEngine(decoded.Catalog).PriceSelection(Selection{ItemID: f.parquet.ID, Context: domain.RoomContext(f.bedroom.ID)}, decoded.Project)
	assert.True(t, d("200").Equal(line.Total))
}

func TestClassify(t *testing.T) {
	tagged := category("Anything", 0, domain.ScopeRoom, domain.PricingRuleFacade)
	rule, legacy := Classify(&tagged)
	assert.Equal(t, domain.PricingRuleFacade, rule)
	assert.False(t, legacy)

	tests := []struct {
		name string
		want domain.PricingRule
	}{
		{"Floor coverings", domain.PricingRuleFloor},
		{"FACADE paint", domain.PricingRuleFacade},
		{"Ventilation system", domain.PricingRuleVentilation},
		{"Bathroom", domain.PricingRuleBathroom},
		{"Electrical", domain.PricingRuleGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := category(tt.name, 0, domain.ScopeWholeHouse, domain.PricingRuleUnset)
			rule, legacy := Classify(&c)
			assert.Equal(t, tt.want, rule)
			assert.True(t, legacy)
		})
	}
}

func TestBreakdown_GroupsInWizardOrder(t *testing.T) {
	f := newFixture()
	selections := []Selection{
		{ItemID: f.socket.ID, Quantity: intPtr(2)},
		{ItemID: uuid.New()},
		{ItemID: f.parquet.ID, Context: domain.RoomContext(f.bedroom.ID)},
		{ItemID: f.tiles.ID, Context: domain.RoomContext(f.kitchen.ID)},
	}

	b := f.engine().Breakdown(selections, f.project)

	require.Len(t, b.Groups, 3)
	assert.Equal(t, "Flooring", b.Groups[0].CategoryName)
	assert.Len(t, b.Groups[0].Lines, 2)
	// 200 + 7.25 * 12.5
	assert.True(t, d("290.625").Equal(b.Groups[0].Subtotal), "got %s", b.Groups[0].Subtotal)
	assert.Equal(t, "Extras", b.Groups[1].CategoryName)
	assert.Equal(t, UnavailableGroupName, b.Groups[2].CategoryName)
	assert.Nil(t, b.Groups[2].CategoryID)
	assert.Equal(t, 1, b.OrphanedCount)
	assert.True(t, d("380.625").Equal(b.Total), "got %s", b.Total)
	assert.Equal(t, "380.63", FormatMoney(Round(b.Total)))
}
