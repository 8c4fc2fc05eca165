package pricing

import (
	"strings"

	"project-config-api/internal/domain"
)

// legacyKeywords maps display-name fragments to rules for categories created
// before pricing rules were stored. Checked in rule precedence order.
var legacyKeywords = []struct {
	rule     domain.PricingRule
	keywords []string
}{
	{domain.PricingRuleFloor, []string{"floor"}},
	{domain.PricingRuleFacade, []string{"facade", "façade"}},
	{domain.PricingRuleVentilation, []string{"ventilation"}},
	{domain.PricingRuleBathroom, []string{"bathroom"}},
}

// Classify returns the pricing rule of a category. The stored tag wins; only
// untagged categories fall back to name matching, reported via legacy=true.
func Classify(category *domain.Category) (rule domain.PricingRule, legacy bool) {
	if category == nil {
		return domain.PricingRuleGeneric, false
	}
	if category.PricingRule.IsValid() {
		return category.PricingRule, false
	}
	return ClassifyLegacyName(category.Name), true
}

// ClassifyLegacyName derives a rule from a category display name
func ClassifyLegacyName(name string) domain.PricingRule {
	lower := strings.ToLower(name)
	for _, k := range legacyKeywords {
		for _, kw := range k.keywords {
			if strings.Contains(lower, kw) {
				return k.rule
			}
		}
	}
	return domain.PricingRuleGeneric
}
