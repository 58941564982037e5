package signals

// Category groups signal kinds by what they say about the prospect.
type Category string

const (
	CategoryGrowth         Category = "growth"
	CategoryFinancial      Category = "financial"
	CategoryOrganizational Category = "organizational"
	CategoryMarket         Category = "market"
	CategoryEngagement     Category = "engagement"
)

// Definition is a static catalog entry for one signal kind.
// BaseWeight must stay in [-1, 1]; kinds are unique within a vertical.
type Definition struct {
	Kind                string   `json:"kind"`
	DisplayName         string   `json:"display_name"`
	Category            Category `json:"category"`
	BaseWeight          float64  `json:"base_weight"`
	RelevanceFactors    []string `json:"relevance_factors"`
	DataSources         []string `json:"data_sources"`
	DecayWindowDays     int      `json:"decay_window_days"`
	ConfidenceThreshold float64  `json:"confidence_threshold"`

	// Insight is the canned "why this matters" line surfaced on signal cards.
	Insight string `json:"insight"`
}

// DefaultCatalog lists the signal kinds the platform detects out of the box.
// Verticals narrow this set through their allowlist; they never extend it.
var DefaultCatalog = []Definition{
	{
		Kind:                "hiring-expansion",
		DisplayName:         "Hiring Expansion",
		Category:            CategoryGrowth,
		BaseWeight:          1.0,
		RelevanceFactors:    []string{"headcount", "industry"},
		DataSources:         []string{"job-boards", "news"},
		DecayWindowDays:     30,
		ConfidenceThreshold: 0.6,
		Insight:             "Growing workforce needs payroll accounts",
	},
	{
		Kind:                "office-opening",
		DisplayName:         "Office Opening",
		Category:            CategoryGrowth,
		BaseWeight:          0.9,
		RelevanceFactors:    []string{"city", "headcount"},
		DataSources:         []string{"news", "registries"},
		DecayWindowDays:     45,
		ConfidenceThreshold: 0.6,
		Insight:             "New office means new employee banking relationships",
	},
	{
		Kind:                "funding-round",
		DisplayName:         "Funding Round",
		Category:            CategoryFinancial,
		BaseWeight:          0.85,
		RelevanceFactors:    []string{"industry", "size"},
		DataSources:         []string{"news", "filings"},
		DecayWindowDays:     60,
		ConfidenceThreshold: 0.7,
		Insight:             "Recent funding means cash flow needs and a banking relationship opportunity",
	},
	{
		Kind:                "market-entry",
		DisplayName:         "Market Entry",
		Category:            CategoryMarket,
		BaseWeight:          0.8,
		RelevanceFactors:    []string{"city", "industry"},
		DataSources:         []string{"news"},
		DecayWindowDays:     90,
		ConfidenceThreshold: 0.6,
		Insight:             "Entering the market means it needs a local banking partner",
	},
	{
		Kind:                "subsidiary-creation",
		DisplayName:         "Subsidiary Creation",
		Category:            CategoryOrganizational,
		BaseWeight:          0.75,
		RelevanceFactors:    []string{"size"},
		DataSources:         []string{"registries", "filings"},
		DecayWindowDays:     90,
		ConfidenceThreshold: 0.7,
		Insight:             "A new subsidiary has separate payroll and banking needs",
	},
	{
		Kind:                "leadership-change",
		DisplayName:         "Leadership Change",
		Category:            CategoryOrganizational,
		BaseWeight:          0.5,
		RelevanceFactors:    []string{"size"},
		DataSources:         []string{"news", "social"},
		DecayWindowDays:     45,
		ConfidenceThreshold: 0.6,
		Insight:             "New decision makers revisit vendor and banking relationships",
	},
	{
		Kind:                "contract-award",
		DisplayName:         "Contract Award",
		Category:            CategoryFinancial,
		BaseWeight:          0.7,
		RelevanceFactors:    []string{"industry"},
		DataSources:         []string{"news", "tenders"},
		DecayWindowDays:     60,
		ConfidenceThreshold: 0.65,
		Insight:             "A large award means incoming revenue and staffing growth",
	},
	{
		Kind:                "layoff-round",
		DisplayName:         "Layoff Round",
		Category:            CategoryOrganizational,
		BaseWeight:          -0.6,
		RelevanceFactors:    []string{"headcount"},
		DataSources:         []string{"news"},
		DecayWindowDays:     60,
		ConfidenceThreshold: 0.7,
		Insight:             "Shrinking headcount reduces payroll opportunity",
	},
	{
		Kind:                "product-launch",
		DisplayName:         "Product Launch",
		Category:            CategoryMarket,
		BaseWeight:          0.55,
		RelevanceFactors:    []string{"industry"},
		DataSources:         []string{"news", "social"},
		DecayWindowDays:     45,
		ConfidenceThreshold: 0.6,
		Insight:             "Launches precede hiring and commercial expansion",
	},
	{
		Kind:                "regulatory-filing",
		DisplayName:         "Regulatory Filing",
		Category:            CategoryFinancial,
		BaseWeight:          0.4,
		RelevanceFactors:    []string{"industry", "size"},
		DataSources:         []string{"filings"},
		DecayWindowDays:     120,
		ConfidenceThreshold: 0.8,
		Insight:             "Filings reveal structural changes worth a conversation",
	},
}

// LookupDefinition finds a catalog entry by kind.
func LookupDefinition(kind string) (Definition, bool) {
	for _, d := range DefaultCatalog {
		if d.Kind == kind {
			return d, true
		}
	}
	return Definition{}, false
}
