package verticals

// Key identifies one vertical configuration scope.
// Region may be empty, meaning the vertical-wide default.
type Key struct {
	Vertical    string `json:"vertical"`
	SubVertical string `json:"sub_vertical"`
	Region      string `json:"region"`
}

func (k Key) String() string {
	return k.Vertical + "/" + k.SubVertical + "/" + k.Region
}

// TimingRule controls how a signal kind contributes to timing and weighting.
type TimingRule struct {
	// Weight is the vertical's priority weight for the kind, in [-1, 1].
	Weight float64 `json:"weight"`

	// ActionableWindowDays is how long after detection the signal is still
	// worth acting on. Timing contribution decays linearly over this window.
	ActionableWindowDays int `json:"actionable_window_days"`
}

// Config is the per-vertical configuration fetched from the external
// configuration service. Immutable per fetch; the engines only read it.
type Config struct {
	Vertical    string `json:"vertical"`
	SubVertical string `json:"sub_vertical"`
	Region      string `json:"region"`

	// AllowedKinds is the hard allowlist of signal kinds this vertical may
	// ever see. Anything outside it is dropped unconditionally.
	AllowedKinds []string `json:"allowed_kinds"`

	// RelevantKinds maps a sub-vertical to the kinds it actually cares about,
	// used for relevance-aware ranking on top of the allowlist.
	RelevantKinds map[string][]string `json:"relevant_kinds"`

	// TimingRules maps signal kind to its timing rule.
	TimingRules map[string]TimingRule `json:"timing_rules"`

	// FactorMultipliers adjusts scoring factor base weights per vertical.
	// Missing factor ids default to 1.0.
	FactorMultipliers map[string]float64 `json:"factor_multipliers"`

	// SubVerticalMultipliers optionally overrides FactorMultipliers for a
	// specific sub-vertical. Keyed sub-vertical -> factor id -> multiplier.
	SubVerticalMultipliers map[string]map[string]float64 `json:"sub_vertical_multipliers"`
}

// AllowsKind reports whether the kind is inside the vertical's allowlist.
func (c *Config) AllowsKind(kind string) bool {
	for _, k := range c.AllowedKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// RuleFor returns the timing rule for a kind, falling back to a neutral rule
// when the vertical has no entry for it.
func (c *Config) RuleFor(kind string) TimingRule {
	if r, ok := c.TimingRules[kind]; ok {
		return r
	}
	return TimingRule{Weight: 0.5, ActionableWindowDays: 30}
}

// MultiplierFor resolves the effective factor weight multiplier, preferring a
// sub-vertical override when one exists.
func (c *Config) MultiplierFor(factorID, subVertical string) float64 {
	if subVertical != "" {
		if overrides, ok := c.SubVerticalMultipliers[subVertical]; ok {
			if m, ok := overrides[factorID]; ok {
				return m
			}
		}
	}
	if m, ok := c.FactorMultipliers[factorID]; ok {
		return m
	}
	return 1.0
}
