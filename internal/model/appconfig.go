package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default cut parameters applied to new requests
	DefaultKerf      float64 `json:"default_kerf"`
	DefaultMinOffcut float64 `json:"default_min_offcut"`
	DefaultEdgeTrim  float64 `json:"default_edge_trim"`
	DefaultRotation  string  `json:"default_rotation"` // "per-piece", "all", "none"

	// Application preferences
	DefaultProfile         string   `json:"default_profile"`
	RecentRequests         []string `json:"recent_requests"`
	StrategyTimeoutSeconds int      `json:"strategy_timeout_seconds"` // 0 = built-in default
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultCutParams().
func DefaultAppConfig() AppConfig {
	defaults := DefaultCutParams()
	return AppConfig{
		DefaultKerf:      defaults.Kerf,
		DefaultMinOffcut: defaults.MinOffcut,
		DefaultEdgeTrim:  defaults.EdgeTrim,
		DefaultRotation:  defaults.Rotation.String(),
		RecentRequests:   []string{},
	}
}

// ApplyToParams copies the default values from AppConfig into a CutParams
// struct. This is used when building a new request so it inherits the
// user's saved defaults.
func (c AppConfig) ApplyToParams(p *CutParams) {
	p.Kerf = c.DefaultKerf
	p.MinOffcut = c.DefaultMinOffcut
	p.EdgeTrim = c.DefaultEdgeTrim
	p.Rotation = ParseRotationPolicy(c.DefaultRotation)
}

// ParseRotationPolicy converts a policy name to a RotationPolicy.
// Unknown names fall back to RotationPerPiece.
func ParseRotationPolicy(s string) RotationPolicy {
	switch s {
	case "all":
		return RotationAll
	case "none":
		return RotationNone
	default:
		return RotationPerPiece
	}
}
