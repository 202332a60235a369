package domain

import (
	"fmt"
	"math"
	"time"
)

// HealthConfig holds every tunable constant of the scoring pipeline. It is
// built once per run (defaults overlaid with .seatbelt.yaml) and passed by
// value to scorers, the aggregator and the advisor.
type HealthConfig struct {
	Weights    map[string]float64 `yaml:"weights"     json:"weights"`
	GradeBands []GradeBand        `yaml:"grade_bands" json:"grade_bands"`

	ReadyMin   int            `yaml:"ready_min"   json:"ready_min"`
	WarningMin int            `yaml:"warning_min" json:"warning_min"`
	HardFail   map[string]int `yaml:"hard_fail"   json:"hard_fail"`

	Security  SecurityConfig  `yaml:"security"  json:"security"`
	MCP       MCPConfig       `yaml:"mcp"       json:"mcp"`
	Auth      AuthConfig      `yaml:"auth"      json:"auth"`
	Structure StructureConfig `yaml:"structure" json:"structure"`
	Freshness FreshnessConfig `yaml:"freshness" json:"freshness"`

	DisplayLimit   int           `yaml:"display_limit"   json:"display_limit"`
	CommandTimeout time.Duration `yaml:"command_timeout" json:"command_timeout"`
}

// GradeBand maps every score >= Min to Grade.
type GradeBand struct {
	Min        int    `yaml:"min"        json:"min"`
	Grade      string `yaml:"grade"      json:"grade"`
	Descriptor string `yaml:"descriptor" json:"descriptor"`
}

type SecurityConfig struct {
	SecretsFile               string   `yaml:"secrets_file"                json:"secrets_file"`
	UnprotectedSecretsPenalty int      `yaml:"unprotected_secrets_penalty" json:"unprotected_secrets_penalty"`
	TrackedSecretsPenalty     int      `yaml:"tracked_secrets_penalty"     json:"tracked_secrets_penalty"`
	ExposureViolationPenalty  int      `yaml:"exposure_violation_penalty"  json:"exposure_violation_penalty"`
	PublicPrefixes            []string `yaml:"public_prefixes"             json:"public_prefixes"`
	SensitiveNameMarkers      []string `yaml:"sensitive_name_markers"      json:"sensitive_name_markers"`
	SensitiveValuePrefixes    []string `yaml:"sensitive_value_prefixes"    json:"sensitive_value_prefixes"`
}

type MCPConfig struct {
	SoftLimit            int     `yaml:"soft_limit"              json:"soft_limit"`
	OverLimitPenalty     int     `yaml:"over_limit_penalty"      json:"over_limit_penalty"`
	PerformanceWeight    float64 `yaml:"performance_weight"      json:"performance_weight"`
	AdvisoryThreshold    int     `yaml:"advisory_threshold"      json:"advisory_threshold"`
	ParityThreshold      int     `yaml:"parity_threshold"        json:"parity_threshold"`
	PerServerMemoryMB    int     `yaml:"per_server_memory_mb"    json:"per_server_memory_mb"`
	PerServerStartupMs   int     `yaml:"per_server_startup_ms"   json:"per_server_startup_ms"`
	PerServerFailureRate float64 `yaml:"per_server_failure_rate" json:"per_server_failure_rate"`
}

type AuthConfig struct {
	Points       map[string]int `yaml:"points"        json:"points"`
	CoreServices []string       `yaml:"core_services" json:"core_services"`
}

// IsCore reports whether service is one of the core services.
func (a AuthConfig) IsCore(service string) bool {
	for _, s := range a.CoreServices {
		if s == service {
			return true
		}
	}
	return false
}

type StructureConfig struct {
	MigrationsPoints        int `yaml:"migrations_points"         json:"migrations_points"`
	AssistantSettingsPoints int `yaml:"assistant_settings_points" json:"assistant_settings_points"`
	ClaudeMDPoints          int `yaml:"claude_md_points"          json:"claude_md_points"`
}

type FreshnessConfig struct {
	Bands           []RecencyBand `yaml:"bands"             json:"bands"`
	StaleScore      int           `yaml:"stale_score"       json:"stale_score"`
	NeutralScore    int           `yaml:"neutral_score"     json:"neutral_score"`
	StaleCommitDays int           `yaml:"stale_commit_days" json:"stale_commit_days"`
}

// RecencyBand scores a signal whose age is at most MaxDays.
type RecencyBand struct {
	MaxDays int `yaml:"max_days" json:"max_days"`
	Score   int `yaml:"score"    json:"score"`
}

// DefaultConfig returns the built-in tuning. Every call returns fresh maps
// and slices so callers may overlay user values without aliasing.
func DefaultConfig() HealthConfig {
	return HealthConfig{
		Weights: map[string]float64{
			CategoryAuthentication: 0.25,
			CategorySecurity:       0.30,
			CategoryMCPHealth:      0.20,
			CategoryStructure:      0.15,
			CategoryFreshness:      0.10,
		},
		GradeBands: []GradeBand{
			{Min: 90, Grade: "A", Descriptor: "Excellent"},
			{Min: 80, Grade: "B", Descriptor: "Good"},
			{Min: 60, Grade: "C", Descriptor: "Fair"},
			{Min: 40, Grade: "D", Descriptor: "Poor"},
			{Min: 0, Grade: "F", Descriptor: "Critical"},
		},
		ReadyMin:   80,
		WarningMin: 60,
		HardFail: map[string]int{
			CategorySecurity:       50,
			CategoryAuthentication: 1,
		},
		Security: SecurityConfig{
			SecretsFile:               ".env.local",
			UnprotectedSecretsPenalty: 40,
			TrackedSecretsPenalty:     30,
			ExposureViolationPenalty:  20,
			PublicPrefixes:            []string{"NEXT_PUBLIC_", "VITE_", "PUBLIC_", "REACT_APP_", "EXPO_PUBLIC_"},
			SensitiveNameMarkers:      []string{"SERVICE_ROLE", "SECRET", "PRIVATE", "PASSWORD"},
			SensitiveValuePrefixes:    []string{"sk_live_", "sk_test_", "sk-", "ghp_", "xoxb-"},
		},
		MCP: MCPConfig{
			SoftLimit:            8,
			OverLimitPenalty:     10,
			PerformanceWeight:    0.7,
			AdvisoryThreshold:    70,
			ParityThreshold:      50,
			PerServerMemoryMB:    50,
			PerServerStartupMs:   400,
			PerServerFailureRate: 0.02,
		},
		Auth: AuthConfig{
			Points: map[string]int{
				ServiceGitHub:   30,
				ServiceSupabase: 25,
				ServiceGit:      25,
				ServiceVercel:   10,
				ServiceAWS:      10,
			},
			CoreServices: []string{ServiceGitHub, ServiceSupabase, ServiceGit},
		},
		Structure: StructureConfig{
			MigrationsPoints:        40,
			AssistantSettingsPoints: 30,
			ClaudeMDPoints:          30,
		},
		Freshness: FreshnessConfig{
			Bands: []RecencyBand{
				{MaxDays: 7, Score: 100},
				{MaxDays: 30, Score: 75},
				{MaxDays: 90, Score: 40},
			},
			StaleScore:      10,
			NeutralScore:    50,
			StaleCommitDays: 30,
		},
		DisplayLimit:   5,
		CommandTimeout: 3 * time.Second,
	}
}

// Weight returns the configured weight of a category.
func (c HealthConfig) Weight(category string) float64 {
	return c.Weights[category]
}

// GradeFor maps a score to its grade band. Bands are checked in order, so
// they must be sorted by descending Min.
func (c HealthConfig) GradeFor(score int) GradeBand {
	for _, b := range c.GradeBands {
		if score >= b.Min {
			return b
		}
	}
	return c.GradeBands[len(c.GradeBands)-1]
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c HealthConfig) Validate() error {
	// 1. weights cover exactly the known categories and sum to 1.0
	for k := range c.Weights {
		if !IsValidCategory(k) {
			return fmt.Errorf("unknown category %q in weights", k)
		}
	}
	sum := 0.0
	for _, cat := range ValidCategories {
		w, ok := c.Weights[cat]
		if !ok {
			return fmt.Errorf("missing weight for category %q", cat)
		}
		if w < 0 {
			return fmt.Errorf("weights[%q] = %.2f (must be >= 0)", cat, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.3f (must be 1.0)", sum)
	}

	// 2. grade bands strictly descending, ending at 0
	if len(c.GradeBands) == 0 {
		return fmt.Errorf("grade_bands must not be empty")
	}
	for i, b := range c.GradeBands {
		if b.Grade == "" {
			return fmt.Errorf("grade_bands[%d].grade must not be empty", i)
		}
		if i > 0 && b.Min >= c.GradeBands[i-1].Min {
			return fmt.Errorf("grade_bands must be sorted by descending min (band %d)", i)
		}
	}
	if last := c.GradeBands[len(c.GradeBands)-1]; last.Min != 0 {
		return fmt.Errorf("last grade band must start at 0 (got %d)", last.Min)
	}

	// 3. verdict thresholds
	if !inRange(c.WarningMin) || !inRange(c.ReadyMin) || c.WarningMin > c.ReadyMin {
		return fmt.Errorf("need 0 <= warning_min (%d) <= ready_min (%d) <= 100", c.WarningMin, c.ReadyMin)
	}
	for k, v := range c.HardFail {
		if !IsValidCategory(k) {
			return fmt.Errorf("unknown category %q in hard_fail", k)
		}
		if !inRange(v) {
			return fmt.Errorf("hard_fail[%q] = %d (must be between 0 and 100)", k, v)
		}
	}

	// 4. penalties and costs
	s := c.Security
	if s.SecretsFile == "" {
		return fmt.Errorf("security.secrets_file must not be empty")
	}
	if s.UnprotectedSecretsPenalty < 0 || s.TrackedSecretsPenalty < 0 || s.ExposureViolationPenalty < 0 {
		return fmt.Errorf("security penalties must be >= 0")
	}
	m := c.MCP
	if m.SoftLimit < 0 || m.OverLimitPenalty < 0 || m.PerServerMemoryMB < 0 || m.PerServerStartupMs < 0 {
		return fmt.Errorf("mcp limits and costs must be >= 0")
	}
	if m.PerformanceWeight < 0 || m.PerformanceWeight > 1 {
		return fmt.Errorf("mcp.performance_weight must be between 0.0 and 1.0 (got %.2f)", m.PerformanceWeight)
	}
	if m.PerServerFailureRate < 0 || m.PerServerFailureRate >= 1 {
		return fmt.Errorf("mcp.per_server_failure_rate must be in [0.0, 1.0) (got %.2f)", m.PerServerFailureRate)
	}

	// 5. auth table
	for _, svc := range c.Auth.CoreServices {
		if _, ok := c.Auth.Points[svc]; !ok {
			return fmt.Errorf("core service %q has no entry in auth.points", svc)
		}
	}
	for svc, p := range c.Auth.Points {
		if p < 0 {
			return fmt.Errorf("auth.points[%q] = %d (must be >= 0)", svc, p)
		}
	}

	// 6. freshness bands ascending
	for i, b := range c.Freshness.Bands {
		if !inRange(b.Score) {
			return fmt.Errorf("freshness.bands[%d].score = %d (must be between 0 and 100)", i, b.Score)
		}
		if i > 0 && b.MaxDays <= c.Freshness.Bands[i-1].MaxDays {
			return fmt.Errorf("freshness.bands must be sorted by ascending max_days (band %d)", i)
		}
	}
	if !inRange(c.Freshness.NeutralScore) || !inRange(c.Freshness.StaleScore) {
		return fmt.Errorf("freshness neutral_score and stale_score must be between 0 and 100")
	}

	if c.DisplayLimit <= 0 {
		return fmt.Errorf("display_limit must be > 0 (got %d)", c.DisplayLimit)
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("command_timeout must be > 0 (got %s)", c.CommandTimeout)
	}
	return nil
}

// IsValidCategory reports whether name is a known category.
func IsValidCategory(name string) bool {
	for _, c := range ValidCategories {
		if c == name {
			return true
		}
	}
	return false
}

func inRange(v int) bool { return v >= 0 && v <= 100 }
