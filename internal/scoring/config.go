package scoring

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"enrichprj/internal/model"
)

//go:embed default.yaml
var defaultDocument []byte

// Config is the scoring document. It is not modified after load.
type Config struct {
	Overall         OverallConfig             `yaml:"overall_score"`
	Weights         map[string]float64        `yaml:"scoring_weights"`
	SubScores       map[string]SubScoreConfig `yaml:"sub_scores"`
	ReviewCounts    ReviewThresholds          `yaml:"review_count_thresholds"`
	PriceCategories PriceCategories           `yaml:"price_categories"`
	CommissionRate  float64                   `yaml:"commission_default_rate"`
	MaterialBonuses map[string]float64        `yaml:"material_bonuses"`
}

type OverallConfig struct {
	Method     string    `yaml:"method"`
	PriceRange []float64 `yaml:"price_range"`
}

type SubScoreConfig struct {
	FallbackMethod string    `yaml:"fallback_method"`
	Range          []float64 `yaml:"range"`

	// MaterialBonus adds material_bonuses to this sub-score's fallback value.
	MaterialBonus bool `yaml:"material_bonus"`
}

type ReviewThresholds struct {
	VeryHigh int `yaml:"very_high"`
	High     int `yaml:"high"`
	Moderate int `yaml:"moderate"`
	Low      int `yaml:"low"`
}

type PriceCategory struct {
	MinPrice float64 `yaml:"min_price"`
}

type PriceCategories struct {
	Luxury   PriceCategory `yaml:"luxury"`
	Premium  PriceCategory `yaml:"premium"`
	MidRange PriceCategory `yaml:"mid_range"`
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("embedded scoring config: %v", err))
	}
	return cfg
}

// Parse decodes a YAML (or JSON) document and fills unset thresholds.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads path. On any failure it returns the embedded default
// together with an error wrapping model.ErrConfigLoadFailure, so callers
// can log and keep going.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("%w: %v", model.ErrConfigLoadFailure, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%w: %s: %v", model.ErrConfigLoadFailure, path, err)
	}
	return cfg, nil
}

func (c *Config) normalise() error {
	if c.ReviewCounts.VeryHigh == 0 {
		c.ReviewCounts.VeryHigh = 5000
	}
	if c.ReviewCounts.High == 0 {
		c.ReviewCounts.High = 2000
	}
	if c.ReviewCounts.Moderate == 0 {
		c.ReviewCounts.Moderate = 1000
	}
	if c.ReviewCounts.Low == 0 {
		c.ReviewCounts.Low = 500
	}
	if c.PriceCategories.Luxury.MinPrice == 0 {
		c.PriceCategories.Luxury.MinPrice = 250
	}
	if c.PriceCategories.Premium.MinPrice == 0 {
		c.PriceCategories.Premium.MinPrice = 150
	}
	if c.PriceCategories.MidRange.MinPrice == 0 {
		c.PriceCategories.MidRange.MinPrice = 50
	}
	if c.CommissionRate == 0 {
		c.CommissionRate = 0.10
	}

	if r := c.Overall.PriceRange; len(r) != 0 && (len(r) != 2 || r[0] > r[1]) {
		return fmt.Errorf("overall_score.price_range must be [min, max], got %v", r)
	}
	for name, sc := range c.SubScores {
		if r := sc.Range; len(r) != 0 && (len(r) != 2 || r[0] > r[1]) {
			return fmt.Errorf("sub_scores.%s.range must be [lo, hi], got %v", name, r)
		}
	}
	return nil
}

// bounds returns the clamp range for a sub-score. Without a configured range
// it is [1,5] for price_commission_value and [2,5] otherwise.
func (s SubScoreConfig) bounds() (float64, float64) {
	if len(s.Range) == 2 {
		return s.Range[0], s.Range[1]
	}
	if s.FallbackMethod == PriceCommissionValue {
		return 1, 5
	}
	return 2, 5
}
