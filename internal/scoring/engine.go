// Package scoring computes sub-scores and an overall score for a product
// according to a YAML scoring document.
package scoring

import (
	"time"

	"enrichprj/internal/logger"
	"enrichprj/internal/model"
)

type Engine struct {
	cfg    *Config
	method Method
	log    *logger.Logger

	Now func() time.Time
}

// NewEngine resolves the configured overall method once. Unknown names fall
// back to DefaultMethod with a warning.
func NewEngine(cfg *Config, log *logger.Logger) *Engine {
	log = logger.OrNop(log)
	if cfg == nil {
		cfg = Default()
	}
	m, ok := resolveMethod(cfg)
	if !ok {
		log.Warn("unknown overall scoring method, using default",
			"method", cfg.Overall.Method, "default", DefaultMethod)
	}
	return &Engine{cfg: cfg, method: m, log: log, Now: time.Now}
}

func (e *Engine) Method() string { return e.method.Name() }

// SubScores returns one value per configured sub-score. A non-zero value
// supplied in p.ExternalScores is used as is.
func (e *Engine) SubScores(p *model.Product) map[string]float64 {
	out := make(map[string]float64, len(e.cfg.SubScores))
	for name := range e.cfg.SubScores {
		if v, ok := p.ExternalScores[name]; ok && v != 0 {
			out[name] = v
			continue
		}
		out[name] = e.cfg.fallbackScore(name, p)
	}
	return out
}

func (e *Engine) Compute(p *model.Product) model.ScoreSet {
	subs := e.SubScores(p)
	return model.ScoreSet{
		ProductID:  p.MarketplaceID,
		SubScores:  subs,
		Overall:    e.method.overall(p, subs),
		Method:     e.method.Name(),
		ComputedAt: e.Now().UTC(),
	}
}
