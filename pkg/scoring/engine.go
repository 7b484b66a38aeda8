package scoring

import (
	"fmt"

	"github.com/franchisepulse/backend/pkg/expression"
)

// DefaultEngagementFormula mirrors the dashboard's original weighting: hype
// scaled by IMDb rating, with a neutral 5.0 rating when none is known.
const DefaultEngagementFormula = "hype_score * (COALESCE(imdb_rating, 5.0) / 10.0)"

// Inputs holds the per-observation values a formula may reference.
type Inputs struct {
	HypeScore    float64
	IMDBRating   *float64
	BrandEquity  int64
	NetflixHours float64
	IsTrending   bool
}

// Engine evaluates the configured engagement formula against observations.
type Engine struct {
	formula    string
	exprEngine *expression.Engine
}

// NewEngine creates a scoring engine for the given formula. An empty formula
// selects DefaultEngagementFormula. The formula is validated eagerly so a bad
// ENGAGEMENT_FORMULA fails at startup rather than on the first record.
func NewEngine(formula string) (*Engine, error) {
	if formula == "" {
		formula = DefaultEngagementFormula
	}

	e := &Engine{
		formula:    formula,
		exprEngine: expression.NewEngine(),
	}

	if err := e.exprEngine.Validate(formula, sampleEnv()); err != nil {
		return nil, fmt.Errorf("invalid engagement formula %q: %w", formula, err)
	}
	return e, nil
}

// Formula returns the active formula text.
func (e *Engine) Formula() string {
	return e.formula
}

// Engagement computes the engagement score for one observation.
func (e *Engine) Engagement(in Inputs) (float64, error) {
	env := map[string]interface{}{
		"hype_score":    in.HypeScore,
		"brand_equity":  in.BrandEquity,
		"netflix_hours": in.NetflixHours,
		"is_trending":   in.IsTrending,
	}
	// expr treats nil as a first-class value, so COALESCE works on a missing rating.
	if in.IMDBRating != nil {
		env["imdb_rating"] = *in.IMDBRating
	} else {
		env["imdb_rating"] = nil
	}

	result, err := e.exprEngine.Evaluate(e.formula, env)
	if err != nil {
		return 0, err
	}

	switch v := result.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("engagement formula returned non-numeric result %T", result)
}

func sampleEnv() map[string]interface{} {
	return map[string]interface{}{
		"hype_score":    0.0,
		"imdb_rating":   nil,
		"brand_equity":  int64(0),
		"netflix_hours": 0.0,
		"is_trending":   false,
	}
}
