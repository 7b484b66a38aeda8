package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine_Evaluate(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name     string
		expr     string
		env      map[string]interface{}
		expected interface{}
		wantErr  bool
	}{
		{
			name:     "Simple Math",
			expr:     "1 + 1",
			env:      nil,
			expected: 2,
		},
		{
			name:     "Variable Access",
			expr:     "hype_score * 2.0",
			env:      map[string]interface{}{"hype_score": 40.0},
			expected: 80.0,
		},
		{
			name:     "Round",
			expr:     "ROUND(3.14159, 2)",
			env:      nil,
			expected: 3.14,
		},
		{
			name:     "Coalesce Nil Rating",
			expr:     "COALESCE(imdb_rating, 5.0)",
			env:      map[string]interface{}{"imdb_rating": nil},
			expected: 5.0,
		},
		{
			name:     "Clamp Upper",
			expr:     "CLAMP(hype_score, 0, 100)",
			env:      map[string]interface{}{"hype_score": 250.0},
			expected: 100.0,
		},
		{
			name:     "Ternary",
			expr:     "hype_score > 50 ? 'hot' : 'cold'",
			env:      map[string]interface{}{"hype_score": 80.0},
			expected: "hot",
		},
		{
			name:     "If Function",
			expr:     "IF(is_trending, 1.5, 1.0)",
			env:      map[string]interface{}{"is_trending": true},
			expected: 1.5,
		},
		{
			name:     "Log10 Non Positive",
			expr:     "LOG10(0)",
			env:      nil,
			expected: 0.0,
		},
		{
			name:    "Syntax Error",
			expr:    "hype_score >",
			env:     map[string]interface{}{"hype_score": 1.0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Evaluate(tt.expr, tt.env)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestEngine_Validate(t *testing.T) {
	e := NewEngine()

	env := map[string]interface{}{"hype_score": 0.0, "imdb_rating": nil}
	assert.NoError(t, e.Validate("hype_score * (COALESCE(imdb_rating, 5.0) / 10.0)", env))
	assert.Error(t, e.Validate("hype_score *", env))
}

func TestEngine_RegisterFunction(t *testing.T) {
	e := NewEngine()
	e.RegisterFunction("DOUBLE", func(params ...interface{}) (interface{}, error) {
		v, _ := params[0].(float64)
		return v * 2, nil
	})

	result, err := e.Evaluate("DOUBLE(21.0)", nil)
	assert.NoError(t, err)
	assert.Equal(t, 42.0, result)
}
