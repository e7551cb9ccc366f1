package definition_test

import (
	"testing"

	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfileProperties(t *testing.T) {
	props := definition.DefaultProfile.CalculateProperties()
	assert.InDelta(t, 0.06975, props.Area, 1e-12)
	assert.InDelta(t, 0.12, props.Thickness, 1e-12)
	assert.InDelta(t, 0, props.CentroidY, 1e-12)
	assert.Equal(t, 0.0, props.MinX)
	assert.Equal(t, 1.0, props.MaxX)
	require.NoError(t, definition.DefaultProfile.Validate())
}

func TestProfileScaled(t *testing.T) {
	p := definition.DefaultProfile.Scaled(0.24)
	props := p.CalculateProperties()
	assert.InDelta(t, 0.24, props.Thickness, 1e-12)
	assert.InDelta(t, 2*0.06975, props.Area, 1e-12)
	require.NoError(t, p.Validate())
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile definition.Profile
		want    string
	}{
		{"too few", definition.Profile{{0, 0}, {1, 0}}, "at least 3 vertices"},
		{"short chord", definition.Profile{{0, 0}, {0.5, 0.1}, {0.9, 0}, {0.5, -0.1}}, "span x = 0 to 1"},
		{"blunt leading edge", definition.Profile{{0, 0.05}, {1, 0}, {0, -0.05}}, "more than one vertex at x = 0"},
		{"concave", definition.Profile{{0, 0}, {0.3, 0.1}, {0.5, 0.02}, {0.7, 0.1}, {1, 0}, {0.5, -0.1}}, "not convex"},
		{"collinear", definition.Profile{{0, 0}, {0.5, 0.05}, {1, 0.1}, {0.5, -0.1}}, "collinear"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	triangle := definition.Profile{{0, 0}, {1, 0}, {0.3, 0.1}}
	assert.NoError(t, triangle.Validate())
}
