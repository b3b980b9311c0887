package waterquality_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climateguard/climateguard/internal/waterquality"
)

func allSafeParams() waterquality.Parameters {
	safe := waterquality.Parameter{Safe: true}
	return waterquality.Parameters{
		PH: safe, DissolvedOxygen: safe, BOD: safe, Turbidity: safe,
		TotalColiform: safe, Nitrate: safe, Fluoride: safe, Iron: safe,
	}
}

func TestIndex_AllSafeBaseline(t *testing.T) {
	// The weighted sum has a fixed floor when every parameter is within
	// limits: 5*10 + 3*5 = 65.
	wqi := waterquality.Index(allSafeParams())
	assert.Equal(t, 65, wqi.Value)
	assert.Equal(t, waterquality.CategoryFair, wqi.Category)
}

func TestIndex_UnsafeParametersRaiseIndex(t *testing.T) {
	params := allSafeParams()
	params.TotalColiform.Safe = false
	params.BOD.Safe = false

	wqi := waterquality.Index(params)
	assert.Equal(t, 85, wqi.Value)
	assert.Equal(t, waterquality.CategoryPoor, wqi.Category)
}

func TestCategoryFor_Bands(t *testing.T) {
	tests := []struct {
		value int
		want  waterquality.Category
	}{
		{0, waterquality.CategoryExcellent},
		{25, waterquality.CategoryExcellent},
		{26, waterquality.CategoryGood},
		{50, waterquality.CategoryGood},
		{51, waterquality.CategoryFair},
		{75, waterquality.CategoryFair},
		{76, waterquality.CategoryPoor},
		{100, waterquality.CategoryPoor},
		{101, waterquality.CategoryVeryPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, waterquality.CategoryFor(tt.value), "value=%d", tt.value)
	}
}

func TestGenerate_DeterministicPerCity(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	a := waterquality.Generate("Chennai", "Tamil Nadu", 13.0827, 80.2707, now)
	b := waterquality.Generate("Chennai", "Tamil Nadu", 13.0827, 80.2707, now)

	// Same city, same parameters; only the IDs differ.
	assert.Equal(t, a.Parameters, b.Parameters)
	assert.Equal(t, a.WQI, b.WQI)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerate_ValuesWithinRanges(t *testing.T) {
	now := time.Now()

	for _, city := range []string{"Delhi", "Mumbai", "Kolkata", "Pune"} {
		r := waterquality.Generate(city, "", 0, 0, now)
		require.Equal(t, waterquality.SourceSimulated, r.Source)

		p := r.Parameters
		assert.GreaterOrEqual(t, p.PH.Value, 6.8)
		assert.LessOrEqual(t, p.PH.Value, 8.2)
		assert.GreaterOrEqual(t, p.DissolvedOxygen.Value, 5.0)
		assert.LessOrEqual(t, p.DissolvedOxygen.Value, 8.0)
		assert.GreaterOrEqual(t, p.TotalColiform.Value, 10.0)
		assert.LessOrEqual(t, p.TotalColiform.Value, 80.0)

		assert.Equal(t, waterquality.CategoryFor(r.WQI.Value), r.WQI.Category)
		assert.Equal(t, waterquality.SafeForDrinking(r.WQI.Value), r.SafeForDrinking)
	}
}
