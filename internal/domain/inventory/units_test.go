package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplay(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		factor   float64
		expected float64
	}{
		{
			name:     "килограммы из граммов",
			base:     5000,
			factor:   1000,
			expected: 5,
		},
		{
			name:     "штучный товар",
			base:     7,
			factor:   1,
			expected: 7,
		},
		{
			name:     "нулевой коэффициент трактуется как 1",
			base:     250,
			factor:   0,
			expected: 250,
		},
		{
			name:     "отрицательный коэффициент трактуется как 1",
			base:     250,
			factor:   -3,
			expected: 250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ToDisplay(tt.base, tt.factor), 1e-9)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	factors := []float64{1, 12, 100, 1000, 0.5, 33.3}
	quantities := []float64{0, 1, 2.5, 17, 1000}

	for _, f := range factors {
		for _, q := range quantities {
			got := ToDisplay(ToBase(q, f), f)
			assert.InDelta(t, q, got, 1e-9,
				"туда-обратно для qty=%v factor=%v", q, f)
		}
	}
}

func TestDeduct(t *testing.T) {
	tests := []struct {
		name        string
		base        float64
		soldDisplay float64
		factor      float64
		expected    float64
	}{
		{
			name:        "обычное списание",
			base:        5000,
			soldDisplay: 2,
			factor:      1000,
			expected:    3000,
		},
		{
			name:        "списание в ноль",
			base:        1500,
			soldDisplay: 1.5,
			factor:      1000,
			expected:    0,
		},
		{
			name:        "продажа сверх остатка не дает минуса",
			base:        500,
			soldDisplay: 3,
			factor:      1000,
			expected:    0,
		},
		{
			name:        "дробное количество",
			base:        1000,
			soldDisplay: 0.25,
			factor:      1000,
			expected:    750,
		},
		{
			// Защита "ноль как единица" есть только в ToDisplay;
			// списание считает строго по формуле и ничего не снимает
			name:        "нулевой коэффициент ничего не списывает",
			base:        10,
			soldDisplay: 3,
			factor:      0,
			expected:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduct(tt.base, tt.soldDisplay, tt.factor)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "рис", NormalizeName("  Рис "))
	assert.True(t, SameName("Rice", " rice"))
	assert.False(t, SameName("Rice", "Sugar"))
}

func TestItemDisplayAndLow(t *testing.T) {
	rice := Item{
		Name:         "Rice",
		QuantityBase: 5000,
		BaseUnit:     "gram",
		DisplayUnit:  "kilogram",
		Factor:       1000,
	}

	assert.InDelta(t, 5.0, rice.QuantityDisplay(), 1e-9)
	assert.True(t, rice.Low(), "5 кг ниже порога в 10 единиц продажи")

	rice.QuantityBase = 25000
	assert.False(t, rice.Low())

	// Битая строка с нулевым коэффициентом не должна ронять расчет
	broken := Item{Name: "Соль", QuantityBase: 4, Factor: 0}
	assert.InDelta(t, 4.0, broken.QuantityDisplay(), 1e-9)
	assert.True(t, broken.Low())
}
