package ingredient

import (
	"math"
	"testing"
)

func TestToGramsMassUnits(t *testing.T) {
	cases := []struct {
		name     string
		quantity float64
		unit     string
		want     float64
	}{
		{"rice", 300, "g", 300},
		{"rice", 300, "grams", 300},
		{"flour", 2, "kg", 2000},
		{"cheese", 4, "oz", 113.398},
		{"anything", 5, "", 5},
	}

	for _, c := range cases {
		got := ToGrams(c.name, c.quantity, c.unit)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ToGrams(%q, %v, %q) = %v, want %v", c.name, c.quantity, c.unit, got, c.want)
		}
	}
}

func TestToGramsVolumeUnits(t *testing.T) {
	cases := []struct {
		name     string
		quantity float64
		unit     string
		want     float64
	}{
		{"water", 1, "cup", 240},
		{"olive oil", 1, "cup", 216},
		{"milk", 1, "tbsp", 15},
		{"olive oil", 1, "tbsp", 14},
		{"vanilla", 1, "tsp", 5},
		{"olive oil", 1, "tsp", 5},
		{"milk", 250, "ml", 250},
		{"stock", 1, "l", 1000},
	}

	for _, c := range cases {
		got := ToGrams(c.name, c.quantity, c.unit)
		if got != c.want {
			t.Errorf("ToGrams(%q, %v, %q) = %v, want %v", c.name, c.quantity, c.unit, got, c.want)
		}
	}
}

func TestToGramsPieceHeuristics(t *testing.T) {
	cases := []struct {
		name     string
		quantity float64
		unit     string
		want     float64
	}{
		{"garlic", 2, "cloves", 6},
		{"garlic clove", 2, "", 6},
		{"egg", 2, "", 100},
		{"eggs", 3, "", 150},
		{"onion", 1, "piece", 110},
		{"tomato", 2, "pcs", 250},
		{"zucchini", 1, "piece", 50},
	}

	for _, c := range cases {
		got := ToGrams(c.name, c.quantity, c.unit)
		if got != c.want {
			t.Errorf("ToGrams(%q, %v, %q) = %v, want %v", c.name, c.quantity, c.unit, got, c.want)
		}
	}
}

func TestToGramsUnknownUnitPassthrough(t *testing.T) {
	if got := ToGrams("mystery", 42, "handful"); got != 42 {
		t.Errorf("unknown unit should pass quantity through, got %v", got)
	}
}
