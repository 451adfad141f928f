package ingredient

import (
	"testing"
)

func TestParseQuantityAfterName(t *testing.T) {
	got := Parse("Chicken breast 300g")
	if len(got) != 1 {
		t.Fatalf("expected 1 ingredient, got %d", len(got))
	}
	if got[0].Name != "chicken breast" {
		t.Errorf("expected name %q, got %q", "chicken breast", got[0].Name)
	}
	if got[0].Quantity != 300 {
		t.Errorf("expected 300g, got %v", got[0].Quantity)
	}
}

func TestParseQuantityBeforeName(t *testing.T) {
	got := Parse("300g Chicken breast")
	if len(got) != 1 {
		t.Fatalf("expected 1 ingredient, got %d", len(got))
	}
	if got[0].Name != "chicken breast" {
		t.Errorf("expected name %q, got %q", "chicken breast", got[0].Name)
	}
	if got[0].Quantity != 300 {
		t.Errorf("expected 300g, got %v", got[0].Quantity)
	}
}

func TestParseEggs(t *testing.T) {
	got := Parse("2 eggs")
	if len(got) != 1 {
		t.Fatalf("expected 1 ingredient, got %d", len(got))
	}
	if got[0].Name != "egg" {
		t.Errorf("expected name %q, got %q", "egg", got[0].Name)
	}
	if got[0].Quantity != 100 {
		t.Errorf("expected 100g (2 x 50g), got %v", got[0].Quantity)
	}
}

func TestParseFallbackDefaultsTo100g(t *testing.T) {
	got := Parse("Salt to taste")
	if len(got) != 1 {
		t.Fatalf("expected 1 ingredient, got %d", len(got))
	}
	if got[0].Name != "salt to taste" {
		t.Errorf("expected name %q, got %q", "salt to taste", got[0].Name)
	}
	if got[0].Quantity != 100 {
		t.Errorf("fallback quantity must be 100g, got %v", got[0].Quantity)
	}
}

func TestParseUnitConversion(t *testing.T) {
	cases := []struct {
		line     string
		wantName string
		wantQty  float64
	}{
		{"Garlic 2 cloves", "garlic", 6},
		{"1 tbsp olive oil", "olive oil", 14},
		{"1 cup water", "water", 240},
		{"0.5 kg potatoes", "potato", 500},
		{"2 pieces onion", "onion", 220},
	}

	for _, c := range cases {
		got := Parse(c.line)
		if len(got) != 1 {
			t.Fatalf("Parse(%q): expected 1 ingredient, got %d", c.line, len(got))
		}
		if got[0].Name != c.wantName {
			t.Errorf("Parse(%q): name = %q, want %q", c.line, got[0].Name, c.wantName)
		}
		if got[0].Quantity != c.wantQty {
			t.Errorf("Parse(%q): quantity = %v, want %v", c.line, got[0].Quantity, c.wantQty)
		}
	}
}

func TestParseMultipleLinesPreservesOrder(t *testing.T) {
	text := "Chicken breast 300g\n\nGarlic 2 cloves\n  \nSalt to taste\n"
	got := Parse(text)
	if len(got) != 3 {
		t.Fatalf("expected 3 ingredients, got %d", len(got))
	}
	wantNames := []string{"chicken breast", "garlic", "salt to taste"}
	for i, want := range wantNames {
		if got[i].Name != want {
			t.Errorf("line %d: name = %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := Parse("\n  \n"); len(got) != 0 {
		t.Errorf("expected empty result for blank lines, got %v", got)
	}
}
