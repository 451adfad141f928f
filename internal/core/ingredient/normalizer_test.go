package ingredient

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Tomatoes (large)", "tomato"},
		{"  Chicken Breast ", "chicken breast"},
		{"olive-oil!", "olive oil"},
		{"Eggs", "egg"},
		{"cloves", "clove"},
		{"onions", "onion"},
		{"potatoes", "potato"},
		{"peppers", "pepper"},
		{"carrots", "carrot"},
		{"  ", ""},
		{"", ""},
		{"quinoa", "quinoa"},
	}

	for _, c := range cases {
		got := Normalize(c.raw)
		if got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeSingularExactMatchOnly(t *testing.T) {
	// 單數化只做完整比對，不能動到子字串
	got := Normalize("green onions and eggs")
	if got != "green onions and eggs" {
		t.Errorf("expected substring plurals to pass through, got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Tomatoes (large)", "Chicken breast 300g", "eggs", "", "Olive Oil"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
