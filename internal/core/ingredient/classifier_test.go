package ingredient

import "testing"

func TestIsDishPrompt(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"I want a high-protein chicken dinner", true},
		{"make me something spicy", true},
		{"suggest a quick lunch", true},
		{"a vegan dish with tofu", true},
		{"some pasta dinner please", true},
		{"healthy breakfast bowl", true},
		{"gluten free pancakes", true},
		{"low-carb stir fry", true},
		{"Chicken breast 300g", false},
		{"Chicken breast 300g\nGarlic 2 cloves", false},
		{"I want a high-protein chicken dinner\nwith rice", false},
		{"tomato onion rice", false},
	}

	for _, c := range cases {
		got := IsDishPrompt(c.text)
		if got != c.want {
			t.Errorf("IsDishPrompt(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}
