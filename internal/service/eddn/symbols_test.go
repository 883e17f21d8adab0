package eddn

import (
	"testing"

	"github.com/galmarket/eddn-ingest/internal/entity"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hyphenated", "Agri-Medicines", "agri_medicines"},
		{"hyphen and space", "Non-Lethal Weapons", "non_lethal_weapons"},
		{"plain spaces", "Hydrogen Fuel", "hydrogen_fuel"},
		{"ampersand", "H.E. Suits & Gear", "he_suits_and_gear"},
		{"punctuation stripped", "Void Opal (Raw)", "void_opal_raw"},
		{"surrounding whitespace", "  Gold  ", "gold"},
		{"mixed separators", "Low - Temperature Diamonds", "low_temperature_diamonds"},
		{"already normalized", "hydrogen_fuel", "hydrogen_fuel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSymbol(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.in, got, tt.want)
			}

			// Normalization must be a fixpoint.
			if again := NormalizeSymbol(got); again != got {
				t.Errorf("NormalizeSymbol not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestBuildSymbolMap_FirstWins(t *testing.T) {
	items := []entity.Item{
		{ID: 1, Name: "Hydrogen Fuel"},
		{ID: 2, Name: "hydrogen-fuel"}, // collides after normalization
		{ID: 3, Name: "Gold"},
	}

	symbols := BuildSymbolMap(items)

	if len(symbols) != 2 {
		t.Fatalf("len(symbols) = %d, want 2", len(symbols))
	}
	if got := symbols["hydrogen_fuel"]; got != 1 {
		t.Errorf("symbols[hydrogen_fuel] = %d, want first-seen id 1", got)
	}
	if got := symbols["gold"]; got != 3 {
		t.Errorf("symbols[gold] = %d, want 3", got)
	}
}
