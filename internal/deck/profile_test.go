package deck

import (
	"strings"
	"testing"

	"github.com/lunaria/arcana/internal/tarot"
)

func TestForStyle(t *testing.T) {
	for _, id := range Styles() {
		p, err := ForStyle(id)
		if err != nil {
			t.Fatalf("ForStyle(%q): %v", id, err)
		}
		if p.ID() != id {
			t.Errorf("ForStyle(%q).ID() = %q", id, p.ID())
		}
	}
	if p, err := ForStyle(""); err != nil || p.ID() != StyleRWS {
		t.Errorf("empty style: got %v, %v, want default rws", p, err)
	}
	if _, err := ForStyle("golden-dawn"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestAliasTotality(t *testing.T) {
	for _, id := range Styles() {
		p, _ := ForStyle(id)
		for _, c := range tarot.Cards(tarot.ScopeAll) {
			alias := p.Alias(c)
			if alias == "" {
				t.Errorf("%s: empty alias for %q", id, c.Name)
			}
			if again := p.Alias(c); again != alias {
				t.Errorf("%s: alias for %q not deterministic: %q vs %q", id, c.Name, alias, again)
			}
		}
	}
}

func TestThothSubstitutions(t *testing.T) {
	p, _ := ForStyle(StyleThoth)
	cases := map[string]string{
		"Queen of Pentacles": "Queen of Disks",
		"Page of Pentacles":  "Princess of Disks",
		"Knight of Cups":     "Prince of Cups",
		"King of Swords":     "Knight of Swords",
		"Two of Pentacles":   "Two of Disks (Change)",
		"Nine of Cups":       "Nine of Cups (Happiness)",
		"Ten of Swords":      "Ten of Swords (Ruin)",
		"Ace of Wands":       "Ace of Wands",
		"Strength":           "Lust",
		"Justice":            "Adjustment",
		"Temperance":         "Art",
		"Judgement":          "The Aeon",
		"The World":          "The Universe",
		"The High Priestess": "The Priestess",
		"Wheel of Fortune":   "Fortune",
		"The Fool":           "The Fool",
	}
	for canonical, want := range cases {
		c := tarot.ByName(canonical)
		if c == nil {
			t.Fatalf("no canonical card %q", canonical)
		}
		if got := p.Alias(c); got != want {
			t.Errorf("thoth alias for %q = %q, want %q", canonical, got, want)
		}
	}
}

func TestMarseilleNaming(t *testing.T) {
	p, _ := ForStyle(StyleMarseille)
	cases := map[string]string{
		"The Fool":        "Le Mat",
		"Death":           "L'Arcane sans nom",
		"The Tower":       "La Maison Dieu",
		"Queen of Cups":   "Reine de Coupes",
		"Knight of Wands": "Cavalier de Bâtons",
		// French elision for vowel-initial suits is out of scope; the
		// resolver composes "rank de suit" uniformly.
		"Ace of Swords": "As de Épées",
	}
	for canonical, want := range cases {
		if got := p.Alias(tarot.ByName(canonical)); got != want {
			t.Errorf("marseille alias for %q = %q, want %q", canonical, got, want)
		}
	}
}

func TestImagePaths(t *testing.T) {
	rws, _ := ForStyle(StyleRWS)
	fool := tarot.ByName("The Fool")
	if got := rws.ImagePath(fool); got != "rws-1909/major-00-the-fool.webp" {
		t.Errorf("rws fool path = %q", got)
	}
	queen := tarot.ByName("Queen of Pentacles")
	if got := rws.ImagePath(queen); !strings.HasPrefix(got, "rws-1909/minor-pentacles-") {
		t.Errorf("rws queen path = %q", got)
	}

	// Marseille ships trump art only; pips fall back to generic art.
	mars, _ := ForStyle(StyleMarseille)
	if got := mars.ImagePath(fool); got == "" {
		t.Error("marseille trump should have an asset path")
	}
	if got := mars.ImagePath(queen); got != "" {
		t.Errorf("marseille pip should have no asset path, got %q", got)
	}

	// Asset paths always use the canonical slug, never the deck alias.
	thoth, _ := ForStyle(StyleThoth)
	if got := thoth.ImagePath(queen); got != "thoth-a1/minor-pentacles-queen.webp" {
		t.Errorf("thoth queen path = %q", got)
	}
}

func TestPromptStrings(t *testing.T) {
	for _, id := range Styles() {
		p, _ := ForStyle(id)
		if p.PromptCue() == "" || p.Palette() == "" || p.Texture() == "" {
			t.Errorf("%s: missing prompt cue, palette or texture", id)
		}
	}
}
