package deck

import (
	"fmt"

	"github.com/lunaria/arcana/internal/tarot"
)

// marseilleProfile is the classic Tarot de Marseille. Trumps carry their
// French titles and minors are named "rank de suit". Only the trumps have
// reference art; the pip cards fall back to generic art via an empty path.
type marseilleProfile struct{}

var marseilleMajorNames = map[string]string{
	"The Fool":           "Le Mat",
	"The Magician":       "Le Bateleur",
	"The High Priestess": "La Papesse",
	"The Empress":        "L'Impératrice",
	"The Emperor":        "L'Empereur",
	"The Hierophant":     "Le Pape",
	"The Lovers":         "L'Amoureux",
	"The Chariot":        "Le Chariot",
	"Strength":           "La Force",
	"The Hermit":         "L'Hermite",
	"Wheel of Fortune":   "La Roue de Fortune",
	"Justice":            "La Justice",
	"The Hanged Man":     "Le Pendu",
	"Death":              "L'Arcane sans nom",
	"Temperance":         "Tempérance",
	"The Devil":          "Le Diable",
	"The Tower":          "La Maison Dieu",
	"The Star":           "L'Étoile",
	"The Moon":           "La Lune",
	"The Sun":            "Le Soleil",
	"Judgement":          "Le Jugement",
	"The World":          "Le Monde",
}

var marseilleSuits = map[tarot.Suit]string{
	tarot.SuitWands:     "Bâtons",
	tarot.SuitCups:      "Coupes",
	tarot.SuitSwords:    "Épées",
	tarot.SuitPentacles: "Deniers",
}

var marseilleRanks = map[tarot.Rank]string{
	tarot.RankAce:    "As",
	tarot.RankTwo:    "Deux",
	tarot.RankThree:  "Trois",
	tarot.RankFour:   "Quatre",
	tarot.RankFive:   "Cinq",
	tarot.RankSix:    "Six",
	tarot.RankSeven:  "Sept",
	tarot.RankEight:  "Huit",
	tarot.RankNine:   "Neuf",
	tarot.RankTen:    "Dix",
	tarot.RankPage:   "Valet",
	tarot.RankKnight: "Cavalier",
	tarot.RankQueen:  "Reine",
	tarot.RankKing:   "Roi",
}

func (marseilleProfile) ID() string   { return StyleMarseille }
func (marseilleProfile) Name() string { return "Tarot de Marseille" }

func (marseilleProfile) PromptCue() string {
	return "a Tarot de Marseille card with medieval woodcut figures"
}

func (marseilleProfile) Palette() string {
	return "limited stencil colors of red, blue, yellow and flesh tones"
}

func (marseilleProfile) Texture() string {
	return "coarse woodblock lines with flat stencil coloring"
}

func (p marseilleProfile) Alias(c *tarot.CardIdentity) string {
	if c.IsMajor() {
		if name, ok := marseilleMajorNames[c.Name]; ok {
			return name
		}
		return c.Name
	}
	return fmt.Sprintf("%s de %s", p.CourtAlias(c.Rank), p.SuitAlias(c.Suit))
}

func (marseilleProfile) ImagePath(c *tarot.CardIdentity) string {
	if !c.IsMajor() {
		return ""
	}
	return assetPath(StyleMarseille, c)
}

func (marseilleProfile) SuitAlias(s tarot.Suit) string {
	return marseilleSuits[s]
}

func (marseilleProfile) CourtAlias(r tarot.Rank) string {
	return marseilleRanks[r]
}
