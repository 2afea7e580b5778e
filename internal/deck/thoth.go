package deck

import (
	"fmt"

	"github.com/lunaria/arcana/internal/tarot"
)

// thothProfile is the Crowley-Harris Thoth deck. It renames several major
// trumps, substitutes Disks for Pentacles, shifts the court ranks, and
// titles the numbered minors with per-card epithets.
type thothProfile struct{}

var thothMajorNames = map[string]string{
	"The High Priestess": "The Priestess",
	"Strength":           "Lust",
	"Wheel of Fortune":   "Fortune",
	"Justice":            "Adjustment",
	"Temperance":         "Art",
	"Judgement":          "The Aeon",
	"The World":          "The Universe",
}

var thothSuits = map[tarot.Suit]string{
	tarot.SuitWands:     "Wands",
	tarot.SuitCups:      "Cups",
	tarot.SuitSwords:    "Swords",
	tarot.SuitPentacles: "Disks",
}

var thothCourts = map[tarot.Rank]string{
	tarot.RankPage:   "Princess",
	tarot.RankKnight: "Prince",
	tarot.RankQueen:  "Queen",
	tarot.RankKing:   "Knight",
}

// thothEpithets titles the numbered minors, keyed by suit and rank value.
var thothEpithets = map[tarot.Suit][9]string{
	tarot.SuitWands:     {"Dominion", "Virtue", "Completion", "Strife", "Victory", "Valour", "Swiftness", "Strength", "Oppression"},
	tarot.SuitCups:      {"Love", "Abundance", "Luxury", "Disappointment", "Pleasure", "Debauch", "Indolence", "Happiness", "Satiety"},
	tarot.SuitSwords:    {"Peace", "Sorrow", "Truce", "Defeat", "Science", "Futility", "Interference", "Cruelty", "Ruin"},
	tarot.SuitPentacles: {"Change", "Works", "Power", "Worry", "Success", "Failure", "Prudence", "Gain", "Wealth"},
}

func (thothProfile) ID() string   { return StyleThoth }
func (thothProfile) Name() string { return "Thoth (Crowley-Harris)" }

func (thothProfile) PromptCue() string {
	return "a Thoth tarot card with abstract geometric and esoteric symbolism"
}

func (thothProfile) Palette() string {
	return "luminous gradients of blue, green and violet with prismatic light"
}

func (thothProfile) Texture() string {
	return "painterly watercolor washes with projective-geometry linework"
}

func (p thothProfile) Alias(c *tarot.CardIdentity) string {
	if c.IsMajor() {
		if renamed, ok := thothMajorNames[c.Name]; ok {
			return renamed
		}
		return c.Name
	}
	base := fmt.Sprintf("%s of %s", p.CourtAlias(c.Rank), p.SuitAlias(c.Suit))
	if c.RankValue >= 2 && c.RankValue <= 10 {
		return fmt.Sprintf("%s (%s)", base, thothEpithets[c.Suit][c.RankValue-2])
	}
	return base
}

func (thothProfile) ImagePath(c *tarot.CardIdentity) string {
	return assetPath(StyleThoth, c)
}

func (thothProfile) SuitAlias(s tarot.Suit) string {
	return thothSuits[s]
}

func (thothProfile) CourtAlias(r tarot.Rank) string {
	if court, ok := thothCourts[r]; ok {
		return court
	}
	return string(r)
}
