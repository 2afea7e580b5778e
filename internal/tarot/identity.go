package tarot

import (
	"fmt"
	"strings"
)

// Suit is one of the four minor-arcana suits.
type Suit string

const (
	SuitWands     Suit = "Wands"
	SuitCups      Suit = "Cups"
	SuitSwords    Suit = "Swords"
	SuitPentacles Suit = "Pentacles"
)

// Suits lists the four suits in canonical order.
var Suits = []Suit{SuitWands, SuitCups, SuitSwords, SuitPentacles}

// Rank is a minor-arcana rank, Ace through King.
type Rank string

const (
	RankAce    Rank = "Ace"
	RankTwo    Rank = "Two"
	RankThree  Rank = "Three"
	RankFour   Rank = "Four"
	RankFive   Rank = "Five"
	RankSix    Rank = "Six"
	RankSeven  Rank = "Seven"
	RankEight  Rank = "Eight"
	RankNine   Rank = "Nine"
	RankTen    Rank = "Ten"
	RankPage   Rank = "Page"
	RankKnight Rank = "Knight"
	RankQueen  Rank = "Queen"
	RankKing   Rank = "King"
)

// Ranks lists the thirteen ranks in ascending order (Page..King are the courts).
var Ranks = []Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankPage, RankKnight, RankQueen, RankKing,
}

var rankValues = map[Rank]int{
	RankAce: 1, RankTwo: 2, RankThree: 3, RankFour: 4, RankFive: 5,
	RankSix: 6, RankSeven: 7, RankEight: 8, RankNine: 9, RankTen: 10,
	RankPage: 11, RankKnight: 12, RankQueen: 13, RankKing: 14,
}

// Value returns the numeric rank value (Ace=1 .. King=14), or 0 for an empty rank.
func (r Rank) Value() int {
	return rankValues[r]
}

// Scope selects which subset of the deck populates a card library.
type Scope string

const (
	ScopeMajor Scope = "major"
	ScopeAll   Scope = "all"
)

// ParseScope validates a scope selector string.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeMajor, ScopeAll:
		return Scope(s), nil
	case "":
		return ScopeMajor, nil
	}
	return "", fmt.Errorf("unknown card scope %q", s)
}

// Symbol is one expected iconographic element of a card.
type Symbol struct {
	Object   string `json:"object"`
	Position string `json:"position"`
	Meaning  string `json:"meaning"`
}

// ColorMeaning pairs a dominant color with its iconographic meaning.
type ColorMeaning struct {
	Color   string `json:"color"`
	Meaning string `json:"meaning"`
}

// SymbolAnnotation describes the expected imagery of one card.
type SymbolAnnotation struct {
	Symbols        []Symbol       `json:"symbols"`
	DominantColors []ColorMeaning `json:"dominant_colors"`
	Composition    string         `json:"composition,omitempty"`
	Archetype      string         `json:"archetype,omitempty"`
}

// CardIdentity is the immutable logical identity of one of the 78 cards.
// Exactly one of Number (major arcana) or Suit+Rank (minor arcana) is set.
type CardIdentity struct {
	Name       string
	Number     *int
	Suit       Suit
	Rank       Rank
	RankValue  int
	Keywords   string
	Annotation *SymbolAnnotation
}

// IsMajor reports whether the card belongs to the major arcana.
func (c *CardIdentity) IsMajor() bool {
	return c.Number != nil
}

// ID returns a stable slug identifier for the card, e.g. "major-00-the-fool"
// or "minor-wands-queen".
func (c *CardIdentity) ID() string {
	if c.IsMajor() {
		return fmt.Sprintf("major-%02d-%s", *c.Number, Slug(c.Name))
	}
	return fmt.Sprintf("minor-%s-%s", Slug(string(c.Suit)), Slug(string(c.Rank)))
}

// Validate enforces the identity-exclusivity invariant: a card is either
// major (Number set, no suit/rank) or minor (Suit and Rank set, no number).
func (c *CardIdentity) Validate() error {
	major := c.Number != nil
	minor := c.Suit != "" && c.Rank != ""
	switch {
	case major && minor:
		return fmt.Errorf("card %q is both major and minor", c.Name)
	case !major && !minor:
		return fmt.Errorf("card %q is neither major nor minor", c.Name)
	case major && (*c.Number < 0 || *c.Number > 21):
		return fmt.Errorf("card %q has major number %d out of range", c.Name, *c.Number)
	case minor && c.RankValue != c.Rank.Value():
		return fmt.Errorf("card %q has rank value %d, want %d", c.Name, c.RankValue, c.Rank.Value())
	}
	return nil
}

// Cards returns the card identities in the given scope, majors first in
// numeric order, then minors grouped by suit in rank order.
func Cards(scope Scope) []*CardIdentity {
	out := make([]*CardIdentity, 0, 78)
	out = append(out, MajorArcana()...)
	if scope == ScopeAll {
		out = append(out, MinorArcana()...)
	}
	return out
}

// Slug converts a display name into a lowercase, filesystem-safe token.
func Slug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
