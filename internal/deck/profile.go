// Package deck resolves card identities into deck-specific display names
// and asset locations. Each supported deck style implements Profile; all
// resolvers are pure functions over valid identities and constant for the
// process lifetime.
package deck

import (
	"fmt"

	"github.com/lunaria/arcana/internal/tarot"
)

// Profile is the identity resolver for one deck style.
type Profile interface {
	// ID returns the deck style identifier, e.g. "rws-1909".
	ID() string
	// Name returns the human-readable deck name.
	Name() string
	// PromptCue returns the visual-style sentence prepended to card prompts.
	PromptCue() string
	// Palette describes the deck's dominant color treatment.
	Palette() string
	// Texture describes the deck's print/linework texture.
	Texture() string
	// Alias returns the deck-specific display name for a card.
	Alias(c *tarot.CardIdentity) string
	// ImagePath returns the reference-art location for a card relative to
	// the asset root, or "" when the deck has no asset for it.
	ImagePath(c *tarot.CardIdentity) string
	// SuitAlias returns the deck's name for a minor-arcana suit.
	SuitAlias(s tarot.Suit) string
	// CourtAlias returns the deck's name for a rank (courts may be renamed).
	CourtAlias(r tarot.Rank) string
}

var profiles = map[string]Profile{
	StyleRWS:       rwsProfile{},
	StyleThoth:     thothProfile{},
	StyleMarseille: marseilleProfile{},
}

// Style identifiers for the supported deck lineages.
const (
	StyleRWS       = "rws-1909"
	StyleThoth     = "thoth-a1"
	StyleMarseille = "marseille-classic"

	// DefaultStyle is used when a request names no deck.
	DefaultStyle = StyleRWS
)

// ForStyle returns the profile for a deck style id. An empty id selects
// the default style; an unknown id is a configuration error.
func ForStyle(id string) (Profile, error) {
	if id == "" {
		id = DefaultStyle
	}
	p, ok := profiles[id]
	if !ok {
		return nil, fmt.Errorf("unknown deck style %q", id)
	}
	return p, nil
}

// Styles lists the supported deck style ids in stable order.
func Styles() []string {
	return []string{StyleRWS, StyleThoth, StyleMarseille}
}

// assetPath builds the slug-safe reference-art location shared by all
// profiles that ship per-card assets. Paths always use the canonical
// English identity, never the deck alias.
func assetPath(style string, c *tarot.CardIdentity) string {
	return fmt.Sprintf("%s/%s.webp", style, c.ID())
}
