package deck

import "github.com/lunaria/arcana/internal/tarot"

// rwsProfile is the 1909 Rider-Waite-Smith deck. Its names are the
// canonical identities, so alias resolution is the identity function.
type rwsProfile struct{}

func (rwsProfile) ID() string   { return StyleRWS }
func (rwsProfile) Name() string { return "Rider-Waite-Smith (1909)" }

func (rwsProfile) PromptCue() string {
	return "a Rider-Waite-Smith tarot card with detailed narrative illustration"
}

func (rwsProfile) Palette() string {
	return "flat primary colors with bold yellow skies and solid color fields"
}

func (rwsProfile) Texture() string {
	return "black ink outlines over hand-colored lithographic print"
}

func (rwsProfile) Alias(c *tarot.CardIdentity) string {
	return c.Name
}

func (rwsProfile) ImagePath(c *tarot.CardIdentity) string {
	return assetPath(StyleRWS, c)
}

func (rwsProfile) SuitAlias(s tarot.Suit) string {
	return string(s)
}

func (rwsProfile) CourtAlias(r tarot.Rank) string {
	return string(r)
}
