package tarot

import "strings"

// suitContext is the fixed elemental context interpolated into rank
// templates when synthesizing an annotation for a minor-arcana card.
type suitContext struct {
	Element     string
	Singular    string
	Plural      string
	Environment string
	Palette     []ColorMeaning
	Symbols     []Symbol
}

var suitContexts = map[Suit]suitContext{
	SuitWands: {
		Element:     "fire",
		Singular:    "wand",
		Plural:      "wands",
		Environment: "an open landscape under a warm sky",
		Palette: []ColorMeaning{
			{Color: "orange", Meaning: "creative energy"},
			{Color: "red", Meaning: "passion"},
			{Color: "yellow", Meaning: "vitality"},
		},
		Symbols: []Symbol{
			{Object: "sprouting wand", Position: "center", Meaning: "living ambition"},
			{Object: "distant hills", Position: "bottom", Meaning: "territory yet to claim"},
		},
	},
	SuitCups: {
		Element:     "water",
		Singular:    "cup",
		Plural:      "cups",
		Environment: "a calm body of water beneath a soft sky",
		Palette: []ColorMeaning{
			{Color: "blue", Meaning: "emotional depth"},
			{Color: "silver", Meaning: "reflection"},
			{Color: "white", Meaning: "openness of heart"},
		},
		Symbols: []Symbol{
			{Object: "golden cup", Position: "center", Meaning: "emotional offering"},
			{Object: "flowing water", Position: "bottom", Meaning: "the current of feeling"},
		},
	},
	SuitSwords: {
		Element:     "air",
		Singular:    "sword",
		Plural:      "swords",
		Environment: "a wind-swept plain under a turbulent sky",
		Palette: []ColorMeaning{
			{Color: "grey", Meaning: "detached thought"},
			{Color: "blue", Meaning: "mental clarity"},
			{Color: "white", Meaning: "truth laid bare"},
		},
		Symbols: []Symbol{
			{Object: "upright sword", Position: "center", Meaning: "the cutting edge of mind"},
			{Object: "storm clouds", Position: "top", Meaning: "turbulent thought"},
		},
	},
	SuitPentacles: {
		Element:     "earth",
		Singular:    "pentacle",
		Plural:      "pentacles",
		Environment: "a cultivated garden with worked soil",
		Palette: []ColorMeaning{
			{Color: "green", Meaning: "growth"},
			{Color: "gold", Meaning: "tangible worth"},
			{Color: "brown", Meaning: "grounded labor"},
		},
		Symbols: []Symbol{
			{Object: "engraved pentacle", Position: "center", Meaning: "crafted value"},
			{Object: "tilled earth", Position: "bottom", Meaning: "patient cultivation"},
		},
	},
}

// rankTemplate describes the composition of a rank across all four suits.
// Placeholders {symbol}, {symbols}, {element} and {environment} are
// interpolated from the suit context.
type rankTemplate struct {
	Composition string
	Archetype   string
	Symbols     []Symbol
}

var rankTemplates = map[Rank]rankTemplate{
	RankAce: {
		Composition: "a single radiant {symbol} held by a hand emerging from a cloud, above {environment}",
		Archetype:   "the root of {element}",
		Symbols: []Symbol{
			{Object: "hand emerging from a cloud", Position: "top", Meaning: "a gift offered from the unseen"},
			{Object: "single {symbol}", Position: "center", Meaning: "the concentrated seed of {element}"},
		},
	},
	RankTwo: {
		Composition: "two {symbols} held in tension over {environment}",
		Archetype:   "the first division of {element}",
		Symbols: []Symbol{
			{Object: "pair of {symbols}", Position: "center", Meaning: "a choice being weighed"},
			{Object: "distant horizon", Position: "top", Meaning: "what the decision opens onto"},
		},
	},
	RankThree: {
		Composition: "three {symbols} arranged together amid {environment}",
		Archetype:   "the first fruit of {element}",
		Symbols: []Symbol{
			{Object: "three {symbols} grouped", Position: "center", Meaning: "combined effort taking form"},
			{Object: "standing figure surveying", Position: "left", Meaning: "assessment of early progress"},
		},
	},
	RankFour: {
		Composition: "four {symbols} set in a stable arrangement within {environment}",
		Archetype:   "the consolidation of {element}",
		Symbols: []Symbol{
			{Object: "four {symbols} in a square", Position: "center", Meaning: "structure holding fast"},
			{Object: "resting figure", Position: "bottom", Meaning: "pause within security"},
		},
	},
	RankFive: {
		Composition: "five {symbols} in disarray across {environment}",
		Archetype:   "the disruption of {element}",
		Symbols: []Symbol{
			{Object: "scattered {symbols}", Position: "center", Meaning: "order broken"},
			{Object: "stooped figure", Position: "lower left", Meaning: "loss felt bodily"},
			{Object: "darkened sky", Position: "top", Meaning: "hardship overhead"},
		},
	},
	RankSix: {
		Composition: "six {symbols} in a generous exchange within {environment}",
		Archetype:   "the rebalancing of {element}",
		Symbols: []Symbol{
			{Object: "six {symbols} arranged evenly", Position: "center", Meaning: "harmony restored"},
			{Object: "figures in exchange", Position: "bottom", Meaning: "giving and receiving"},
		},
	},
	RankSeven: {
		Composition: "seven {symbols} under appraisal in {environment}",
		Archetype:   "the testing of {element}",
		Symbols: []Symbol{
			{Object: "seven {symbols} in view", Position: "center", Meaning: "the stock being taken"},
			{Object: "leaning figure", Position: "right", Meaning: "patience under evaluation"},
		},
	},
	RankEight: {
		Composition: "eight {symbols} in disciplined order across {environment}",
		Archetype:   "the craft of {element}",
		Symbols: []Symbol{
			{Object: "eight {symbols} in rows", Position: "center", Meaning: "repetition becoming mastery"},
			{Object: "working figure", Position: "lower right", Meaning: "devotion to the task"},
		},
	},
	RankNine: {
		Composition: "nine {symbols} nearly complete within {environment}",
		Archetype:   "the attainment of {element}",
		Symbols: []Symbol{
			{Object: "nine {symbols} massed", Position: "center", Meaning: "accumulated result"},
			{Object: "upright guarded figure", Position: "left", Meaning: "resilience before the end"},
		},
	},
	RankTen: {
		Composition: "ten {symbols} filling the scene of {environment}",
		Archetype:   "the full weight of {element}",
		Symbols: []Symbol{
			{Object: "ten {symbols} spanning the card", Position: "top", Meaning: "the cycle at capacity"},
			{Object: "family or burden scene", Position: "bottom", Meaning: "legacy carried forward"},
		},
	},
	RankPage: {
		Composition: "a young figure studying a {symbol} in {environment}",
		Archetype:   "the student of {element}",
		Symbols: []Symbol{
			{Object: "young figure holding a {symbol}", Position: "center", Meaning: "open curiosity"},
			{Object: "open ground", Position: "bottom", Meaning: "room to learn"},
		},
	},
	RankKnight: {
		Composition: "a mounted figure bearing a {symbol} through {environment}",
		Archetype:   "the pursuit of {element}",
		Symbols: []Symbol{
			{Object: "mounted figure with a {symbol}", Position: "center", Meaning: "directed momentum"},
			{Object: "horse in motion", Position: "bottom", Meaning: "force given direction"},
		},
	},
	RankQueen: {
		Composition: "an enthroned woman holding a {symbol} before {environment}",
		Archetype:   "the keeper of {element}",
		Symbols: []Symbol{
			{Object: "enthroned woman with a {symbol}", Position: "center", Meaning: "receptive command"},
			{Object: "ornate throne", Position: "bottom", Meaning: "settled sovereignty"},
		},
	},
	RankKing: {
		Composition: "an enthroned man holding a {symbol} commanding {environment}",
		Archetype:   "the ruler of {element}",
		Symbols: []Symbol{
			{Object: "enthroned man with a {symbol}", Position: "center", Meaning: "directive mastery"},
			{Object: "crown", Position: "top", Meaning: "acknowledged authority"},
		},
	},
}

// SynthesizeAnnotation builds a deterministic symbol annotation for a
// minor-arcana card from its suit context and rank template. Cards that
// already carry a curated annotation get it back unchanged; major-arcana
// cards without one return nil.
func SynthesizeAnnotation(card *CardIdentity) *SymbolAnnotation {
	if card.Annotation != nil {
		return card.Annotation
	}
	if card.IsMajor() {
		return nil
	}
	sctx, ok := suitContexts[card.Suit]
	if !ok {
		return nil
	}
	tmpl, ok := rankTemplates[card.Rank]
	if !ok {
		return nil
	}

	interp := strings.NewReplacer(
		"{symbol}", sctx.Singular,
		"{symbols}", sctx.Plural,
		"{element}", sctx.Element,
		"{environment}", sctx.Environment,
	)

	symbols := make([]Symbol, 0, len(tmpl.Symbols)+len(sctx.Symbols))
	for _, s := range tmpl.Symbols {
		symbols = append(symbols, Symbol{
			Object:   interp.Replace(s.Object),
			Position: s.Position,
			Meaning:  interp.Replace(s.Meaning),
		})
	}
	symbols = append(symbols, sctx.Symbols...)

	colors := make([]ColorMeaning, len(sctx.Palette))
	copy(colors, sctx.Palette)

	return &SymbolAnnotation{
		Symbols:        symbols,
		DominantColors: colors,
		Composition:    interp.Replace(tmpl.Composition),
		Archetype:      interp.Replace(tmpl.Archetype),
	}
}
