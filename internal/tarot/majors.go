package tarot

// Curated symbol annotations for the 22 major arcana, following the
// Rider-Waite-Smith iconography. Position strings use the spatial
// vocabulary understood by the attention and detection position buckets
// (top/bottom/left/right/center and their synonyms).

func num(n int) *int { return &n }

var majorArcana = []*CardIdentity{
	{
		Name: "The Fool", Number: num(0),
		Keywords: "new beginnings, innocence, a leap of faith",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "white rose", Position: "left", Meaning: "purity of intention"},
				{Object: "small white dog", Position: "lower left", Meaning: "loyal instinct warning of danger"},
				{Object: "cliff edge", Position: "bottom", Meaning: "the unknown step ahead"},
				{Object: "white sun", Position: "upper right", Meaning: "divine optimism"},
			},
			DominantColors: []ColorMeaning{
				{Color: "yellow", Meaning: "optimism and vitality"},
				{Color: "white", Meaning: "innocence"},
			},
		},
	},
	{
		Name: "The Magician", Number: num(1),
		Keywords: "willpower, manifestation, resourcefulness",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "raised wand", Position: "upper right", Meaning: "channeling power from above"},
				{Object: "infinity symbol", Position: "top", Meaning: "limitless potential"},
				{Object: "table with four suit emblems", Position: "bottom", Meaning: "mastery of all elements"},
				{Object: "red roses and white lilies", Position: "bottom", Meaning: "desire tempered by pure thought"},
			},
			DominantColors: []ColorMeaning{
				{Color: "red", Meaning: "will and desire"},
				{Color: "yellow", Meaning: "conscious awareness"},
			},
		},
	},
	{
		Name: "The High Priestess", Number: num(2),
		Keywords: "intuition, hidden knowledge, the subconscious",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "black pillar", Position: "left", Meaning: "severity"},
				{Object: "white pillar", Position: "right", Meaning: "mercy"},
				{Object: "crescent moon", Position: "bottom", Meaning: "dominion over intuition"},
				{Object: "scroll", Position: "center", Meaning: "esoteric knowledge partly concealed"},
			},
			DominantColors: []ColorMeaning{
				{Color: "blue", Meaning: "intuition and stillness"},
				{Color: "white", Meaning: "hidden purity"},
			},
		},
	},
	{
		Name: "The Empress", Number: num(3),
		Keywords: "abundance, fertility, nurturing creation",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "field of wheat", Position: "bottom", Meaning: "abundance and harvest"},
				{Object: "crown of stars", Position: "top", Meaning: "celestial authority"},
				{Object: "heart-shaped shield", Position: "lower right", Meaning: "Venus and love made matter"},
				{Object: "flowing waterfall", Position: "upper left", Meaning: "the flow of life"},
			},
			DominantColors: []ColorMeaning{
				{Color: "green", Meaning: "fertility and growth"},
				{Color: "gold", Meaning: "ripened abundance"},
			},
		},
	},
	{
		Name: "The Emperor", Number: num(4),
		Keywords: "authority, structure, paternal power",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "ram heads", Position: "upper left", Meaning: "Aries force and leadership"},
				{Object: "golden scepter", Position: "right", Meaning: "ordered rule"},
				{Object: "stone throne", Position: "center", Meaning: "unyielding foundation"},
				{Object: "barren mountains", Position: "top", Meaning: "power stripped of sentiment"},
			},
			DominantColors: []ColorMeaning{
				{Color: "red", Meaning: "authority and drive"},
				{Color: "orange", Meaning: "vital command"},
			},
		},
	},
	{
		Name: "The Hierophant", Number: num(5),
		Keywords: "tradition, spiritual guidance, conformity",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "triple crown", Position: "top", Meaning: "authority over three worlds"},
				{Object: "crossed keys", Position: "bottom", Meaning: "keys to conscious and subconscious"},
				{Object: "two acolytes", Position: "bottom", Meaning: "transmission of teaching"},
				{Object: "raised hand of blessing", Position: "upper right", Meaning: "benediction"},
			},
			DominantColors: []ColorMeaning{
				{Color: "red", Meaning: "institutional power"},
				{Color: "grey", Meaning: "established stone tradition"},
			},
		},
	},
	{
		Name: "The Lovers", Number: num(6),
		Keywords: "union, choice, alignment of values",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "winged angel", Position: "top", Meaning: "Raphael blessing the union"},
				{Object: "tree of flames", Position: "right", Meaning: "the twelve passions"},
				{Object: "serpent in a fruit tree", Position: "left", Meaning: "temptation and knowledge"},
				{Object: "mountain peak", Position: "center", Meaning: "the climb implicit in choice"},
			},
			DominantColors: []ColorMeaning{
				{Color: "purple", Meaning: "sacred union"},
				{Color: "yellow", Meaning: "radiant blessing"},
			},
		},
	},
	{
		Name: "The Chariot", Number: num(7),
		Keywords: "determination, victory through control",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "black sphinx", Position: "lower left", Meaning: "opposing force mastered"},
				{Object: "white sphinx", Position: "lower right", Meaning: "complementary force mastered"},
				{Object: "canopy of stars", Position: "top", Meaning: "celestial protection"},
				{Object: "crescent moons", Position: "upper left", Meaning: "formative emotion on the shoulders"},
			},
			DominantColors: []ColorMeaning{
				{Color: "blue", Meaning: "disciplined mind"},
				{Color: "gold", Meaning: "triumph"},
			},
		},
	},
	{
		Name: "Strength", Number: num(8),
		Keywords: "inner strength, gentle mastery, courage",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "lion", Position: "lower right", Meaning: "raw passion tamed"},
				{Object: "infinity symbol", Position: "top", Meaning: "endless spiritual power"},
				{Object: "garland of flowers", Position: "center", Meaning: "gentleness binding force"},
			},
			DominantColors: []ColorMeaning{
				{Color: "yellow", Meaning: "radiant courage"},
				{Color: "white", Meaning: "purity of spirit"},
			},
		},
	},
	{
		Name: "The Hermit", Number: num(9),
		Keywords: "introspection, solitary search, inner light",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "lantern with six-pointed star", Position: "upper right", Meaning: "wisdom lighting the way"},
				{Object: "wooden staff", Position: "left", Meaning: "support of accumulated experience"},
				{Object: "snowy peak", Position: "bottom", Meaning: "the cold height of attainment"},
			},
			DominantColors: []ColorMeaning{
				{Color: "grey", Meaning: "austerity and withdrawal"},
				{Color: "blue", Meaning: "contemplative depth"},
			},
		},
	},
	{
		Name: "Wheel of Fortune", Number: num(10),
		Keywords: "cycles, fate, turning points",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "great wheel", Position: "center", Meaning: "the turning of fate"},
				{Object: "sphinx with sword", Position: "top", Meaning: "riddle at the apex"},
				{Object: "descending serpent", Position: "left", Meaning: "force moving into manifestation"},
				{Object: "rising jackal figure", Position: "right", Meaning: "souls carried upward"},
			},
			DominantColors: []ColorMeaning{
				{Color: "blue", Meaning: "the sky of fortune"},
				{Color: "orange", Meaning: "cyclic energy"},
			},
		},
	},
	{
		Name: "Justice", Number: num(11),
		Keywords: "fairness, truth, cause and effect",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "upright sword", Position: "right", Meaning: "impartial reason, double-edged"},
				{Object: "balanced scales", Position: "left", Meaning: "weighing of intention"},
				{Object: "golden crown", Position: "top", Meaning: "authority of law"},
				{Object: "purple veil", Position: "center", Meaning: "compassion behind judgment"},
			},
			DominantColors: []ColorMeaning{
				{Color: "red", Meaning: "the robe of judgment"},
				{Color: "gold", Meaning: "measured worth"},
			},
		},
	},
	{
		Name: "The Hanged Man", Number: num(12),
		Keywords: "surrender, suspension, new perspective",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "living tree gallows", Position: "top", Meaning: "sacrifice on living wood"},
				{Object: "radiant halo", Position: "bottom", Meaning: "illumination through surrender"},
				{Object: "bound foot", Position: "top", Meaning: "willing suspension"},
			},
			DominantColors: []ColorMeaning{
				{Color: "blue", Meaning: "calm acceptance"},
				{Color: "yellow", Meaning: "spiritual insight"},
			},
		},
	},
	{
		Name: "Death", Number: num(13),
		Keywords: "transformation, endings, inexorable change",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "white rose banner", Position: "left", Meaning: "purity surviving change"},
				{Object: "skeleton in black armor", Position: "center", Meaning: "the unkillable process"},
				{Object: "rising sun between towers", Position: "top", Meaning: "rebirth beyond the gate"},
				{Object: "fallen king", Position: "bottom", Meaning: "no rank is exempt"},
			},
			DominantColors: []ColorMeaning{
				{Color: "black", Meaning: "ending"},
				{Color: "white", Meaning: "what persists"},
			},
		},
	},
	{
		Name: "Temperance", Number: num(14),
		Keywords: "balance, moderation, alchemical blending",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "two cups pouring water", Position: "center", Meaning: "blending of opposites"},
				{Object: "angel wings", Position: "top", Meaning: "mediation between worlds"},
				{Object: "foot in the pool", Position: "bottom", Meaning: "one foot in the subconscious"},
				{Object: "iris flowers", Position: "lower right", Meaning: "the messenger's flower"},
			},
			DominantColors: []ColorMeaning{
				{Color: "blue", Meaning: "flowing equilibrium"},
				{Color: "white", Meaning: "angelic purity"},
			},
		},
	},
	{
		Name: "The Devil", Number: num(15),
		Keywords: "bondage, materialism, shadow attachment",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "inverted pentagram", Position: "top", Meaning: "matter over spirit"},
				{Object: "chained couple", Position: "bottom", Meaning: "self-accepted bondage"},
				{Object: "downward torch", Position: "lower left", Meaning: "misdirected fire"},
				{Object: "bat wings", Position: "upper left", Meaning: "the creature of darkness"},
			},
			DominantColors: []ColorMeaning{
				{Color: "black", Meaning: "ignorance"},
				{Color: "red", Meaning: "base appetite"},
			},
		},
	},
	{
		Name: "The Tower", Number: num(16),
		Keywords: "sudden upheaval, revelation, collapse of the false",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "lightning bolt", Position: "top", Meaning: "the flash of disruptive truth"},
				{Object: "falling crown", Position: "upper right", Meaning: "toppled false authority"},
				{Object: "falling figures", Position: "bottom", Meaning: "expulsion from the structure"},
				{Object: "flames from windows", Position: "right", Meaning: "consuming change"},
			},
			DominantColors: []ColorMeaning{
				{Color: "grey", Meaning: "the doomed edifice"},
				{Color: "orange", Meaning: "destructive fire"},
			},
		},
	},
	{
		Name: "The Star", Number: num(17),
		Keywords: "hope, renewal, quiet guidance",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "large eight-pointed star", Position: "top", Meaning: "guiding hope"},
				{Object: "seven smaller stars", Position: "upper left", Meaning: "the chakras or lesser lights"},
				{Object: "kneeling woman with two jugs", Position: "center", Meaning: "renewal poured on land and water"},
				{Object: "pool of water", Position: "bottom", Meaning: "the replenished subconscious"},
			},
			DominantColors: []ColorMeaning{
				{Color: "blue", Meaning: "serene renewal"},
				{Color: "yellow", Meaning: "starlight"},
			},
		},
	},
	{
		Name: "The Moon", Number: num(18),
		Keywords: "illusion, dreams, the uncharted night path",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "full moon with face", Position: "top", Meaning: "reflected, uncertain light"},
				{Object: "two distant towers", Position: "left", Meaning: "gateway at the edge of the known"},
				{Object: "howling dog and wolf", Position: "center", Meaning: "tamed and wild mind in tension"},
				{Object: "crayfish emerging from pool", Position: "bottom", Meaning: "the primitive rising from the deep"},
			},
			DominantColors: []ColorMeaning{
				{Color: "blue", Meaning: "night and dream"},
				{Color: "yellow", Meaning: "moonlight"},
			},
		},
	},
	{
		Name: "The Sun", Number: num(19),
		Keywords: "joy, clarity, vital success",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "radiant sun with face", Position: "top", Meaning: "unclouded consciousness"},
				{Object: "child on white horse", Position: "bottom", Meaning: "innocent joy riding pure force"},
				{Object: "sunflowers", Position: "upper left", Meaning: "life turned toward light"},
				{Object: "red banner", Position: "right", Meaning: "vitality unfurled"},
			},
			DominantColors: []ColorMeaning{
				{Color: "yellow", Meaning: "joy and clarity"},
				{Color: "orange", Meaning: "warmth of life"},
			},
		},
	},
	{
		Name: "Judgement", Number: num(20),
		Keywords: "awakening, reckoning, the call to rise",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "archangel with trumpet", Position: "top", Meaning: "the call that cannot be refused"},
				{Object: "banner with red cross", Position: "top", Meaning: "balance of the elements"},
				{Object: "figures rising from coffins", Position: "bottom", Meaning: "the past answering the call"},
				{Object: "mountain range", Position: "upper right", Meaning: "the impassable made witness"},
			},
			DominantColors: []ColorMeaning{
				{Color: "blue", Meaning: "the sky of reckoning"},
				{Color: "white", Meaning: "resurrection"},
			},
		},
	},
	{
		Name: "The World", Number: num(21),
		Keywords: "completion, integration, the cosmic dance",
		Annotation: &SymbolAnnotation{
			Symbols: []Symbol{
				{Object: "laurel wreath", Position: "center", Meaning: "victory closed into a cycle"},
				{Object: "dancing figure with two wands", Position: "center", Meaning: "balanced mastery in motion"},
				{Object: "four winged creatures", Position: "upper left", Meaning: "the fixed signs witnessing"},
				{Object: "purple sash", Position: "center", Meaning: "divinity worn lightly"},
			},
			DominantColors: []ColorMeaning{
				{Color: "green", Meaning: "living completion"},
				{Color: "blue", Meaning: "cosmic space"},
			},
		},
	},
}

// MajorArcana returns the 22 major-arcana identities in numeric order.
// The returned slice shares the underlying curated data; callers must
// treat it as read-only.
func MajorArcana() []*CardIdentity {
	return majorArcana
}

// MajorByNumber returns the major-arcana card with the given number, or nil.
func MajorByNumber(n int) *CardIdentity {
	if n < 0 || n >= len(majorArcana) {
		return nil
	}
	return majorArcana[n]
}
