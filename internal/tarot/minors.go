package tarot

import (
	"fmt"
	"sync"
)

var suitKeywords = map[Suit]string{
	SuitWands:     "creative fire and ambition",
	SuitCups:      "emotion and relationship",
	SuitSwords:    "intellect and conflict",
	SuitPentacles: "material work and resources",
}

var rankKeywords = map[Rank]string{
	RankAce:    "a new beginning",
	RankTwo:    "balance and choice",
	RankThree:  "growth and collaboration",
	RankFour:   "stability and rest",
	RankFive:   "conflict and loss",
	RankSix:    "harmony and transition",
	RankSeven:  "assessment and perseverance",
	RankEight:  "mastery and movement",
	RankNine:   "fruition and resilience",
	RankTen:    "completion and legacy",
	RankPage:   "curiosity and study",
	RankKnight: "pursuit and action",
	RankQueen:  "nurture and command",
	RankKing:   "authority and mastery",
}

var (
	minorOnce sync.Once
	minors    []*CardIdentity
	minorByID map[string]*CardIdentity
)

func buildMinors() {
	minors = make([]*CardIdentity, 0, len(Suits)*len(Ranks))
	minorByID = make(map[string]*CardIdentity, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			card := &CardIdentity{
				Name:      fmt.Sprintf("%s of %s", rank, suit),
				Suit:      suit,
				Rank:      rank,
				RankValue: rank.Value(),
				Keywords:  fmt.Sprintf("%s in the realm of %s", rankKeywords[rank], suitKeywords[suit]),
			}
			minors = append(minors, card)
			minorByID[card.ID()] = card
		}
	}
}

// MinorArcana returns the 56 minor-arcana identities, grouped by suit in
// rank order. Minors carry no curated annotation; SynthesizeAnnotation
// derives one from the suit/rank templates.
func MinorArcana() []*CardIdentity {
	minorOnce.Do(buildMinors)
	return minors
}

// ByID looks a card up by its slug identifier across both arcana.
func ByID(id string) *CardIdentity {
	minorOnce.Do(buildMinors)
	if c, ok := minorByID[id]; ok {
		return c
	}
	for _, c := range majorArcana {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// ByName looks a card up by its canonical English name.
func ByName(name string) *CardIdentity {
	for _, c := range majorArcana {
		if c.Name == name {
			return c
		}
	}
	for _, c := range MinorArcana() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
