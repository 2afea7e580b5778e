package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunaria/arcana/internal/deck"
	"github.com/lunaria/arcana/internal/tarot"
)

// DeckHandler serves the deck and card catalogs.
type DeckHandler struct{}

// NewDeckHandler creates a new deck catalog handler.
func NewDeckHandler() *DeckHandler {
	return &DeckHandler{}
}

// DeckInfo describes one supported deck style.
type DeckInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// CardInfo describes one card as a given deck renders it.
type CardInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CanonicalName string `json:"canonical_name"`
	Arcana        string `json:"arcana"`
	Suit          string `json:"suit,omitempty"`
	Rank          string `json:"rank,omitempty"`
	Keywords      string `json:"keywords"`
	ImagePath     string `json:"image_path,omitempty"`
}

// ListDecks handles GET /api/v1/decks
func (h *DeckHandler) ListDecks(c *gin.Context) {
	styles := deck.Styles()
	decks := make([]DeckInfo, 0, len(styles))
	for _, id := range styles {
		profile, err := deck.ForStyle(id)
		if err != nil {
			continue
		}
		decks = append(decks, DeckInfo{
			ID:      profile.ID(),
			Name:    profile.Name(),
			Default: profile.ID() == deck.DefaultStyle,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"decks": decks,
		"count": len(decks),
	})
}

// ListCards handles GET /api/v1/cards?deck=rws-1909&scope=all
func (h *DeckHandler) ListCards(c *gin.Context) {
	profile, err := deck.ForStyle(c.Query("deck"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scope, err := tarot.ParseScope(c.Query("scope"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cards := tarot.Cards(scope)
	infos := make([]CardInfo, 0, len(cards))
	for _, card := range cards {
		info := CardInfo{
			ID:            card.ID(),
			Name:          profile.Alias(card),
			CanonicalName: card.Name,
			Keywords:      card.Keywords,
			ImagePath:     profile.ImagePath(card),
		}
		if card.IsMajor() {
			info.Arcana = "major"
		} else {
			info.Arcana = "minor"
			info.Suit = profile.SuitAlias(card.Suit)
			info.Rank = profile.CourtAlias(card.Rank)
		}
		infos = append(infos, info)
	}

	c.JSON(http.StatusOK, gin.H{
		"deck":  profile.ID(),
		"scope": string(scope),
		"cards": infos,
		"count": len(infos),
	})
}
