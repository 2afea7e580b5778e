package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmbeddingKind distinguishes the three reference-vector sources.
type EmbeddingKind string

const (
	EmbeddingKindText    EmbeddingKind = "text"
	EmbeddingKindImage   EmbeddingKind = "image"
	EmbeddingKindAdapter EmbeddingKind = "adapter"
)

// VectorJSON stores a float32 vector as JSON text in the database.
type VectorJSON []float32

// Value implements the driver.Valuer interface for database serialization.
func (v VectorJSON) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (v *VectorJSON) Scan(value interface{}) error {
	if value == nil {
		*v = VectorJSON{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan VectorJSON")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, v)
}

// CachedEmbedding is one reference vector for a card, keyed by deck,
// card, source kind and embedding model so model upgrades invalidate
// naturally.
type CachedEmbedding struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Deck      string        `gorm:"type:text;not null;uniqueIndex:idx_embeddings_key" json:"deck"`
	CardID    string        `gorm:"type:text;not null;uniqueIndex:idx_embeddings_key" json:"card_id"`
	Kind      EmbeddingKind `gorm:"type:text;not null;uniqueIndex:idx_embeddings_key" json:"kind"`
	Model     string        `gorm:"type:text;not null;uniqueIndex:idx_embeddings_key" json:"model"`
	Vector    VectorJSON    `gorm:"type:text" json:"vector"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// TableName returns the database table name for CachedEmbedding.
func (CachedEmbedding) TableName() string {
	return "cached_embeddings"
}

// EmbeddingCache persists reference vectors between runs so library
// builds skip the embedding backend for unchanged cards.
type EmbeddingCache struct {
	db *gorm.DB
}

// NewEmbeddingCache creates an EmbeddingCache.
func NewEmbeddingCache(db *gorm.DB) *EmbeddingCache {
	return &EmbeddingCache{db: db}
}

// Get returns the cached vector for a key, or nil when absent.
func (c *EmbeddingCache) Get(ctx context.Context, deckStyle, cardID string, kind EmbeddingKind, model string) ([]float32, error) {
	var row CachedEmbedding
	err := c.db.WithContext(ctx).
		Where("deck = ? AND card_id = ? AND kind = ? AND model = ?", deckStyle, cardID, kind, model).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []float32(row.Vector), nil
}

// Put stores or replaces the cached vector for a key.
func (c *EmbeddingCache) Put(ctx context.Context, deckStyle, cardID string, kind EmbeddingKind, model string, vector []float32) error {
	row := CachedEmbedding{
		Deck:   deckStyle,
		CardID: cardID,
		Kind:   kind,
		Model:  model,
		Vector: VectorJSON(vector),
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "deck"}, {Name: "card_id"}, {Name: "kind"}, {Name: "model"}},
			DoUpdates: clause.AssignmentColumns([]string{"vector", "updated_at"}),
		}).
		Create(&row).Error
}

// Purge drops every cached vector for a deck, e.g. after annotation or
// prompt changes.
func (c *EmbeddingCache) Purge(ctx context.Context, deckStyle string) error {
	return c.db.WithContext(ctx).
		Where("deck = ?", deckStyle).
		Delete(&CachedEmbedding{}).Error
}
