package game

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/playforge/gamedex/internal/domain"
)

// Hash field names under a game key.
const (
	fieldDoc    = "doc"
	fieldVector = "vec"
)

const dateLayout = "2006-01-02"

// gameDTO is the JSON shape of a game document at rest. The embedding lives
// in its own binary hash field, not in the JSON.
type gameDTO struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	PriceCents  int64    `json:"price_cents"`
	Type        string   `json:"type"`
	ReviewCount int64    `json:"review_count"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// buildHashFields converts a domain Game into a flat map for HSET.
func buildHashFields(g *domain.Game) (map[string]string, error) {
	dto := gameDTO{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Genres:      g.Genres,
		Categories:  g.Categories,
		PriceCents:  g.PriceCents,
		Type:        string(g.Type),
		ReviewCount: g.ReviewCount,
	}
	if g.ReleaseDate != nil {
		dto.ReleaseDate = g.ReleaseDate.Format(dateLayout)
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("marshal game %d: %w", g.ID, err)
	}
	fields := map[string]string{fieldDoc: string(data)}
	if g.HasEmbedding() {
		fields[fieldVector] = vectorToBytes(g.Embedding)
	}
	return fields, nil
}

// parseHashFields converts a stored hash back into a domain Game.
func parseHashFields(m map[string]string) (*domain.Game, error) {
	raw, ok := m[fieldDoc]
	if !ok {
		return nil, fmt.Errorf("missing %q field", fieldDoc)
	}
	var dto gameDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return nil, fmt.Errorf("unmarshal game document: %w", err)
	}
	g := &domain.Game{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		Genres:      dto.Genres,
		Categories:  dto.Categories,
		PriceCents:  dto.PriceCents,
		Type:        domain.ItemType(dto.Type),
		ReviewCount: dto.ReviewCount,
	}
	if dto.ReleaseDate != "" {
		t, err := time.Parse(dateLayout, dto.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("parse release date %q: %w", dto.ReleaseDate, err)
		}
		g.ReleaseDate = &t
	}
	if vec, ok := m[fieldVector]; ok {
		g.Embedding = bytesToVector(vec)
	}
	return g, nil
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
