package mode

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// Hybrid fuses lexical and semantic rankings via RRF.
	Hybrid Mode = "hybrid"
	// Lexical ranks by BM25 term matching only.
	Lexical Mode = "lexical"
	// Semantic ranks by embedding cosine similarity only.
	Semantic Mode = "semantic"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Hybrid || m == Lexical || m == Semantic
}

// NeedsEmbedding reports whether the mode requires the semantic path.
func (m Mode) NeedsEmbedding() bool {
	return m == Hybrid || m == Semantic
}

// NeedsLexical reports whether the mode requires the lexical path.
func (m Mode) NeedsLexical() bool {
	return m == Hybrid || m == Lexical
}
