package result

// Candidate is a single scorer's ranked hit. Scores from different scorers
// are in different units and must not be compared directly; ranks are what
// fusion consumes.
type Candidate struct {
	GameID int64
	// Score is in scorer-specific units: BM25 mass for the lexical path,
	// cosine similarity for the semantic path.
	Score float64
	// Rank is the 1-based position within the scorer's list, ties broken by
	// ascending game id.
	Rank int
}

// Explain is the per-signal breakdown carried on a fused result.
// A zero rank means the game did not appear in that list.
type Explain struct {
	LexicalRank  int     `json:"lexical_rank,omitempty"`
	SemanticRank int     `json:"semantic_rank,omitempty"`
	BM25Score    float64 `json:"bm25_score,omitempty"`
	CosineSim    float64 `json:"cosine_similarity,omitempty"`
}

// FusedResult is a final per-game record.
type FusedResult struct {
	GameID  int64
	Score   float64
	Explain Explain
}

// Page is a slice of ordered results plus the exact size of the filtered
// candidate set.
type Page struct {
	Results    []FusedResult
	TotalCount int
	// Degraded is set when a hybrid request lost its semantic signal and was
	// answered from the lexical path alone.
	Degraded       bool
	DegradedReason string
}
