package sortkey

// Key is the requested result ordering.
type Key string

// Sort key constants.
const (
	// Relevance orders by the scorer's (or fuser's) score, descending.
	Relevance Key = "relevance"
	PriceAsc  Key = "price_asc"
	PriceDesc Key = "price_desc"
	// Reviews orders by review count, most reviewed first.
	Reviews Key = "reviews"
	// Newest and Oldest order by release date; games without a date sort last
	// in both directions.
	Newest   Key = "newest"
	Oldest   Key = "oldest"
	NameAsc  Key = "name_asc"
	NameDesc Key = "name_desc"
)

// IsValid checks if the key is one of the supported values.
func (k Key) IsValid() bool {
	switch k {
	case Relevance, PriceAsc, PriceDesc, Reviews, Newest, Oldest, NameAsc, NameDesc:
		return true
	}
	return false
}
