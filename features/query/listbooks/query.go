package listbooks

const (
	queryType = "ListBooks"

	// DefaultLimit is the page size applied when the caller does not request one.
	DefaultLimit = 20

	// MaxLimit caps the page size regardless of what the caller requests.
	MaxLimit = 100
)

// Query represents the intent to read one page of the catalog.
// Keyword, when set, restricts results to titles containing it (case-insensitive).
type Query struct {
	Keyword *string
	Limit   int
	Offset  int
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
// Limit and Offset must already be validated as non-negative numbers;
// a zero limit falls back to DefaultLimit and the page size is capped at MaxLimit.
func BuildQuery(keyword *string, limit int, offset int) Query {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Query{
		Keyword: keyword,
		Limit:   limit,
		Offset:  offset,
	}
}
