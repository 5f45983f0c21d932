package domain

// ClassifiedRow holds the three fields extracted from one data row before
// categorisation.
type ClassifiedRow struct {
	Vendor     string
	Status     string
	PartNumber string
}

// VendorStatusKey keys an aggregate by the (vendor, status) pair of a row.
// Both components are compared by exact string equality after trimming,
// which the classifier guarantees.
type VendorStatusKey struct {
	Vendor string
	Status string
}

// TokenSet is a set of distinct part-family tokens. Membership is
// idempotent: re-adding an existing token does not change the count.
type TokenSet map[string]struct{}

// Add inserts a token into the set.
func (t TokenSet) Add(token string) {
	t[token] = struct{}{}
}

// Contains reports set membership.
func (t TokenSet) Contains(token string) bool {
	_, ok := t[token]
	return ok
}

// SourceAggregate is the per-source tally: (vendor, status) -> category
// label -> set of distinct tokens. It is built once per run by the
// aggregation engine, owned exclusively by that run, and read-only once
// returned.
type SourceAggregate map[VendorStatusKey]map[string]TokenSet

// NewSourceAggregate returns an empty aggregate.
func NewSourceAggregate() SourceAggregate {
	return make(SourceAggregate)
}

// Insert records a token under (key, category), creating the intermediate
// containers on first use. This is the only creating operation on the
// two-level map; reads go through DistinctCount.
func (a SourceAggregate) Insert(key VendorStatusKey, category, token string) {
	categories, ok := a[key]
	if !ok {
		categories = make(map[string]TokenSet)
		a[key] = categories
	}
	tokens, ok := categories[category]
	if !ok {
		tokens = make(TokenSet)
		categories[category] = tokens
	}
	tokens.Add(token)
}

// DistinctCount returns the number of distinct tokens recorded under
// (key, category). It never creates map entries: an absent key or category
// counts as zero, so read-only queries leave the aggregate untouched.
func (a SourceAggregate) DistinctCount(key VendorStatusKey, category string) int {
	categories, ok := a[key]
	if !ok {
		return 0
	}
	return len(categories[category])
}

// Rows returns the total number of (key, category) cells that hold at least
// one token. Used for logging only.
func (a SourceAggregate) Rows() int {
	n := 0
	for _, categories := range a {
		n += len(categories)
	}
	return n
}
