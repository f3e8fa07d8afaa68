package capability

// Describer renders a value as human-readable text. It is the capability the
// formatting collaborator consumes.
type Describer interface {
	Describe() string
}

// Summarizer produces a short summary of a value. SummarizeAuthor has a
// default in DefaultSummary.
type Summarizer interface {
	Summarize() string
	SummarizeAuthor() string
}

// DefaultAuthorSummary is the text DefaultSummary.SummarizeAuthor returns.
const DefaultAuthorSummary = "Read more..."

// DefaultSummary supplies the default SummarizeAuthor. Embed it and declare
// Summarize to satisfy Summarizer; declaring SummarizeAuthor on the outer type
// overrides the default.
type DefaultSummary struct{}

// SummarizeAuthor returns DefaultAuthorSummary.
func (DefaultSummary) SummarizeAuthor() string {
	return DefaultAuthorSummary
}

// Ord is a total order: every pair of values compares.
// Compare returns a negative number, zero, or a positive number.
type Ord[T any] interface {
	Compare(other T) int
}

// PartialOrd is a partial order. ok is false when the pair is incomparable.
type PartialOrd[T any] interface {
	PartialCompare(other T) (c int, ok bool)
}
