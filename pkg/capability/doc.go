// Package capability defines capability contracts: named sets of operations
// a type may implement independently of any type hierarchy.
//
// Contracts come in two forms. Compile-time contracts are ordinary Go
// interfaces (Describer, Summarizer, Ord, PartialOrd) used as generic bounds
// or as interface values. Runtime contracts (Contract) describe operations as
// function values with optional defaults; a concrete type binds to one through
// Implement, which merges the defaults with the type's overrides into a
// Table. A type that leaves a required operation out is rejected at that
// point with types.ErrCapabilityMissing.
//
//	summary, _ := capability.Define("summary",
//	    capability.Op[Post, string]{Name: "summarize"},
//	    capability.Op[Post, string]{Name: "author", Default: func(Post) string { return "Read more..." }},
//	)
//	table, err := summary.Implement("Post", capability.Impl[Post, string]{
//	    "summarize": func(p Post) string { return p.Title },
//	})
package capability
