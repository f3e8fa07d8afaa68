package dispatch

import "github.com/mesh-intelligence/polycore/pkg/capability"

const newsPrefix = "Breaking news! "

// Notify announces item's summary. T is fixed at the call site.
func Notify[T capability.Summarizer](item T) string {
	return newsPrefix + item.Summarize()
}

// NotifyWith is the parameter-position form of Notify. It accepts any
// Summarizer as an interface value and produces the same text.
func NotifyWith(item capability.Summarizer) string {
	return newsPrefix + item.Summarize()
}

// NotifyBoth requires T to satisfy both Summarizer and Describer.
func NotifyBoth[T interface {
	capability.Summarizer
	capability.Describer
}](item T) string {
	return newsPrefix + item.Describe() + ": " + item.Summarize()
}

// Pairwise checks an independent bound on each parameter.
func Pairwise[T capability.Describer, U capability.Summarizer](t T, u U) string {
	return t.Describe() + " / " + u.SummarizeAuthor()
}

// DescribeAll describes a homogeneous slice.
func DescribeAll[T capability.Describer](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Describe()
	}
	return out
}
