// Package samples provides concrete capability implementations used by the
// CLI demonstrations: a post with a summary, network addresses, a file with
// an open/closed state, and a person record sorted by age.
package samples

import (
	"fmt"

	"github.com/mesh-intelligence/polycore/pkg/capability"
	"github.com/mesh-intelligence/polycore/pkg/dispatch"
)

// Post is a published article.
type Post struct {
	capability.DefaultSummary
	Title   string
	Author  string
	Content string
}

// Summarize returns the title and author.
func (p Post) Summarize() string {
	return fmt.Sprintf("post: %s, author: %s", p.Title, p.Author)
}

// SummarizeAuthor overrides the default author summary.
func (p Post) SummarizeAuthor() string {
	return "author: " + p.Author
}

// Describe returns the title.
func (p Post) Describe() string {
	return "post " + p.Title
}

// Tweet keeps the default author summary.
type Tweet struct {
	capability.DefaultSummary
	Username string
	Text     string
}

// Summarize returns the user and text.
func (t Tweet) Summarize() string {
	return "@" + t.Username + ": " + t.Text
}

// IPv4 is an IPv4 address.
type IPv4 string

// Describe implements capability.Describer.
func (a IPv4) Describe() string {
	return fmt.Sprintf("ipv4: %q", string(a))
}

// IPv6 is an IPv6 address.
type IPv6 string

// Describe implements capability.Describer.
func (a IPv6) Describe() string {
	return fmt.Sprintf("ipv6: %q", string(a))
}

// IPAddr is the closed form of the two address kinds.
type IPAddr = dispatch.Variant2[IPv4, IPv6]

// DescribeIPAddr renders an IPAddr case by case.
func DescribeIPAddr(a IPAddr) string {
	return dispatch.Match2(a,
		func(v IPv4) string { return fmt.Sprintf("V4(%q)", string(v)) },
		func(v IPv6) string { return fmt.Sprintf("V6(%q)", string(v)) },
	)
}

// FileState is whether a File is open.
type FileState int

// File states.
const (
	Closed FileState = iota
	Open
)

// String implements fmt.Stringer.
func (s FileState) String() string {
	if s == Open {
		return "OPEN"
	}
	return "Close"
}

// File is a named file with a state.
type File struct {
	Name  string
	Data  []byte
	State FileState
}

// NewFile returns a closed, empty file.
func NewFile(name string) File {
	return File{Name: name, State: Closed}
}

// Describe renders the file as <name (state)>.
func (f File) Describe() string {
	return fmt.Sprintf("<%s (%s)>", f.Name, f.State)
}

// Person is a record sorted by age in the CLI.
type Person struct {
	Name string
	Age  uint32
}

// String renders the person as Name(Age).
func (p Person) String() string {
	return fmt.Sprintf("%s(%d)", p.Name, p.Age)
}

// People returns the sample roster.
func People() []Person {
	return []Person{
		{Name: "Zoe", Age: 25},
		{Name: "Al", Age: 60},
		{Name: "John", Age: 1},
	}
}

// Describers returns one value of every sample Describer, in a fixed order.
func Describers() []capability.Describer {
	return []capability.Describer{
		Post{Title: "Call to Arms", Author: "Lu Xun"},
		IPv4("127.0.0.1"),
		IPv6("::1"),
		NewFile("f6.txt"),
	}
}
