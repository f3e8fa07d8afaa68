package samples

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/polycore/pkg/capability"
	"github.com/mesh-intelligence/polycore/pkg/dispatch"
)

func TestSummaries(t *testing.T) {
	p := Post{Title: "Call to Arms", Author: "Lu Xun"}
	assert.Equal(t, "post: Call to Arms, author: Lu Xun", p.Summarize())
	assert.Equal(t, "author: Lu Xun", p.SummarizeAuthor())

	tw := Tweet{Username: "ann", Text: "hi"}
	assert.Equal(t, "@ann: hi", tw.Summarize())
	assert.Equal(t, capability.DefaultAuthorSummary, tw.SummarizeAuthor())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, `ipv4: "127.0.0.1"`, IPv4("127.0.0.1").Describe())
	assert.Equal(t, `ipv6: "::1"`, IPv6("::1").Describe())
	assert.Equal(t, "<f6.txt (Close)>", NewFile("f6.txt").Describe())
	assert.Equal(t, "<a (OPEN)>", File{Name: "a", State: Open}.Describe())
	assert.Equal(t, "John(1)", Person{Name: "John", Age: 1}.String())
	assert.Len(t, Describers(), 4)
}

func TestDescribeIPAddr(t *testing.T) {
	assert.Equal(t, `V4("127.0.0.1")`, DescribeIPAddr(dispatch.First[IPv4, IPv6]("127.0.0.1")))
	assert.Equal(t, `V6("::1")`, DescribeIPAddr(dispatch.Second[IPv4, IPv6]("::1")))
}
