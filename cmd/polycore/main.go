// Command polycore sorts values under total and partial orders, counts words
// into tallies and demonstrates capability dispatch.
package main

import "github.com/mesh-intelligence/polycore/internal/cli"

func main() {
	cli.Execute()
}
