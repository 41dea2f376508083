// Package main is the entry point for the cricstats CLI tool, which
// ingests ball-by-ball cricket scorecards and builds a relational
// database of matches, players, and per-match statistics.
package main

import "github.com/cricbase/cricstats/cmd"

func main() {
	cmd.Execute()
}
