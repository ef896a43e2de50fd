// Package binsweep is a fast sweeper for short JSON bin identifiers.
// It enumerates every identifier of a fixed length over an alphabet, looks each one up against a bin storage API
// and records the bins that answer with a 200 into a results container.
// Identifiers are streamed from the enumerator instead of being held in memory, and every lookup runs in its own goroutine,
// using go's sync.WaitGroup to wait until the last request finishes.
package binsweep
