// Package cache provides the content-addressed blame cache.
//
// Entries are keyed by file path, line range and the blob id of the file at
// HEAD. A changed blob id is a different key, so a hit is always valid for the
// content it was computed against and never needs re-verification. Entries for
// older blob ids are kept; nothing is pruned automatically.
//
// The whole cache is one JSON document at .codereports/.blame-cache. It is
// loaded into a [Store] value, mutated in memory and written back in full.
// The read-modify-write cycle is not atomic across processes.
package cache
