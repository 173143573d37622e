// Package grammar is the feature-based segment model.
//
// A FeatureTable maps every symbol of a segment inventory to an assignment
// over a fixed FeatureList, and exposes one Segment per symbol. Segments are
// identified by symbol alone: two segments with the same symbol are equal
// whatever feature content they came with, which lets symbol sets stand in
// for alphabets and natural classes.
//
// Intersect implements symbol unification over segments, the Joker wildcard
// and symbol sets:
//
//	Intersect(b, Joker)                   // b
//	Intersect(b, NewSymbolSet("b", "p"))  // b
//	Intersect(b, p)                       // no match
//
// A FeatureTable is immutable once built and safe for concurrent readers.
// Reading sources from disk lives in the inventory package.
package grammar
