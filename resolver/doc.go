// Package resolver resolves free-text entity type names against a closed
// vocabulary.
//
// An exact, case-sensitive match returns the entity type handle without any
// fuzzy matching. On a miss the resolver scores every legal name with a
// similarity metric and reports the closest ones in an
// *errors.UnknownEntityTypeError:
//
//	_, err := resolver.Resolve(entities.Default(), "Hots")
//	// Hots is not a recognized entity name. Closest match is 'Host'
//
// The default metric is the sequence-matcher ratio with a 0.6 cutoff and at
// most three suggestions. EditSimilarity, a Levenshtein-based score, can be
// selected with WithMetric.
package resolver
