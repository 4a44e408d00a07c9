/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resolver

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/suparena/pivot/entities"
	"github.com/suparena/pivot/errors"
)

const (
	// DefaultCutoff is the minimum similarity for a legal name to be suggested.
	DefaultCutoff = 0.6
	// DefaultMaxSuggestions caps the number of suggested names.
	DefaultMaxSuggestions = 3
)

// Metric scores the similarity of two names in the range [0, 1].
type Metric func(a, b string) float64

// SequenceRatio is the Ratcliff/Obershelp matching-blocks ratio
// (2*matches / total length), which ranks near-miss spellings such as
// transposed letters highly.
func SequenceRatio(a, b string) float64 {
	m := difflib.NewMatcher(chars(b), chars(a))
	return m.Ratio()
}

// EditSimilarity is a Levenshtein-distance based similarity.
func EditSimilarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, nil)
}

// MetricByName returns the metric registered under name ("ratio" or "levenshtein").
func MetricByName(name string) (Metric, bool) {
	switch strings.ToLower(name) {
	case "", "ratio":
		return SequenceRatio, true
	case "levenshtein":
		return EditSimilarity, true
	}
	return nil, false
}

func chars(s string) []string {
	return strings.Split(s, "")
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCutoff sets the minimum similarity for suggestions.
func WithCutoff(cutoff float64) Option {
	return func(r *Resolver) {
		r.cutoff = cutoff
	}
}

// WithMaxSuggestions sets the maximum number of suggestions.
func WithMaxSuggestions(n int) Option {
	return func(r *Resolver) {
		r.max = n
	}
}

// WithMetric replaces the similarity metric.
func WithMetric(m Metric) Option {
	return func(r *Resolver) {
		r.metric = m
	}
}

// Resolver resolves entity type names against a vocabulary.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	vocab  entities.Vocabulary
	cutoff float64
	max    int
	metric Metric
}

// New creates a Resolver over vocab.
func New(vocab entities.Vocabulary, opts ...Option) *Resolver {
	r := &Resolver{
		vocab:  vocab,
		cutoff: DefaultCutoff,
		max:    DefaultMaxSuggestions,
		metric: SequenceRatio,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.max <= 0 {
		r.max = DefaultMaxSuggestions
	}
	if r.metric == nil {
		r.metric = SequenceRatio
	}
	return r
}

// Resolve is a convenience for New(vocab).Resolve(name).
func Resolve(vocab entities.Vocabulary, name string) (*entities.EntityType, error) {
	return New(vocab).Resolve(name)
}

// Resolve returns the entity type named exactly name. Otherwise it returns an
// *errors.UnknownEntityTypeError carrying the closest legal names, or the whole
// vocabulary when nothing is close.
func (r *Resolver) Resolve(name string) (*entities.EntityType, error) {
	if t, ok := r.vocab.Lookup(name); ok {
		return t, nil
	}
	legal := r.vocab.Names()
	return nil, errors.NewUnknownEntityTypeError(name, r.ClosestMatches(name, legal), legal)
}

type scored struct {
	name  string
	score float64
}

// ClosestMatches returns up to the configured number of names from legal whose
// similarity to name reaches the cutoff, best first. Equal scores are ordered
// by name.
func (r *Resolver) ClosestMatches(name string, legal []string) []string {
	var hits []scored
	for _, candidate := range legal {
		if s := r.metric(name, candidate); s >= r.cutoff {
			hits = append(hits, scored{name: candidate, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].name < hits[j].name
	})
	if len(hits) > r.max {
		hits = hits[:r.max]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}
