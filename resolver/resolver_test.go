/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resolver

import (
	stderrors "errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/pivot/entities"
	"github.com/suparena/pivot/errors"
)

func unknown(t *testing.T, err error) *errors.UnknownEntityTypeError {
	t.Helper()
	require.Error(t, err)
	var ue *errors.UnknownEntityTypeError
	require.True(t, stderrors.As(err, &ue), "expected UnknownEntityTypeError, got %T", err)
	return ue
}

func TestResolveExactMatchSkipsFuzzyMatching(t *testing.T) {
	vocab := entities.Default()
	var calls atomic.Int32
	r := New(vocab, WithMetric(func(a, b string) float64 {
		calls.Add(1)
		return 1
	}))

	for _, name := range vocab.Names() {
		got, err := r.Resolve(name)
		require.NoError(t, err)
		want, _ := vocab.Lookup(name)
		assert.Same(t, want, got)
	}
	assert.Zero(t, calls.Load())
}

func TestResolveSingleClosestMatch(t *testing.T) {
	vocab := entities.Default()

	for _, typo := range []string{"Hots", "IpAdress", "Acount"} {
		t.Run(typo, func(t *testing.T) {
			_, err := Resolve(vocab, typo)
			ue := unknown(t, err)

			require.Len(t, ue.Suggestions, 1)
			assert.Empty(t, ue.Valid)
			assert.Contains(t, err.Error(), "Closest match is '"+ue.Suggestions[0]+"'")
		})
	}
}

func TestResolveSeveralClosestMatches(t *testing.T) {
	_, err := Resolve(entities.Default(), "Registry")
	ue := unknown(t, err)

	assert.Equal(t, []string{"RegistryKey", "RegistryHive", "RegistryValue"}, ue.Suggestions)
	assert.Equal(t,
		"Registry is not a recognized entity name. Closest matches are 'RegistryKey', 'RegistryHive', 'RegistryValue'",
		err.Error())
}

func TestResolveNoCloseMatchListsVocabularyOnce(t *testing.T) {
	vocab := entities.Default()
	_, err := Resolve(vocab, "zzzzzzzz")
	ue := unknown(t, err)

	assert.Empty(t, ue.Suggestions)
	assert.Equal(t, vocab.Names(), ue.Valid)

	msg := err.Error()
	require.Contains(t, msg, "Valid arguments are ")
	listed := strings.Split(strings.SplitN(msg, "Valid arguments are ", 2)[1], ", ")
	assert.ElementsMatch(t, vocab.Names(), listed)
}

func TestResolveIsCaseSensitive(t *testing.T) {
	_, err := Resolve(entities.Default(), "host")
	ue := unknown(t, err)
	assert.Contains(t, ue.Suggestions, "Host")
}

func TestClosestMatchesOptions(t *testing.T) {
	legal := []string{"RegistryHive", "RegistryKey", "RegistryValue"}

	t.Run("max suggestions", func(t *testing.T) {
		r := New(entities.NewCatalog(), WithMaxSuggestions(1))
		assert.Equal(t, []string{"RegistryKey"}, r.ClosestMatches("Registry", legal))
	})

	t.Run("cutoff", func(t *testing.T) {
		r := New(entities.NewCatalog(), WithCutoff(0.99))
		assert.Empty(t, r.ClosestMatches("Registry", legal))
	})

	t.Run("non-positive max falls back to default", func(t *testing.T) {
		r := New(entities.NewCatalog(), WithMaxSuggestions(0))
		assert.Len(t, r.ClosestMatches("Registry", legal), 3)
	})
}

func TestEditSimilarityMetric(t *testing.T) {
	r := New(entities.Default(), WithMetric(EditSimilarity))
	_, err := r.Resolve("Hostt")
	ue := unknown(t, err)
	require.NotEmpty(t, ue.Suggestions)
	assert.Equal(t, "Host", ue.Suggestions[0])
}

func TestSequenceRatio(t *testing.T) {
	assert.Equal(t, 1.0, SequenceRatio("Host", "Host"))
	assert.InDelta(t, 0.75, SequenceRatio("Hots", "Host"), 1e-9)
	assert.Equal(t, 0.0, SequenceRatio("abc", "xyz"))
}

func TestMetricByName(t *testing.T) {
	for _, name := range []string{"", "ratio", "Levenshtein"} {
		m, ok := MetricByName(name)
		assert.True(t, ok, name)
		assert.NotNil(t, m)
	}
	_, ok := MetricByName("soundex")
	assert.False(t, ok)
}

func TestResolveConcurrent(t *testing.T) {
	r := New(entities.Default())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Resolve("Host")
			assert.NoError(t, err)
			_, err = r.Resolve("Hots")
			assert.Error(t, err)
		}()
	}
	wg.Wait()
}
