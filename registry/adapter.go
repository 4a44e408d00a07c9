/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"

	"github.com/suparena/pivot/metrics"
	"github.com/suparena/pivot/table"
)

// callable is the uniform invocation form behind every access point. values
// is already normalized to a list.
type callable func(ctx context.Context, values []any, opts Params) (*table.Table, error)

// newCallable wraps fn according to the binding and batch support of the
// registration it came from.
func newCallable(fn QueryFunc, b Binding, supportsBatch bool, entity, name string) callable {
	calls := metrics.ProviderCallsTotal.WithLabelValues(entity, name)

	if b.IsFixed() {
		fixed := merge(b.Fixed)
		return func(ctx context.Context, _ []any, opts Params) (*table.Table, error) {
			calls.Inc()
			return fn(ctx, merge(opts, fixed))
		}
	}

	if supportsBatch {
		return func(ctx context.Context, values []any, opts Params) (*table.Table, error) {
			calls.Inc()
			return fn(ctx, merge(opts, Params{b.Param: values}))
		}
	}

	return batchAdapter(fn, b.Param, func() { calls.Inc() })
}

// batchAdapter calls a single-value provider once per value, in input order,
// and concatenates the results in call order. The first error stops the
// iteration and is returned as is. The adapter does not check that each call
// returns exactly one row per value.
func batchAdapter(fn QueryFunc, param string, onCall func()) callable {
	return func(ctx context.Context, values []any, opts Params) (*table.Table, error) {
		results := make([]*table.Table, 0, len(values))
		for _, v := range values {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			onCall()
			res, err := fn(ctx, merge(opts, Params{param: v}))
			if err != nil {
				return nil, err
			}
			results = append(results, res)
		}
		return table.Concat(results...), nil
	}
}
