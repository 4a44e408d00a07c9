/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"fmt"

	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/registry"
	"github.com/suparena/pivot/table"
)

// LookupFunc returns a single-value query provider reading one record per
// call. The value is taken from params[param] and turned into a store key by
// key, or fmt.Sprint when key is nil. A missing record yields an empty table.
func LookupFunc[T any](ds DataStore[T], param string, key func(value any) string, toRow func(*T) map[string]any) registry.QueryFunc {
	if key == nil {
		key = func(v any) string { return fmt.Sprint(v) }
	}
	return func(ctx context.Context, params registry.Params) (*table.Table, error) {
		v, ok := params[param]
		if !ok {
			return nil, errors.NewValidationError(param, "missing query parameter")
		}
		item, err := ds.GetOne(ctx, key(v))
		if errors.IsNotFound(err) {
			return table.New(), nil
		}
		if err != nil {
			return nil, err
		}
		out := table.New()
		out.AppendRecord(toRow(item))
		return out, nil
	}
}
