/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/pivot/storagemodels"
)

// DataStore is a keyed store of T values. GetOne and Delete return an
// errors.NotFoundError for a missing key.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	Query(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.QueryOption) ([]T, error)

	Delete(ctx context.Context, key string) error
}
