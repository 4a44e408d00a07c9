/*
Package datastore defines the storage interface behind storage-backed query
providers.

The main interface is DataStore[T], which provides generic keyed operations
for any record type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Query(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.QueryOption) ([]T, error)
	    Delete(ctx context.Context, key string) error
	}

LookupFunc turns any DataStore into a single-value query provider that can be
registered as a pivot:

	fn := datastore.LookupFunc(store, "ip_address", nil, func(r *Reputation) map[string]any {
	    return map[string]any{"Address": r.Address, "Score": r.Score}
	})

Implementations:
  - ddb: DynamoDB implementation with macro-based key templates
  - mock: In-memory mock implementation for testing
*/
package datastore
