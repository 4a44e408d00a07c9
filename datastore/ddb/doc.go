/*
Package ddb provides a DynamoDB implementation of the DataStore interface and
the observation query provider built on it.

Key templates:
Keys use macros that are replaced with record attribute values on Put and
with the lookup key on GetOne and Delete:

	indexMap := map[string]string{
	    "PK": "OBS#{EntityType}#{Value}", // Becomes "OBS#IpAddress#10.0.0.1"
	    "SK": "{ObservedAt}#{Source}",
	}

Queries:
Query follows pagination and retries throttling errors:

	obs, err := store.Query(ctx, params,
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	)

Observations:
ObservationPivot publishes a batch-capable "observations" access point on an
entity type. It accepts optional "start", "end" and "limit" parameters.
*/
package ddb
