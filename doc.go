/*
Package pivot attaches query providers to security entity types so that a
query can be run from the entity it is about.

A provider declares pivot registrations: a query function, the entity types
it applies to and how the entity value is passed to it. The pivot
environment registers every provider's pivots in one registry and exposes
them as access points named "<Entity>.<function>".

Key Features:
  - Typo-tolerant entity type names with closest-match suggestions
  - Uniform calling convention for single-value and batch providers
  - Per-binding failure isolation with structured outcomes
  - Declarative YAML and HCL pivot manifests
  - DynamoDB-backed observation provider
  - Prometheus metrics and structured logging

Basic Usage:

	env := pivot.New(entities.Default(), pivot.WithLogger(log))

	report, err := env.AddProvider(ddb.NewObservationProvider(store, "IpAddress", "Host"))
	if err != nil {
	    return err
	}
	for _, f := range report.Failed() {
	    log.Warnw("pivot not attached", "entity", f.Entity, "error", f.Err)
	}

	res, err := env.Call(ctx, "IpAddress", "observations", []string{"10.0.0.1"}, nil)
*/
package pivot
