/*
Package registry publishes query providers as access points on entity types.

A PivotRegistration names a provider function and the entity types it should
be reachable from. Register resolves each entity name against the
vocabulary, adapts the function's calling convention and attaches the result
under the registration's name:

	reg := registry.New(entities.Default(), registry.WithLogger(log))
	out, err := reg.Register(registry.PivotRegistration{
	    Name:   "whois",
	    Invoke: whois,
	    EntityBindings: map[string]registry.Binding{
	        "IpAddress": registry.ParamBinding("ip_address"),
	    },
	    SupportsBatch: true,
	})
	res, err := reg.Call(ctx, "IpAddress", "whois", []string{"10.0.0.1", "10.0.0.2"}, nil)

Calling conventions:
A batch-capable provider receives all values as a []any in one call. A
single-value provider is called once per value, in order, and the results are
concatenated. A binding with fixed parameters calls the provider once with
those parameters and does not pass the entity value.

Failures:
Register returns an error only for a malformed registration. An entity name
that does not resolve fails that binding alone; it is reported in
Outcome.Failed with an *errors.UnknownEntityTypeError. Registering a name
again on the same entity replaces the access point and adds a warning.

The registry is thread-safe. Access points are immutable once attached and
can be called without holding registry locks.
*/
package registry
