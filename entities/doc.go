/*
Package entities defines the entity type vocabulary that pivots attach to.

An entity type is a domain concept (host, IP address, account) that queries
pivot around. The registry never looks inside an entity type: it resolves a
name to a *EntityType handle through a Vocabulary and uses the handle as an
attachment point.

Vocabulary:
Any type with Names and Lookup can act as the vocabulary. Catalog is the
map-backed implementation, and Default returns the standard security types:

	vocab := entities.Default()
	ip, ok := vocab.Lookup(entities.IpAddress)

Custom vocabularies are built the same way:

	vocab := entities.NewCatalog(
	    entities.NewEntityType("Host", "hostname"),
	    entities.NewEntityType("IpAddress", "ipv4", "ipv6"),
	)

Value formats:
Entity types may name strfmt formats. ValidateValue accepts a value matching
any of them, which lets the registry reject malformed identifying values
before a provider is called when value validation is enabled.
*/
package entities
