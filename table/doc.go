/*
Package table provides the tabular result type returned by pivot query providers.

A Table is an ordered list of named columns and a list of rows. Providers build
tables with New/AppendRow or AppendRecord, and the batch adapter in the registry
joins per-value results with Concat:

	t := table.New("Ip", "Asn", "Country")
	_ = t.AppendRow("1.1.1.1", "CLOUDFLARENET", "AU")

	all := table.Concat(first, second) // rows of first, then rows of second

Concat keeps column identity: the result columns are the union of the inputs in
first-seen order, and cells a source table did not have are nil. It never
reconciles differently named or typed columns; that is the provider's concern.
*/
package table
