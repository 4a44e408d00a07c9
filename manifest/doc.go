/*
Package manifest loads declarative pivot definitions from YAML or HCL files.

A manifest names a provider and lists its pivots. Each pivot refers to a query
function by name; the functions are supplied by the caller in a Catalog.

YAML:

	provider: soc
	pivots:
	  - name: whois
	    function: whois
	    schema:
	      AsnOwner: Organization
	    entities:
	      IpAddress: ip_address        # parameter name
	  - name: alerts
	    function: kql
	    supports_batch: false
	    entities:
	      Alert: {table: SecurityAlert} # fixed parameters

HCL:

	provider = "soc"

	pivot "whois" {
	  function = "whois"
	  schema   = { AsnOwner = "Organization" }

	  entity "IpAddress" {
	    param = "ip_address"
	  }
	}

supports_batch defaults to true.
*/
package manifest
