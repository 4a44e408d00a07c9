/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sort"

	"github.com/suparena/pivot/entities"
)

// ParamEntityMap lists, for well-known query parameter names, the entity types
// whose identifying value fits that parameter.
var ParamEntityMap = map[string][]string{
	"account_name":     {entities.Account},
	"host_name":        {entities.Host},
	"process_name":     {entities.Process},
	"source_ip_list":   {entities.IpAddress},
	"ip_address_list":  {entities.IpAddress},
	"ip_address":       {entities.IpAddress},
	"user":             {entities.Account},
	"observables":      {entities.IpAddress, entities.Dns, entities.File, entities.Url},
	"logon_session_id": {entities.Process, entities.HostLogonSession, entities.Account},
	"process_id":       {entities.Process},
	"commandline":      {entities.Process},
	"url":              {entities.Url},
	"file_hash":        {entities.File},
}

// BindingsForParams builds entity bindings for a provider that accepts the
// given parameters. Each entity is bound to the first listed parameter that
// maps to it in ParamEntityMap; unknown parameters are ignored.
func BindingsForParams(params ...string) map[string]Binding {
	out := make(map[string]Binding)
	for _, p := range params {
		ents := ParamEntityMap[p]
		for _, e := range ents {
			if _, ok := out[e]; !ok {
				out[e] = ParamBinding(p)
			}
		}
	}
	return out
}

// normalizeValues turns an identifying value into an ordered list. Scalars
// become a one-element list; slices and arrays are expanded element-wise.
// A []byte is treated as a scalar. nil yields an empty list.
func normalizeValues(value any) []any {
	switch v := value.(type) {
	case nil:
		return []any{}
	case []any:
		out := make([]any, len(v))
		copy(out, v)
		return out
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []byte:
		return []any{v}
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{value}
}

func sortedNames[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
