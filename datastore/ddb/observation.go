/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/pivot/datastore"
	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/registry"
	"github.com/suparena/pivot/storagemodels"
	"github.com/suparena/pivot/table"
)

// ObservationsFunction is the access point name of observation pivots.
const ObservationsFunction = "observations"

// Observation is a sighting of an entity value reported by a source.
type Observation struct {
	// Entity type name, e.g. "IpAddress".
	EntityType string `json:"EntityType"`
	// Identifying value of the entity.
	Value string `json:"Value"`
	// Reporting source.
	Source string `json:"Source"`
	// Time of the sighting, in UTC.
	// Format: date-time
	ObservedAt strfmt.DateTime `json:"ObservedAt"`
	// Free-form details.
	Attributes map[string]string `json:"Attributes,omitempty" dynamodbav:",omitempty"`
}

// ObservationIndexMap keys observations by entity value, sorted by time.
var ObservationIndexMap = map[string]string{
	"PK": "OBS#{EntityType}#{Value}",
	"SK": "{ObservedAt}#{Source}",
}

// observationColumns is the column order of observation results.
var observationColumns = []string{"EntityType", "Value", "Source", "ObservedAt", "Attributes"}

// NewObservationStore creates a Store of observations on table.
func NewObservationStore(client Client, tableName string, opts ...Option) (*Store[Observation], error) {
	return NewStore[Observation](client, tableName, ObservationIndexMap, opts...)
}

// ObservationsFunc returns a batch query provider listing the observations
// of every value in params["value"], in value order. The optional "start"
// and "end" parameters bound the observation time; "limit" caps the number
// of observations per value.
func ObservationsFunc(store datastore.DataStore[Observation], entityType string) registry.QueryFunc {
	return func(ctx context.Context, params registry.Params) (*table.Table, error) {
		raw, ok := params["value"]
		if !ok {
			return nil, errors.NewValidationError("value", "missing query parameter")
		}
		values, ok := raw.([]any)
		if !ok {
			values = []any{raw}
		}

		bounds, err := timeBounds(params)
		if err != nil {
			return nil, err
		}
		var limit *int32
		if l, ok := params["limit"]; ok {
			n, ok := l.(int)
			if !ok || n <= 0 {
				return nil, errors.NewValidationError("limit", "must be a positive int")
			}
			limit = aws.Int32(int32(n))
		}

		out := table.New(observationColumns...)
		for _, v := range values {
			pk, err := observationPK(entityType, fmt.Sprint(v))
			if err != nil {
				return nil, err
			}
			qp := bounds.params(pk)
			qp.Limit = limit

			obs, err := store.Query(ctx, qp)
			if err != nil {
				return nil, err
			}
			for _, o := range obs {
				var attrs any
				if o.Attributes != nil {
					attrs = o.Attributes
				}
				if err := out.AppendRow(o.EntityType, o.Value, o.Source, o.ObservedAt, attrs); err != nil {
					return nil, err
				}
			}
		}
		return out, nil
	}
}

func observationPK(entityType, value string) (string, error) {
	keys, err := expandMacros(map[string]string{"PK": ObservationIndexMap["PK"]}, Observation{EntityType: entityType, Value: value})
	if err != nil {
		return "", err
	}
	return keys["PK"], nil
}

type bounds struct {
	from, to string
}

func timeBounds(params registry.Params) (bounds, error) {
	var b bounds
	for _, name := range []string{"start", "end"} {
		raw, ok := params[name]
		if !ok || raw == nil {
			continue
		}
		t, err := toTime(raw)
		if err != nil {
			return b, errors.NewValidationError(name, err.Error())
		}
		s := t.UTC().Format(time.RFC3339Nano)
		if name == "start" {
			b.from = s
		} else {
			// sort keys carry a "#Source" suffix
			b.to = s + "#\uffff"
		}
	}
	return b, nil
}

func toTime(v any) (time.Time, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv, nil
	case strfmt.DateTime:
		return time.Time(tv), nil
	case string:
		dt, err := strfmt.ParseDateTime(tv)
		if err != nil {
			return time.Time{}, err
		}
		return time.Time(dt), nil
	}
	return time.Time{}, fmt.Errorf("unsupported time value %T", v)
}

func (b bounds) params(pk string) *storagemodels.QueryParams {
	cond := "PK = :pk"
	vals := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: pk},
	}
	switch {
	case b.from != "" && b.to != "":
		cond += " AND SK BETWEEN :from AND :to"
	case b.from != "":
		cond += " AND SK >= :from"
	case b.to != "":
		cond += " AND SK <= :to"
	}
	if b.from != "" {
		vals[":from"] = &types.AttributeValueMemberS{Value: b.from}
	}
	if b.to != "" {
		vals[":to"] = &types.AttributeValueMemberS{Value: b.to}
	}
	return &storagemodels.QueryParams{
		KeyConditionExpression:    cond,
		ExpressionAttributeValues: vals,
	}
}

// ObservationPivot returns the registration publishing observations on entityType.
func ObservationPivot(store datastore.DataStore[Observation], entityType string) registry.PivotRegistration {
	return registry.PivotRegistration{
		Name:   ObservationsFunction,
		Invoke: ObservationsFunc(store, entityType),
		OutputSchema: map[string]string{
			"Value":      entityType,
			"Source":     "Source",
			"ObservedAt": "TimeGenerated",
		},
		EntityBindings: map[string]registry.Binding{entityType: registry.ParamBinding("value")},
		SupportsBatch:  true,
	}
}

// ObservationProvider publishes observation pivots for a set of entity types.
type ObservationProvider struct {
	store       datastore.DataStore[Observation]
	entityTypes []string
}

// NewObservationProvider creates a provider over store for entityTypes.
func NewObservationProvider(store datastore.DataStore[Observation], entityTypes ...string) *ObservationProvider {
	names := append([]string(nil), entityTypes...)
	sort.Strings(names)
	return &ObservationProvider{store: store, entityTypes: names}
}

// Name returns the provider name.
func (p *ObservationProvider) Name() string {
	return "ddb-observations"
}

// Pivots returns one registration per entity type.
func (p *ObservationProvider) Pivots() []registry.PivotRegistration {
	out := make([]registry.PivotRegistration, 0, len(p.entityTypes))
	for _, e := range p.entityTypes {
		out = append(out, ObservationPivot(p.store, e))
	}
	return out
}
