/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/storagemodels"
)

// Option configures a Store.
type Option func(*settings)

type settings struct {
	query []storagemodels.QueryOption
	log   *zap.SugaredLogger
}

// WithQueryOptions sets the default paging and retry options of Query.
func WithQueryOptions(opts ...storagemodels.QueryOption) Option {
	return func(s *settings) {
		s.query = append(s.query, opts...)
	}
}

// WithLogger sets the store logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// Store implements datastore.DataStore[T] on a DynamoDB table. Its index map
// holds key templates such as "OBS#{EntityType}#{Value}" whose macros are
// filled from the record's attributes on Put.
type Store[T any] struct {
	client    Client
	tableName string
	indexMap  map[string]string
	query     []storagemodels.QueryOption
	log       *zap.SugaredLogger
}

// NewStore creates a Store for T. indexMap must define PK and SK templates.
func NewStore[T any](client Client, tableName string, indexMap map[string]string, opts ...Option) (*Store[T], error) {
	if client == nil {
		return nil, errors.NewValidationError("client", "required")
	}
	if tableName == "" {
		return nil, errors.NewValidationError("tableName", "required")
	}
	if indexMap["PK"] == "" || indexMap["SK"] == "" {
		return nil, errors.NewValidationError("indexMap", "PK and SK templates are required")
	}

	s := settings{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&s)
	}

	im := make(map[string]string, len(indexMap))
	for k, v := range indexMap {
		im[k] = v
	}
	return &Store[T]{
		client:    client,
		tableName: tableName,
		indexMap:  im,
		query:     s.query,
		log:       s.log,
	}, nil
}

// TableName returns the table the store reads and writes.
func (d *Store[T]) TableName() string {
	return d.tableName
}

// Keys expands the index map templates with the attributes of keysInput.
func (d *Store[T]) Keys(keysInput any) (map[string]string, error) {
	return expandMacros(d.indexMap, keysInput)
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills the index map templates from the attributes of
// keysInput. A macro naming a missing or empty attribute is an error.
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	var missing []string
	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")
			var out string
			switch tv := av[key].(type) {
			case *types.AttributeValueMemberS:
				out = tv.Value
			case *types.AttributeValueMemberN:
				out = tv.Value
			case *types.AttributeValueMemberBOOL:
				out = fmt.Sprintf("%v", tv.Value)
			}
			// NULL, binary and set values do not appear in keys
			if out == "" {
				missing = append(missing, key)
			}
			return out
		})
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.NewValidationError(missing[0], "key attribute is missing or empty")
	}
	return res, nil
}

// expandStringKey replaces every macro in the index map with key.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds a DynamoDB key from non-empty PK and SK values.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, sk := expanded["PK"], expanded["SK"]
	if pk == "" || sk == "" {
		return nil, errors.NewValidationError("key", "expanded index map missing valid PK or SK")
	}
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// GetOne retrieves a single item whose key templates are filled with key.
func (d *Store[T]) GetOne(ctx context.Context, key string) (*T, error) {
	keyMap, err := buildKeyFromExpanded(expandStringKey(d.indexMap, key))
	if err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		var zero T
		return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores entity with its expanded key attributes.
func (d *Store[T]) Put(ctx context.Context, entity T) error {
	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(d.indexMap, entity)
	if err != nil {
		return err
	}
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	if _, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	}); err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	d.log.Debugw("Stored item", "table", d.tableName, "pk", expanded["PK"], "sk", expanded["SK"])
	return nil
}

// Delete removes the item whose key templates are filled with key.
func (d *Store[T]) Delete(ctx context.Context, key string) error {
	keyMap, err := buildKeyFromExpanded(expandStringKey(d.indexMap, key))
	if err != nil {
		return err
	}

	out, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:    &d.tableName,
		Key:          keyMap,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return fmt.Errorf("delete condition failed: %w", err)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	if len(out.Attributes) == 0 {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}
	return nil
}
