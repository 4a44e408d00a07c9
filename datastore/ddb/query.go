/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/storagemodels"
)

// Query runs params against the store's table, following pagination until
// the results are exhausted or params.Limit items were read. Throttling and
// other retryable errors are retried with linear backoff.
func (d *Store[T]) Query(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.QueryOption) ([]T, error) {
	if params == nil || params.KeyConditionExpression == "" {
		return nil, errors.NewValidationError("KeyConditionExpression", "required")
	}
	options := storagemodels.Apply(append(append([]storagemodels.QueryOption{}, d.query...), opts...)...)

	input := &sdk.QueryInput{
		TableName:                 &d.tableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		ScanIndexForward:          params.ScanIndexForward,
		ExclusiveStartKey:         params.ExclusiveStartKey,
	}

	var results []T
	pages := 0
	for {
		pageSize := options.PageSize
		if params.Limit != nil {
			if remaining := *params.Limit - int32(len(results)); remaining < pageSize || pageSize <= 0 {
				pageSize = remaining
			}
		}
		if pageSize > 0 {
			input.Limit = aws.Int32(pageSize)
		}

		out, err := d.queryWithRetry(ctx, input, options)
		if err != nil {
			return nil, err
		}
		pages++

		for _, item := range out.Items {
			var v T
			if err := attributevalue.UnmarshalMap(item, &v); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			results = append(results, v)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		if params.Limit != nil && int32(len(results)) >= *params.Limit {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	d.log.Debugw("Query completed", "table", d.tableName, "items", len(results), "pages", pages)
	return results, nil
}

// queryWithRetry executes a query with configurable retry logic
func (d *Store[T]) queryWithRetry(ctx context.Context, input *sdk.QueryInput, options storagemodels.QueryOptions) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := d.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, fmt.Errorf("query error: %w", err)
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			d.log.Warnw("Retrying query", "table", d.tableName, "attempt", attempt+1, "backoff", backoff, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var pte *types.ProvisionedThroughputExceededException
	var rle *types.RequestLimitExceeded
	var ise *types.InternalServerError
	if stderrors.As(err, &pte) || stderrors.As(err, &rle) || stderrors.As(err, &ise) {
		return true
	}

	var retryable interface{ IsRetryable() bool }
	if stderrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}
