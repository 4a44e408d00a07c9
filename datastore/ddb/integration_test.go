//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/suparena/pivot/entities"
	"github.com/suparena/pivot/registry"
)

func setupObservationStore(t *testing.T) *Store[Observation] {
	t.Helper()
	if err := godotenv.Load(); err != nil {
		t.Log("No .env file found, proceeding with environment variables")
	}

	tableName := os.Getenv("PIVOT_DYNAMODB_TABLE")
	if tableName == "" {
		t.Skip("PIVOT_DYNAMODB_TABLE not set, skipping integration test")
	}

	client, err := NewClient(context.Background(), ClientConfig{
		Region:          os.Getenv("PIVOT_DYNAMODB_REGION"),
		AccessKeyID:     os.Getenv("PIVOT_DYNAMODB_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("PIVOT_DYNAMODB_SECRET_ACCESS_KEY"),
		Endpoint:        os.Getenv("PIVOT_DYNAMODB_ENDPOINT"),
	})
	require.NoError(t, err)

	store, err := NewObservationStore(client, tableName)
	require.NoError(t, err)
	return store
}

func TestIntegrationObservations(t *testing.T) {
	store := setupObservationStore(t)
	ctx := context.Background()

	value := "198.51.100." + time.Now().Format("150405")
	obs := Observation{
		EntityType: entities.IpAddress,
		Value:      value,
		Source:     "integration",
		ObservedAt: strfmtTime(time.Now().UTC().Truncate(time.Second)),
		Attributes: map[string]string{"run": t.Name()},
	}
	require.NoError(t, store.Put(ctx, obs))

	reg := registry.New(entities.Default())
	_, err := reg.Register(ObservationPivot(store, entities.IpAddress))
	require.NoError(t, err)

	res, err := reg.Call(ctx, entities.IpAddress, ObservationsFunction, value, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())

	keys, err := store.Keys(obs)
	require.NoError(t, err)
	t.Logf("Stored observation %s / %s", keys["PK"], keys["SK"])
}
