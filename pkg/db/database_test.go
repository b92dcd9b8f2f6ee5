package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenEmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestOpenUnreachableDatabase(t *testing.T) {
	dsn := "host=127.0.0.1 port=1 user=shop dbname=shop sslmode=disable connect_timeout=1"
	_, err := Open(context.Background(), dsn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}
