package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/orderflow/internal/config"
	domcustomer "example.com/orderflow/internal/domain/customer"
)

func TestOpen_Memory(t *testing.T) {
	repos, err := Open(context.Background(), config.StoreConfig{Driver: config.StoreMemory})
	require.NoError(t, err)
	defer repos.Close()

	created, err := repos.Customers.Create(context.Background(), &domcustomer.Customer{
		ID: "C1", Name: "Ana", Email: "ana@example.com",
	})
	require.NoError(t, err)

	got, err := repos.Customers.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", got.Name)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "sqlite"})
	require.ErrorContains(t, err, `unknown store driver "sqlite"`)
}
