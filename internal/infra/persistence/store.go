// Package persistence picks the storage backend named in the configuration.
package persistence

import (
	"context"
	"fmt"

	"example.com/orderflow/internal/config"
	domcustomer "example.com/orderflow/internal/domain/customer"
	domorder "example.com/orderflow/internal/domain/order"
	domproduct "example.com/orderflow/internal/domain/product"
	"example.com/orderflow/internal/infra/persistence/memory"
	"example.com/orderflow/internal/infra/persistence/mysql"
	"example.com/orderflow/internal/infra/persistence/postgres"
)

type Repositories struct {
	Customers domcustomer.Repository
	Products  domproduct.Repository
	Orders    domorder.Repository
	Close     func()
}

func Open(ctx context.Context, cfg config.StoreConfig) (*Repositories, error) {
	switch cfg.Driver {
	case config.StoreMemory, "":
		s := memory.NewStore()
		return &Repositories{
			Customers: s.Customers(),
			Products:  s.Products(),
			Orders:    s.Orders(),
			Close:     func() {},
		}, nil

	case config.StoreMySQL:
		db, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		return &Repositories{
			Customers: mysql.NewCustomerRepository(db),
			Products:  mysql.NewProductRepository(db),
			Orders:    mysql.NewOrderRepository(db),
			Close:     func() { _ = db.Close() },
		}, nil

	case config.StorePostgres:
		pool, err := postgres.Open(ctx, cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &Repositories{
			Customers: postgres.NewCustomerRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Orders:    postgres.NewOrderRepository(pool),
			Close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
