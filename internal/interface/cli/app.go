package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"example.com/orderflow/internal/config"
	"example.com/orderflow/internal/infra/cache"
	"example.com/orderflow/internal/infra/events"
	"example.com/orderflow/internal/infra/logging"
	"example.com/orderflow/internal/infra/mail"
	"example.com/orderflow/internal/infra/persistence"
	"example.com/orderflow/internal/usecase/createorder"
	customeruc "example.com/orderflow/internal/usecase/customer"
	orderuc "example.com/orderflow/internal/usecase/order"
	productuc "example.com/orderflow/internal/usecase/product"
	"example.com/orderflow/internal/usecase/seed"
)

type app struct {
	cfg         *config.Config
	log         *logrus.Logger
	customers   *customeruc.Service
	products    *productuc.Service
	orders      *orderuc.Service
	createOrder *createorder.Service
	seeder      *seed.Service
	closers     []func()
}

func newApp(ctx context.Context, cfg *config.Config, log *logrus.Logger) (_ *app, retErr error) {
	a := &app{cfg: cfg, log: log}
	defer func() {
		if retErr != nil {
			a.close()
		}
	}()

	repos, err := persistence.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, repos.Close)

	var customerFinder createorder.CustomerRepository = repos.Customers
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		customerFinder = cache.NewCustomerRepository(repos.Customers, rdb, cfg.Cache.CustomerTTL, log)
	}

	var observers []createorder.Observer
	if cfg.Events.AMQPURL != "" {
		pub, err := events.Dial(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = pub.Close() })
		observers = append(observers, pub)
	}
	if cfg.Mail.SMTPAddr != "" {
		observers = append(observers, mail.NewNotifier(cfg.Mail.SMTPAddr, cfg.Mail.From, log))
	}

	a.customers = customeruc.NewService(repos.Customers)
	a.products = productuc.NewService(repos.Products)
	a.orders = orderuc.NewService(repos.Orders)
	a.seeder = seed.NewService(repos.Customers, repos.Products)
	a.createOrder = createorder.NewService(customerFinder, repos.Products, repos.Orders,
		createorder.WithLogger(log),
		createorder.WithObservers(observers...),
	)
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) seedFromFile(ctx context.Context, path string) (*seed.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	catalog, err := seed.Decode(f)
	if err != nil {
		return nil, err
	}
	res, err := a.seeder.Apply(ctx, catalog)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{
		"file":      path,
		"customers": res.Customers,
		"products":  res.Products,
		"skipped":   res.Skipped,
	}).Info("catalog loaded")
	return res, nil
}

// run loads configuration, builds the app for one command invocation and
// releases it afterwards.
func run(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logging.New(cfg.Logging, cmd.ErrOrStderr())

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	if opts.seedFile != "" {
		if _, err := a.seedFromFile(ctx, opts.seedFile); err != nil {
			return err
		}
	}
	return fn(ctx, a)
}
