package createorder

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	domcustomer "example.com/orderflow/internal/domain/customer"
	domorder "example.com/orderflow/internal/domain/order"
	domproduct "example.com/orderflow/internal/domain/product"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id string) (*domcustomer.Customer, error)
}

type ProductRepository interface {
	FindAllByID(ctx context.Context, refs []domproduct.Ref) ([]*domproduct.Product, error)
	UpdateQuantity(ctx context.Context, updates []domproduct.QuantityUpdate) error
}

type OrderRepository interface {
	Create(ctx context.Context, data domorder.CreateData) (*domorder.Order, error)
}

// Observer is told about every order the service creates. Errors are logged
// and otherwise ignored: the order is already stored when observers run.
type Observer interface {
	OrderCreated(ctx context.Context, o *domorder.Order) error
}

type RequestProduct struct {
	ID       string `json:"id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"gt=0"`
}

type Request struct {
	CustomerID string           `json:"customer_id"`
	Products   []RequestProduct `json:"products" validate:"dive"`
}

type Service struct {
	customerRepo CustomerRepository
	productRepo  ProductRepository
	orderRepo    OrderRepository
	observers    []Observer
	validator    *validator.Validate
	log          logrus.FieldLogger
}

type Option func(*Service)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

func WithObservers(obs ...Observer) Option {
	return func(s *Service) { s.observers = append(s.observers, obs...) }
}

func NewService(customerRepo CustomerRepository, productRepo ProductRepository, orderRepo OrderRepository, opts ...Option) *Service {
	discard := logrus.New()
	discard.SetLevel(logrus.PanicLevel)

	s := &Service{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		validator:    validator.New(),
		log:          discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Execute(ctx context.Context, req Request) (*domorder.Order, error) {
	log := s.log.WithField("customer_id", req.CustomerID)

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domcustomer.ErrCustomerNotFound
	}

	if len(req.Products) == 0 {
		return nil, domorder.ErrEmptyOrder
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domorder.ErrInvalidQuantity, err)
	}

	refs := make([]domproduct.Ref, 0, len(req.Products))
	for _, p := range req.Products {
		refs = append(refs, domproduct.Ref{ID: p.ID, Quantity: p.Quantity})
	}

	found, err := s.productRepo.FindAllByID(ctx, refs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(refs) {
		log.WithField("requested", len(refs)).WithField("found", len(found)).Info("rejecting order: unknown products")
		return nil, domproduct.ErrProductNotFound
	}

	snapshot := make(map[string]*domproduct.Product, len(found))
	for _, p := range found {
		snapshot[p.ID] = p
	}

	items := make([]domorder.LineItem, 0, len(refs))
	for _, ref := range refs {
		p, ok := snapshot[ref.ID]
		if !ok {
			return nil, domproduct.ErrProductNotFound
		}
		if ref.Quantity > p.Quantity {
			log.WithField("product_id", p.ID).Info("rejecting order: insufficient stock")
			return nil, fmt.Errorf("%w: product %s has %d available, %d requested",
				domproduct.ErrInsufficientStock, p.ID, p.Quantity, ref.Quantity)
		}
		items = append(items, domorder.LineItem{
			ProductID: p.ID,
			Price:     p.Price,
			Quantity:  ref.Quantity,
		})
	}

	order, err := s.orderRepo.Create(ctx, domorder.CreateData{
		Customer: *customer,
		Products: items,
	})
	if err != nil {
		return nil, err
	}

	updates := make([]domproduct.QuantityUpdate, 0, len(order.Products))
	for _, op := range order.Products {
		p, ok := snapshot[op.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: order %s references %s", domproduct.ErrProductNotFound, order.ID, op.ProductID)
		}
		updates = append(updates, domproduct.QuantityUpdate{
			ID:       p.ID,
			Quantity: p.Quantity - op.Quantity,
		})
	}

	if err := s.productRepo.UpdateQuantity(ctx, updates); err != nil {
		return nil, err
	}

	log = log.WithField("order_id", order.ID)
	log.WithField("items", len(order.Products)).Info("order created")

	for _, obs := range s.observers {
		if err := obs.OrderCreated(ctx, order); err != nil {
			log.WithError(err).Warn("order observer failed")
		}
	}

	return order, nil
}
