package mysql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domproduct "example.com/orderflow/internal/domain/product"
)

var productCols = []string{"id", "name", "price", "quantity", "created_at", "updated_at"}

func TestProductRepository_FindAllByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id IN (?,?,?)")).
		WithArgs("P1", "P2", "P9").
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow("P1", "Keyboard", "10.00", int64(5), now, now).
			AddRow("P2", "Mouse", "20.00", int64(2), now, now))

	products, err := repo.FindAllByID(context.Background(), []domproduct.Ref{
		{ID: "P1", Quantity: 1}, {ID: "P2", Quantity: 1}, {ID: "P9", Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "P1", products[0].ID)
	require.True(t, decimal.NewFromInt(10).Equal(products[0].Price))
	require.EqualValues(t, 2, products[1].Quantity)
}

func TestProductRepository_FindAllByID_DuplicateIDsReturnOneRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id IN (?,?)")).
		WithArgs("P1", "P1").
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow("P1", "Keyboard", "10.00", int64(5), now, now))

	products, err := repo.FindAllByID(context.Background(), []domproduct.Ref{
		{ID: "P1", Quantity: 1}, {ID: "P1", Quantity: 2},
	})

	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestProductRepository_FindAllByID_Empty(t *testing.T) {
	db, _ := newMockDB(t)

	products, err := NewProductRepository(db).FindAllByID(context.Background(), nil)

	require.NoError(t, err)
	require.Empty(t, products)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("FROM products WHERE id = ?").
		WithArgs("P9").
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := NewProductRepository(db).FindByID(context.Background(), "P9")

	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestProductRepository_Create_DuplicateName(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO products").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Keyboard'"})

	_, err := NewProductRepository(db).Create(context.Background(), &domproduct.Product{
		ID: "P3", Name: "Keyboard", Price: decimal.NewFromInt(1),
	})

	require.ErrorIs(t, err, domproduct.ErrNameAlreadyUsed)
}

func TestProductRepository_UpdateQuantity(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("UPDATE products SET quantity")
	prep.ExpectExec().WithArgs(int64(2), sqlmock.AnyArg(), "P1").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(int64(0), sqlmock.AnyArg(), "P2").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewProductRepository(db).UpdateQuantity(context.Background(), []domproduct.QuantityUpdate{
		{ID: "P1", Quantity: 2}, {ID: "P2", Quantity: 0},
	})

	require.NoError(t, err)
}

func TestProductRepository_UpdateQuantity_MissingRowRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("UPDATE products SET quantity")
	prep.ExpectExec().WithArgs(int64(2), sqlmock.AnyArg(), "P1").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(int64(1), sqlmock.AnyArg(), "P9").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := NewProductRepository(db).UpdateQuantity(context.Background(), []domproduct.QuantityUpdate{
		{ID: "P1", Quantity: 2}, {ID: "P9", Quantity: 1},
	})

	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
	require.ErrorContains(t, err, "P9")
}

func TestProductRepository_UpdateQuantity_ExecErrorRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	dbErr := errors.New("lock wait timeout exceeded")

	mock.ExpectBegin()
	mock.ExpectPrepare("UPDATE products SET quantity").
		ExpectExec().WillReturnError(dbErr)
	mock.ExpectRollback()

	err := NewProductRepository(db).UpdateQuantity(context.Background(), []domproduct.QuantityUpdate{
		{ID: "P1", Quantity: 2},
	})

	require.ErrorIs(t, err, dbErr)
}
