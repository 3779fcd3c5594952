// service/order/order_service_test.go
package ordersvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/meghana367/bookstoreapp/model"
	bookrepo "github.com/meghana367/bookstoreapp/repository/book"
	orderrepo "github.com/meghana367/bookstoreapp/repository/order"
	userrepo "github.com/meghana367/bookstoreapp/repository/user"
	ordersvc "github.com/meghana367/bookstoreapp/service/order"
	"github.com/meghana367/bookstoreapp/util/database"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	books bookrepo.Repo
	svc   ordersvc.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &fixture{
		db:    db,
		books: bookrepo.New(db),
		svc:   ordersvc.New(db, orderrepo.New(db), bookrepo.New(db)),
	}
}

func (f *fixture) addUser(t *testing.T, username string) int64 {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", Password: "pw", Role: model.RoleRegular}
	require.NoError(t, userrepo.New(f.db).Create(context.Background(), u))
	return u.ID
}

func (f *fixture) addBook(t *testing.T, name, author string, copies int64) int64 {
	t.Helper()
	id, err := f.books.Create(context.Background(), name, author, copies)
	require.NoError(t, err)
	return id
}

func (f *fixture) copies(t *testing.T, bookID int64) int64 {
	t.Helper()
	b, err := f.books.ByID(context.Background(), bookID)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b.Copies
}

// --- tests ---

func TestPlace_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.addUser(t, "reader")
	bid := f.addBook(t, "Dune", "Herbert", 3)

	_, err := f.svc.Place(ctx, uid, bid, 0)
	require.Equal(t, ordersvc.ErrBadInput, ordersvc.Code(err))

	_, err = f.svc.Place(ctx, uid, bid, -1)
	require.Equal(t, ordersvc.ErrBadInput, ordersvc.Code(err))

	_, err = f.svc.Place(ctx, uid, 9999, 1)
	require.Equal(t, ordersvc.ErrBookNotFound, ordersvc.Code(err))
}

func TestPlace_DoesNotTouchStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.addUser(t, "reader")
	bid := f.addBook(t, "Dune", "Herbert", 0)

	// Placement records intent only; an out of stock book is still orderable.
	id, err := f.svc.Place(ctx, uid, bid, 5)
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Equal(t, int64(0), f.copies(t, bid))
}

func TestCheckout_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.addUser(t, "reader")
	bid := f.addBook(t, "Dune", "Herbert", 3)

	orderID, err := f.svc.Place(ctx, uid, bid, 2)
	require.NoError(t, err)

	pending, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, orderID, pending[0].OrderID)
	require.Equal(t, "reader", pending[0].Username)
	require.Equal(t, "Dune", pending[0].BookName)
	require.Equal(t, int64(2), pending[0].Quantity)

	require.NoError(t, f.svc.Checkout(ctx, orderID))
	require.Equal(t, int64(1), f.copies(t, bid))

	mine, err := f.svc.ListForUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, string(model.OrderCompleted), mine[0].Status)

	// Completed orders leave the pending view.
	pending, err = f.svc.ListPending(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestCheckout_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.addUser(t, "reader")
	bid := f.addBook(t, "Dune", "Herbert", 3)

	orderID, err := f.svc.Place(ctx, uid, bid, 2)
	require.NoError(t, err)
	require.NoError(t, f.svc.Checkout(ctx, orderID))

	err = f.svc.Checkout(ctx, orderID)
	require.Equal(t, ordersvc.ErrAlreadyProcessed, ordersvc.Code(err))

	// The retry must not decrement a second time.
	require.Equal(t, int64(1), f.copies(t, bid))
}

func TestCheckout_InsufficientStockLeavesOrderPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.addUser(t, "reader")
	bid := f.addBook(t, "Dune", "Herbert", 1)

	orderA, err := f.svc.Place(ctx, uid, bid, 1)
	require.NoError(t, err)
	orderB, err := f.svc.Place(ctx, uid, bid, 1)
	require.NoError(t, err)

	require.NoError(t, f.svc.Checkout(ctx, orderA))
	require.Equal(t, int64(0), f.copies(t, bid))

	err = f.svc.Checkout(ctx, orderB)
	require.Equal(t, ordersvc.ErrNoStock, ordersvc.Code(err))

	// No partial commit: order B is still pending, copies never went negative.
	require.Equal(t, int64(0), f.copies(t, bid))
	mine, err := f.svc.ListForUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	byID := map[int64]string{}
	for _, h := range mine {
		byID[h.OrderID] = h.Status
	}
	require.Equal(t, string(model.OrderCompleted), byID[orderA])
	require.Equal(t, string(model.OrderPending), byID[orderB])
}

func TestListAll_IncludesCompletedOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	bid := f.addBook(t, "Dune", "Herbert", 5)

	first, err := f.svc.Place(ctx, alice, bid, 2)
	require.NoError(t, err)
	second, err := f.svc.Place(ctx, bob, bid, 1)
	require.NoError(t, err)
	require.NoError(t, f.svc.Checkout(ctx, first))

	// Completed orders drop out of the pending view but stay in the
	// admin history.
	pending, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Newest first, id breaking the tie.
	require.Equal(t, second, all[0].OrderID)
	require.Equal(t, "bob", all[0].Username)
	require.Equal(t, string(model.OrderPending), all[0].Status)
	require.Equal(t, first, all[1].OrderID)
	require.Equal(t, "alice", all[1].Username)
	require.Equal(t, "Dune", all[1].BookName)
	require.Equal(t, string(model.OrderCompleted), all[1].Status)
}

func TestCheckout_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.svc.Checkout(ctx, 424242)
	require.Equal(t, ordersvc.ErrOrderNotFound, ordersvc.Code(err))
}

func TestListForUser_OnlyOwnOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	bid := f.addBook(t, "Dune", "Herbert", 10)

	_, err := f.svc.Place(ctx, alice, bid, 1)
	require.NoError(t, err)
	_, err = f.svc.Place(ctx, bob, bid, 2)
	require.NoError(t, err)

	mine, err := f.svc.ListForUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, int64(1), mine[0].Quantity)
}
