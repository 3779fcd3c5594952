// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"errors"
	"testing"

	booksvc "github.com/meghana367/bookstoreapp/service/book"
)

type repoMock struct {
	createFn       func(ctx context.Context, name, author string, copies int64) (int64, error)
	updateFn       func(ctx context.Context, b *booksvc.Book) error
	deleteFn       func(ctx context.Context, id int64) (int64, error)
	byIDFn         func(ctx context.Context, id int64) (*booksvc.Book, error)
	listFn         func(ctx context.Context) ([]booksvc.Book, error)
	outOfStockFn   func(ctx context.Context) ([]booksvc.Book, error)
	lowStockFn     func(ctx context.Context, threshold int64) ([]booksvc.Book, error)
	pendingCountFn func(ctx context.Context, bookID int64) (int64, error)
}

func (m *repoMock) Create(ctx context.Context, name, author string, copies int64) (int64, error) {
	return m.createFn(ctx, name, author, copies)
}
func (m *repoMock) Update(ctx context.Context, b *booksvc.Book) error { return m.updateFn(ctx, b) }
func (m *repoMock) Delete(ctx context.Context, id int64) (int64, error) {
	return m.deleteFn(ctx, id)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*booksvc.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]booksvc.Book, error) { return m.listFn(ctx) }
func (m *repoMock) OutOfStock(ctx context.Context) ([]booksvc.Book, error) {
	return m.outOfStockFn(ctx)
}
func (m *repoMock) LowStock(ctx context.Context, threshold int64) ([]booksvc.Book, error) {
	return m.lowStockFn(ctx, threshold)
}
func (m *repoMock) PendingOrderCount(ctx context.Context, bookID int64) (int64, error) {
	if m.pendingCountFn == nil {
		return 0, nil
	}
	return m.pendingCountFn(ctx, bookID)
}

func strp(s string) *string { return &s }
func i64p(n int64) *int64   { return &n }

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{}, 5)
	if _, err := s.Create(context.Background(), "", "Herbert", 3); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := s.Create(context.Background(), "Dune", "", 3); err == nil {
		t.Fatal("expected error for empty author")
	}
	if _, err := s.Create(context.Background(), "Dune", "Herbert", -1); err == nil {
		t.Fatal("expected error for negative copies")
	}
	if _, err := s.Create(context.Background(), "Dune", "Herbert", -1); booksvc.Code(err) != booksvc.ErrBadInput {
		t.Fatalf("got code %q; want BAD_INPUT", booksvc.Code(err))
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, name, author string, copies int64) (int64, error) {
			if name != "Dune" || author != "Herbert" || copies != 3 {
				return 0, errors.New("bad args")
			}
			return 42, nil
		},
	}
	s := booksvc.New(m, 5)
	id, err := s.Create(context.Background(), "Dune", "Herbert", 3)
	if err != nil || id != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", id, err)
	}
}

func TestCreate_ZeroCopiesAllowed(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, name, author string, copies int64) (int64, error) {
			return 1, nil
		},
	}
	s := booksvc.New(m, 5)
	if _, err := s.Create(context.Background(), "Dune", "Herbert", 0); err != nil {
		t.Fatalf("zero copies should be valid: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*booksvc.Book, error) { return nil, nil },
	}
	s := booksvc.New(m, 5)
	_, err := s.Update(context.Background(), 99, booksvc.UpdateReq{Name: strp("x")})
	if booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got code %q; want NOT_FOUND", booksvc.Code(err))
	}
}

func TestUpdate_Partial(t *testing.T) {
	var updated *booksvc.Book
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*booksvc.Book, error) {
			return &booksvc.Book{ID: id, Name: "Dune", Author: "Herbert", Copies: 3}, nil
		},
		updateFn: func(ctx context.Context, b *booksvc.Book) error {
			updated = b
			return nil
		},
	}
	s := booksvc.New(m, 5)
	b, err := s.Update(context.Background(), 7, booksvc.UpdateReq{Copies: i64p(10)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.Name != "Dune" || b.Author != "Herbert" || b.Copies != 10 {
		t.Fatalf("merged book %+v; want name/author kept and copies=10", b)
	}
	if updated == nil || updated.Copies != 10 {
		t.Fatalf("repo got %+v; want copies=10", updated)
	}
}

func TestUpdate_NegativeCopies(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*booksvc.Book, error) {
			return &booksvc.Book{ID: id, Name: "Dune", Author: "Herbert", Copies: 3}, nil
		},
	}
	s := booksvc.New(m, 5)
	_, err := s.Update(context.Background(), 7, booksvc.UpdateReq{Copies: i64p(-2)})
	if booksvc.Code(err) != booksvc.ErrBadInput {
		t.Fatalf("got code %q; want BAD_INPUT", booksvc.Code(err))
	}
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) (int64, error) { return 0, nil },
	}
	s := booksvc.New(m, 5)
	err := s.Delete(context.Background(), 99)
	if booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got code %q; want NOT_FOUND", booksvc.Code(err))
	}
}

func TestDelete_RejectedWithPendingOrders(t *testing.T) {
	// The conditional delete refuses the row; the service classifies the
	// zero count by the pending-order count.
	m := &repoMock{
		deleteFn:       func(ctx context.Context, id int64) (int64, error) { return 0, nil },
		pendingCountFn: func(ctx context.Context, bookID int64) (int64, error) { return 2, nil },
	}
	s := booksvc.New(m, 5)
	err := s.Delete(context.Background(), 7)
	if booksvc.Code(err) != booksvc.ErrHasPendingOrders {
		t.Fatalf("got code %q; want HAS_PENDING_ORDERS", booksvc.Code(err))
	}
}

func TestLowStock_UsesConfiguredThreshold(t *testing.T) {
	var got int64
	m := &repoMock{
		lowStockFn: func(ctx context.Context, threshold int64) ([]booksvc.Book, error) {
			got = threshold
			return nil, nil
		},
	}
	s := booksvc.New(m, 5)
	if _, err := s.LowStock(context.Background()); err != nil {
		t.Fatalf("lowstock: %v", err)
	}
	if got != 5 {
		t.Fatalf("threshold %d; want 5", got)
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		listFn:       func(ctx context.Context) ([]booksvc.Book, error) { return nil, nil },
		outOfStockFn: func(ctx context.Context) ([]booksvc.Book, error) { return nil, nil },
		byIDFn: func(ctx context.Context, id int64) (*booksvc.Book, error) {
			return &booksvc.Book{ID: id}, nil
		},
	}
	s := booksvc.New(m, 5)

	if _, err := s.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if _, err := s.OutOfStock(context.Background()); err != nil {
		t.Fatalf("OutOfStock error: %v", err)
	}
	if _, err := s.Detail(context.Background(), 99); err != nil {
		t.Fatalf("Detail error: %v", err)
	}
}
