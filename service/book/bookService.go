package booksvc

import (
	"context"
	"errors"

	bookrepo "github.com/meghana367/bookstoreapp/repository/book"
)

type Book = bookrepo.Book

type ErrCode string

const (
	ErrBadInput         ErrCode = "BAD_INPUT"
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrHasPendingOrders ErrCode = "HAS_PENDING_ORDERS"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ErrCode("")
}

// UpdateReq carries the optional fields of a partial update.
type UpdateReq struct {
	Name   *string
	Author *string
	Copies *int64
}

type Repo interface {
	Create(ctx context.Context, name, author string, copies int64) (int64, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id int64) (int64, error)
	ByID(ctx context.Context, id int64) (*Book, error)
	List(ctx context.Context) ([]Book, error)
	OutOfStock(ctx context.Context) ([]Book, error)
	LowStock(ctx context.Context, threshold int64) ([]Book, error)
	PendingOrderCount(ctx context.Context, bookID int64) (int64, error)
}

type Service interface {
	Create(ctx context.Context, name, author string, copies int64) (int64, error)
	Update(ctx context.Context, id int64, req UpdateReq) (*Book, error)
	Delete(ctx context.Context, id int64) error
	Detail(ctx context.Context, id int64) (*Book, error)
	List(ctx context.Context) ([]Book, error)
	OutOfStock(ctx context.Context) ([]Book, error)
	LowStock(ctx context.Context) ([]Book, error)
}

type service struct {
	r         Repo
	threshold int64
}

func New(r Repo, lowStockThreshold int64) Service {
	return &service{r: r, threshold: lowStockThreshold}
}

func (s *service) Create(ctx context.Context, name, author string, copies int64) (int64, error) {
	if name == "" || author == "" || copies < 0 {
		return 0, makeErr(ErrBadInput)
	}
	return s.r.Create(ctx, name, author, copies)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateReq) (*Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.Copies != nil {
		b.Copies = *req.Copies
	}
	if b.Name == "" || b.Author == "" || b.Copies < 0 {
		return nil, makeErr(ErrBadInput)
	}
	if err := s.r.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete relies on the repository's conditional delete so the pending-order
// guard and the delete are one statement. A zero row count is classified
// afterwards: the book is either missing or still referenced.
func (s *service) Delete(ctx context.Context, id int64) error {
	aff, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if aff == 0 {
		n, err := s.r.PendingOrderCount(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return makeErr(ErrHasPendingOrders)
		}
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Detail(ctx context.Context, id int64) (*Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}
	return b, nil
}

func (s *service) List(ctx context.Context) ([]Book, error)       { return s.r.List(ctx) }
func (s *service) OutOfStock(ctx context.Context) ([]Book, error) { return s.r.OutOfStock(ctx) }

// LowStock recomputes against the configured threshold on every call, so the
// admin banner never shows a stale snapshot.
func (s *service) LowStock(ctx context.Context) ([]Book, error) {
	return s.r.LowStock(ctx, s.threshold)
}
