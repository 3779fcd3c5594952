package ordersvc

import (
	"context"
	"database/sql"
	"errors"

	bookrepo "github.com/meghana367/bookstoreapp/repository/book"
	orderrepo "github.com/meghana367/bookstoreapp/repository/order"
)

// errors used by controllers

type ErrCode string

const (
	ErrBadInput         ErrCode = "BAD_INPUT"
	ErrBookNotFound     ErrCode = "BOOK_NOT_FOUND"
	ErrOrderNotFound    ErrCode = "ORDER_NOT_FOUND"
	ErrAlreadyProcessed ErrCode = "ALREADY_PROCESSED"
	ErrNoStock          ErrCode = "NO_STOCK"
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

// dto

type PendingRow = orderrepo.PendingRow
type OrderRow = orderrepo.OrderRow
type HistoryRow = orderrepo.HistoryRow

type Repo interface {
	Insert(ctx context.Context, userID, bookID, quantity int64) (int64, error)
	ListPending(ctx context.Context) ([]PendingRow, error)
	ListAll(ctx context.Context) ([]OrderRow, error)
	ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error)

	GetForCheckout(ctx context.Context, tx *sql.Tx, orderID int64) (bookID, quantity int64, status string, err error)
	MarkCompleted(ctx context.Context, tx *sql.Tx, orderID int64) (int64, error)
}

// Stock is the slice of the inventory repository checkout needs: the
// conditional decrement, executed inside the checkout transaction.
type Stock interface {
	ByID(ctx context.Context, id int64) (*bookrepo.Book, error)
	DecrementCopies(ctx context.Context, tx *sql.Tx, bookID, quantity int64) error
}

type Service interface {
	// Place records intent only; stock is neither checked nor reserved
	// until an admin checks the order out.
	Place(ctx context.Context, userID, bookID, quantity int64) (int64, error)

	// Checkout completes a pending order and decrements stock, both in
	// one transaction.
	Checkout(ctx context.Context, orderID int64) error

	ListPending(ctx context.Context) ([]PendingRow, error)

	// ListAll is the admin review view: every order, any status,
	// newest first.
	ListAll(ctx context.Context) ([]OrderRow, error)

	ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error)
}

// ----- Service implementation -----

type service struct {
	db    *sql.DB
	r     Repo
	stock Stock
}

func New(db *sql.DB, r Repo, stock Stock) Service {
	return &service{db: db, r: r, stock: stock}
}

func (s *service) Place(ctx context.Context, userID, bookID, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, makeErr(ErrBadInput)
	}
	b, err := s.stock.ByID(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, makeErr(ErrBookNotFound)
	}
	return s.r.Insert(ctx, userID, bookID, quantity)
}

func (s *service) Checkout(ctx context.Context, orderID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	bookID, quantity, status, err := s.r.GetForCheckout(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrOrderNotFound)
		}
		return err
	}
	if status != "Pending" {
		return makeErr(ErrAlreadyProcessed)
	}

	if err = s.stock.DecrementCopies(ctx, tx, bookID, quantity); err != nil {
		if errors.Is(err, bookrepo.ErrInsufficient) {
			return makeErr(ErrNoStock)
		}
		return err
	}

	aff, err := s.r.MarkCompleted(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if aff == 0 {
		// Lost the race to another checkout.
		return makeErr(ErrAlreadyProcessed)
	}
	return tx.Commit()
}

func (s *service) ListPending(ctx context.Context) ([]PendingRow, error) {
	return s.r.ListPending(ctx)
}

func (s *service) ListAll(ctx context.Context) ([]OrderRow, error) {
	return s.r.ListAll(ctx)
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error) {
	return s.r.ListForUser(ctx, userID)
}
