package bookrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/meghana367/bookstoreapp/model"
)

// ErrInsufficient is returned when a conditional decrement finds fewer
// copies than requested.
var ErrInsufficient = errors.New("insufficient stock")

type Book = model.Book

type Repo interface {
	Create(ctx context.Context, name, author string, copies int64) (int64, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	OutOfStock(ctx context.Context) ([]model.Book, error)
	LowStock(ctx context.Context, threshold int64) ([]model.Book, error)

	PendingOrderCount(ctx context.Context, bookID int64) (int64, error)
	DecrementCopies(ctx context.Context, tx *sql.Tx, bookID, quantity int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, name, author string, copies int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO books (name, author, copies)
		VALUES (?,?,?)`,
		name, author, copies,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
		UPDATE books
		SET name = ?, author = ?, copies = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, b.Name, b.Author, b.Copies, b.ID)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	// Guard: a book with pending orders must not be deleted out from
	// under them.
	const q = `
		DELETE FROM books
		WHERE id = ?
		AND NOT EXISTS (
			SELECT 1 FROM orders
			WHERE book_id = ? AND status = 'Pending'
		)`
	res, err := r.db.ExecContext(ctx, q, id, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	b := &model.Book{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, author, copies
		FROM books
		WHERE id = ?`,
		id,
	).Scan(&b.ID, &b.Name, &b.Author, &b.Copies)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	return r.query(ctx, `
		SELECT id, name, author, copies
		FROM books
		ORDER BY id`)
}

func (r *repo) OutOfStock(ctx context.Context) ([]model.Book, error) {
	return r.query(ctx, `
		SELECT id, name, author, copies
		FROM books
		WHERE copies = 0
		ORDER BY id`)
}

func (r *repo) LowStock(ctx context.Context, threshold int64) ([]model.Book, error) {
	return r.query(ctx, `
		SELECT id, name, author, copies
		FROM books
		WHERE copies <= ?
		ORDER BY id`, threshold)
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Author, &b.Copies); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) PendingOrderCount(ctx context.Context, bookID int64) (int64, error) {
	const q = `
		SELECT COUNT(*)
		FROM orders
		WHERE book_id = ? AND status = 'Pending'`
	var n int64
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&n)
	return n, err
}

func (r *repo) DecrementCopies(ctx context.Context, tx *sql.Tx, bookID, quantity int64) error {
	// Guard: only decrement when enough copies remain.
	const q = `
		UPDATE books
		SET copies = copies - ?
		WHERE id = ?
		AND copies >= ?`
	res, err := tx.ExecContext(ctx, q, quantity, bookID, quantity)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return ErrInsufficient
	}
	return nil
}
