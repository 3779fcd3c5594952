// repository/order/repo.go
package orderrepo

import (
	"context"
	"database/sql"
	"time"
)

type PendingRow struct {
	OrderID   int64     `json:"order_id"`
	Username  string    `json:"username"`
	BookID    int64     `json:"book_id"`
	BookName  string    `json:"book_name"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderRow struct {
	OrderID   int64     `json:"order_id"`
	Username  string    `json:"username"`
	BookID    int64     `json:"book_id"`
	BookName  string    `json:"book_name"`
	Quantity  int64     `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryRow struct {
	OrderID   int64     `json:"order_id"`
	BookID    int64     `json:"book_id"`
	BookName  string    `json:"book_name"`
	Quantity  int64     `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo interface {
	Insert(ctx context.Context, userID, bookID, quantity int64) (int64, error)
	ListPending(ctx context.Context) ([]PendingRow, error)
	ListAll(ctx context.Context) ([]OrderRow, error)
	ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error)

	// Checkout path, transaction scoped.
	GetForCheckout(ctx context.Context, tx *sql.Tx, orderID int64) (bookID, quantity int64, status string, err error)
	MarkCompleted(ctx context.Context, tx *sql.Tx, orderID int64) (int64, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, userID, bookID, quantity int64) (int64, error) {
	const q = `
		INSERT INTO orders (user_id, book_id, quantity, status, created_at)
		VALUES (?, ?, ?, 'Pending', ?)`
	res, err := r.db.ExecContext(ctx, q, userID, bookID, quantity, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *repo) ListPending(ctx context.Context) ([]PendingRow, error) {
	const q = `
			SELECT
			o.id         AS order_id,
			u.username   AS username,
			o.book_id    AS book_id,
			b.name       AS book_name,
			o.quantity   AS quantity,
			o.created_at AS created_at
			FROM orders o
			JOIN users u ON u.id = o.user_id
			JOIN books b ON b.id = o.book_id
			WHERE o.status = 'Pending'
			ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingRow
	for rows.Next() {
		var p PendingRow
		if err := rows.Scan(
			&p.OrderID, &p.Username, &p.BookID, &p.BookName,
			&p.Quantity, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) ListAll(ctx context.Context) ([]OrderRow, error) {
	const q = `
			SELECT
			o.id         AS order_id,
			u.username   AS username,
			o.book_id    AS book_id,
			b.name       AS book_name,
			o.quantity   AS quantity,
			o.status     AS status,
			o.created_at AS created_at
			FROM orders o
			JOIN users u ON u.id = o.user_id
			JOIN books b ON b.id = o.book_id
			ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRow
	for rows.Next() {
		var o OrderRow
		if err := rows.Scan(
			&o.OrderID, &o.Username, &o.BookID, &o.BookName,
			&o.Quantity, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repo) ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error) {
	const q = `
			SELECT
			o.id         AS order_id,
			o.book_id    AS book_id,
			b.name       AS book_name,
			o.quantity   AS quantity,
			o.status     AS status,
			o.created_at AS created_at
			FROM orders o
			JOIN books b ON b.id = o.book_id
			WHERE o.user_id = ?
			ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.OrderID, &h.BookID, &h.BookName,
			&h.Quantity, &h.Status, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) GetForCheckout(ctx context.Context, tx *sql.Tx, orderID int64) (int64, int64, string, error) {
	const q = `
		SELECT book_id, quantity, status
		FROM orders
		WHERE id = ?`
	var bookID, qty int64
	var status string
	err := tx.QueryRowContext(ctx, q, orderID).Scan(&bookID, &qty, &status)
	return bookID, qty, status, err
}

func (r *repo) MarkCompleted(ctx context.Context, tx *sql.Tx, orderID int64) (int64, error) {
	// Checked-and-set: only a Pending order may complete.
	const q = `
		UPDATE orders
		SET status = 'Completed'
		WHERE id = ?
		AND status = 'Pending'`
	res, err := tx.ExecContext(ctx, q, orderID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
