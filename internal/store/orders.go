package store

import (
	"database/sql"
	"fmt"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
)

// CreateOrder inserts one order in status "new" plus one item per
// (dish, quantity) entry, all inside a single transaction. The generated
// order id is read back between the two inserts.
func (s *Store) CreateOrder(tableID int, comment string, quantities map[int]int) (int, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO orders (table_id, status, comment, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		tableID, models.StatusNew, comment,
	)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for dishID, qty := range quantities {
		if qty <= 0 {
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO order_items (order_id, dish_id, quantity) VALUES (?, ?, ?)`,
			orderID, dishID, qty,
		)
		if err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(orderID), nil
}

// GetLatestOrderForTable returns the most recent order for a table, with its
// items, or nil when the table has never ordered.
func (s *Store) GetLatestOrderForTable(tableID int) (*models.Order, error) {
	query := `
		SELECT id, table_id, status, comment, created_at
		FROM orders
		WHERE table_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var o models.Order
	err := s.DB.QueryRow(query, tableID).Scan(&o.ID, &o.TableID, &o.Status, &o.Comment, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if o.Items, err = s.getOrderItems(o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) GetOrderByID(id int) (*models.Order, error) {
	var o models.Order
	err := s.DB.QueryRow(
		`SELECT id, table_id, status, comment, created_at FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.TableID, &o.Status, &o.Comment, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if o.Items, err = s.getOrderItems(o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetActiveOrders returns every order that has not reached the history
// state, newest first.
func (s *Store) GetActiveOrders() ([]models.Order, error) {
	query := `
		SELECT id, table_id, status, comment, created_at
		FROM orders
		WHERE status != ?
		ORDER BY created_at DESC, id DESC
	`
	return s.queryOrders(query, models.StatusCompleted)
}

func (s *Store) GetOrdersByStatus(status models.Status) ([]models.Order, error) {
	query := `
		SELECT id, table_id, status, comment, created_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at DESC, id DESC
	`
	return s.queryOrders(query, status)
}

// GetCompletedOrders returns the order history, newest first.
func (s *Store) GetCompletedOrders() ([]models.Order, error) {
	return s.GetOrdersByStatus(models.StatusCompleted)
}

// UpdateOrderStatus sets the order's status. Callers validate the status at
// the boundary; any parsed status is reachable from any other.
func (s *Store) UpdateOrderStatus(id int, status models.Status) error {
	res, err := s.DB.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// PurgeCompletedOrders irreversibly deletes every completed order together
// with its items. Non-completed orders are untouched.
func (s *Store) PurgeCompletedOrders() error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE status = ?)`,
		models.StatusCompleted,
	)
	if err != nil {
		return fmt.Errorf("purge order items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM orders WHERE status = ?`, models.StatusCompleted); err != nil {
		return fmt.Errorf("purge orders: %w", err)
	}

	return tx.Commit()
}

// GetLatestOrderID returns the highest order id, or 0 when no orders exist.
func (s *Store) GetLatestOrderID() (int, error) {
	var id int
	err := s.DB.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM orders`).Scan(&id)
	return id, err
}

// HasNewOrders reports whether any order is still in status "new".
func (s *Store) HasNewOrders() (bool, error) {
	var exists bool
	err := s.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM orders WHERE status = ?)`, models.StatusNew,
	).Scan(&exists)
	return exists, err
}

func (s *Store) queryOrders(query string, args ...any) ([]models.Order, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.TableID, &o.Status, &o.Comment, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].Items, err = s.getOrderItems(orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *Store) getOrderItems(orderID int) ([]models.OrderItem, error) {
	// LEFT JOIN so items outlive a hard dish delete.
	query := `
		SELECT oi.id, oi.order_id, oi.dish_id, oi.quantity, COALESCE(d.name, '(removed)')
		FROM order_items oi
		LEFT JOIN dishes d ON oi.dish_id = d.id
		WHERE oi.order_id = ?
		ORDER BY oi.id
	`
	rows, err := s.DB.Query(query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.DishID, &it.Quantity, &it.DishName); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
