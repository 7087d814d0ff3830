package store

import (
	"database/sql"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
)

type DashboardStats struct {
	TotalDishes     int
	TotalOrders     int
	OrdersByStatus  map[models.Status]int
	DishOrderCounts []DishOrderCount
}

type DishOrderCount struct {
	DishID     int
	Name       string
	OrderCount int
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[models.Status]int),
	}

	err := s.DB.QueryRow(`SELECT COUNT(*) FROM dishes`).Scan(&stats.TotalDishes)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query(`SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status models.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dishRows, err := s.DB.Query(`
		SELECT d.id, d.name, COUNT(oi.id) AS order_count
		FROM dishes d
		LEFT JOIN order_items oi ON d.id = oi.dish_id
		GROUP BY d.id
		ORDER BY order_count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer dishRows.Close()
	for dishRows.Next() {
		var doc DishOrderCount
		if err := dishRows.Scan(&doc.DishID, &doc.Name, &doc.OrderCount); err != nil {
			return nil, err
		}
		stats.DishOrderCounts = append(stats.DishOrderCounts, doc)
	}

	return stats, dishRows.Err()
}
