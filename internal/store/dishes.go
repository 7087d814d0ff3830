package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
)

const dishColumns = `id, name, description, weight, price, image_url, available, category_id, created_at`

func scanDish(row interface{ Scan(...any) error }) (models.Dish, error) {
	var d models.Dish
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Weight, &d.Price, &d.ImageURL, &d.Available, &d.CategoryID, &d.CreatedAt)
	return d, err
}

func (s *Store) CreateDish(d *models.Dish) error {
	query := `
		INSERT INTO dishes (name, description, weight, price, image_url, available, category_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, d.Name, d.Description, d.Weight, d.Price, d.ImageURL, d.Available, d.CategoryID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = int(id)
	return nil
}

func (s *Store) GetAllDishes() ([]models.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes ORDER BY created_at DESC, id DESC`
	return s.queryDishes(query)
}

// GetAvailableDishes returns dishes the menu should show. A non-empty
// categoryName narrows the result to dishes in that category.
func (s *Store) GetAvailableDishes(categoryName string) ([]models.Dish, error) {
	if categoryName == "" {
		query := `SELECT ` + dishColumns + ` FROM dishes WHERE available = 1 ORDER BY created_at DESC, id DESC`
		return s.queryDishes(query)
	}
	query := `
		SELECT d.id, d.name, d.description, d.weight, d.price, d.image_url, d.available, d.category_id, d.created_at
		FROM dishes d
		JOIN categories c ON d.category_id = c.id
		WHERE d.available = 1 AND c.name = ?
		ORDER BY d.created_at DESC, d.id DESC
	`
	return s.queryDishes(query, categoryName)
}

// GetDishesByIDs resolves cart entries; ids of deleted dishes are simply
// absent from the result.
func (s *Store) GetDishesByIDs(ids []int) ([]models.Dish, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id IN (` + placeholders + `) ORDER BY id`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return s.queryDishes(query, args...)
}

func (s *Store) GetDishByID(id int) (*models.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id = ?`
	d, err := scanDish(s.DB.QueryRow(query, id))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) UpdateDish(d *models.Dish) error {
	query := `
		UPDATE dishes
		SET name = ?, description = ?, weight = ?, price = ?, image_url = ?, category_id = ?
		WHERE id = ?
	`
	_, err := s.DB.Exec(query, d.Name, d.Description, d.Weight, d.Price, d.ImageURL, d.CategoryID, d.ID)
	return err
}

func (s *Store) UpdateDishImage(id int, imageURL string) error {
	query := `UPDATE dishes SET image_url = ? WHERE id = ?`
	_, err := s.DB.Exec(query, imageURL, id)
	return err
}

// ToggleDishAvailability flips the available flag.
func (s *Store) ToggleDishAvailability(id int) error {
	query := `UPDATE dishes SET available = NOT available WHERE id = ?`
	res, err := s.DB.Exec(query, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteDish removes the row outright. Existing order items keep their
// dish_id; reads guard against the gap with a LEFT JOIN.
func (s *Store) DeleteDish(id int) error {
	res, err := s.DB.Exec(`DELETE FROM dishes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) queryDishes(query string, args ...any) ([]models.Dish, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []models.Dish
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

// requireRow converts a zero-row write into sql.ErrNoRows so handlers can
// answer 404 for ids that do not exist.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
