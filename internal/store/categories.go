package store

import (
	"database/sql"
	"fmt"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
)

func (s *Store) GetAllCategories() ([]models.Category, error) {
	return s.queryCategories(`SELECT id, name FROM categories ORDER BY name`)
}

// GetActiveCategories returns categories that have at least one available
// dish; the menu's filter bar only offers those.
func (s *Store) GetActiveCategories() ([]models.Category, error) {
	query := `
		SELECT DISTINCT c.id, c.name
		FROM categories c
		JOIN dishes d ON d.category_id = c.id
		WHERE d.available = 1
		ORDER BY c.name
	`
	return s.queryCategories(query)
}

func (s *Store) GetCategoryByID(id int) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRow(`SELECT id, name FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetCategoryByName(name string) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRow(`SELECT id, name FROM categories WHERE name = ?`, name).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCategory(name string) error {
	_, err := s.DB.Exec(`INSERT INTO categories (name) VALUES (?)`, name)
	return err
}

func (s *Store) RenameCategory(id int, name string) error {
	res, err := s.DB.Exec(`UPDATE categories SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteCategory unlinks every member dish, then removes the category.
// Dishes are never deleted along with their category.
func (s *Store) DeleteCategory(id int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE dishes SET category_id = NULL WHERE category_id = ?`, id); err != nil {
		return fmt.Errorf("unlink dishes: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) queryCategories(query string, args ...any) ([]models.Category, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
