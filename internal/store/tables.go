package store

import "github.com/davlatp7-commits/render-restaurant/internal/models"

// The table registry is reference data seeded through the CLI. Order
// submissions carry a raw table id and are deliberately not checked against
// this registry.

func (s *Store) CreateTable(number int) error {
	_, err := s.DB.Exec(`INSERT INTO tables (number) VALUES (?)`, number)
	return err
}

func (s *Store) GetAllTables() ([]models.Table, error) {
	rows, err := s.DB.Query(`SELECT id, number FROM tables ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Number); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}
