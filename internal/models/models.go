package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Dish struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Weight      string          `json:"weight"` // portion label, e.g. "350 g"
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Available   bool            `json:"available"`
	CategoryID  sql.NullInt64   `json:"category_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Order struct {
	ID        int         `json:"id"`
	TableID   int         `json:"table_id"`
	Status    Status      `json:"status"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

type OrderItem struct {
	ID       int    `json:"id"`
	OrderID  int    `json:"order_id"`
	DishID   int    `json:"dish_id"`
	Quantity int    `json:"quantity"`
	DishName string `json:"dish_name"` // display only; "(removed)" after a hard dish delete
}

type Table struct {
	ID     int `json:"id"`
	Number int `json:"number"`
}
