package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davlatp7-commits/render-restaurant/internal/store"
)

// Seeds reference data before first start: the table registry and the
// initial menu categories.
func main() {
	addTableCmd := flag.NewFlagSet("add-table", flag.ExitOnError)
	tableNumber := addTableCmd.Int("number", 0, "Table number to register")

	addCategoryCmd := flag.NewFlagSet("add-category", flag.ExitOnError)
	categoryName := addCategoryCmd.String("name", "", "Name of the new category")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-table' or 'add-category' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-table":
		addTableCmd.Parse(os.Args[2:])
		if *tableNumber <= 0 {
			fmt.Println("a positive table number is required")
			addTableCmd.PrintDefaults()
			os.Exit(1)
		}
		withStore(func(db *store.Store) error {
			return db.CreateTable(*tableNumber)
		})
		fmt.Printf("Table %d registered.\n", *tableNumber)
	case "add-category":
		addCategoryCmd.Parse(os.Args[2:])
		if *categoryName == "" {
			fmt.Println("a category name is required")
			addCategoryCmd.PrintDefaults()
			os.Exit(1)
		}
		withStore(func(db *store.Store) error {
			return db.CreateCategory(*categoryName)
		})
		fmt.Printf("Category %q created.\n", *categoryName)
	default:
		fmt.Println("expected 'add-table' or 'add-category' subcommand")
		os.Exit(1)
	}
}

func withStore(fn func(*store.Store) error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./restaurant.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Ensure tables exist if running the CLI before the server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	if err := fn(db); err != nil {
		log.Fatalf("Failed: %v", err)
	}
}
