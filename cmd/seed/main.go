// Seed populates the database with the demo accounts, categories and
// products used for local development. Existing domain rows are wiped first.
package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/Dario0076/GestionPedidos/internal/config"
	"github.com/Dario0076/GestionPedidos/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type seedProduct struct {
	category    string
	name        string
	description string
	imageURL    string
	price       string
	stock       int
}

var seedCategories = map[string]string{
	"Electrónicos": "Dispositivos electrónicos y gadgets",
	"Ropa":         "Prendas de vestir y accesorios",
	"Hogar":        "Artículos para el hogar y decoración",
}

var seedProducts = []seedProduct{
	{"Electrónicos", "Smartphone Galaxy A54", "Teléfono inteligente con pantalla AMOLED de 6.4 pulgadas", "https://example.com/images/galaxy-a54.jpg", "299.99", 25},
	{"Electrónicos", "Auriculares Bluetooth", "Auriculares inalámbricos con cancelación de ruido", "https://example.com/images/auriculares.jpg", "79.99", 50},
	{"Ropa", "Camiseta Básica", "Camiseta de algodón 100% en varios colores", "https://example.com/images/camiseta.jpg", "19.99", 100},
	{"Hogar", "Lámpara de Mesa", "Lámpara LED regulable para escritorio", "https://example.com/images/lampara.jpg", "45.50", 30},
}

func main() {
	log.SetFlags(log.Ldate | log.Lshortfile)

	db, err := storage.NewPostgresDB(config.Env.PostgresConnStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := storage.Migrate(ctx, db); err != nil {
		log.Fatal(err)
	}

	if err := truncate(ctx, db); err != nil {
		log.Fatal(err)
	}

	if err := seedUsers(ctx, db); err != nil {
		log.Fatal(err)
	}
	log.Println("users created")

	if err := seedCatalog(ctx, db); err != nil {
		log.Fatal(err)
	}
	log.Println("categories and products created")

	log.Println("seeding completed")
}

func truncate(ctx context.Context, db *sql.DB) error {
	// children before parents
	tables := []string{
		"order_events",
		"order_items",
		"orders",
		"products",
		"categories",
		"users",
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	return nil
}

func seedUsers(ctx context.Context, db *sql.DB) error {
	query := `INSERT INTO users(email, password, name, phone, address, role)
		VALUES($1, $2, $3, $4, $5, $6)`

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(
		ctx,
		query,
		"admin@admin.com",
		string(adminPassword),
		"Administrador",
		"+34 666 777 888",
		"Calle Admin 123",
		"ADMIN",
	)
	if err != nil {
		return err
	}

	userPassword, err := bcrypt.GenerateFromPassword([]byte("user123"), 10)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(
		ctx,
		query,
		"user@user.com",
		string(userPassword),
		"Usuario Demo",
		"+34 666 123 456",
		"Calle Usuario 456",
		"USER",
	)

	return err
}

func seedCatalog(ctx context.Context, db *sql.DB) error {
	categoryIDs := make(map[string]string, len(seedCategories))

	for name, description := range seedCategories {
		var categoryID string
		err := db.QueryRowContext(
			ctx,
			`INSERT INTO categories(name, description) VALUES($1, $2) RETURNING category_id`,
			name,
			description,
		).Scan(&categoryID)
		if err != nil {
			return err
		}

		categoryIDs[name] = categoryID
	}

	productQuery := `INSERT INTO products(category_id, name, description, image_url, price, stock)
		VALUES($1, $2, $3, $4, $5, $6)`

	for _, p := range seedProducts {
		_, err := db.ExecContext(
			ctx,
			productQuery,
			categoryIDs[p.category],
			p.name,
			p.description,
			p.imageURL,
			p.price,
			p.stock,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
