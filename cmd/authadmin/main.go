// Command authadmin — админская утилита: начальная загрузка данных из
// CSV, экспорт таблиц в CSV и создание администратора.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/iudanet/apistarter/internal/auth"
	"github.com/iudanet/apistarter/internal/csvio"
	"github.com/iudanet/apistarter/internal/models"
	"github.com/iudanet/apistarter/internal/server/storage/sqlite"
	"github.com/iudanet/apistarter/internal/validation"
)

const usage = `Usage: authadmin [flags] <command>

Commands:
  load          load users and products from CSV files
  export        export users and products to CSV files
  create-admin  create an admin user interactively

Flags:
  -d path       SQLite database file (default data/app.db)
  -users path   users CSV file for load (default data/users.csv)
  -products p   products CSV file for load (default data/data.csv)
  -out dir      export directory (default data/export)
  -u username   admin username for create-admin
  -e email      admin email for create-admin
`

func main() {
	fs := flag.NewFlagSet("authadmin", flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	dbPath := fs.String("d", "data/app.db", "SQLite database file")
	usersCSV := fs.String("users", "data/users.csv", "users CSV file")
	productsCSV := fs.String("products", "data/data.csv", "products CSV file")
	exportDir := fs.String("out", "data/export", "export directory")
	adminUser := fs.String("u", "", "admin username")
	adminEmail := fs.String("e", "", "admin email")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	store, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	switch fs.Arg(0) {
	case "load":
		runLoad(ctx, store, *usersCSV, *productsCSV)
	case "export":
		runExport(ctx, store, *exportDir)
	case "create-admin":
		runCreateAdmin(ctx, store, *adminUser, *adminEmail)
	default:
		fs.Usage()
		os.Exit(2)
	}
}

func runLoad(ctx context.Context, store *sqlite.Storage, usersCSV, productsCSV string) {
	users, err := csvio.LoadUsers(ctx, store, usersCSV)
	if err != nil {
		fatalf("failed to load users: %v", err)
	}
	products, err := csvio.LoadProducts(ctx, store, productsCSV)
	if err != nil {
		fatalf("failed to load products: %v", err)
	}
	fmt.Printf("loaded %d users, %d products\n", users, products)
}

func runExport(ctx context.Context, store *sqlite.Storage, dir string) {
	usersPath, err := csvio.ExportUsers(ctx, store, dir)
	if err != nil {
		fatalf("failed to export users: %v", err)
	}
	fmt.Printf("exported users to %s\n", usersPath)

	productsPath, err := csvio.ExportProducts(ctx, store, dir)
	if err != nil {
		fatalf("failed to export products: %v", err)
	}
	fmt.Printf("exported products to %s\n", productsPath)
}

func runCreateAdmin(ctx context.Context, store *sqlite.Storage, username, email string) {
	username = validation.NormalizeIdentifier(username)
	email = validation.NormalizeIdentifier(email)

	if err := validation.ValidateUsername(username); err != nil {
		fatalf("invalid username: %v", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		fatalf("invalid email: %v", err)
	}

	password, err := readPassword("Admin password: ")
	if err != nil {
		fatalf("failed to read password: %v", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		fatalf("invalid password: %v", err)
	}

	confirm, err := readPassword("Repeat password: ")
	if err != nil {
		fatalf("failed to read password: %v", err)
	}
	if password != confirm {
		fatalf("passwords do not match")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("admin %q created with id %d\n", user.Username, user.ID)
}

// readPassword читает пароль из терминала без эха
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	pwBytes, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
