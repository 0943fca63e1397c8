package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/oksasatya/shop-admin-dashboard/config"
	"github.com/oksasatya/shop-admin-dashboard/internal/application"
	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
	mongoinfra "github.com/oksasatya/shop-admin-dashboard/internal/infrastructure/mongo"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
	"github.com/oksasatya/shop-admin-dashboard/pkg/validation"
)

// seed creates a confirmed admin account, or promotes and confirms an
// existing one with the same email. The password comes from ADMIN_PASSWORD
// or an interactive prompt.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	name := flag.String("name", "Admin", "display name for a new account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	if cfg.StoreDriver != "mongo" {
		logger.Fatal("seeding needs STORE_DRIVER=mongo; the memory store does not outlive this process")
	}
	addr := application.NormalizeEmail(*email)
	if addr == "" {
		logger.Fatal("admin email required (-email or ADMIN_EMAIL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := mongoinfra.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalf("failed to connect to mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	accounts, err := mongoinfra.NewAccountRepository(ctx, client.Database(cfg.MongoDB))
	if err != nil {
		logger.Fatalf("accounts collection: %v", err)
	}

	existing, err := accounts.FindByEmail(ctx, addr)
	switch {
	case err == nil:
		yes := true
		if _, err := accounts.Update(ctx, existing.ID, repo.AccountPatch{IsAdmin: &yes, EmailConfirmed: &yes}); err != nil {
			logger.Fatalf("promote %s: %v", addr, err)
		}
		fmt.Printf("promoted existing account: id=%s email=%s\n", existing.ID, addr)
		return
	case !errors.Is(err, repo.ErrNotFound):
		logger.Fatalf("lookup %s: %v", addr, err)
	}

	password, err := readPassword()
	if err != nil {
		logger.Fatalf("password: %v", err)
	}
	hash, err := helpers.NewBcryptHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		logger.Fatalf("failed to hash password: %v", err)
	}
	now := time.Now().UTC()
	a := &entity.Account{
		Name:           strings.TrimSpace(*name),
		Email:          addr,
		PasswordHash:   hash,
		IsAdmin:        true,
		EmailConfirmed: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := accounts.Create(ctx, a); err != nil {
		logger.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", a.ID, addr)
}

func readPassword() (string, error) {
	if p := os.Getenv("ADMIN_PASSWORD"); p != "" {
		return checkPassword(p)
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("set ADMIN_PASSWORD when stdin is not a terminal")
	}
	fmt.Print("Admin password: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return checkPassword(string(first))
}

func checkPassword(p string) (string, error) {
	if utf8.RuneCountInString(p) < validation.PasswordMinChars || len(p) > validation.PasswordMaxBytes {
		return "", errors.New("password must be 6 to 72 characters (at most 72 bytes)")
	}
	return p, nil
}
