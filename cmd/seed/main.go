package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/AcasisDev/siteguard-hub/config"
	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
	pginfra "github.com/AcasisDev/siteguard-hub/internal/infrastructure/postgres"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
)

const demoPassword = "password123"

var demoUsers = []struct {
	email, name string
}{
	{"admin@demo.com", "Demo Super Admin"},
	{"ops.admin@demo.io", "Demo Admin"},
	{"editor@demo.com", "Demo Editor"},
	{"viewer@demo.com", "Demo Viewer"},
}

// Seeds the demo accounts with the roles the sign-up worker would give them,
// plus one website with a domain and a server owned by the first account.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Hour)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	roles := pginfra.NewRoleRepository(pool)

	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var ownerID string
	for _, d := range demoUsers {
		u, err := users.GetByEmail(ctx, d.email)
		if errors.Is(err, repo.ErrNotFound) {
			u = &entity.User{Email: d.email, Password: hash}
			err = users.Create(ctx, u)
		}
		if err != nil {
			log.Fatalf("seed user %s: %v", d.email, err)
		}
		if err := profiles.Upsert(ctx, &entity.Profile{UserID: u.ID, DisplayName: d.name}); err != nil {
			log.Fatalf("seed profile %s: %v", d.email, err)
		}
		role := application.DemoRoleFor(d.email)
		if err := roles.Assign(ctx, u.ID, role); err != nil {
			log.Fatalf("assign role %s: %v", d.email, err)
		}
		if ownerID == "" {
			ownerID = u.ID
		}
		fmt.Printf("seeded user: id=%s email=%s role=%s password=%s\n", u.ID, d.email, role.AppRole(), demoPassword)
	}

	websites := pginfra.NewWebsiteRepository(pool)
	existing, err := websites.List(ctx, repo.ListFilter{Search: "demo-shop.example", Limit: 1})
	if err != nil {
		log.Fatalf("list websites: %v", err)
	}
	if len(existing) > 0 {
		fmt.Println("demo website already present")
		return
	}

	w := &entity.Website{UserID: ownerID, Name: "Demo Shop", Domain: "demo-shop.example", Provider: "Hetzner", ServerIP: "203.0.113.10", Status: entity.WebsiteActive}
	if err := websites.Create(ctx, w); err != nil {
		log.Fatalf("seed website: %v", err)
	}
	now := time.Now().UTC()
	d := &entity.Domain{
		UserID: ownerID, WebsiteID: w.ID, DomainName: w.Domain, Registrar: "Example Registrar",
		RegisterDate: now.AddDate(-1, 0, 0), ExpireDate: now.AddDate(0, 0, 20),
		Nameservers: []string{"ns1.example.net", "ns2.example.net"}, Status: entity.DomainActive,
	}
	if err := pginfra.NewDomainRepository(pool).Create(ctx, d); err != nil {
		log.Fatalf("seed domain: %v", err)
	}
	s := &entity.Server{UserID: ownerID, WebsiteID: w.ID, Provider: "Hetzner", IPAddress: w.ServerIP, Status: entity.ServerOnline}
	if err := pginfra.NewServerRepository(pool).Create(ctx, s); err != nil {
		log.Fatalf("seed server: %v", err)
	}
	fmt.Printf("seeded website %s with domain and server\n", w.ID)
}
