package main

import (
	"log/slog"

	"comparo/internal/auth"
	"comparo/internal/catalog"
	"comparo/internal/domain"
	"comparo/internal/identity"
)

// seedFixtures loads a small dev dataset so the service is usable without
// Postgres: a couple of products with differing outbound URLs, plus an
// admin and a member account (password "password" for both).
func seedFixtures(
	products *catalog.MemoryStore,
	users *auth.MemoryUserStore,
	profiles *identity.MemoryProfileStore,
	log *slog.Logger,
) {
	products.Seed(
		domain.Product{
			ID:             "prd_1001",
			Slug:           "fridge-5star",
			Name:           "5-Star Inverter Fridge",
			AffiliateURL:   "https://aff.example/x",
			MarketplaceURL: "https://market.example/fridge-5star",
		},
		domain.Product{
			ID:             "prd_1002",
			Slug:           "washer-compact",
			Name:           "Compact Front-Load Washer",
			MarketplaceURL: "https://market.example/washer-compact",
		},
		domain.Product{
			ID:   "prd_1003",
			Slug: "aircon-quiet",
			Name: "Quiet Split Air Conditioner",
		},
	)

	hash, err := auth.HashPassword("password")
	if err != nil {
		log.Error("hash fixture password", "error", err)
		return
	}
	users.Seed(
		domain.User{ID: "usr_admin", Email: "admin@comparo.local", PasswordHash: hash, Role: domain.RoleAdmin},
		domain.User{ID: "usr_member", Email: "member@comparo.local", PasswordHash: hash, Role: domain.RoleMember},
	)
	profiles.SetRole("usr_admin", domain.RoleAdmin)
	profiles.SetRole("usr_member", domain.RoleMember)
}
