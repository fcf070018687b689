package session

import (
	"context"

	"hailsim/internal/domain"
)

// SeedDrivers are the pre-provisioned driver accounts created on first
// run. Passwords are demo-only fixtures.
var SeedDrivers = []domain.User{
	{
		Name:        "Ahmad Rahman",
		Email:       "driver1@test.com",
		Password:    "driver123",
		Role:        domain.RoleDriver,
		Rating:      4.8,
		Car:         "Toyota Vios",
		PlateNumber: "WXY 1234",
		Phone:       "+60 12-345 6789",
	},
	{
		Name:        "Siti Aminah",
		Email:       "driver2@test.com",
		Password:    "driver456",
		Role:        domain.RoleDriver,
		Rating:      4.9,
		Car:         "Honda City",
		PlateNumber: "VBJ 5678",
		Phone:       "+60 13-987 6543",
	},
}

// EnsureSeedDriverAccounts creates each seed account that is not already
// present. Existing accounts are never overwritten, so the call is
// idempotent.
func (g *Gate) EnsureSeedDriverAccounts(ctx context.Context) error {
	for i := range SeedDrivers {
		driver := SeedDrivers[i]
		exists, err := g.store.UserExists(ctx, driver.Email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := g.store.SaveUser(ctx, &driver); err != nil {
			return err
		}
		g.logger.Info("seed driver account created", "email", driver.Email)
	}
	return nil
}
