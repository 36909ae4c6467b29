// Command seed provisions a fresh installation: the admin user, the fee
// settings singleton with its default rates, the cash wallet and the PIN.
package main

import (
	"log"
	"os"

	"kahera/internal/config"
	"kahera/internal/models"
	"kahera/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPin := os.Getenv("ADMIN_PIN")
	if adminEmail == "" || adminPassword == "" || adminPin == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_PIN must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	userRepo := repositories.NewUserRepository(repositories.DB)
	ledgerRepo := repositories.NewLedgerRepository(repositories.DB)
	feeRepo := repositories.NewFeeSettingsRepository(repositories.DB)

	// Cash wallet and fee settings are singletons created with defaults on
	// first access.
	if _, err := ledgerRepo.GetCashWallet(); err != nil {
		log.Fatalf("failed to create cash wallet: %v", err)
	}
	if _, err := feeRepo.Get(); err != nil {
		log.Fatalf("failed to create fee settings: %v", err)
	}

	if _, err := userRepo.GetByEmail(adminEmail); err == nil {
		log.Println("admin user already exists")
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
		admin := &models.User{
			Name:     config.GetEnv("ADMIN_NAME", "Administrator"),
			Email:    adminEmail,
			Password: string(hashed),
			Role:     models.RoleAdmin,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatalf("failed to create admin user: %v", err)
		}
		log.Printf("admin user %s created", adminEmail)
	}

	if _, err := userRepo.GetPinSetting(); err == repositories.ErrPinNotSet {
		hashedPin, err := bcrypt.GenerateFromPassword([]byte(adminPin), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash pin: %v", err)
		}
		if err := userRepo.SavePinSetting(&models.PinSetting{PinHash: string(hashedPin)}); err != nil {
			log.Fatalf("failed to save pin: %v", err)
		}
		log.Println("pin configured")
	} else if err != nil {
		log.Fatalf("failed to check pin: %v", err)
	} else {
		log.Println("pin already configured")
	}

	log.Println("seeding complete")
}
