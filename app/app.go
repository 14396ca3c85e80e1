package app

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"pizzeria-manager/app/controller"
	"pizzeria-manager/app/router"
	"pizzeria-manager/db"
	"pizzeria-manager/repository"
	"pizzeria-manager/scheduling"
	"pizzeria-manager/service"
)

const defaultTimezone = "Europe/Rome"

// Initialize initializes the application and registers its routes on mux
func Initialize(mux *http.ServeMux) error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	location, err := shopLocation()
	if err != nil {
		return err
	}

	// Drive is optional: without credentials receipts are not archived and the logo is local only
	var driveService service.DriveServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		drive, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		driveService = drive
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, Drive archive disabled")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + Port()
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository()
	settingsRepo := repository.NewSettingsRepository()
	orderRepo := repository.NewOrderRepository()

	// Initialize services
	checkoutService := service.NewCheckoutService(catalogRepo, settingsRepo, orderRepo, location)
	slotService := service.NewSlotService(settingsRepo, orderRepo, slotMinutes(), location)
	branding := service.NewBrandingService(driveService, os.Getenv("BRANDING_LOGO_PATH"), os.Getenv("BRANDING_LOGO_DRIVE_FILE_ID"))
	receiptService := service.NewReceiptService(
		orderRepo,
		settingsRepo,
		branding,
		driveService,
		os.Getenv("DRIVE_RECEIPTS_FOLDER_ID"),
		baseURL,
		location,
	)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:  controller.NewCatalogController(catalogRepo),
		Checkout: controller.NewCheckoutController(checkoutService),
		Order:    controller.NewOrderController(orderRepo, slotService, receiptService),
		Slot:     controller.NewSlotController(slotService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(mux, controllers)

	return nil
}

// Port returns the listen port from PORT, without a leading colon
func Port() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// PORT from Render doesn't include the colon, local .env files sometimes do
	if port[0] == ':' {
		port = port[1:]
	}
	return port
}

func shopLocation() (*time.Location, error) {
	name := os.Getenv("SHOP_TIMEZONE")
	if name == "" {
		name = defaultTimezone
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_TIMEZONE %q: %w", name, err)
	}
	return location, nil
}

func slotMinutes() int {
	value := os.Getenv("SLOT_MINUTES")
	if value == "" {
		return scheduling.DefaultSlotMinutes
	}
	minutes, err := strconv.Atoi(value)
	if err != nil || minutes <= 0 {
		log.Printf("⚠️  Invalid SLOT_MINUTES=%q, using %d", value, scheduling.DefaultSlotMinutes)
		return scheduling.DefaultSlotMinutes
	}
	return minutes
}
