package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/uams/internal/config"
	"github.com/example/uams/internal/handlers"
	"github.com/example/uams/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	links := services.NewLinkService(db)
	users := services.NewUserService(db, cfg.UserDeletePolicy)
	addresses := services.NewAddressService(db)
	orders := services.NewOrderService(db, links)
	products := services.NewProductService(db)

	userHandler := handlers.NewUserHandler(users, links, orders)
	addressHandler := handlers.NewAddressHandler(addresses, links)
	orderHandler := handlers.NewOrderHandler(orders)
	productHandler := handlers.NewProductHandler(products)

	api := app.Group("/api")

	userRoutes := api.Group("/users")
	userRoutes.Get("/", userHandler.List)
	userRoutes.Post("/", userHandler.Create)
	userRoutes.Get("/lookup", userHandler.Lookup)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Put("/:id", userHandler.Update)
	userRoutes.Delete("/:id", userHandler.Delete)
	userRoutes.Get("/:id/orders", userHandler.ListOrders)
	userRoutes.Get("/:id/addresses", userHandler.ListAddresses)
	userRoutes.Post("/:id/addresses/:addressId", userHandler.AttachAddress)
	userRoutes.Delete("/:id/addresses/:addressId", userHandler.DetachAddress)

	addressRoutes := api.Group("/addresses")
	addressRoutes.Get("/", addressHandler.List)
	addressRoutes.Post("/", addressHandler.Create)
	addressRoutes.Get("/:id", addressHandler.Get)
	addressRoutes.Put("/:id", addressHandler.Update)
	addressRoutes.Delete("/:id", addressHandler.Delete)
	addressRoutes.Get("/:id/users", addressHandler.ListUsers)

	orderRoutes := api.Group("/orders")
	orderRoutes.Get("/", orderHandler.List)
	orderRoutes.Post("/", orderHandler.Create)
	orderRoutes.Get("/:id", orderHandler.Get)
	orderRoutes.Put("/:id", orderHandler.Update)
	orderRoutes.Delete("/:id", orderHandler.Delete)

	productRoutes := api.Group("/products")
	productRoutes.Get("/", productHandler.List)
	productRoutes.Post("/", productHandler.Create)
	productRoutes.Get("/:id", productHandler.Get)
	productRoutes.Put("/:id", productHandler.Update)
	productRoutes.Delete("/:id", productHandler.Delete)
}
