package httpserver

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"itemd/internal/config"
	"itemd/pkg/cfg"
)

const rootStatusText = "itemd is running"

// RegisterRoutes mounts the status routes at the root and the item routes
// under the configured prefix.
func RegisterRoutes(app *fiber.App, svc ItemService, conf *config.Config) {
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(rootStatusText) })
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("OK") })
	if cfg.IsDev() {
		app.Get("/debug/config", func(c *fiber.Ctx) error { return c.JSON(conf.Redacted()) })
	}

	base := itemsPath(conf.Server.RoutePrefix)
	log.Printf("[itemd] register endpoints under %s", base)

	app.Post(base, createItemHandler(svc))
	app.Get(base, listItemsHandler(svc))
	app.Delete(base+"/:id", deleteItemHandler(svc))
}
