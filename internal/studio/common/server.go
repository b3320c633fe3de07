package common

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
)

// NewApp creates a Fiber app rendering templates from templatesFS, with
// request ids and request logging installed.
func NewApp(templatesFS fs.FS, log *slog.Logger) *fiber.App {
	engine := html.NewFileSystem(http.FS(templatesFS), ".html")
	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(log))
	return app
}

// RequestLogger logs one line per request once the handler chain has run.
func RequestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		level := slog.LevelDebug
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(c.UserContext(), level, "request",
			"id", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}

// StartServer finds an available port, prints the URL, optionally opens a
// browser, and serves until ctx is cancelled.
func StartServer(ctx context.Context, app *fiber.App, port *int, name string, openBrowser bool) error {
	available := FindAvailablePort(*port)
	if available != *port {
		fmt.Printf("⚠️  Port %d is in use, using port %d instead\n", *port, available)
		*port = available
	}

	url := fmt.Sprintf("http://localhost:%d", *port)
	fmt.Printf("🚀 TableDesk %s starting on %s\n", name, url)

	if openBrowser {
		go OpenBrowser(url)
	}

	go func() {
		<-ctx.Done()
		app.ShutdownWithTimeout(5 * time.Second)
	}()

	return app.Listen(fmt.Sprintf(":%d", *port))
}
