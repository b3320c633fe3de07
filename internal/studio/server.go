package studio

import (
	"context"
	"log/slog"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/console"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/studio/common"
	"github.com/gofiber/fiber/v2"
)

type Server struct {
	app      *fiber.App
	console  *console.Service
	provider string
	port     int
	log      *slog.Logger
}

// NewServer wires the HTTP surface over an already connected console service.
func NewServer(svc *console.Service, provider string, port int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "studio")

	server := &Server{
		app:      common.NewApp(TemplatesFS, log),
		console:  svc,
		provider: provider,
		port:     port,
		log:      log,
	}
	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.app.Get("/", s.handleIndex)

	api := s.app.Group("/api")
	api.Get("/tables", s.handleGetTables)
	api.Get("/tables/:name", s.handleGetTableData)
	api.Get("/tables/:name/rows/:id/form", s.handleGetEditForm)
	api.Put("/tables/:name/rows/:id", s.handleUpdateRow)
	api.Delete("/tables/:name/rows/:id", s.handleDeleteRow)

	api.Get("/reports", s.handleListReports)
	api.Get("/reports/:name", s.handleRunReport)

	api.Get("/cascade", s.handleCascadeOverview)
	api.Post("/cascade/:id", s.handleCascadeDelete)

	api.Get("/views/fleet", s.handleGetFleet)
	api.Put("/views/fleet/:id", s.handleUpdateFleetWeight)
	api.Get("/views/costs", s.handleGetVehicleCosts)
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start(ctx context.Context, openBrowser bool) error {
	return common.StartServer(ctx, s.app, &s.port, "Studio", openBrowser)
}
