// Package server serves printed invoices to the browser so they can be sent
// to the print dialog.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/rs/zerolog"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/money"
	"github.com/andy/agencyflow/internal/service"
)

// Invoices is the read side of the invoice service used by the server
type Invoices interface {
	GetIssued(ctx context.Context, number string) (*domain.IssuedInvoice, error)
	ListIssued(ctx context.Context, clientID *string) ([]*domain.IssuedInvoice, error)
}

type Server struct {
	app      *fiber.App
	invoices Invoices
	log      zerolog.Logger
}

// New builds the routes without listening
func New(invoices Invoices, log zerolog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           10 * time.Second,
			Views:                 newViews(),
		}),
		invoices: invoices,
		log:      log,
	}

	s.app.Use(s.requestLogger())
	s.app.Get("/", s.index)
	s.app.Get("/invoices/:number", s.invoicePage)
	s.app.Get("/api/invoices", s.listJSON)
	return s
}

// App exposes the fiber app for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks until the server stops
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("invoice server listening")
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for open requests
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		s.log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}

//go:embed views/*.html
var viewFS embed.FS

func newViews() *html.Engine {
	dir, err := fs.Sub(viewFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(dir), ".html")
	engine.AddFunc("money", money.FormatINR)
	return engine
}

func (s *Server) index(c *fiber.Ctx) error {
	invoices, err := s.invoices.ListIssued(c.UserContext(), nil)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list invoices")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list invoices")
	}

	return c.Render("index", fiber.Map{
		"Invoices": invoices,
	})
}

func (s *Server) invoicePage(c *fiber.Ctx) error {
	inv, err := s.invoices.GetIssued(c.UserContext(), c.Params("number"))
	if errors.Is(err, service.ErrInvoiceNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}
	if err != nil {
		s.log.Error().Err(err).Str("number", c.Params("number")).Msg("failed to load invoice")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load invoice")
	}

	c.Type("html", "utf-8")
	return c.SendString(inv.HTML)
}

func (s *Server) listJSON(c *fiber.Ctx) error {
	invoices, err := s.invoices.ListIssued(c.UserContext(), nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list invoices",
		})
	}

	out := make([]fiber.Map, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, fiber.Map{
			"invoiceNumber": inv.InvoiceNumber,
			"clientId":      inv.ClientID,
			"businessName":  inv.BusinessName,
			"template":      inv.Template,
			"invoiceDate":   inv.InvoiceDate,
			"total":         inv.Total,
			"paid":          inv.Paid,
			"due":           inv.Due,
		})
	}
	return c.JSON(out)
}
