package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/rogerio-castellano/product-console/internal/console"
	"github.com/rogerio-castellano/product-console/internal/session"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds what the console handlers need.
type Server struct {
	controller *console.Controller
	actions    map[string]console.Action
	store      session.Store
	ttl        time.Duration
	logger     *zap.Logger
	page       *template.Template
}

// NewServer wires the console handlers to a controller and a session store.
func NewServer(controller *console.Controller, store session.Store, ttl time.Duration, logger *zap.Logger) (*Server, error) {
	page, err := template.New("console.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/console.html")
	if err != nil {
		return nil, fmt.Errorf("parse console template: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		controller: controller,
		actions:    controller.Actions(),
		store:      store,
		ttl:        ttl,
		logger:     logger,
		page:       page,
	}, nil
}
