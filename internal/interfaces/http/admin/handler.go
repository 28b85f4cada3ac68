package admin

import (
	"log"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/snhrk2951/illumi-contest-services/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger       *log.Logger
	entryService adminapp.EntryService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger       *log.Logger
	EntryService adminapp.EntryService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:       cfg.Logger,
		entryService: cfg.EntryService,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/entries", h.entryListHandler())
	r.Get("/entries/{id}", h.entryDetailHandler())
	r.Post("/entries/{id}/approve", h.entryApproveHandler())
	r.Post("/entries/{id}/reject", h.entryRejectHandler())
	r.Delete("/entries/{id}", h.entryDeleteHandler())
}
