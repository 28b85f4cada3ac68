package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	publicapp "github.com/snhrk2951/illumi-contest-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger               *log.Logger
	entryCommands        publicapp.EntryCommandService
	entryQueries         publicapp.EntryQueryService
	failedNotifications  *mongo.Collection
	httpClient           *http.Client
	messengerEndpoint    string
	messengerDestination string
	adminEntryBaseURL    string
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger               *log.Logger
	EntryCommands        publicapp.EntryCommandService
	EntryQueries         publicapp.EntryQueryService
	FailedNotifications  *mongo.Collection
	HTTPClient           *http.Client
	MessengerEndpoint    string
	MessengerDestination string
	AdminEntryBaseURL    string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Handler{
		logger:               cfg.Logger,
		entryCommands:        cfg.EntryCommands,
		entryQueries:         cfg.EntryQueries,
		failedNotifications:  cfg.FailedNotifications,
		httpClient:           httpClient,
		messengerEndpoint:    cfg.MessengerEndpoint,
		messengerDestination: cfg.MessengerDestination,
		adminEntryBaseURL:    cfg.AdminEntryBaseURL,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/entries", h.entryListHandler())
	r.With(authMiddleware).Post("/entries", h.entryCreateHandler())
	r.With(authMiddleware).Get("/entries/me", h.entryMineHandler())
	r.With(authMiddleware).Patch("/entries/me", h.entryUpdateHandler())
	r.With(authMiddleware).Delete("/entries/me", h.entryWithdrawHandler())
	r.With(authMiddleware).Post("/entries/me/submit", h.entrySubmitHandler())
	r.With(authMiddleware).Post("/entries/me/photos", h.entryPhotoCreateHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())
}
