package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/uoyyy/salon-krasotok/internal/controller/state"
	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

// Handler содержит зависимости для обработки callback queries
type Handler struct {
	UserService         *service.UserService
	CatalogService      *service.CatalogService
	AvailabilityService *service.AvailabilityService
	RecordService       *service.RecordService
	StateManager        *state.Manager
	Logger              *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	catalogService *service.CatalogService,
	availabilityService *service.AvailabilityService,
	recordService *service.RecordService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		UserService:         userService,
		CatalogService:      catalogService,
		AvailabilityService: availabilityService,
		RecordService:       recordService,
		StateManager:        stateManager,
		Logger:              logger,
	}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h)
}
