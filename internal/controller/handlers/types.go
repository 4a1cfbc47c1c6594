package handlers

import (
	"github.com/uoyyy/salon-krasotok/internal/controller/callbacks"
	"github.com/uoyyy/salon-krasotok/internal/controller/state"
	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	catalogService  *service.CatalogService
	stateManager    *state.Manager
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	catalogService *service.CatalogService,
	stateManager *state.Manager,
	callbackHandler *callbacks.Handler,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		catalogService:  catalogService,
		stateManager:    stateManager,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}
