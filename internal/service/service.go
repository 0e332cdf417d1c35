package service

import (
	"errors"

	"github.com/meusuper/crm-backend/internal/config"
	"github.com/meusuper/crm-backend/internal/notification"
	"github.com/meusuper/crm-backend/internal/socket"
	"github.com/meusuper/crm-backend/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNoActiveDrag       = errors.New("no deal is being dragged")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth      AuthService
	User      UserService
	Pipeline  PipelineService
	Deal      DealService
	Drag      DragController
	Selection SelectionService
	Contact   ContactService
	Activity  ActivityService

	Broadcaster *socket.Broadcaster
	NotifSvc    *notification.Service
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Store       *store.Store
	NotifSvc    *notification.Service
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	dealService := NewDealService(deps.Store, deps.NotifSvc, deps.Broadcaster)

	return &Services{
		Auth:        NewAuthService(deps.Config, deps.Store),
		User:        NewUserService(deps.Store),
		Pipeline:    NewPipelineService(deps.Store),
		Deal:        dealService,
		Drag:        NewDragController(deps.Store, dealService),
		Selection:   NewSelectionService(deps.Store),
		Contact:     NewContactService(deps.Store, deps.Broadcaster),
		Activity:    NewActivityService(deps.Store, deps.NotifSvc, deps.Broadcaster),
		Broadcaster: deps.Broadcaster,
		NotifSvc:    deps.NotifSvc,
	}
}
