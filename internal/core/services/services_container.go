package services

import (
	portsgw "github.com/workhive/workhive_backend/internal/core/ports/gateway"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/utils/locking"
	"github.com/workhive/workhive_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gw portsgw.PaymentGateway, events portssvc.EventBus) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Events: events}

	// One lock table serializes transitions per order across the order and
	// payment services.
	orderLocks := locking.NewKeyedMutex()

	container.User = NewUserService(repos.UserRepo)
	container.Listing = NewListingService(repos.ListingRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo, events)

	container.Order = NewOrderService(
		repos.OrderRepo,
		repos.TransactionRepo,
		repos.LedgerRepo,
		repos.ListingRepo,
		repos.ConversationRepo,
		gw,
		orderLocks,
		container.Notification,
	)
	container.Payment = NewPaymentService(
		repos.OrderRepo,
		repos.TransactionRepo,
		repos.LedgerRepo,
		gw,
		orderLocks,
		container.Notification,
	)
	container.Chat = NewChatService(
		repos.ConversationRepo,
		repos.MessageRepo,
		repos.OrderRepo,
		container.Notification,
		NewKeywordRiskAnalyzer(),
	)

	return container
}
