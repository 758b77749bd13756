package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)
	chatRepo := newPgxChatRepository(dbPool)
	listingRepo := newPgxListingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		OrderRepo:        orderRepo,
		TransactionRepo:  transactionRepo,
		LedgerRepo:       ledgerRepo,
		NotificationRepo: notificationRepo,
		ConversationRepo: chatRepo,
		MessageRepo:      chatRepo,
		ListingRepo:      listingRepo,
	}
}
