package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	OrderRepo        OrderRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	LedgerRepo       LedgerRepository
	NotificationRepo NotificationRepositoryFacade
	ConversationRepo ConversationRepository
	MessageRepo      MessageRepository
	ListingRepo      ServiceListingRepository
}
