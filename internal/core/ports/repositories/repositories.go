package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager          TransactionManager
	UserRepo           UserReader
	AccountRepo        AccountRepositoryFacade
	CategoryRepo       CategoryReader
	CurrencyRepo       CurrencyReader
	BudgetRepo         BudgetRepository
	PlannedPaymentRepo PlannedPaymentReader
	TransactionRepo    TransactionRepositoryFacade
	ExchangeRateRepo   ExchangeRateReader
}
