package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	UserRepo    UserRepositoryFacade
	BookRepo    BookRepository
	MovieRepo   MovieRepository
	SeriesRepo  SeriesRepository
	PendingRepo PendingRepository
	StatsRepo   StatsRepository
}
