package pgsql

import (
	portsrepo "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		BookRepo:    newPgxBookRepository(dbPool),
		MovieRepo:   newPgxMovieRepository(dbPool),
		SeriesRepo:  newPgxSeriesRepository(dbPool),
		PendingRepo: newPgxPendingRepository(dbPool),
		StatsRepo:   newPgxStatsRepository(dbPool),
	}
}
