package services

import (
	portsrepo "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/repositories"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/revocation"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	mailer portssvc.EmailDispatcher,
	denylist *revocation.Store,
	analytics *utils.PosthogClientWrapper,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, cfg, mailer, analytics)
	container.TokenService = NewTokenService(cfg, denylist)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	container.Book = NewBookService(repos.BookRepo)
	container.Movie = NewMovieService(repos.MovieRepo)
	container.Series = NewSeriesService(repos.SeriesRepo)
	container.Pending = NewPendingService(repos.PendingRepo)
	container.Stats = NewStatsService(repos.StatsRepo)

	return container
}

// Compile-time interface implementation checks.
var (
	_ portssvc.UserSvcFacade    = (*userService)(nil)
	_ portssvc.TokenSvcFacade   = (*tokenService)(nil)
	_ portssvc.BookSvcFacade    = (*bookService)(nil)
	_ portssvc.MovieSvcFacade   = (*movieService)(nil)
	_ portssvc.SeriesSvcFacade  = (*seriesService)(nil)
	_ portssvc.PendingSvcFacade = (*pendingService)(nil)
	_ portssvc.StatsSvcFacade   = (*statsService)(nil)
)
