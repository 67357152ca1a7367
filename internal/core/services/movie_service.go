package services

import (
	"context"
	"fmt"

	"github.com/biblioteca-multimedia/bm_backend/internal/apperrors"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portsrepo "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/repositories"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

// movieService implements MovieSvcFacade on top of the movie repository.
type movieService struct {
	movieRepo portsrepo.MovieRepository
}

// NewMovieService creates a new instance of movieService.
func NewMovieService(movieRepo portsrepo.MovieRepository) portssvc.MovieSvcFacade {
	return &movieService{movieRepo: movieRepo}
}

func (s *movieService) ListMovies(ctx context.Context, userID string, page int) ([]domain.Movie, int, error) {
	p := pagination.Resolve(page)

	total, err := s.movieRepo.CountMovies(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	movies, err := s.movieRepo.FindMovies(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, total, nil
}

func (s *movieService) SearchMovies(ctx context.Context, userID, text string, page int) ([]domain.Movie, int, error) {
	p := pagination.Resolve(page)

	movies, total, err := s.movieRepo.SearchMovies(ctx, userID, text, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search movies: %w", err)
	}
	if total == 0 {
		return nil, 0, apperrors.ErrNotFound
	}
	return movies, total, nil
}

func (s *movieService) GetMovie(ctx context.Context, userID, movieID string) (*domain.Movie, error) {
	return s.movieRepo.FindMovieByID(ctx, userID, movieID)
}

func (s *movieService) AddMovie(ctx context.Context, userID string, req dto.MovieRequest) (*domain.Movie, error) {
	if err := validateConsumptionDate(req.Date); err != nil {
		return nil, err
	}

	movie := domain.Movie{
		MovieID:     uuid.NewString(),
		Date:        req.Date,
		Title:       req.Title,
		Director:    req.Director,
		Description: req.Description,
		Rating:      req.Rating,
	}

	if err := s.movieRepo.SaveMovie(ctx, userID, movie); err != nil {
		return nil, fmt.Errorf("failed to save movie: %w", err)
	}
	return &movie, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, userID, movieID string, req dto.MovieRequest) (*domain.Movie, error) {
	if err := validateConsumptionDate(req.Date); err != nil {
		return nil, err
	}

	movie := domain.Movie{
		MovieID:     movieID,
		Date:        req.Date,
		Title:       req.Title,
		Director:    req.Director,
		Description: req.Description,
		Rating:      req.Rating,
	}

	if err := s.movieRepo.UpdateMovie(ctx, userID, movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, userID, movieID string) error {
	return s.movieRepo.DeleteMovie(ctx, userID, movieID)
}
