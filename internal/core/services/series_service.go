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

// seriesService implements SeriesSvcFacade on top of the series repository.
type seriesService struct {
	seriesRepo portsrepo.SeriesRepository
}

// NewSeriesService creates a new instance of seriesService.
func NewSeriesService(seriesRepo portsrepo.SeriesRepository) portssvc.SeriesSvcFacade {
	return &seriesService{seriesRepo: seriesRepo}
}

func (s *seriesService) ListSeries(ctx context.Context, userID string, page int) ([]domain.Series, int, error) {
	p := pagination.Resolve(page)

	total, err := s.seriesRepo.CountSeries(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count series: %w", err)
	}

	series, err := s.seriesRepo.FindSeries(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list series: %w", err)
	}
	return series, total, nil
}

func (s *seriesService) SearchSeries(ctx context.Context, userID, text string, page int) ([]domain.Series, int, error) {
	p := pagination.Resolve(page)

	series, total, err := s.seriesRepo.SearchSeries(ctx, userID, text, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search series: %w", err)
	}
	if total == 0 {
		return nil, 0, apperrors.ErrNotFound
	}
	return series, total, nil
}

func (s *seriesService) GetSeries(ctx context.Context, userID, seriesID string) (*domain.Series, error) {
	return s.seriesRepo.FindSeriesByID(ctx, userID, seriesID)
}

func (s *seriesService) AddSeries(ctx context.Context, userID string, req dto.SeriesRequest) (*domain.Series, error) {
	if err := validateConsumptionDate(req.Date); err != nil {
		return nil, err
	}

	series := domain.Series{
		SeriesID:    uuid.NewString(),
		Date:        req.Date,
		Title:       req.Title,
		Director:    req.Director,
		Description: req.Description,
		Rating:      req.Rating,
	}

	if err := s.seriesRepo.SaveSeries(ctx, userID, series); err != nil {
		return nil, fmt.Errorf("failed to save series: %w", err)
	}
	return &series, nil
}

func (s *seriesService) UpdateSeries(ctx context.Context, userID, seriesID string, req dto.SeriesRequest) (*domain.Series, error) {
	if err := validateConsumptionDate(req.Date); err != nil {
		return nil, err
	}

	series := domain.Series{
		SeriesID:    seriesID,
		Date:        req.Date,
		Title:       req.Title,
		Director:    req.Director,
		Description: req.Description,
		Rating:      req.Rating,
	}

	if err := s.seriesRepo.UpdateSeries(ctx, userID, series); err != nil {
		return nil, err
	}
	return &series, nil
}

func (s *seriesService) DeleteSeries(ctx context.Context, userID, seriesID string) error {
	return s.seriesRepo.DeleteSeries(ctx, userID, seriesID)
}
