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

// pendingService implements PendingSvcFacade on top of the pending repository.
type pendingService struct {
	pendingRepo portsrepo.PendingRepository
}

// NewPendingService creates a new instance of pendingService.
func NewPendingService(pendingRepo portsrepo.PendingRepository) portssvc.PendingSvcFacade {
	return &pendingService{pendingRepo: pendingRepo}
}

func (s *pendingService) ListPending(ctx context.Context, userID string, page int) ([]domain.PendingItem, int, error) {
	p := pagination.Resolve(page)

	total, err := s.pendingRepo.CountPendingItems(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pending items: %w", err)
	}

	items, err := s.pendingRepo.FindPendingItems(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending items: %w", err)
	}
	return items, total, nil
}

func (s *pendingService) SearchPending(ctx context.Context, userID, text string, page int) ([]domain.PendingItem, int, error) {
	p := pagination.Resolve(page)

	items, total, err := s.pendingRepo.SearchPendingItems(ctx, userID, text, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search pending items: %w", err)
	}
	if total == 0 {
		return nil, 0, apperrors.ErrNotFound
	}
	return items, total, nil
}

func (s *pendingService) GetPending(ctx context.Context, userID, pendingID string) (*domain.PendingItem, error) {
	return s.pendingRepo.FindPendingItemByID(ctx, userID, pendingID)
}

func (s *pendingService) AddPending(ctx context.Context, userID string, req dto.PendingRequest) (*domain.PendingItem, error) {
	item := domain.PendingItem{
		PendingID:        uuid.NewString(),
		Kind:             domain.PendingKind(req.Kind),
		Title:            req.Title,
		AuthorOrDirector: req.AuthorOrDirector,
		Description:      req.Description,
	}

	if err := s.pendingRepo.SavePendingItem(ctx, userID, item); err != nil {
		return nil, fmt.Errorf("failed to save pending item: %w", err)
	}
	return &item, nil
}

func (s *pendingService) UpdatePending(ctx context.Context, userID, pendingID string, req dto.PendingRequest) (*domain.PendingItem, error) {
	item := domain.PendingItem{
		PendingID:        pendingID,
		Kind:             domain.PendingKind(req.Kind),
		Title:            req.Title,
		AuthorOrDirector: req.AuthorOrDirector,
		Description:      req.Description,
	}

	if err := s.pendingRepo.UpdatePendingItem(ctx, userID, item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *pendingService) DeletePending(ctx context.Context, userID, pendingID string) error {
	return s.pendingRepo.DeletePendingItem(ctx, userID, pendingID)
}

// MoveToBooks turns a pending item into a catalog book atomically. The book
// fields come from the request so the user can complete what the pending
// entry only sketched.
func (s *pendingService) MoveToBooks(ctx context.Context, userID string, req dto.MovimientoRequest) error {
	if err := validateConsumptionDate(req.Date); err != nil {
		return err
	}

	book := domain.Book{
		BookID:      uuid.NewString(),
		Date:        req.Date,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Description: req.Description,
	}

	return s.pendingRepo.MovePendingToBook(ctx, userID, req.PendingID, book)
}
