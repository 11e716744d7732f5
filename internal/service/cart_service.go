package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/errors"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/events"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/repository"
)

// Backend is the part of the store API the cart service needs.
// *clients.APIClient satisfies it.
type Backend interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error)
	CreateQuote(ctx context.Context, req *models.CreateQuoteRequest) (*models.Quote, error)
}

// CartService manages the terminal's sale and quote drafts and turns them
// into backend documents on checkout.
type CartService struct {
	drafts     repository.DraftRepository
	backend    Backend
	publisher  events.Publisher
	metrics    *metrics.Metrics
	taxRate    decimal.Decimal
	terminalID string
	logger     *logging.LoggerV2

	// mu serializes read-modify-write cycles on drafts.
	mu  sync.Mutex
	now func() time.Time
}

// NewCartService creates a new cart service.
func NewCartService(
	drafts repository.DraftRepository,
	backend Backend,
	publisher events.Publisher,
	m *metrics.Metrics,
	cfg *config.Config,
) *CartService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &CartService{
		drafts:     drafts,
		backend:    backend,
		publisher:  publisher,
		metrics:    m,
		taxRate:    cfg.Business.TaxRate,
		terminalID: cfg.TerminalID,
		logger:     logging.NewLoggerV2("cart-service"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// NewDraft opens an empty sale or quote draft. Sales default to a cash boleta.
func (s *CartService) NewDraft(ctx context.Context, req *models.CreateDraftRequest) (*models.DraftView, error) {
	if req.Kind == "" {
		req.Kind = models.DraftSale
	}
	if err := ValidateCreateDraftRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	draft := &models.Draft{
		ID:            uuid.NewString(),
		TerminalID:    s.terminalID,
		Kind:          req.Kind,
		Lines:         []models.LineItem{},
		ClientID:      req.ClientID,
		PaymentMethod: req.PaymentMethod,
		InvoiceType:   req.InvoiceType,
		ValidUntil:    req.ValidUntil,
		Notes:         req.Notes,
		Terms:         req.Terms,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if draft.Kind == models.DraftSale {
		if draft.PaymentMethod == "" {
			draft.PaymentMethod = models.PaymentCash
		}
		if draft.InvoiceType == "" {
			draft.InvoiceType = models.InvoiceBoleta
		}
	}

	if err := s.drafts.Create(ctx, draft); err != nil {
		s.logger.Error("Failed to create draft", logging.Fields{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("Draft opened", logging.Fields{"draft_id": draft.ID, "kind": draft.Kind})
	return s.view(draft), nil
}

// GetDraft returns a draft with its current totals.
func (s *CartService) GetDraft(ctx context.Context, id string) (*models.DraftView, error) {
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(draft), nil
}

// ListDrafts returns this terminal's open drafts.
func (s *CartService) ListDrafts(ctx context.Context) ([]*models.DraftView, error) {
	drafts, err := s.drafts.ListByTerminal(ctx, s.terminalID)
	if err != nil {
		return nil, err
	}
	views := make([]*models.DraftView, 0, len(drafts))
	for _, d := range drafts {
		views = append(views, s.view(d))
	}
	return views, nil
}

// AddProduct adds one unit of productID to the draft, fetching the product's
// current price and tax flag from the backend.
func (s *CartService) AddProduct(ctx context.Context, id string, productID int64) (*models.DraftView, error) {
	product, err := s.backend.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Price.IsNegative() {
		return nil, errors.NewValidationError("product", "product has a negative price")
	}

	return s.update(ctx, id, func(d *models.Draft) error {
		d.Lines = AddOrIncrement(d.Lines, CatalogItemFromProduct(product))
		return nil
	})
}

// SetQuantity changes a line's quantity. Zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, id string, productID int64, quantity int) (*models.DraftView, error) {
	return s.update(ctx, id, func(d *models.Draft) error {
		if _, ok := FindLine(d.Lines, productID); !ok {
			return fmt.Errorf("product %d in draft %s: %w", productID, d.ID, errors.ErrNotFound)
		}
		d.Lines = SetQuantity(d.Lines, productID, quantity)
		return nil
	})
}

// Totals computes the draft's subtotal, tax and total.
func (s *CartService) Totals(ctx context.Context, id string) (models.Totals, error) {
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return models.Totals{}, err
	}
	return Compute(draft.Lines, s.taxRate), nil
}

// DiscardDraft drops a draft without creating anything on the backend.
func (s *CartService) DiscardDraft(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.drafts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Draft discarded", logging.Fields{"draft_id": id})
	return nil
}

// Checkout creates the sale or quote on the backend. The draft is deleted
// only once the backend accepted it; on failure it stays for another attempt.
func (s *CartService) Checkout(ctx context.Context, id string) (*models.CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateCheckout(draft); err != nil {
		return nil, err
	}

	result := &models.CheckoutResult{
		DraftID: draft.ID,
		Kind:    draft.Kind,
		Totals:  Compute(draft.Lines, s.taxRate),
	}
	kind := string(draft.Kind)

	switch draft.Kind {
	case models.DraftQuote:
		result.Quote, err = s.backend.CreateQuote(ctx, buildQuoteRequest(draft))
	default:
		result.Sale, err = s.backend.CreateSale(ctx, buildSaleRequest(draft))
	}
	if err != nil {
		s.metrics.Checkouts.WithLabelValues(kind, "failed").Inc()
		s.logger.Error("Checkout failed", logging.Fields{
			"draft_id": draft.ID,
			"kind":     kind,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.metrics.Checkouts.WithLabelValues(kind, "succeeded").Inc()
	s.metrics.CheckoutTotal.WithLabelValues(kind).Add(result.Totals.Total.InexactFloat64())

	if err := s.drafts.Delete(ctx, draft.ID); err != nil {
		// Log but don't fail; the document exists on the backend.
		s.logger.Error("Failed to delete checked out draft", logging.Fields{
			"draft_id": draft.ID,
			"error":    err.Error(),
		})
	}

	if err := s.publisher.PublishCheckedOut(ctx, result); err != nil {
		s.logger.Error("Failed to publish checkout event", logging.Fields{
			"draft_id": draft.ID,
			"error":    err.Error(),
		})
	}

	s.logger.Info("Draft checked out", logging.Fields{
		"draft_id": draft.ID,
		"kind":     kind,
		"total":    result.Totals.Total.StringFixed(2),
	})
	return result, nil
}

func (s *CartService) update(ctx context.Context, id string, mutate func(*models.Draft) error) (*models.DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(draft); err != nil {
		return nil, err
	}

	draft.UpdatedAt = s.now()
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(draft), nil
}

func (s *CartService) view(d *models.Draft) *models.DraftView {
	return &models.DraftView{Draft: d, Totals: Compute(d.Lines, s.taxRate)}
}

func buildItems(lines []models.LineItem, withDescription bool) []models.ItemRequest {
	items := make([]models.ItemRequest, 0, len(lines))
	for _, line := range lines {
		item := models.ItemRequest{
			Product:   line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		if withDescription {
			item.Description = line.Description
			if item.Description == "" {
				item.Description = line.Name
			}
		}
		items = append(items, item)
	}
	return items
}

func buildSaleRequest(d *models.Draft) *models.CreateSaleRequest {
	return &models.CreateSaleRequest{
		Client:        d.ClientID,
		PaymentMethod: d.PaymentMethod,
		InvoiceType:   d.InvoiceType,
		Notes:         d.Notes,
		Items:         buildItems(d.Lines, false),
	}
}

func buildQuoteRequest(d *models.Draft) *models.CreateQuoteRequest {
	return &models.CreateQuoteRequest{
		Client:     d.ClientID,
		ValidUntil: d.ValidUntil,
		Notes:      d.Notes,
		Terms:      d.Terms,
		Items:      buildItems(d.Lines, true),
	}
}
