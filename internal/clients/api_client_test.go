package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/session"
)

// fakeBackend plays the store API: token endpoints plus a few protected routes.
type fakeBackend struct {
	mu            sync.Mutex
	validAccess   string
	validRefresh  string
	nextAccess    string
	failRefresh   bool
	rejectAll     bool
	refreshDelay  time.Duration
	staleBarrier  *sync.WaitGroup
	refreshCalls  atomic.Int32
	protectedHits atomic.Int32
	authHeaders   []string
	bodies        []string
	requestIDs    []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.authHeaders = append(b.authHeaders, path+" "+r.Header.Get("Authorization"))
	if id := r.Header.Get("X-Request-ID"); id != "" {
		b.requestIDs = append(b.requestIDs, id)
	}
	b.mu.Unlock()

	switch path {
	case "/token/":
		writeJSON(w, http.StatusOK, map[string]string{"access": "access-1", "refresh": "refresh-1"})
		return
	case "/token/refresh/":
		b.refreshCalls.Add(1)
		time.Sleep(b.refreshDelay)
		var req struct {
			Refresh string `json:"refresh"`
		}
		_ = json.Unmarshal(body, &req)

		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failRefresh || req.Refresh != b.validRefresh {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token_not_valid"})
			return
		}
		b.validAccess = b.nextAccess
		writeJSON(w, http.StatusOK, map[string]string{"access": b.nextAccess})
		return
	}

	b.protectedHits.Add(1)
	auth := r.Header.Get("Authorization")
	if b.staleBarrier != nil && auth == "Bearer stale" {
		b.staleBarrier.Done()
		b.staleBarrier.Wait()
	}

	b.mu.Lock()
	authorized := !b.rejectAll && auth == "Bearer "+b.validAccess
	b.bodies = append(b.bodies, string(body))
	b.mu.Unlock()
	if !authorized {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token_not_valid"})
		return
	}

	switch {
	case path == "/products/" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":   1,
			"results": []map[string]interface{}{{"id": 1, "name": "Coffee", "price": "12.50", "apply_igv": true}},
		})
	case path == "/products/1/":
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 1, "name": "Coffee", "price": "12.50", "apply_igv": true})
	case path == "/products/categories/":
		writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": 3, "name": "Drinks"}})
	case path == "/sales/" && r.Method == http.MethodPost:
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": 77, "total": "29.50", "status": "completed"})
	case path == "/boom/":
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "boom"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type harness struct {
	backend   *fakeBackend
	server    *httptest.Server
	store     *session.MemoryTokenStore
	session   *session.Session
	client    *APIClient
	redirects atomic.Int32
}

func newHarness(t *testing.T, backend *fakeBackend, tokens session.Tokens) *harness {
	t.Helper()
	logging.SetOutput(io.Discard)

	h := &harness{backend: backend}
	h.server = httptest.NewServer(backend)
	t.Cleanup(h.server.Close)

	h.store = session.NewMemoryTokenStore()
	require.NoError(t, h.store.Save(context.Background(), tokens))
	h.session = session.New(h.store)
	require.NoError(t, h.session.Restore(context.Background()))

	redirector := RedirectFunc(func(ctx context.Context, reason error) {
		h.redirects.Add(1)
	})
	h.client = NewAPIClient(
		config.APIConfig{BaseURL: h.server.URL + "/api", Timeout: 5 * time.Second},
		h.session,
		redirector,
		nil,
		logging.NewLoggerV2("api-client-test"),
	)
	return h
}

func TestDo_StampsBearerToken(t *testing.T) {
	h := newHarness(t, &fakeBackend{validAccess: "good"}, session.Tokens{Access: "good", Refresh: "r"})

	product, err := h.client.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", product.Name)
	assert.True(t, decimal.RequireFromString("12.50").Equal(product.Price))
	assert.Equal(t, []string{"/products/1/ Bearer good"}, h.backend.authHeaders)
}

func TestDo_AnonymousRequestIsNotStamped(t *testing.T) {
	h := newHarness(t, &fakeBackend{validAccess: "good"}, session.Tokens{})

	_, err := h.client.GetProduct(context.Background(), 1)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, "/products/1/ ", h.backend.authHeaders[0])
}

func TestDo_RefreshesOnceAndReplays(t *testing.T) {
	backend := &fakeBackend{validAccess: "fresh", validRefresh: "r1", nextAccess: "fresh"}
	h := newHarness(t, backend, session.Tokens{Access: "stale", Refresh: "r1"})

	product, err := h.client.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)

	assert.Equal(t, int32(1), backend.refreshCalls.Load())
	assert.Equal(t, int32(2), backend.protectedHits.Load())
	assert.Equal(t, int32(0), h.redirects.Load())
	assert.Equal(t, session.Tokens{Access: "fresh", Refresh: "r1"}, h.session.Tokens())

	stored, err := h.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", stored.Access)
}

func TestDo_ReplayResendsTheSameBody(t *testing.T) {
	backend := &fakeBackend{validAccess: "fresh", validRefresh: "r1", nextAccess: "fresh"}
	h := newHarness(t, backend, session.Tokens{Access: "stale", Refresh: "r1"})

	sale, err := h.client.CreateSale(context.Background(), &models.CreateSaleRequest{
		PaymentMethod: models.PaymentCash,
		InvoiceType:   models.InvoiceBoleta,
		Items:         []models.ItemRequest{{Product: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), sale.ID)

	require.Len(t, backend.bodies, 2)
	assert.Equal(t, backend.bodies[0], backend.bodies[1])
	assert.Contains(t, backend.bodies[0], `"unit_price":"12.5"`)
}

func TestDo_SecondUnauthorizedIsTerminal(t *testing.T) {
	backend := &fakeBackend{validAccess: "fresh", validRefresh: "r1", nextAccess: "fresh", rejectAll: true}
	h := newHarness(t, backend, session.Tokens{Access: "stale", Refresh: "r1"})

	_, err := h.client.GetProduct(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.NotErrorIs(t, err, ErrSessionExpired)

	assert.Equal(t, int32(1), backend.refreshCalls.Load())
	assert.Equal(t, int32(2), backend.protectedHits.Load())
	assert.Equal(t, int32(0), h.redirects.Load())
}

func TestDo_RefreshFailureClearsSessionAndRedirectsOnce(t *testing.T) {
	backend := &fakeBackend{validAccess: "fresh", validRefresh: "r1", failRefresh: true}
	h := newHarness(t, backend, session.Tokens{Access: "stale", Refresh: "r1"})

	_, err := h.client.GetProduct(context.Background(), 1)
	require.ErrorIs(t, err, ErrSessionExpired)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "/token/refresh/", apiErr.Path)

	assert.Equal(t, int32(1), backend.refreshCalls.Load())
	assert.Equal(t, int32(1), backend.protectedHits.Load())
	assert.Equal(t, int32(1), h.redirects.Load())
	assert.True(t, h.session.Tokens().Empty())
	assert.Equal(t, session.StateAnonymous, h.session.State())

	stored, err := h.store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, stored.Empty())
}

func TestDo_MissingRefreshTokenRedirects(t *testing.T) {
	backend := &fakeBackend{validAccess: "fresh"}
	h := newHarness(t, backend, session.Tokens{Access: "stale"})

	_, err := h.client.GetProduct(context.Background(), 1)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(0), backend.refreshCalls.Load())
	assert.Equal(t, int32(1), h.redirects.Load())
	assert.True(t, h.session.Tokens().Empty())
}

func TestDo_NonUnauthorizedErrorsPropagateUnchanged(t *testing.T) {
	backend := &fakeBackend{validAccess: "good"}
	h := newHarness(t, backend, session.Tokens{Access: "good", Refresh: "r"})

	err := h.client.Do(context.Background(), http.MethodGet, "/boom/", nil, nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, string(apiErr.Body), "boom")

	_, err = h.client.GetSale(context.Background(), 404)
	assert.True(t, IsNotFound(err))

	assert.Equal(t, int32(0), backend.refreshCalls.Load())
	assert.Equal(t, int32(2), backend.protectedHits.Load())
	assert.Equal(t, session.Tokens{Access: "good", Refresh: "r"}, h.session.Tokens())
}

func TestDo_TransportErrorPropagates(t *testing.T) {
	h := newHarness(t, &fakeBackend{validAccess: "good"}, session.Tokens{Access: "good", Refresh: "r"})
	h.server.Close()

	_, err := h.client.GetProduct(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, IsAbort(err))
	assert.Equal(t, int32(0), h.redirects.Load())
	assert.Equal(t, "good", h.session.AccessToken())
}

func TestDo_AbortIsBenign(t *testing.T) {
	backend := &fakeBackend{validAccess: "good"}
	h := newHarness(t, backend, session.Tokens{Access: "good", Refresh: "r"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.client.GetProduct(ctx, 1)
	require.Error(t, err)
	assert.True(t, IsAbort(err))
	assert.Equal(t, int32(0), h.redirects.Load())
	assert.Equal(t, "good", h.session.AccessToken())
}

func TestLogin_StoresTokensWithoutStampingTokenEndpoint(t *testing.T) {
	backend := &fakeBackend{validAccess: "access-1"}
	h := newHarness(t, backend, session.Tokens{Access: "old", Refresh: "old"})

	require.NoError(t, h.client.Login(context.Background(), "cashier", "secret"))
	assert.Equal(t, session.Tokens{Access: "access-1", Refresh: "refresh-1"}, h.session.Tokens())
	assert.Equal(t, "/token/ ", backend.authHeaders[0])

	require.NoError(t, h.client.Logout(context.Background()))
	assert.True(t, h.session.Tokens().Empty())
	assert.Equal(t, int32(0), h.redirects.Load())
}

func TestDo_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	const workers = 16

	barrier := &sync.WaitGroup{}
	barrier.Add(workers)
	backend := &fakeBackend{
		validAccess:  "fresh",
		validRefresh: "r1",
		nextAccess:   "fresh",
		refreshDelay: 20 * time.Millisecond,
		staleBarrier: barrier,
	}
	h := newHarness(t, backend, session.Tokens{Access: "stale", Refresh: "r1"})

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.client.GetProduct(context.Background(), 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), backend.refreshCalls.Load())
	assert.Equal(t, int32(0), h.redirects.Load())

	for _, header := range backend.authHeaders {
		if strings.HasPrefix(header, "/products/") {
			assert.Contains(t, []string{"/products/1/ Bearer stale", "/products/1/ Bearer fresh"}, header)
		}
	}
}

func TestDo_ConcurrentRefreshFailureRedirectsOnce(t *testing.T) {
	const workers = 8

	barrier := &sync.WaitGroup{}
	barrier.Add(workers)
	backend := &fakeBackend{
		validAccess:  "fresh",
		validRefresh: "r1",
		failRefresh:  true,
		refreshDelay: 20 * time.Millisecond,
		staleBarrier: barrier,
	}
	h := newHarness(t, backend, session.Tokens{Access: "stale", Refresh: "r1"})

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.client.GetProduct(context.Background(), 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.ErrorIs(t, err, ErrSessionExpired)
	}
	assert.Equal(t, int32(1), backend.refreshCalls.Load())
	assert.Equal(t, int32(1), h.redirects.Load())
	assert.True(t, h.session.Tokens().Empty())
}
