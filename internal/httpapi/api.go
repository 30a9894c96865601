package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"rentio.org/internal/auth"
	"rentio.org/internal/obs"
	"rentio.org/internal/rental"
	"rentio.org/internal/tenant"
)

// ReadyProbe reports whether downstream dependencies are reachable.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer. All protected routes funnel through Protect.
type API struct {
	mux        *http.ServeMux
	verifier   auth.Verifier
	tokens     *auth.TokenVerifier
	evaluator  *auth.Evaluator
	gate       *auth.SubscriptionGate
	orders     rental.Store
	tenants    tenant.Store
	readyProbe ReadyProbe
	version    string
}

// Config wires the API's collaborators.
type Config struct {
	Verifier   auth.Verifier
	Tokens     *auth.TokenVerifier
	Evaluator  *auth.Evaluator
	Gate       *auth.SubscriptionGate
	Orders     rental.Store
	Tenants    tenant.Store
	ReadyProbe ReadyProbe
	Version    string
}

func New(cfg Config) *API {
	a := &API{
		mux:        http.NewServeMux(),
		verifier:   cfg.Verifier,
		tokens:     cfg.Tokens,
		evaluator:  cfg.Evaluator,
		gate:       cfg.Gate,
		orders:     cfg.Orders,
		tenants:    cfg.Tenants,
		readyProbe: cfg.ReadyProbe,
		version:    cfg.Version,
	}
	a.routes()
	return a
}

// Named pipelines: pre-bound requirements for the protected surface.
// Route registration declares intent; Protect owns the stage order.
func (a *API) routes() {
	// public
	a.mux.HandleFunc("/healthz", a.handleHealthz)
	a.mux.HandleFunc("/readyz", a.handleReady)
	a.mux.HandleFunc("/v1/info", a.handleInfo)
	a.mux.Handle("/metrics", obs.Handler())
	a.mux.HandleFunc("POST /v1/auth/token", a.handleAuthToken)

	// protected
	a.mux.Handle("GET /v1/orders", a.Protect(auth.RequirePermission(auth.PermOrdersView), a.handleOrdersList))
	a.mux.Handle("POST /v1/orders", a.Protect(auth.RequirePermission(auth.PermOrdersCreate), a.handleOrderCreate))
	a.mux.Handle("GET /v1/orders/export", a.Protect(auth.RequirePermission(auth.PermOrdersExport), a.handleOrdersExport))
	a.mux.Handle("DELETE /v1/orders/{id}", a.Protect(auth.RequirePermission(auth.PermOrdersDelete), a.handleOrderDelete))
	a.mux.Handle("GET /v1/subscription", a.Protect(auth.Requirement{SkipSubscriptionCheck: true}, a.handleSubscriptionStatus))
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	h := http.Handler(a.mux)
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, 50, 25)
	h = SecurityHeaders(h)
	h = CORS(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "rentio-api",
		"version": a.version,
	})
}

func (a *API) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		obs.SetReady(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "rentio-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
