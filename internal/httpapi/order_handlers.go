package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"rentio.org/internal/audit"
	"rentio.org/internal/auth"
	"rentio.org/internal/ids"
	"rentio.org/internal/rental"
)

type createOrderRequest struct {
	CustomerName string `json:"customer_name"`
	OutletID     int64  `json:"outlet_id,omitempty"`
	TotalCents   int64  `json:"total_cents"`
}

type listOrdersResponse struct {
	Items []rental.Order `json:"items"`
}

func (a *API) handleOrdersList(w http.ResponseWriter, r *http.Request, ra auth.RequestAuth) {
	limit := 100
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 1000 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = v
	}

	extra := map[string]any{}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		extra["status"] = strings.ToUpper(status)
	}
	filter := auth.BuildScopedFilter(ra.Scope, extra)

	items, err := a.orders.List(r.Context(), filter, limit)
	if err != nil {
		handleOrderError(w, r, err)
		return
	}
	if items == nil {
		items = []rental.Order{}
	}
	writeJSON(w, http.StatusOK, listOrdersResponse{Items: items})
}

func (a *API) handleOrderCreate(w http.ResponseWriter, r *http.Request, ra auth.RequestAuth) {
	var req createOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		writeError(w, r, http.StatusBadRequest, "customer_name is required")
		return
	}
	if ra.Scope.MerchantID == 0 && !ra.Scope.CanAccessSystem {
		writeError(w, r, http.StatusBadRequest, "account is not bound to a merchant")
		return
	}

	outletID := req.OutletID
	if outletID == 0 {
		outletID = ra.Scope.OutletID
	}
	// Outlet-bound staff may only write into their own outlet.
	required := auth.Scope{MerchantID: ra.Scope.MerchantID}
	if ra.Scope.OutletID != 0 {
		required.OutletID = outletID
	}
	if denial := auth.ValidateScope(ra.Scope, required); denial != nil {
		writeDenial(w, r, http.StatusForbidden, denial.Code, denial.Message, denial.Details)
		return
	}

	order := rental.Order{
		OrderNumber:  ids.New(),
		MerchantID:   ra.Scope.MerchantID,
		OutletID:     outletID,
		CustomerName: req.CustomerName,
		TotalCents:   req.TotalCents,
	}
	if err := a.orders.Create(r.Context(), &order); err != nil {
		handleOrderError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "orders.created", map[string]any{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
	writeJSON(w, http.StatusCreated, order)
}

func (a *API) handleOrdersExport(w http.ResponseWriter, r *http.Request, ra auth.RequestAuth) {
	filter := auth.BuildScopedFilter(ra.Scope, nil)
	items, err := a.orders.List(r.Context(), filter, 1000)
	if err != nil {
		handleOrderError(w, r, err)
		return
	}
	if items == nil {
		items = []rental.Order{}
	}
	_ = audit.LogEvent(r.Context(), "orders.exported", map[string]any{
		"count": len(items),
	})
	w.Header().Set("Content-Disposition", `attachment; filename="orders.json"`)
	writeJSON(w, http.StatusOK, listOrdersResponse{Items: items})
}

func (a *API) handleOrderDelete(w http.ResponseWriter, r *http.Request, ra auth.RequestAuth) {
	orderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || orderID <= 0 {
		writeError(w, r, http.StatusBadRequest, "order id must be a positive integer")
		return
	}
	filter := auth.BuildScopedFilter(ra.Scope, nil)
	if err := a.orders.Delete(r.Context(), orderID, filter); err != nil {
		handleOrderError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "orders.deleted", map[string]any{
		"order_id": orderID,
	})
	w.WriteHeader(http.StatusNoContent)
}

func handleOrderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, rental.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case rental.IsNotFound(err):
		writeError(w, r, http.StatusNotFound, "order not found")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
