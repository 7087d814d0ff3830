package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
	"github.com/davlatp7-commits/render-restaurant/internal/store"
)

type WaiterHandler struct {
	Store     *store.Store
	Templates *TemplateCache
}

// Panel shows orders that have not been completed yet, newest first.
func (h *WaiterHandler) Panel(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.GetActiveOrders()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Orders":   orders,
		"Statuses": models.Statuses,
	}
	h.Templates.Render(w, "waiter.html", data)
}

// UpdateStatus sets an order's status from the path segment. Unknown
// statuses leave the order untouched; unknown order ids are 404.
func (h *WaiterHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("order_id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetOrderByID(id); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	if status, ok := models.ParseStatus(r.PathValue("status")); ok {
		if err := h.Store.UpdateOrderStatus(id, status); err != nil {
			http.Error(w, "Error updating status", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/waiter/", http.StatusSeeOther)
}

type checkNewResponse struct {
	LatestID   int  `json:"latest_id"`
	Unassigned bool `json:"unassigned"`
}

// CheckNew backs the waiter dashboard's polling timer: the id of the most
// recent order (0 when none exist) and whether any order still sits in
// status "new". The server keeps no per-client poll state.
func (h *WaiterHandler) CheckNew(w http.ResponseWriter, r *http.Request) {
	latestID, err := h.Store.GetLatestOrderID()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}
	unassigned, err := h.Store.HasNewOrders()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(checkNewResponse{LatestID: latestID, Unassigned: unassigned}); err != nil {
		slog.Error("Failed to encode check_new response", "error", err)
	}
}

// CompleteOrder is the waiter's "delete": the order moves to the history
// state instead of being removed, so its rows stay reviewable.
func (h *WaiterHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("order_id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := h.Store.UpdateOrderStatus(id, models.StatusCompleted); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	http.Redirect(w, r, "/waiter/", http.StatusSeeOther)
}

// History lists completed orders.
func (h *WaiterHandler) History(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.GetCompletedOrders()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	h.Templates.Render(w, "waiter_history.html", map[string]interface{}{
		"Orders": orders,
	})
}

// ClearHistory irreversibly deletes every completed order and its items.
func (h *WaiterHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.PurgeCompletedOrders(); err != nil {
		slog.Error("Failed to purge order history", "error", err)
		http.Error(w, "Error clearing history", http.StatusInternalServerError)
		return
	}

	slog.Info("Order history purged")
	http.Redirect(w, r, "/waiter/", http.StatusSeeOther)
}
