package handlers

import (
	"net/http"
	"strconv"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
	"github.com/gorilla/csrf"
)

// Orders lists active orders, or all orders in one explicit status when
// ?status= is given. A status value outside the known set yields an empty
// list, not an error.
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	var orders []models.Order
	var err error

	if raw := r.URL.Query().Get("status"); raw != "" {
		if status, ok := models.ParseStatus(raw); ok {
			orders, err = h.Store.GetOrdersByStatus(status)
		}
	} else {
		orders, err = h.Store.GetActiveOrders()
	}
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Orders":    orders,
		"Statuses":  models.Statuses,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, "admin_orders.html", data)
}

// UpdateOrderStatus moves an order to the posted status. A value outside
// the fixed set is a silent no-op; an unknown order id is a 404.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("order_id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetOrderByID(id); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	if status, ok := models.ParseStatus(r.FormValue("status")); ok {
		if err := h.Store.UpdateOrderStatus(id, status); err != nil {
			http.Error(w, "Error updating status", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

// OrdersHistory lists completed orders, newest first.
func (h *AdminHandler) OrdersHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.GetCompletedOrders()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Orders":  orders,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, "admin_orders_history.html", data)
}
