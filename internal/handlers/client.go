package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
	"github.com/davlatp7-commits/render-restaurant/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type ClientHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	BaseURL      string
}

// Index renders the menu: available dishes, optionally narrowed to one
// category via the ?category= query parameter.
func (h *ClientHandler) Index(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("category")

	dishes, err := h.Store.GetAvailableDishes(selected)
	if err != nil {
		http.Error(w, "Error fetching dishes", http.StatusInternalServerError)
		return
	}

	categories, err := h.Store.GetActiveCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	session, _ := h.SessionStore.Get(r, clientSessionName)
	data := map[string]interface{}{
		"Dishes":           dishes,
		"Categories":       names,
		"SelectedCategory": selected,
		"CartSize":         len(getCart(session)),
		"CsrfField":        csrf.TemplateField(r),
		"Flashes":          GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, "index.html", data)
}

// AddToCart increments the session cart entry for a dish; the quantity
// field defaults to 1 when absent or unparseable.
func (h *ClientHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	dishID, err := strconv.Atoi(r.PathValue("dish_id"))
	if err != nil {
		http.Error(w, "Invalid dish ID", http.StatusBadRequest)
		return
	}

	quantity := 1
	if q, err := strconv.Atoi(r.FormValue("quantity")); err == nil && q > 0 {
		quantity = q
	}

	session, _ := h.SessionStore.Get(r, clientSessionName)
	cart := getCart(session)
	cart[strconv.Itoa(dishID)] += quantity
	saveCart(session, cart)
	session.Save(r, w)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type cartEntry struct {
	Dish     models.Dish
	Quantity int
}

// Cart resolves the session cart against the catalog. Dishes deleted since
// they were added simply drop out of the view.
func (h *ClientHandler) Cart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, clientSessionName)
	cart := getCart(session)

	ids := make([]int, 0, len(cart))
	for idStr := range cart {
		if id, err := strconv.Atoi(idStr); err == nil {
			ids = append(ids, id)
		}
	}

	dishes, err := h.Store.GetDishesByIDs(ids)
	if err != nil {
		http.Error(w, "Error fetching dishes", http.StatusInternalServerError)
		return
	}

	entries := make([]cartEntry, 0, len(dishes))
	for _, d := range dishes {
		entries = append(entries, cartEntry{Dish: d, Quantity: cart[strconv.Itoa(d.ID)]})
	}

	data := map[string]interface{}{
		"Entries":   entries,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, "cart.html", data)
}

// SubmitOrder turns the posted quantities into one order plus its items.
// Quantities arrive as repeated quantities[<dish_id>]=<n> fields; ids listed
// in remove[] are dropped first. An empty result or a missing table id is a
// silent no-op back to the menu, leaving the cart as it was.
func (h *ClientHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	quantities := parseQuantities(r.PostForm)
	for _, removed := range r.PostForm["remove[]"] {
		if id, err := strconv.Atoi(removed); err == nil {
			delete(quantities, id)
		}
	}

	tableID, err := strconv.Atoi(r.PostFormValue("table_id"))
	if err != nil || len(quantities) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	comment := r.PostFormValue("comment")

	orderID, err := h.Store.CreateOrder(tableID, comment, quantities)
	if err != nil {
		slog.Error("Failed to create order", "table_id", tableID, "error", err)
		http.Error(w, "Error submitting order", http.StatusInternalServerError)
		return
	}
	slog.Info("Order submitted", "order_id", orderID, "table_id", tableID, "items", len(quantities))

	// The order is committed; only now is the cart cleared.
	session, _ := h.SessionStore.Get(r, clientSessionName)
	clearCart(session)
	session.AddFlash(FlashMessage{Type: "success", Message: "Order submitted!"})
	session.Save(r, w)

	http.Redirect(w, r, fmt.Sprintf("/order_status/%d", tableID), http.StatusSeeOther)
}

// parseQuantities collects quantities[<id>]=<n> form fields. Ids or values
// that fail to parse, and non-positive quantities, are skipped rather than
// failing the submission.
func parseQuantities(form map[string][]string) map[int]int {
	quantities := make(map[int]int)
	for key, values := range form {
		if !strings.HasPrefix(key, "quantities[") || !strings.HasSuffix(key, "]") {
			continue
		}
		id, err := strconv.Atoi(key[len("quantities[") : len(key)-1])
		if err != nil || len(values) == 0 {
			continue
		}
		qty, err := strconv.Atoi(values[0])
		if err != nil || qty <= 0 {
			continue
		}
		quantities[id] = qty
	}
	return quantities
}

// OrderStatus shows the most recent order for a table.
func (h *ClientHandler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	tableID, err := strconv.Atoi(r.PathValue("table_id"))
	if err != nil {
		http.Error(w, "Invalid table ID", http.StatusBadRequest)
		return
	}

	order, err := h.Store.GetLatestOrderForTable(tableID)
	if err != nil {
		http.Error(w, "Error fetching order", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, clientSessionName)
	data := map[string]interface{}{
		"Order":   order,
		"TableID": tableID,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, "order_status.html", data)
}

// QRPage renders a page carrying the absolute menu URL; the QR code itself
// is drawn client-side.
func (h *ClientHandler) QRPage(w http.ResponseWriter, r *http.Request) {
	menuURL := h.BaseURL
	if menuURL == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		menuURL = scheme + "://" + r.Host
	}
	menuURL = strings.TrimRight(menuURL, "/") + "/"

	h.Templates.Render(w, "qr.html", map[string]interface{}{
		"MenuURL": menuURL,
	})
}
