package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
	"github.com/davlatp7-commits/render-restaurant/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

const adminSessionName = "admin-session"

type AdminHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	UploadDir    string
}

// Panel lists every dish and category, with the dashboard counters.
func (h *AdminHandler) Panel(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.Store.GetAllDishes()
	if err != nil {
		http.Error(w, "Error fetching dishes", http.StatusInternalServerError)
		return
	}
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Dishes":     dishes,
		"Categories": categories,
		"Stats":      stats,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, "admin.html", data)
}

// AddDish creates a dish from the multipart form. An unparseable or
// negative price falls back to zero; the image upload is optional.
func (h *AdminHandler) AddDish(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Dish name is required."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
	if err != nil || price.IsNegative() {
		price = decimal.Zero
	}

	dish := &models.Dish{
		Name:        name,
		Description: strings.TrimSpace(r.FormValue("description")),
		Weight:      strings.TrimSpace(r.FormValue("weight")),
		Price:       price,
		Available:   true,
		CategoryID:  parseCategoryID(r.FormValue("category_id")),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := saveDishImage(file, header, h.UploadDir)
		if err != nil {
			if errors.Is(err, errUnsupportedImage) {
				session.AddFlash(FlashMessage{Type: "error", Message: "Unsupported image format. Only PNG, JPG, JPEG are allowed."})
				session.Save(r, w)
				http.Redirect(w, r, "/admin/", http.StatusSeeOther)
				return
			}
			slog.Error("Failed to save dish image", "error", err)
			http.Error(w, "Error saving image", http.StatusInternalServerError)
			return
		}
		dish.ImageURL = imageURL
	}

	if err := h.Store.CreateDish(dish); err != nil {
		slog.Error("Failed to create dish", "error", err)
		http.Error(w, "Error saving dish", http.StatusInternalServerError)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Dish added."})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

// DeleteDish hard-deletes a dish. Items on past orders keep rendering
// through the store's LEFT JOIN guard.
func (h *AdminHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteDish(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Dish not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error deleting dish", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

// ToggleDish flips a dish's availability.
func (h *AdminHandler) ToggleDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := h.Store.ToggleDishAvailability(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Dish not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error updating dish", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

func (h *AdminHandler) EditDishForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	dish, err := h.Store.GetDishByID(id)
	if err != nil {
		http.Error(w, "Dish not found", http.StatusNotFound)
		return
	}

	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Dish":       dish,
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, "edit_dish.html", data)
}

// UpdateDish applies a partial update: fields present in the form replace
// the stored values, an unparseable price keeps the previous one, and a new
// image replaces the reference only after it is saved.
func (h *AdminHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	dish, err := h.Store.GetDishByID(id)
	if err != nil {
		http.Error(w, "Dish not found", http.StatusNotFound)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSessionName)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		session.Save(r, w)
		http.Redirect(w, r, fmt.Sprintf("/admin/edit/%d", id), http.StatusSeeOther)
		return
	}

	if name := strings.TrimSpace(r.FormValue("name")); name != "" {
		dish.Name = name
	}
	if r.Form.Has("description") {
		dish.Description = strings.TrimSpace(r.FormValue("description"))
	}
	if r.Form.Has("weight") {
		dish.Weight = strings.TrimSpace(r.FormValue("weight"))
	}
	if price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("price"))); err == nil && !price.IsNegative() {
		dish.Price = price
	}
	dish.CategoryID = parseCategoryID(r.FormValue("category_id"))

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := saveDishImage(file, header, h.UploadDir)
		if err != nil {
			if errors.Is(err, errUnsupportedImage) {
				session.AddFlash(FlashMessage{Type: "error", Message: "Unsupported image format."})
				session.Save(r, w)
				http.Redirect(w, r, fmt.Sprintf("/admin/edit/%d", id), http.StatusSeeOther)
				return
			}
			slog.Error("Failed to save dish image", "dish_id", id, "error", err)
			http.Error(w, "Error saving image", http.StatusInternalServerError)
			return
		}
		dish.ImageURL = imageURL
	}

	if err := h.Store.UpdateDish(dish); err != nil {
		slog.Error("Failed to update dish", "dish_id", id, "error", err)
		http.Error(w, "Error updating dish", http.StatusInternalServerError)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Dish updated."})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

// parseCategoryID maps an empty form value to NULL, anything unparseable
// included.
func parseCategoryID(value string) sql.NullInt64 {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(id), Valid: true}
}
