package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
)

func (h *AdminHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, "admin_categories.html", data)
}

// AddCategory creates a category unless the name is empty or already taken.
func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	existing, err := h.Store.GetCategoryByName(name)
	if err != nil {
		http.Error(w, "Error checking category", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "A category with that name already exists."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	if err := h.Store.CreateCategory(name); err != nil {
		http.Error(w, "Error creating category", http.StatusInternalServerError)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category added."})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// EditCategory renames a category; the rename only commits when the new
// name is non-empty and actually different.
func (h *AdminHandler) EditCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	category, err := h.Store.GetCategoryByID(id)
	if err != nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	newName := strings.TrimSpace(r.FormValue("name"))
	if newName != "" && newName != category.Name {
		if err := h.Store.RenameCategory(id, newName); err != nil {
			http.Error(w, "Error renaming category", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// DeleteCategory removes the category after clearing the reference on every
// member dish; dishes themselves are never deleted here.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteCategory(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Category not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error deleting category", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}
