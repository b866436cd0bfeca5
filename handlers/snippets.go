package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"snippetapp/auth"
	"snippetapp/db"
	"snippetapp/i18n"
	"snippetapp/models"
)

func ListSnippetsHandler(w http.ResponseWriter, r *http.Request) {
	snippets, err := db.ListSnippets()
	if err != nil {
		lang := i18n.DetectLanguage(r)
		http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "snippets.html", map[string]any{
		"Snippets": snippets,
		"UserID":   auth.GetUserID(r),
	})
}

func CreateSnippetFormHandler(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "snippet_create.html", nil)
}

func CreateSnippetHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	userID := auth.GetUserID(r)

	_, err := db.CreateSnippet(r.FormValue("description"), r.FormValue("done") == "on", userID)
	if err != nil {
		auth.SetFlash(w, r, "danger", i18n.T(lang, flashKeyForError(err)))
		http.Redirect(w, r, "/snippets/create", http.StatusSeeOther)
		return
	}

	auth.SetFlash(w, r, "success", i18n.T(lang, "SnippetCreated"))
	http.Redirect(w, r, "/snippets", http.StatusSeeOther)
}

func UpdateSnippetFormHandler(w http.ResponseWriter, r *http.Request) {
	snippet, ok := loadSnippet(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, "snippet_update.html", map[string]any{"Snippet": snippet})
}

func UpdateSnippetHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	snippet, ok := loadSnippet(w, r)
	if !ok {
		return
	}

	// Ownership gate: only the creator may change a snippet.
	if snippet.UserID != auth.GetUserID(r) {
		auth.SetFlash(w, r, "danger", i18n.T(lang, "NotAuthorizedUpdate"))
		renderError(w, r, http.StatusForbidden, "NotAuthorizedUpdate")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusBadRequest)
		return
	}

	// A field is part of the patch only if the form submitted it. The done
	// checkbox posts "on" when checked and is absent when the form has no
	// such control.
	var patch db.SnippetPatch
	if vals, ok := r.PostForm["description"]; ok && len(vals) > 0 {
		patch.Description = &vals[0]
	}
	if vals, ok := r.PostForm["done"]; ok && len(vals) > 0 {
		done := vals[0] == "on"
		patch.Done = &done
	}

	changed, err := db.UpdateSnippet(snippet, patch)
	if err != nil {
		auth.SetFlash(w, r, "danger", i18n.T(lang, flashKeyForError(err)))
		http.Redirect(w, r, fmt.Sprintf("/snippets/%d/update", snippet.ID), http.StatusSeeOther)
		return
	}

	if changed {
		auth.SetFlash(w, r, "success", i18n.T(lang, "SnippetUpdated"))
	} else {
		auth.SetFlash(w, r, "info", i18n.T(lang, "SnippetNotUpdated"))
	}
	http.Redirect(w, r, "/snippets", http.StatusSeeOther)
}

func DeleteSnippetFormHandler(w http.ResponseWriter, r *http.Request) {
	snippet, ok := loadSnippet(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, "snippet_delete.html", map[string]any{"Snippet": snippet})
}

func DeleteSnippetHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	snippet, ok := loadSnippet(w, r)
	if !ok {
		return
	}

	if snippet.UserID != auth.GetUserID(r) {
		auth.SetFlash(w, r, "danger", i18n.T(lang, "NotAuthorizedDelete"))
		renderError(w, r, http.StatusForbidden, "NotAuthorizedDelete")
		return
	}

	if err := db.DeleteSnippet(snippet.ID); err != nil {
		auth.SetFlash(w, r, "danger", i18n.T(lang, flashKeyForError(err)))
		http.Redirect(w, r, "/snippets", http.StatusSeeOther)
		return
	}

	auth.SetFlash(w, r, "success", i18n.T(lang, "SnippetDeleted"))
	http.Redirect(w, r, "/snippets", http.StatusSeeOther)
}

// loadSnippet resolves the {id} route parameter. A malformed or unknown id
// renders the 404 page and reports false.
func loadSnippet(w http.ResponseWriter, r *http.Request) (*models.Snippet, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusNotFound, "SnippetNotFound")
		return nil, false
	}

	snippet, err := db.FindSnippetByID(id)
	if err == db.ErrSnippetNotFound {
		renderError(w, r, http.StatusNotFound, "SnippetNotFound")
		return nil, false
	}
	if err != nil {
		lang := i18n.DetectLanguage(r)
		http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
		return nil, false
	}
	return snippet, true
}
