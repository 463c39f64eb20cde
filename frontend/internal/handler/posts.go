package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/postadmin/frontend/internal/manage"
	"github.com/itchan-dev/postadmin/shared/domain"
	internal_errors "github.com/itchan-dev/postadmin/shared/errors"
	"github.com/itchan-dev/postadmin/shared/logger"
	"github.com/itchan-dev/postadmin/shared/utils"
)

const (
	postsPath     = "/posts"
	postsTemplate = "posts.html"
	refreshAfter  = "2; url=" + postsPath
)

var errPostNotFound = &internal_errors.ErrorWithStatusCode{Message: "post not found", StatusCode: http.StatusNotFound}

func IndexGetHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, postsPath, http.StatusFound)
}

// PostsGetHandler renders the post list. The first visit of a session, and
// any visit with ?refresh, fetches the list. ?edit={id} and ?delete={id}
// open the matching dialog; a bare visit closes any open dialog.
func (h *Handler) PostsGetHandler(w http.ResponseWriter, r *http.Request) {
	page := h.page(r)
	query := r.URL.Query()

	if !page.Mounted() || query.Has("refresh") {
		h.mount(r, page)
	}

	switch {
	case query.Get("edit") != "":
		post, ok := page.Lookup(domain.PostId(query.Get("edit")))
		if !ok {
			utils.WriteErrorAndStatusCode(w, errPostNotFound)
			return
		}
		if err := page.OpenEdit(post); err != nil {
			logger.Log.Debug("edit dialog not opened", "component", "handler", "post_id", post.Id, "error", err)
		}
	case query.Get("delete") != "":
		post, ok := page.Lookup(domain.PostId(query.Get("delete")))
		if !ok {
			utils.WriteErrorAndStatusCode(w, errPostNotFound)
			return
		}
		if err := page.OpenDelete(post); err != nil {
			logger.Log.Debug("delete dialog not opened", "component", "handler", "post_id", post.Id, "error", err)
		}
	default:
		page.CloseDialogs()
	}

	view := page.View()
	refresh := ""
	if view.Busy || view.ShowLoading {
		refresh = refreshAfter
	}
	h.renderTemplate(w, r, postsTemplate, h.renderPostsPage(view), refresh)
}

// mount fetches the list in the background and waits for it at most
// InitialLoadWait, so a slow API shows the loading state instead of blocking.
func (h *Handler) mount(r *http.Request, page *manage.Page) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		page.Mount(context.WithoutCancel(r.Context()))
	}()

	wait := h.Public.InitialLoadWait
	if wait <= 0 {
		<-done
		return
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	case <-r.Context().Done():
	}
}

func (h *Handler) EditPostHandler(w http.ResponseWriter, r *http.Request) {
	page := h.page(r)
	id := domain.PostId(chi.URLParam(r, "id"))

	post, ok := page.Lookup(id)
	if !ok {
		utils.WriteErrorAndStatusCode(w, errPostNotFound)
		return
	}

	if err := page.OpenEdit(post); err != nil {
		logger.Log.Debug("edit refused", "component", "handler", "post_id", id, "error", err)
		http.Redirect(w, r, postsPath, http.StatusSeeOther)
		return
	}
	// Browsers submit textarea line breaks as CRLF.
	page.SetDraft(strings.ReplaceAll(r.PostFormValue("description"), "\r\n", "\n"))

	err := page.SubmitEdit(r.Context())
	if errors.Is(err, manage.ErrEmptyDraft) || errors.Is(err, manage.ErrDraftTooLong) {
		http.Redirect(w, r, postsPath+"?edit="+url.QueryEscape(string(id)), http.StatusSeeOther)
		return
	}
	if err != nil {
		logger.Log.Debug("edit refused", "component", "handler", "post_id", id, "error", err)
	}
	http.Redirect(w, r, postsPath, http.StatusSeeOther)
}

func (h *Handler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	page := h.page(r)
	id := domain.PostId(chi.URLParam(r, "id"))

	post, ok := page.Lookup(id)
	if !ok {
		utils.WriteErrorAndStatusCode(w, errPostNotFound)
		return
	}

	if err := page.OpenDelete(post); err != nil {
		logger.Log.Debug("delete refused", "component", "handler", "post_id", id, "error", err)
		http.Redirect(w, r, postsPath, http.StatusSeeOther)
		return
	}
	if err := page.ConfirmDelete(r.Context()); err != nil {
		logger.Log.Debug("delete refused", "component", "handler", "post_id", id, "error", err)
	}
	http.Redirect(w, r, postsPath, http.StatusSeeOther)
}
