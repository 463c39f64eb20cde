package handler

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/itchan-dev/postadmin/frontend/internal/manage"
	"github.com/itchan-dev/postadmin/frontend/internal/markdown"
	"github.com/itchan-dev/postadmin/shared/config"
	mw "github.com/itchan-dev/postadmin/frontend/internal/middleware"
)

type Handler struct {
	Public   config.Public
	Renderer *markdown.Renderer
	Sessions *manage.Sessions

	mu        sync.RWMutex
	templates map[string]*template.Template
}

func New(templates map[string]*template.Template, publicCfg config.Public, renderer *markdown.Renderer, sessions *manage.Sessions) *Handler {
	return &Handler{
		Public:    publicCfg,
		Renderer:  renderer,
		Sessions:  sessions,
		templates: templates,
	}
}

// SetTemplates swaps the template set, used by the development reloader.
func (h *Handler) SetTemplates(templates map[string]*template.Template) {
	h.mu.Lock()
	h.templates = templates
	h.mu.Unlock()
}

func (h *Handler) getTemplate(name string) (*template.Template, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	tmpl, ok := h.templates[name]
	return tmpl, ok
}

// page returns the view model of the requesting session.
func (h *Handler) page(r *http.Request) *manage.Page {
	return h.Sessions.Get(mw.GetSessionIDFromContext(r))
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
