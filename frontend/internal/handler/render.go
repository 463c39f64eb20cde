package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	frontend_domain "github.com/itchan-dev/postadmin/frontend/internal/domain"
	"github.com/itchan-dev/postadmin/frontend/internal/manage"
	mw "github.com/itchan-dev/postadmin/frontend/internal/middleware"
	"github.com/itchan-dev/postadmin/shared/domain"
	"github.com/itchan-dev/postadmin/shared/logger"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

func (h *Handler) initCommonTemplateData(r *http.Request) frontend_domain.CommonTemplateData {
	return frontend_domain.CommonTemplateData{
		CSRFToken: mw.GetCSRFTokenFromContext(r),
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any, refresh string) {
	tmpl, ok := h.getTemplate(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(r)
	common.Refresh = refresh

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "component", "handler", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// renderPost transforms a domain.Post into the card view model.
func (h *Handler) renderPost(post domain.Post) frontend_domain.Post {
	rendered := frontend_domain.Post{Post: post, ImageURL: imageURL(post.Img)}
	if post.HasDescription() {
		rendered.DescriptionHTML = h.Renderer.Render(post.DescriptionText())
	}
	return rendered
}

func (h *Handler) renderPostsPage(v manage.View) frontend_domain.PostsPageData {
	data := frontend_domain.PostsPageData{
		Posts:       make([]frontend_domain.Post, len(v.Posts)),
		ShowLoading: v.ShowLoading,
		Empty:       v.Empty,
		Error:       v.Error,
		Message:     v.Message,
		Busy:        v.Busy,
		UpdatedAt:   v.UpdatedAt,
	}
	for i, post := range v.Posts {
		data.Posts[i] = h.renderPost(post)
	}
	if v.Edit != nil {
		data.Edit = &frontend_domain.EditDialog{
			Post:      h.renderPost(v.Edit.Post),
			Draft:     v.Edit.Draft,
			CanSubmit: v.Edit.CanSubmit,
			MaxLen:    v.Edit.MaxLen,
		}
	}
	if v.Delete != nil {
		data.Delete = &frontend_domain.DeleteDialog{Post: h.renderPost(v.Delete.Post)}
	}
	return data
}

// imageURL accepts absolute http(s) URLs and site-relative paths; anything
// else gets the placeholder.
func imageURL(img string) template.URL {
	u, err := url.Parse(img)
	if err != nil || img == "" {
		return frontend_domain.PlaceholderImage
	}
	switch {
	case u.Scheme == "https" || u.Scheme == "http":
		if u.Host == "" {
			return frontend_domain.PlaceholderImage
		}
	case u.Scheme == "" && u.Host == "" && len(u.Path) > 0 && u.Path[0] == '/':
	default:
		return frontend_domain.PlaceholderImage
	}
	return template.URL(u.String())
}
