package frontend_domain

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	CSRFToken string // CSRF token for form submissions
	Refresh   string // meta refresh content, empty for none
}
