// Package tui is a terminal front end for the Manage Posts page.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/itchan-dev/postadmin/frontend/internal/manage"
	"github.com/itchan-dev/postadmin/shared/domain"
)

const previewWidth = 60

type fetchedMsg struct{}

type editDoneMsg struct{}

type deleteDoneMsg struct{}

// Model drives a manage.Page from the keyboard. Store calls run as commands;
// while one is pending every key except quit is ignored.
type Model struct {
	ctx      context.Context
	page     *manage.Page
	selected int
	pending  bool
	textarea textarea.Model
	spinner  spinner.Model
	width    int
}

func New(ctx context.Context, page *manage.Page, maxLen int) Model {
	ta := textarea.New()
	ta.Placeholder = "description"
	ta.ShowLineNumbers = false
	ta.CharLimit = maxLen
	ta.SetWidth(previewWidth)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		page:     page,
		pending:  true, // until the initial fetch from Init returns
		textarea: ta,
		spinner:  s,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchCmd(m.ctx, m.page), m.spinner.Tick)
}

func fetchCmd(ctx context.Context, page *manage.Page) tea.Cmd {
	return func() tea.Msg {
		page.Mount(ctx)
		return fetchedMsg{}
	}
}

func (m *Model) fetch() tea.Cmd {
	m.pending = true
	return fetchCmd(m.ctx, m.page)
}

func (m *Model) submitEdit() tea.Cmd {
	m.pending = true
	page, ctx := m.page, m.ctx
	return func() tea.Msg {
		_ = page.SubmitEdit(ctx)
		return editDoneMsg{}
	}
}

func (m *Model) confirmDelete() tea.Cmd {
	m.pending = true
	page, ctx := m.page, m.ctx
	return func() tea.Msg {
		_ = page.ConfirmDelete(ctx)
		return deleteDoneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textarea.SetWidth(min(previewWidth, max(20, msg.Width-10)))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchedMsg, editDoneMsg, deleteDoneMsg:
		m.pending = false
		m.textarea.Blur()
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	view := m.page.View()
	switch {
	case view.Edit != nil:
		if m.pending {
			return m, nil
		}
		return m.updateEdit(msg)
	case view.Delete != nil:
		if m.pending {
			return m, nil
		}
		return m.updateDelete(msg)
	}

	if msg.String() == "q" {
		return m, tea.Quit
	}
	if m.pending {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(view.Posts)-1 {
			m.selected++
		}
	case "r":
		cmd := m.fetch()
		return m, cmd
	case "e":
		if post, ok := m.current(view.Posts); ok && m.page.OpenEdit(post) == nil {
			m.textarea.SetValue(post.DescriptionText())
			cmd := m.textarea.Focus()
			return m, cmd
		}
	case "d":
		if post, ok := m.current(view.Posts); ok {
			_ = m.page.OpenDelete(post)
		}
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.page.CloseEdit()
		m.textarea.Blur()
		return m, nil
	case tea.KeyCtrlS:
		m.page.SetDraft(m.textarea.Value())
		if !m.page.CanSubmit() {
			return m, nil
		}
		cmd := m.submitEdit()
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.page.SetDraft(m.textarea.Value())
	return m, cmd
}

func (m Model) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		cmd := m.confirmDelete()
		return m, cmd
	case "n", "N", "esc":
		m.page.CloseDelete()
	}
	return m, nil
}

func (m Model) current(posts domain.Posts) (domain.Post, bool) {
	if m.selected < 0 || m.selected >= len(posts) {
		return domain.Post{}, false
	}
	return posts[m.selected], true
}

func (m *Model) clampSelection() {
	n := len(m.page.View().Posts)
	if m.selected >= n {
		m.selected = max(0, n-1)
	}
}

func (m Model) View() string {
	view := m.page.View()
	var s strings.Builder

	s.WriteString(captionStyle.Render(fmt.Sprintf("Manage Posts (%d)", len(view.Posts))))
	s.WriteString("\n\n")

	if view.Error != "" {
		s.WriteString(errorStyle.Render("Error: " + view.Error))
		s.WriteString("\n")
	}
	if view.Message != "" {
		s.WriteString(messageStyle.Render(view.Message))
		s.WriteString("\n")
	}
	if view.Error != "" || view.Message != "" {
		s.WriteString("\n")
	}

	switch {
	case view.ShowLoading:
		s.WriteString(postStyle.Render(m.spinner.View() + " Loading posts..."))
		s.WriteString("\n")
	case view.Empty:
		s.WriteString(emptyStyle.Render("No posts found"))
		s.WriteString("\n")
	default:
		for i, post := range view.Posts {
			s.WriteString(m.renderPost(i, post))
		}
	}

	s.WriteString("\n")
	switch {
	case view.Edit != nil:
		s.WriteString(m.renderEdit(view))
	case view.Delete != nil:
		s.WriteString(m.renderDelete(view))
	default:
		status := ""
		if m.pending && !view.ShowLoading {
			status = m.spinner.View() + " "
		}
		s.WriteString(helpStyle.Render(status + "↑/↓: navigate  e: edit  d: delete  r: refresh  q: quit"))
	}
	s.WriteString("\n")
	return s.String()
}

func (m Model) renderPost(i int, post domain.Post) string {
	prefix, style := "  ", postStyle
	if i == m.selected {
		prefix, style = "> ", selectedStyle
	}

	description := "No description"
	if post.HasDescription() {
		description = oneLine(post.DescriptionText())
	}

	var s strings.Builder
	s.WriteString(style.Render(prefix + description))
	s.WriteString("\n")

	details := []string{string(post.Id)}
	if !post.CreatedAt.IsZero() {
		details = append(details, post.CreatedAt.Format("2 Jan 2006"))
	}
	if post.Img != "" {
		details = append(details, post.Img)
	}
	s.WriteString(detailStyle.Render(strings.Join(details, "  ")))
	s.WriteString("\n")
	return s.String()
}

func (m Model) renderEdit(view manage.View) string {
	title := "Edit Description"
	help := "ctrl+s: save  esc: cancel"
	if m.pending {
		help = m.spinner.View() + " Saving..."
	} else if !view.Edit.CanSubmit {
		help = "description is empty  esc: cancel"
	}
	body := captionStyle.UnsetPaddingLeft().Render(title) + "\n\n" + m.textarea.View() + "\n\n" + helpStyle.UnsetPaddingLeft().Render(help)
	return dialogStyle.Render(body)
}

func (m Model) renderDelete(view manage.View) string {
	help := "y: delete  n: cancel"
	if m.pending {
		help = m.spinner.View() + " Deleting..."
	}
	body := captionStyle.UnsetPaddingLeft().Render("Confirm Delete") + "\n\n" +
		"Are you sure you want to delete this post? This action cannot be undone.\n" +
		detailStyle.UnsetPaddingLeft().Render(string(view.Delete.Post.Id)) + "\n\n" +
		helpStyle.UnsetPaddingLeft().Render(help)
	return dangerDialogStyle.Render(body)
}

// oneLine flattens text and cuts it to the preview width.
func oneLine(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > previewWidth {
		return string(runes[:previewWidth-1]) + "…"
	}
	return text
}
