package manage

import (
	"time"

	"github.com/itchan-dev/postadmin/shared/domain"
)

// View is a render-ready copy of the page and store state.
type View struct {
	Posts       domain.Posts
	ShowLoading bool
	Loading     bool
	Empty       bool
	Error       string
	Message     string
	Busy        bool
	UpdatedAt   time.Time
	Edit        *EditDialog
	Delete      *DeleteDialog
}

type EditDialog struct {
	Post      domain.Post
	Draft     string
	CanSubmit bool
	MaxLen    int
}

type DeleteDialog struct {
	Post domain.Post
}

// View combines the store snapshot with the page's dialog state.
func (p *Page) View() View {
	st := p.store.Snapshot()

	v := View{
		Posts:       st.Posts,
		Loading:     st.IsLoading,
		ShowLoading: st.IsLoading && len(st.Posts) == 0,
		Error:       st.Error,
		Message:     st.Message,
		UpdatedAt:   st.UpdatedAt,
	}
	v.Empty = !v.ShowLoading && len(st.Posts) == 0

	p.mu.Lock()
	defer p.mu.Unlock()
	v.Busy = p.busy
	if p.selected != nil {
		switch p.dialog {
		case dialogEdit:
			v.Edit = &EditDialog{Post: *p.selected, Draft: p.draft, CanSubmit: p.canSubmit(), MaxLen: p.maxDraftLen}
		case dialogDelete:
			v.Delete = &DeleteDialog{Post: *p.selected}
		}
	}
	return v
}
