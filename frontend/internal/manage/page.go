// Package manage holds the Manage Posts view model shared by the web and
// terminal front ends: which dialog is open, the selected post, the edit
// draft and the busy flag. Store calls made on the operator's behalf are
// logged and swallowed; user-visible failures come from the store's banners.
package manage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/itchan-dev/postadmin/frontend/internal/store"
	"github.com/itchan-dev/postadmin/shared/domain"
	"github.com/itchan-dev/postadmin/shared/logger"
)

var (
	ErrBusy          = errors.New("a request is already in flight")
	ErrDialogClosed  = errors.New("dialog is not open")
	ErrEmptyDraft    = errors.New("description must not be empty")
	ErrDraftTooLong  = errors.New("description is too long")
	errMissingPostId = errors.New("post has no id")
)

// Store is the post store as seen by the view.
type Store interface {
	GetAllPosts(ctx context.Context) error
	EditPost(ctx context.Context, id domain.PostId, description string) error
	DeletePost(ctx context.Context, id domain.PostId) error
	Snapshot() store.State
}

type dialog int

const (
	dialogNone dialog = iota
	dialogEdit
	dialogDelete
)

// Page is one operator's view of the post list.
type Page struct {
	store        Store
	maxDraftLen  int // 0 means unlimited
	mu           sync.Mutex
	dialog       dialog
	selected     *domain.Post
	draft        string
	busy         bool
	mounted      bool
	lastActivity time.Time
}

func NewPage(s Store, maxDraftLen int) *Page {
	return &Page{store: s, maxDraftLen: maxDraftLen, lastActivity: time.Now()}
}

func (p *Page) touch() {
	p.lastActivity = time.Now()
}

// reset closes any dialog. Caller holds p.mu.
func (p *Page) reset() {
	p.dialog = dialogNone
	p.selected = nil
	p.draft = ""
}

// Mount fetches all posts. Failures surface through the store's error field.
func (p *Page) Mount(ctx context.Context) {
	p.mu.Lock()
	p.touch()
	p.mounted = true
	p.mu.Unlock()

	if err := p.store.GetAllPosts(ctx); err != nil {
		logger.Log.Error("fetching posts", "component", "manage", "error", err)
	}
}

// Mounted reports whether Mount has been called.
func (p *Page) Mounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted
}

// Lookup finds a post in the store's current collection.
func (p *Page) Lookup(id domain.PostId) (domain.Post, bool) {
	return p.store.Snapshot().Posts.Find(id)
}

func (p *Page) open(d dialog, post domain.Post) error {
	if post.Id == "" {
		return errMissingPostId
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch()

	if p.busy {
		return ErrBusy
	}
	selected := post
	p.dialog = d
	p.selected = &selected
	p.draft = ""
	if d == dialogEdit {
		p.draft = post.DescriptionText()
	}
	return nil
}

// OpenEdit selects post and opens the edit dialog with its description as draft.
func (p *Page) OpenEdit(post domain.Post) error {
	return p.open(dialogEdit, post)
}

// OpenDelete selects post and opens the delete confirmation.
func (p *Page) OpenDelete(post domain.Post) error {
	return p.open(dialogDelete, post)
}

func (p *Page) close(d dialog) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch()
	if p.dialog == d {
		p.reset()
	}
}

func (p *Page) CloseEdit()   { p.close(dialogEdit) }
func (p *Page) CloseDelete() { p.close(dialogDelete) }

// CloseDialogs closes whatever dialog is open unless a request is in flight.
func (p *Page) CloseDialogs() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch()
	if !p.busy {
		p.reset()
	}
}

// SetDraft replaces the edit draft. Ignored while busy or when the edit dialog is closed.
func (p *Page) SetDraft(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch()
	if p.dialog == dialogEdit && !p.busy {
		p.draft = s
	}
}

func (p *Page) canSubmit() bool {
	return p.dialog == dialogEdit && p.selected != nil && !p.busy &&
		strings.TrimSpace(p.draft) != "" && !p.draftTooLong()
}

func (p *Page) draftTooLong() bool {
	return p.maxDraftLen > 0 && len([]rune(p.draft)) > p.maxDraftLen
}

// CanSubmit reports whether the edit dialog's submit is enabled.
func (p *Page) CanSubmit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canSubmit()
}

// SelectedId returns the selected post's id, or "" when nothing is selected.
func (p *Page) SelectedId() domain.PostId {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == nil {
		return ""
	}
	return p.selected.Id
}

// SubmitEdit saves the draft as the selected post's description and refetches
// the list. The dialog closes when the call settles, even if it failed.
// Only guard violations are returned.
func (p *Page) SubmitEdit(ctx context.Context) error {
	p.mu.Lock()
	p.touch()
	switch {
	case p.busy:
		p.mu.Unlock()
		return ErrBusy
	case p.dialog != dialogEdit || p.selected == nil:
		p.mu.Unlock()
		return ErrDialogClosed
	case strings.TrimSpace(p.draft) == "":
		p.mu.Unlock()
		return ErrEmptyDraft
	case p.draftTooLong():
		p.mu.Unlock()
		return ErrDraftTooLong
	}
	id, draft := p.selected.Id, p.draft
	p.busy = true
	p.mu.Unlock()

	defer p.settle()

	if err := p.store.EditPost(ctx, id, draft); err != nil {
		logger.Log.Error("updating post", "component", "manage", "post_id", id, "error", err)
		return nil
	}

	p.mu.Lock()
	p.reset()
	p.mu.Unlock()

	if err := p.store.GetAllPosts(ctx); err != nil {
		logger.Log.Error("fetching posts", "component", "manage", "error", err)
	}
	return nil
}

// ConfirmDelete deletes the selected post. The store drops it from its
// collection; the dialog closes whatever the outcome.
func (p *Page) ConfirmDelete(ctx context.Context) error {
	p.mu.Lock()
	p.touch()
	switch {
	case p.busy:
		p.mu.Unlock()
		return ErrBusy
	case p.dialog != dialogDelete || p.selected == nil:
		p.mu.Unlock()
		return ErrDialogClosed
	}
	id := p.selected.Id
	p.busy = true
	p.mu.Unlock()

	defer p.settle()

	if err := p.store.DeletePost(ctx, id); err != nil {
		logger.Log.Error("deleting post", "component", "manage", "post_id", id, "error", err)
	}
	return nil
}

// settle clears busy and closes the dialog after a store call.
func (p *Page) settle() {
	p.mu.Lock()
	p.reset()
	p.busy = false
	p.mu.Unlock()
}

func (p *Page) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// IdleSince reports when the page was last used.
func (p *Page) IdleSince() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastActivity
}
