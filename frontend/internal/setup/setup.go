package setup

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/itchan-dev/postadmin/frontend/internal/apiclient"
	"github.com/itchan-dev/postadmin/frontend/internal/handler"
	"github.com/itchan-dev/postadmin/frontend/internal/manage"
	"github.com/itchan-dev/postadmin/frontend/internal/markdown"
	"github.com/itchan-dev/postadmin/frontend/internal/store"
	"github.com/itchan-dev/postadmin/frontend/templates"
	"github.com/itchan-dev/postadmin/shared/config"
	"github.com/itchan-dev/postadmin/shared/logger"
	"github.com/itchan-dev/postadmin/shared/middleware/ratelimiter"
)

const (
	templateReloadInterval = 5 * time.Second
	rateLimiterSweep       = 10 * time.Minute
)

type Dependencies struct {
	Handler     *handler.Handler
	Store       *store.PostStore
	Sessions    *manage.Sessions
	RateLimiter *ratelimiter.KeyedRateLimiter
	Public      config.Public
	CancelFunc  context.CancelFunc
}

// NewStore builds the API client and post store shared by both front ends.
func NewStore(cfg *config.Config) *store.PostStore {
	client := apiclient.New(cfg.Public.APIBaseURL, cfg.APIToken(), cfg.Public.RequestTimeout)
	return store.New(client)
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	templateFS := templateSource(cfg.Public.TemplatesDir)
	tmpls, err := templates.Load(templateFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// Create cancellable context for background tasks
	ctx, cancel := context.WithCancel(context.Background())

	postStore := NewStore(cfg)
	postStore.StartBackgroundRefresh(ctx, cfg.Public.RefreshInterval)

	sessions := manage.NewSessions(postStore, cfg.Public.DescriptionMaxLen)
	sessions.StartJanitor(ctx, cfg.Public.SessionTTL)

	limiter := ratelimiter.FivePerSecond()
	limiter.StartCleanup(ctx, rateLimiterSweep)

	h := handler.New(tmpls, cfg.Public, markdown.New(), sessions)
	if cfg.Public.TemplatesDir != "" {
		startTemplateReloader(ctx, h, templateFS)
	}

	return &Dependencies{
		Handler:     h,
		Store:       postStore,
		Sessions:    sessions,
		RateLimiter: limiter,
		Public:      cfg.Public,
		CancelFunc:  cancel,
	}, nil
}

// templateSource returns the embedded templates unless dir overrides them.
func templateSource(dir string) fs.FS {
	if dir == "" {
		return templates.FS
	}
	return os.DirFS(dir)
}

func startTemplateReloader(ctx context.Context, h *handler.Handler, fsys fs.FS) {
	if os.Getenv("ENV") != "development" {
		return
	}
	ticker := time.NewTicker(templateReloadInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tmpls, err := templates.Load(fsys)
				if err != nil {
					logger.Log.Error("template reload failed", "component", "setup", "error", err)
					continue
				}
				h.SetTemplates(tmpls)
			case <-ctx.Done():
				return
			}
		}
	}()
}
