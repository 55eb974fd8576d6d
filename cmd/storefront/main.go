package main

import (
	"context"

	"go.uber.org/zap"

	"suxxus-store/internal/catalog"
	"suxxus-store/internal/catalog/fixture"
	"suxxus-store/internal/catalog/remote"
	"suxxus-store/internal/config"
	"suxxus-store/internal/logger"
	"suxxus-store/internal/session"
	"suxxus-store/internal/store"
	"suxxus-store/internal/view"
)

// zapNotifier routes store notifications to the log.
type zapNotifier struct {
	log *zap.Logger
}

func (n zapNotifier) Notify(note store.Notification) {
	entry := n.log.Info
	if note.Level == store.LevelError {
		entry = n.log.Warn
	}
	entry("notification",
		zap.String("title", note.Title),
		zap.String("message", note.Message),
	)
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	sessions, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		log.Fatal("open session store", zap.Error(err))
	}
	defer sessions.Close()

	var client catalog.Client
	switch cfg.CatalogMode {
	case config.ModeRemote:
		client = remote.New(cfg.CatalogURL, cfg.StorefrontToken)
	default:
		client = fixture.NewClient(fixture.New(cfg.JWTSecret))
	}
	log.Info("catalog client ready", zap.String("mode", cfg.CatalogMode))

	ctx := context.Background()
	app := store.New(client, sessions, zapNotifier{log: log}, log)
	app.Restore(ctx)
	app.FetchProducts(ctx, catalog.ProductQuery{SortKey: catalog.SortCreatedAt, Reverse: true})

	st := app.State()
	display := view.ProjectAll(st.Products)
	summary := view.Summarize(st.Cart)

	log.Info("session ready",
		zap.Int("products", len(display)),
		zap.String("cart_id", st.CartID),
		zap.Bool("authenticated", st.Authenticated),
		zap.Int("wishlist", len(st.Wishlist)),
		zap.Int("cart_items", summary.ItemCount),
	)
}
