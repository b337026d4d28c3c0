package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/muxury/storefront/config"
	"github.com/muxury/storefront/internal/adapter/authapi"
	"github.com/muxury/storefront/internal/adapter/catalog"
	"github.com/muxury/storefront/internal/adapter/httphandler"
	"github.com/muxury/storefront/internal/adapter/kafka"
	"github.com/muxury/storefront/internal/adapter/storage"
	"github.com/muxury/storefront/internal/core/port"
	"github.com/muxury/storefront/internal/core/service"
	"github.com/muxury/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type stores struct {
	cart     port.Carter
	wishlist port.Wishlister
	views    port.ViewsRecorder
	sessions port.SessionManager
}

type App struct {
	ctx           context.Context
	cfg           config.Config
	catalog       *catalog.Catalog
	kv            *storage.KV
	viewsProducer *kafka.ViewsProducer
	stores        stores
	httpServer    httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCatalog()
	app.initStorage()
	app.initViewsProducer()
	app.initStores()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	c, err := catalog.Load(app.cfg.CatalogFile)
	if err != nil {
		app.fallDown(op, err)
	}
	app.catalog = c
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	kv, err := storage.NewKV(app.cfg.DataDir)
	if err != nil {
		app.fallDown(op, err)
	}
	app.kv = kv
}

// initViewsProducer is a no-op when the broker is disabled: the history
// store works without analytics.
func (app *App) initViewsProducer() {
	const op = "App.initViewsProducer"

	if !app.cfg.Broker.Enabled {
		slog.Info("broker is disabled, view events are not produced")
		return
	}

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.ProductViewsTopic + "-value"
	serde, err := schema.NewSerdeProductViewV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewViewsProducer(
		kafka.ProducerClientOpt(
			app.ctx, app.cfg.Broker.SeedBrokers, app.cfg.Broker.ProductViewsTopic,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.viewsProducer = &producer
}

func (app *App) initStores() {
	var views port.ViewsProducer
	if app.viewsProducer != nil {
		views = app.viewsProducer
	}

	auth := service.NewAuth(authapi.New(app.cfg.AuthBackend.BaseURL), app.kv)
	auth.Restore(app.ctx)

	app.stores.cart = service.NewCart(app.catalog, app.kv)
	app.stores.wishlist = service.NewWishlist(app.catalog, app.kv)
	app.stores.views = service.NewRecent(app.catalog, app.catalog, app.kv, views)
	app.stores.sessions = auth
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.catalog, app.stores.views)
	httphandler.RegisterCart(mux, app.catalog, app.stores.cart)
	httphandler.RegisterWishlist(mux, app.stores.wishlist)
	httphandler.RegisterAuth(mux, app.stores.sessions)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.viewsProducer != nil {
		app.viewsProducer.Close()
	}
	app.kv.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
