package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/buffercalc/internal/catalog"
	"github.com/mamadbah2/buffercalc/internal/config"
	"github.com/mamadbah2/buffercalc/internal/export"
	"github.com/mamadbah2/buffercalc/internal/i18n"
	"github.com/mamadbah2/buffercalc/internal/repository/mongodb"
	"github.com/mamadbah2/buffercalc/internal/repository/sheets"
	"github.com/mamadbah2/buffercalc/internal/scheduler"
	"github.com/mamadbah2/buffercalc/internal/server/handlers"
	"github.com/mamadbah2/buffercalc/internal/server/router"
	commandsvc "github.com/mamadbah2/buffercalc/internal/service/commands"
	recipesvc "github.com/mamadbah2/buffercalc/internal/service/recipe"
	whatsappsvc "github.com/mamadbah2/buffercalc/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/buffercalc/pkg/clients/whatsapp"
	"github.com/mamadbah2/buffercalc/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	}

	var source catalog.Source
	switch cfg.Catalog.Source {
	case config.CatalogFile:
		source = catalog.NewFileSource(cfg.Catalog.File)
	case config.CatalogHTTP:
		source = catalog.NewHTTPSource(cfg.Catalog.URL)
	case config.CatalogMongoDB:
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		source = catalog.NewMongoSource(mongoRepo)
	case config.CatalogSheets:
		source = catalog.NewSheetSource(sheetsRepo, cfg.Catalog.StockRange, cfg.Catalog.SolidRange, baseLogger.Named("catalog.sheets"))
	default:
		source = catalog.NewStaticSource(catalog.Default())
	}

	store := catalog.NewStore(source, catalog.Default(), baseLogger.Named("catalog"))
	if err := store.Refresh(ctx); err != nil {
		baseLogger.Fatal("failed to load catalog", zap.Error(err))
	}

	templatePath := cfg.Export.TemplatePath
	if _, err := os.Stat(templatePath); err != nil {
		baseLogger.Warn("export template not found, using a blank workbook", zap.String("path", templatePath))
		templatePath = ""
	}

	exporters := []export.Exporter{export.NewXLSXExporter(templatePath, export.DefaultLayout(), baseLogger.Named("export.xlsx"))}
	if sheetsRepo != nil {
		exporters = append(exporters, export.NewSheetsExporter(sheetsRepo, cfg.Export.SheetTab, export.DefaultLayout(), baseLogger.Named("export.sheets")))
	}

	lang := i18n.Lang(cfg.Server.DefaultLang)
	recipes := recipesvc.NewService(store, baseLogger.Named("svc.recipe"), exporters...)

	var webhookHandler *handlers.WebhookHandler
	if cfg.WhatsApp.Enabled() {
		dispatcher := commandsvc.NewService(recipes, lang, baseLogger.Named("svc.commands"))
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, dispatcher, baseLogger.Named("svc.whatsapp"))
		webhookHandler = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
	} else {
		baseLogger.Warn("whatsapp token missing, chat front-end disabled")
	}

	engine := router.New(handlers.NewRecipeHandler(recipes, lang, baseLogger.Named("handlers.recipe")), webhookHandler, baseLogger.Named("router"))

	if cfg.Catalog.RefreshCron != "" {
		sched := scheduler.NewScheduler(cfg.Catalog.RefreshCron, store, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("catalog_source", source.Name()),
			zap.Strings("export_targets", recipes.Targets()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
