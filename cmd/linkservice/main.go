package main

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/atinyakov/go-link-service/internal/app/handler"
	"github.com/atinyakov/go-link-service/internal/app/server"
	"github.com/atinyakov/go-link-service/internal/app/service"
	"github.com/atinyakov/go-link-service/internal/config"
	"github.com/atinyakov/go-link-service/internal/logger"
	"github.com/atinyakov/go-link-service/internal/repository"
	"github.com/atinyakov/go-link-service/internal/storage"
	"github.com/atinyakov/go-link-service/internal/worker"

	_ "net/http/pprof"
)

// Click batching parameters for the background worker.
const (
	clickBatchSize     = 25
	clickFlushInterval = 10 * time.Second
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	log := logger.New()
	defer func() {
		_ = log.Log.Sync()
	}()

	if err := log.Init(options.LogLevel); err != nil {
		panic(err)
	}
	zapLogger := log.Log

	if options.EnablePprof {
		go func() {
			zapLogger.Info("starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	var store storage.Store
	if options.DatabaseDSN != "" {
		zapLogger.Info("using postgres store")
		db, err := repository.InitDB(options.DatabaseDSN, zapLogger)
		if err != nil {
			panic(err)
		}
		defer db.Close()
		store = repository.New(db, zapLogger)
	} else {
		zapLogger.Info("using in-memory store")
		store = storage.NewMemoryStore()
	}

	clickWorker := worker.NewClickTaskWorker(zapLogger, store, clickBatchSize, clickFlushInterval)
	go clickWorker.FlushRecords()

	auth := service.NewAuth(options.JWTSecret)
	audit := service.NewAudit(store, zapLogger)
	gen := service.NewCodeGenerator(options.CodeLength)
	links := service.NewLinks(store, gen, audit, zapLogger, options.BaseURL)
	recorder := service.NewClickRecorder(store, zapLogger, clickWorker.GetInChannel())
	resolver := service.NewResolver(store, recorder, zapLogger, options.ReservedPathSet())
	analytics := service.NewAnalytics(store)
	principals := service.NewPrincipals(store, audit)

	r := server.Init(server.Deps{
		Logger:        zapLogger,
		Auth:          auth,
		Principals:    principals,
		Links:         handler.NewLink(links, analytics, zapLogger),
		Redirect:      handler.NewRedirect(resolver, zapLogger, options.BaseURL),
		Admin:         handler.NewAdmin(links, principals, audit, zapLogger),
		Health:        handler.NewHealth(links, zapLogger),
		TrustedSubnet: options.TrustedSubnet,
	})

	if options.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:  autocert.DirCache("cache-dir"),
			Prompt: autocert.AcceptTOS,
		}
		srv := &http.Server{
			Addr:      ":443",
			Handler:   r,
			TLSConfig: manager.TLSConfig(),
		}
		zapLogger.Info("server is running with TLS", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServeTLS("", ""); err != nil {
			panic(err)
		}
	} else {
		zapLogger.Info("server is running", zap.String("addr", options.Addr))
		if err := http.ListenAndServe(options.Addr, r); err != nil {
			panic(err)
		}
	}
}
