package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/geodesy-data/gravity.report/internal/api"
	"github.com/geodesy-data/gravity.report/internal/checklist"
	"github.com/geodesy-data/gravity.report/internal/config"
	"github.com/geodesy-data/gravity.report/internal/db"
	"github.com/geodesy-data/gravity.report/internal/monitoring"
	"github.com/geodesy-data/gravity.report/internal/version"
)

var (
	devMode        = flag.Bool("dev", false, "Run in dev mode")
	listen         = flag.String("listen", ":8080", "Listen address")
	dbFile         = flag.String("db", "surveys.db", "SQLite database path")
	profile        = flag.String("profile", "laboratory", "Threshold profile (laboratory, field or recon)")
	thresholdsFile = flag.String("thresholds", "", "Optional thresholds override file (.json)")
	checklistFile  = flag.String("checklist", "", "Optional checklist template file (.json)")
)

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	// Subcommands run against the opened database and exit.
	if args := flag.Args(); len(args) > 0 {
		if err := runCommand(database, args); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	thresholds, err := config.LoadThresholds(*profile, *thresholdsFile)
	if err != nil {
		log.Fatalf("Failed to load thresholds: %v", err)
	}

	var tpl *checklist.Template
	if *checklistFile != "" {
		tpl, err = checklist.Load(*checklistFile)
	} else {
		tpl, err = checklist.Default()
	}
	if err != nil {
		log.Fatalf("Failed to load checklist template: %v", err)
	}

	monitoring.Logf("gravity.report %s (%s) profile=%s db=%s listening on %s",
		version.Version, version.GitSHA, *profile, *dbFile, *listen)

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()

		// admin debugging routes (accessible only in dev mode or over Tailscale)
		database.AttachAdminRoutes(mux)

		apiServer := api.NewServer(database, thresholds, tpl)
		mux.Handle("/api/", apiServer.ServeMux())

		var handler http.Handler = mux
		if *devMode {
			handler = api.LoggingMiddleware(mux)
		}

		server := &http.Server{
			Addr:    *listen,
			Handler: handler,
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
