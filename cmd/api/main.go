package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"rentio.org/internal/auth"
	"rentio.org/internal/httpapi"
	"rentio.org/internal/obs"
	"rentio.org/internal/rental"
	"rentio.org/internal/tenant"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	dsn := os.Getenv("RENTIO_PG_DSN")
	if dsn == "" {
		log.Fatal("RENTIO_PG_DSN is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	verifier, err := auth.NewTokenVerifier(os.Getenv("RENTIO_AUTH_SECRET"))
	if err != nil {
		log.Fatalf("configure token verifier: %v", err)
	}

	tenants := tenant.NewPGStore(db)
	api := httpapi.New(httpapi.Config{
		Verifier:   verifier,
		Tokens:     verifier,
		Evaluator:  auth.NewEvaluator(auth.NewMatrix()),
		Gate:       auth.NewSubscriptionGate(tenants),
		Orders:     rental.NewPGStore(db),
		Tenants:    tenants,
		ReadyProbe: httpapi.ReadyProbe{DB: db},
		Version:    version,
	})

	addr := os.Getenv("RENTIO_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting rentio-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = db.Close()
	log.Println("Stopped")
}
