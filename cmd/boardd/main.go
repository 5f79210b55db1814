package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mg "chess-board/chessmg"
	"chess-board/internal/config"
	"chess-board/internal/server"
	"chess-board/render"
	"chess-board/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	gen := mg.NewGenerator(
		mg.WithFriendlyCapture(cfg.Generator.FriendlyCapture),
		mg.WithSlidingPieces(cfg.Generator.SlidingPieces),
	)
	svc := server.NewService(st, gen, render.NewRenderer(cfg.Render.SquareSize), server.WithAccessLog(os.Stdout))

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: svc}
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s (store=%s friendly=%v sliders=%v)",
		cfg.Server.Addr, cfg.Store.Backend, cfg.Generator.FriendlyCapture, cfg.Generator.SlidingPieces)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("serve: %v", err)
		stop()
	}
	// In-flight requests finish before the store is closed.
	<-drained
}

func openStore(ctx context.Context, cfg *config.Configuration) (store.Store, error) {
	if cfg.Store.Backend == config.BackendMongo {
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database, cfg.Store.Collection, cfg.Store.Timeout)
	}
	return store.NewMemoryStore(), nil
}
