package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mo-sami19/zynk/chat"
	"github.com/mo-sami19/zynk/content"
	"github.com/mo-sami19/zynk/controllers"
	"github.com/mo-sami19/zynk/fallback"
	"github.com/mo-sami19/zynk/middleware"
	"github.com/mo-sami19/zynk/routes"
	"github.com/mo-sami19/zynk/storage"
)

func main() {
	// Load .env if present (do not overwrite already-set environment variables).
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	// Redis and the archive database are both optional; the gateway serves
	// from the bundled static data and in-process state without them.
	storage.InitRedis()
	if err := storage.InitDB(); err != nil {
		log.Fatalf("failed to connect archive database: %v", err)
	}

	client := content.NewClientFromEnv()

	static := fallback.NewStore()
	if err := static.Err(); err != nil {
		log.Fatalf("static content bundle is broken: %v", err)
	}

	var sessionStore chat.Store
	if storage.Redis != nil {
		sessionStore = chat.NewRedisStore(storage.Redis, 0)
	} else {
		log.Println("[chat] redis unavailable, sessions held in memory only")
		sessionStore = chat.NewMemoryStore()
	}

	var archive *storage.Archive
	flusherDone := make(chan struct{})
	managerOpts := []chat.ManagerOption{}
	if storage.DB != nil {
		archive = storage.NewArchive(storage.DB, client)
		managerOpts = append(managerOpts, chat.WithArchiver(archive))
		archive.StartContactFlusher(flusherDone, 5*time.Minute)
	}

	chatMgr := chat.NewManager(client, sessionStore, managerOpts...)
	cache := storage.NewCache(storage.Redis, 0)

	ctrl := controllers.New(client, static, cache, chatMgr, archive)
	router := routes.InitRouter(ctrl)

	// Logging -> Security headers -> Request ID -> Max Body -> Timeout -> Recovery
	handler := middleware.RequestLogMiddleware(
		middleware.SecurityHeadersMiddleware(
			middleware.RequestIDMiddleware(
				middleware.MaxBodyMiddleware(
					middleware.TimeoutMiddleware(
						middleware.RecoveryMiddleware(router),
					),
				),
			),
		),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Gateway starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	close(flusherDone)
	chatMgr.Stop()
	ctrl.Close()

	log.Println("Server exited")
}
