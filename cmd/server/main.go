package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-wave-defense/internal/api"
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/defs"
)

func main() {
	bal := config.DefaultBalance()
	if path := os.Getenv("BALANCE_FILE"); path != "" {
		loaded, err := config.LoadBalance(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load balance file: %v\n", err)
			os.Exit(1)
		}
		bal = loaded
	}
	if path := os.Getenv("DEFS_FILE"); path != "" {
		if err := defs.LoadDefinitions(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load definitions file: %v\n", err)
			os.Exit(1)
		}
	}

	manager := api.NewManager(bal)
	handler := api.NewHandler(manager)

	addr := ":" + getEnv("PORT", "8080")
	server := &http.Server{
		Addr:    addr,
		Handler: handler.Routes(),
	}

	go func() {
		fmt.Printf("Server starting on %s\n", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
