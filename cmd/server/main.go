package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/config"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/logger"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	logToFile := flag.Bool("log-file", false, "log to ~/.trix-server instead of stderr")
	flag.Parse()

	if *logToFile {
		if err := logger.Init(); err != nil {
			log.Fatalf("logger init failed: %v", err)
		}
		defer logger.Close()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("config load failed, using defaults: %v", err)
		cfg = config.Default()
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("server init failed: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("shutting down...")
		srv.Shutdown()
		os.Exit(0)
	}()

	log.Println("🎮 trix server starting...")
	if err := srv.Start(); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
