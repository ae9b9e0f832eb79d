package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/arlobridge/calx/internal/config"
	"github.com/arlobridge/calx/internal/daemon"
	"github.com/arlobridge/calx/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Directory holding config.yaml (default: ~/.config/calx)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		os.Exit(0)
	}

	log.Printf("Starting calx daemon (%s)...", version.GetVersion())

	if *configPath != "" {
		config.CustomConfigPath = *configPath
		log.Printf("Using custom config: %s", *configPath)
	}

	config.InitConfig()

	d := daemon.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	if err := d.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Daemon error: %v\n", err)
		os.Exit(1)
	}

	log.Println("calx daemon stopped")
}
