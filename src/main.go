package main

import (
	"log"

	"github.com/fileproc-eval/task-coordinator-service/src/config"
	"github.com/fileproc-eval/task-coordinator-service/src/server"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv := server.NewServer(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Service exited with error: %v", err)
	}
}
