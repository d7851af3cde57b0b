package main

import (
	"context"
	"log"

	"farewell-wall-be/internal/bootstrap"
	"farewell-wall-be/internal/config"
	"farewell-wall-be/internal/server"
	"farewell-wall-be/internal/tracer"
	"farewell-wall-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	if container.NatsPub != nil {
		defer container.NatsPub.Close()
	}

	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
