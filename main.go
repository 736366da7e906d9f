package main

import (
	"fmt"
	"log"

	"github.com/lathees-dev/Budget-App/internal/config"
	"github.com/lathees-dev/Budget-App/internal/database"
	"github.com/lathees-dev/Budget-App/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; JWT_SECRET usually lives there in development
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// the insecure default secret is a deployment error, never a silent fallback
	if cfg.JWT.Secret == config.InsecureDefaultSecret {
		if cfg.Server.Mode == gin.ReleaseMode {
			log.Fatalf("JWT_SECRET is not set; refusing to start in release mode")
		}
		log.Printf("ERROR: JWT_SECRET is not set, using the insecure default; set it before deploying")
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
