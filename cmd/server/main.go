package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/arcadia-social/socialfeed-backend/server/auth"
	"github.com/arcadia-social/socialfeed-backend/server/handlers"
	"github.com/arcadia-social/socialfeed-backend/server/middlewares"
	"github.com/arcadia-social/socialfeed-backend/utils"
	"github.com/arcadia-social/socialfeed-backend/utils/dotenv"
	Flag "github.com/arcadia-social/socialfeed-backend/utils/flag"
	Logger "github.com/arcadia-social/socialfeed-backend/utils/log"
)

func main() {
	Flag.ParseFlags()
	dotenv.LoadDotEnvs()

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Errorf("failed to connect to database: %v", err)
		os.Exit(1)
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		Logger.Errorf("failed to migrate database: %v", err)
		os.Exit(1)
	}

	tokenService, err := auth.NewTokenServiceFromEnv()
	if err != nil {
		Logger.Errorf("failed to configure token service: %v", err)
		os.Exit(1)
	}
	middlewares.Setup(tokenService)

	router := gin.Default()
	router.Use(cors.Default())
	handlers.RegisterRoutes(router, handlers.New(db, tokenService))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	Logger.Infof("===== SocialFeed Server Started =====")
	router.Run(":" + port)
}
