package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/controllers"
	"github.com/rice-apps/rice-bikes-go/mailer"
	"github.com/rice-apps/rice-bikes-go/middlewares"
	"github.com/rice-apps/rice-bikes-go/models"
	"github.com/rice-apps/rice-bikes-go/routes"
	"github.com/rice-apps/rice-bikes-go/service"
	"github.com/rice-apps/rice-bikes-go/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg.AppEnv)
	defer logger.Sync()

	utils.SetJWTSecret(cfg.JWTSecret)

	config.ConnectDB(cfg)

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Item{},
		&models.Repair{},
		&models.Bike{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.TransactionRepair{},
		&models.Action{},
		&models.Order{},
		&models.OrderRequest{},
		&models.EmailRecord{},
	)

	config.SeedDefaults(cfg)

	mail := mailer.New(cfg.SMTP, config.DB, logger)
	svc := service.New(config.DB, cfg.Shop)
	controllers.Setup(svc, mail, logger)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(logger))
	r.Use(gin.Recovery())

	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Rice Bikes API is running"})
	})

	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
