package main

import (
	"strings"

	"outage-notifier/internal/api"
	"outage-notifier/internal/config"
	"outage-notifier/internal/database"
	"outage-notifier/internal/directory"
	"outage-notifier/internal/notify"
	"outage-notifier/internal/whatsapp"
	"outage-notifier/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	pricing := notify.Snapshot{
		Currency:        cfg.Currency,
		DefaultCategory: strings.ToLower(cfg.DefaultCategory),
		Strict:          cfg.StrictPricing,
		Rates: map[string]float64{
			"service":   cfg.PriceService,
			"utility":   cfg.PriceUtility,
			"marketing": cfg.PriceMarketing,
		},
	}

	dir := directory.NewService(db)
	client := whatsapp.NewClient(cfg)
	broadcaster := whatsapp.NewBroadcaster(dir, client, pricing, cfg.SendWorkers, logger)
	controller := notify.NewController(pricing, broadcaster, cfg.SendTimeout, logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	pricingHandler := api.NewPricingHandler(pricing)
	areaHandler := api.NewAreaHandler(dir)
	composeHandler := api.NewComposeHandler(dir)
	sendHandler := api.NewSendHandler(controller, pricing, db, hub, logger)
	auditHandler := api.NewAuditHandler(db)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/public_config", pricingHandler.GetPublicConfig)
		apiGroup.GET("/areas", areaHandler.GetAreas)
		apiGroup.POST("/compose", composeHandler.Compose)
		apiGroup.POST("/eta/quickpick", composeHandler.QuickPick)
		apiGroup.POST("/send", sendHandler.Send)
		apiGroup.GET("/audit", auditHandler.GetAudits)
		apiGroup.GET("/audit/export", auditHandler.ExportAudits)
	}

	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("run server", zap.Error(err))
	}
}
