package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "supplytrack-backend/internal/adapter/http"
	mw "supplytrack-backend/internal/adapter/middleware"
	"supplytrack-backend/internal/adapter/repository/mysql"
	"supplytrack-backend/internal/config"
	"supplytrack-backend/internal/infrastructure/blob"
	"supplytrack-backend/internal/infrastructure/cache"
	"supplytrack-backend/internal/infrastructure/db"
	"supplytrack-backend/internal/notify"
	"supplytrack-backend/internal/realtime"
	itemUC "supplytrack-backend/internal/usecase/item"
	requestUC "supplytrack-backend/internal/usecase/request"
	"supplytrack-backend/internal/usecase/scan"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	blobs, err := blob.NewFSStore(cfg.BlobDir, cfg.BlobBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	var dispatcher notify.Dispatcher
	if cfg.NotifyConfigured() {
		dispatcher = notify.NewEmailDispatcher(
			cfg.NotifyEndpoint, cfg.NotifyServiceID, cfg.NotifyTemplateID, cfg.NotifyUserID)
	} else {
		log.Println("notify: not configured, approval emails disabled")
	}

	itemRepo := mysql.NewItemRepository(gdb)
	requestRepo := mysql.NewRequestRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	items := itemUC.NewUsecase(itemRepo, blobs)
	requests := requestUC.NewUsecase(requestRepo, unit, dispatcher, blobs)
	resolver := scan.NewResolver(items)

	hub := realtime.NewHub(rdb, map[string]realtime.SnapshotFunc{
		realtime.CollectionItems:    realtime.ItemSource(items),
		realtime.CollectionRequests: realtime.RequestSource(requests),
	})

	h := httpadp.NewHandler()
	itemH := httpadp.NewItemHandler(items, hub)
	requestH := httpadp.NewRequestHandler(requests, hub)
	scanH := httpadp.NewScanHandler(resolver, hub)
	uploadH := httpadp.NewUploadHandler(blobs)
	eventsH := httpadp.NewEventsHandler(hub)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Validator = httpadp.NewValidator()

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static(cfg.BlobBaseURL, cfg.BlobDir)

	e.POST("/items", itemH.CreateItem)
	e.PUT("/items/:item_id", itemH.EditItem)
	e.DELETE("/items/:item_id", itemH.DeleteItem)
	e.GET("/items", itemH.ListItems)
	e.GET("/items/:item_id", itemH.GetItem)

	scanIdemp := mw.ScanIdempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	e.POST("/scan", scanH.SubmitScan, scanIdemp)
	e.GET("/scan/:barcode", scanH.SearchScan)

	e.POST("/requests", requestH.SubmitRequest)
	e.PUT("/requests/:request_id", requestH.UpdateRequest)
	e.DELETE("/requests/:request_id", requestH.DeleteRequest)
	e.POST("/requests/:request_id/approve", requestH.ApproveRequest)
	e.GET("/requests", requestH.ListRequests)
	e.GET("/requests/:request_id", requestH.GetRequest)

	e.POST("/uploads", uploadH.Upload)
	e.GET("/events/:collection", eventsH.StreamEvents)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
