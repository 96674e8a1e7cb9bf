package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jengzang/hotel-bookings-go/internal/api"
	"github.com/jengzang/hotel-bookings-go/internal/config"
	"github.com/jengzang/hotel-bookings-go/internal/database"
	"github.com/jengzang/hotel-bookings-go/internal/dataset"
	"github.com/jengzang/hotel-bookings-go/internal/handler"
	"github.com/jengzang/hotel-bookings-go/internal/repository"
	"github.com/jengzang/hotel-bookings-go/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// 数据集缓存
	loads := repository.NewLoadRepository(db)
	cache := dataset.NewCache(cfg.DataPath, dataset.WithLoadHook(service.LoadRecorder(loads)))
	if _, err := cache.Get(); err != nil {
		log.Fatal("Failed to load dataset:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WatchSource {
		monitor, err := dataset.NewMonitor(cache)
		if err != nil {
			log.Printf("[Monitor] Disabled: %v", err)
		} else {
			defer monitor.Close()
			go func() {
				if err := monitor.Run(ctx); err != nil {
					log.Printf("[Monitor] Stopped: %v", err)
				}
			}()
		}
	}

	if cfg.RefreshInterval > 0 {
		job, err := dataset.StartRefreshJob(cache, cfg.RefreshInterval)
		if err != nil {
			log.Fatal("Failed to start refresh job:", err)
		}
		defer job.Stop()
	}

	dashboard := service.NewDashboardService(cache, loads, cfg.SampleSize)
	router := api.SetupRouter(cfg, api.Handlers{
		Dashboard: handler.NewDashboardHandler(dashboard, service.NewExportService(dashboard)),
		Admin:     handler.NewAdminHandler(dashboard),
	})

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	go func() {
		if err := router.Run(cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
}
