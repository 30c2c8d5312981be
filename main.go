package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"RetailApp/app/config"
	"RetailApp/app/database"
	"RetailApp/app/services"
	"RetailApp/app/store"
	"RetailApp/app/websocket"

	"github.com/joho/godotenv"
)

func main() {
	// Logger goes first so every later failure lands in the log file.
	loggerService := services.NewLoggerService()
	defer loggerService.Close()
	defer loggerService.RecoverPanic()

	loggerService.LogInfo("Starting Retail Manager")

	if err := godotenv.Load(".env"); err != nil {
		loggerService.LogWarning("No .env file found, using defaults", err.Error())
	}

	cfg, err := config.LoadOrCreate()
	if err != nil {
		loggerService.LogFatal("Failed to load configuration", err)
	}
	if cfg.FirstRun {
		loggerService.LogInfo("First run detected - default configuration created")
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		loggerService.LogFatal("Failed to resolve database path", err)
	}
	db, err := database.Open(dbPath)
	if err != nil {
		loggerService.LogFatal("Failed to open database", err)
	}
	loggerService.LogInfo("Database ready", "Path: "+db.Path())

	st := store.New(db)
	if err := st.Load(); err != nil {
		loggerService.LogFatal("Failed to load store state", err)
	}
	loggerService.LogInfo("Store state loaded",
		fmt.Sprintf("Products: %d, Customers: %d, Sales: %d",
			len(st.Products()), len(st.Customers()), len(st.Sales())))

	alertService := services.NewAlertService(st, cfg)

	wsServer := websocket.NewServer(cfg.System.WebSocketPort)
	wsServer.SetStore(st)
	wsServer.SetAlerts(alertService)
	st.Subscribe(wsServer)
	loggerService.LogInfo("Starting WebSocket server", fmt.Sprintf("Port: %d", cfg.System.WebSocketPort))
	go func() {
		defer loggerService.RecoverPanic()
		if err := wsServer.Start(); err != nil {
			loggerService.LogWarning("WebSocket server stopped", err.Error())
		}
	}()

	sheetsService := services.NewSheetsService(st, cfg)
	scheduler := services.NewReportSchedulerService(cfg, sheetsService)
	if err := scheduler.Start(); err != nil {
		loggerService.LogWarning("Report scheduler not started", err.Error())
	}

	loggerService.CleanOldLogs(30)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	loggerService.LogInfo("Shutting down")
	scheduler.Stop()
	wsServer.Stop()
	if err := db.Close(); err != nil {
		loggerService.LogError("Error closing database", err)
	}
	loggerService.LogInfo("Shutdown complete")
}
