package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/planora/eventops/internal/application/service"
	"github.com/planora/eventops/internal/config"
	"github.com/planora/eventops/internal/infrastructure/persistence/repository"
	"github.com/planora/eventops/internal/infrastructure/persistence/sqlite"
	httpiface "github.com/planora/eventops/internal/interfaces/http"
	"github.com/planora/eventops/internal/report"
	"github.com/planora/eventops/pkg/database"
	"github.com/planora/eventops/pkg/utils"
)

func main() {
	// Local overrides; missing .env is fine
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting event back office",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create report output directory", zap.Error(err))
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db.DB, logger)
	taskRepo := repository.NewTaskRepository(db.DB, logger)
	budgetRepo := repository.NewBudgetItemRepository(db.DB, logger)
	approvalRepo := repository.NewApprovalRepository(db.DB, logger)
	profileRepo := repository.NewProfileRepository(db.DB, logger)
	teamRepo := repository.NewTeamRepository(db.DB, logger)
	departmentRepo := repository.NewDepartmentRepository(db.DB, logger)
	membershipRepo := repository.NewTeamMembershipRepository(db.DB, logger)

	txManager := sqlite.NewDB(db.DB, logger)

	// Services
	serviceLogger := &zapLoggerAdapter{logger: logger}
	engine := service.NewLifecycleEngine(eventRepo, serviceLogger)
	approvalService := service.NewApprovalService(approvalRepo, eventRepo, engine, serviceLogger)
	eventService := service.NewEventService(
		eventRepo, taskRepo, budgetRepo, approvalRepo,
		approvalService, engine, txManager, serviceLogger)
	taskService := service.NewTaskService(taskRepo, eventRepo, engine, serviceLogger)
	budgetService := service.NewBudgetService(budgetRepo, eventRepo, engine, serviceLogger)
	reportService := service.NewReportService(
		eventRepo, taskRepo, budgetRepo,
		report.NewExcelWriter(logger), cfg.Report.OutputDir, serviceLogger)
	directoryService := service.NewDirectoryService(
		profileRepo, teamRepo, departmentRepo, membershipRepo, serviceLogger)

	server := httpiface.NewServer(httpiface.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, httpiface.Services{
		Events:    eventService,
		Tasks:     taskService,
		Budget:    budgetService,
		Approvals: approvalService,
		Reports:   reportService,
		Directory: directoryService,
	}, serviceLogger)

	// Shut down on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// zapLoggerAdapter adapts zap.Logger to the service.Logger interface.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Warn(msg string, keysAndValues ...interface{}) {
	a.logger.Warn(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
