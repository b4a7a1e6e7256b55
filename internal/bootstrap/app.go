package bootstrap

import (
	"context"
	"time"

	"drawguess-service/config"
	"drawguess-service/internal/api/game"
	gameHub "drawguess-service/internal/api/ws/hub"
	"drawguess-service/pkg/graceful"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	config         config.Config
	postgresRepo   PostgresRepository
	sessionManager SessionManager
	roomRedis      RoomRedisManager
	kafka          Messaging
	hub            *gameHub.Hub
	engine         *game.GameEngine
	fiberApp       *fiber.App
	httpHandlers   map[string]interface{}
	wsHandlers     map[string]interface{}
	ctx            context.Context
	cancel         context.CancelFunc
}

func NewApp(config config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
	app.initDependencies()
	return app
}

func (a *App) initDependencies() {
	a.postgresRepo = InitDatabase(a.config)
	sessionManager := InitSessionRedis(a.config)
	a.sessionManager = sessionManager
	a.roomRedis = InitRoomRedis(sessionManager)
	a.kafka = SetupMessaging(a.config)
	a.hub, a.engine = InitGame(a.ctx, a.config, a.postgresRepo, a.roomRedis, a.kafka)
	a.httpHandlers = SetupHTTPHandlers(a.engine)
	a.wsHandlers = SetupWSHandlers(a.hub, a.engine)
	a.fiberApp = SetupServer(a.config, a.sessionManager, a.httpHandlers, a.wsHandlers)
}

func (a *App) Start() {
	go func() {
		port := a.config.Server.Port
		if err := a.fiberApp.Listen(":" + port); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", a.config.Server.Port))

	defer a.close()

	graceful.WaitForShutdown(a.fiberApp, 5*time.Second, a.ctx)
}

func (a *App) close() {
	a.cancel()
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			zap.L().Error("Failed to close kafka producer", zap.Error(err))
		}
	}
	if err := a.sessionManager.Close(); err != nil {
		zap.L().Error("Failed to close redis", zap.Error(err))
	}
	if err := a.postgresRepo.Close(); err != nil {
		zap.L().Error("Failed to close database", zap.Error(err))
	}
}
