package bootstrap

import (
	"time"

	"drawguess-service/config"
	httpGameHandler "drawguess-service/internal/api/http/handler"
	wsHandler "drawguess-service/internal/api/ws/handler"
	"drawguess-service/internal/handler"
	"drawguess-service/internal/server"

	"github.com/gofiber/fiber/v2"
)

func SetupServer(config config.Config, sessions handler.SessionStore, httpHandlers map[string]interface{}, wsHandlers map[string]interface{}) *fiber.App {
	serverConfig := server.Config{
		Port:         config.Server.Port,
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		AllowOrigins: config.Server.AllowOrigins,
	}

	app := server.NewFiberApp(serverConfig)

	createRoomHandler := httpHandlers["create-room"].(*httpGameHandler.CreateRoomHandler)
	joinRoomHandler := httpHandlers["join-room"].(*httpGameHandler.JoinRoomHandler)
	leaveRoomHandler := httpHandlers["leave-room"].(*httpGameHandler.LeaveRoomHandler)
	updateSettingsHandler := httpHandlers["update-settings"].(*httpGameHandler.UpdateSettingsHandler)
	getActiveRoomsHandler := httpHandlers["get-rooms"].(*httpGameHandler.GetActiveRoomsHandler)
	getRoomHandler := httpHandlers["get-room"].(*httpGameHandler.GetRoomHandler)

	authGuard := handler.AuthGuard(sessions)
	limiter := handler.NewRateLimiter(handler.RateLimitConfig{
		Participant: handler.LimitConfig{
			RequestsPerMinute: config.Game.HTTPRequestsPerMinute,
			Burst:             config.Game.HTTPBurst,
		},
	})

	rooms := app.Group("/rooms", authGuard, limiter.Middleware())
	rooms.Get("/", handler.HandleWithFiber[httpGameHandler.GetActiveRoomsRequest, httpGameHandler.GetActiveRoomsResponse](getActiveRoomsHandler))
	rooms.Post("/", handler.HandleWithFiber[httpGameHandler.CreateRoomRequest, httpGameHandler.CreateRoomResponse](createRoomHandler))
	rooms.Get("/:room_code", handler.HandleWithFiber[httpGameHandler.GetRoomRequest, httpGameHandler.GetRoomResponse](getRoomHandler))
	rooms.Post("/:room_code/join", handler.HandleWithFiber[httpGameHandler.JoinRoomRequest, httpGameHandler.JoinRoomResponse](joinRoomHandler))
	rooms.Post("/:room_code/leave", handler.HandleWithFiber[httpGameHandler.LeaveRoomRequest, httpGameHandler.LeaveRoomResponse](leaveRoomHandler))
	rooms.Patch("/:room_code/settings", handler.HandleWithFiber[httpGameHandler.UpdateSettingsRequest, httpGameHandler.UpdateSettingsResponse](updateSettingsHandler))

	gameHandler := wsHandlers["room-connect"].(*wsHandler.WebSocketRoomHandler)
	app.Get("/ws", authGuard, handler.UpgradeGuard(), handler.HandleWithFiberWS[wsHandler.WebSocketRoomRequest](gameHandler))

	return app
}
