package bootstrap

import (
	"drawguess-service/internal/api/game"
	httpHandler "drawguess-service/internal/api/http/handler"
	httpUsecase "drawguess-service/internal/api/http/usecase"
	gameHub "drawguess-service/internal/api/ws/hub"
	wsHandler "drawguess-service/internal/api/ws/handler"
	wsUsecase "drawguess-service/internal/api/ws/usecase"
)

func SetupHTTPHandlers(engine *game.GameEngine) map[string]interface{} {
	createRoomUseCase := httpUsecase.NewCreateRoomUseCase(engine)
	createRoomHandler := httpHandler.NewCreateRoomHandler(createRoomUseCase)

	joinRoomUseCase := httpUsecase.NewJoinRoomUseCase(engine)
	joinRoomHandler := httpHandler.NewJoinRoomHandler(joinRoomUseCase)

	leaveRoomUseCase := httpUsecase.NewLeaveRoomUseCase(engine)
	leaveRoomHandler := httpHandler.NewLeaveRoomHandler(leaveRoomUseCase)

	updateSettingsUseCase := httpUsecase.NewUpdateSettingsUseCase(engine)
	updateSettingsHandler := httpHandler.NewUpdateSettingsHandler(updateSettingsUseCase)

	getActiveRoomsUseCase := httpUsecase.NewGetActiveRoomsUseCase(engine)
	getActiveRoomsHandler := httpHandler.NewGetActiveRoomsHandler(getActiveRoomsUseCase)

	getRoomUseCase := httpUsecase.NewGetRoomUseCase(engine)
	getRoomHandler := httpHandler.NewGetRoomHandler(getRoomUseCase)

	return map[string]interface{}{
		"create-room":     createRoomHandler,
		"join-room":       joinRoomHandler,
		"leave-room":      leaveRoomHandler,
		"update-settings": updateSettingsHandler,
		"get-rooms":       getActiveRoomsHandler,
		"get-room":        getRoomHandler,
	}
}

func SetupWSHandlers(hub *gameHub.Hub, engine *game.GameEngine) map[string]interface{} {
	roomConnect := wsUsecase.NewRoomConnectUseCase(hub, engine)
	roomConnectHandler := wsHandler.NewWebSocketRoomHandler(roomConnect)

	return map[string]interface{}{
		"room-connect": roomConnectHandler,
	}
}
