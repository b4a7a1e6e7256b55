package domain

// Inbound commands.
const (
	CmdCreateRoom     = "create-room"
	CmdJoinRoom       = "join-room"
	CmdLeaveRoom      = "leave-room"
	CmdStartGame      = "start-game"
	CmdSubmitGuess    = "submit-guess"
	CmdDrawStroke     = "draw-stroke"
	CmdSendMessage    = "send-message"
	CmdClearCanvas    = "clear-canvas"
	CmdTyping         = "typing"
	CmdUpdateSettings = "update-settings"
)

// Outbound events.
const (
	EventRoomJoined      = "room-joined"
	EventPlayerJoined    = "player-joined"
	EventPlayerLeft      = "player-left"
	EventPlayerOffline   = "player-offline"
	EventSettingsUpdated = "settings-updated"
	EventGameStarted     = "game-started"
	EventRoundStarted    = "round-started"
	EventRoundWord       = "round-word"
	EventRoundEnded      = "round-ended"
	EventGameEnded       = "game-ended"
	EventGuessResult     = "guess-result"
	EventStrokeReceived  = "stroke-received"
	EventMessageReceived = "message-received"
	EventCanvasCleared   = "canvas-cleared"
	EventUserTyping      = "user-typing"
	EventError           = "error"
)

// Room lifecycle notifications published on the room's redis channel.
const (
	MsgRoomCreated = "room_created"
	MsgRoomDeleted = "room_deleted"
	MsgGameStarted = "game_started"
	MsgGameEnded   = "game_ended"
)
