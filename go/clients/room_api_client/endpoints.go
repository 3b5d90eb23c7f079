package room_api_client

const (
	// API Endpoints
	CreateRoomEndpoint  = "/api/create_room"
	JoinRoomEndpoint    = "/api/join"
	RoomEndpoint        = "/api/room"
	VerifyRoomEndpoint  = "/api/verifiy" // path typo is the server's
	StartGameEndpoint   = "/api/start_game"
	CostumesEndpoint    = "/api/costumes"
	SubmitVotesEndpoint = "/api/submit_votes"
	LeaderboardEndpoint = "/api/leaderboard"
	DeleteRoomEndpoint  = "/api/delete_room"

	// Room status values as returned by the server
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"

	// Headers
	NgrokSkipWarningHeader = "ngrok-skip-browser-warning"
)
