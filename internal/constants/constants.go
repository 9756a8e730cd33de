package constants

// Centralized constants for headers, env keys, routes and log fields.
const (
	// HTTP headers
	HeaderAuthorization = "Authorization"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Authorization prefix for seat tokens
	BearerPrefix = "Bearer "

	// Query parameter accepted by the mirror stream (browsers cannot set
	// headers on websocket upgrades).
	QuerySeatToken = "seat"

	// Seat token issuer
	SeatIssuer = "dungeon-party"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteVersion        = "/version"
	RouteGames          = "/games"
	RouteGameByID       = "/games/:gameID"
	RouteGameStream     = "/games/:gameID/stream"
	RouteGameEncounter  = "/games/:gameID/encounter"
	RouteSelectCard     = "/games/:gameID/select-card"
	RouteSelectTarget   = "/games/:gameID/select-target"
	RouteConfirmTarget  = "/games/:gameID/confirm-target"
	RouteRollAggro      = "/games/:gameID/roll-aggro"
	RouteSpecialAbility = "/games/:gameID/special-ability"
	RouteEnhanceMode    = "/games/:gameID/enhance-mode"
	RouteSelection      = "/games/:gameID/selection"
	RouteReady          = "/games/:gameID/ready"
	RouteGrants         = "/champions/:championID/grants"
)

// Common JSON response keys
const (
	JSONKeyError  = "error"
	JSONKeyGame   = "game"
	JSONKeyEvents = "events"
	JSONKeySeats  = "seats"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest        = "Invalid request"
	ErrGameNotFound          = "Game not found"
	ErrFailedCreateGame      = "Failed to create game"
	ErrFailedFetchGrants     = "Failed to fetch grants"
	ErrFailedListGames       = "Failed to list games"
	ErrAuthRequired          = "Seat token required"
	ErrInvalidSeat           = "Invalid seat token"
	ErrSeatOtherGame         = "Seat token belongs to another game"
	ErrGameOver              = "Game is over"
	ErrWrongPhase            = "Action not allowed in the current phase"
	ErrNotYourTurn           = "It is not this player's turn"
	ErrIllegalTarget         = "Target is not legal for this card"
	ErrTargetRequired        = "Card requires a target"
	ErrNoLegalTarget         = "Card has no legal target"
	ErrCardNotInHand         = "Card is not in hand"
	ErrUnknownPlayer         = "Player not in game"
	ErrSelectionLocked       = "Selection is locked while ready"
	ErrSelectionIncomplete   = "Selection is incomplete"
	ErrResourceNotFull       = "Special resource is not full"
	ErrFailedStoreAction     = "Failed to store action"
	ErrNoNextEncounter       = "No encounter left to start"
	ErrUnsupportedMode       = "Unsupported game mode"
	ErrStreamUpgradeRejected = "Stream upgrade rejected"
)

// Logging field names
const (
	LogFieldGameID    = "game_id"
	LogFieldPlayerID  = "player_id"
	LogFieldCardID    = "card_id"
	LogFieldPhase     = "phase"
	LogFieldTurn      = "turn"
	LogFieldRound     = "round"
	LogFieldCommand   = "command"
	LogFieldDirective = "directive"
	LogFieldAddr      = "addr"
	LogFieldClientID  = "client_id"
	LogFieldPath      = "path"
)
