package game

import "encoding/json"

// Envelope is the wire format in both directions:
// {"method":"...","success":true,"data":{...}}.
// Client→server messages omit success; server→client always sets it.
type Envelope struct {
	Method  string          `json:"method"`
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// inbound payloads

type JoinGameData struct {
	GameID string `json:"gameId"`
}

// CursorData carries the cosmetic letter/backspace relay. The opponent sees
// which cell filled or cleared, never the letter itself.
type CursorData struct {
	CurrentRow   int `json:"currentRow"`
	CurrentBlock int `json:"currentBlock"`
}

type MakeGuessData struct {
	Guess []string `json:"guess"`
}

// outbound payloads

type FailureData struct {
	Message string `json:"message"`
}

type PlayerNumberData struct {
	Number string `json:"number"` // "one" | "two"
}

// SessionData is the client-visible view of a session. The target word is
// deliberately absent.
type SessionData struct {
	GameID    string `json:"gameId"`
	PlayerOne string `json:"playerOne"`
	PlayerTwo string `json:"playerTwo,omitempty"`
	Status    Status `json:"status"`
}

type PlayerReadyData struct {
	Player string `json:"player"` // "one" | "two"
}

type LetterResult struct {
	Letter string `json:"letter"`
	Match  int    `json:"match"`
}

// OpponentLetterResult hides the guessed letter from the opponent: only the
// color pattern crosses the wire.
type OpponentLetterResult struct {
	Match int `json:"match"`
}

type GuessResponseData struct {
	Response   []LetterResult `json:"response"`
	CurrentRow int            `json:"currentRow"`
}

type OpponentGuessResponseData struct {
	OpponentResponse   []OpponentLetterResult `json:"opponentResponse"`
	OpponentCurrentRow int                    `json:"opponentCurrentRow"`
}

type YourGameEndedData struct {
	Correct bool `json:"correct"`
}

// RevealData carries the target word on disconnect notices; Word is null for
// pre-game disconnects where no word was ever assigned.
type RevealData struct {
	Word *string `json:"word"`
}

type QueueMessageData struct {
	Message string `json:"message"`
}

type PlayerStatsData struct {
	Points         int      `json:"points"`
	Rows           int      `json:"rows"`
	InvalidGuesses []string `json:"invalidGuesses"`
	Time           string   `json:"time"`
	Win            bool     `json:"win"`
	Disconnected   bool     `json:"disconnected"`
}

type GameEndedData struct {
	Word      string          `json:"word"`
	PlayerOne PlayerStatsData `json:"playerOne"`
	PlayerTwo PlayerStatsData `json:"playerTwo"`
	Winner    string          `json:"winner"` // "one" | "two" | "draw"
}
