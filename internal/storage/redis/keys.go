package redis

import (
	"fmt"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "tictactoe"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}
