package rawg

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strconv"
)

// GetGame fetches the full detail record for a game.
// Returns ErrNotFound when the catalog has no such game.
func (c *Client) GetGame(ctx context.Context, gameID int64) (*Game, error) {
	body, err := c.doRequest(ctx, "/games/"+strconv.FormatInt(gameID, 10), nil)
	if err != nil {
		return nil, err
	}

	var game Game
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("%w: parse game detail: %v", ErrUpstream, err)
	}
	return &game, nil
}
