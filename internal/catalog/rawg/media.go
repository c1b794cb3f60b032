package rawg

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strconv"
)

// GetScreenshots fetches the screenshot list for a game.
func (c *Client) GetScreenshots(ctx context.Context, gameID int64) ([]Screenshot, error) {
	return fetchList[Screenshot](ctx, c, gameID, "screenshots")
}

// GetTrailers fetches the hosted trailer clips for a game.
func (c *Client) GetTrailers(ctx context.Context, gameID int64) ([]Trailer, error) {
	return fetchList[Trailer](ctx, c, gameID, "movies")
}

// GetVideos fetches the external (YouTube) videos for a game.
func (c *Client) GetVideos(ctx context.Context, gameID int64) ([]Video, error) {
	return fetchList[Video](ctx, c, gameID, "youtube")
}

func fetchList[T any](ctx context.Context, c *Client, gameID int64, segment string) ([]T, error) {
	path := "/games/" + strconv.FormatInt(gameID, 10) + "/" + segment
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: parse %s response: %v", ErrUpstream, segment, err)
	}
	return resp.Results, nil
}
