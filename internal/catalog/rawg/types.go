package rawg

// Game is a catalog record as returned by the RAWG search and detail
// endpoints. The detail endpoint fills more fields than search results do.
type Game struct {
	ID              int64          `json:"id"`
	Slug            string         `json:"slug"`
	Name            string         `json:"name"`
	Description     string         `json:"description_raw,omitempty"`
	Released        string         `json:"released,omitempty"`
	BackgroundImage string         `json:"background_image,omitempty"`
	Website         string         `json:"website,omitempty"`
	Rating          float64        `json:"rating"`
	RatingsCount    int            `json:"ratings_count"`
	Metacritic      *int           `json:"metacritic,omitempty"`
	Playtime        int            `json:"playtime,omitempty"`
	Genres          []Genre        `json:"genres,omitempty"`
	Platforms       []GamePlatform `json:"platforms,omitempty"`
}

// Genre is a catalog genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// GamePlatform wraps a platform entry in a game record.
type GamePlatform struct {
	Platform Platform `json:"platform"`
}

// Platform describes a platform a game runs on.
type Platform struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// SearchResult is a paginated search response.
type SearchResult struct {
	Count    int     `json:"count"`
	Next     *string `json:"next,omitempty"`
	Previous *string `json:"previous,omitempty"`
	Results  []Game  `json:"results"`
}

// Screenshot is a still image attached to a game.
type Screenshot struct {
	ID     int64  `json:"id"`
	Image  string `json:"image"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Trailer is a hosted video clip attached to a game.
type Trailer struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Preview string      `json:"preview"`
	Data    TrailerData `json:"data"`
}

// TrailerData holds the downloadable renditions of a trailer.
type TrailerData struct {
	Low string `json:"480"`
	Max string `json:"max"`
}

// Video is an external (YouTube) video attached to a game.
type Video struct {
	ID           int64             `json:"id"`
	ExternalID   string            `json:"external_id"`
	ChannelTitle string            `json:"channel_title,omitempty"`
	Name         string            `json:"name"`
	Thumbnails   map[string]string `json:"thumbnails,omitempty"`
}

// listResponse is the shared shape of the media list endpoints.
type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}
