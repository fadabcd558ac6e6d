// Catalog API client
//
// Response types based on the Jamendo API v3 track object
// https://developer.jamendo.com/v3.0/tracks
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/shared"
	"golang.org/x/time/rate"
)

// Order enumerates the sort orders the catalog accepts.
type Order string

const (
	OrderPopularity  Order = "popularity_total"
	OrderReleaseDate Order = "releasedate_desc"
	OrderName        Order = "name_asc"
)

// Params parameterizes a track listing request.
type Params struct {
	Limit  int
	Offset int
	Order  Order
	Search string // free-text name search
	Tags   string // genre tag filter
	ID     string // exact track id lookup
}

// apiTrack is the wire representation of a catalog track.
type apiTrack struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	ArtistName string       `json:"artist_name"`
	AlbumName  string       `json:"album_name"`
	AlbumImage string       `json:"album_image"`
	Duration   int          `json:"duration"`
	Audio      string       `json:"audio"`
	AudioDL    string       `json:"audiodownload"`
	MusicInfo  apiMusicInfo `json:"musicinfo"`
}

type apiMusicInfo struct {
	Tags apiTags `json:"tags"`
}

type apiTags struct {
	Genres []string `json:"genres"`
}

// apiResponse is the wire envelope for track listings.
type apiResponse struct {
	Headers struct {
		Status       string `json:"status"`
		Code         int    `json:"code"`
		ErrorMessage string `json:"error_message"`
		ResultsCount int    `json:"results_count"`
	} `json:"headers"`
	Results []apiTrack `json:"results"`
}

// Client is a read-only catalog API client. Requests are rate limited so
// bulk operations don't trip the catalog's request quota.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	BaseURL    string
	ClientID   string
	HTTPClient *http.Client
	RateLimit  float64 // requests per second; <= 0 means a default of 5
}

// NewClient creates a catalog client for the given API endpoint and client id.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.jamendo.com/v3.0"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	return &Client{
		baseURL:    opts.BaseURL,
		clientID:   opts.ClientID,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// doRequest performs a GET against the catalog and decodes the JSON envelope.
func (c *Client) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	query.Set("client_id", c.clientID)
	query.Set("format", "json")

	apiURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("catalog API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Tracks fetches a track listing with the given parameters.
func (c *Client) Tracks(ctx context.Context, params Params) ([]models.Track, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Order == "" {
		params.Order = OrderPopularity
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(params.Limit))
	query.Set("offset", strconv.Itoa(params.Offset))
	query.Set("order", string(params.Order))
	query.Set("include", "musicinfo")
	if params.Search != "" {
		query.Set("namesearch", params.Search)
	}
	if params.Tags != "" {
		query.Set("tags", params.Tags)
	}
	if params.ID != "" {
		query.Set("id", params.ID)
	}

	var response apiResponse
	if err := c.doRequest(ctx, "/tracks/", query, &response); err != nil {
		return nil, err
	}

	if response.Headers.ErrorMessage != "" {
		return nil, fmt.Errorf("catalog API error: %s", response.Headers.ErrorMessage)
	}

	tracks := make([]models.Track, 0, len(response.Results))
	for _, r := range response.Results {
		tracks = append(tracks, toTrack(r))
	}

	return tracks, nil
}

// Track fetches a single track by its catalog id.
func (c *Client) Track(ctx context.Context, id string) (*models.Track, error) {
	tracks, err := c.Tracks(ctx, Params{ID: id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
	}
	return &tracks[0], nil
}

// Search fetches tracks matching a free-text query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	return c.Tracks(ctx, Params{Search: query, Limit: limit})
}

// ByGenre fetches tracks carrying the given genre tag.
func (c *Client) ByGenre(ctx context.Context, genre string, limit int) ([]models.Track, error) {
	return c.Tracks(ctx, Params{Tags: genre, Limit: limit})
}

// Trending fetches the most popular tracks.
func (c *Client) Trending(ctx context.Context, limit int) ([]models.Track, error) {
	return c.Tracks(ctx, Params{Order: OrderPopularity, Limit: limit})
}

// NewReleases fetches the most recently released tracks.
func (c *Client) NewReleases(ctx context.Context, limit int) ([]models.Track, error) {
	return c.Tracks(ctx, Params{Order: OrderReleaseDate, Limit: limit})
}

// toTrack maps a wire track onto the domain model.
func toTrack(r apiTrack) models.Track {
	track := models.Track{
		ID:          r.ID,
		Name:        r.Name,
		Artist:      r.ArtistName,
		Album:       r.AlbumName,
		Duration:    r.Duration,
		AudioURL:    r.Audio,
		DownloadURL: r.AudioDL,
		CoverArt:    r.AlbumImage,
	}

	if len(r.MusicInfo.Tags.Genres) > 0 {
		track.Genre = r.MusicInfo.Tags.Genres[0]
	}

	return track
}
