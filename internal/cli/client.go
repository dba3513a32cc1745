package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homestead/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type CreatePlayerResult struct {
	PlayerID string         `json:"player_id"`
	State    game.GameState `json:"state"`
}

func (c *Client) CreatePlayer(ctx context.Context, playerID, farmName string) (CreatePlayerResult, error) {
	var out CreatePlayerResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/players", "", map[string]any{
		"player_id": playerID,
		"farm_name": farmName,
	}, &out)
	return out, err
}

func (c *Client) State(ctx context.Context, playerID string) (game.GameState, error) {
	var out game.GameState
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/state", playerID, nil, &out)
	return out, err
}

func (c *Client) EndDay(ctx context.Context, playerID string) (game.DayResult, error) {
	var out game.DayResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/day/end", playerID, map[string]any{}, &out)
	return out, err
}

func (c *Client) ResolveEvent(ctx context.Context, playerID string, choice int) (game.GameState, error) {
	var out game.GameState
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/events/resolve", playerID, map[string]any{
		"choice": choice,
	}, &out)
	return out, err
}

type ActionResult struct {
	Message string         `json:"message"`
	State   game.GameState `json:"state"`
}

func (c *Client) Action(ctx context.Context, playerID, name string, params game.ActionParams) (ActionResult, error) {
	var out ActionResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/actions/"+url.PathEscape(name), playerID, params, &out)
	return out, err
}

type leaderboardPayload struct {
	Rows []game.LeaderboardRow `json:"rows"`
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]game.LeaderboardRow, error) {
	path := "/v1/leaderboard"
	if limit > 0 {
		path = fmt.Sprintf("/v1/leaderboard?limit=%d", limit)
	}
	var out leaderboardPayload
	err := c.jsonRequest(ctx, http.MethodGet, path, "", nil, &out)
	return out.Rows, err
}

// Do issues an arbitrary request; the sync queue replays through it.
func (c *Client) Do(ctx context.Context, method, path, playerID string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, method, path, playerID, body, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path, playerID string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
