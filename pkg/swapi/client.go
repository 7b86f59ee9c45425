// Package swapi is a thin client for the Star Wars public films API.
package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

type Client struct {
	BaseURL string
	Client  *http.Client
}

// Film is an upstream film mapped into the local candidate-movie shape.
// MovieID is the stringified upstream episode identifier; it is only used for
// membership checks and is replaced by a generated identifier at persistence
// time. Cast, Duration, Genre and Rating have no upstream source and stay
// zero; the sync service substitutes its fallback constants for them.
type Film struct {
	MovieID     string
	Title       string
	Created     string
	Synopsis    string
	ReleaseDate string
	Cast        []string
	Duration    int
	Genre       []string
	Rating      string
}

type listResp struct {
	Results []filmItem `json:"results"`
}

type filmItem struct {
	EpisodeID    int    `json:"episode_id"`
	Title        string `json:"title"`
	OpeningCrawl string `json:"opening_crawl"`
	ReleaseDate  string `json:"release_date"`
	Created      string `json:"created"`
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://swapi.dev/api"
	}
	return &Client{BaseURL: baseURL, Client: &http.Client{Timeout: 15 * time.Second}}
}

// Films fetches the complete upstream film listing. Failures propagate.
func (c *Client) Films(ctx context.Context) ([]Film, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/films/", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("swapi status %d", resp.StatusCode)
	}
	var lr listResp
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	out := make([]Film, 0, len(lr.Results))
	for _, it := range lr.Results {
		out = append(out, mapFilm(it))
	}
	return out, nil
}

// FilmByID fetches one film by its upstream identifier. Best effort: any
// transport, status or decode failure yields an absent result, not an error.
func (c *Client) FilmByID(ctx context.Context, id string) (*Film, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/films/"+id+"/", nil)
	if err != nil {
		return nil, false
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	var it filmItem
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		return nil, false
	}
	f := mapFilm(it)
	return &f, true
}

func mapFilm(it filmItem) Film {
	return Film{
		MovieID:     strconv.Itoa(it.EpisodeID),
		Title:       it.Title,
		Created:     it.Created,
		Synopsis:    it.OpeningCrawl,
		ReleaseDate: it.ReleaseDate,
	}
}
