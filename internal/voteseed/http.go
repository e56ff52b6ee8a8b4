package voteseed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// createPlaces registers the generated places and fills in server IDs.
func createPlaces(ctx context.Context, config *Config, places []SeededPlace, stats *Stats) error {
	log.Printf("Creating %d places...", len(places))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/places/add"

	for i := range places {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during place creation: %w", ctx.Err())
		default:
		}

		// Alternate between structured fields and the clipboard paste
		// format so both creation paths get exercised.
		var payload map[string]string
		if i%2 == 0 {
			payload = map[string]string{
				"name":    places[i].Name,
				"city":    places[i].City,
				"address": places[i].Address,
			}
		} else {
			payload = map[string]string{
				"pasted": places[i].Name + " | " + places[i].City + " | " + places[i].Address,
			}
		}

		resp, err := client.Post(url, payload)
		if err != nil {
			return fmt.Errorf("failed to create place %d: %w", i, err)
		}

		body, err := readResponseBody(resp)
		if err != nil {
			return fmt.Errorf("failed to read create response: %w", err)
		}
		if resp.StatusCode != StatusCreated {
			return fmt.Errorf("create place %d failed with status %d", i, resp.StatusCode)
		}

		var created struct {
			Place SeededPlace `json:"place"`
		}
		if err := unmarshalJSON(body, &created); err != nil {
			return fmt.Errorf("failed to parse create response: %w", err)
		}
		places[i].ID = created.Place.ID
	}

	stats.PlacesCreated = len(places)
	log.Printf("Created %d places", len(places))
	return nil
}

// submitVotes submits votes concurrently using worker pools
func submitVotes(ctx context.Context, config *Config, votes []SeededVote, stats *Stats) error {
	log.Printf("Submitting %d votes with %d workers...", len(votes), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/places/rate"

	var (
		accepted  int64
		throttled int64
		failed    int64
		submitted int64
	)

	voteChan := make(chan SeededVote, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for v := range voteChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleVote(client, url, v)

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "accepted":
						atomic.AddInt64(&accepted, 1)
					case "throttled":
						atomic.AddInt64(&throttled, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						log.Printf("progress: %d/%d submitted (accepted: %d, throttled: %d, failed: %d)",
							atomic.LoadInt64(&submitted), len(votes),
							atomic.LoadInt64(&accepted),
							atomic.LoadInt64(&throttled),
							atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	go func() {
		defer close(voteChan)
		for _, v := range votes {
			select {
			case <-ctx.Done():
				return
			case voteChan <- v:
			}
		}
	}()

	wg.Wait()

	stats.VotesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.VotesAccepted = int(atomic.LoadInt64(&accepted))
	stats.VotesThrottled = int(atomic.LoadInt64(&throttled))
	stats.VotesFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`Vote submission completed:
   Accepted: %d
   Throttled: %d
   Failed: %d
`, stats.VotesAccepted, stats.VotesThrottled, stats.VotesFailed)

	return nil
}

// submitSingleVote submits a single vote and returns the result
func submitSingleVote(client *HTTPClient, url string, v SeededVote) string {
	resp, err := client.Post(url, map[string]interface{}{
		"id":      v.PlaceID,
		"ratings": v.Ratings,
	})
	if err != nil {
		return "failed"
	}
	defer resp.Body.Close()

	if _, err := readResponseBody(resp); err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case StatusAccepted:
		return "accepted"
	case StatusTooManyRequests:
		// Cooldown rejection; expected when seeding more than one vote
		// per place inside the three-month window.
		return "throttled"
	default:
		return "failed"
	}
}

// fetchRanking retrieves the current ranking lists.
func fetchRanking(ctx context.Context, config *Config, stats *Stats) (*RankingResponse, error) {
	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/api/places/ranking?limit=%d", config.BaseURL, config.Limit)

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ranking: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("ranking request failed with status %d", resp.StatusCode)
	}

	var ranking RankingResponse
	if err := unmarshalJSON(body, &ranking); err != nil {
		return nil, fmt.Errorf("failed to parse ranking response: %w", err)
	}

	stats.RankingEntries = len(ranking.TopPlaces) + len(ranking.BottomPlaces)
	return &ranking, nil
}
