package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/searcher/agent"
)

// Remote asks an agent server for moves. The state must marshal to the JSON form the
// server's decoder reads.
type Remote[P comparable, A comparable] struct {
	baseURL  string
	name     agent.Name
	client   *http.Client
	attempts uint
}

func NewRemote[P comparable, A comparable](baseURL string, name agent.Name, client *http.Client, attempts uint) *Remote[P, A] {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote[P, A]{baseURL: baseURL, name: name, client: client, attempts: max(attempts, 1)}
}

func (r *Remote[P, A]) Name() agent.Name {
	return r.name
}

// PickAction posts state to the server and returns its choice. Transport failures and
// server errors are retried; rejections are not.
func (r *Remote[P, A]) PickAction(deadline time.Time, state game.State[P, A]) (A, error) {
	var zero A
	body, err := json.Marshal(state)
	if err != nil {
		return zero, fmt.Errorf("failed to encode state: %w", err)
	}
	budget := max(time.Until(deadline), time.Millisecond)
	endpoint := fmt.Sprintf("%s/agents/%s/pick?budget=%s", r.baseURL, url.PathEscape(string(r.name)), url.QueryEscape(budget.String()))

	var picked agent.PickResponse[A]
	err = retry.Do(
		func() error {
			return r.post(endpoint, body, &picked)
		},
		retry.Attempts(r.attempts),
		retry.Delay(10*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Msgf("retrying %s, attempt %d", r.name, n+1)
		}),
	)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", r.name, err)
	}
	return picked.Action, nil
}

func (r *Remote[P, A]) post(endpoint string, body []byte, out any) error {
	resp, err := r.client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusConflict:
		return retry.Unrecoverable(game.ErrNoLegalAction)
	case resp.StatusCode >= 500:
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("agent server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	default:
		msg, _ := io.ReadAll(resp.Body)
		return retry.Unrecoverable(fmt.Errorf("agent server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg)))
	}
}
