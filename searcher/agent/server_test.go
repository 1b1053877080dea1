package agent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thurn/oldsdawn-sub001/nim"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	registry, err := NewBuilder[nim.Player, nim.Move]().Add(Standard(nim.Perfect, nim.Outcome)...).Build()
	require.NoError(t, err)
	srv := httptest.NewServer(NewServer(registry, nim.DecodeState, 100*time.Millisecond).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestServer(t *testing.T) {
	srv := newTestServer(t)

	t.Run("listing agents", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/agents")
		require.NoError(t, err)
		defer resp.Body.Close()

		var names []Name
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
		require.Contains(t, names, Greedy)
		require.Len(t, names, 8)
	})

	t.Run("picking a move", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/agents/Greedy/pick?budget=50ms", "application/json",
			strings.NewReader(`{"piles":[2,2,3]}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		var body PickResponse[nim.Move]
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, Greedy, body.Agent)
		require.Equal(t, nim.Move{Pile: 0, Take: 1}, body.Action)
	})

	for name, tc := range map[string]struct {
		path   string
		body   string
		status int
	}{
		"unknown agent": {"/agents/Nobody/pick", `{"piles":[1]}`, http.StatusNotFound},
		"bad state":     {"/agents/Greedy/pick", `{"piles":`, http.StatusBadRequest},
		"bad budget":    {"/agents/Greedy/pick?budget=soon", `{"piles":[1]}`, http.StatusBadRequest},
		"finished game": {"/agents/Greedy/pick", `{"piles":[0,0]}`, http.StatusConflict},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tc.path, "application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tc.status, resp.StatusCode)
		})
	}

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/agents/Greedy/pick")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
