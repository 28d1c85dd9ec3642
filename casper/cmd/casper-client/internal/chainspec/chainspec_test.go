package chainspec

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	"github.com/stretchr/testify/require"
)

const chainspecTOML = "[protocol]\nversion = '1.5.6'\n"

func fakeNode(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			Id     any    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Method != "info_get_chainspec" {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.Id,
			"result": map[string]any{
				"api_version":     "1.5.6",
				"chainspec_bytes": map[string]any{"chainspec_bytes": hex.EncodeToString([]byte(chainspecTOML))},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetChainspec(t *testing.T) {
	srv := fakeNode(t)

	var out bytes.Buffer
	cmd := GetCommand(&common.Config{NodeAddress: srv.URL})
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var res struct {
		APIVersion string `json:"api_version"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Equal(t, "1.5.6", res.APIVersion)

	out.Reset()
	cmd = GetCommand(&common.Config{})
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-n", srv.URL, "--toml"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, chainspecTOML, out.String())
}
