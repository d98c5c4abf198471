package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI имитирует Simplify API и запоминает последний запрос.
type fakeAPI struct {
	lastMethod string
	lastPath   string
	lastBody   []byte
}

func (f *fakeAPI) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	record := func(r *http.Request) {
		f.lastMethod = r.Method
		f.lastPath = r.URL.Path
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		f.lastBody = buf.Bytes()
	}
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /flows", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"flows": []map[string]any{{
				"flow_id": "sk_eu", "persona_id": "eu_employee", "country": "SK",
				"version": "1.0", "step_count": 2, "title": "Eu Employee",
			}},
		})
	})
	mux.HandleFunc("GET /flow/{flow_id}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.PathValue("flow_id") != "sk_eu" {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error": map[string]string{"code": "NOT_FOUND", "message": "flow not found"},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"flow": map[string]string{"flow_id": "sk_eu", "country": "SK", "version": "1.0"},
			"steps": []map[string]any{
				{"step_id": "register_residence", "title": "Register", "order": 1},
			},
		})
	})
	mux.HandleFunc("POST /recommend-flow", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"flow_id": "sk_eu", "title": "Eu Employee", "step_count": 2,
			"reason": "EU citizen", "confidence": "high",
		})
	})
	mux.HandleFunc("POST /progress/{flow_id}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "flow_id": r.PathValue("flow_id")})
	})
	mux.HandleFunc("DELETE /progress/{flow_id}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "flow_id": r.PathValue("flow_id")})
	})
	mux.HandleFunc("GET /progress/{flow_id}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"flow_id": r.PathValue("flow_id"), "completed_steps": []string{"register_residence"},
		})
	})
	mux.HandleFunc("GET /broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCmd(t *testing.T, build func(func() *Client, func() *Output) *cobra.Command, baseURL string, jsonMode bool, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := build(
		func() *Client { return NewClient(baseURL) },
		func() *Output { return NewOutputTo(jsonMode, &stdout, &stderr) },
	)
	cmd.SetArgs(args)
	cmd.SetOut(&stderr)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestClient_ListFlows(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t)

	flows, err := NewClient(srv.URL).ListFlows()
	require.NoError(t, err)
	require.Len(t, flows, 1)
	assert.Equal(t, "sk_eu", flows[0].FlowID)
	assert.Equal(t, 2, flows[0].StepCount)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t)

	_, err := NewClient(srv.URL).GetFlow("missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND: flow not found", err.Error())
}

func TestClient_NonJSONError(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t)

	err := NewClient(srv.URL).get("/broken", nil)
	require.Error(t, err)
	assert.Equal(t, "API error: HTTP 502", err.Error())
}

func TestFlowListCmd_Table(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t)

	stdout, _, err := runCmd(t, NewFlowCmd, srv.URL, false, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "FLOW_ID")
	assert.Contains(t, stdout, "sk_eu")
	assert.Contains(t, stdout, "Eu Employee")
}

func TestFlowShowCmd_JSON(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t)

	stdout, _, err := runCmd(t, NewFlowCmd, srv.URL, true, "show", "sk_eu")
	require.NoError(t, err)

	var flow ResolvedFlow
	require.NoError(t, json.Unmarshal([]byte(stdout), &flow))
	assert.Equal(t, "sk_eu", flow.Flow.FlowID)
	require.Len(t, flow.Steps, 1)
	assert.Equal(t, "1", stepField(flow.Steps[0], "order"))
}

func TestRecommendCmd_SendsAnswers(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t)

	stdout, _, err := runCmd(t, NewRecommendCmd, srv.URL, false,
		"--nationality", "EU", "--entry", "FIRST_ENTRY", "--purpose", "EMPLOYMENT")
	require.NoError(t, err)
	assert.Contains(t, stdout, "high")

	var sent IntakeRequest
	require.NoError(t, json.Unmarshal(api.lastBody, &sent))
	assert.Equal(t, IntakeRequest{
		Nationality:  "EU",
		EntryContext: "FIRST_ENTRY",
		Purpose:      "EMPLOYMENT",
		City:         "BRATISLAVA",
	}, sent)
}

func TestProgressSaveCmd(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t)

	_, stderr, err := runCmd(t, NewProgressCmd, srv.URL, false,
		"save", "sk_eu", "--step", "a,b", "--doc", "passport=true", "--doc", "lease")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Progress saved: sk_eu")
	assert.Equal(t, "/progress/sk_eu", api.lastPath)

	var sent Progress
	require.NoError(t, json.Unmarshal(api.lastBody, &sent))
	assert.Equal(t, []string{"a", "b"}, sent.CompletedSteps)
	assert.Equal(t, map[string]bool{"passport": true, "lease": true}, sent.Documents)
}

func TestProgressSaveCmd_NoStepsSendsEmptyList(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t)

	_, _, err := runCmd(t, NewProgressCmd, srv.URL, false, "save", "sk_eu")
	require.NoError(t, err)
	assert.JSONEq(t, `{"flow_id":"sk_eu","completed_steps":[]}`, string(api.lastBody))
}

func TestProgressClearCmd(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t)

	_, stderr, err := runCmd(t, NewProgressCmd, srv.URL, false, "clear", "sk_eu")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, api.lastMethod)
	assert.Contains(t, stderr, "Progress deleted: sk_eu")
}

func TestParseDocuments(t *testing.T) {
	docs, err := parseDocuments([]string{"passport=yes", "photo=0", "lease"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"passport": true, "photo": false, "lease": true}, docs)

	_, err = parseDocuments([]string{"passport=maybe"})
	assert.Error(t, err)

	_, err = parseDocuments([]string{"=true"})
	assert.Error(t, err)
}

func TestOutput_EmptyRows(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := NewOutputTo(false, &stdout, &stderr)

	out.Print([]string{"A"}, nil, nil)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "No results")
}
