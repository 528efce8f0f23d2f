package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/logicsim"
	"github.com/aretw0/logicsim/internal/metrics"
	"github.com/aretw0/logicsim/pkg/problem"
)

func newTestHandler(t *testing.T, opts ...logicsim.Option) (http.Handler, *StreamManager) {
	t.Helper()
	streams := NewStreamManager()
	m := metrics.New(false)
	opts = append(opts, logicsim.WithHooks(streams.Hooks()), logicsim.WithHooks(m.Hooks()))
	h, err := NewHandler(logicsim.New(opts...), WithStreams(streams), WithMetrics(m.Handler()))
	require.NoError(t, err)
	return h, streams
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.NotNil(t, doc.Paths.Find("/circuits/{name}/trace"))
}

func TestInfoAndHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "GET", "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decodeBody[map[string]string](t, w)
	assert.Equal(t, logicsim.Version, info["version"])
	assert.Equal(t, "1.0.0", info["api_version"])

	w = do(t, h, "GET", "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestGetTrace(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "GET", "/circuits/jk-ring-counter/trace?cycles=6", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[TraceResponse](t, w)
	assert.Equal(t, []string{"00", "01", "10", "00", "01", "10"}, resp.Trace)

	w = do(t, h, "GET", "/circuits/nope/trace?cycles=2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "GET", "/circuits/jk-ring-counter/trace?cycles=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "GET", "/circuits/jk-ring-counter/trace", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCircuits(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(t, h, "GET", "/circuits", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	names := []string{}
	for _, e := range entries {
		names = append(names, e["name"].(string))
	}
	assert.Contains(t, names, "jk-ring-counter")
	assert.Contains(t, names, "nand-latch")
}

func TestMatch(t *testing.T) {
	h, _ := newTestHandler(t)
	trace := []string{"00", "01", "10", "00", "01", "10"}

	w := do(t, h, "POST", "/match", MatchRequest{
		Circuit: "jk-ring-counter",
		Trace:   trace,
		Candidates: map[string][]string{
			"A": {"11", "10", "00", "11", "10", "00"},
			"D": {"01", "10", "00", "01", "10", "00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sol := decodeBody[problem.CounterSolution](t, w)
	assert.Equal(t, "D", sol.Answer)
	assert.Equal(t, 1, sol.Result.Verdicts[1].Offset)

	ambiguous := map[string][]string{
		"A": {"00", "01", "10", "00", "01", "10"},
		"B": {"01", "10", "00", "01", "10", "00"},
	}
	w = do(t, h, "POST", "/match", MatchRequest{Trace: trace, Candidates: ambiguous})
	sol = decodeBody[problem.CounterSolution](t, w)
	assert.Empty(t, sol.Answer)
	assert.Contains(t, sol.AnswerError, "more than one candidate")

	w = do(t, h, "POST", "/match", MatchRequest{Trace: trace, Candidates: ambiguous, Policy: "first"})
	sol = decodeBody[problem.CounterSolution](t, w)
	assert.Equal(t, "A", sol.Answer)
	assert.Empty(t, sol.AnswerError)

	w = do(t, h, "POST", "/match", map[string]any{"trace": []string{"0a"}, "candidates": map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStepLatch(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "POST", "/latch", LatchRequest{Kind: "nor", Drives: []string{"01", "11"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[LatchResponse](t, w)
	assert.Equal(t, "xx", resp.Initial)
	require.Len(t, resp.Steps, 2)
	assert.Equal(t, "10", resp.Steps[0].State)
	assert.Equal(t, "00", resp.Steps[1].State)

	w = do(t, h, "POST", "/latch", LatchRequest{Kind: "nand", Drives: []string{"11"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, "POST", "/latch", LatchRequest{Kind: "nand", Initial: "01", Drives: []string{"11"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "01", decodeBody[LatchResponse](t, w).Steps[0].State)

	w = do(t, h, "POST", "/latch", LatchRequest{Kind: "xor", Drives: []string{"11"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStableStates(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "GET", "/latches/nand/stable?drive=11", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, []any{"01", "10"}, resp["stable"])

	w = do(t, h, "GET", "/latches/nor/stable?drive=1x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCountGates(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "POST", "/gates", GatesRequest{Gates: map[string][]string{
		"NOT": {"~P1", "~P2"},
		"OR":  {"P1 + P2", "c + e", "b + c", "c + b"},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sol := decodeBody[problem.GateSolution](t, w)
	assert.Equal(t, map[string]int{"NOT": 2, "OR": 3}, sol.Counts)

	w = do(t, h, "POST", "/gates", GatesRequest{Gates: map[string][]string{"MUX": {"a"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolve(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "POST", "/solve", map[string]any{
		"kind":    "counter",
		"circuit": "jk-ring-counter",
		"cycles":  6,
		"candidates": map[string]any{
			"D": []string{"01", "10", "00", "01", "10", "00"},
		},
		"answer": "D",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sol := decodeBody[problem.Solution](t, w)
	require.NotNil(t, sol.Correct)
	assert.True(t, *sol.Correct)

	w = do(t, h, "POST", "/solve", map[string]any{"kind": "counter", "cycles": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "invalid problem", resp.Error)
	assert.Len(t, resp.Details, 2)

	w = do(t, h, "POST", "/solve", map[string]any{"kind": "fsm"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	do(t, h, "GET", "/circuits/jk-ring-counter/trace?cycles=4", nil)

	w := do(t, h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `logicsim_counter_steps_total{circuit="jk-ring-counter"} 4`)
}

func TestSubscribeEvents(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/events?circuit=jk-ring-counter", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(wSub, reqSub)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond) // Wait for subscription to register

	w := do(t, h, "GET", "/circuits/jk-ring-counter/trace?cycles=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := wSub.Body.String()
	assert.True(t, strings.HasPrefix(output, "event: ping"))
	assert.Contains(t, output, `"type":"step"`)
	assert.Contains(t, output, `"type":"trace_done"`)
	assert.Contains(t, output, `"trace":["00","01"]`)
}

func TestStreamManager_Topics(t *testing.T) {
	sm := NewStreamManager()
	all, cancelAll := sm.Subscribe("")
	defer cancelAll()
	one, cancelOne := sm.Subscribe("a")
	defer cancelOne()

	sm.Broadcast("b", "to-b")
	sm.Broadcast("a", "to-a")

	assert.Equal(t, "to-b", <-all)
	assert.Equal(t, "to-a", <-all)
	assert.Equal(t, "to-a", <-one)
	assert.Len(t, one, 0)
}

func TestSolve_DocumentTooLarge(t *testing.T) {
	t.Setenv(problem.EnvMaxDocumentSize, "16")
	h, _ := newTestHandler(t)

	w := do(t, h, "POST", "/solve", map[string]any{
		"kind":  "gates",
		"gates": map[string]any{"NOT": []string{"~P1", "~P2"}},
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
}
