package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/the-innovation-game/benchmarker/api"
	"github.com/the-innovation-game/benchmarker/internal/apitest"
	"github.com/the-innovation-game/benchmarker/shared"
)

const testKey = "secret-key"

func newClient(t *testing.T, srv *apitest.Server) *api.Client {
	c, err := api.NewClient(srv.URL+"/", testKey, api.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := api.NewClient("", testKey)
	require.Error(t, err)

	_, err = api.NewClient("http://localhost", "")
	require.Error(t, err)

	c, err := api.NewClient("http://localhost:8080///", testKey)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", c.BaseURL())

	_, err = api.NewClient("http://localhost", testKey, api.WithLogger(nil))
	require.EqualError(t, err, "`logger` must not be nil")

	_, err = api.NewClient("http://localhost", testKey, api.WithHTTPClient(nil))
	require.EqualError(t, err, "`httpClient` must not be nil")

	_, err = api.NewClient("http://localhost", testKey, api.WithHTTPClient(&http.Client{}))
	require.NoError(t, err)
}

func TestClient_Getters(t *testing.T) {
	srv := apitest.New(t, testKey)
	srv.SetBlock(api.Block{BlockID: "b7", PrevBlockID: "b6", Height: 7})
	srv.SetEarnings(api.EarningsResponse{
		PlayerID: "p1",
		Total:    12.5,
		Earnings: []api.Earning{{BlockID: "b6", AlgorithmID: "a1", ChallengeID: "c001", Amount: 12.5}},
	})
	srv.SetAlgorithms("c001", []api.Algorithm{{AlgorithmID: "a1", ChallengeID: "c001", Name: "greedy"}})
	srv.SetFrontiers(api.FrontiersResponse{
		ChallengeID:          "c001",
		DifficultyParameters: []string{"num_variables", "clauses_to_variables_percent"},
		MinDifficulty:        shared.Point{X: 50, Y: 300},
		Frontier:             []shared.Point{{X: 60, Y: 400}, {X: 80, Y: 350}},
	})

	c := newClient(t, srv)
	ctx := context.Background()

	block, err := c.GetLatestBlock(ctx)
	require.NoError(t, err)
	require.Equal(t, api.Block{BlockID: "b7", PrevBlockID: "b6", Height: 7}, *block)

	earnings, err := c.GetEarnings(ctx)
	require.NoError(t, err)
	require.Equal(t, "p1", earnings.PlayerID)
	require.Len(t, earnings.Earnings, 1)
	require.Equal(t, 12.5, earnings.Earnings[0].Amount)

	algorithms, err := c.GetAlgorithms(ctx, "c001")
	require.NoError(t, err)
	require.Equal(t, []api.Algorithm{{AlgorithmID: "a1", ChallengeID: "c001", Name: "greedy"}}, algorithms.Algorithms)

	frontiers, err := c.GetFrontiers(ctx, "c001")
	require.NoError(t, err)
	require.Equal(t, shared.Point{X: 50, Y: 300}, frontiers.MinDifficulty)
	require.Equal(t, []shared.Point{{X: 60, Y: 400}, {X: 80, Y: 350}}, frontiers.Frontier)

	benchmarks, err := c.GetRecentBenchmarks(ctx)
	require.NoError(t, err)
	require.Empty(t, benchmarks.Benchmarks)

	expected := []apitest.Request{
		{Method: http.MethodGet, Path: "/tig/getLatestBlock", APIKey: testKey},
		{Method: http.MethodGet, Path: "/player/getEarnings", APIKey: testKey},
		{Method: http.MethodGet, Path: "/tig/getAlgorithms/c001", APIKey: testKey},
		{Method: http.MethodGet, Path: "/tig/getFrontiers/c001", APIKey: testKey},
		{Method: http.MethodGet, Path: "/player/getRecentBenchmarks", APIKey: testKey},
	}
	require.Equal(t, expected, srv.Requests())
}

func TestClient_SubmitBenchmarkAndProofs(t *testing.T) {
	srv := apitest.New(t, testKey)
	c := newClient(t, srv)
	ctx := context.Background()

	req := api.SubmitBenchmarkRequest{
		PlayerID:    "p1",
		BlockID:     "block-1",
		PrevBlockID: "block-0",
		AlgorithmID: "a1",
		ChallengeID: "c001",
		Difficulty:  shared.Difficulty{"x": 5, "y": 3},
		Nonces:      []uint64{1, 4, 9},
	}
	resp, err := c.SubmitBenchmark(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.BenchmarkID)

	benchmarks := srv.Benchmarks()
	require.Len(t, benchmarks, 1)
	require.Equal(t, resp.BenchmarkID, benchmarks[0].BenchmarkID)
	require.Equal(t, req.Difficulty, benchmarks[0].Difficulty)
	require.Equal(t, req.Nonces, benchmarks[0].Nonces)

	proof, err := shared.NewProof(4, map[string][]int{"variables": {1, 0, 1}}, []shared.Sample{{Step: 1, Value: 10}, {Step: 2, Value: -3}})
	require.NoError(t, err)

	proofsResp, err := c.SubmitProofs(ctx, resp.BenchmarkID, []shared.Proof{proof})
	require.NoError(t, err)
	require.Equal(t, 1, proofsResp.NumProofs)

	stored := srv.Proofs(resp.BenchmarkID)
	require.Len(t, stored, 1)
	require.Equal(t, uint64(4), stored[0].Nonce)
	require.JSONEq(t, `{"variables":[1,0,1]}`, string(stored[0].Solution))
	require.Equal(t, proof.IntermediateIntegers, stored[0].IntermediateIntegers)

	requests := srv.Requests()
	require.Len(t, requests, 2)
	require.Equal(t, apitest.Request{Method: http.MethodPost, Path: "/player/submitBenchmark", APIKey: testKey}, requests[0])
	require.Equal(t, apitest.Request{Method: http.MethodPost, Path: "/player/submitProofs/" + resp.BenchmarkID, APIKey: testKey}, requests[1])
}

func TestClient_ErrorCarriesRawBody(t *testing.T) {
	srv := apitest.New(t, testKey)
	c := newClient(t, srv)
	ctx := context.Background()

	_, err := c.GetFrontiers(ctx, "c404")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.EqualError(t, err, "challenge not found")

	srv.FailNext(http.StatusInternalServerError, "<html>boom</html>")
	_, err = c.GetLatestBlock(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "<html>boom</html>", apiErr.Body)

	_, err = c.SubmitProofs(ctx, "unknown", nil)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "benchmark not found", apiErr.Body)
}

func TestClient_WrongKey(t *testing.T) {
	srv := apitest.New(t, testKey)
	c, err := api.NewClient(srv.URL, "wrong")
	require.NoError(t, err)

	_, err = c.GetEarnings(context.Background())
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid api key", apiErr.Error())
}

func TestClient_NonJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c, err := api.NewClient(srv.URL, testKey)
	require.NoError(t, err)

	_, err = c.GetLatestBlock(context.Background())
	require.Error(t, err)
	var apiErr *api.Error
	require.False(t, errors.As(err, &apiErr))
}

func TestClient_SubmitBenchmarkBody(t *testing.T) {
	var (
		body        map[string]json.RawMessage
		contentType string
		decodeErr   error
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		decodeErr = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"benchmark_id":"xyz"}`))
	}))
	defer srv.Close()

	c, err := api.NewClient(srv.URL, testKey)
	require.NoError(t, err)

	resp, err := c.SubmitBenchmark(context.Background(), api.SubmitBenchmarkRequest{
		PlayerID:    "p",
		BlockID:     "b",
		PrevBlockID: "pb",
		AlgorithmID: "a",
		ChallengeID: "c",
		Difficulty:  shared.Difficulty{"x": 1},
	})
	require.NoError(t, err)
	require.Equal(t, "xyz", resp.BenchmarkID)

	require.NoError(t, decodeErr)
	require.Equal(t, "application/json", contentType)
	require.Len(t, body, 7)
	require.JSONEq(t, `"p"`, string(body["player_id"]))
	require.JSONEq(t, `"b"`, string(body["block_id"]))
	require.JSONEq(t, `"pb"`, string(body["prev_block_id"]))
	require.JSONEq(t, `"a"`, string(body["algorithm_id"]))
	require.JSONEq(t, `"c"`, string(body["challenge_id"]))
	require.JSONEq(t, `{"x":1}`, string(body["difficulty"]))
	require.JSONEq(t, `[]`, string(body["nonces"]))
}
