// Package apitest provides an in-process TIG API for tests.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the-innovation-game/benchmarker/api"
	"github.com/the-innovation-game/benchmarker/shared"
)

// Request is a request as seen by the server.
type Request struct {
	Method string
	Path   string
	APIKey string
}

type failure struct {
	status int
	body   string
}

// Server is a fake TIG API backed by in-memory state. It is safe for
// concurrent use.
type Server struct {
	URL    string
	APIKey string

	mu         sync.Mutex
	block      api.Block
	earnings   api.EarningsResponse
	algorithms map[string][]api.Algorithm
	frontiers  map[string]api.FrontiersResponse
	benchmarks []api.Benchmark
	proofs     map[string][]shared.Proof
	requests   []Request
	failNext   *failure
	failPaths  map[string]failure

	srv *httptest.Server
}

func New(tb testing.TB, apiKey string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		APIKey:     apiKey,
		block:      api.Block{BlockID: "block-1", PrevBlockID: "block-0", Height: 1},
		earnings:   api.EarningsResponse{Earnings: []api.Earning{}},
		algorithms: make(map[string][]api.Algorithm),
		frontiers:  make(map[string]api.FrontiersResponse),
		proofs:     make(map[string][]shared.Proof),
		failPaths:  make(map[string]failure),
	}

	s.srv = httptest.NewServer(s.router())
	s.URL = s.srv.URL
	tb.Cleanup(s.srv.Close)
	return s
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(s.record, s.authorize, s.injectFailure)

	player := r.Group("/player")
	player.GET("/getEarnings", s.getEarnings)
	player.GET("/getRecentBenchmarks", s.getRecentBenchmarks)
	player.POST("/submitBenchmark", s.submitBenchmark)
	player.POST("/submitProofs/:benchmark_id", s.submitProofs)

	tig := r.Group("/tig")
	tig.GET("/getLatestBlock", s.getLatestBlock)
	tig.GET("/getAlgorithms/:challenge_id", s.getAlgorithms)
	tig.GET("/getFrontiers/:challenge_id", s.getFrontiers)

	return r
}

func (s *Server) SetBlock(b api.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.block = b
}

func (s *Server) SetEarnings(e api.EarningsResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.earnings = e
}

func (s *Server) SetAlgorithms(challengeID string, algorithms []api.Algorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.algorithms[challengeID] = algorithms
}

func (s *Server) SetFrontiers(f api.FrontiersResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frontiers[f.ChallengeID] = f
}

// FailNext makes the next authorized request fail with status and body.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = &failure{status: status, body: body}
}

// FailPath makes the next authorized request whose path starts with prefix
// fail with status and body. Other requests are served normally.
func (s *Server) FailPath(prefix string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPaths[prefix] = failure{status: status, body: body}
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) Benchmarks() []api.Benchmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Benchmark(nil), s.benchmarks...)
}

func (s *Server) Proofs(benchmarkID string) []shared.Proof {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shared.Proof(nil), s.proofs[benchmarkID]...)
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.EscapedPath(),
		APIKey: c.GetHeader("x-api-key"),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) authorize(c *gin.Context) {
	if c.GetHeader("x-api-key") != s.APIKey {
		c.String(http.StatusUnauthorized, "invalid api key")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) injectFailure(c *gin.Context) {
	s.mu.Lock()
	f := s.failNext
	s.failNext = nil
	if f == nil {
		path := c.Request.URL.Path
		for prefix, pf := range s.failPaths {
			if strings.HasPrefix(path, prefix) {
				f = &pf
				delete(s.failPaths, prefix)
				break
			}
		}
	}
	s.mu.Unlock()

	if f != nil {
		c.String(f.status, f.body)
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) getEarnings(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.earnings)
}

func (s *Server) getRecentBenchmarks(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	benchmarks := append([]api.Benchmark{}, s.benchmarks...)
	c.JSON(http.StatusOK, api.RecentBenchmarksResponse{Benchmarks: benchmarks})
}

func (s *Server) getLatestBlock(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.block)
}

func (s *Server) getAlgorithms(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	algorithms, ok := s.algorithms[c.Param("challenge_id")]
	if !ok {
		c.String(http.StatusNotFound, "challenge not found")
		return
	}
	c.JSON(http.StatusOK, api.AlgorithmsResponse{Algorithms: algorithms})
}

func (s *Server) getFrontiers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.frontiers[c.Param("challenge_id")]
	if !ok {
		c.String(http.StatusNotFound, "challenge not found")
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) submitBenchmark(c *gin.Context) {
	var req api.SubmitBenchmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.BlockID != s.block.BlockID || req.PrevBlockID != s.block.PrevBlockID {
		c.String(http.StatusBadRequest, "block is not the latest block")
		return
	}
	if len(req.Nonces) == 0 {
		c.String(http.StatusBadRequest, "no nonces")
		return
	}

	id := uuid.NewString()
	s.benchmarks = append(s.benchmarks, api.Benchmark{
		BenchmarkID: id,
		BlockID:     req.BlockID,
		AlgorithmID: req.AlgorithmID,
		ChallengeID: req.ChallengeID,
		Difficulty:  req.Difficulty,
		Nonces:      req.Nonces,
		Status:      "pending",
	})
	c.JSON(http.StatusOK, api.SubmitBenchmarkResponse{BenchmarkID: id})
}

func (s *Server) submitProofs(c *gin.Context) {
	id := c.Param("benchmark_id")

	var req api.SubmitProofsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var found bool
	for i := range s.benchmarks {
		if s.benchmarks[i].BenchmarkID == id {
			s.benchmarks[i].Status = "submitted"
			found = true
			break
		}
	}
	if !found {
		c.String(http.StatusNotFound, "benchmark not found")
		return
	}

	s.proofs[id] = append(s.proofs[id], req.Proofs...)
	c.JSON(http.StatusOK, api.SubmitProofsResponse{BenchmarkID: id, NumProofs: len(req.Proofs)})
}
