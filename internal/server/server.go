package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daniel/talent-ranker/internal/analysis"
	"github.com/daniel/talent-ranker/internal/config"
	"github.com/daniel/talent-ranker/internal/db"
	"github.com/daniel/talent-ranker/internal/llm"
	"github.com/daniel/talent-ranker/internal/server/middleware"
	"github.com/daniel/talent-ranker/internal/server/ratelimit"
	"github.com/daniel/talent-ranker/internal/sourcing"
	"github.com/daniel/talent-ranker/internal/types"
)

// DBClient is the storage surface the handlers depend on. *db.DB satisfies
// it; tests substitute a fake.
type DBClient interface {
	CreateCompany(ctx context.Context, company *types.Company) (*types.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*types.Company, error)

	CreateUser(ctx context.Context, user *types.User) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)

	UpsertCandidate(ctx context.Context, c *db.Candidate) (*db.Candidate, error)
	GetCandidate(ctx context.Context, id, companyID uuid.UUID) (*db.Candidate, error)
	ListCandidates(ctx context.Context, companyID uuid.UUID, status string) ([]db.Candidate, error)
	UpdateCandidateStatus(ctx context.Context, id, companyID, userID uuid.UUID, newStatus, notes string) (*db.Candidate, error)
	ReplaceExperiences(ctx context.Context, candidateID uuid.UUID, experiences []types.Experience) error
	ReplaceSkills(ctx context.Context, candidateID uuid.UUID, skills []string) error
	ReplaceProjects(ctx context.Context, candidateID uuid.UUID, projects []types.Project) error
	ListCandidateSnapshots(ctx context.Context, companyID uuid.UUID) ([]types.CandidateSnapshot, error)
	GetCandidateBundle(ctx context.Context, candidateID, companyID uuid.UUID) (*types.CandidateBundle, error)
	StatusCounts(ctx context.Context, companyID uuid.UUID) (map[string]int, error)
	RecentlyUpdatedCandidates(ctx context.Context, companyID uuid.UUID, limit int) ([]db.Candidate, error)

	ListAnalyses(ctx context.Context, candidateID, companyID uuid.UUID) ([]types.AnalysisRecord, error)

	InsertActivity(ctx context.Context, companyID, userID uuid.UUID, activityType string, details any) error
	ListRecentActivity(ctx context.Context, companyID uuid.UUID, limit int) ([]types.ActivityRecord, error)
	ListStatusLog(ctx context.Context, candidateID uuid.UUID) ([]types.StatusChange, error)
}

// ProfileSourcer fetches external candidate profiles.
type ProfileSourcer interface {
	FetchProfile(ctx context.Context, profileURL string) (*sourcing.Profile, error)
}

// Server is the HTTP server wiring storage, the LLM client and the domain
// services behind the REST API.
type Server struct {
	httpServer  *http.Server
	log         *zap.Logger
	db          DBClient
	llm         llm.Client
	analyses    *analysis.Service
	sourcer     ProfileSourcer
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a server from application configuration: it connects to the
// database, builds the Gemini client and wires every service.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		log:      log,
		db:       database,
		llm:      llmClient,
		analyses: analysis.NewService(database, analysis.NewGenerator(llmClient)),
	}
	if cfg.ScrapingDogAPIKey != "" {
		s.sourcer = sourcing.NewClient(cfg.ScrapingDogAPIKey)
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.PortOrDefault()),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // LLM-backed endpoints are slow
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// routes builds the router. Auth endpoints and the health check are public;
// everything else requires a valid bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protect("POST /candidates", s.handleCreateCandidate)
	protect("GET /candidates", s.handleListCandidates)
	protect("GET /candidates/{id}", s.handleGetCandidate)
	protect("PATCH /candidates/{id}/status", s.handleUpdateStatus)
	protect("GET /candidates/{id}/status-log", s.handleStatusLog)
	protect("POST /candidates/{id}/resume", s.handleUploadResume)

	protect("POST /rankings", s.handleCreateRanking)

	protect("POST /candidates/{id}/analyses", s.handleCreateAnalysis)
	protect("GET /candidates/{id}/analyses", s.handleListAnalyses)

	protect("GET /dashboard", s.handleDashboard)
	protect("POST /sourcing", s.handleSourceProfile)

	return mux
}

// Start begins listening and blocks until an interrupt triggers a graceful
// shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if closer, ok := s.db.(*db.DB); ok {
		closer.Close()
	}
	if s.llm != nil {
		_ = s.llm.Close()
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers and answers preflight requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces per-client limits before any handler runs.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request with latency and status.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the client for rate limiting by its IP.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
