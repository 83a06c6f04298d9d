// Package server provides the HTTP REST API for CareerPilot.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/martinsumner/careerpilot/internal/ai"
	"github.com/martinsumner/careerpilot/internal/config"
	"github.com/martinsumner/careerpilot/internal/db"
	"github.com/martinsumner/careerpilot/internal/metrics"
	"github.com/martinsumner/careerpilot/internal/profile"
	"github.com/martinsumner/careerpilot/internal/server/middleware"
	"github.com/martinsumner/careerpilot/internal/server/ratelimit"
	"github.com/martinsumner/careerpilot/internal/types"
)

// Store is the persistence surface the handlers depend on. *db.DB
// implements it; tests substitute fakes.
type Store interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	GetAccountByEmail(ctx context.Context, email string) (*db.Account, error)
	GetAccount(ctx context.Context, userID uuid.UUID) (*db.Account, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update *types.ProfileUpdate) error

	GetTasks(ctx context.Context, userID uuid.UUID) ([]types.Task, error)
	ReplaceTasks(ctx context.Context, userID uuid.UUID, tasks []types.Task) error
	AppendTask(ctx context.Context, userID uuid.UUID, task types.Task) error
	ToggleTask(ctx context.Context, userID uuid.UUID, taskID string) (types.TaskStatus, error)

	SaveArtifact(ctx context.Context, userID uuid.UUID, kind, role, targetRole string, content []byte) error
	GetArtifact(ctx context.Context, userID uuid.UUID, kind, role, targetRole string) ([]byte, error)
	CachedRoadmap(ctx context.Context, userID uuid.UUID, role, targetRole string) ([]byte, error)
	CachedAnalysis(ctx context.Context, userID uuid.UUID, role, targetRole string) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	aiConfig    *config.AIConfig
	engine      *metrics.Engine
	policy      profile.Policy
	newClient   func(ctx context.Context, apiKey string) (ai.Client, error)
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	allowDuplicates, _ := strconv.ParseBool(os.Getenv("ALLOW_DUPLICATE_SKILLS"))

	s := &Server{
		db:     database,
		store:  database,
		engine: metrics.NewEngine(rand.NewSource(time.Now().UnixNano())),
		policy: profile.Policy{AllowDuplicateSkills: allowDuplicates},
		newClient: func(ctx context.Context, apiKey string) (ai.Client, error) {
			return ai.NewGeminiClient(ctx, ai.DefaultModelConfig(), apiKey)
		},
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(s.store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.aiConfig, err = config.NewAIConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create AI config: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything under /me, /tasks, /generate,
// /artifacts, /dashboard and /settings requires a valid session token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	authed := http.NewServeMux()
	authed.HandleFunc("PUT /auth/password", s.handleUpdatePassword)

	authed.HandleFunc("GET /me", s.handleGetProfile)
	authed.HandleFunc("PUT /me", s.handleUpdateProfile)
	authed.HandleFunc("POST /me/resume", s.handleImportResume)

	authed.HandleFunc("POST /me/skills", s.handleAddSkill)
	authed.HandleFunc("PUT /me/skills", s.handleEditSkill)
	authed.HandleFunc("DELETE /me/skills/{name}", s.handleRemoveSkill)
	authed.HandleFunc("POST /me/experience", s.handleAddExperience)
	authed.HandleFunc("PUT /me/experience", s.handleEditExperience)
	authed.HandleFunc("DELETE /me/experience/{id}", s.handleRemoveExperience)
	authed.HandleFunc("POST /me/education", s.handleAddEducation)
	authed.HandleFunc("PUT /me/education", s.handleEditEducation)
	authed.HandleFunc("DELETE /me/education/{id}", s.handleRemoveEducation)
	authed.HandleFunc("POST /me/certifications", s.handleAddCertification)
	authed.HandleFunc("PUT /me/certifications", s.handleEditCertification)
	authed.HandleFunc("DELETE /me/certifications/{id}", s.handleRemoveCertification)
	authed.HandleFunc("POST /me/projects", s.handleAddProject)
	authed.HandleFunc("PUT /me/projects", s.handleEditProject)
	authed.HandleFunc("DELETE /me/projects/{id}", s.handleRemoveProject)

	authed.HandleFunc("GET /tasks", s.handleGetTasks)
	authed.HandleFunc("PUT /tasks", s.handleSaveTasks)
	authed.HandleFunc("POST /tasks", s.handleAddTask)
	authed.HandleFunc("POST /tasks/{id}/toggle", s.handleToggleTask)

	authed.HandleFunc("POST /generate/analysis", s.handleGenerateAnalysis)
	authed.HandleFunc("POST /generate/roadmap", s.handleGenerateRoadmap)
	authed.HandleFunc("POST /generate/tasks", s.handleGenerateTasks)
	authed.HandleFunc("POST /generate/projects", s.handleGenerateProjects)
	authed.HandleFunc("POST /generate/interview", s.handleGenerateInterview)
	authed.HandleFunc("POST /generate/jobs", s.handleGenerateJobs)
	authed.HandleFunc("GET /artifacts/{kind}", s.handleGetCachedArtifact)

	authed.HandleFunc("GET /dashboard", s.handleDashboard)
	authed.HandleFunc("GET /dashboard/focus", s.handleFocus)
	authed.HandleFunc("GET /dashboard/actions", s.handleRecommendedActions)

	authed.HandleFunc("PUT /settings/ai-key", s.handleReconfigureAIKey)

	authMW := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("/", authMW(authed))

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generator builds a Generator over a fresh model client using the current
// credential. The returned func closes the client.
func (s *Server) generator(ctx context.Context) (*ai.Generator, func(), error) {
	client, err := s.newClient(ctx, s.aiConfig.APIKey())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model client: %w", err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing model client: %v", err)
		}
	}
	return ai.NewGenerator(client), closeFn, nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier for rate limiting.
// Uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
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

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
