// Package fakeapi is an in-process stand-in for the forum backend. It
// implements the auth endpoints with real JWT access tokens and rotating
// refresh tokens, and answers every other /api route with an echo of the
// request once the bearer token checks out.
package fakeapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/common"
	"github.com/dmitrijs2005/forumkeeper/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DefaultAccessTTL  = 5 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour

	claimsKey = "claims"
)

type Options struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Logger     logging.Logger
	// Users are created at start, username to password.
	Users map[string]string
}

type Server struct {
	router    *gin.Engine
	accounts  *accounts
	secret    []byte
	accessTTL time.Duration
	log       logging.Logger

	generation   atomic.Int64
	refreshCalls atomic.Int64
}

func New(opts Options) *Server {
	if opts.Secret == "" {
		opts.Secret = "fakeapi-secret"
	}
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = DefaultAccessTTL
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = DefaultRefreshTTL
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	s := &Server{
		accounts:  newAccounts(opts.RefreshTTL),
		secret:    []byte(opts.Secret),
		accessTTL: opts.AccessTTL,
		log:       opts.Logger.With("module", "fakeapi"),
	}
	for name, password := range opts.Users {
		if _, err := s.accounts.add(name, password, name+"@example.com"); err != nil {
			s.log.Warn(context.Background(), "seeding user failed", "username", name, "error", err)
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/login/", s.login)
	api.POST("/relogin/", s.relogin)
	api.POST("/register/code/", s.registerCode)
	api.POST("/register/", s.register)
	api.POST("/logout/", s.requireAuth, s.logout)

	r.NoRoute(s.requireAuth, s.echo)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.log.Info(ctx, "Stopping fake api...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info(ctx, "Starting fake api", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Expire invalidates every access token issued so far.
func (s *Server) Expire() {
	s.generation.Add(1)
}

// RevokeRefreshTokens drops all refresh tokens, so the next refresh fails.
func (s *Server) RevokeRefreshTokens() {
	s.accounts.revoke(0)
}

// RefreshCalls reports how many times /relogin/ was hit.
func (s *Server) RefreshCalls() int64 {
	return s.refreshCalls.Load()
}

// RegisterCode returns the pending verification code for email.
func (s *Server) RegisterCode(email string) string {
	return s.accounts.code(email)
}

func (s *Server) issuePair(acc *account) (gin.H, error) {
	access, err := GenerateToken(Claims{
		UserID:     acc.ID,
		Username:   acc.Username,
		Generation: s.generation.Load(),
	}, s.secret, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return gin.H{
		common.AccessTokenKey:  access,
		common.RefreshTokenKey: s.accounts.newRefreshToken(acc.ID),
	}, nil
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	acc, err := s.accounts.authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
		return
	}

	pair, err := s.issuePair(acc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (s *Server) relogin(c *gin.Context) {
	s.refreshCalls.Add(1)

	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	acc, err := s.accounts.rotate(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
		return
	}

	pair, err := s.issuePair(acc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (s *Server) registerCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.accounts.issueCode(req.Email)
	c.JSON(http.StatusOK, gin.H{"detail": "code sent"})
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Code     string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	acc, err := s.accounts.register(req.Username, req.Password, req.Email, req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"userID": acc.ID, "username": acc.Username})
}

func (s *Server) logout(c *gin.Context) {
	claims := c.MustGet(claimsKey).(*Claims)
	s.accounts.revoke(claims.UserID)
	c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
}

// echo answers any other API route with what it received.
func (s *Server) echo(c *gin.Context) {
	claims := c.MustGet(claimsKey).(*Claims)

	body, _ := io.ReadAll(c.Request.Body)
	c.JSON(http.StatusOK, gin.H{
		"method":   c.Request.Method,
		"path":     strings.TrimPrefix(c.Request.URL.Path, "/api"),
		"query":    c.Request.URL.RawQuery,
		"body":     string(body),
		"userID":   claims.UserID,
		"username": claims.Username,
	})
}

func (s *Server) requireAuth(c *gin.Context) {
	if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}

	token := extractToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authorization header required"})
		return
	}

	claims, err := ParseToken(token, s.secret)
	if err == nil && claims.Generation != s.generation.Load() {
		err = common.ErrTokenExpired
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
		return
	}

	c.Set(claimsKey, claims)
	c.Next()
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug(c.Request.Context(), "request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"request_id", c.GetHeader(common.RequestIDHeader),
		"elapsed", time.Since(start))
}

func extractToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader(common.AuthorizationHeader), " ")
	if !ok || scheme != common.BearerScheme {
		return ""
	}
	return token
}
