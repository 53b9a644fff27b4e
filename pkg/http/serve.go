package xhttp

import (
	"time"

	"github.com/paytrack/ledger-gateway/pkg/logger"
	"github.com/valyala/fasthttp"
)

type Middleware = func(next RequestHandler) RequestHandler

// Server is a thin ops-surface wrapper around fasthttp: a router, a
// middleware chain, and sane defaults for a low-traffic internal endpoint.
type Server struct {
	Server      *fasthttp.Server
	Router      *Router
	middlewares []Middleware
}

func NewServer() *Server {
	return &Server{
		Server: &fasthttp.Server{
			ReadTimeout:           time.Second * 5,
			WriteTimeout:          time.Second * 10,
			IdleTimeout:           time.Second * 30,
			MaxRequestBodySize:    1024 * 1024,
			NoDefaultServerHeader: true,
			CloseOnShutdown:       true,
			Logger:                logger.GetLogger(),
		},
		Router: CreateDefaultRouter(),
	}
}

func (s *Server) Use(m Middleware) {
	s.middlewares = append(s.middlewares, m)
}

func (s *Server) ListenAndServe(addr string) error {
	handler := s.Router.Handler
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		handler = s.middlewares[i](handler)
	}
	s.Server.Handler = handler

	logger.Info("ops server listening", "addr", addr)
	return s.Server.ListenAndServe(addr)
}

func (s *Server) Shutdown() {
	if err := s.Server.Shutdown(); err != nil {
		logger.Error("ops server shutdown", "error", err)
	}
}

// RecoverMiddleware turns handler panics into 500s instead of dropping
// the connection.
func RecoverMiddleware(next RequestHandler) RequestHandler {
	return func(ctx *RequestCtx) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in handler", "panic", r)
				ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
			}
		}()
		next(ctx)
	}
}

func RequestLoggerMiddleware(next RequestHandler) RequestHandler {
	return func(ctx *RequestCtx) {
		start := time.Now()
		next(ctx)
		logger.Debug("request",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"duration", time.Since(start),
		)
	}
}
