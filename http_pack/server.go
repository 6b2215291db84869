package http_pack

import (
	"context"
	"fmt"
	"time"

	"github.com/fasthttp/router"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"okinoko_presale/http_pack/helpers"
	"okinoko_presale/http_pack/routes"
)

// Config controls where the query API listens and how hard it may be hit.
type Config struct {
	Addr string
	// RatePerSecond and Burst feed a token bucket shared by all clients; 0 disables it.
	RatePerSecond float64
	Burst         int
}

func createRouter(reader routes.PresaleReader, log logrus.FieldLogger) *router.Router {
	rt := &routes.Routes{Presale: reader, Log: log}

	r := router.New()

	r.GET("/presale", rt.GetPresaleInfo)
	r.GET("/user/{address}", rt.GetUserInfo)
	r.GET("/user/{address}/deposits", rt.GetUserDeposits)
	r.GET("/whitelist/{address}", rt.IsWhitelisted)

	return r
}

// limit wraps next with a token bucket; callers over the budget get 429.
func limit(next fasthttp.RequestHandler, limiter *rate.Limiter) fasthttp.RequestHandler {
	if limiter == nil {
		return next
	}
	return func(ctx *fasthttp.RequestCtx) {
		if !limiter.Allow() {
			helpers.WriteErr(ctx, fasthttp.StatusTooManyRequests, "Rate limit exceeded", 0)
			return
		}
		next(ctx)
	}
}

// NewHandler assembles the router behind the rate limiter.
func NewHandler(cfg Config, reader routes.PresaleReader, log logrus.FieldLogger) fasthttp.RequestHandler {
	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return limit(createRouter(reader, log).Handler, limiter)
}

// Serve blocks until ctx is cancelled or the listener fails.
func Serve(ctx context.Context, cfg Config, reader routes.PresaleReader, log logrus.FieldLogger) error {
	srv := &fasthttp.Server{
		Handler:      NewHandler(cfg, reader, log),
		Name:         "okinoko-presale",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("Server is starting")
		errCh <- srv.ListenAndServe(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Server is shutting down")
		return srv.Shutdown()
	}
}
