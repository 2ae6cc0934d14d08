package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nvkalinin/cal/log"
	"github.com/nvkalinin/cal/rest"
)

type Server struct {
	Debug bool `short:"d" long:"debug" env:"DEBUG" description:"Print debug messages to the log."`

	Web struct {
		Listen    string `long:"listen" env:"LISTEN" value-name:"addr" default:"0.0.0.0:8080" description:"Network address of the web server."`
		AccessLog bool   `long:"access-log" env:"ACCESS_LOG" description:"Log every HTTP request."`

		ReadTimeout       time.Duration `long:"read-timeout" env:"READ_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadTimeout"`
		ReadHeaderTimeout time.Duration `long:"read-header-timeout" env:"READ_HEADER_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadHeaderTimeout"`
		WriteTimeout      time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server WriteTimeout"`
		IdleTimeout       time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" value-name:"duration" default:"30s" description:"http.Server IdleTimeout"`
		ShutdownTimeout   time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" value-name:"duration" default:"30s" description:"How long to wait for active requests on shutdown."`

		RateLimiter struct {
			ReqLimit    int           `long:"reqs" env:"REQS" value-name:"num" default:"100" description:"Requests allowed from one IP. 0 disables the rate limiter."`
			LimitWindow time.Duration `long:"window" env:"WINDOW" value-name:"duration" default:"1s" description:"Time window for the request limit."`
		} `group:"Rate Limiter" namespace:"ratelim" env-namespace:"RATE_LIM"`
	} `group:"Web" namespace:"web" env-namespace:"WEB"`
}

func (s *Server) Execute(args []string) error {
	log.AllowDebug = s.Debug

	a, err := s.makeApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case <-sigChan:
			log.Printf("[INFO] shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return a.run(ctx)
}

type app struct {
	srv *rest.Server
}

func (s *Server) makeApp() (*app, error) {
	if _, _, err := net.SplitHostPort(s.Web.Listen); err != nil {
		return nil, fmt.Errorf("invalid listen address '%s': %w", s.Web.Listen, err)
	}

	return &app{
		srv: &rest.Server{
			Opts: rest.Opts{
				Listen:      s.Web.Listen,
				LogRequests: s.Web.AccessLog,

				ReadTimeout:       s.Web.ReadTimeout,
				ReadHeaderTimeout: s.Web.ReadHeaderTimeout,
				WriteTimeout:      s.Web.WriteTimeout,
				IdleTimeout:       s.Web.IdleTimeout,
				ShutdownTimeout:   s.Web.ShutdownTimeout,

				RateLimiter: s.Web.RateLimiter.ReqLimit > 0,
				ReqLimit:    s.Web.RateLimiter.ReqLimit,
				LimitWindow: s.Web.RateLimiter.LimitWindow,
			},
		},
	}, nil
}

func (a *app) run(ctx context.Context) error {
	if err := a.srv.Run(ctx); err != nil {
		log.Printf("[ERROR] server: %v", err)
		return err
	}
	log.Printf("[INFO] server stopped")
	return nil
}
