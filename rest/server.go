package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/nvkalinin/cal/calendar"
	"github.com/nvkalinin/cal/date"
	"github.com/nvkalinin/cal/log"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 30 * time.Second

type Server struct {
	Now  func() time.Time // Source of the highlighted day, time.Now if nil.
	Opts Opts
}

type Opts struct {
	Listen      string
	LogRequests bool

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	RateLimiter bool
	ReqLimit    int
	LimitWindow time.Duration
}

// Run serves until ctx is cancelled, then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Opts.Listen,
		Handler:           s.routes(),
		ReadTimeout:       s.Opts.ReadTimeout,
		ReadHeaderTimeout: s.Opts.ReadHeaderTimeout,
		WriteTimeout:      s.Opts.WriteTimeout,
		IdleTimeout:       s.Opts.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[INFO] rest: listening on %s", s.Opts.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("rest: cannot serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		timeout := s.Opts.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("rest: cannot shutdown: %w", err)
		}
		log.Printf("[DEBUG] rest: stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	if s.Opts.LogRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		if s.Opts.RateLimiter {
			r.Use(httprate.LimitByIP(s.Opts.ReqLimit, s.Opts.LimitWindow))
		}

		r.Get("/cal", s.currentCtrl)
		r.Get("/cal/{y}", s.yearCtrl)
		r.Get("/cal/{y}/{m}", s.monthCtrl)
	})

	return r
}

func (s *Server) currentCtrl(w http.ResponseWriter, r *http.Request) {
	n, err := countParam(r)
	if err != nil {
		sendErrorJson(w, 400, "invalid month count")
		return
	}

	s.render(w, r, calendar.Request{Month: -1, Count: n})
}

func (s *Server) yearCtrl(w http.ResponseWriter, r *http.Request) {
	y, err := yearParam(r)
	if err != nil {
		sendErrorJson(w, 400, "invalid year")
		return
	}

	s.render(w, r, calendar.Request{Year: y, Month: -1})
}

func (s *Server) monthCtrl(w http.ResponseWriter, r *http.Request) {
	y, err1 := yearParam(r)
	m, err2 := monthParam(r)
	n, err3 := countParam(r)
	if err := errors.Join(err1, err2, err3); err != nil {
		log.Printf("[DEBUG] rest: bad request %s: %v", r.URL, err)
		sendErrorJson(w, 400, "invalid date")
		return
	}

	s.render(w, r, calendar.Request{Year: y, Month: m, Count: n})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, req calendar.Request) {
	hl, err := highlightParam(r)
	if err != nil {
		sendErrorJson(w, 400, "invalid color")
		return
	}

	req.WeekNumbers, err = boolParam(r, "w")
	if err != nil {
		sendErrorJson(w, 400, "invalid week numbers flag")
		return
	}

	p := calendar.NewPrinter(calendar.Opts{
		Today:     date.FromTime(s.now()),
		Highlight: hl,
	})

	buf := &bytes.Buffer{}
	if err := p.Run(buf, req); err != nil {
		if errors.Is(err, calendar.ErrMonthRange) {
			sendErrorJson(w, 400, "invalid month number")
			return
		}
		log.Printf("[WARN] rest: cannot render %s: %v", r.URL, err)
		sendErrorJson(w, 500, "cannot render calendar")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(200)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[WARN] rest: cannot write response data: %+v", err)
	}
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func intParam(r *http.Request, param string) (int, error) {
	strVal := chi.URLParam(r, param)
	return strconv.Atoi(strVal)
}

func yearParam(r *http.Request) (int, error) {
	y, err := intParam(r, "y")
	if err != nil {
		return 0, err
	}

	if y <= 0 {
		return 0, fmt.Errorf("invalid year")
	}
	return y, nil
}

// monthParam is 0-indexed, as the -m flag.
func monthParam(r *http.Request) (int, error) {
	m, err := intParam(r, "m")
	if err != nil {
		return 0, err
	}

	if m < int(date.January) || m > int(date.December) {
		return 0, fmt.Errorf("invalid month number")
	}
	return m, nil
}

func countParam(r *http.Request) (int, error) {
	val := r.URL.Query().Get("n")
	if val == "" {
		return 0, nil
	}
	return strconv.Atoi(val)
}

func boolParam(r *http.Request, param string) (bool, error) {
	val := r.URL.Query().Get(param)
	if val == "" {
		return false, nil
	}
	return strconv.ParseBool(val)
}

func highlightParam(r *http.Request) (calendar.Highlighter, error) {
	switch r.URL.Query().Get("color") {
	case "", "none":
		return calendar.NoHighlight, nil
	case "ansi":
		return calendar.ANSI, nil
	default:
		return nil, fmt.Errorf("unknown color mode")
	}
}

func sendErrorJson(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	restErr := &struct {
		Msg string `json:"msg"`
	}{msg}

	errJson, err := json.Marshal(restErr)
	if err != nil {
		log.Printf("[WARN] rest: cannot marshal error: %+v", err)
		return
	}

	if _, err = w.Write(errJson); err != nil {
		log.Printf("[WARN] rest: cannot write error: %+v", err)
	}
}
