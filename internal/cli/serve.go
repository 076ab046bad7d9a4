// seehuhn.de/go/glitch - generative cover art distortion
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"seehuhn.de/go/glitch"
	"seehuhn.de/go/glitch/answerstore"
)

// maxBodySize limits the size of JSON request bodies.
const maxBodySize = 64 << 10

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		addr       string
		useAnswers bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve covers over HTTP",
		Long: `Serve covers over HTTP.

Endpoints:
  GET  /healthz     liveness check
  GET  /cover.png   the current cover; query parameters override settings
                    for this request only (background, opacity, vslices,
                    hslices, offset, frequency, aberration, angle, noise,
                    answers=<key>, seed=<n>)
  GET  /params      the current settings as JSON
  PUT  /params      change some or all settings and re-render
  POST /answers     store quiz answers, returns the new key
  POST /resize      change the displayed size and re-render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			st, closeStore, err := cfg.Answers.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			assets := loadAssets(ctx, cfg.Assets)
			sess := glitch.NewSession(cfg.Display.Target(), assets, cfg.Params.Apply(glitch.DefaultParameters()))
			sess.SetLogger(logger)
			if useAnswers {
				key := cfg.Answers.key()
				a, err := answerstore.Load(ctx, st, key, time.Now())
				if err != nil {
					return err
				}
				if sess.ApplyAnswers(a) {
					logger.Info("applied stored answers", "key", key)
				}
			}
			sess.Render()

			srv := newServer(sess, assets, st, logger)
			return srv.listenAndServe(ctx, cfg.Server.Addr)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&addr, "addr", "", "listen address (default from the configuration)")
	fs.BoolVar(&useAnswers, "answers", false, "apply the stored quiz answers on start-up")

	return cmd
}

// server exposes one Session over HTTP.  All access to the session is
// serialised by mu.
type server struct {
	mu   sync.Mutex
	sess *glitch.Session

	assets glitch.Assets
	store  answerstore.Store
	logger *log.Logger
	now    func() time.Time
}

func newServer(sess *glitch.Session, assets glitch.Assets, st answerstore.Store, logger *log.Logger) *server {
	return &server{
		sess:   sess,
		assets: assets,
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/cover.png", s.handleCover)
	r.Get("/params", s.handleGetParams)
	r.Put("/params", s.handlePutParams)
	r.Post("/answers", s.handlePostAnswers)
	r.Post("/resize", s.handleResize)

	return r
}

// listenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *server) listenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// requestLogger logs every request at debug level, and makes a logger
// tagged with the request ID available through the request context.
func requestLogger(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rl := l.With("request", middleware.GetReqID(r.Context()))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(log.WithContext(r.Context(), rl)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			rl.Debug("request",
				"method", r.Method, "path", r.URL.Path,
				"status", status, "bytes", ww.BytesWritten(),
				"elapsed", time.Since(start).Round(time.Microsecond))
		})
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCover returns the current cover as PNG.  If the query holds any
// settings, answers or a seed, a separate cover is rendered for this
// request and the session is left unchanged.
func (s *server) handleCover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	o, err := parseOverrides(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var rnd glitch.RandomSource
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid seed %q", v))
			return
		}
		rnd = glitch.NewSeededSource(seed)
	}

	var answers *glitch.AnswerRecord
	if key := q.Get("answers"); key != "" {
		answers, err = answerstore.Load(r.Context(), s.store, key, s.now())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if answers == nil {
			log.FromContext(r.Context()).Debug("no usable answers, using current settings", "key", key)
		}
	}

	var buf bytes.Buffer
	if o.IsEmpty() && answers == nil && rnd == nil {
		err = s.encodeCurrent(&buf)
	} else {
		p, target := s.state()
		p = o.Apply(glitch.DeriveParameters(answers).Apply(p)).Clamp()
		surface := target.NewSurface()
		glitch.Render(surface, s.assets.Source, s.assets.Overlay, p, rnd)
		err = encodeCover(&buf, surface)
	}
	if errors.Is(err, errNoArea) {
		writeError(w, http.StatusConflict, err)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// encodeCurrent writes the session's cover as PNG, rendering it first if
// necessary.
func (s *server) encodeCurrent(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	surface := s.sess.Surface()
	if surface == nil {
		surface = s.sess.Render()
	}
	return encodeCover(w, surface)
}

// state returns the current parameters and target of the session.
func (s *server) state() (glitch.ParameterSet, glitch.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Params(), s.sess.Target()
}

var errNoArea = errors.New("target has no area")

func encodeCover(w io.Writer, s *glitch.Surface) error {
	if s.Empty() {
		return errNoArea
	}
	return png.Encode(w, s.Image())
}

func (s *server) handleGetParams(w http.ResponseWriter, r *http.Request) {
	p, _ := s.state()
	writeJSON(w, http.StatusOK, p)
}

// handlePutParams applies a partial parameter set, limited to the control
// ranges, and re-renders.
func (s *server) handlePutParams(w http.ResponseWriter, r *http.Request) {
	var o glitch.Overrides
	if err := decodeJSON(r, &o); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, s.update(o))
}

// update applies o to the session parameters, limited to the control
// ranges, and re-renders.
func (s *server) update(o glitch.Overrides) glitch.ParameterSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := o.Apply(s.sess.Params()).Clamp()
	s.sess.Update(p)
	return p
}

// handlePostAnswers stores a set of quiz answers under a fresh key.
func (s *server) handlePostAnswers(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	a, err := glitch.ParseAnswerRecord(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	key := answerstore.NewKey()
	if err := answerstore.Save(r.Context(), s.store, key, a, s.now()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	log.FromContext(r.Context()).Info("stored answers", "key", key)
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

type resizeRequest struct {
	CSSWidth  float64 `json:"cssWidth"`
	CSSHeight float64 `json:"cssHeight"`
}

type resizeResponse struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// handleResize changes the displayed size and re-renders.
func (s *server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !validCSSSize(req.CSSWidth) || !validCSSSize(req.CSSHeight) {
		writeError(w, http.StatusBadRequest, errors.New("invalid size"))
		return
	}
	target := glitch.Target{CSSWidth: req.CSSWidth, CSSHeight: req.CSSHeight}
	if err := target.Check(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, s.resize(target))
}

// resize changes the session target and re-renders.
func (s *server) resize(t glitch.Target) resizeResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	surface := s.sess.Resize(t.CSSWidth, t.CSSHeight)
	return resizeResponse{Width: surface.Width(), Height: surface.Height()}
}

func validCSSSize(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// parseOverrides reads settings from query parameters.  The parameter
// names match the flags of the render command.
func parseOverrides(q url.Values) (glitch.Overrides, error) {
	var o glitch.Overrides
	if v := q.Get("background"); v != "" {
		c, err := glitch.ParseRGB(v)
		if err != nil {
			return glitch.Overrides{}, err
		}
		o.BackgroundColor = &c
	}

	floats := []struct {
		name string
		dst  **float64
	}{
		{"opacity", &o.ImageOpacity},
		{"offset", &o.VerticalOffset},
		{"frequency", &o.VerticalFrequency},
		{"aberration", &o.ChromaticAberration},
		{"angle", &o.ChromaticAngle},
		{"noise", &o.NoiseIntensity},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return glitch.Overrides{}, fmt.Errorf("invalid %s %q", f.name, v)
		}
		*f.dst = &x
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"vslices", &o.VerticalSliceCount},
		{"hslices", &o.HorizontalSliceCount},
	}
	for _, f := range ints {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return glitch.Overrides{}, fmt.Errorf("invalid %s %q", f.name, v)
		}
		*f.dst = &n
	}

	return o, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
