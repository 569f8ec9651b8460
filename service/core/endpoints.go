package core

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	sm "bondspread/service/models"
)

const (
	DefaultAddr = ":8080"
)

type ServerOptions struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func GetHttpServer(sc *ServiceContext, opts ServerOptions) *http.Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}

	return &http.Server{
		Addr:           opts.Addr,
		Handler:        NewRouter(sc),
		ReadTimeout:    opts.ReadTimeout,
		WriteTimeout:   opts.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func NewRouter(sc *ServiceContext) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(sc))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping)
		r.Post("/selection", func(w http.ResponseWriter, r *http.Request) { selection(w, r, sc) })
		r.Post("/analysis", func(w http.ResponseWriter, r *http.Request) { analysis(w, r, sc) })
		r.Post("/periods", func(w http.ResponseWriter, r *http.Request) { periods(w, r, sc) })
	})

	return r
}

func ping(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"message": "pong"})
}

func selection(w http.ResponseWriter, r *http.Request, sc *ServiceContext) {
	var req sm.SelectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	criteria, err := sm.MapSelectionRequestToCriteria(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := sc.withRequest(r).SelectBonds(criteria, req.FromStart)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, sm.GetServiceResponseOk(res))
}

func analysis(w http.ResponseWriter, r *http.Request, sc *ServiceContext) {
	var req sm.SelectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	criteria, err := sm.MapSelectionRequestToCriteria(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := sc.withRequest(r).AnalyzeBonds(criteria, req.FromStart)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, sm.GetServiceResponseOk(res))
}

func periods(w http.ResponseWriter, r *http.Request, sc *ServiceContext) {
	var req sm.PeriodsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ps, err := sm.MapPeriodsRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := sc.withRequest(r).RunPeriods(req.Issuer, *req.MinMaturity, *req.MaxMaturity, ps)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, sm.GetServiceResponseOk(&res))
}

// decodeAndValidate writes a 400 and returns false when the body is unusable
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCriteria):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	render.JSON(w, r, sm.GetServiceResponseError(err.Error()))
}

// withRequest scopes the service context to the lifetime of a request
func (sc *ServiceContext) withRequest(r *http.Request) *ServiceContext {
	res := *sc
	res.Context = r.Context()
	return &res
}

func requestLogger(sc *ServiceContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			sc.Logger.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"elapsed":    time.Since(start),
			}).Info("handled request")
		})
	}
}
