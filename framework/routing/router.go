// Package routing is a chi router whose actions are resolved and invoked
// through the container.
package routing

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-container/framework/container"
	gohttp "github.com/km-arc/go-container/framework/http"
)

// Override keys under which every dispatched action can receive the request
// and response by type, whatever its parameters are named.
var (
	requestKey    = container.KeyOf[*gohttp.Request]()
	responseKey   = container.KeyOf[*gohttp.Response]()
	rawRequestKey = container.KeyOf[*http.Request]()
	writerKey     = container.KeyOf[http.ResponseWriter]()
)

// Router wraps chi.Router with Laravel-style helpers.
type Router struct {
	mux       chi.Router
	container *container.Container
	log       *slog.Logger
}

// New creates a Router dispatching through c, with request IDs, real IP,
// request logging and panic recovery. Requests are logged to the "log"
// binding of c when it holds a *slog.Logger.
func New(c *container.Container) *Router {
	log := slog.New(slog.DiscardHandler)
	if c.Bound("log") {
		if l, err := container.Resolve[*slog.Logger](c, "log"); err == nil {
			log = l
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	return &Router{mux: r, container: c, log: log}
}

func (r *Router) with(mx chi.Router) *Router {
	return &Router{mux: mx, container: r.container, log: r.log}
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

// An action is either an http.HandlerFunc (mounted as-is) or anything
// Container.Call accepts:
//
//	r.Get("/users/{id}", "UserController@Show")
//	r.Get("/users/{id}", []any{users, "Show"})
//	r.Get("/ping", func() string { return "pong" })

func (r *Router) Get(pattern string, action any)    { r.mux.Get(pattern, r.handler(action)) }
func (r *Router) Post(pattern string, action any)   { r.mux.Post(pattern, r.handler(action)) }
func (r *Router) Put(pattern string, action any)    { r.mux.Put(pattern, r.handler(action)) }
func (r *Router) Patch(pattern string, action any)  { r.mux.Patch(pattern, r.handler(action)) }
func (r *Router) Delete(pattern string, action any) { r.mux.Delete(pattern, r.handler(action)) }

// Any registers an action for all common HTTP methods.
func (r *Router) Any(pattern string, action any) {
	h := r.handler(action)
	for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"} {
		r.mux.Method(m, pattern, h)
	}
}

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group creates an inline group. Laravel: Route::group([], fn)
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(r.with(mx))
	})
}

// Prefix creates a sub-router with a URL prefix. Laravel: Route::prefix('/api')
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) {
		fn(r.with(mx))
	})
}

// Middleware adds one or more middleware to the router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ── Resource routes ──────────────────────────────────────────────────────────

// Resource registers the RESTful routes of a controller resolved from the
// container by name:
//
//	GET    /photos           → Controller@Index
//	POST   /photos           → Controller@Store
//	GET    /photos/{id}      → Controller@Show
//	PUT    /photos/{id}      → Controller@Update
//	PATCH  /photos/{id}      → Controller@Update
//	DELETE /photos/{id}      → Controller@Destroy
func (r *Router) Resource(pattern, controller string) {
	r.Get(pattern, controller+"@Index")
	r.Post(pattern, controller+"@Store")
	r.Get(pattern+"/{id}", controller+"@Show")
	r.Put(pattern+"/{id}", controller+"@Update")
	r.Patch(pattern+"/{id}", controller+"@Update")
	r.Delete(pattern+"/{id}", controller+"@Destroy")
}

// Static serves a directory at the given prefix.
//
//	router.Static("/public", "./public")
func (r *Router) Static(prefix, dir string) {
	r.mux.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
}

// ── Dispatch ─────────────────────────────────────────────────────────────────

func (r *Router) handler(action any) http.HandlerFunc {
	switch h := action.(type) {
	case http.HandlerFunc:
		return h
	case func(http.ResponseWriter, *http.Request):
		return h
	case http.Handler:
		return h.ServeHTTP
	}
	return func(w http.ResponseWriter, req *http.Request) {
		r.dispatch(w, req, action)
	}
}

// dispatch calls action through the container. URL parameters are passed as
// overrides by name; the request and response by type and as "request" and
// "response". A returned value is rendered as 200 {"data": ...}, an error as
// 500 {"message": ...}, and nothing as 204, unless the action already wrote
// its own response.
func (r *Router) dispatch(w http.ResponseWriter, req *http.Request, action any) {
	res := gohttp.NewResponse(w)
	request := gohttp.NewRequest(req)

	params := container.Params{
		"request":     request,
		"response":    res,
		requestKey:    request,
		responseKey:   res,
		rawRequestKey: req,
		writerKey:     res.Raw(),
	}
	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key != "*" {
				params[key] = rctx.URLParams.Values[i]
			}
		}
	}

	result, err := r.container.Call(action, params)
	if err != nil {
		r.log.Error("routing: action failed", "method", req.Method, "path", req.URL.Path, "err", err)
		if !res.Written() {
			res.ServerError(err.Error())
		}
		return
	}
	switch {
	case res.Written():
	case result == nil:
		res.NoContent()
	default:
		res.Success(result)
	}
}

// ── Params ───────────────────────────────────────────────────────────────────

// Param extracts a URL param, equivalent to $request->route('id')
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler so Router can be passed to http.ListenAndServe.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler (for testing etc.).
func (r *Router) Handler() http.Handler {
	return r.mux
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, req)
			log.Info("http request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(req.Context()),
			)
		})
	}
}
