// Package httpapi exposes the account and product services over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/seedstock/internal/logging"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	maxJSONBodyBytes  = 1 << 20
	defaultMaxUpload  = 10 << 20
)

type AccountService interface {
	Register(ctx context.Context, userName, password string) (*models.Account, error)
	Login(ctx context.Context, userName, password string) (string, error)
}

type ProductService interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, id string, fields models.ProductFields) (*models.Product, error)
	ImportCSV(ctx context.Context, fileName string, data []byte) ([]*models.Product, string, error)
	Update(ctx context.Context, id string, fields models.ProductFields) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

// TokenVerifier resolves an access token to the account id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type Options struct {
	Address        string
	AllowedOrigins []string
	MaxUploadBytes int64
	Registry       *prometheus.Registry
}

type HTTPServer struct {
	address        string
	allowedOrigins []string
	maxUploadBytes int64
	accounts       AccountService
	products       ProductService
	tokens         TokenVerifier
	logger         logging.Logger
	registry       *prometheus.Registry
	metrics        *Metrics
}

func NewHTTPServer(opts Options, l logging.Logger, as AccountService, ps ProductService, tv TokenVerifier) *HTTPServer {
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &HTTPServer{
		address:        opts.Address,
		allowedOrigins: opts.AllowedOrigins,
		maxUploadBytes: maxUpload,
		accounts:       as,
		products:       ps,
		tokens:         tv,
		logger:         l.With("module", "http_server"),
		registry:       registry,
		metrics:        NewMetrics(registry),
	}
}

// Handler builds the complete middleware chain and routes.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.metrics.Middleware)

	notFound := s.metrics.Middleware(http.HandlerFunc(s.notFound))
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notFound

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	a := r.PathPrefix("/auth").Subrouter()
	a.HandleFunc("/register", s.register).Methods(http.MethodPost)
	a.HandleFunc("/login", s.login).Methods(http.MethodPost)

	p := r.PathPrefix("/products").Subrouter()
	p.Use(s.accessTokenMiddleware)
	p.HandleFunc("", s.listProducts).Methods(http.MethodGet)
	p.HandleFunc("", s.createProduct).Methods(http.MethodPost)
	p.HandleFunc("/csv", s.importProducts).Methods(http.MethodPost)
	p.HandleFunc("/{id}", s.getProduct).Methods(http.MethodGet)
	p.HandleFunc("/{id}", s.updateProduct).Methods(http.MethodPut)
	p.HandleFunc("/{id}", s.deleteProduct).Methods(http.MethodDelete)

	var h http.Handler = r
	h = s.corsMiddleware(h)
	h = s.loggingMiddleware(h)
	h = s.requestIDMiddleware(h)
	h = s.recoveryMiddleware(h)
	return h
}

func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled, then drains
// in-flight requests.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}
