// Package handlers wires the HTTP surface: upload intake, the /api media
// routes, the content routes and the shared error-to-status boundary.
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jyouturner/mediabox/pkg/logger"
	"github.com/jyouturner/mediabox/pkg/metrics"
)

// Deps holds the collaborators the routes dispatch to. Archive is optional.
type Deps struct {
	Logger    logger.Logger
	Metrics   *metrics.Metrics
	DataDir   string
	MaxMemory int64

	Media   MediaProcessor
	PDF     PDFRenderer
	Archive DocumentArchive

	Library   ContentProvider
	Bible     VerseLookup
	Shortener URLShortener
	Remover   BackgroundRemover
	Fancy     FancyFunc
}

// NewRouter builds the full route table.
func NewRouter(d Deps) *mux.Router {
	if d.Logger == nil {
		d.Logger = logger.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	intake := Intake{MaxMemory: d.MaxMemory, Log: d.Logger}

	chain := []mux.MiddlewareFunc{RequestID, d.Metrics.Middleware, RequestLogger(d.Logger), Recoverer(d.Logger)}

	router := mux.NewRouter()
	router.Use(chain...)
	// mux skips router middleware when nothing matched.
	router.NotFoundHandler = wrap(chain, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	}))
	router.MethodNotAllowedHandler = wrap(chain, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	}))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)

	api := &APIHandler{
		boundary: boundary{log: d.Logger, metrics: d.Metrics, envelope: bareEnvelope},
		dataDir:  d.DataDir,
		media:    d.Media,
		pdf:      d.PDF,
		archive:  d.Archive,
	}
	a := router.PathPrefix("/api").Subrouter()
	a.HandleFunc("/hello", api.handle("hello", api.hello)).Methods(http.MethodGet)
	a.HandleFunc("/facts", api.handle("api_facts", api.facts)).Methods(http.MethodGet)
	a.HandleFunc("/quotes", api.handle("api_quotes", api.quotes)).Methods(http.MethodGet)
	a.Handle("/flip", intake.Single("media", api.handle("flip", api.flip))).Methods(http.MethodPost)
	a.Handle("/blackvideo", intake.Single("audio", api.handle("blackvideo", api.blackVideo))).Methods(http.MethodPost)
	a.Handle("/sticker", intake.Single("media", api.handle("sticker", api.sticker))).Methods(http.MethodPost)
	a.HandleFunc("/topdf", api.handle("topdf", api.toPDF)).Methods(http.MethodPost)

	base := &BaseHandler{
		boundary:  boundary{log: d.Logger, metrics: d.Metrics, envelope: successEnvelope},
		library:   d.Library,
		bible:     d.Bible,
		shortener: d.Shortener,
		remover:   d.Remover,
		fancy:     d.Fancy,
		pdf:       d.PDF,
	}
	router.HandleFunc("/facts", base.handle("facts", base.facts)).Methods(http.MethodGet)
	router.HandleFunc("/quotes", base.handle("quotes", base.quotes)).Methods(http.MethodGet)
	router.HandleFunc("/rizz", base.handle("rizz", base.rizz)).Methods(http.MethodGet)
	router.HandleFunc("/bible", base.handle("bible", base.bibleVerse)).Methods(http.MethodGet)
	router.HandleFunc("/fancy", base.handle("fancy", base.fancyText)).Methods(http.MethodGet)
	router.Handle("/removeBg", intake.Single("image", base.handle("removebg", base.removeBg))).Methods(http.MethodPost)
	router.HandleFunc("/tinyurl", base.handle("tinyurl", base.tinyURL)).Methods(http.MethodGet)
	router.HandleFunc("/textToPdf", base.handle("texttopdf", base.textToPDF)).Methods(http.MethodPost)

	return router
}

func wrap(chain []mux.MiddlewareFunc, h http.Handler) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}
