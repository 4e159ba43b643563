package cmd

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordguess/chord"
	"github.com/jsphweid/chordguess/constants"
	"github.com/jsphweid/chordguess/logger"
	"github.com/jsphweid/chordguess/model"
	"github.com/jsphweid/chordguess/note"
	"github.com/jsphweid/chordguess/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const (
	requestIDHeader    = "X-Request-Id"
	sentryFlushTimeout = 2 * time.Second
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the chord API over HTTP",
	Long:  `Serves POST /detect, GET /templates and GET /health on $PORT (default 8080).`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("could not encode response", err, logger.Fields{"request_id": w.Header().Get(requestIDHeader)})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func requestID(w http.ResponseWriter) string {
	id := w.Header().Get(requestIDHeader)
	if id == "" {
		id = uuid.New().String()
		w.Header().Set(requestIDHeader, id)
	}
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// trackRequests tags every response with a request id and logs it once done.
func trackRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestID(w)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		fields := logger.Fields{
			"request_id":  id,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		switch {
		case rec.status >= http.StatusInternalServerError:
			logger.Error("request failed with server error", nil, fields)
		case rec.status >= http.StatusBadRequest:
			logger.Warn("request failed with client error", fields)
		default:
			logger.Info("request completed", fields)
		}
	})
}

func toResponse(id string, pitches []note.Pitch) model.DetectResponse {
	res := model.DetectResponse{
		ID:    id,
		Chord: chord.NotApplicable,
		Notes: util.Map(pitches, note.Pitch.String),
	}
	g, ok := chord.Recognize(pitches)
	if !ok {
		return res
	}
	res.Chord = g.String()
	res.Root = g.Root.String()
	res.Quality = g.Label
	res.Bass = g.Bass.String()
	res.Inverted = g.Inverted
	res.Score = g.Score
	res.Percent = chord.Percent(g.Score)
	return res
}

func HandleDetect(w http.ResponseWriter, r *http.Request) {
	id := requestID(w)

	var input model.DetectRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "could not decode request body: "+err.Error())
		return
	}

	pitches, err := note.ParsePitches(input.Notes, input.Transpose)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, n := range input.Numbers {
		pitches = append(pitches, note.Transpose(note.FromNumber(n), input.Transpose))
	}

	res := toResponse(id, pitches)
	logger.Info("detected chord", logger.Fields{"request_id": id, "chord": res.Chord, "notes": res.Notes})
	writeJSON(w, http.StatusOK, res)
}

func HandleTemplates(w http.ResponseWriter, r *http.Request) {
	templates := chord.Templates()
	res := make([]model.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		res = append(res, model.TemplateResponse{Label: t.Label, Intervals: t.Intervals.Distances()})
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(trackRequests)
	router.HandleFunc("/detect", HandleDetect).Methods("POST")
	router.HandleFunc("/templates", HandleTemplates).Methods("GET")
	router.HandleFunc("/health", HandleHealth).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: constants.GetCorsOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(router)
}

func initSentry() bool {
	dsn := constants.GetSentryDSN()
	if dsn == "" {
		log.Println("Sentry not configured (SENTRY_DSN not set)")
		return false
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: constants.GetEnvironment(),
		Release:     "chordguess@" + releaseVersion,
	})
	if err != nil {
		log.Printf("Failed to initialize Sentry: %v", err)
		return false
	}
	return true
}

func serve() {
	handler := NewRouter()
	if initSentry() {
		handler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(handler)
	}

	addr := ":" + constants.GetPort()
	log.Printf("serving chord api on %s", addr)
	err := http.ListenAndServe(addr, handler)
	sentry.CaptureException(err)
	sentry.Flush(sentryFlushTimeout)
	log.Fatal(err)
}
