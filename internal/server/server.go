package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cricklet/chessmates/internal/analysis"
	"github.com/cricklet/chessmates/internal/extract"
	. "github.com/cricklet/chessmates/internal/helpers"
	"github.com/cricklet/chessmates/internal/render"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const DefaultMaxUploadBytes = 32 << 20

type Config struct {
	Logger       zerolog.Logger
	SquareSafety bool
	Workers      int
	// MaxUploadBytes caps a POST /extract body; zero means DefaultMaxUploadBytes.
	MaxUploadBytes int64
}

type Server struct {
	log      zerolog.Logger
	config   Config
	upgrader websocket.Upgrader
}

func NewServer(config Config) *Server {
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Server{
		log:    config.Logger,
		config: config,
	}
}

// AnalyzeRequest is one websocket message.
type AnalyzeRequest struct {
	Fen string `json:"fen"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) analysisOptions() []analysis.AnalysisOption {
	if s.config.SquareSafety {
		return []analysis.AnalysisOption{analysis.WithSquareSafety()}
	}
	return nil
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.logRequests)
	router.HandleFunc("/analyze", s.analyze).Methods(http.MethodGet)
	router.HandleFunc("/analyze.svg", s.analyzeSvg).Methods(http.MethodGet)
	router.HandleFunc("/extract", s.extract).Methods(http.MethodPost)
	router.HandleFunc("/ws", s.ws)
	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Hijack hands the connection to the websocket upgrader.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("%T cannot be hijacked", r.ResponseWriter)
	}
	r.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func statusFor(err Error) int {
	var missingKing analysis.MissingKingError
	var invalidPiece InvalidPieceCodeError
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.As(err, &missingKing) || errors.As(err, &invalidPiece) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn().Err(err).Msg("writing response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err Error) {
	s.writeJSON(w, statusFor(err), ErrorResponse{err.Error()})
}

func (s *Server) fenParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{"missing fen parameter"})
		return "", false
	}
	return fen, true
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	fen, ok := s.fenParam(w, r)
	if !ok {
		return
	}
	record, err := analysis.BuildAnalysisFromFen(fen, s.analysisOptions()...)
	if !IsNil(err) {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) analyzeSvg(w http.ResponseWriter, r *http.Request) {
	fen, ok := s.fenParam(w, r)
	if !ok {
		return
	}
	record, err := analysis.BuildAnalysisFromFen(fen, s.analysisOptions()...)
	if !IsNil(err) {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.MateDiagram(w, record); !IsNil(err) {
		s.log.Warn().Err(err).Msg("rendering")
	}
}

// extract runs the batch extractor over a PGN body and answers with the mates found.
func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	options := []extract.ExtractorOption{
		extract.WithLogger(NewZerologLogger(s.log.With().Str("component", "extract").Logger())),
		extract.WithWorkers(s.config.Workers),
	}
	if s.config.SquareSafety {
		options = append(options, extract.WithSquareSafety())
	}

	body := http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	result, err := extract.NewExtractor(options...).RunReader(r.Context(), "upload", body)
	if !IsNil(err) {
		s.writeError(w, err)
		return
	}

	mates := result.Mates
	if mates == nil {
		mates = []extract.Mate{}
	}
	s.writeJSON(w, http.StatusOK, mates)
}

func (s *Server) ws(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer c.Close()

	log := s.log.With().Str("remote", r.RemoteAddr).Logger()
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("websocket closed")
			}
			return
		}

		response := s.handleMessage(message)
		log.Debug().Bytes("received", message).Msg("websocket message")
		if err := c.WriteJSON(response); err != nil {
			log.Warn().Err(err).Msg("websocket write")
			return
		}
	}
}

func (s *Server) handleMessage(message []byte) any {
	var request AnalyzeRequest
	if err := json.Unmarshal(message, &request); err != nil {
		return ErrorResponse{"invalid request: " + err.Error()}
	}
	if request.Fen == "" {
		return ErrorResponse{"missing fen"}
	}
	record, err := analysis.BuildAnalysisFromFen(request.Fen, s.analysisOptions()...)
	if !IsNil(err) {
		return ErrorResponse{err.Error()}
	}
	return record
}
