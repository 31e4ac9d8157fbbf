package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"chessd/board"
	"chessd/engine"
)

// openingJitter are the bot's candidate first moves as White, chosen
// uniformly at random instead of searching.
var openingJitter = []string{"e2e4", "d2d4", "c2c4", "g1f3", "b1c3"}

// Config carries the server's collaborators and search settings.
type Config struct {
	Searcher  engine.Searcher
	Depth     int
	TimeLimit time.Duration
	Logger    *zap.Logger
}

// Server is the HTTP façade over the one live game. A single mutex covers
// every endpoint that reads or mutates the board, so a search never runs
// concurrently with move application.
type Server struct {
	mu        sync.Mutex
	game      *Game
	searcher  engine.Searcher
	depth     int
	timeLimit time.Duration
	logger    *zap.Logger
	rng       *rand.Rand
}

// New builds a server with a default game already in progress, so every
// endpoint works before the first /newgame.
func New(cfg Config) *Server {
	if cfg.Depth <= 0 {
		cfg.Depth = engine.DefaultDepth
	}
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = engine.DefaultTimeLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Server{
		game:      NewGame(true, cfg.Depth),
		searcher:  cfg.Searcher,
		depth:     cfg.Depth,
		timeLimit: cfg.TimeLimit,
		logger:    cfg.Logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Router wires the game endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Post("/newgame", s.handleNewGame)
	r.Get("/legal_moves", s.handleLegalMoves)
	r.Post("/move", s.handleMove)
	r.Post("/bot_move", s.handleBotMove)
	return r
}

// requestLogger logs every request with its duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type newGameRequest struct {
	PlayerWhite *bool `json:"player_white"`
	Depth       int   `json:"depth"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if r.Body != nil {
		// An empty body means the defaults: human plays White.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	playerWhite := true
	if req.PlayerWhite != nil {
		playerWhite = *req.PlayerWhite
	}
	depth := req.Depth
	if depth <= 0 {
		depth = s.depth
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = NewGame(playerWhite, depth)
	s.logger.Info("new game",
		zap.String("game_id", s.game.ID.String()),
		zap.Bool("player_white", playerWhite),
		zap.Int("depth", depth),
	)
	writeJSON(w, http.StatusOK, s.game.state())
}

type legalMovesResponse struct {
	Moves []legalMoveTarget `json:"moves"`
}

type legalMoveTarget struct {
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func (s *Server) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	from, err := squareToIndex(r.URL.Query().Get("from_square"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := legalMovesResponse{Moves: []legalMoveTarget{}}
	for _, m := range s.game.pos.LegalMoves() {
		if int(m.From) != from {
			continue
		}
		resp.Moves = append(resp.Moves, legalMoveTarget{
			To:        indexToSquare(int(m.To)),
			Promotion: promotionLetter(m.Promotion),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type moveRequest struct {
	FromSquare string `json:"from_square"`
	ToSquare   string `json:"to_square"`
	Promotion  string `json:"promotion"`
}

type moveResponse struct {
	gameState
	BotNeeded bool `json:"bot_needed"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	from, err := squareToIndex(req.FromSquare)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := squareToIndex(req.ToSquare)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	promo, err := parsePromotion(req.Promotion)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.botToMove() {
		writeError(w, http.StatusBadRequest, "not your turn")
		return
	}
	move, ok := s.game.pos.FindMove(from, to, promo)
	if !ok {
		writeError(w, http.StatusBadRequest, "illegal move")
		return
	}
	s.game.apply(move)

	st := s.game.state()
	resp := moveResponse{
		gameState: st,
		BotNeeded: !st.Checkmate && !st.Stalemate && !st.Draw,
	}
	writeJSON(w, http.StatusOK, resp)
}

type botMoveRequest struct {
	Depth int `json:"depth"`
}

type botMoveResponse struct {
	gameState
	BotMove uiMove `json:"bot_move"`
}

func (s *Server) handleBotMove(w http.ResponseWriter, r *http.Request) {
	var req botMoveRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.botToMove() {
		writeError(w, http.StatusBadRequest, "not the engine's turn")
		return
	}

	depth := req.Depth
	if depth <= 0 {
		depth = s.game.depth
	}

	move, ok := s.pickBotMove(depth)
	if !ok {
		writeError(w, http.StatusBadRequest, "no legal moves for bot")
		return
	}
	s.game.apply(move)

	resp := botMoveResponse{
		gameState: s.game.state(),
		BotMove:   moveToUI(move),
	}
	writeJSON(w, http.StatusOK, resp)
}

// pickBotMove returns the engine's move: the random opening list when the
// bot opens the game as White, the search otherwise.
func (s *Server) pickBotMove(depth int) (board.Move, bool) {
	if s.game.atStart() && s.game.pos.WhiteMove {
		uci := openingJitter[s.rng.Intn(len(openingJitter))]
		from, _ := squareToIndex(uci[:2])
		to, _ := squareToIndex(uci[2:])
		if move, ok := s.game.pos.FindMove(from, to, board.Empty); ok {
			s.logger.Info("opening jitter", zap.String("move", uci))
			return move, true
		}
	}

	start := time.Now()
	move, ok := s.searcher.SearchBestMove(s.game.pos, depth, s.timeLimit)
	if ok {
		s.logger.Info("bot move",
			zap.String("move", move.UCI()),
			zap.Int("depth", depth),
			zap.Duration("took", time.Since(start)),
		)
	}
	return move, ok
}
