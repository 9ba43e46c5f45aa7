// internal/httpserver/routes_play.go
//
// HTTP routes for playing a quiz session:
//   - POST   /play/{mode}            → start a session; returns {sessionId, token, state}
//   - GET    /session                → current view (applies due settle transitions)
//   - POST   /session/choice         → {index}        vocabulary / grammar
//   - POST   /session/spelling       → {text}         spelling
//   - POST   /session/match/pair     → {word,meaning} one drag-and-drop pairing
//   - POST   /session/match/outcome  → submit a resolved match question
//   - DELETE /session                → abandon the session
//
// Starting a new session disposes of the one bound to the caller's token.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordquest/internal/quiz"
	"github.com/robalobadob/wordquest/internal/store"
)

type ctxSessionKey struct{}

func (s *Server) mountPlay() {
	s.r.Post("/play/{mode}", s.handleStart)

	s.r.Route("/session", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleState)
		r.Post("/choice", s.handleChoice)
		r.Post("/spelling", s.handleSpelling)
		r.Post("/match/pair", s.handlePair)
		r.Post("/match/outcome", s.handleOutcome)
		r.Delete("/", s.handleAbandon)
	})
}

type startRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	State     quiz.View `json:"state"`
}

// handleStart creates a session for the mode in the URL.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	mode := quiz.Mode(chi.URLParam(r, "mode"))
	if !mode.Valid() {
		writeError(w, http.StatusNotFound, "mode_not_found")
		return
	}

	opts := append([]quiz.Option{quiz.WithLogger(log.Logger)}, s.opts.SessionOptions...)
	sess, err := quiz.Start(mode, s.content.Snapshot(), opts...)
	if err != nil {
		if errors.Is(err, quiz.ErrEmptyQuestionSet) {
			writeError(w, http.StatusUnprocessableEntity, "empty_question_set")
			return
		}
		log.Error().Err(err).Str("mode", string(mode)).Msg("start session")
		writeError(w, http.StatusInternalServerError, "start_failed")
		return
	}

	// Play again: the previous run bound to this caller is discarded.
	if raw := bearerOrCookie(r); raw != "" {
		if c, err := s.parseToken(raw); err == nil {
			_ = s.store.Delete(r.Context(), c.Subject)
		}
	}

	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(sess)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Info().Str("session", sess.ID()).Str("mode", string(mode)).Msg("session started")
	writeJSON(w, http.StatusCreated, startRes{SessionID: sess.ID(), Token: tok, State: sess.View()})
}

// requireSession resolves the token to a live session.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerOrCookie(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		c, err := s.parseToken(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		sess, err := s.store.Get(r.Context(), c.Subject)
		if errors.Is(err, store.ErrNotFound) || (err == nil && sess.Closed()) {
			writeError(w, http.StatusGone, "session_gone")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store_error")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *quiz.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*quiz.Session)
	return sess
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).View())
}

// answerRes pairs a judgment with the view after it.
type answerRes struct {
	Result any       `json:"result"`
	State  quiz.View `json:"state"`
}

type choiceReq struct {
	Index *int `json:"index"`
}

func (s *Server) handleChoice(w http.ResponseWriter, r *http.Request) {
	var req choiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	res, err := sess.SubmitChoice(*req.Index)
	if err != nil {
		writeQuizError(w, sess, err)
		return
	}
	writeJSON(w, http.StatusOK, answerRes{Result: res, State: sess.View()})
}

type spellingReq struct {
	Text *string `json:"text"`
}

func (s *Server) handleSpelling(w http.ResponseWriter, r *http.Request) {
	var req spellingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	res, err := sess.SubmitSpelling(*req.Text)
	if err != nil {
		writeQuizError(w, sess, err)
		return
	}
	writeJSON(w, http.StatusOK, answerRes{Result: res, State: sess.View()})
}

type pairReq struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

func (s *Server) handlePair(w http.ResponseWriter, r *http.Request) {
	var req pairReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	res, err := sess.AttemptPairing(req.Word, req.Meaning)
	if err != nil {
		writeQuizError(w, sess, err)
		return
	}
	writeJSON(w, http.StatusOK, answerRes{Result: res, State: sess.View()})
}

// handleOutcome submits the current match question using the board's own
// verdict, so a client cannot claim a perfect round it did not play.
func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	allCorrect, err := sess.MatchAllCorrect()
	if err == nil {
		err = sess.SubmitMatchOutcome(allCorrect)
	}
	if err != nil {
		writeQuizError(w, sess, err)
		return
	}
	writeJSON(w, http.StatusOK, answerRes{
		Result: map[string]bool{"allCorrect": allCorrect},
		State:  sess.View(),
	})
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.store.Delete(r.Context(), sess.ID()); err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}
	s.clearSessionCookie(w)
	log.Info().Str("session", sess.ID()).Msg("session abandoned")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// quizErrors maps engine errors to status codes and wire codes.
var quizErrors = []struct {
	err    error
	status int
	code   string
}{
	{quiz.ErrSessionClosed, http.StatusGone, "session_gone"},
	{quiz.ErrModeMismatch, http.StatusBadRequest, "mode_mismatch"},
	{quiz.ErrOptionOutOfRange, http.StatusBadRequest, "option_out_of_range"},
	{quiz.ErrMatchUnresolved, http.StatusBadRequest, "match_unresolved"},
	{quiz.ErrUnknownWord, http.StatusBadRequest, "unknown_word"},
	{quiz.ErrUnknownMeaning, http.StatusBadRequest, "unknown_meaning"},
	{quiz.ErrWordMatched, http.StatusBadRequest, "word_matched"},
	{quiz.ErrMeaningUnavailable, http.StatusBadRequest, "meaning_unavailable"},
	{quiz.ErrSessionCompleted, http.StatusBadRequest, "session_completed"},
}

func writeQuizError(w http.ResponseWriter, sess *quiz.Session, err error) {
	if errors.Is(err, quiz.ErrAlreadyAnswered) {
		writeJSON(w, http.StatusConflict, map[string]any{"error": "already_answered", "state": sess.View()})
		return
	}
	for _, e := range quizErrors {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.code)
			return
		}
	}
	log.Error().Err(err).Str("session", sess.ID()).Msg("unexpected quiz error")
	writeError(w, http.StatusInternalServerError, "internal")
}
