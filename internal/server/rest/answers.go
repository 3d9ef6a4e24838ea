package rest

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/server/auth"
)

func (s *Server) listAnswers(w http.ResponseWriter, r *http.Request) {
	as, err := s.deps.Answers.ListByQuestion(r.Context(), mux.Vars(r)["questionid"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]answerResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toAnswerResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.QuestionID == "" || req.Answer == "" {
		s.writeError(w, r, common.NewValidationError("fields", "questionid and answer are required"))
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	a, err := s.deps.Answers.Create(r.Context(), id, req.QuestionID, req.Answer)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAnswerResponse(a))
}

func (s *Server) updateAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, err := answerIDFrom(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	a, err := s.deps.Answers.Update(r.Context(), id, answerID, req.Answer)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnswerResponse(a))
}

func (s *Server) deleteAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, err := answerIDFrom(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	if err := s.deps.Answers.Delete(r.Context(), id, answerID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Answer deleted successfully"})
}

func answerIDFrom(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["answerid"], 10, 64)
	if err != nil {
		return 0, common.NewValidationError("answerid", "must be a number")
	}
	return id, nil
}
