package rest

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/server/auth"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
	"github.com/dmitrijs2005/qaforum/internal/server/services"
)

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.QuestionFilter{Tag: query.Get("tag"), Query: query.Get("q")}

	if v := query.Get("userid"); v != "" {
		uid, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.writeError(w, r, common.NewValidationError("userid", "must be a number"))
			return
		}
		filter.UserID = uid
	}

	qs, err := s.deps.Questions.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]questionResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuestionResponse(q))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.deps.Questions.Get(r.Context(), mux.Vars(r)["questionid"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestionResponse(q))
}

func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request) {
	var in services.QuestionInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	q, err := s.deps.Questions.Create(r.Context(), id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toQuestionResponse(q))
}

func (s *Server) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var in services.QuestionInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	q, err := s.deps.Questions.Update(r.Context(), id, mux.Vars(r)["questionid"], in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toQuestionResponse(q))
}

func (s *Server) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	n, err := s.deps.Questions.Delete(r.Context(), id, mux.Vars(r)["questionid"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteQuestionResponse{Message: "Question deleted successfully", AnswersDeleted: n})
}
