package rest

import (
	"net/http"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/server/auth"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg auth.Registration
	if err := decodeJSON(w, r, &reg); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.deps.Users.Register(r.Context(), reg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "userid", user.ID, "username", user.UserName)
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.deps.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: res.Token, User: toUserResponse(res.User)})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	writeJSON(w, http.StatusOK, checkResponse{Message: "Valid user", UserID: id.UserID, UserName: id.UserName})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrInvalidToken)
		return
	}

	if err := s.deps.Users.Logout(r.Context(), claims); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}
