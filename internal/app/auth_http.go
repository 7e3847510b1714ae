package app

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/prep-maker/backend/internal/validate"
)

func (s *Server) signupChain() validate.Chain {
	return validate.Chain{
		validate.Required("email", msgEmailRequired),
		validate.IsEmail("email", msgInvalidEmail),
		validate.Required("name", msgNameRequired),
		validate.IsString("name", msgNameString),
		validate.MaxLen("name", 20, msgNameRange),
		validate.Required("password", msgPasswordRequired),
		validate.IsString("password", msgPasswordString),
		validate.LenBetween("password", 6, 20, msgPasswordRange),
	}
}

func (s *Server) signinChain() validate.Chain {
	return validate.Chain{
		validate.Required("email", msgEmailRequired),
		validate.IsEmail("email", msgInvalidEmail),
		validate.Required("password", msgPasswordRequired),
		validate.IsString("password", msgPasswordString),
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	var account Account
	if err := json.Unmarshal(t.RawBody, &account); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: msgInvalidJSON})
		return
	}
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	account.Name = strings.TrimSpace(account.Name)

	respond(s, w, s.auth.Signup(r.Context(), account), http.StatusCreated)
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	var creds Credentials
	if err := json.Unmarshal(t.RawBody, &creds); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: msgInvalidJSON})
		return
	}
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	respond(s, w, s.auth.Signin(r.Context(), creds), http.StatusOK)
}
