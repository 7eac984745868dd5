package controllers

import (
	"net/http"

	"github.com/shopsphere/marketplace-backend/api/middleware"
	"github.com/shopsphere/marketplace-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if ident, ok := middleware.IdentityFromContext(r.Context()); ok {
			payload["role"] = string(ident.Role())
		}
		responses.WriteSuccess(w, payload)
	}
}
