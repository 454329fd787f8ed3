package handler

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// adminPasswordHeader carries the admin password on dashboard requests. The
// dashboard is a single-operator tool; there is no user database behind it.
const adminPasswordHeader = "X-Admin-Password"

// Auth gates the admin routes on a shared password, stored hashed so the
// per-request comparison is constant time.
type Auth struct {
	hash []byte
}

func NewAuth(password string) (*Auth, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Auth{hash: hash}, nil
}

// Check reports whether the presented password matches.
func (a *Auth) Check(password string) bool {
	return bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
}

// Middleware rejects requests that do not carry the admin password.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Check(r.Header.Get(adminPasswordHeader)) {
			respondWithError(w, http.StatusUnauthorized, "Incorrect password")
			return
		}
		next.ServeHTTP(w, r)
	})
}
