package routes

import (
	"encoding/json"
	"net/http"

	pkgdeps "github.com/joa2pac/conexa-star-wars-api/pkg/deps"
	pkghttpx "github.com/joa2pac/conexa-star-wars-api/pkg/httpx"
)

// UsersList handles GET /cognito/users.
func UsersList(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := d.Cognito.ListUsers(r.Context())
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to list users", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, users)
	}
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserCreate handles POST /cognito/users.
func UserCreate(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.Username == "" || req.Email == "" || req.Password == "" {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("username, email and password are required", nil))
			return
		}
		if err := d.Cognito.CreateUser(r.Context(), req.Username, req.Email, req.Password); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to create user", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusCreated, map[string]any{"username": req.Username})
	}
}

type setPasswordRequest struct {
	Password string `json:"password"`
}

// UserSetPassword handles PUT /cognito/users/{username}/password.
func UserSetPassword(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.Password == "" {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("password is required", nil))
			return
		}
		if err := d.Cognito.SetUserPassword(r.Context(), r.PathValue("username"), req.Password); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to set password", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"username": r.PathValue("username")})
	}
}

type addGroupRequest struct {
	Group string `json:"group"`
}

// UserAddGroup handles POST /cognito/users/{username}/groups.
func UserAddGroup(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.Group == "" {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("group is required", nil))
			return
		}
		if err := d.Cognito.AddUserToGroup(r.Context(), r.PathValue("username"), req.Group); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to add user to group", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"username": r.PathValue("username"),
			"group":    req.Group,
		})
	}
}

// UserDelete handles DELETE /cognito/users/{username}.
func UserDelete(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Cognito.DeleteUser(r.Context(), r.PathValue("username")); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to delete user", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
