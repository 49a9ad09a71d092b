package auth

import (
	"net/http"

	"prize_wheel/internal/api/apierr"
	dto "prize_wheel/internal/api/dto/auth"
	"prize_wheel/internal/model"
	"prize_wheel/internal/service"
	"prize_wheel/pkg/req"
	"prize_wheel/pkg/resp"
)

const (
	sessionCookie = "session_id"
	refreshCookie = "refresh_token"
	cookieMaxAge  = 30 * 24 * 60 * 60
)

type HandlerDeps struct {
	Serv service.AuthService
}

type Handler struct {
	serv service.AuthService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Login opens a session. The access token is returned in the body, the
// session id and refresh token in cookies.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Login(r.Context(), payload.Login, payload.Password)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}

	setCookie(w, sessionCookie, data.SessionID)
	setCookie(w, refreshCookie, data.RefreshToken)

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Refresh issues a new access token from the session cookies.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	session, err := r.Cookie(sessionCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}
	refresh, err := r.Cookie(refreshCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no refresh_token cookie")
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), &model.AuthData{
		SessionID:    session.Value,
		RefreshToken: refresh.Value,
	})
	if err != nil {
		apierr.Write(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: accessToken})
}

// Logout closes the session named by the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}

	if err := h.serv.Logout(r.Context(), c.Value); err != nil {
		apierr.Write(w, r, err)
		return
	}

	deleteCookie(w, sessionCookie)
	deleteCookie(w, refreshCookie)

	w.WriteHeader(http.StatusNoContent)
}

func setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/admin",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   cookieMaxAge,
	})
}

func deleteCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
