package kiosk

import (
	"math"
	"net/http"
	"strconv"

	"prize_wheel/internal/api/apierr"
	"prize_wheel/internal/converter"
	"prize_wheel/internal/render"
	"prize_wheel/internal/service"
	kioskserv "prize_wheel/internal/service/kiosk"
	"prize_wheel/pkg/logger"
	"prize_wheel/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.KioskService
	Hub  *Hub
}

type Handler struct {
	serv service.KioskService
	hub  *Hub
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, hub: deps.Hub}
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(h.serv.State()))
}

// Enter moves the kiosk from the start screen to the wheel.
func (h *Handler) Enter(w http.ResponseWriter, r *http.Request) {
	st, err := h.serv.Enter(r.Context())
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(st))
}

// Spin answers 202 when a spin starts and 200 with a reason when the request
// is ignored.
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	status, err := h.serv.Spin(r.Context())
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	code := http.StatusOK
	if status.Started {
		code = http.StatusAccepted
	}
	resp.WriteJSONResponse(w, code, converter.ToSpinResponse(status))
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	st, err := h.serv.Back(r.Context())
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(st))
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	o, ok := h.serv.Result()
	if !ok {
		apierr.Write(w, r, kioskserv.ErrNoOutcome)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOutcomeResponse(*o))
}

// WheelPNG renders the wheel, at ?rotation= degrees when given.
func (h *Handler) WheelPNG(w http.ResponseWriter, r *http.Request) {
	var rotation *float64
	if s := r.URL.Query().Get("rotation"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			resp.WriteError(w, http.StatusBadRequest, "invalid rotation")
			return
		}
		rotation = &v
	}

	img, err := h.serv.Frame(r.Context(), rotation)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.EncodePNG(w, img); err != nil {
		logger.L().Warn("write wheel png", zap.Error(err))
	}
}

func (h *Handler) WS(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}
