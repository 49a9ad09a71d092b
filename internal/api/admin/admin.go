package admin

import (
	"net/http"
	"strconv"

	"prize_wheel/internal/api/apierr"
	dto "prize_wheel/internal/api/dto/prize"
	"prize_wheel/internal/converter"
	"prize_wheel/internal/service"
	"prize_wheel/pkg/req"
	"prize_wheel/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.AdminService
}

type Handler struct {
	serv service.AdminService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) ListPrizes(w http.ResponseWriter, r *http.Request) {
	prizes, err := h.serv.ListPrizes(r.Context())
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPrizeResponses(prizes))
}

// UpdatePrize applies a partial edit to one prize.
func (h *Handler) UpdatePrize(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid prize id")
		return
	}

	payload, err := req.Decode[dto.PatchPrizeRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	p, err := h.serv.UpdatePrize(r.Context(), id, converter.ToPrizePatch(payload))
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPrizeResponse(*p))
}

// UpdatePrizes applies several edits atomically.
func (h *Handler) UpdatePrizes(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BatchPatchRequest](r.Body)
	if err != nil || len(payload.Prizes) == 0 {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	prizes, err := h.serv.UpdatePrizes(r.Context(), converter.ToPrizeEdits(payload))
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPrizeResponses(prizes))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

// Reload makes the kiosk re-read the catalog.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.serv.Reload(r.Context()); err != nil {
		apierr.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
