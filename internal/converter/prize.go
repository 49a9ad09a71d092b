package converter

import (
	dto "prize_wheel/internal/api/dto/prize"
	"prize_wheel/internal/model"
)

func ToPrizeResponse(p model.Prize) dto.PrizeResponse {
	return dto.PrizeResponse{
		ID:       p.ID,
		Icon:     p.Icon,
		Name:     p.Name,
		Quantity: p.Quantity,
		Color:    p.Color,
		IsActive: p.IsActive,
	}
}

func ToPrizeResponses(prizes []model.Prize) []dto.PrizeResponse {
	out := make([]dto.PrizeResponse, 0, len(prizes))
	for _, p := range prizes {
		out = append(out, ToPrizeResponse(p))
	}
	return out
}

func ToPrizePatch(req dto.PatchPrizeRequest) model.PrizePatch {
	return model.PrizePatch{
		Quantity: req.Quantity,
		IsActive: req.IsActive,
	}
}

func ToPrizeEdits(req dto.BatchPatchRequest) []model.PrizeEdit {
	edits := make([]model.PrizeEdit, 0, len(req.Prizes))
	for _, item := range req.Prizes {
		edits = append(edits, model.PrizeEdit{
			ID:    item.ID,
			Patch: model.PrizePatch{Quantity: item.Quantity, IsActive: item.IsActive},
		})
	}
	return edits
}

func ToStatsResponse(s model.WheelStats) dto.StatsResponse {
	res := dto.StatsResponse{
		TotalSpins: s.TotalSpins,
		Awards:     make([]dto.PrizeAwardResponse, 0, len(s.Awards)),
	}
	for _, a := range s.Awards {
		res.Awards = append(res.Awards, dto.PrizeAwardResponse{
			PrizeID:   a.PrizeID,
			Name:      a.Name,
			Count:     a.Count,
			Frequency: a.Frequency,
		})
	}
	if !s.LastAwardAt.IsZero() {
		last := s.LastAwardAt
		res.LastAwardAt = &last
	}
	return res
}
