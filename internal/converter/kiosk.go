package converter

import (
	dto "prize_wheel/internal/api/dto/kiosk"
	"prize_wheel/internal/model"
)

func ToStateResponse(s model.KioskState) dto.StateResponse {
	res := dto.StateResponse{
		Screen:         string(s.Screen),
		Spinning:       s.Spinning,
		Rotation:       s.Rotation,
		Sectors:        ToPrizeResponses(s.Sectors),
		SpinnableCount: s.SpinnableCount,
	}
	if s.Outcome != nil {
		o := ToOutcomeResponse(*s.Outcome)
		res.Outcome = &o
	}
	return res
}

func ToSpinResponse(s model.SpinStatus) dto.SpinResponse {
	return dto.SpinResponse{
		Started:       s.Started,
		Reason:        s.Reason,
		SpinID:        s.SpinID,
		SpinCount:     s.SpinCount,
		FinalRotation: s.FinalRotation,
		DurationMs:    s.Duration.Milliseconds(),
	}
}

func ToOutcomeResponse(o model.Outcome) dto.OutcomeResponse {
	return dto.OutcomeResponse{
		SpinID:        o.SpinID,
		ID:            o.Prize.ID,
		Name:          o.Prize.Name,
		Icon:          o.Prize.Icon,
		Color:         o.Prize.Color,
		TextColor:     o.TextColor,
		SectorIndex:   o.SectorIndex,
		FinalRotation: o.FinalRotation,
		FinishedAt:    o.FinishedAt,
	}
}
