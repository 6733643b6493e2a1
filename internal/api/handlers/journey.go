package handlers

import (
	"net/http"
	"parcel-kpi-service/internal/api/dto"
	"parcel-kpi-service/internal/ports"
	"parcel-kpi-service/internal/services"
)

// JourneyHandler looks up individual parcels of a batch.
type JourneyHandler struct {
	Source ports.RecordSource
}

func (h *JourneyHandler) Find(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.JourneyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	records, err := services.FindJourney(r.Context(), services.JourneyRequest{
		BatchID:     req.Date,
		SearchBy:    req.SearchBy,
		SearchValue: req.SearchValue,
	}, h.Source)
	if err != nil {
		writeServiceError(w, r, "find journey", err)
		return
	}

	res := make([]dto.JourneyResponse, 0, len(records))
	for i := range records {
		p := &records[i]
		item := dto.JourneyResponse{
			HostID:      p.HostID,
			Barcode:     p.PrimaryBarcode(),
			AlibiID:     p.AlibiNumber,
			Destination: p.Destination,
			Volume:      p.Volume().BoxVolume,
			Location:    p.Location,
		}
		if p.LifeCycle != nil {
			item.Status = p.LifeCycle.Status
			item.RegisterAt = p.LifeCycle.RegisteredAt
		}
		res = append(res, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}
