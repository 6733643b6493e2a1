package handlers

import (
	"net/http"
	"parcel-kpi-service/internal/api/dto"
	"parcel-kpi-service/internal/ports"
	"parcel-kpi-service/internal/services"
)

// Source of the active classification rules.
type RulesProvider interface {
	Rules() services.Rules
}

// ReportHandler exposes the KPI report endpoints. Each request validates its
// parameters, fetches one batch and runs the engine over it.
type ReportHandler struct {
	Source ports.RecordSource
	Rules  RulesProvider
}

// Throughput reports inbound/outbound counts in buckets of 10 to 60 minutes.
func (h *ReportHandler) Throughput(w http.ResponseWriter, r *http.Request) {
	h.throughput(w, r, services.ThroughputWidths)
}

// Rate reports the same histograms on the fine-grained 1 to 60 minute grid.
func (h *ReportHandler) Rate(w http.ResponseWriter, r *http.Request) {
	h.throughput(w, r, services.RateWidths)
}

func (h *ReportHandler) throughput(w http.ResponseWriter, r *http.Request, widths []int) {
	if !requirePost(w, r) {
		return
	}

	var req dto.ThroughputRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svcReq := services.ThroughputRequest{
		BatchID:   req.Date,
		BinSize:   req.BinSize,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	rep, err := services.ReportThroughput(r.Context(), svcReq, widths, h.Source, h.Rules.Rules())
	if err != nil {
		writeServiceError(w, r, "report throughput", err)
		return
	}
	if rep.NoData {
		writeJSON(w, r, http.StatusOK, dto.NoDataResponse{Message: dto.NoDataMessage})
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ThroughputResponse{
		TotalIn:        rep.TotalIn,
		TotalOut:       rep.TotalOut,
		AvgIn:          rep.AvgIn,
		AvgOut:         rep.AvgOut,
		ParcelsInTime:  rep.ParcelsInTime,
		ParcelsOutTime: rep.ParcelsOutTime,
	})
}

// Summary reports read rates, tracking completeness and sort outcomes.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.WindowRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rep, err := services.ReportSummary(r.Context(), windowRequest(req), h.Source, h.Rules.Rules())
	if err != nil {
		writeServiceError(w, r, "report summary", err)
		return
	}
	if rep.NoData {
		writeJSON(w, r, http.StatusOK, dto.NoDataResponse{Message: dto.NoDataMessage})
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SummaryResponse{
		TotalParcels:        rep.TotalParcels,
		SortedParcels:       rep.SortedParcels,
		SortedGoodCount:     rep.SortedGoodCount,
		OverflowCount:       rep.OverflowCount,
		BarcodeReadRatio:    rep.BarcodeReadRatio,
		VolumeReadRatio:     rep.VolumeReadRatio,
		TrackingPerformance: rep.TrackingPerformance,
	})
}

// Volume reports dimension distributions with their Gaussian overlays.
func (h *ReportHandler) Volume(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.WindowRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rep, err := services.ReportVolume(r.Context(), windowRequest(req), h.Source, h.Rules.Rules())
	if err != nil {
		writeServiceError(w, r, "report volume", err)
		return
	}
	if rep.NoData {
		writeJSON(w, r, http.StatusOK, dto.NoDataResponse{Message: dto.NoDataMessage})
		return
	}

	writeJSON(w, r, http.StatusOK, dto.VolumeResponse{
		HeightDistribution: rep.HeightDistribution,
		WidthDistribution:  rep.WidthDistribution,
		LengthDistribution: rep.LengthDistribution,
		NormalHeight:       rep.NormalHeight,
		NormalWidth:        rep.NormalWidth,
		NormalLength:       rep.NormalLength,
		KPI: dto.LengthKPIResponse{
			AllocatedTotal: rep.KPI.AllocatedTotal,
			Under400Count:  rep.KPI.Under400Count,
			Above600Count:  rep.KPI.Above600Count,
			Under400Pct:    rep.KPI.Under400Pct,
			Above600Pct:    rep.KPI.Above600Pct,
		},
	})
}

func windowRequest(req dto.WindowRequest) services.WindowRequest {
	return services.WindowRequest{
		BatchID:   req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
}
