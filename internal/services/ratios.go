package services

import (
	"parcel-kpi-service/internal/domain"
)

// Ratios are the facility-wide read rates and sort outcomes of a batch.
type Ratios struct {
	Total               int
	BarcodeReadRatio    float64
	VolumeReadRatio     float64
	TrackingPerformance float64
	SortedGoodCount     int
	OverflowCount       int
}

// ComputeRatios classifies every record once and folds the per-parcel facts into
// batch-wide percentages. Read rates ignore the window; sort outcomes use it.
func ComputeRatios(records []domain.ParcelRecord, w Window, r Rules) Ratios {
	var barcodeOK, volumeOK, tracked int
	out := Ratios{Total: len(records)}

	for i := range records {
		p := &records[i]
		if p.BarcodeRead() {
			barcodeOK++
		}
		if hasRealVolume(p) {
			volumeOK++
		}

		f := Classify(p.Events, w, r)
		if f.IsFullyTracked {
			tracked++
		}
		if f.OutboundCounted {
			out.SortedGoodCount++
		}
		if f.IsOverflow() {
			out.OverflowCount++
		}
	}

	out.BarcodeReadRatio = percent(barcodeOK, out.Total)
	out.VolumeReadRatio = percent(volumeOK, out.Total)
	out.TrackingPerformance = percent(tracked, out.Total)
	return out
}

// A volume read counts only when the scanner stored a positive number.
func hasRealVolume(p *domain.ParcelRecord) bool {
	v := p.Volume().RealVolume
	if !v.IsNumber() {
		return false
	}
	f, ok := v.Float()
	return ok && f > 0
}
