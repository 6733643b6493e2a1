package services

import (
	"parcel-kpi-service/internal/domain"
)

// Distribution is a frequency histogram of one dimension keyed by the stored value,
// plus the values that parsed as numbers.
type Distribution struct {
	Counts map[string]int
	Values []float64
}

func newDistribution() Distribution {
	return Distribution{Counts: map[string]int{}}
}

func (d *Distribution) add(s domain.Scalar) {
	if s.IsZero() {
		return
	}
	d.Counts[s.String()]++
	if f, ok := s.Float(); ok {
		d.Values = append(d.Values, f)
	}
}

// LengthKPI is the share of short and long parcels among those with a positive length.
type LengthKPI struct {
	AllocatedTotal int
	Under400Count  int
	Above600Count  int
	Under400Pct    float64
	Above600Pct    float64
}

// Dimensions groups the three dimension distributions of the records in a window.
type Dimensions struct {
	Height Distribution
	Width  Distribution
	Length Distribution
}

// CollectDimensions keeps the records whose first available timestamp field falls in
// w and histograms their height, width and length.
func CollectDimensions(records []domain.ParcelRecord, w Window, r Rules) Dimensions {
	d := Dimensions{
		Height: newDistribution(),
		Width:  newDistribution(),
		Length: newDistribution(),
	}

	for i := range records {
		p := &records[i]
		if !inVolumeWindow(p, w, r.TimestampFields) {
			continue
		}
		v := p.Volume()
		d.Height.add(v.Height)
		d.Width.add(v.Width)
		d.Length.add(v.Length)
	}

	return d
}

// The first present field decides; a malformed value excludes the record rather than
// falling through to the next field.
func inVolumeWindow(p *domain.ParcelRecord, w Window, fields []string) bool {
	for _, name := range fields {
		s, ok := p.TimeField(name)
		if !ok {
			continue
		}
		text, ok := s.Text()
		if !ok {
			return false
		}
		c, ok := domain.ParseClock(text)
		return ok && w.Contains(c)
	}
	return false
}

// ComputeLengthKPI counts positive lengths at or under underMax and at or above aboveMin.
func ComputeLengthKPI(values []float64, underMax, aboveMin float64) LengthKPI {
	var k LengthKPI
	for _, v := range values {
		if v <= 0 {
			continue
		}
		k.AllocatedTotal++
		if v <= underMax {
			k.Under400Count++
		}
		if v >= aboveMin {
			k.Above600Count++
		}
	}
	k.Under400Pct = percent(k.Under400Count, k.AllocatedTotal)
	k.Above600Pct = percent(k.Above600Count, k.AllocatedTotal)
	return k
}
