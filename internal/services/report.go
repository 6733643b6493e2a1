package services

import (
	"context"
	"fmt"
	"parcel-kpi-service/internal/domain"
	"parcel-kpi-service/internal/ports"
	"strings"
)

// Reports carry NoData when the batch exists but holds no records. That outcome is
// distinct from a populated report with zero activity.

type ThroughputReport struct {
	NoData bool

	TotalIn        int
	TotalOut       int
	AvgIn          float64
	AvgOut         float64
	ParcelsInTime  *OrderedCounts
	ParcelsOutTime *OrderedCounts
}

type SummaryReport struct {
	NoData bool

	TotalParcels        int
	SortedParcels       int
	SortedGoodCount     int
	OverflowCount       int
	BarcodeReadRatio    float64
	VolumeReadRatio     float64
	TrackingPerformance float64
}

type VolumeReport struct {
	NoData bool

	HeightDistribution map[string]int
	WidthDistribution  map[string]int
	LengthDistribution map[string]int
	NormalHeight       Curve
	NormalWidth        Curve
	NormalLength       Curve
	KPI                LengthKPI
}

// BuildThroughput assembles the throughput report for an already fetched batch.
func BuildThroughput(q ThroughputQuery, records []domain.ParcelRecord, r Rules) *ThroughputReport {
	if len(records) == 0 {
		return &ThroughputReport{NoData: true}
	}

	t := Aggregate(records, q.Plan, SelectDetector(records, r))
	return &ThroughputReport{
		TotalIn:        t.TotalIn,
		TotalOut:       t.TotalOut,
		AvgIn:          t.AvgIn,
		AvgOut:         t.AvgOut,
		ParcelsInTime:  t.In,
		ParcelsOutTime: t.Out,
	}
}

// BuildSummary assembles the summary report for an already fetched batch.
func BuildSummary(q WindowQuery, records []domain.ParcelRecord, r Rules) *SummaryReport {
	if len(records) == 0 {
		return &SummaryReport{NoData: true}
	}

	ratios := ComputeRatios(records, q.Window, r)
	sorted := 0
	for i := range records {
		if lc := records[i].LifeCycle; lc != nil && lc.Status == "sorted" {
			sorted++
		}
	}

	return &SummaryReport{
		TotalParcels:        ratios.Total,
		SortedParcels:       sorted,
		SortedGoodCount:     ratios.SortedGoodCount,
		OverflowCount:       ratios.OverflowCount,
		BarcodeReadRatio:    ratios.BarcodeReadRatio,
		VolumeReadRatio:     ratios.VolumeReadRatio,
		TrackingPerformance: ratios.TrackingPerformance,
	}
}

// BuildVolume assembles the volume report for an already fetched batch.
func BuildVolume(q WindowQuery, records []domain.ParcelRecord, r Rules) *VolumeReport {
	if len(records) == 0 {
		return &VolumeReport{NoData: true}
	}

	d := CollectDimensions(records, q.Window, r)
	return &VolumeReport{
		HeightDistribution: d.Height.Counts,
		WidthDistribution:  d.Width.Counts,
		LengthDistribution: d.Length.Counts,
		NormalHeight:       GaussianCurve(d.Height.Values, r.CurvePoints),
		NormalWidth:        GaussianCurve(d.Width.Values, r.CurvePoints),
		NormalLength:       GaussianCurve(d.Length.Values, r.CurvePoints),
		KPI:                ComputeLengthKPI(d.Length.Values, r.LengthUnderMax, r.LengthAboveMin),
	}
}

// ReportThroughput validates the request, fetches the batch and builds the report.
// Validation errors are returned as *ValidationError before the source is queried.
func ReportThroughput(
	ctx context.Context,
	req ThroughputRequest,
	allowed []int,
	src ports.RecordSource,
	r Rules,
) (*ThroughputReport, error) {
	q, err := req.Validate(allowed)
	if err != nil {
		return nil, err
	}

	records, err := src.ListRecords(ctx, q.BatchID)
	if err != nil {
		return nil, fmt.Errorf("report throughput: list records for %q: %w", q.BatchID, err)
	}

	return BuildThroughput(q, records, r), nil
}

func ReportSummary(ctx context.Context, req WindowRequest, src ports.RecordSource, r Rules) (*SummaryReport, error) {
	q, err := req.Validate()
	if err != nil {
		return nil, err
	}

	records, err := src.ListRecords(ctx, q.BatchID)
	if err != nil {
		return nil, fmt.Errorf("report summary: list records for %q: %w", q.BatchID, err)
	}

	return BuildSummary(q, records, r), nil
}

func ReportVolume(ctx context.Context, req WindowRequest, src ports.RecordSource, r Rules) (*VolumeReport, error) {
	q, err := req.Validate()
	if err != nil {
		return nil, err
	}

	records, err := src.ListRecords(ctx, q.BatchID)
	if err != nil {
		return nil, fmt.Errorf("report volume: list records for %q: %w", q.BatchID, err)
	}

	return BuildVolume(q, records, r), nil
}

// FindJourney looks up the parcels of a batch by host id, barcode or alibi id.
func FindJourney(ctx context.Context, req JourneyRequest, src ports.RecordSource) ([]domain.ParcelRecord, error) {
	id, err := validateBatchID(req.BatchID)
	if err != nil {
		return nil, err
	}

	field := domain.SearchField(strings.TrimSpace(req.SearchBy))
	if !field.Valid() {
		return nil, &ValidationError{Field: "search_by", Msg: "must be host_id, barcode or alibi_id"}
	}
	value := strings.TrimSpace(req.SearchValue)
	if value == "" {
		return nil, &ValidationError{Field: "search_value", Msg: "is required"}
	}

	records, err := src.FindParcels(ctx, id, domain.ParcelQuery{Field: field, Value: value})
	if err != nil {
		return nil, fmt.Errorf("find journey: find parcels in %q: %w", id, err)
	}
	return records, nil
}
