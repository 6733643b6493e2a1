package dto

import "parcel-kpi-service/internal/services"

type ThroughputRequest struct {
	Date      string `json:"date"`
	BinSize   int    `json:"bin_size"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WindowRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Returned instead of a report when the batch exists but is empty.
type NoDataResponse struct {
	Message string `json:"message"`
}

const NoDataMessage = "No data found for this date"

type ThroughputResponse struct {
	TotalIn        int                     `json:"total_in"`
	TotalOut       int                     `json:"total_out"`
	AvgIn          float64                 `json:"avg_in"`
	AvgOut         float64                 `json:"avg_out"`
	ParcelsInTime  *services.OrderedCounts `json:"parcels_in_time"`
	ParcelsOutTime *services.OrderedCounts `json:"parcels_out_time"`
}

type SummaryResponse struct {
	TotalParcels        int     `json:"total_parcels"`
	SortedParcels       int     `json:"sorted_parcels"`
	SortedGoodCount     int     `json:"sorted_good_count"`
	OverflowCount       int     `json:"overflow_count"`
	BarcodeReadRatio    float64 `json:"barcode_read_ratio"`
	VolumeReadRatio     float64 `json:"volume_read_ratio"`
	TrackingPerformance float64 `json:"tracking_performance"`
}

type LengthKPIResponse struct {
	AllocatedTotal int     `json:"allocated_total"`
	Under400Count  int     `json:"under_400_count"`
	Above600Count  int     `json:"above_600_count"`
	Under400Pct    float64 `json:"under_400_pct"`
	Above600Pct    float64 `json:"above_600_pct"`
}

type VolumeResponse struct {
	HeightDistribution map[string]int    `json:"height_distribution"`
	WidthDistribution  map[string]int    `json:"width_distribution"`
	LengthDistribution map[string]int    `json:"length_distribution"`
	NormalHeight       services.Curve    `json:"normal_height"`
	NormalWidth        services.Curve    `json:"normal_width"`
	NormalLength       services.Curve    `json:"normal_length"`
	KPI                LengthKPIResponse `json:"kpi"`
}
