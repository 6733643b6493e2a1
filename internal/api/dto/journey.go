package dto

import "parcel-kpi-service/internal/domain"

type JourneyRequest struct {
	Date        string `json:"date"`
	SearchBy    string `json:"search_by"`
	SearchValue string `json:"search_value"`
}

type JourneyResponse struct {
	HostID      string        `json:"host_id"`
	Status      string        `json:"status"`
	Barcode     string        `json:"barcode"`
	AlibiID     string        `json:"alibi_id"`
	RegisterAt  domain.Scalar `json:"register_at"`
	Destination string        `json:"destination"`
	Volume      domain.Scalar `json:"volume"`
	Location    string        `json:"location"`
}
