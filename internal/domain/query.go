package domain

import "slices"

// Field a parcel journey lookup searches by.
type SearchField string

const (
	SearchByHostID  SearchField = "host_id"
	SearchByBarcode SearchField = "barcode"
	SearchByAlibiID SearchField = "alibi_id"
)

func (f SearchField) Valid() bool {
	switch f {
	case SearchByHostID, SearchByBarcode, SearchByAlibiID:
		return true
	}
	return false
}

// Exact-match lookup of parcels inside one batch.
type ParcelQuery struct {
	Field SearchField
	Value string
}

// Matches applies the query in memory. Store adapters that can push the filter down
// must return the same set.
func (q ParcelQuery) Matches(p *ParcelRecord) bool {
	switch q.Field {
	case SearchByHostID:
		return p.HostID == q.Value
	case SearchByBarcode:
		return slices.Contains(p.Barcodes, q.Value)
	case SearchByAlibiID:
		return p.AlibiNumber == q.Value
	}
	return false
}
