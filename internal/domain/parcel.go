package domain

// Represents one physical item's lifecycle as stored for a batch (one calendar day).
// Records are read-only input to the KPI engine; nothing in this service mutates them
// after they have been fetched.
type ParcelRecord struct {
	HostID       string      `bson:"hostId,omitempty" json:"hostId,omitempty"`
	Barcodes     []string    `bson:"barcodes,omitempty" json:"barcodes,omitempty"`
	AlibiNumber  string      `bson:"alibi_number,omitempty" json:"alibi_number,omitempty"`
	Destination  string      `bson:"destination,omitempty" json:"destination,omitempty"`
	Location     string      `bson:"location,omitempty" json:"location,omitempty"`
	LifeCycle    *LifeCycle  `bson:"lifeCycle,omitempty" json:"lifeCycle,omitempty"`
	VolumeData   *VolumeData `bson:"volume_data,omitempty" json:"volume_data,omitempty"`
	BarcodeError *bool       `bson:"barcodeError,omitempty" json:"barcodeError,omitempty"`
	Events       []Event     `bson:"events,omitempty" json:"events,omitempty"`
	ExitState    any         `bson:"exit_state,omitempty" json:"exit_state,omitempty"`

	Timestamp Scalar `bson:"timestamp,omitempty" json:"timestamp,omitzero"`
	CreatedAt Scalar `bson:"created_at,omitempty" json:"created_at,omitzero"`
	Time      Scalar `bson:"time,omitempty" json:"time,omitzero"`
}

// Legacy lifecycle block written by older sorter integrations.
type LifeCycle struct {
	Status       string `bson:"status,omitempty" json:"status,omitempty"`
	RegisteredAt Scalar `bson:"registeredAt,omitempty" json:"registeredAt,omitzero"`
}

// Dimensions reported by the volume scanner. Any field may be missing or hold a
// non-numeric value.
type VolumeData struct {
	Height     Scalar `bson:"height,omitempty" json:"height,omitzero"`
	Width      Scalar `bson:"width,omitempty" json:"width,omitzero"`
	Length     Scalar `bson:"length,omitempty" json:"length,omitzero"`
	RealVolume Scalar `bson:"real_volume,omitempty" json:"real_volume,omitzero"`
	BoxVolume  Scalar `bson:"box_volume,omitempty" json:"box_volume,omitzero"`
}

// HasExited reports whether the legacy exit marker is set.
func (p *ParcelRecord) HasExited() bool {
	return p.ExitState != nil
}

// BarcodeRead reports whether the scanner recorded an explicit successful read.
// A missing flag does not count as a read.
func (p *ParcelRecord) BarcodeRead() bool {
	return p.BarcodeError != nil && !*p.BarcodeError
}

// Return the first barcode, or "" when none were captured.
func (p *ParcelRecord) PrimaryBarcode() string {
	if len(p.Barcodes) == 0 {
		return ""
	}
	return p.Barcodes[0]
}

// Look up one of the top-level time fields by its stored name.
func (p *ParcelRecord) TimeField(name string) (Scalar, bool) {
	var s Scalar
	switch name {
	case "timestamp":
		s = p.Timestamp
	case "created_at":
		s = p.CreatedAt
	case "time":
		s = p.Time
	case "lifeCycle.registeredAt":
		if p.LifeCycle == nil {
			return Scalar{}, false
		}
		s = p.LifeCycle.RegisteredAt
	default:
		return Scalar{}, false
	}
	if s.IsZero() {
		return Scalar{}, false
	}
	return s, true
}

// Return the volume block or an empty one so callers can read fields unconditionally.
func (p *ParcelRecord) Volume() VolumeData {
	if p.VolumeData == nil {
		return VolumeData{}
	}
	return *p.VolumeData
}
