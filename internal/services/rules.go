package services

import (
	"errors"
	"fmt"
	"slices"
)

// Message codes of the sorter wire protocol the classifier understands.
type MessageCodes struct {
	Inbound    string `yaml:"inbound"`
	Properties string `yaml:"properties"`
	SortReport string `yaml:"sort_report"`
	Deregister string `yaml:"deregister"`
}

// Zero-based positions of auxiliary fields inside an event's pipe-delimited raw text.
type FieldLayout struct {
	SortStatus         int `yaml:"sort_status"`
	SortLocation       int `yaml:"sort_location"`
	DeregisterReason   int `yaml:"deregister_reason"`
	DeregisterLocation int `yaml:"deregister_location"`
}

// Rules holds every code value and field position the KPI engine depends on.
// Sorter integrations differ between sites, so none of these are hard-coded in
// the classification logic; a Rules value is loaded once and treated as immutable.
type Rules struct {
	Codes  MessageCodes `yaml:"codes"`
	Fields FieldLayout  `yaml:"fields"`

	SortedStatus        string   `yaml:"sorted_status"`
	ProvisionalStatus   string   `yaml:"provisional_status"`
	ConfirmedExitReason string   `yaml:"confirmed_exit_reason"`
	OverflowLocations   []string `yaml:"overflow_locations"`

	// TrackingCodes must all be present for a parcel to count as fully tracked.
	TrackingCodes []string `yaml:"tracking_codes"`

	// TimestampFields is the priority list of record fields used to place a
	// parcel in the volume report window.
	TimestampFields []string `yaml:"timestamp_fields"`

	CurvePoints    int     `yaml:"curve_points"`
	LengthUnderMax float64 `yaml:"length_under_max"`
	LengthAboveMin float64 `yaml:"length_above_min"`
}

var knownTimestampFields = []string{"timestamp", "created_at", "time", "lifeCycle.registeredAt"}

// DefaultRules returns the rule set used when no rules file is configured.
func DefaultRules() Rules {
	return Rules{
		Codes: MessageCodes{
			Inbound:    "IR",
			Properties: "IP",
			SortReport: "VSR",
			Deregister: "IDR",
		},
		Fields: FieldLayout{
			SortStatus:         10,
			SortLocation:       11,
			DeregisterReason:   9,
			DeregisterLocation: 11,
		},
		SortedStatus:        "1",
		ProvisionalStatus:   "999",
		ConfirmedExitReason: "1",
		OverflowLocations:   []string{"OVF"},
		TrackingCodes:       []string{"IR", "IP", "VSR"},
		TimestampFields:     []string{"timestamp", "created_at", "time"},
		CurvePoints:         100,
		LengthUnderMax:      400,
		LengthAboveMin:      600,
	}
}

// Validate checks structural constraints on a rule set.
func (r Rules) Validate() error {
	codes := []string{r.Codes.Inbound, r.Codes.Properties, r.Codes.SortReport, r.Codes.Deregister}
	for _, c := range codes {
		if c == "" {
			return errors.New("rules: message codes must not be empty")
		}
	}
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			return fmt.Errorf("rules: message code %q is used twice", c)
		}
		seen[c] = struct{}{}
	}

	positions := []int{r.Fields.SortStatus, r.Fields.SortLocation, r.Fields.DeregisterReason, r.Fields.DeregisterLocation}
	for _, p := range positions {
		if p < 0 {
			return fmt.Errorf("rules: field position %d must not be negative", p)
		}
	}

	if r.SortedStatus == "" || r.ProvisionalStatus == "" {
		return errors.New("rules: sorted_status and provisional_status are required")
	}
	if r.SortedStatus == r.ProvisionalStatus {
		return fmt.Errorf("rules: sorted_status and provisional_status are both %q", r.SortedStatus)
	}
	if len(r.TrackingCodes) == 0 {
		return errors.New("rules: tracking_codes must not be empty")
	}

	if len(r.TimestampFields) == 0 {
		return errors.New("rules: timestamp_fields must not be empty")
	}
	for _, f := range r.TimestampFields {
		if !slices.Contains(knownTimestampFields, f) {
			return fmt.Errorf("rules: timestamp field %q unknown: want one of %v", f, knownTimestampFields)
		}
	}

	if r.CurvePoints < 2 {
		return fmt.Errorf("rules: curve_points %d must be at least 2", r.CurvePoints)
	}
	if r.LengthUnderMax <= 0 || r.LengthAboveMin <= 0 {
		return errors.New("rules: length thresholds must be positive")
	}

	return nil
}

func (r Rules) isOverflowLocation(loc string) bool {
	return slices.Contains(r.OverflowLocations, loc)
}
