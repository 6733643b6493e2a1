package services

import (
	"parcel-kpi-service/internal/domain"
)

// Throughput is the in/out histogram pair over a bucket plan.
type Throughput struct {
	TotalIn  int
	TotalOut int
	AvgIn    float64
	AvgOut   float64
	In       *OrderedCounts
	Out      *OrderedCounts
}

// Aggregate counts every parcel whose inbound (or counted outbound) time lies in the
// plan window into the bucket holding that time, so each histogram sums to its total.
func Aggregate(records []domain.ParcelRecord, plan BucketPlan, det Detector) Throughput {
	t := Throughput{
		In:  plan.NewCounts(),
		Out: plan.NewCounts(),
	}

	for i := range records {
		flow := det.Detect(&records[i], plan.Window)
		if flow.HasInbound {
			t.TotalIn++
			t.In.Inc(plan.LabelFor(flow.Inbound))
		}
		if flow.CountedOut {
			t.TotalOut++
			t.Out.Inc(plan.LabelFor(flow.Outbound))
		}
	}

	t.AvgIn = average(t.TotalIn, plan.Len())
	t.AvgOut = average(t.TotalOut, plan.Len())
	return t
}
