package services

import (
	"encoding/json"
	"parcel-kpi-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLengthKPI(t *testing.T) {
	got := ComputeLengthKPI([]float64{100, 300, 500, 700}, 400, 600)

	assert.Equal(t, LengthKPI{
		AllocatedTotal: 4,
		Under400Count:  2,
		Above600Count:  1,
		Under400Pct:    50.0,
		Above600Pct:    25.0,
	}, got)
}

func TestComputeLengthKPIBoundariesAndNonPositive(t *testing.T) {
	got := ComputeLengthKPI([]float64{0, -3, 400, 600}, 400, 600)

	assert.Equal(t, 2, got.AllocatedTotal)
	assert.Equal(t, 1, got.Under400Count)
	assert.Equal(t, 1, got.Above600Count)

	assert.Equal(t, LengthKPI{}, ComputeLengthKPI(nil, 400, 600))
}

func TestCollectDimensions(t *testing.T) {
	w := mustWindow(t, "08:00", "09:00")
	vol := func(h, wd, l domain.Scalar) *domain.VolumeData {
		return &domain.VolumeData{Height: h, Width: wd, Length: l}
	}

	records := []domain.ParcelRecord{
		{Timestamp: domain.Text("2024-05-01T08:10:00"), VolumeData: vol(domain.Integer(100), domain.Number(20.5), domain.Integer(300))},
		{Timestamp: domain.Text("2024-05-01T08:20:00"), VolumeData: vol(domain.Integer(100), domain.Text("n/a"), domain.Text("500"))},
		// Falls back to created_at when timestamp is missing.
		{CreatedAt: domain.Text("08:30:00"), VolumeData: vol(domain.Bool(true), domain.Scalar{}, domain.Integer(700))},
		// The first present field decides even when it is malformed.
		{Timestamp: domain.Text("soon"), CreatedAt: domain.Text("08:30:00"), VolumeData: vol(domain.Integer(1), domain.Integer(1), domain.Integer(1))},
		{Timestamp: domain.Integer(1714550000), VolumeData: vol(domain.Integer(2), domain.Integer(2), domain.Integer(2))},
		{Time: domain.Text("10:00:00"), VolumeData: vol(domain.Integer(3), domain.Integer(3), domain.Integer(3))},
		{VolumeData: vol(domain.Integer(4), domain.Integer(4), domain.Integer(4))},
	}

	d := CollectDimensions(records, w, DefaultRules())

	assert.Equal(t, map[string]int{"100": 2, "True": 1}, d.Height.Counts)
	assert.Equal(t, []float64{100, 100, 1}, d.Height.Values)
	assert.Equal(t, map[string]int{"20.5": 1, "n/a": 1}, d.Width.Counts)
	assert.Equal(t, []float64{20.5}, d.Width.Values)
	assert.Equal(t, map[string]int{"300": 1, "500": 1, "700": 1}, d.Length.Counts)
	assert.Equal(t, []float64{300, 500, 700}, d.Length.Values)
}

func TestGaussianCurve(t *testing.T) {
	c := GaussianCurve([]float64{100, 300, 500, 700}, 5)

	require.Len(t, c, 5)
	wantX := []float64{100, 250, 400, 550, 700}
	wantY := []float64{0.000725, 0.001425, 0.001784, 0.001425, 0.000725}
	for i, p := range c {
		assert.Equal(t, wantX[i], p.X)
		assert.InDelta(t, wantY[i], p.Y, 1e-9)
	}

	assert.Len(t, GaussianCurve([]float64{100, 300, 500, 700}, 100), 100)
}

func TestGaussianCurveDegenerate(t *testing.T) {
	assert.Empty(t, GaussianCurve(nil, 100))
	assert.Empty(t, GaussianCurve([]float64{42, 42, 42}, 100))

	b, err := json.Marshal(GaussianCurve(nil, 100))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestGaussianCurveCollidingKeys(t *testing.T) {
	// 10 points over a 0.01 range collapse onto two rounded keys.
	c := GaussianCurve([]float64{1.000, 1.010}, 10)

	require.Len(t, c, 2)
	assert.Equal(t, 1.0, c[0].X)
	assert.Equal(t, 1.01, c[1].X)
}

func TestCurveJSON(t *testing.T) {
	c := Curve{{X: 12, Y: 0.5}, {X: 103.94, Y: 0.000001}}

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"12.0":0.5,"103.94":0.000001}`, string(b))
}
