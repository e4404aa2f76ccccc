package domain

const (
	ChartLabelPrincipal = "Principal"
	ChartLabelInterest  = "Interest"
)

// ChartData is the two-segment principal vs. interest split handed to a chart renderer.
type ChartData struct {
	Labels [2]string  `json:"labels"`
	Values [2]float64 `json:"values"`
}

func NewChartData(principal, interest float64) ChartData {
	return ChartData{
		Labels: [2]string{ChartLabelPrincipal, ChartLabelInterest},
		Values: [2]float64{principal, interest},
	}
}

// Total returns the sum of both segments.
func (c ChartData) Total() float64 {
	return c.Values[0] + c.Values[1]
}
