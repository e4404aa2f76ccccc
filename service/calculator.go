package service

import (
	"sync"

	"getloanoffer/domain"
	"getloanoffer/logger"
)

// TextTarget is a display element showing one formatted amount.
type TextTarget interface {
	SetText(text string)
}

// Display groups the three result targets. Any of them may be nil.
type Display struct {
	Installment   TextTarget
	TotalInterest TextTarget
	TotalAmount   TextTarget
}

// Chart is a live chart instance that holds resources until destroyed.
type Chart interface {
	Destroy()
}

// ChartRenderer draws the principal vs. interest split into its render target.
type ChartRenderer interface {
	Render(data domain.ChartData) (Chart, error)
}

// Calculator recomputes the EMI each time its controls change, updates the
// display and replaces its chart. It owns at most one chart at a time.
type Calculator struct {
	mu          sync.Mutex
	formatter   Formatter
	display     Display
	renderer    ChartRenderer
	chart       Chart
	inputs      domain.LoanInputs
	result      domain.LoanResult
	unsubscribe func()
}

// NewCalculator subscribes to controls and runs the initial calculation.
// A nil renderer means there is no chart region.
func NewCalculator(controls *LoanControls, formatter Formatter, display Display, renderer ChartRenderer) *Calculator {
	c := &Calculator{
		formatter: formatter,
		display:   display,
		renderer:  renderer,
	}
	c.Recalculate(controls.Inputs())
	c.unsubscribe = controls.Subscribe(func(in domain.LoanInputs) {
		c.Recalculate(in)
	})
	return c
}

func (c *Calculator) Recalculate(in domain.LoanInputs) domain.LoanResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := CalculateEMI(in)
	c.inputs, c.result = in, result

	view := c.formatter.Display(result)
	setText(c.display.Installment, view.MonthlyInstallment)
	setText(c.display.TotalInterest, view.TotalInterest)
	setText(c.display.TotalAmount, view.TotalAmount)

	c.replaceChart(domain.NewChartData(in.Principal, result.TotalInterest))
	return result
}

// replaceChart releases the current chart before drawing the next one, so a
// failed render leaves no chart rather than a stale one.
func (c *Calculator) replaceChart(data domain.ChartData) {
	c.releaseChart()
	if c.renderer == nil {
		return
	}

	chart, err := c.renderer.Render(data)
	if err != nil {
		logger.Warn("chart render failed", "error", err)
		return
	}
	c.chart = chart
}

func (c *Calculator) releaseChart() {
	if c.chart != nil {
		c.chart.Destroy()
		c.chart = nil
	}
}

func (c *Calculator) Inputs() domain.LoanInputs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputs
}

func (c *Calculator) Result() domain.LoanResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Chart returns the live chart, or nil when there is none.
func (c *Calculator) Chart() Chart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chart
}

// Close stops listening to the controls and releases the chart.
func (c *Calculator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseChart()
}

func setText(target TextTarget, text string) {
	if target != nil {
		target.SetText(text)
	}
}
