package service

import (
	"strconv"
	"sync"

	"getloanoffer/domain"
	"getloanoffer/logger"
)

// Control identifies one of the three calculator inputs.
type Control int

const (
	ControlPrincipal Control = iota
	ControlRate
	ControlTenure
)

func (c Control) String() string {
	switch c {
	case ControlPrincipal:
		return "principal"
	case ControlRate:
		return "rate"
	case ControlTenure:
		return "tenure"
	}
	return "control(" + strconv.Itoa(int(c)) + ")"
}

// controlNames lists the accepted names per control, canonical name first.
var controlNames = [...][]string{
	ControlPrincipal: {"principal", "amount", "loan-amount"},
	ControlRate:      {"rate", "interest-rate"},
	ControlTenure:    {"tenure", "loan-tenure"},
}

// Controls returns every control in display order.
func Controls() []Control {
	return []Control{ControlPrincipal, ControlRate, ControlTenure}
}

// Names returns the names accepted for c, in precedence order.
func (c Control) Names() []string {
	if c < ControlPrincipal || c > ControlTenure {
		return nil
	}
	return controlNames[c]
}

// ParseControl accepts the control names used by the HTTP query and the terminal calculator.
func ParseControl(name string) (Control, bool) {
	for _, c := range Controls() {
		for _, n := range c.Names() {
			if n == name {
				return c, true
			}
		}
	}
	return 0, false
}

// Source is the member of a control pair that changed.
type Source int

const (
	SourceSlider Source = iota
	SourceField
)

func (s Source) String() string {
	if s == SourceSlider {
		return "slider"
	}
	return "field"
}

// ControlPair is a range slider and the numeric field mirroring it.
type ControlPair struct {
	Slider string
	Field  string
}

// LoanControls holds the raw state of the three control pairs and turns every
// change into a single LoanInputs notification. Subscribers run while the
// controls are locked and must not call back into them.
type LoanControls struct {
	mu          sync.Mutex
	pairs       [3]ControlPair
	subscribers map[int]func(domain.LoanInputs)
	nextID      int
}

func NewLoanControls(initial domain.LoanInputs) *LoanControls {
	c := &LoanControls{subscribers: make(map[int]func(domain.LoanInputs))}
	c.pairs[ControlPrincipal] = mirrored(strconv.FormatFloat(initial.Principal, 'f', -1, 64))
	c.pairs[ControlRate] = mirrored(strconv.FormatFloat(initial.AnnualRatePercent, 'f', -1, 64))
	c.pairs[ControlTenure] = mirrored(strconv.Itoa(initial.TenureMonths))
	return c
}

func mirrored(v string) ControlPair {
	return ControlPair{Slider: v, Field: v}
}

// Set stores raw in the changed member, copies it to its sibling and notifies subscribers.
func (c *LoanControls) Set(ctrl Control, src Source, raw string) {
	if ctrl < ControlPrincipal || ctrl > ControlTenure {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Both members end up equal whichever one the user touched.
	c.pairs[ctrl] = mirrored(raw)
	logger.Debug("calculator control changed", "control", ctrl.String(), "source", src.String(), "value", raw)

	inputs := c.inputsLocked()
	for _, fn := range c.subscribers {
		fn(inputs)
	}
}

func (c *LoanControls) Pair(ctrl Control) ControlPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pairs[ctrl]
}

// Inputs parses the current slider values, substituting defaults where needed.
func (c *LoanControls) Inputs() domain.LoanInputs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputsLocked()
}

func (c *LoanControls) inputsLocked() domain.LoanInputs {
	return ParseLoanInputs(
		c.pairs[ControlPrincipal].Slider,
		c.pairs[ControlRate].Slider,
		c.pairs[ControlTenure].Slider,
	)
}

// Subscribe registers fn for change notifications and returns a function that removes it.
func (c *LoanControls) Subscribe(fn func(domain.LoanInputs)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
		})
	}
}
