package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"getloanoffer/chart"
	"getloanoffer/domain"
	"getloanoffer/service"
)

const usage = `commands:
  slider <principal|rate|tenure> <value>
  field  <principal|rate|tenure> <value>
  show
  help
  quit`

// line prints one calculator display as a labelled row.
type line struct {
	out   io.Writer
	label string
}

func (l line) SetText(text string) {
	fmt.Fprintf(l.out, "%-15s %s\n", l.label, text)
}

func run(in io.Reader, out io.Writer, formatter service.Formatter) error {
	controls := service.NewLoanControls(domain.DefaultLoanInputs())
	calc := service.NewCalculator(controls, formatter, service.Display{
		Installment:   line{out, "Monthly EMI"},
		TotalInterest: line{out, "Total interest"},
		TotalAmount:   line{out, "Total amount"},
	}, chart.TextRenderer{Out: out})
	defer calc.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, usage)
		case "show":
			for _, ctrl := range service.Controls() {
				pair := controls.Pair(ctrl)
				fmt.Fprintf(out, "%-9s slider=%s field=%s\n", ctrl, pair.Slider, pair.Field)
			}
		case "slider", "field":
			if err := apply(controls, fields); err != nil {
				fmt.Fprintln(out, err)
			}
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", fields[0])
		}
	}
	return scanner.Err()
}

func apply(controls *service.LoanControls, fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("usage: %s <principal|rate|tenure> <value>", fields[0])
	}
	ctrl, ok := service.ParseControl(fields[1])
	if !ok {
		return fmt.Errorf("unknown control %q", fields[1])
	}

	src := service.SourceField
	if fields[0] == "slider" {
		src = service.SourceSlider
	}
	controls.Set(ctrl, src, fields[2])
	return nil
}
