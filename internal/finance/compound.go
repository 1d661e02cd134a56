package finance

import (
	"errors"
	"math"
	"strconv"
)

var (
	ErrInvalidPrincipal = errors.New("principal must be greater than zero")
	ErrInvalidRate      = errors.New("annual rate cannot be negative")
	ErrInvalidYears     = errors.New("time period must be greater than zero")
	ErrInvalidFrequency = errors.New("unsupported compounding frequency")
)

// Compounding frequencies offered by the calculator.
var validFrequencies = map[int]bool{
	1:   true, // annually
	2:   true, // semi-annually
	4:   true, // quarterly
	12:  true, // monthly
	52:  true, // weekly
	365: true, // daily
}

// Input holds the calculator parameters. Rate is a decimal (0.07 = 7%).
type Input struct {
	Principal float64 `json:"principal"`
	Rate      float64 `json:"rate"`
	Years     float64 `json:"years"`
	Frequency int     `json:"frequency"`
}

func (in *Input) Validate() error {
	if in.Principal <= 0 {
		return ErrInvalidPrincipal
	}
	if in.Rate < 0 {
		return ErrInvalidRate
	}
	if in.Years <= 0 {
		return ErrInvalidYears
	}
	if !validFrequencies[in.Frequency] {
		return ErrInvalidFrequency
	}
	return nil
}

// YearRow is one line of the growth schedule. Year is a string so a partial
// final period can be labeled with its fraction (e.g. "10.5").
type YearRow struct {
	Year      string  `json:"year"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Total     float64 `json:"total"`
}

// Result is the calculator output, monetary values rounded to cents.
type Result struct {
	FinalAmount   float64   `json:"final_amount"`
	TotalInterest float64   `json:"total_interest"`
	Schedule      []YearRow `json:"schedule"`
}

// Calculate applies A = P(1 + r/n)^(nt) and builds the year-by-year
// schedule, including a partial final period when t is fractional.
func Calculate(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	n := float64(in.Frequency)
	finalAmount := in.Principal * math.Pow(1+in.Rate/n, n*in.Years)

	var schedule []YearRow
	current := in.Principal
	wholeYears := int(in.Years)

	for year := 1; year <= wholeYears; year++ {
		total := current * math.Pow(1+in.Rate/n, n)
		schedule = append(schedule, YearRow{
			Year:      strconv.Itoa(year),
			Principal: roundCents(current),
			Interest:  roundCents(total - current),
			Total:     roundCents(total),
		})
		current = total
	}

	if remaining := in.Years - float64(wholeYears); remaining > 0 {
		total := current * math.Pow(1+in.Rate/n, n*remaining)
		schedule = append(schedule, YearRow{
			Year:      strconv.FormatFloat(in.Years, 'f', -1, 64),
			Principal: roundCents(current),
			Interest:  roundCents(total - current),
			Total:     roundCents(total),
		})
	}

	return &Result{
		FinalAmount:   roundCents(finalAmount),
		TotalInterest: roundCents(finalAmount - in.Principal),
		Schedule:      schedule,
	}, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
