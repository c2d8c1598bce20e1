package main

import (
	"strconv"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/config"
)

// timerValue is the -t/--timer flag. It rejects anything but a non-negative
// whole number while flags are parsed, before any tool runs.
type timerValue struct {
	n *int
}

func (v *timerValue) String() string {
	if v.n == nil {
		return "0"
	}
	return strconv.Itoa(*v.n)
}

func (v *timerValue) Set(s string) error {
	n, err := config.ParseTimer(s)
	if err != nil {
		return apperr.Wrap(err, apperr.KindConfig, "timer", "")
	}
	*v.n = n
	return nil
}

func (v *timerValue) Type() string { return "seconds" }
