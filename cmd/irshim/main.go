package main

import (
	"errors"
	"os"
	"strings"

	"github.com/flarebyte/irshim/cmd/irshim/root"
	_ "github.com/tliron/commonlog/simple"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	if err := root.Execute(os.Args[1:]); err != nil {
		// One line on stderr, no usage, no stack trace.
		msg := strings.Join(strings.Fields(err.Error()), " ")
		if msg == "" {
			msg = "error"
		}
		_, _ = os.Stderr.WriteString("irshim: " + msg + "\n")
		code := 1
		var ec exitCoder
		if errors.As(err, &ec) {
			if c := ec.ExitCode(); c != 0 {
				code = c
			}
		}
		os.Exit(code)
	}
}
