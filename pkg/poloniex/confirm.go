package poloniex

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirmer is asked before every trading API call when configured.
// Returning false aborts the call before any request is sent.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConsoleConfirmer prompts for a y/n answer on a terminal.
type ConsoleConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func NewConsoleConfirmer() *ConsoleConfirmer {
	return &ConsoleConfirmer{In: os.Stdin, Out: os.Stdout}
}

func (c *ConsoleConfirmer) Confirm(prompt string) bool {
	reader := bufio.NewReader(c.In)
	for {
		fmt.Fprintf(c.Out, "%s [y/N] ", prompt)

		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "", "n", "no":
			return false
		}
	}
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool {
	return f(prompt)
}
