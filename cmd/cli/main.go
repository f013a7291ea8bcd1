package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const (
	defaultExpected = 100_000
	defaultRate     = 0.01
)

func main() {
	sh, err := newShell(os.Stdout, defaultExpected, defaultRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create filter: %v\n", err)
		os.Exit(1)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)

	hist, err := newHistory(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
	}
	sh.history = hist

	fmt.Println("bloomset - probabilistic set membership shell")
	sh.printConfig()
	fmt.Println("commands: " + strings.Join(commandUsages, " | "))

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintf(os.Stderr, "input error: %v\n", err)
			}
			break
		}
		if hist != nil {
			hist.add(input)
		}
		if sh.exec(input) {
			break
		}
	}

	if hist != nil {
		if err := hist.save(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save history: %v\n", err)
		}
	}
}

func completeCommand(line string) []string {
	var out []string
	for _, name := range commandNames {
		if strings.HasPrefix(name, strings.ToLower(line)) {
			out = append(out, name)
		}
	}
	return out
}
