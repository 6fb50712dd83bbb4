package debugger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"scat/cpu"
	"scat/screen"
)

// REPL drives the interactive debug loop: read a command, run it, print the
// CPU's fault (if any) as "<pc>: message", repeat.
type REPL struct {
	Machine *Machine
	Out     io.Writer
	in      *bufio.Reader

	Verbose bool
	window  *screen.Window

	quit     bool
	lastLine string
	prompt   bool
}

// NewREPL returns a REPL reading commands from stdin and writing to stdout.
// The prompt is suppressed when stdin is not a terminal, so piping a script
// of commands in doesn't clutter the transcript.
func NewREPL(m *Machine) *REPL {
	return &REPL{
		Machine: m,
		Out:     os.Stdout,
		in:      bufio.NewReader(os.Stdin),
		prompt:  term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// Run executes the debug loop until the user quits or EOF.
func (r *REPL) Run() error {
	for !r.quit {
		if r.prompt {
			fmt.Fprint(r.Out, "(scat) ")
		}
		line, err := r.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)

		// A blank line repeats the previous command if it was a step or
		// continue; after any other command it does nothing.
		if line == "" {
			line = r.lastLine
			if line == "" {
				continue
			}
		} else {
			r.lastLine = ""
			if c, ok := commandByName[strings.Fields(line)[0]]; ok && (c.names[0] == "step" || c.names[0] == "continue") {
				r.lastLine = line
			}
		}

		r.dispatch(line)
	}
	return nil
}

func (r *REPL) dispatch(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]

	cmd, ok := commandByName[name]
	if !ok {
		fmt.Fprintf(r.Out, "unknown command '%s' (try 'help')\n", name)
		return
	}

	err := cmd.fn(r, args)
	if err == nil {
		return
	}

	if uerr, ok := err.(*UserError); ok {
		fmt.Fprintln(r.Out, uerr.Error())
		return
	}

	pc := r.Machine.CPU.Regs[cpu.RegPC]
	fmt.Fprintf(r.Out, "0x%08x: %s\n", pc, err.Error())
}
