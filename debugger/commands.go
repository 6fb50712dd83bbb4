package debugger

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"scat/cpu"
	"scat/screen"
)

// UserError is a malformed command or bad argument: the REPL prints its
// message on one line and keeps going, unlike a simulation fault.
type UserError struct {
	Msg string
}

func (e *UserError) Error() string { return e.Msg }

func userErrorf(format string, args ...interface{}) *UserError {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// command is one REPL verb, registered under one or more names, mirroring
// the reference debugger's @interactive-decorated command table.
type command struct {
	names []string
	help  string
	fn    func(r *REPL, args []string) error
}

var commands []*command
var commandByName = make(map[string]*command)

func register(c *command) {
	commands = append(commands, c)
	for _, n := range c.names {
		commandByName[n] = c
	}
}

func init() {
	register(&command{
		names: []string{"break", "b"},
		help:  "break <addr|label> - set or clear a breakpoint",
		fn:    cmdBreak,
	})
	register(&command{
		names: []string{"continue", "run", "c"},
		help:  "continue - run until a breakpoint or program end",
		fn:    cmdContinue,
	})
	register(&command{
		names: []string{"step", "s"},
		help:  "step [n] - execute n instructions (default 1)",
		fn:    cmdStep,
	})
	register(&command{
		names: []string{"info", "where", "list", "i"},
		help:  "info - show the current instruction and nearest symbol",
		fn:    cmdInfo,
	})
	register(&command{
		names: []string{"regs"},
		help:  "regs - dump all registers",
		fn:    cmdRegs,
	})
	register(&command{
		names: []string{"memdump"},
		help:  "memdump <addr> [n] - dump n bytes (default 64) starting at addr",
		fn:    cmdMemdump,
	})
	register(&command{
		names: []string{"screen"},
		help:  "screen - open the framebuffer display window",
		fn:    cmdScreen,
	})
	register(&command{
		names: []string{"perf"},
		help:  "perf [on|off] - toggle or report instruction throughput",
		fn:    cmdPerf,
	})
	register(&command{
		names: []string{"verbose"},
		help:  "verbose - toggle printing registers after every step",
		fn:    cmdVerbose,
	})
	register(&command{
		names: []string{"help"},
		help:  "help - list commands",
		fn:    cmdHelp,
	})
	register(&command{
		names: []string{"quit", "q"},
		help:  "quit - exit the debugger",
		fn:    cmdQuit,
	})
}

func parseAddrOrLabel(r *REPL, text string) (uint32, error) {
	if r.Machine.Lst != nil {
		if addr, ok := r.Machine.Lst.Symbols[text]; ok {
			return addr, nil
		}
	}
	base := 10
	if strings.HasPrefix(text, "0x") {
		text = text[2:]
		base = 16
	}
	v, err := strconv.ParseUint(text, base, 32)
	if err != nil {
		return 0, userErrorf("not an address or known label: '%s'", text)
	}
	return uint32(v), nil
}

func cmdBreak(r *REPL, args []string) error {
	if len(args) != 1 {
		return userErrorf("break requires exactly one address or label argument")
	}
	addr, err := parseAddrOrLabel(r, args[0])
	if err != nil {
		return err
	}
	if r.Machine.Breakpoints[addr] {
		delete(r.Machine.Breakpoints, addr)
		fmt.Fprintf(r.Out, "breakpoint at 0x%08x removed\n", addr)
	} else {
		r.Machine.Breakpoints[addr] = true
		fmt.Fprintf(r.Out, "breakpoint at 0x%08x set\n", addr)
	}
	return nil
}

func cmdContinue(r *REPL, args []string) error {
	first := true
	for {
		if !first && r.Machine.AtBreakpoint() {
			fmt.Fprintf(r.Out, "breakpoint hit at 0x%08x\n", r.Machine.CPU.Regs[cpu.RegPC])
			return nil
		}
		first = false
		before := r.Machine.CPU.Regs[cpu.RegPC]
		if err := r.Machine.Step(); err != nil {
			return err
		}
		if r.Verbose {
			printRegs(r)
		}
		if r.Machine.CPU.Regs[cpu.RegPC] == before {
			fmt.Fprintf(r.Out, "halted at 0x%08x (pc unchanged by the last step)\n", before)
			return nil
		}
	}
}

func cmdStep(r *REPL, args []string) error {
	n := 1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return userErrorf("step count must be a positive integer, got '%s'", args[0])
		}
		n = v
	} else if len(args) > 1 {
		return userErrorf("step takes at most one argument")
	}
	for i := 0; i < n; i++ {
		if err := r.Machine.Step(); err != nil {
			return err
		}
		if r.Verbose {
			printRegs(r)
		}
	}
	return nil
}

func cmdInfo(r *REPL, args []string) error {
	pc := r.Machine.CPU.Regs[cpu.RegPC]
	if r.Machine.Lst != nil {
		if line, ok := r.Machine.Lst.LineFor(pc); ok {
			fmt.Fprintln(r.Out, line)
		}
		if name, off, ok := r.Machine.Lst.DisassembleNear(pc); ok {
			if off == 0 {
				fmt.Fprintf(r.Out, "at %s\n", name)
			} else {
				fmt.Fprintf(r.Out, "at %s+%d\n", name, off)
			}
			return nil
		}
	}
	fmt.Fprintf(r.Out, "pc = 0x%08x\n", pc)
	return nil
}

func printRegs(r *REPL) {
	regs := r.Machine.CPU.DumpRegs()
	names := []string{"zero", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"r8", "r9", "r10", "r11", "r12", "sp", "lr", "pc"}
	for i, name := range names {
		fmt.Fprintf(r.Out, "%-5s = 0x%08x\n", name, regs[i])
	}
}

func cmdRegs(r *REPL, args []string) error {
	printRegs(r)
	return nil
}

func cmdMemdump(r *REPL, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return userErrorf("memdump requires an address and optional byte count")
	}
	addr, err := parseAddrOrLabel(r, args[0])
	if err != nil {
		return err
	}
	n := 64
	if len(args) == 2 {
		v, cerr := strconv.Atoi(args[1])
		if cerr != nil || v <= 0 {
			return userErrorf("byte count must be a positive integer, got '%s'", args[1])
		}
		n = v
	}
	data := r.Machine.RAM.Bytes(addr, n)
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[i:end]
		hexParts := make([]string, len(row))
		for j, b := range row {
			hexParts[j] = fmt.Sprintf("%02x", b)
		}
		fmt.Fprintf(r.Out, "%08x: %s\n", addr+uint32(i), strings.Join(hexParts, " "))
	}
	return nil
}

func cmdScreen(r *REPL, args []string) error {
	if r.window != nil {
		return nil
	}
	win := screen.New(r.Machine.FB, 0)
	if err := win.Show("scat"); err != nil {
		return userErrorf("%s", err.Error())
	}
	r.window = win
	return nil
}

func cmdPerf(r *REPL, args []string) error {
	if len(args) == 1 {
		switch args[0] {
		case "on":
			r.Machine.PerfStart()
			fmt.Fprintln(r.Out, "perf counters reset and started")
			return nil
		case "off":
			fmt.Fprintln(r.Out, r.Machine.PerfStop())
			return nil
		default:
			return userErrorf("perf takes 'on', 'off', or no argument")
		}
	}
	if len(args) != 0 {
		return userErrorf("perf takes 'on', 'off', or no argument")
	}
	fmt.Fprintln(r.Out, r.Machine.PerfStop())
	return nil
}

func cmdVerbose(r *REPL, args []string) error {
	r.Verbose = !r.Verbose
	if r.Verbose {
		fmt.Fprintln(r.Out, "verbose mode on")
	} else {
		fmt.Fprintln(r.Out, "verbose mode off")
	}
	return nil
}

func cmdHelp(r *REPL, args []string) error {
	seen := make(map[*command]bool)
	var unique []*command
	for _, c := range commands {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].names[0] < unique[j].names[0] })
	for _, c := range unique {
		fmt.Fprintln(r.Out, c.help)
	}
	return nil
}

func cmdQuit(r *REPL, args []string) error {
	r.quit = true
	return nil
}
