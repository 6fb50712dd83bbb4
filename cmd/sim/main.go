// Command sim runs a SCAT executable image under the interactive debugger.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scat/asm"
	"scat/debugger"
	"scat/listing"
)

func main() {
	root := &cobra.Command{
		Use:           "sim <file.exe>",
		Short:         "simulate a SCAT executable under the interactive debugger",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSim,
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSim(cmd *cobra.Command, args []string) error {
	exePath := args[0]

	exeInfo, err := os.Stat(exePath)
	if err != nil {
		return err
	}
	warnIfStale(exePath, exeInfo)

	data, err := os.ReadFile(exePath)
	if err != nil {
		return err
	}
	words, err := asm.LoadExe(string(data))
	if err != nil {
		return err
	}

	machine := debugger.NewMachine(exePath, 0)
	machine.LoadExe(words)

	lstPath := strings.TrimSuffix(exePath, ".exe") + ".lst"
	if lstData, err := os.ReadFile(lstPath); err == nil {
		if lst, err := listing.Parse(string(lstData)); err == nil {
			machine.Lst = lst
		}
	}

	repl := debugger.NewREPL(machine)
	return repl.Run()
}

// warnIfStale prints a warning to stderr when the sibling .s source is
// newer than the .exe being simulated, the same mtime check the reference
// simulator performs before entering the debug loop.
func warnIfStale(exePath string, exeInfo os.FileInfo) {
	srcPath := strings.TrimSuffix(exePath, ".exe") + ".s"
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return
	}
	if srcInfo.ModTime().After(exeInfo.ModTime()) {
		fmt.Fprintf(os.Stderr, "warning: %s is newer than %s, consider reassembling\n", srcPath, exePath)
	}
}
