// Command asm compiles a SCAT assembly source file into a .exe image and a
// .lst listing.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scat/asm"
)

func main() {
	root := &cobra.Command{
		Use:           "asm <file.s>",
		Short:         "assemble a SCAT source file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runAssemble,
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAssemble(cmd *cobra.Command, args []string) error {
	srcPath := args[0]
	exePath := asm.StripExtension(srcPath) + ".exe"
	lstPath := asm.StripExtension(srcPath) + ".lst"

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")

	ex, err := asm.Assemble(srcPath, lines)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if aerr, ok := err.(*asm.Error); ok && aerr.Src != "" {
			fmt.Fprintln(os.Stderr, aerr.Src)
		}
		// Remove any stale output from a previous successful assembly so a
		// failing re-assemble can't be mistaken for an up-to-date build.
		os.Remove(exePath)
		os.Remove(lstPath)
		os.Exit(1)
	}

	if err := os.WriteFile(exePath, []byte(ex.EncodeExe()+"\n"), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(lstPath, []byte(ex.EncodeListing()+"\n"), 0o644); err != nil {
		return err
	}
	return nil
}
