// Command objdump disassembles a SCAT .exe image without access to its
// original source, reconstructing symbolic labels from observed branch and
// jump targets.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scat/asm"
)

func main() {
	root := &cobra.Command{
		Use:           "objdump <file.exe>",
		Short:         "disassemble a SCAT executable image",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runObjdump,
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runObjdump(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	words, err := asm.LoadExe(string(data))
	if err != nil {
		return err
	}
	fmt.Println(asm.Disassemble(words))
	return nil
}
