package main

import (
	"fmt"
	"os"

	"github.com/elasticai/stubgen/compiler"
	"github.com/elasticai/stubgen/driver"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "parse <IDL file path>",
		Short:   "Print the syntax tree of an IDL file",
		Example: `  stubgen parse traffic_speed.idl`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("Cannot open the source file %s: %w", args[0], err)
	}
	defer f.Close()

	tree, err := compiler.Parse(f, compiler.WithSourceName(args[0]), compiler.WithFilePath(args[0]))
	if err != nil {
		return err
	}
	driver.PrintTree(os.Stdout, tree)

	return nil
}
