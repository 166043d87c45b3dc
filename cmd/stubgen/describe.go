package main

import (
	"os"

	"github.com/elasticai/stubgen/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe",
		Short:   "Print the IDL grammar and its parsing table",
		Example: `  stubgen describe`,
		Args:    cobra.NoArgs,
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cg, err := grammar.IDL()
	if err != nil {
		return err
	}
	return grammar.WriteDescription(os.Stdout, cg.Description)
}
