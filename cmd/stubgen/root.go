package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/elasticai/stubgen/compiler"
	"github.com/elasticai/stubgen/config"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	config *string
	output *string
}{}

var rootCmd = &cobra.Command{
	Use:   "stubgen <name>",
	Short: "Generate a C stub for an FPGA accelerator",
	Long: `stubgen reads <name>.idl and writes a C header <name>.h and a C source <name>.c.
The generated functions marshal their parameters into the accelerator, run it,
and read its result back.`,
	Example:       `  stubgen traffic_speed -o gen`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runGenerate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootFlags.output = rootCmd.Flags().StringP("output", "o", "", "output directory (default: the directory of the IDL file)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
		return err
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v != nil {
			retErr = fmt.Errorf("an unexpected error occurred: %v", v)
			fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
		}
	}()

	if len(args) == 0 {
		return errors.New("no filename given, aborting")
	}
	name := strings.TrimSuffix(args[0], ".idl")

	conf, err := readConfig()
	if err != nil {
		return err
	}

	srcPath := name + ".idl"
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("Cannot open the source file %s: %w", srcPath, err)
	}
	defer src.Close()

	res, err := compiler.Compile(src,
		compiler.WithConfig(conf),
		compiler.WithSourceName(srcPath),
		compiler.WithFilePath(srcPath),
	)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		printWarning(w.Error())
	}

	base := name
	if *rootFlags.output != "" {
		base = filepath.Join(*rootFlags.output, filepath.Base(name))
	}
	err = writeFile(base+".h", res.Stub.Header())
	if err != nil {
		return err
	}
	err = writeFile(base+".c", res.Stub.Source())
	if err != nil {
		return err
	}

	printSuccess("stub files generated successfully")
	return nil
}

// readConfig returns the default configuration when no file is given.
func readConfig() (*config.Config, error) {
	if *rootFlags.config == "" {
		return config.Default(), nil
	}
	c, err := config.LoadFile(*rootFlags.config)
	if err != nil {
		return nil, fmt.Errorf("Cannot read a configuration: %w", err)
	}
	return c, nil
}

func writeFile(path string, content string) error {
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		return fmt.Errorf("Cannot write %s: %w", path, err)
	}
	return nil
}
