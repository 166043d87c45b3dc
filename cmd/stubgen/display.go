package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%v %v\n", errorStyleBG.Sprint("Error"), errorColorFG.Sprint(err.Error()))
}

func printWarning(msg string) {
	fmt.Fprintf(os.Stderr, "%v %v\n", warnStyleBG.Sprint("Warning"), warnColorFG.Sprint(msg))
}

func printSuccess(msg string) {
	fmt.Fprintf(os.Stdout, "%v %v\n", successStyleBG.Sprint("Success"), successColorFG.Sprint(msg))
}
