package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

const version string = "0.1.0"
const gonomicsVersion string = "1.0.1-0.20240426183757-e6c6ab634c20"

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands contains all valid subcommands. New subcommands can be
// added by adding a new entry to this array.
var SubCommands = []*subcommand{
	{"call", runCall, "call pedigree-aware copy number variants from per-sample segmentation input"},
	{"version", runVersion, "print version information"},
}

func usage() {
	s := new(strings.Builder)
	s.WriteString(
		"Program: cnvcall (pedigree-aware copy number variant caller)\n" +
			"Version: " + version + " (gonomics " + gonomicsVersion + ")\n" +
			"\nUsage:\tcnvcall <command> [options]\n\n" +
			"Commands:\n")

	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for i := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", SubCommands[i].name, SubCommands[i].blurb)
	}
	w.Flush()
	fmt.Print(s.String())
}

func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string))
	for i := range SubCommands {
		m[SubCommands[i].name] = SubCommands[i].function
	}
	return m
}

func main() {
	flag.Usage = usage
	flag.Parse()

	command := commandMap()[flag.Arg(0)]
	if command == nil {
		flag.Usage()
		return
	}
	command(flag.Args()[1:])
}

func runVersion(args []string) {
	fmt.Printf("cnvcall %s (gonomics %s)\n", version, gonomicsVersion)
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
