// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/padmeta/internal/config"
	"github.com/ManuGH/padmeta/internal/version"
)

func runConfigCLI(args []string) int {
	return configCLI(args, os.Stdout, os.Stderr)
}

func configCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(stderr)
		return 0
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:], stdout, stderr)
	case "dump":
		return runConfigDump(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  padmeta config validate [--file|-f padmeta.yaml]")
	fmt.Fprintln(w, "  padmeta config dump [--file|-f padmeta.yaml]")
}

func parseFileFlag(name string, args []string, stderr io.Writer) (string, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return "", false
	}
	return strings.TrimSpace(file), true
}

// runConfigValidate loads the file with the environment applied, exactly as
// the daemon would at startup.
func runConfigValidate(args []string, stdout, stderr io.Writer) int {
	file, ok := parseFileFlag("padmeta config validate", args, stderr)
	if !ok {
		return 2
	}

	if _, err := config.NewLoader(file, version.Version).Load(); err != nil {
		fmt.Fprintf(stderr, "Configuration invalid: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "Configuration OK")
	return 0
}

// runConfigDump prints the effective configuration as YAML with secrets
// masked.
func runConfigDump(args []string, stdout, stderr io.Writer) int {
	file, ok := parseFileFlag("padmeta config dump", args, stderr)
	if !ok {
		return 2
	}

	cfg, err := config.NewLoader(file, version.Version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration invalid: %v\n", err)
		return 1
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(config.ToFileConfig(cfg).Redacted()); err != nil {
		fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
		return 1
	}
	_ = enc.Close()
	return 0
}
