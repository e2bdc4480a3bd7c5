// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package cmdapi holds the commands used to build the stratum CLI.
package cmdapi

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stratumhq/stratum/snapdoc"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Root represents the root command when called without any subcommands.
	Root = &cobra.Command{
		Use:          "stratum",
		Short:        "Manage database structure snapshots.",
		SilenceUsage: true,
	}

	// version holds the release version, set by the linker.
	version = "development"
)

func init() {
	Root.AddCommand(versionCmd)
}

// versionCmd represents the subcommand 'stratum version'.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints this tool's version.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("stratum version %s\n", version)
	},
}

// Flag names shared across subcommands.
const (
	flagFormat         = "format"
	flagIncludeCatalog = "include-catalog"
	flagJSON           = "json"
	flagKind           = "kind"
	flagOut            = "out"
)

func addFlagOut(set *pflag.FlagSet, target *string) {
	set.StringVarP(target, flagOut, "o", "", "output file path, format chosen by extension")
}

func addFlagFormat(set *pflag.FlagSet, target *string) {
	set.StringVar(target, flagFormat, "yaml", "output format used without --out (yaml or hcl)")
}

func addFlagIncludeCatalog(set *pflag.FlagSet, target *bool) {
	set.BoolVar(target, flagIncludeCatalog, false, "qualify element ordering with catalog names")
}

// readDocument loads a snapshot document from path, choosing the codec by
// file extension.
func readDocument(path string) (*snapdoc.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return unmarshalDocument(data, formatOf(path))
}

func unmarshalDocument(data []byte, format string) (*snapdoc.Document, error) {
	switch format {
	case "yaml", "yml":
		return snapdoc.UnmarshalYAML(data)
	case "hcl":
		return snapdoc.UnmarshalHCL(data)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}

func marshalDocument(d *snapdoc.Document, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return snapdoc.MarshalYAML(d)
	case "hcl":
		return snapdoc.MarshalHCL(d)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}

// formatOf derives the document format from a file extension.
func formatOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// writeOutput writes rendered document bytes to the --out path, or to the
// command output when no path was given.
func writeOutput(cmd *cobra.Command, out string, data []byte) error {
	if out == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(out, data, 0644)
}
