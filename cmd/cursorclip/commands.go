package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/frudas24/cursorclip/internal/keybind"
	"github.com/frudas24/cursorclip/internal/monitor"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// listMonitors is replaced in tests.
var listMonitors = monitor.ListMonitors

// newKeysCmd lists accepted recenter key names.
func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List accepted recenter key names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Write one of these to the recenter key file (case-insensitive):")
			fmt.Fprintln(out, strings.Join(keybind.Names(), " "))
			fmt.Fprintln(out, "Hex virtual-key codes such as 0x45 are also accepted.")
			return nil
		},
	}
}

type monitorEntry struct {
	Index   int    `yaml:"index"`
	Primary bool   `yaml:"primary"`
	Bounds  string `yaml:"bounds"`
	Work    string `yaml:"work"`
}

// newMonitorsCmd prints the enumerated displays as YAML.
func newMonitorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List displays and their bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := listMonitors()
			if err != nil {
				return err
			}
			entries := make([]monitorEntry, 0, len(list))
			for _, m := range list {
				entries = append(entries, monitorEntry{
					Index:   m.Index,
					Primary: m.Primary,
					Bounds:  m.Bounds.String(),
					Work:    m.Work.String(),
				})
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(entries); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
