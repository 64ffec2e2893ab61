package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/filesystem"
	"github.com/devdeck/devdeck/internal/scanner"
)

// ScanCommand handles the scan command
type ScanCommand struct {
	fs filesystem.FileSystem
}

// NewScanCommand creates a new scan command
func NewScanCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ScanCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan a directory without indexing it",
		Long:  `Scan a directory and print the detected tags, docs and ports as JSON. The collection is not touched.`,
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	return cobraCmd
}

// Run executes the scan command
func (c *ScanCommand) Run(cmd *cobra.Command, args []string) error {
	result, err := scanner.New(c.fs, slog.Default()).Scan(args[0])
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", args[0], err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scan result: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
