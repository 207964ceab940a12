package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/exposurescan.yaml
var scanFileTemplate embed.FS

// scanFileName is the default scan profile file name.
const scanFileName = ".exposurescan"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new exposurescan scan profile file",
		Long: `Initialize creates a new .exposurescan scan profile file in the current directory.

The generated file includes:
- An identity section for the attributes to search for
- Commented examples for every scan option
- Documentation for provider selection and proxy settings

Examples:
  # Create .exposurescan in current directory
  exposurescan init

  # Create scan profile at a specific path
  exposurescan init -o myprofile.yaml

  # Force overwrite existing file
  exposurescan init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", scanFileName,
		"Output file path for the scan profile")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing scan profile file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("scan profile file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := scanFileTemplate.ReadFile("templates/exposurescan.yaml")
	if err != nil {
		return fmt.Errorf("failed to read scan profile template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// 0600: the profile will hold the identity being scanned for.
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write scan profile file: %w", err)
	}

	fmt.Printf("Created scan profile file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure the scan, in particular:")
	fmt.Println("  - The identity attributes to search for")
	fmt.Println("  - Which search engines and platforms to query")
	fmt.Println("  - Paging, result, and concurrency limits")

	return nil
}
