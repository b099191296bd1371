package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/layout"
)

var targetCmd = &cobra.Command{
	Use:   "target [flags]",
	Short: "Show the resolved lowering target",
	Long:  `Target resolves a target manifest (or the builtin default) and prints the triple and pointer properties lowering will use.`,
	Args:  cobra.NoArgs,
	RunE:  runTarget,
}

func init() {
	targetCmd.Flags().String("target", "", "path to a target manifest (ember.toml); empty uses the builtin x86_64 target")
	targetCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTarget(cmd *cobra.Command, args []string) error {
	targetPath, err := cmd.Flags().GetString("target")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	t := layout.X86_64LinuxGNU()
	if targetPath != "" {
		t, err = layout.FromManifest(targetPath)
		if err != nil {
			return fmt.Errorf("failed to load target manifest: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		payload := struct {
			Triple   string `json:"triple"`
			PtrSize  int    `json:"ptr_size"`
			PtrAlign int    `json:"ptr_align"`
		}{t.Triple, t.PtrSize, t.PtrAlign}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		fmt.Fprintf(out, "triple:    %s\n", t.Triple)
		fmt.Fprintf(out, "ptr size:  %d\n", t.PtrSize)
		fmt.Fprintf(out, "ptr align: %d\n", t.PtrAlign)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}
