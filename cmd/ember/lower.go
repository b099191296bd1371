package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
	"ember/internal/hirfile"
	"ember/internal/layout"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] <module.hir>",
	Short: "Lower a typed HIR module to textual backend IR",
	Long:  `Lower reads a serialized HIR module, lowers every function to backend IR for the selected target, and writes the assembled module.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLower,
}

func init() {
	lowerCmd.Flags().String("target", "", "path to a target manifest (ember.toml); empty uses the builtin x86_64 target")
	lowerCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	lowerCmd.Flags().Int("jobs", 0, "max parallel workers for function lowering (0=auto)")
	lowerCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json)")
	lowerCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	lowerCmd.Flags().Bool("disk-cache", false, "reuse lowered IR from the persistent disk cache")
	lowerCmd.Flags().String("cache-dir", "", "override the disk cache location")
}

func runLower(cmd *cobra.Command, args []string) error {
	path := args[0]

	targetPath, err := cmd.Flags().GetString("target")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return err
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	target := layout.X86_64LinuxGNU()
	if targetPath != "" {
		target, err = layout.FromManifest(targetPath)
		if err != nil {
			return fmt.Errorf("failed to load target manifest: %w", err)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read module: %w", err)
	}

	var cache *driver.DiskCache
	if useCache {
		if cacheDir != "" {
			cache, err = driver.OpenDiskCacheAt(cacheDir)
		} else {
			cache, err = driver.OpenDiskCache("ember")
		}
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	digest := driver.InputDigest(raw, target.Triple)
	if cache != nil {
		var payload driver.DiskPayload
		hit, err := cache.Get(digest, &payload)
		if err != nil {
			return fmt.Errorf("disk cache read failed: %w", err)
		}
		if hit {
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "cache hit for %s\n", path)
			}
			return writeOutput(outPath, payload.IR)
		}
	}

	mod, typesIn, err := hirfile.Read(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to decode module: %w", err)
	}

	res, err := driver.LowerModule(cmd.Context(), mod, typesIn, driver.Options{
		Target:         target,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		return err
	}

	if res.Bag.Len() > 0 {
		stderr := cmd.ErrOrStderr()
		switch format {
		case "json":
			if err := diagfmt.JSON(stderr, res.Bag, nil, diagfmt.JSONOpts{IncludeNotes: withNotes}); err != nil {
				return err
			}
		case "pretty":
			diagfmt.Pretty(stderr, res.Bag, nil, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: withNotes,
			})
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	}

	if res.Bag.HasErrors() {
		return fmt.Errorf("lowering failed with %d diagnostics", res.Bag.Len())
	}

	if cache != nil {
		payload := driver.DiskPayload{
			Name:   mod.Name,
			Triple: target.Triple,
			IR:     res.IR,
		}
		if err := cache.Put(digest, &payload); err != nil && !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "disk cache write failed: %v\n", err)
		}
	}

	return writeOutput(outPath, res.IR)
}

func writeOutput(path, ir string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(ir)
		return err
	}
	return os.WriteFile(path, []byte(ir), 0o644)
}
