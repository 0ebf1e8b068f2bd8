package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/kylelemons/godebug/diff"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mofmt/mofmt/internal/config"
	"github.com/mofmt/mofmt/internal/pipeline"
)

var (
	write      bool
	check      bool
	showDiff   bool
	showAST    bool
	configPath string
	verbose    int
)

var log = logrus.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mofmt <path>...",
	Short: "Pretty-print declarative physical-modelling source files",
	Long: `mofmt formats physical-modelling source files into a canonical
layout: consistent spacing, indentation, and line-preserving comment
placement. Given one or more paths (files or directories, expanded
recursively for *.mo files), it prints the formatted result to stdout
unless --write, --check, --diff or --ast is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of stdout")
	rootCmd.Flags().BoolVar(&check, "check", false, "exit non-zero if any input is not already canonically formatted")
	rootCmd.Flags().BoolVar(&showDiff, "diff", false, "print a diff of the change instead of the full output")
	rootCmd.Flags().BoolVar(&showAST, "ast", false, "dump the token stream and CST to stderr instead of formatting")
	rootCmd.Flags().StringVar(&configPath, "config", "", "explicit path to a .mofmt.yaml (default: nearest ancestor directory)")
	rootCmd.Flags().CountVarP(&verbose, "verbose", "v", "increase logging verbosity (-v, -vv)")
}

func run(cmd *cobra.Command, args []string) error {
	switch verbose {
	case 0:
		log.SetLevel(logrus.WarnLevel)
	case 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.DebugLevel)
	}

	files, err := expandPaths(args)
	if err != nil {
		return err
	}

	dirty := false
	for _, file := range files {
		changed, err := formatFile(file)
		if err != nil {
			return err
		}
		if changed {
			dirty = true
		}
	}
	if check && dirty {
		return fmt.Errorf("one or more files are not canonically formatted")
	}
	return nil
}

// expandPaths resolves each argument to a list of *.mo files, recursing
// into directories.
func expandPaths(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.HasSuffix(path, ".mo") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return files, nil
}

// formatFile runs the pipeline over one file and performs whichever of
// --write/--check/--diff/--ast was requested. It reports whether the file's
// existing contents differed from the canonical rendering; under --ast it
// always reports false.
func formatFile(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	source := string(content)

	cfg, err := resolveConfig(path)
	if err != nil {
		return false, fmt.Errorf("loading config for %s: %w", path, err)
	}

	res, err := pipeline.Format(source, cfg)
	if err != nil {
		log.WithField("file", path).Error(err)
		return false, fmt.Errorf("formatting %s: %w", path, err)
	}

	for _, d := range res.Diagnostics {
		log.WithFields(logrus.Fields{
			"file": path,
			"line": d.Position.Line,
			"col":  d.Position.Col,
		}).Warn(d.Message)
	}

	if showAST {
		fmt.Fprintln(os.Stderr, res.Store.Dump())
		repr.New(os.Stderr).Println(res.Tree)
		return false, nil
	}

	changed := res.Output != source
	switch {
	case showDiff:
		if changed {
			fmt.Print(diff.Diff(source, res.Output))
		}
	case write:
		if changed {
			if err := os.WriteFile(path, []byte(res.Output), 0o644); err != nil {
				return false, fmt.Errorf("writing %s: %w", path, err)
			}
		}
	case !check:
		fmt.Print(res.Output)
	}
	return changed, nil
}

func resolveConfig(file string) (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.Discover(filepath.Dir(file))
}
