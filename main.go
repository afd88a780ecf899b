package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const usageLine = "totalsize <Path Name>"

var (
	errIncorrectArgs = errors.New("incorrect arguments")
	errPathNotFound  = errors.New("file/folder not found")
)

var (
	// Filtering
	excludePatterns string
	useGitignore    bool
	showHidden      bool

	// Output
	outputFormat    string
	outputFile      string
	copyToClipboard bool

	// Logging
	verbose   bool
	logFormat string

	// Input
	interactiveMode bool

	cfgFile string

	logger  = logrus.New()
	initErr error
)

// version is the application version, set via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   usageLine,
	Short: "Report the total size of a file or directory tree.",
	Long: `totalsize walks a directory tree (or looks at a single file) and prints
the summed size of every file in it, in bytes and, when large enough, in KB,
MB and GB. Entries that cannot be read are skipped and counted.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args: func(cmd *cobra.Command, args []string) error {
		want := 1
		if viper.GetBool("interactive") {
			want = 0
		}
		if len(args) != want {
			return errIncorrectArgs
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if initErr != nil {
			return initErr
		}
		fsys := afero.NewOsFs()

		var input string
		if viper.GetBool("interactive") {
			picked, err := runInteractiveFinder(NewAccumulator(fsys, nil, logger), fsys, viper.GetBool("hidden"))
			if errors.Is(err, errAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			input = picked
		} else {
			input = args[0]
		}

		opts := measureOptions{
			exclude:   viper.GetString("exclude"),
			gitignore: viper.GetBool("gitignore"),
		}

		var report Report
		var err error
		if isRemoteRepo(fsys, input) {
			dir, cleanup, cloneErr := cloneGitRepo(input, cmd.ErrOrStderr(), logger)
			if cloneErr != nil {
				return cloneErr
			}
			defer cleanup()
			report, err = measure(fsys, logger, dir, opts)
			report.Path = input
		} else {
			report, err = measure(fsys, logger, input, opts)
		}
		if err != nil {
			return err
		}

		out, err := renderReport(report, viper.GetString("format"))
		if err != nil {
			return err
		}
		return deliver(cmd.OutOrStdout(), out, viper.GetString("output_file"), viper.GetBool("clipboard"))
	},
}

// isRemoteRepo reports whether input should be cloned rather than sized in
// place. A path that exists locally is always sized as is, even when it
// looks like a git URL (".git" dirs, bare repos).
func isRemoteRepo(fsys afero.Fs, input string) bool {
	if !isGitURL(input) {
		return false
	}
	_, err := fsys.Stat(input)
	return errors.Is(err, fs.ErrNotExist)
}

// measureOptions carries the exclusion settings for one run.
type measureOptions struct {
	exclude   string
	gitignore bool
}

// measure checks that path exists and sizes it.
func measure(fsys afero.Fs, log logrus.FieldLogger, path string, opts measureOptions) (Report, error) {
	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: %s", errPathNotFound, path)
		}
		return Report{}, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	filter, err := NewFilter(fsys, path, opts.exclude, opts.gitignore)
	if err != nil {
		return Report{}, err
	}

	res := NewAccumulator(fsys, filter, log).ComputeSize(path)
	log.WithFields(logrus.Fields{
		"path":    path,
		"bytes":   res.TotalBytes,
		"skipped": res.Skipped,
	}).Debug("size computed")

	return newReport(path, res), nil
}

// deliver sends the rendered report to a file, the clipboard, or w.
func deliver(w io.Writer, out, file string, toClipboard bool) error {
	switch {
	case file != "":
		if err := os.WriteFile(file, []byte(out), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", file, err)
		}
		logger.WithField("file", file).Info("output saved")
	case toClipboard:
		if err := clipboard.WriteAll(out); err != nil {
			logger.WithError(err).Warn("error writing to clipboard, printing instead")
			_, err = io.WriteString(w, out)
			return err
		}
		logger.Info("output copied to clipboard")
	default:
		_, err := io.WriteString(w, out)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/totalsize/config.toml)")

	// Filtering
	rootCmd.Flags().StringVarP(&excludePatterns, "exclude", "e", "", "Patterns to leave out of the total (comma-separated, e.g. *.log,node_modules)")
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().BoolVar(&useGitignore, "gitignore", false, "Leave out entries ignored by the root .gitignore")
	viper.BindPFlag("gitignore", rootCmd.Flags().Lookup("gitignore"))
	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "Offer hidden files and directories in interactive mode")
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))

	// Output
	rootCmd.Flags().StringVarP(&outputFormat, "format", "o", formatText, "Output format: text or yaml")
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	rootCmd.Flags().StringVarP(&outputFile, "file", "f", "", "Save output to specified file")
	viper.BindPFlag("output_file", rootCmd.Flags().Lookup("file"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy output to clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))

	// Logging
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every skipped or excluded entry")
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	viper.BindPFlag("log_format", rootCmd.Flags().Lookup("log-format"))

	// Interactive Mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick the path with a fuzzy finder instead of an argument")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	viper.SetDefault("format", formatText)
	viper.SetDefault("log_format", "text")
	viper.SetDefault("exclude", "")
	viper.SetDefault("gitignore", false)
	viper.SetDefault("hidden", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("clipboard", false)
	viper.SetDefault("interactive", false)
}

// initConfig reads in config file and ENV variables if set, then configures
// the logger from the merged settings.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "totalsize"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("TOTALSIZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match TOTALSIZE_*

	readErr := viper.ReadInConfig()

	l, err := newLogger(os.Stderr, viper.GetBool("verbose"), viper.GetString("log_format"))
	if err != nil {
		initErr = err
		return
	}
	logger = l

	var notFound viper.ConfigFileNotFoundError
	switch {
	case readErr == nil:
		logger.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	case errors.As(readErr, &notFound):
		logger.Debug("no config file found, using defaults and flags")
	default:
		logger.WithError(readErr).Warn("error reading config file")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, errIncorrectArgs):
			fmt.Fprintln(os.Stderr, "\nIncorrect Arguments")
			fmt.Println(usageLine)
		case errors.Is(err, errPathNotFound):
			fmt.Fprintln(os.Stderr, "\nFile/Folder not found.")
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
