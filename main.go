package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultIgnoreFileName = ".ctxsweepignore"
	defaultNotesFileName  = "PROJECT_NOTES.md"
	defaultRulesFileName  = ".ctxsweep.yml"
)

var (
	// Scan behavior
	noIgnore      bool
	rulesFileName string

	// Generated artifacts
	writeFiles     bool
	forceOverwrite bool
	ignoreFileName string
	notesFileName  string

	// Output
	copyToClipboard bool
	pdfOutputFile   string
	noColor         bool
	verbose         bool

	// Token counting
	tokenizerType  string
	tokenizerModel string
	tokenizerFile  string

	// Interactive mode
	interactiveMode bool

	cfgFile string // Variable to hold potential config file path flag (optional)
)

// version is the application version, set via ldflags.
var version string = "dev" // Default for local builds

var rootCmd = &cobra.Command{
	Use:   "ctxsweep [PATH]",
	Short: "ctxsweep finds the files that waste an AI assistant's context window.",
	Long: `ctxsweep scans a project directory or Git repository, estimates how many
context tokens its text would consume, flags generated and vendored noise,
and suggests exclusions. It can write the suggestions as an ignore file
plus a project notes document.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScan(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runScan(args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	// Git URLs are cloned to a throwaway directory and scanned there.
	root := target
	if isGitURL(target) {
		tempDir, err := cloneGitRepo(target)
		if err != nil {
			return err
		}
		defer func() {
			log.Debugf("cleaning up %s", tempDir)
			_ = os.RemoveAll(tempDir)
		}()
		root = tempDir
	}

	tok, err := getTokenizer()
	if err != nil {
		log.Warnf("tokenizer unavailable, falling back to the heuristic estimator: %v", err)
		tok = HeuristicTokenizer{}
	}
	defer tok.Close()

	rules := loadRuleSet(root)
	bloatRules := loadBloatRules(filepath.Join(root, rulesFileName))

	result, _, err := analyze(root, rules, bloatRules, tok)
	if err != nil {
		return err
	}
	// Show the URL, not the throwaway clone path.
	result.Root = target

	fmt.Println(renderReport(result))

	if copyToClipboard {
		if err := clipboard.WriteAll(plainReport(result)); err != nil {
			log.Warnf("could not copy report to clipboard: %v", err)
		} else {
			fmt.Println("Report copied to clipboard.")
		}
	}

	if pdfOutputFile != "" {
		if err := writePDFReport(result, pdfOutputFile); err != nil {
			return err
		}
	}

	if writeFiles || interactiveMode {
		selected := result.Suggestions
		if interactiveMode {
			selected, err = pickSuggestions(result.Suggestions)
			if err != nil {
				return err
			}
			if selected == nil {
				return nil // selection aborted, write nothing
			}
		}

		// For URL scans the clone is gone after this run, so the
		// artifacts land in the working directory instead.
		outDir := root
		if isGitURL(target) {
			outDir = "."
		}
		if err := writeGeneratedFile(filepath.Join(outDir, ignoreFileName), renderIgnoreFile(selected), forceOverwrite); err != nil {
			return err
		}
		if err := writeGeneratedFile(filepath.Join(outDir, notesFileName), renderProjectNotes(result), forceOverwrite); err != nil {
			return err
		}
	}

	return nil
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	// --- Flag Definitions & Viper Binding ---
	// Optional: Allow specifying config file via flag
	// rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ctxsweep/config.toml)")

	// Scan behavior
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect .gitignore files")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))
	rootCmd.Flags().StringVar(&rulesFileName, "rules", defaultRulesFileName, "Custom bloat rules file inside the scanned project")
	viper.BindPFlag("rules", rootCmd.Flags().Lookup("rules"))

	// Generated artifacts
	rootCmd.Flags().BoolVarP(&writeFiles, "write", "w", false, "Write the suggested ignore file and project notes")
	viper.BindPFlag("write", rootCmd.Flags().Lookup("write"))
	rootCmd.Flags().BoolVar(&forceOverwrite, "force", false, "Overwrite generated files that already exist")
	viper.BindPFlag("force", rootCmd.Flags().Lookup("force"))
	rootCmd.Flags().StringVar(&ignoreFileName, "ignore-file", defaultIgnoreFileName, "Name of the generated ignore file")
	viper.BindPFlag("ignore_file", rootCmd.Flags().Lookup("ignore-file"))
	rootCmd.Flags().StringVar(&notesFileName, "notes-file", defaultNotesFileName, "Name of the generated notes file")
	viper.BindPFlag("notes_file", rootCmd.Flags().Lookup("notes-file"))

	// Output
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy the report to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Also save the report as a PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	viper.BindPFlag("no_color", rootCmd.Flags().Lookup("no-color"))
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))

	// Token counting
	rootCmd.Flags().StringVar(&tokenizerType, "tokenizer", "heuristic", "Tokenizer to use: heuristic, tiktoken or huggingface")
	viper.BindPFlag("tokenizer", rootCmd.Flags().Lookup("tokenizer"))
	viper.BindPFlag("default_tokenizer", rootCmd.Flags().Lookup("tokenizer"))
	rootCmd.Flags().StringVar(&tokenizerModel, "model", "", "Model name for exact tokenizers (e.g., gpt-4o, gpt2)")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	viper.BindPFlag("default_tokenizer_model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().StringVar(&tokenizerFile, "tokenizer-file", "", "Path to local tokenizer file")
	viper.BindPFlag("tokenizer_file", rootCmd.Flags().Lookup("tokenizer-file"))

	// Interactive mode
	rootCmd.Flags().BoolVarP(&interactiveMode, "interactive", "i", false, "Pick which suggestions to write via fuzzy finder (implies --write)")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	// Viper defaults, for values a config file may provide.
	viper.SetDefault("ignore_file", defaultIgnoreFileName)
	viper.SetDefault("notes_file", defaultNotesFileName)
	viper.SetDefault("rules", defaultRulesFileName)
	viper.SetDefault("default_tokenizer", "heuristic")
	viper.SetDefault("default_tokenizer_model", "")
	viper.SetDefault("no_ignore", false)
	viper.SetDefault("no_color", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("clipboard", false)
	viper.SetDefault("interactive", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home/.config/ctxsweep with name "config" (without extension).
		viper.AddConfigPath(filepath.Join(home, ".config", "ctxsweep"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.AutomaticEnv() // read in environment variables that match CTXSWEEP_*
	viper.SetEnvPrefix("CTXSWEEP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug("no config file found, using defaults and flags")
		} else {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}

	// BindPFlag makes viper.Get see the flag, but config values do not
	// flow back into the flag variables on their own. Sync the ones a
	// config file is allowed to set, unless the flag was given.
	flags := rootCmd.Flags()
	if !flags.Changed("ignore-file") {
		ignoreFileName = viper.GetString("ignore_file")
	}
	if !flags.Changed("notes-file") {
		notesFileName = viper.GetString("notes_file")
	}
	if !flags.Changed("rules") {
		rulesFileName = viper.GetString("rules")
	}
	if !flags.Changed("tokenizer") {
		tokenizerType = viper.GetString("default_tokenizer")
	}
	if !flags.Changed("model") {
		tokenizerModel = viper.GetString("default_tokenizer_model")
	}
	if !flags.Changed("no-ignore") {
		noIgnore = viper.GetBool("no_ignore")
	}
	if !flags.Changed("no-color") {
		noColor = viper.GetBool("no_color")
	}
	if !flags.Changed("verbose") {
		verbose = viper.GetBool("verbose")
	}
}

// initLogging configures diagnostics. The report itself goes to stdout
// and is not affected.
func initLogging() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if noColor {
		color.NoColor = true
	}
}

func main() {
	// initConfig() is called via cobra.OnInitialize(initConfig)
	rootCmd.Execute()
}
