package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/brendatab/internal/config"
	"github.com/gubarz/brendatab/internal/export"
	"github.com/gubarz/brendatab/internal/logging"
	"github.com/gubarz/brendatab/internal/parser"
	"github.com/gubarz/brendatab/internal/ui"
)

var version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "brendatab <file>",
	Short: "Convert BRENDA flat files into ID/field/description tables",
	Long: `Parses a BRENDA enzyme database text export into one row per
(EC number, field) with the field text as description.

Transferred and deleted EC numbers are collapsed into TRANSFERRED_DELETED
rows unless --no-clean is given. Input may be plain, gzip or xz compressed;
use - to read from stdin.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runExport,
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the known BRENDA field tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, tag := range parser.FieldTags() {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Summarize entries and fields in a BRENDA file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var browseCmd = &cobra.Command{
	Use:   "browse <file>",
	Short: "Browse parsed records interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		return ui.Run(table)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(fieldsCmd, statsCmd, browseCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: brendatab.yaml in ~/.config/brendatab, ~ or .)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text, json")
	rootCmd.PersistentFlags().Bool("no-clean", false, "Keep raw IDs, do not synthesize TRANSFERRED_DELETED rows")

	rootCmd.Flags().StringP("format", "f", "", "Output format: csv, tsv, json, jsonl, yaml, sqlite, table")
	rootCmd.Flags().StringP("output", "o", "", "Output path (required for sqlite, stdout otherwise)")
	rootCmd.Flags().StringSlice("field", nil, "Only keep these fields (repeatable)")
	rootCmd.Flags().StringSlice("id", nil, "Only keep these EC numbers (repeatable)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
	if err := logging.Init(config.GetLogLevel(), config.GetLogFormat(), os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logging: %v\n", err)
	}
}

// loadTable parses path (or stdin for "-") honoring the clean setting
func loadTable(cmd *cobra.Command, path string) (*parser.Table, error) {
	if noClean, _ := cmd.Flags().GetBool("no-clean"); noClean {
		config.SetClean(false)
	}

	log := logging.L().With("path", path, "clean", config.GetClean())
	log.Info("parsing BRENDA file")
	start := time.Now()

	p := parser.NewParser(parser.Options{Clean: config.GetClean()})

	var table *parser.Table
	var err error
	if path == "-" {
		table, err = p.ParseReader(cmd.InOrStdin())
	} else {
		table, err = p.ParseFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	attrs := []any{"records", table.Len(), "duration", time.Since(start)}
	if table.Source != nil {
		attrs = append(attrs, "size", table.Source.Size, "compression", table.Source.Compression, "blake3", table.Source.Checksum)
	}
	log.Info("parsed BRENDA file", attrs...)

	return table, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(config.GetFormat())
	if err != nil {
		return err
	}

	table, err := loadTable(cmd, args[0])
	if err != nil {
		return err
	}

	ids, _ := cmd.Flags().GetStringSlice("id")
	fields, _ := cmd.Flags().GetStringSlice("field")
	for _, f := range fields {
		if !parser.IsFieldTag(f) {
			logging.L().Warn("unknown field filter", "field", f)
		}
	}
	table = table.Filter(ids, fields)

	dest := config.GetOutput()
	if err := export.NewExporter().WithWriter(cmd.OutOrStdout()).Export(table, format, dest); err != nil {
		return fmt.Errorf("export error: %w", err)
	}

	logging.L().Info("export complete", "format", format, "output", dest, "records", table.Len())
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd, args[0])
	if err != nil {
		return err
	}
	stats := table.Stats()

	summary := [][]string{
		{"entries", humanize.Comma(int64(stats.Entries))},
		{"records", humanize.Comma(int64(stats.Records))},
		{"transferred/deleted", humanize.Comma(int64(stats.TransferredDeleted))},
	}
	if src := table.Source; src != nil {
		summary = append(summary,
			[]string{"source", src.Path},
			[]string{"size", humanize.Bytes(uint64(src.Size))},
			[]string{"compression", string(src.Compression)},
			[]string{"blake3", src.Checksum},
		)
	}

	byField := make([][]string, 0, len(stats.ByField))
	for _, f := range stats.SortedFields() {
		byField = append(byField, []string{f, strconv.Itoa(stats.ByField[f])})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, export.RenderGrid([]string{"metric", "value"}, summary))
	fmt.Fprintln(out, export.RenderGrid([]string{"field", "records"}, byField))
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
