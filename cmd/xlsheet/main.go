// Package main provides the xlsheet command line tool.
package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javajack/xlsheet"
)

var (
	filePath      string
	keyColumn     string
	sheetName     string
	configPath    string
	verbose       bool
	backup        bool
	restoreBackup bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlsheet",
		Short: "Read, update and format xlsx sheets by header and key column",
		Long: `xlsheet addresses spreadsheet cells by column header and by the value in a
key column, keeps those lookups valid across appends and deletes, and applies
header-driven number formats, borders, alignment and fills.

Row arguments are key-column values; "#N" addresses row N directly.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			log.SetFormatter(&log.TextFormatter{
				FullTimestamp: true,
			})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&filePath, "file", "f", "", "xlsx file to work on")
	pf.StringVarP(&keyColumn, "key", "k", "", "header of the key column")
	pf.StringVarP(&sheetName, "sheet", "s", "", "worksheet name (default: first sheet)")
	pf.StringVarP(&configPath, "config", "c", "", "format config file (.yaml, .yml or .toml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	pf.BoolVar(&backup, "backup", false, "copy the file to .bak before the first save")
	pf.BoolVar(&restoreBackup, "restore-backup", false, "restore the .bak copy when the file is unreadable")
	_ = rootCmd.MarkPersistentFlagRequired("file")
	_ = rootCmd.MarkPersistentFlagRequired("key")

	rootCmd.AddCommand(
		newGetCmd(),
		newSetCmd(),
		newRowCmd(),
		newAppendCmd(),
		newDeleteRowCmd(),
		newDeleteColumnCmd(),
		newFormatCmd(),
		newDescribeCmd(),
		newValidateCmd(),
		newSelectCmd(),
	)
	return rootCmd
}

// withSheet opens the workbook and sheet, runs fn and saves when fn changed
// anything.
func withSheet(fn func(*xlsheet.Sheet) error) error {
	wb, err := xlsheet.OpenWorkbook(filePath,
		xlsheet.WithRestoreBackup(restoreBackup),
		xlsheet.WithWorkbookLogger(log.StandardLogger()),
	)
	if err != nil {
		return err
	}
	defer wb.Close()

	opts := []xlsheet.Option{
		xlsheet.WithSheetName(sheetName),
		xlsheet.WithLogger(log.StandardLogger()),
	}
	if configPath != "" {
		cfg, err := xlsheet.LoadFormatConfig(configPath)
		if err != nil {
			return err
		}
		opts = append(opts, xlsheet.WithFormatConfig(cfg))
	}
	sheet, err := xlsheet.OpenSheet(wb, keyColumn, opts...)
	if err != nil {
		return err
	}

	if err := fn(sheet); err != nil {
		return err
	}
	_, err = wb.Save(xlsheet.WithBackup(backup))
	return err
}

// parseKey turns "#N" into a row coordinate and anything else into a symbol.
func parseKey(s string) xlsheet.Key {
	if n, err := strconv.Atoi(strings.TrimPrefix(s, "#")); err == nil && strings.HasPrefix(s, "#") {
		return xlsheet.Coord(n)
	}
	return xlsheet.Symbol(s)
}

// plainNumber matches decimal literals without leading zeros or exponents,
// so values like "00123" or "1e3" are kept as text.
var plainNumber = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// parseValue stores numbers and booleans typed, everything else as text.
func parseValue(s string) any {
	if !plainNumber.MatchString(s) {
		if s == "true" || s == "false" {
			return s == "true"
		}
		return s
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ROW COLUMN",
		Short: "Print one cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(func(s *xlsheet.Sheet) error {
				v, err := s.GetCell(parseKey(args[0]), xlsheet.Symbol(args[1]))
				if err != nil {
					return err
				}
				if v == nil {
					return fmt.Errorf("no value at %s / %s", args[0], args[1])
				}
				fmt.Fprintln(cmd.OutOrStdout(), xlsheet.Stringify(v))
				return nil
			})
		},
	}
}

func newSetCmd() *cobra.Command {
	var keep bool
	cmd := &cobra.Command{
		Use:   "set ROW COLUMN VALUE",
		Short: "Write one cell (an empty VALUE clears it)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(func(s *xlsheet.Sheet) error {
				var opts []xlsheet.UpdateOption
				if keep {
					opts = append(opts, xlsheet.KeepExisting())
				}
				changed, err := s.UpdateCell(parseKey(args[0]), xlsheet.Symbol(args[1]), parseValue(args[2]), opts...)
				if err != nil {
					return err
				}
				log.WithField("changed", changed).Info("cell update")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "leave cells that already hold a value")
	return cmd
}

func newRowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "row ROW",
		Short: "Print every column of a row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(func(s *xlsheet.Sheet) error {
				row, err := s.GetRow(parseKey(args[0]))
				if err != nil {
					return err
				}
				for _, h := range s.Headers() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h, xlsheet.Stringify(row[h]))
				}
				return nil
			})
		},
	}
}

func newAppendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append HEADER=VALUE...",
		Short: "Append a row",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]any, len(args))
			for _, a := range args {
				h, v, ok := strings.Cut(a, "=")
				if !ok {
					return fmt.Errorf("argument %q is not HEADER=VALUE", a)
				}
				values[h] = parseValue(v)
			}
			return withSheet(func(s *xlsheet.Sheet) error {
				if err := s.AppendRow(values); err != nil {
					return err
				}
				if missing := s.MissingColumns(); len(missing) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "dropped unknown columns: %s\n", strings.Join(missing, ", "))
				}
				return nil
			})
		},
	}
}

func newDeleteRowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-row ROW",
		Short: "Delete a row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(func(s *xlsheet.Sheet) error {
				deleted, err := s.DeleteRow(parseKey(args[0]))
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("row %s not found", args[0])
				}
				return nil
			})
		},
	}
}

func newDeleteColumnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-column HEADER",
		Short: "Delete a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(func(s *xlsheet.Sheet) error {
				deleted, err := s.DeleteColumn(args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("column %q not found", args[0])
				}
				return nil
			})
		},
	}
}

func newFormatCmd() *cobra.Command {
	var (
		row      string
		autosize bool
	)
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Apply the format config to one row or the whole sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(func(s *xlsheet.Sheet) error {
				if row != "" {
					if err := s.FormatRow(parseKey(row)); err != nil {
						return err
					}
				} else {
					ok, err := s.FormatAllCells()
					if err != nil {
						return err
					}
					if !ok {
						log.Warn("no format config, nothing formatted")
					}
				}
				if autosize {
					return s.AutoSizeColumns(xlsheet.DefaultWidthMultiplier)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&row, "row", "", "format only this row")
	cmd.Flags().BoolVar(&autosize, "autosize", false, "fit column widths to their content")
	return cmd
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the sheet's columns and their formatting actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(func(s *xlsheet.Sheet) error {
				fmt.Fprint(cmd.OutOrStdout(), s.Describe())
				return nil
			})
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the sheet layout and format config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(func(s *xlsheet.Sheet) error {
				issues, err := s.Validate()
				if err != nil {
					return err
				}
				errCount := 0
				for _, issue := range issues {
					fmt.Fprintln(cmd.OutOrStdout(), issue)
					if issue.Severity == xlsheet.SeverityError {
						errCount++
					}
				}
				if errCount > 0 {
					return fmt.Errorf("%d validation errors", errCount)
				}
				return nil
			})
		},
	}
}

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select CONDITION",
		Short: "Print the keys of rows matching an expression",
		Example: `  xlsheet -f people.xlsx -k Name select 'Age > 1980'
  xlsheet -f people.xlsx -k Name select 'row["Birth Month"] == "June"'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(func(s *xlsheet.Sheet) error {
				keys, err := s.Select(args[0])
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	}
}
