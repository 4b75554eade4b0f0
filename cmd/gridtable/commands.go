package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/VictoriaMetrics/metrics"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/ukaji3/gridtable-go/internal/logging"
	"github.com/ukaji3/gridtable-go/pkg/gridtable"
	"github.com/ukaji3/gridtable-go/pkg/gridtable/grid"
	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
	"github.com/ukaji3/gridtable-go/pkg/gridtable/output"
	"github.com/ukaji3/gridtable-go/pkg/gridtable/xlsxgrid"
)

// session is an opened workbook sheet ready for table operations.
type session struct {
	book  *xlsxgrid.Grid
	sheet *gridtable.Sheet
}

func openSession(ctx context.Context, path string) (*session, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	book, err := xlsxgrid.Open(path, xlsxgrid.Options{Sheet: cfg.Sheet, MinRows: cfg.MinRows})
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	ctx = logging.WithFields(ctx, "book", path, "sheet", book.Sheet())
	opts := gridtable.DefaultOptions()
	opts.Sheet = book.Sheet()
	opts.Logger = logging.FromContext(ctx)
	if cfg.HeaderMode != "" {
		opts.HeaderMode = cfg.HeaderMode
	}
	if cfg.Assembly != "" {
		opts.Assembly = cfg.Assembly
	}

	sheet := gridtable.New(grid.Instrument(book, nil, book.Sheet()), opts)
	return &session{book: book, sheet: sheet}, nil
}

// save persists the workbook after a mutation.
func (s *session) save() error {
	if err := s.book.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (s *session) close() {
	s.book.Close()
	if cfg.Metrics {
		metrics.WritePrometheus(os.Stderr, false)
	}
}

// keepCleared saves when any cell was blanked, including rows cleared before
// a failure, then reports the clear error.
func keepCleared(save func() error, res models.UpdateResult, clearErr error) error {
	if res.UpdatedCellCount > 0 {
		if err := save(); err != nil {
			return errors.Join(clearErr, err)
		}
	}
	return clearErr
}

func printJSON(data []byte, err error) error {
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func newHeaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header [book.xlsx]",
		Short: "Print the sheet header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.close()

			header, err := s.sheet.FetchHeader(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(output.HeaderToJSON(header, cfg.Pretty))
		},
	}
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [book.xlsx]",
		Short: "Print the sheet as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.close()

			table, err := s.sheet.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(output.ToJSON(table, cfg.Pretty))
		},
	}
}

func newInsertCmd() *cobra.Command {
	var (
		sets          []string
		from          string
		validateFirst bool
	)

	cmd := &cobra.Command{
		Use:   "insert [book.xlsx]",
		Short: "Append records",
		Long: `Append one record given with --set, or every record of a JSON array
of objects given with --from. Records are written one at a time; a failing
record leaves the earlier ones written unless --validate-first is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patches, err := insertPatches(sets, from)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.close()

			rows, insertErr := s.sheet.InsertRows(cmd.Context(), patches, gridtable.InsertOptions{ValidateFirst: validateFirst})
			if len(rows) > 0 {
				if err := s.save(); err != nil {
					return err
				}
			}
			if insertErr != nil {
				return insertErr
			}
			return printJSON(output.InsertedToJSON(rows, cfg.Pretty))
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Column assignment key=value (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "JSON file holding an array of records")
	cmd.Flags().BoolVar(&validateFirst, "validate-first", false, "Check every record and key before writing")
	return cmd
}

func insertPatches(sets []string, from string) ([]models.Patch, error) {
	if from == "" {
		if len(sets) == 0 {
			return nil, fmt.Errorf("nothing to insert: use --set or --from")
		}
		patch, err := parseAssignments(sets)
		if err != nil {
			return nil, err
		}
		return []models.Patch{patch}, nil
	}

	data, err := os.ReadFile(from)
	if err != nil {
		return nil, err
	}
	var patches []models.Patch
	if err := json.Unmarshal(data, &patches); err != nil {
		return nil, fmt.Errorf("parse %s: %w", from, err)
	}
	return patches, nil
}

func newUpdateCmd() *cobra.Command {
	var (
		sets    []string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "update [book.xlsx] [key]",
		Short: "Update the record with the given key",
		Long: `Update the record whose first column equals key. Without --replace
only the columns named by --set change; with --replace every other
non-key column is blanked.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.close()

			res, err := s.sheet.UpdateRow(cmd.Context(), args[1], patch, gridtable.UpdateOptions{Replace: replace})
			if err != nil {
				return err
			}
			if res.UpdatedCellCount > 0 {
				if err := s.save(); err != nil {
					return err
				}
			}
			return printJSON(output.ResultToJSON(res, cfg.Pretty))
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Column assignment key=value (repeatable)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Blank columns not named by --set")
	return cmd
}

func newClearCmd() *cobra.Command {
	var (
		row int
		key string
	)

	cmd := &cobra.Command{
		Use:   "clear [book.xlsx]",
		Short: "Blank a row by number or by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (row == 0) == (key == "") {
				return fmt.Errorf("exactly one of --row or --key is required")
			}

			s, err := openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.close()

			var (
				res      models.UpdateResult
				clearErr error
			)
			if key != "" {
				res, clearErr = s.sheet.ClearByKey(cmd.Context(), key)
			} else {
				res, clearErr = s.sheet.ClearByRowNumber(cmd.Context(), row)
			}
			if err := keepCleared(s.save, res, clearErr); err != nil {
				return err
			}
			return printJSON(output.ResultToJSON(res, cfg.Pretty))
		},
	}

	cmd.Flags().IntVar(&row, "row", 0, "Physical row number to blank (must be > 1)")
	cmd.Flags().StringVar(&key, "key", "", "Primary key of the rows to blank")
	return cmd
}
