package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/SanteonNL/welfare/cmd/welfare/output"
	"github.com/SanteonNL/welfare/cmd/welfare/session"
	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/SanteonNL/welfare/util"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	life        string
	target      string
	theme       string
	rows        int
	page        int
	csv         bool
	xlsx        bool
	outDir      string
	interactive bool
}

func newSearchCmd() *cobra.Command {
	opts := searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [--life <code>] [--target <code>] [--theme <code>] [--rows <n>] [--page <n>]",
		Short: "Searches welfare services and prints one page of results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := welfare.NewSearchFilter(opts.life, opts.target, opts.theme, opts.rows)
			if err != nil {
				return err
			}
			if opts.page < 1 {
				return fmt.Errorf("page must be positive, got %d", opts.page)
			}
			filter = filter.WithPage(opts.page)

			env, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.close()
			if opts.outDir == "" {
				opts.outDir = env.cfg.ExportDir
			}

			s := &searcher{
				fetcher: env.fetcher,
				opts:    opts,
				out:     cmd.OutOrStdout(),
				log:     env.log,
			}
			return s.run(cmd.Context(), cmd.InOrStdin(), filter)
		},
	}

	cmd.Flags().StringVar(&opts.life, "life", "", "Life stage code, see 'welfare codes'.")
	cmd.Flags().StringVar(&opts.target, "target", "", "Target group code.")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Interest theme code.")
	cmd.Flags().IntVar(&opts.rows, "rows", welfare.DefaultPageSize, "Records per page (10, 20, 30, 50 or 100).")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page to fetch.")
	cmd.Flags().BoolVar(&opts.csv, "csv", false, "Export the fetched page as CSV.")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "Export the fetched page as an Excel workbook.")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "Export directory, overrides WELFARE_EXPORT_DIR.")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Page through results with n, p, f and q.")
	return cmd
}

// searcher drives one search invocation and, when interactive, its paging loop.
type searcher struct {
	fetcher session.Fetcher
	opts    searchOptions
	out     io.Writer
	log     zerolog.Logger
	exports *output.OutputManager
}

func (s *searcher) run(ctx context.Context, in io.Reader, filter welfare.SearchFilter) error {
	state := session.Open(ctx, s.fetcher, filter)
	s.show(state)

	if !s.opts.interactive {
		if err := s.exportRequested(state); err != nil {
			return err
		}
		if notice := session.NoticeFor(state); notice.Kind == session.NoticeError {
			return state.Err
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "[n]다음 [p]이전 [f]처음 [c]CSV [x]엑셀 [q]종료 > ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n":
			if !state.CanNext() {
				fmt.Fprintln(s.out, "마지막 페이지입니다.")
				continue
			}
			state = session.Next(ctx, s.fetcher, state)
		case "p":
			if !state.CanPrev() {
				fmt.Fprintln(s.out, "첫 페이지입니다.")
				continue
			}
			state = session.Prev(ctx, s.fetcher, state)
		case "f":
			state = session.First(ctx, s.fetcher, state)
		case "c":
			s.exportInteractive(state, output.FormatCSV)
			continue
		case "x":
			s.exportInteractive(state, output.FormatXLSX)
			continue
		case "q", "quit", "exit":
			return nil
		case "":
			continue
		default:
			fmt.Fprintln(s.out, "알 수 없는 명령입니다.")
			continue
		}

		if state.Err != nil {
			s.log.Error().Err(state.Err).Int("page", state.Page()).Msg("Navigation failed")
		}
		s.show(state)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *searcher) show(state session.State) {
	renderState(s.out, state)
}

func (s *searcher) exportRequested(state session.State) error {
	var formats []output.Format
	if s.opts.csv {
		formats = append(formats, output.FormatCSV)
	}
	if s.opts.xlsx {
		formats = append(formats, output.FormatXLSX)
	}
	for _, f := range formats {
		path, err := s.export(state, f)
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintf(s.out, "저장됨: %s\n", path)
		}
	}
	return nil
}

func (s *searcher) exportInteractive(state session.State, f output.Format) {
	path, err := s.export(state, f)
	switch {
	case err != nil:
		s.log.Error().Err(err).Str("format", string(f)).Msg("Export failed")
		fmt.Fprintln(s.out, "내보내기에 실패했습니다.")
	case path == "":
		fmt.Fprintln(s.out, "내보낼 결과가 없습니다.")
	default:
		fmt.Fprintf(s.out, "저장됨: %s\n", path)
	}
}

// export writes the current page and returns its path. Nothing is written for an
// empty page.
func (s *searcher) export(state session.State, f output.Format) (string, error) {
	if len(state.Records) == 0 {
		return "", nil
	}
	if s.exports == nil {
		dir, err := util.GetAbsolutePath(s.opts.outDir)
		if err != nil {
			return "", err
		}
		om, err := output.NewOutputManager(dir, s.log)
		if err != nil {
			return "", err
		}
		s.exports = om
	}
	return s.exports.WriteExport(state.Records, state.Page(), f)
}
