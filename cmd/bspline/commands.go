package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"honnef.co/go/curve"

	"honnef.co/go/bspline"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "bspline",
		Short:         "Evaluate and plot B-splines defined in YAML files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(newLogHandler(cmd.ErrOrStderr(), level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	root.AddCommand(
		newEvalCmd(),
		newSampleCmd(),
		newSVGCmd(),
		newInfoCmd(),
	)
	return root
}

// newLogHandler logs text to terminals and JSON to everything else.
func newLogHandler(w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func load(path string) (*bspline.BSpline, error) {
	b, err := loadSpline(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded spline", "file", path, "degree", b.Degree(), "domain", b.Domain(), "terms", len(b.Basis()))
	return b, nil
}

// formatValue formats v as dims space-separated numbers. The scalar zero is
// formatted as the zero vector.
func formatValue(v bspline.Value, dims int) string {
	if dims <= 1 {
		return strconv.FormatFloat(v.Float(), 'g', 6, 64)
	}
	vec, err := bspline.Promote(v, dims)
	if err != nil {
		return v.String()
	}
	parts := make([]string, dims)
	for i := range parts {
		parts[i] = strconv.FormatFloat(vec.At(i), 'g', 6, 64)
	}
	return strings.Join(parts, " ")
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval FILE X...",
		Short: "Evaluate a spline at one or more parameters",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, arg := range args[1:] {
				x, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid parameter %q: %w", arg, err)
				}
				if !b.Domain().Contains(x) {
					slog.Warn("parameter outside of valid domain", "x", x, "domain", b.Domain())
				}
				v, err := b.Evaluate(x)
				if err != nil {
					return fmt.Errorf("evaluating at %g: %w", x, err)
				}
				fmt.Fprintf(w, "%g %s\n", x, formatValue(v, b.Dimensions()))
			}
			return nil
		},
	}
}

func newSampleCmd() *cobra.Command {
	var (
		steps int
		basis bool
	)
	cmd := &cobra.Command{
		Use:   "sample FILE",
		Short: "Sample a spline over its valid domain",
		Long: `Sample a spline at evenly spaced parameters over its valid domain,
including the upper bound. Every line holds the parameter followed by the
value. With --basis, the values of the individual terms follow.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			b, err := load(args[0])
			if err != nil {
				return err
			}
			d := b.Domain()
			xs := slices.Collect(bspline.Params(d.Low, d.High, steps))

			cols := []bspline.Evaluable{b}
			if basis {
				cols = append(cols, b.Basis()...)
			}
			table, err := sampleColumns(cmd.Context(), cols, xs)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), xs, table, b.Dimensions())
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 100, "Number of intervals to sample")
	cmd.Flags().BoolVar(&basis, "basis", false, "Also print the value of every term")
	return cmd
}

// sampleColumns evaluates every Evaluable at every parameter, one goroutine
// per Evaluable.
func sampleColumns(ctx context.Context, cols []bspline.Evaluable, xs []float64) ([][]bspline.Value, error) {
	out := make([][]bspline.Value, len(cols))
	g, ctx := errgroup.WithContext(ctx)
	for i, e := range cols {
		g.Go(func() error {
			col := make([]bspline.Value, len(xs))
			for j, x := range xs {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := e.Evaluate(x)
				if err != nil {
					return fmt.Errorf("column %d at %g: %w", i, x, err)
				}
				col[j] = v
			}
			out[i] = col
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func writeTable(w io.Writer, xs []float64, cols [][]bspline.Value, dims int) error {
	for j, x := range xs {
		row := []string{strconv.FormatFloat(x, 'g', 6, 64)}
		for _, col := range cols {
			row = append(row, formatValue(col[j], dims))
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}

func newSVGCmd() *cobra.Command {
	var (
		accuracy float64
		padding  float64
		output   string
		watch    bool
	)
	cmd := &cobra.Command{
		Use:   "svg FILE",
		Short: "Plot a one- or two-dimensional spline as an SVG document",
		Long: `Plot a spline as an SVG document. Two-dimensional splines are drawn as
plane curves, one-dimensional splines as the graph of the function over the
valid domain. The curve is approximated by cubic Béziers.

With --watch, the document is written to --output again whenever FILE
changes, until the command is interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(accuracy > 0) {
				return fmt.Errorf("--accuracy must be positive, got %g", accuracy)
			}
			if watch && output == "" {
				return errors.New("--watch requires --output")
			}
			render := func() error {
				b, err := load(args[0])
				if err != nil {
					return err
				}
				p, err := b.Planar()
				if err != nil {
					return err
				}
				path := p.Path(accuracy)
				slog.Debug("fitted path", "elements", len(path), "accuracy", accuracy)

				var buf bytes.Buffer
				if err := writeSVG(&buf, path, p.BoundingBox(padding)); err != nil {
					return err
				}
				if output == "" {
					_, err := buf.WriteTo(cmd.OutOrStdout())
					return err
				}
				return os.WriteFile(output, buf.Bytes(), 0o644)
			}
			if watch {
				return watchSpline(cmd.Context(), args[0], render)
			}
			return render()
		},
	}
	cmd.Flags().Float64Var(&accuracy, "accuracy", 1e-3, "Maximum distance between the spline and its approximation")
	cmd.Flags().Float64Var(&padding, "padding", 0.1, "Padding around the curve, as a fraction of its size")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the document to this file instead of stdout")
	cmd.Flags().BoolVar(&watch, "watch", false, "Render again whenever the spline file changes")
	return cmd
}

// writeSVG writes path as an SVG document showing box. The y axis points up.
func writeSVG(w io.Writer, path curve.BezPath, box curve.Rect) error {
	if box.X1-box.X0 == 0 {
		box.X0, box.X1 = box.X0-0.5, box.X1+0.5
	}
	if box.Y1-box.Y0 == 0 {
		box.Y0, box.Y1 = box.Y0-0.5, box.Y1+0.5
	}
	width, height := box.X1-box.X0, box.Y1-box.Y0
	stroke := max(width, height) / 200

	fmt.Fprintf(w, "<svg viewBox=\"%g %g %g %g\" xmlns=\"http://www.w3.org/2000/svg\">\n", box.X0, -box.Y1, width, height)
	fmt.Fprint(w, `<path transform="scale(1 -1)" fill="none" stroke="black" stroke-width="`)
	fmt.Fprintf(w, "%g\" d=\"", stroke)
	if err := curve.WriteSVG(w, slices.Values(path), curve.SVGOptions{MaxPrecision: 6}); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "\" />\n</svg>\n")
	return err
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Describe a spline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "degree: %d\n", b.Degree())
			fmt.Fprintf(w, "order: %d\n", b.Order())
			fmt.Fprintf(w, "dimensions: %d\n", b.Dimensions())
			fmt.Fprintf(w, "control points: %d\n", len(b.ControlPoints()))
			fmt.Fprintf(w, "knots: %v\n", []float64(b.Knots()))
			fmt.Fprintf(w, "domain: %v\n", b.Domain())
			fmt.Fprintf(w, "terms: %d\n", len(b.Basis()))
			fmt.Fprintf(w, "flattened: %t\n", b.Flattened())
			return nil
		},
	}
}
