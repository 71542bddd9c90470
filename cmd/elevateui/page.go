package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/elevateui/internal/render"
)

var pageOpts struct {
	format string

	// date
	layout string

	// nav
	path     string
	menuOpen bool

	// chart
	height     int
	barWidth   int
	barColor   string
	noTooltips bool
	xLabel     string
	yLabel     string
}

var filesizeCmd = &cobra.Command{
	Use:   "filesize <bytes|file>...",
	Short: "Format byte counts the way upload previews show them",
	Long: `Format byte counts in 1024-based units with up to two decimals.

Arguments that are not integers are treated as file paths and their size is
read from disk. With --format html the upload preview markup is printed.

Examples:
  elevateui filesize 1536            # 1.5 KB
  elevateui filesize resume.pdf --format html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFilesize,
}

var dateCmd = &cobra.Command{
	Use:   "date <date>...",
	Short: "Format dates the way pages show them",
	Long: `Format ISO dates or RFC 3339 timestamps with a Go reference layout.

The layout defaults to the [date] layout from the config file, which is
"Mon, Jan 2" unless changed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDate,
}

var navCmd = &cobra.Command{
	Use:   "nav --path <path> <href[=label]>...",
	Short: "Show which navigation links are active for a path",
	Long: `Mark navigation links active for the current path.

A link is active when its href equals the path, or when the path starts with
it for any href other than "/".

Example:
  elevateui nav --path /career/resume /=Home /career=Career /study=Study`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNav,
}

var chartCmd = &cobra.Command{
	Use:   "chart <label=value>...",
	Short: "Lay out a bar chart",
	Long: `Scale bars so the largest value fills the chart height.

Defaults come from the [chart] section of the config file; flags override
them. With --format html the chart markup is printed.

Example:
  elevateui chart Mon=2 Tue=4.5 Wed=1 --y-label Hours`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChart,
}

func init() {
	for _, c := range []*cobra.Command{filesizeCmd, dateCmd, navCmd, chartCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&pageOpts.format, "format", "f", "plain",
			"Output format (plain, json, yaml, html)")
	}

	dateCmd.Flags().StringVar(&pageOpts.layout, "layout", "",
		"Go reference layout (default from config)")

	navCmd.Flags().StringVar(&pageOpts.path, "path", "/",
		"Current page path")
	navCmd.Flags().BoolVar(&pageOpts.menuOpen, "menu-open", false,
		"Render with the mobile menu open")

	chartCmd.Flags().IntVar(&pageOpts.height, "height", 0,
		"Chart height in pixels (default from config)")
	chartCmd.Flags().IntVar(&pageOpts.barWidth, "bar-width", 0,
		"Bar width in pixels (default from config)")
	chartCmd.Flags().StringVar(&pageOpts.barColor, "color", "",
		"Bar color (default from config)")
	chartCmd.Flags().BoolVar(&pageOpts.noTooltips, "no-tooltips", false,
		"Omit bar tooltips")
	chartCmd.Flags().StringVar(&pageOpts.xLabel, "x-label", "",
		"X axis label")
	chartCmd.Flags().StringVar(&pageOpts.yLabel, "y-label", "",
		"Y axis label")
}

type fileSize struct {
	Name      string `json:"name" yaml:"name"`
	Bytes     int64  `json:"bytes" yaml:"bytes"`
	Formatted string `json:"formatted" yaml:"formatted"`
}

func runFilesize(cmd *cobra.Command, args []string) error {
	sizes := make([]fileSize, 0, len(args))
	for _, arg := range args {
		if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
			sizes = append(sizes, fileSize{Name: arg, Bytes: n, Formatted: render.FormatFileSize(n)})
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		sizes = append(sizes, fileSize{
			Name:      filepath.Base(arg),
			Bytes:     info.Size(),
			Formatted: render.FormatFileSize(info.Size()),
		})
	}

	w := cmd.OutOrStdout()
	if done, err := encodeStructured(w, pageOpts.format, sizes); done {
		return err
	}

	for _, s := range sizes {
		if pageOpts.format == "html" {
			if err := render.FilePreview(w, s.Name, s.Bytes); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(w, s.Formatted)
	}
	return nil
}

type formattedDate struct {
	Input     string `json:"input" yaml:"input"`
	Formatted string `json:"formatted" yaml:"formatted"`
}

func runDate(cmd *cobra.Command, args []string) error {
	layout := pageOpts.layout
	if layout == "" {
		layout = getConfig().Date.Layout
	}

	dates := make([]formattedDate, 0, len(args))
	for _, arg := range args {
		s, err := render.FormatDate(arg, layout)
		if err != nil {
			return err
		}
		dates = append(dates, formattedDate{Input: arg, Formatted: s})
	}

	w := cmd.OutOrStdout()
	if done, err := encodeStructured(w, pageOpts.format, dates); done {
		return err
	}
	for _, d := range dates {
		fmt.Fprintln(w, d.Formatted)
	}
	return nil
}

// parseNavLinks accepts "href" or "href=label".
func parseNavLinks(args []string) []render.NavLink {
	links := make([]render.NavLink, 0, len(args))
	for _, arg := range args {
		href, label, ok := strings.Cut(arg, "=")
		if !ok {
			label = href
		}
		links = append(links, render.NavLink{Href: href, Label: label})
	}
	return links
}

func runNav(cmd *cobra.Command, args []string) error {
	links := parseNavLinks(args)

	w := cmd.OutOrStdout()
	if done, err := encodeStructured(w, pageOpts.format, render.MarkActive(pageOpts.path, links)); done {
		return err
	}
	var menu render.Menu
	if pageOpts.menuOpen {
		menu.Toggle()
	}
	if pageOpts.format == "html" {
		return render.Nav(w, pageOpts.path, links, &menu)
	}
	if c := menu.BodyClass(); c != "" {
		fmt.Fprintf(w, "body\t%s\n", c)
	}

	for _, l := range render.MarkActive(pageOpts.path, links) {
		marker := " "
		if l.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\n", marker, l.Href, l.Label)
	}
	return nil
}

// parsePoints accepts "label=value" arguments.
func parsePoints(args []string) ([]render.Point, error) {
	points := make([]render.Point, 0, len(args))
	for _, arg := range args {
		x, y, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid point %q (want label=value)", arg)
		}
		v, err := strconv.ParseFloat(y, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", arg, err)
		}
		points = append(points, render.Point{X: x, Y: v})
	}
	return points, nil
}

func runChart(cmd *cobra.Command, args []string) error {
	points, err := parsePoints(args)
	if err != nil {
		return err
	}

	override := render.ChartOptions{
		Height:   pageOpts.height,
		BarWidth: pageOpts.barWidth,
		BarColor: pageOpts.barColor,
		XLabel:   pageOpts.xLabel,
		YLabel:   pageOpts.yLabel,
	}
	if pageOpts.noTooltips {
		off := false
		override.ShowTooltips = &off
	}
	chart := render.BuildChart(points, getConfig().ChartOptions().Merge(override))

	w := cmd.OutOrStdout()
	if done, err := encodeStructured(w, pageOpts.format, chart); done {
		return err
	}
	if pageOpts.format == "html" {
		return render.RenderChart(w, chart)
	}

	for _, b := range chart.Bars {
		fmt.Fprintf(w, "%-12s %6.1fpx  %s\n", b.X, b.Height, b.Label())
	}
	return nil
}
