package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/elevateui/internal/render"
)

var stateOpts struct {
	menuOpen     bool
	clickOutside bool
	modals       []string
	open         []string
	close        []string
	sections     []string
	noObserver   bool
	show         bool
}

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Show body, menu, modal and scroll reveal state for a page",
	Long: `Replay page interactions and print the resulting display state.

Modals are registered with --modal, then opened and closed in flag order.
Sections are given as id or id=ratio; a section animates once its visible
ratio reaches 0.1, and every section animates at once with --no-observer.

Example:
  elevateui page --menu-open --modal login --open login --section hero=0.5 --section cards`,
	Args: cobra.NoArgs,
	RunE: runPage,
}

var tooltipCmd = &cobra.Command{
	Use:   "tooltip <text>...",
	Short: "Render tooltips",
	Long: `Render tooltip elements for the given texts.

With --show the tooltips carry the class applied on hover.

Example:
  elevateui tooltip "Upload a PDF" --show --format html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTooltip,
}

func init() {
	for _, c := range []*cobra.Command{pageCmd, tooltipCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&pageOpts.format, "format", "f", "plain",
			"Output format (plain, json, yaml, html)")
	}

	pageCmd.Flags().BoolVar(&stateOpts.menuOpen, "menu-open", false,
		"Toggle the mobile menu open")
	pageCmd.Flags().BoolVar(&stateOpts.clickOutside, "click-outside", false,
		"Click outside the menu after toggling it")
	pageCmd.Flags().StringSliceVar(&stateOpts.modals, "modal", nil,
		"Register a modal id (repeatable)")
	pageCmd.Flags().StringSliceVar(&stateOpts.open, "open", nil,
		"Open a modal (repeatable)")
	pageCmd.Flags().StringSliceVar(&stateOpts.close, "close", nil,
		"Close a modal (repeatable)")
	pageCmd.Flags().StringArrayVar(&stateOpts.sections, "section", nil,
		"Section as id or id=ratio (repeatable)")
	pageCmd.Flags().BoolVar(&stateOpts.noObserver, "no-observer", false,
		"Animate all sections at once")

	tooltipCmd.Flags().BoolVar(&stateOpts.show, "show", false,
		"Render tooltips in their hover state")
}

type navState struct {
	Class        string `json:"class" yaml:"class"`
	AriaExpanded string `json:"aria_expanded" yaml:"aria_expanded"`
}

type modalState struct {
	ID      string `json:"id" yaml:"id"`
	Display string `json:"display" yaml:"display"`
}

type modalEvent struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
}

type sectionState struct {
	ID    string `json:"id" yaml:"id"`
	Class string `json:"class" yaml:"class"`
	Delay string `json:"delay" yaml:"delay"`
}

type pageState struct {
	BodyClass  string         `json:"body_class" yaml:"body_class"`
	Nav        navState       `json:"nav" yaml:"nav"`
	Modals     []modalState   `json:"modals" yaml:"modals"`
	OpenModals []string       `json:"open_modals" yaml:"open_modals"`
	Events     []modalEvent   `json:"events" yaml:"events"`
	Sections   []sectionState `json:"sections" yaml:"sections"`
	Observing  int            `json:"observing" yaml:"observing"`
}

// pageRequest lists the interactions to replay, in order: menu, modals,
// then sections.
type pageRequest struct {
	menuOpen     bool
	clickOutside bool
	modals       []string
	open         []string
	close        []string
	sections     []section
	noObserver   bool
}

type section struct {
	id      string
	ratio   float64
	visible bool
}

// parseSections accepts "id" or "id=ratio".
func parseSections(args []string) ([]section, error) {
	out := make([]section, 0, len(args))
	for _, arg := range args {
		id, r, ok := strings.Cut(arg, "=")
		s := section{id: id}
		if ok {
			ratio, err := strconv.ParseFloat(r, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid ratio in %q: %w", arg, err)
			}
			s.ratio, s.visible = ratio, true
		}
		out = append(out, s)
	}
	return out, nil
}

// buildPageState replays the interactions against fresh page collaborators.
func buildPageState(req pageRequest) pageState {
	var menu render.Menu
	if req.menuOpen {
		menu.Toggle()
	}
	if req.clickOutside && !menu.ClickOutside() {
		slog.Debug("menu already closed")
	}

	modals := render.NewModals(req.modals...)
	var events []modalEvent
	modals.OnChange(func(ev render.ModalEvent) {
		events = append(events, modalEvent{Name: ev.Name, ID: ev.ID})
	})
	for _, id := range req.open {
		if !modals.Open(id) {
			slog.Debug("modal not opened", "id", id)
		}
	}
	for _, id := range req.close {
		modals.Close(id)
	}

	ids := make([]string, len(req.sections))
	for i, s := range req.sections {
		ids[i] = s.id
	}
	reveal := render.NewReveal(ids...)
	if req.noObserver {
		reveal.RevealAll()
	} else {
		for _, s := range req.sections {
			if s.visible {
				reveal.Intersect(s.id, s.ratio)
			}
		}
	}

	state := pageState{
		Nav:        navState{Class: menu.NavClass(), AriaExpanded: menu.AriaExpanded()},
		OpenModals: modals.OpenIDs(),
		Events:     events,
		Observing:  reveal.Observing(),
	}

	var body []string
	for _, c := range []string{menu.BodyClass(), modals.BodyClass()} {
		if c != "" {
			body = append(body, c)
		}
	}
	state.BodyClass = strings.Join(body, " ")

	for _, id := range req.modals {
		state.Modals = append(state.Modals, modalState{ID: id, Display: modals.Display(id)})
	}

	delays := render.AnimationDelays(len(req.sections))
	for i, s := range req.sections {
		state.Sections = append(state.Sections, sectionState{
			ID:    s.id,
			Class: reveal.Class(s.id),
			Delay: delays[i].String(),
		})
	}
	return state
}

func runPage(cmd *cobra.Command, _ []string) error {
	sections, err := parseSections(stateOpts.sections)
	if err != nil {
		return err
	}
	state := buildPageState(pageRequest{
		menuOpen:     stateOpts.menuOpen,
		clickOutside: stateOpts.clickOutside,
		modals:       stateOpts.modals,
		open:         stateOpts.open,
		close:        stateOpts.close,
		sections:     sections,
		noObserver:   stateOpts.noObserver,
	})
	return writePageState(cmd.OutOrStdout(), pageOpts.format, state)
}

func writePageState(w io.Writer, format string, state pageState) error {
	if done, err := encodeStructured(w, format, state); done {
		return err
	}
	if format == "html" {
		return fmt.Errorf("page state has no html form (want plain, json or yaml)")
	}

	fmt.Fprintf(w, "body\t%s\n", state.BodyClass)
	fmt.Fprintf(w, "nav\t%s (aria-expanded=%s)\n", state.Nav.Class, state.Nav.AriaExpanded)
	for _, m := range state.Modals {
		fmt.Fprintf(w, "modal %s\t%s\n", m.ID, m.Display)
	}
	for _, ev := range state.Events {
		fmt.Fprintf(w, "event\t%s %s\n", ev.Name, ev.ID)
	}
	for _, s := range state.Sections {
		fmt.Fprintf(w, "section %s\t%s (delay %s)\n", s.ID, s.Class, s.Delay)
	}
	fmt.Fprintf(w, "observing\t%d\n", state.Observing)
	return nil
}

type tooltip struct {
	Text  string `json:"text" yaml:"text"`
	Shown bool   `json:"shown" yaml:"shown"`
}

func runTooltip(cmd *cobra.Command, args []string) error {
	return writeTooltips(cmd.OutOrStdout(), pageOpts.format, args, stateOpts.show)
}

func writeTooltips(w io.Writer, format string, texts []string, shown bool) error {
	tips := make([]tooltip, 0, len(texts))
	for _, text := range texts {
		tips = append(tips, tooltip{Text: text, Shown: shown})
	}
	if done, err := encodeStructured(w, format, tips); done {
		return err
	}

	for _, tip := range tips {
		if format == "html" {
			if err := render.Tooltip(w, tip.Text, tip.Shown); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(w, tip.Text)
	}
	return nil
}
