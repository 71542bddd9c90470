package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSections(t *testing.T) {
	sections, err := parseSections([]string{"hero=0.5", "cards"})
	require.NoError(t, err)
	assert.Equal(t, []section{
		{id: "hero", ratio: 0.5, visible: true},
		{id: "cards"},
	}, sections)

	_, err = parseSections([]string{"hero=most"})
	assert.Error(t, err)
}

func TestBuildPageState(t *testing.T) {
	sections, err := parseSections([]string{"hero=0.5", "cards=0.05", "footer"})
	require.NoError(t, err)

	state := buildPageState(pageRequest{
		menuOpen: true,
		modals:   []string{"login", "help"},
		open:     []string{"login", "help", "missing"},
		close:    []string{"help"},
		sections: sections,
	})

	assert.Equal(t, "menu-open modal-open", state.BodyClass)
	assert.Equal(t, navState{Class: "main-nav active", AriaExpanded: "true"}, state.Nav)
	assert.Equal(t, []modalState{
		{ID: "login", Display: "block"},
		{ID: "help", Display: "none"},
	}, state.Modals)
	assert.Equal(t, []string{"login"}, state.OpenModals)
	assert.Equal(t, []modalEvent{
		{Name: "modal:open", ID: "login"},
		{Name: "modal:open", ID: "help"},
		{Name: "modal:close", ID: "help"},
	}, state.Events)
	assert.Equal(t, []sectionState{
		{ID: "hero", Class: "animate-on-scroll animated", Delay: "0s"},
		{ID: "cards", Class: "animate-on-scroll", Delay: "100ms"},
		{ID: "footer", Class: "animate-on-scroll", Delay: "200ms"},
	}, state.Sections)
	assert.Equal(t, 2, state.Observing)
}

func TestBuildPageState_ClosedAndNoObserver(t *testing.T) {
	sections, err := parseSections([]string{"hero", "cards"})
	require.NoError(t, err)

	state := buildPageState(pageRequest{sections: sections, noObserver: true})

	assert.Empty(t, state.BodyClass)
	assert.Equal(t, navState{Class: "main-nav", AriaExpanded: "false"}, state.Nav)
	assert.Empty(t, state.Events)
	for _, s := range state.Sections {
		assert.Equal(t, "animate-on-scroll animated", s.Class, s.ID)
	}
	assert.Zero(t, state.Observing)
}

func TestBuildPageState_ClickOutsideClosesMenu(t *testing.T) {
	state := buildPageState(pageRequest{menuOpen: true, clickOutside: true})
	assert.Empty(t, state.BodyClass)
	assert.Equal(t, navState{Class: "main-nav", AriaExpanded: "false"}, state.Nav)
	assert.Empty(t, state.OpenModals)
}

func TestWritePageState(t *testing.T) {
	state := buildPageState(pageRequest{
		modals:   []string{"login"},
		open:     []string{"login"},
		sections: []section{{id: "hero", ratio: 1, visible: true}},
	})

	var buf bytes.Buffer
	require.NoError(t, writePageState(&buf, "plain", state))
	out := buf.String()
	assert.Contains(t, out, "body\tmodal-open\n")
	assert.Contains(t, out, "nav\tmain-nav (aria-expanded=false)\n")
	assert.Contains(t, out, "modal login\tblock\n")
	assert.Contains(t, out, "event\tmodal:open login\n")
	assert.Contains(t, out, "section hero\tanimate-on-scroll animated (delay 0s)\n")

	buf.Reset()
	require.NoError(t, writePageState(&buf, "json", state))
	assert.Contains(t, buf.String(), `"body_class": "modal-open"`)

	assert.Error(t, writePageState(&buf, "html", state))
}

func TestWriteTooltips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTooltips(&buf, "html", []string{"Upload a PDF", "<b>"}, true))
	assert.Contains(t, buf.String(), `<div class="tooltip show">Upload a PDF</div>`)
	assert.Contains(t, buf.String(), `&lt;b&gt;`)

	buf.Reset()
	require.NoError(t, writeTooltips(&buf, "plain", []string{"one", "two"}, false))
	assert.Equal(t, "one\ntwo\n", buf.String())

	buf.Reset()
	require.NoError(t, writeTooltips(&buf, "json", []string{"one"}, false))
	assert.Contains(t, buf.String(), `"shown": false`)
}
