package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-datatable/internal/prompt"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})
	version, commit, date = "1.2.3", "abcdef1", "2026-10-18"

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	for _, want := range []string{"1.2.3", "abcdef1", "2026-10-18"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestRenderCommand_Defaults(t *testing.T) {
	out, err := execute(t, "render", filepath.Join("testdata", "products.json"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<h2 class="datatable-title">Products</h2>`,
		`<td class="datatable-cell">12.50 EUR</td>`,
		`<td class="datatable-cell"><em>new</em></td>`,
		`<span aria-current="page">2</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("html values must be sanitized:\n%s", out)
	}
}

func TestRenderCommand_ConfigSelectionAndTemplates(t *testing.T) {
	out, err := execute(t,
		"render", filepath.Join("testdata", "products.json"),
		"--config", filepath.Join("testdata", "datatable.yaml"),
		"--templates", filepath.Join("testdata", "themes"),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<td class="money">12.50 EUR</td>`,
		`<table class="table striped">`,
		`href="/products?`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderCommand_ThemesAndOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "table.html")
	out, err := execute(t, "render", filepath.Join("testdata", "products.json"), "--theme", "compact", "--stylesheet", "--output", target)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("stdout must stay empty with --output, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	html := string(data)
	if !strings.HasPrefix(html, "<style>") || !strings.Contains(html, "datatable-table--compact") {
		t.Fatalf("expected compact table with stylesheet:\n%s", html)
	}

	if _, err := execute(t, "render", filepath.Join("testdata", "products.json"), "--theme", "compact", "--only"); err == nil {
		t.Fatalf("compact alone lacks the data_table block and must fail")
	}
}

type scriptedDriver struct {
	multi   []int
	confirm bool
}

func (d scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return d.confirm, nil
}

func (d scriptedDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (d scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return d.multi, nil
}

func TestRenderCommand_Interactive(t *testing.T) {
	original := newPromptDriver
	t.Cleanup(func() { newPromptDriver = original })
	newPromptDriver = func() prompt.Driver {
		// available themes are sorted: base, compact
		return scriptedDriver{multi: []int{1}, confirm: false}
	}

	out, err := execute(t, "render", filepath.Join("testdata", "products.json"), "--interactive")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "datatable-table--compact") {
		t.Fatalf("expected the picked theme to be stacked:\n%s", out)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	if _, err := execute(t, "render", filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatalf("expected missing fixture error")
	}
	if _, err := execute(t, "render", filepath.Join("testdata", "products.json"), "--renderer", "nope"); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
	if _, err := execute(t, "render"); err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestExplainCommand(t *testing.T) {
	out, err := execute(t, "explain", filepath.Join("testdata", "products.json"), "--theme", "compact")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.Contains(out, "themes: base, compact") {
		t.Fatalf("missing theme stack:\n%s", out)
	}

	rows := map[string][]string{}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			rows[fields[0]+"/"+fields[1]] = fields
		}
	}
	checks := []struct {
		key   string
		block string
		theme string
	}{
		{"price/header", "column_text_header", "compact"},
		{"price/value", "column_value", "base"},
		{"notes/value", "column_html_value", "base"},
		{"create/control", "action_button_control", "base"},
	}
	for _, check := range checks {
		fields, ok := rows[check.key]
		if !ok || len(fields) < 4 {
			t.Fatalf("missing %s in:\n%s", check.key, out)
		}
		if fields[2] != check.block || fields[3] != check.theme {
			t.Fatalf("%s: want %s from %s, got %v", check.key, check.block, check.theme, fields)
		}
	}

	fragments := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		if fields := strings.Fields(line); len(fields) == 2 {
			fragments[fields[0]] = fields[1]
		}
	}
	if fragments["data_table_table"] != "compact" || fragments["data_table"] != "base" {
		t.Fatalf("unexpected fragment winners: %v", fragments)
	}
}
