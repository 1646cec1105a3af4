package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-themehelpers/internal/prompt"
)

func TestRunFlags(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "defaults",
			args: []string{"-id", "post-id"},
			want: `<span data-ghost-comment-count="post-id" data-ghost-comment-count-empty="" data-ghost-comment-count-singular="comment" data-ghost-comment-count-plural="comments" data-ghost-comment-count-tag="span" data-ghost-comment-count-class-name="" data-ghost-comment-count-autowrap="true">` + "\n</span>\n",
		},
		{
			name: "autowrap disabled",
			args: []string{"-id", "post-id", "-empty", "No comments", "-autowrap", "false"},
			want: `<script data-ghost-comment-count="post-id" data-ghost-comment-count-empty="No comments" data-ghost-comment-count-singular="comment" data-ghost-comment-count-plural="comments" data-ghost-comment-count-tag="script" data-ghost-comment-count-class-name="" data-ghost-comment-count-autowrap="false">` + "\n</script>\n",
		},
		{
			name: "template",
			args: []string{"-id", "post-id", "-template", `<p>{% comment_count autowrap="div" class="custom" %}</p>`},
			want: `<p><div data-ghost-comment-count="post-id" data-ghost-comment-count-empty="" data-ghost-comment-count-singular="comment" data-ghost-comment-count-plural="comments" data-ghost-comment-count-tag="div" data-ghost-comment-count-class-name="custom" data-ghost-comment-count-autowrap="true">` + "\n</div></p>\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout bytes.Buffer
			if err := run(context.Background(), tc.args, &stdout, nil); err != nil {
				t.Fatalf("run: %v", err)
			}
			if stdout.String() != tc.want {
				t.Fatalf("output mismatch\nwant: %q\n got: %q", tc.want, stdout.String())
			}
		})
	}
}

func TestRunOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placeholder.html")
	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-id", "p1", "-output", path}, &stdout, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), `<span data-ghost-comment-count="p1"`) {
		t.Fatalf("unexpected file contents %q", data)
	}
	if !strings.Contains(stdout.String(), path) {
		t.Fatalf("expected path in stdout, got %q", stdout.String())
	}
}

func TestRunInteractive(t *testing.T) {
	driver := &fakeDriver{
		inputs:   []string{"post-id", "No comments", "comment", "comments"},
		confirms: []bool{false},
	}
	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-interactive"}, &stdout, driver); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := `<script data-ghost-comment-count="post-id" data-ghost-comment-count-empty="No comments" data-ghost-comment-count-singular="comment" data-ghost-comment-count-plural="comments" data-ghost-comment-count-tag="script" data-ghost-comment-count-class-name="" data-ghost-comment-count-autowrap="false">` + "\n</script>\n"
	if stdout.String() != want {
		t.Fatalf("output mismatch\nwant: %q\n got: %q", want, stdout.String())
	}
}

func TestRunBadFlag(t *testing.T) {
	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-nope"}, &stdout, nil); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

type fakeDriver struct {
	inputs   []string
	confirms []bool
}

func (d *fakeDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return cfg.Default, nil
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	return value, nil
}

func (d *fakeDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return cfg.Default, nil
	}
	value := d.confirms[0]
	d.confirms = d.confirms[1:]
	return value, nil
}

func (d *fakeDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (d *fakeDriver) Info(context.Context, string) error { return nil }
