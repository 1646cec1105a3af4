package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	themehelpers "github.com/goliatone/go-themehelpers"
	"github.com/goliatone/go-themehelpers/internal/prompt"
	"github.com/goliatone/go-themehelpers/pkg/helpers"
	"github.com/goliatone/go-themehelpers/pkg/helpers/commentcount"
	"github.com/goliatone/go-themehelpers/pkg/render/template/gotemplate"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, prompt.NewSurveyDriver(os.Stdout))
	if errors.Is(err, prompt.ErrAborted) {
		os.Exit(130)
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("themehelpers: %v", err)
	}
}

// hashFlags maps command-line flags to comment_count argument names.
var hashFlags = map[string]string{
	"empty":    commentcount.ArgEmpty,
	"singular": commentcount.ArgSingular,
	"plural":   commentcount.ArgPlural,
	"autowrap": commentcount.ArgAutowrap,
	"class":    commentcount.ArgClass,
}

func run(ctx context.Context, args []string, stdout io.Writer, driver prompt.Driver) error {
	flags := flag.NewFlagSet("themehelpers-cli", flag.ContinueOnError)
	flags.SetOutput(stdout)

	id := flags.String("id", "", "post id carried by the placeholder")
	flags.String("empty", "", "text shown when a post has no comments")
	flags.String("singular", commentcount.DefaultSingular, "word for a single comment")
	flags.String("plural", commentcount.DefaultPlural, "word for several comments")
	flags.String("autowrap", "", `wrapper element, or "false" for none`)
	flags.String("class", "", "CSS class for the wrapper")
	tpl := flags.String("template", "", "render a template string instead, with id in its context")
	interactive := flags.Bool("interactive", false, "prompt for each argument")
	output := flags.String("output", "", "output file (stdout if empty)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var (
		out string
		err error
	)
	switch {
	case *tpl != "":
		out, err = renderTemplate(*tpl, *id)
	case *interactive:
		out, err = renderInteractive(ctx, driver, *id)
	default:
		out = themehelpers.RenderCommentCount(*id, hashFromFlags(flags))
	}
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		_, err := fmt.Fprintf(stdout, "Placeholder written to %s\n", *output)
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

// hashFromFlags only includes flags given on the command line, so an omitted
// -autowrap stays absent rather than empty.
func hashFromFlags(flags *flag.FlagSet) helpers.Hash {
	hash := helpers.Hash{}
	flags.Visit(func(f *flag.Flag) {
		if key, ok := hashFlags[f.Name]; ok {
			hash[key] = f.Value.String()
		}
	})
	return hash
}

func renderTemplate(tpl, id string) (string, error) {
	engine, err := themehelpers.NewEngine(gotemplate.WithFS(themehelpers.EmbeddedTemplates()))
	if err != nil {
		return "", err
	}
	return engine.RenderString(tpl, map[string]any{"id": id})
}

func renderInteractive(ctx context.Context, driver prompt.Driver, id string) (string, error) {
	if id == "" {
		value, err := driver.Input(ctx, prompt.InputConfig{Message: "Post id"})
		if err != nil {
			return "", err
		}
		id = value
	}
	hash, err := prompt.CollectHash(ctx, driver)
	if err != nil {
		return "", err
	}
	return themehelpers.RenderCommentCount(id, hash), nil
}
