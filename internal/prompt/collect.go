package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-themehelpers/pkg/helpers"
	"github.com/goliatone/go-themehelpers/pkg/helpers/commentcount"
)

const customTag = "other…"

var wrapperTags = []string{"span", "div", "p", "a", customTag}

// CollectHash asks for each comment_count argument and returns the hash a
// template would pass. Answers equal to the helper defaults are left out so
// the hash only carries what a theme author would have to write.
func CollectHash(ctx context.Context, driver Driver) (helpers.Hash, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is nil")
	}
	hash := helpers.Hash{}

	wrap, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Wrap the count in an element?",
		Default: true,
		Help:    "Without a wrapper the placeholder is replaced by the bare count text.",
	})
	if err != nil {
		return nil, err
	}

	if !wrap {
		hash[commentcount.ArgAutowrap] = commentcount.AutowrapDisabled
	} else {
		tag, err := collectTag(ctx, driver)
		if err != nil {
			return nil, err
		}
		if tag != commentcount.DefaultTag {
			hash[commentcount.ArgAutowrap] = tag
		}
	}

	fields := []struct {
		key      string
		message  string
		fallback string
	}{
		{key: commentcount.ArgEmpty, message: "Text when there are no comments", fallback: ""},
		{key: commentcount.ArgSingular, message: "Word for one comment", fallback: commentcount.DefaultSingular},
		{key: commentcount.ArgPlural, message: "Word for several comments", fallback: commentcount.DefaultPlural},
		{key: commentcount.ArgClass, message: "CSS class for the wrapper", fallback: ""},
	}
	for _, field := range fields {
		if field.key == commentcount.ArgClass && !wrap {
			continue
		}
		value, err := driver.Input(ctx, InputConfig{Message: field.message, Default: field.fallback})
		if err != nil {
			return nil, err
		}
		if value != field.fallback {
			hash[field.key] = value
		}
	}
	return hash, nil
}

func collectTag(ctx context.Context, driver Driver) (string, error) {
	idx, err := driver.Select(ctx, SelectConfig{
		Message: "Wrapper element",
		Options: wrapperTags,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(wrapperTags) {
		return "", fmt.Errorf("prompt: unexpected selection %d", idx)
	}
	if wrapperTags[idx] != customTag {
		return wrapperTags[idx], nil
	}

	tag, err := driver.Input(ctx, InputConfig{
		Message: "Element name",
		Validator: func(value string) error {
			value = strings.TrimSpace(value)
			if value == "" || value == commentcount.AutowrapDisabled {
				return fmt.Errorf("enter an element name such as span")
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tag), nil
}
