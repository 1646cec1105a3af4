package commentcount

import (
	"html"
	"strings"

	"github.com/goliatone/go-themehelpers/pkg/helpers"
)

// Name is the template name the helper registers under.
const Name = "comment_count"

// Hash keys accepted by the helper.
const (
	ArgEmpty    = "empty"
	ArgSingular = "singular"
	ArgPlural   = "plural"
	ArgAutowrap = "autowrap"
	ArgClass    = "class"
)

const (
	DefaultSingular = "comment"
	DefaultPlural   = "comments"
	DefaultTag      = "span"

	// AutowrapDisabled is the autowrap value that turns wrapping off.
	AutowrapDisabled = "false"
	// disabledTag is the inert element used when wrapping is off.
	disabledTag = "script"
)

const attrPrefix = "data-ghost-comment-count"

// Args are the resolved named arguments for one invocation. An empty
// Autowrap means the argument was not supplied.
type Args struct {
	Empty    string
	Singular string
	Plural   string
	Autowrap string
	Class    string
}

// DefaultArgs returns the values used for arguments a template omits.
func DefaultArgs() Args {
	return Args{
		Singular: DefaultSingular,
		Plural:   DefaultPlural,
	}
}

// ArgsFromHash resolves template arguments against DefaultArgs.
func ArgsFromHash(hash helpers.Hash) Args {
	return argsFromHash(hash, DefaultArgs())
}

func argsFromHash(hash helpers.Hash, defaults Args) Args {
	return Args{
		Empty:    hash.StringOr(ArgEmpty, defaults.Empty),
		Singular: hash.StringOr(ArgSingular, defaults.Singular),
		Plural:   hash.StringOr(ArgPlural, defaults.Plural),
		Autowrap: hash.StringOr(ArgAutowrap, defaults.Autowrap),
		Class:    hash.StringOr(ArgClass, defaults.Class),
	}
}

// ResolveTag maps the autowrap argument to the wrapping tag and the autowrap
// flag rendered into the markup. "false" disables wrapping and selects an
// inert script element, any other non-empty value names the tag, and an
// empty value falls back to span.
func ResolveTag(autowrap string) (tag string, autowrapFlag string) {
	switch {
	case autowrap == AutowrapDisabled:
		return disabledTag, "false"
	case autowrap != "":
		return autowrap, "true"
	default:
		return DefaultTag, "true"
	}
}

// Attribute is a single data attribute on the placeholder element.
type Attribute struct {
	Name  string
	Value string
}

// Attributes returns the placeholder's data attributes in render order.
func Attributes(id string, args Args) []Attribute {
	tag, autowrap := ResolveTag(args.Autowrap)
	return []Attribute{
		{Name: attrPrefix, Value: id},
		{Name: attrPrefix + "-empty", Value: args.Empty},
		{Name: attrPrefix + "-singular", Value: args.Singular},
		{Name: attrPrefix + "-plural", Value: args.Plural},
		{Name: attrPrefix + "-tag", Value: tag},
		{Name: attrPrefix + "-class-name", Value: args.Class},
		{Name: attrPrefix + "-autowrap", Value: autowrap},
	}
}

// Render produces the placeholder markup for the post identified by id.
func Render(id string, args Args) string {
	tag, _ := ResolveTag(args.Autowrap)
	element := elementName(tag)

	var builder strings.Builder
	builder.Grow(384 + len(id) + len(args.Empty) + len(args.Singular) + len(args.Plural) + len(args.Class))

	builder.WriteByte('<')
	builder.WriteString(element)
	for _, attr := range Attributes(id, args) {
		builder.WriteByte(' ')
		builder.WriteString(attr.Name)
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(attr.Value))
		builder.WriteByte('"')
	}
	builder.WriteString(">\n</")
	builder.WriteString(element)
	builder.WriteByte('>')
	return builder.String()
}

// elementName guards the markup against autowrap values that are not plain
// tag names. The data attribute still carries the value verbatim (escaped).
func elementName(tag string) string {
	if !validTagName(tag) {
		return DefaultTag
	}
	return tag
}

func validTagName(tag string) bool {
	if tag == "" {
		return false
	}
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}
