package gotemplate

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-themehelpers/pkg/helpers"
)

// helperRegistryKey is the global context key under which an engine publishes
// its helper registry for helper tags to resolve at execution time.
const helperRegistryKey = "themehelpers_registry"

// idKey is the context key a helper tag reads the current post id from.
const idKey = "id"

var (
	helperTagsMu sync.Mutex
	helperTags   = map[string]struct{}{}
)

// registerHelperTag installs a pongo2 tag for name. pongo2 tags are process
// wide, so the tag only records the name and looks the helper up in the
// executing engine's registry.
func registerHelperTag(name string) error {
	helperTagsMu.Lock()
	defer helperTagsMu.Unlock()

	if _, ok := helperTags[name]; ok {
		return nil
	}
	if err := pongo2.RegisterTag(name, helperTagParser(name)); err != nil {
		return fmt.Errorf("tag %q conflicts with an existing pongo2 tag: %w", name, err)
	}
	helperTags[name] = struct{}{}
	return nil
}

type helperArg struct {
	key   string
	value pongo2.IEvaluator
}

type helperTagNode struct {
	name     string
	position *pongo2.Token
	item     pongo2.IEvaluator
	args     []helperArg
}

// helperTagParser accepts an optional leading context item followed by
// key=value pairs:
//
//	{% comment_count %}
//	{% comment_count post empty="No comments" autowrap="false" %}
func helperTagParser(name string) pongo2.TagParser {
	return func(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
		node := &helperTagNode{
			name:     name,
			position: start,
		}

		if arguments.Remaining() > 0 && !startsNamedArg(arguments) {
			item, err := arguments.ParseExpression()
			if err != nil {
				return nil, err
			}
			node.item = item
		}

		seen := make(map[string]struct{})
		for arguments.Remaining() > 0 {
			keyToken := arguments.MatchType(pongo2.TokenIdentifier)
			if keyToken == nil {
				return nil, arguments.Error(fmt.Sprintf("Tag '%s' expects key=value arguments.", name), nil)
			}
			if arguments.Match(pongo2.TokenSymbol, "=") == nil {
				return nil, arguments.Error("Expected '='.", nil)
			}
			if _, dup := seen[keyToken.Val]; dup {
				return nil, arguments.Error(fmt.Sprintf("Argument '%s' given more than once.", keyToken.Val), keyToken)
			}
			seen[keyToken.Val] = struct{}{}

			valueExpr, err := arguments.ParseExpression()
			if err != nil {
				return nil, err
			}
			node.args = append(node.args, helperArg{key: keyToken.Val, value: valueExpr})
		}

		return node, nil
	}
}

func startsNamedArg(arguments *pongo2.Parser) bool {
	return arguments.PeekType(pongo2.TokenIdentifier) != nil && arguments.PeekN(1, pongo2.TokenSymbol, "=") != nil
}

func (node *helperTagNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	registry, ok := ctx.Public[helperRegistryKey].(*helpers.Registry)
	if !ok || registry == nil {
		return ctx.Error(fmt.Sprintf("helper %q used by an engine without helpers", node.name), node.position)
	}
	helper, err := registry.Get(node.name)
	if err != nil {
		return ctx.OrigError(err, node.position)
	}

	hash := make(helpers.Hash, len(node.args))
	for _, arg := range node.args {
		value, perr := arg.value.Evaluate(ctx)
		if perr != nil {
			return perr
		}
		if text, present := hashValue(value); present {
			hash[arg.key] = text
		}
	}

	id, perr := node.resolveID(ctx)
	if perr != nil {
		return perr
	}

	if _, werr := writer.WriteString(helper.Render(helpers.Invocation{ID: id, Hash: hash})); werr != nil {
		return ctx.OrigError(werr, node.position)
	}
	return nil
}

func (node *helperTagNode) resolveID(ctx *pongo2.ExecutionContext) (string, *pongo2.Error) {
	if node.item != nil {
		value, err := node.item.Evaluate(ctx)
		if err != nil {
			return "", err
		}
		return idFrom(value.Interface()), nil
	}
	if value, ok := ctx.Private[idKey]; ok {
		return scalarString(value), nil
	}
	if value, ok := ctx.Public[idKey]; ok {
		return scalarString(value), nil
	}
	return "", nil
}

// hashValue converts an evaluated argument to its hash form. Undefined values
// count as omitted so defaults apply; booleans use "true"/"false" so that
// autowrap=false behaves like autowrap="false".
func hashValue(value *pongo2.Value) (string, bool) {
	if value == nil || value.IsNil() {
		return "", false
	}
	if value.IsBool() {
		return strconv.FormatBool(value.Bool()), true
	}
	return value.String(), true
}

// idFrom extracts a post id from a context item: either the id itself or a
// map/object carrying an "id" entry.
func idFrom(item any) string {
	switch v := unwrap(item).(type) {
	case nil:
		return ""
	case map[string]any:
		return scalarString(v[idKey])
	case pongo2.Context:
		return scalarString(v[idKey])
	case map[string]string:
		return v[idKey]
	case interface{ PostID() string }:
		return v.PostID()
	default:
		return scalarString(v)
	}
}

func scalarString(value any) string {
	switch v := unwrap(value).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func unwrap(value any) any {
	if v, ok := value.(*pongo2.Value); ok {
		if v == nil || v.IsNil() {
			return nil
		}
		return v.Interface()
	}
	return value
}
