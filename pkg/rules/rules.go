// Package rules loads user-supplied shape inference rules from a Lisp
// script. It wraps zygomys in a sandboxed environment and produces an
// ordered rule list that extends the built-in shape table.
package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/sapiens-modding/partforge/pkg/scene"
	"github.com/sapiens-modding/partforge/pkg/shape"
)

// DefaultScriptName is the rule script looked up next to the project
// configuration.
const DefaultScriptName = "rules.zy"

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in the rule script.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for rule script evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a rule script and returns the rules it declared, in
// declaration order. Each call creates a fresh zygomys sandbox.
//
// Return semantics:
//   - On success: returns rules + nil errors + nil error
//   - On parse/eval failure: returns nil rules + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) ([]shape.Rule, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		rules, evalErrs, err := e.evaluate(source)
		ch <- evalResult{rules: rules, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) ([]shape.Rule, []EvalError, error) {
	// An empty script is a valid program that declares no rules.
	if strings.TrimSpace(source) == "" {
		return nil, nil, nil
	}

	// Sandbox mode prevents the script from accessing the filesystem
	// or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	var declared []shape.Rule
	registerBuiltins(env, &declared)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return declared, nil, nil
}

// registerBuiltins installs the rule declaration builtins into a zygomys
// environment. Declared rules are appended to out during evaluation.
//
// The script surface is a single form:
//
//	(shape-rule "prefix" "place" "cube")
//	(shape-rule "contains" "radius" "sphere")
//
// Note: registered as "shape_rule" because zygomys does not support
// hyphens in identifiers. The preprocessor converts shape-rule to
// shape_rule in the source.
func registerBuiltins(env *zygo.Zlisp, out *[]shape.Rule) {
	env.AddFunction("shape_rule", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("shape-rule requires 3 arguments (kind pattern shape), got %d", len(args))
		}

		kind, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape-rule: kind: %w", err)
		}
		pattern, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape-rule: pattern: %w", err)
		}
		if pattern == "" {
			return zygo.SexpNull, fmt.Errorf("shape-rule: pattern must not be empty")
		}
		shapeName, err := toString(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape-rule: shape: %w", err)
		}

		dt, err := toDisplayType(shapeName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape-rule: %w", err)
		}

		switch kind {
		case "prefix":
			*out = append(*out, shape.Prefix(pattern, dt))
		case "contains":
			*out = append(*out, shape.Contains(pattern, dt))
		default:
			return zygo.SexpNull, fmt.Errorf("shape-rule: invalid kind %q, expected prefix or contains", kind)
		}

		return zygo.SexpNull, nil
	})
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toDisplayType maps a shape name from the script to a display type.
func toDisplayType(name string) (scene.DisplayType, error) {
	switch strings.ToLower(name) {
	case "cube", "box":
		return scene.DisplayCube, nil
	case "sphere":
		return scene.DisplaySphere, nil
	case "axes", "plain_axes":
		return scene.DisplayAxes, nil
	}
	return 0, fmt.Errorf("invalid shape %q, expected cube, sphere, or axes", name)
}

// preprocessSource transforms the rule script before passing it to
// zygomys. Hyphens between identifier characters become underscores
// (zygomys reads them as subtraction) and ; line comments become //
// comments. Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source))
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line number information when the message carries it.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

// Load reads a rule script from path and extends base with its rules,
// ahead of base's own so script rules win. A missing script is not an
// error; the base table is returned unchanged. Script eval errors are
// returned joined, since a half-applied rule set would silently change
// which shapes placeholders get.
func Load(path string, base *shape.Table) (*shape.Table, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rule script: %w", err)
	}

	declared, evalErrs, err := NewEngine().Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, 0, len(evalErrs))
		for _, e := range evalErrs {
			errs = append(errs, fmt.Errorf("%s: %w", path, e))
		}
		return nil, errors.Join(errs...)
	}
	if len(declared) == 0 {
		return base, nil
	}
	return base.Extend(declared...)
}
