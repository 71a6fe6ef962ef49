package frontend

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/roach88/iterstruct/internal/codegen"
	"github.com/roach88/iterstruct/internal/ir"
)

// DirectivePrefix starts a derivation directive comment.
const DirectivePrefix = "//iterstruct:derive"

// parseDirective parses the text following DirectivePrefix.
func parseDirective(text string) (ir.Request, error) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return ir.Request{}, fmt.Errorf("directive names no derivation")
	}

	req := ir.Request{Derivation: parts[0]}
	for _, kv := range parts[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" || value == "" {
			return req, fmt.Errorf("malformed option %q, want key=value", kv)
		}
		if req.Options == nil {
			req.Options = make(map[string]string)
		}
		if _, dup := req.Options[key]; dup {
			return req, fmt.Errorf("option %q given twice", key)
		}
		req.Options[key] = value
	}
	return req, codegen.CheckRequest(req)
}

// directives extracts the requests from doc. Comments that merely start
// with the prefix, like //iterstruct:derived, are ignored.
func directives(fset *token.FileSet, doc *ast.CommentGroup) ([]ir.Request, []directiveError) {
	if doc == nil {
		return nil, nil
	}
	var reqs []ir.Request
	var errs []directiveError
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		pos := fset.Position(c.Slash)
		req, err := parseDirective(rest)
		if err != nil {
			errs = append(errs, directiveError{derivation: req.Derivation, err: err, pos: pos})
			continue
		}
		req.Pos = pos
		reqs = append(reqs, req)
	}
	return reqs, errs
}

type directiveError struct {
	derivation string
	err        error
	pos        token.Position
}
