package engine

import (
	"fmt"
	"go/token"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/roach88/iterstruct/internal/codegen"
	"github.com/roach88/iterstruct/internal/compiler"
	"github.com/roach88/iterstruct/internal/frontend"
	"github.com/roach88/iterstruct/internal/ir"
)

// Engine runs generation passes. It holds configuration only and is safe
// for concurrent use.
type Engine struct {
	log    *zap.Logger
	output string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithOutput sets the generated file name. Default: codegen.DefaultOutput.
func WithOutput(name string) Option {
	return func(e *Engine) {
		e.output = name
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:    zap.NewNop(),
		output: codegen.DefaultOutput,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Output returns the generated file name.
func (e *Engine) Output() string { return e.output }

// Pass runs one generation pass over decl. It returns either an
// augmentation or a *compiler.Diagnostic, never both.
func (e *Engine) Pass(decl *ir.Declaration) (*codegen.Augmentation, error) {
	if len(decl.Requests) == 0 {
		return nil, compiler.NewDirectiveError(decl.Name, "", "no derivation requested", decl.Pos)
	}

	def, err := compiler.Validate(decl, decl.Requests[0].Derivation)
	if err != nil {
		return nil, err
	}

	frags := make([]*codegen.Fragment, 0, len(decl.Requests))
	for _, req := range decl.Requests {
		s, ok := codegen.Lookup(req.Derivation)
		if !ok {
			return nil, compiler.NewDirectiveError(decl.Name, req.Derivation,
				fmt.Sprintf("unknown derivation %q", req.Derivation), req.Pos)
		}
		if err := s.Check(req); err != nil {
			return nil, compiler.NewDirectiveError(decl.Name, req.Derivation, err.Error(), req.Pos)
		}
		frag, err := s.Synthesize(def, req)
		if err != nil {
			return nil, err
		}
		frags = append(frags, frag)
	}

	return codegen.Assemble(def, decl.Methods, frags)
}

// Result is the outcome of generating one package.
type Result struct {
	Package string `json:"package"`

	// Path is where the generated file belongs.
	Path string `json:"path"`

	// Augmentations are the successful passes in declaration order.
	Augmentations []*codegen.Augmentation `json:"augmentations"`

	// Diagnostics holds one entry per failed pass.
	Diagnostics []*compiler.Diagnostic `json:"diagnostics,omitempty"`

	// Code is the rendered file. It is nil when any pass failed or when
	// the package requests no derivations.
	Code []byte `json:"-"`

	// Fingerprint addresses the generation input; set on success.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// OK reports whether every pass succeeded.
func (r *Result) OK() bool { return len(r.Diagnostics) == 0 }

// Generate runs one pass per declaration of pkg and renders the package's
// generated file when all of them succeed.
//
// Diagnostics are reported in the Result. The returned error is reserved
// for failures of the generator itself.
func (e *Engine) Generate(pkg *frontend.Package) (*Result, error) {
	res := &Result{
		Package:     pkg.Name,
		Path:        filepath.Join(pkg.Dir, e.output),
		Diagnostics: append([]*compiler.Diagnostic(nil), pkg.Diagnostics...),
	}
	log := e.log.With(zap.String("package", pkg.Name))

	// Generated package-level names must not shadow, or be shadowed by,
	// anything the package already declares.
	scope := codegen.NewRegistry()
	for _, name := range pkg.Scope {
		_ = scope.Claim(codegen.PackageScope, name, "package "+pkg.Name, token.Position{})
	}

	entries := make([]ir.FingerprintEntry, 0, len(pkg.Decls))
	for _, decl := range pkg.Decls {
		aug, err := e.Pass(decl)
		if err == nil {
			err = claimGlobals(scope, aug)
		}
		if err != nil {
			d, ok := compiler.AsDiagnostic(err)
			if !ok {
				return nil, fmt.Errorf("pass %s: %w", decl.Name, err)
			}
			log.Debug("pass failed",
				zap.String("type", decl.Name),
				zap.String("code", d.Code),
				zap.String("message", d.Message))
			res.Diagnostics = append(res.Diagnostics, d)
			continue
		}

		log.Debug("pass succeeded",
			zap.String("type", decl.Name),
			zap.Strings("members", aug.Members))
		res.Augmentations = append(res.Augmentations, aug)
		entries = append(entries, ir.FingerprintEntry{Record: aug.Record, Requests: decl.Requests})
	}

	if !res.OK() {
		log.Debug("generation suppressed", zap.Int("diagnostics", len(res.Diagnostics)))
		return res, nil
	}

	fp, err := ir.Fingerprint(pkg.Name, entries)
	if err != nil {
		return nil, &GenerateError{Package: pkg.Name, Stage: "fingerprint", Err: err}
	}
	res.Fingerprint = fp

	if len(res.Augmentations) == 0 {
		return res, nil
	}

	code, err := codegen.Render(e.output, pkg.Name, res.Augmentations)
	if err != nil {
		return nil, &GenerateError{Package: pkg.Name, Stage: "render", Err: err}
	}
	res.Code = code
	log.Debug("rendered",
		zap.String("path", res.Path),
		zap.Int("types", len(res.Augmentations)),
		zap.Int("bytes", len(code)),
		zap.String("fingerprint", fp))
	return res, nil
}

// claimGlobals registers the package-level variables of aug and the names
// its imports bind in the generated file. Package-level declarations share
// one block with those file-scope names, so either clash breaks the build.
func claimGlobals(scope *codegen.Registry, aug *codegen.Augmentation) error {
	for _, g := range aug.Globals {
		if err := scope.Claim(codegen.PackageScope, g, "generated code for "+aug.TypeName, aug.Pos); err != nil {
			return err
		}
	}
	for _, imp := range aug.Imports {
		name := path.Base(imp)
		owner := fmt.Sprintf("generated import %q", imp)
		if prev, ok := scope.Owner(codegen.PackageScope, name); ok && prev == owner {
			continue
		}
		if err := scope.Claim(codegen.PackageScope, name, owner, aug.Pos); err != nil {
			return err
		}
	}
	return nil
}
