package frontend

import (
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/iterstruct/internal/codegen"
	"github.com/roach88/iterstruct/internal/compiler"
	"github.com/roach88/iterstruct/internal/ir"
)

// Errors returned by ParseDir and ParseSource, for errors.Is matching.
var (
	ErrNoGoFiles     = errors.New("no Go source files")
	ErrSyntax        = errors.New("syntax error")
	ErrMixedPackages = errors.New("multiple packages")
)

// Options configures parsing.
type Options struct {
	// Output is the generated file name to skip. Default codegen.DefaultOutput.
	Output string

	// Types requests derivations for named types in addition to directives.
	// Each entry uses the directive grammar without the prefix, for example
	// "dump names=-".
	Types map[string][]string

	// Logger receives debug output. Default: no-op.
	Logger *zap.Logger
}

func (o Options) output() string {
	if o.Output == "" {
		return codegen.DefaultOutput
	}
	return o.Output
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Package is the parsed view of one Go package.
type Package struct {
	Name string
	Dir  string

	// Files lists the parsed file names in the order they were read.
	Files []string

	// Decls holds every declaration with at least one valid request,
	// in source order.
	Decls []*ir.Declaration

	// Scope lists the package-level identifiers declared in Files.
	Scope []string

	// Diagnostics reports malformed requests, one per affected type.
	Diagnostics []*compiler.Diagnostic
}

// ParseDir parses the Go package in dir. Only files that build.Default
// would compile are read, so ignored helpers and files for other
// platforms never contribute declarations.
func ParseDir(dir string, opts Options) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read package dir: %w", err)
	}

	c := newCollector(opts)
	c.pkg.Dir = dir
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if name == opts.output() {
			c.log.Debug("skipping output file", zap.String("file", name))
			continue
		}
		match, err := build.Default.MatchFile(dir, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSyntax, name, err)
		}
		if !match {
			c.log.Debug("skipping file excluded by build constraints", zap.String("file", name))
			continue
		}
		path := filepath.Join(dir, name)
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := c.addFile(path, src); err != nil {
			return nil, err
		}
	}
	if len(c.pkg.Files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoGoFiles, dir)
	}
	c.finish()
	return c.pkg, nil
}

// ParseSource parses a single in-memory file as a whole package.
func ParseSource(filename string, src []byte, opts Options) (*Package, error) {
	c := newCollector(opts)
	if err := c.addFile(filename, src); err != nil {
		return nil, err
	}
	if len(c.pkg.Files) == 0 {
		return nil, fmt.Errorf("%s was written by %s", filename, ir.GeneratorName)
	}
	c.finish()
	return c.pkg, nil
}

type typeEntry struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
}

// collector accumulates declarations across the files of one package.
type collector struct {
	fset    *token.FileSet
	opts    Options
	log     *zap.Logger
	pkg     *Package
	types   []typeEntry
	methods map[string][]string
	enums   map[string]bool
}

func newCollector(opts Options) *collector {
	return &collector{
		fset:    token.NewFileSet(),
		opts:    opts,
		log:     opts.logger(),
		pkg:     &Package{},
		methods: make(map[string][]string),
		enums:   make(map[string]bool),
	}
}

func (c *collector) addFile(filename string, src []byte) error {
	if codegen.IsGenerated(src) {
		c.log.Debug("skipping generated file", zap.String("file", filename))
		return nil
	}

	f, err := parser.ParseFile(c.fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if c.pkg.Name == "" {
		c.pkg.Name = f.Name.Name
	} else if f.Name.Name != c.pkg.Name {
		return fmt.Errorf("%w: %s: package %s, expected %s", ErrMixedPackages, filename, f.Name.Name, c.pkg.Name)
	}
	c.pkg.Files = append(c.pkg.Files, filename)
	c.log.Debug("parsed file", zap.String("file", filename), zap.Int("decls", len(f.Decls)))

	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				c.pkg.Scope = append(c.pkg.Scope, d.Name.Name)
				continue
			}
			if recv := receiverType(d.Recv.List[0].Type); recv != "" {
				c.methods[recv] = append(c.methods[recv], d.Name.Name)
			}
		case *ast.GenDecl:
			c.addGenDecl(d)
		}
	}
	return nil
}

func (c *collector) addGenDecl(d *ast.GenDecl) {
	var lastType string
	for _, s := range d.Specs {
		switch s := s.(type) {
		case *ast.TypeSpec:
			c.pkg.Scope = append(c.pkg.Scope, s.Name.Name)
			doc := s.Doc
			if doc == nil && !d.Lparen.IsValid() {
				doc = d.Doc
			}
			c.types = append(c.types, typeEntry{spec: s, doc: doc})
		case *ast.ValueSpec:
			for _, n := range s.Names {
				c.pkg.Scope = append(c.pkg.Scope, n.Name)
			}
			if d.Tok != token.CONST {
				continue
			}
			// Untyped specs without values repeat the previous type (iota blocks).
			switch {
			case s.Type != nil:
				lastType = ""
				if id, ok := s.Type.(*ast.Ident); ok {
					lastType = id.Name
				}
			case len(s.Values) > 0:
				lastType = ""
			}
			if lastType != "" {
				c.enums[lastType] = true
			}
		}
	}
}

func (c *collector) finish() {
	declared := make(map[string]*ir.Declaration, len(c.types))
	failed := make(map[string]bool)
	var order []*ir.Declaration

	for _, te := range c.types {
		decl := c.declaration(te.spec)
		declared[decl.Name] = decl

		reqs, errs := directives(c.fset, te.doc)
		if len(errs) > 0 {
			e := errs[0]
			c.pkg.Diagnostics = append(c.pkg.Diagnostics,
				compiler.NewDirectiveError(decl.Name, e.derivation, e.err.Error(), e.pos))
			failed[decl.Name] = true
			continue
		}
		decl.Requests = reqs
		order = append(order, decl)
	}

	c.applyTypeOptions(declared, failed)

	for _, decl := range order {
		if failed[decl.Name] || len(decl.Requests) == 0 {
			continue
		}
		c.pkg.Decls = append(c.pkg.Decls, decl)
		c.log.Debug("declaration",
			zap.String("type", decl.Name),
			zap.Stringer("kind", decl.Kind),
			zap.Int("fields", len(decl.Fields)),
			zap.Int("requests", len(decl.Requests)))
	}
}

func (c *collector) applyTypeOptions(declared map[string]*ir.Declaration, failed map[string]bool) {
	names := make([]string, 0, len(c.opts.Types))
	for n := range c.opts.Types {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		decl, ok := declared[name]
		if !ok {
			c.pkg.Diagnostics = append(c.pkg.Diagnostics, compiler.NewDirectiveError(name, "",
				fmt.Sprintf("type %s is not declared in package %s", name, c.pkg.Name), token.Position{}))
			continue
		}
		if failed[name] {
			continue
		}
		for _, entry := range c.opts.Types[name] {
			req, err := parseDirective(entry)
			if err != nil {
				c.pkg.Diagnostics = append(c.pkg.Diagnostics,
					compiler.NewDirectiveError(name, req.Derivation, err.Error(), decl.Pos))
				failed[name] = true
				break
			}
			if slices.ContainsFunc(decl.Requests, func(r ir.Request) bool { return r.Derivation == req.Derivation }) {
				continue
			}
			req.Pos = decl.Pos
			decl.Requests = append(decl.Requests, req)
		}
	}
}

func (c *collector) declaration(spec *ast.TypeSpec) *ir.Declaration {
	name := spec.Name.Name
	decl := &ir.Declaration{
		Name:    name,
		Kind:    c.classify(spec),
		Methods: slices.Clone(c.methods[name]),
		Pos:     c.fset.Position(spec.Name.Pos()),
	}
	if spec.TypeParams != nil {
		decl.TypeParams = spec.TypeParams.NumFields()
	}
	if st, ok := spec.Type.(*ast.StructType); ok && decl.Kind == ir.KindRecord {
		for _, f := range st.Fields.List {
			typ := types.ExprString(f.Type)
			pos := c.fset.Position(f.Pos())
			if len(f.Names) == 0 {
				decl.Fields = append(decl.Fields, ir.DeclField{Type: typ, Embedded: true, Pos: pos})
				continue
			}
			for _, n := range f.Names {
				decl.Fields = append(decl.Fields, ir.DeclField{Name: n.Name, Type: typ, Pos: c.fset.Position(n.Pos())})
			}
		}
	}
	return decl
}

func (c *collector) classify(spec *ast.TypeSpec) ir.Kind {
	if spec.Assign.IsValid() {
		return ir.KindAlias
	}
	switch spec.Type.(type) {
	case *ast.StructType:
		return ir.KindRecord
	case *ast.InterfaceType:
		return ir.KindUnion
	}
	if c.enums[spec.Name.Name] {
		return ir.KindEnum
	}
	return ir.KindOther
}

// receiverType returns the base type name of a method receiver.
func receiverType(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}
