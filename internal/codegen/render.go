package codegen

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/roach88/iterstruct/internal/ir"
)

// Header is the first line of every generated file.
const Header = "// Code generated by " + ir.GeneratorName + "; DO NOT EDIT."

// DefaultOutput is the file name generated code is written to.
const DefaultOutput = "iterstruct_gen.go"

// IsGenerated reports whether src was written by this generator.
func IsGenerated(src []byte) bool {
	return bytes.HasPrefix(src, []byte(Header))
}

// Render joins augmentations into one formatted Go file for package pkg.
// Augmentations are emitted in the order given.
func Render(filename, pkg string, augs []*Augmentation) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header + "\n\n")
	fmt.Fprintf(&buf, "package %s\n", pkg)

	writeImports(&buf, augs)

	for _, a := range augs {
		if a.Source == "" {
			continue
		}
		buf.WriteByte('\n')
		buf.WriteString(a.Source)
	}

	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return out, nil
}

func writeImports(buf *bytes.Buffer, augs []*Augmentation) {
	var std, ext []string
	seen := make(map[string]bool)
	for _, a := range augs {
		for _, imp := range a.Imports {
			if seen[imp] {
				continue
			}
			seen[imp] = true
			if strings.Contains(imp, ".") {
				ext = append(ext, imp)
			} else {
				std = append(std, imp)
			}
		}
	}
	sort.Strings(std)
	sort.Strings(ext)

	switch n := len(std) + len(ext); {
	case n == 0:
		return
	case n == 1:
		fmt.Fprintf(buf, "\nimport %s\n", strconv.Quote(append(std, ext...)[0]))
		return
	}

	buf.WriteString("\nimport (\n")
	for _, imp := range std {
		fmt.Fprintf(buf, "\t%s\n", strconv.Quote(imp))
	}
	if len(std) > 0 && len(ext) > 0 {
		buf.WriteByte('\n')
	}
	for _, imp := range ext {
		fmt.Fprintf(buf, "\t%s\n", strconv.Quote(imp))
	}
	buf.WriteString(")\n")
}
