// Package docreader reads structural form metadata from `form:` directives
// in Go doc comments. It is the legacy reader variant: pure source parsing
// with no reflection dependency, so it is available on every runtime. Only
// fields carrying at least one directive become members.
//
// Recognised directives on struct fields:
//
//	form:element [name=...] [type=...] [label="..."] [kind=file] [priority=N] [required]
//	form:fieldset [name=...] [label="..."] [priority=N]
//	form:collection [name=...] [label="..."] [priority=N]
//	form:filter string_trim, to_lower
//	form:validate string_length(min=3,max=256), email_address
//	form:exclude
package docreader

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"strconv"
	"strings"

	"github.com/goliatone/go-forms/internal/metadata/directives"
	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/metadata"
)

// VariantName is the factory variant key for this reader.
const VariantName = "comments"

// Source locates the Go source file and type the reader parses.
type Source struct {
	FS       fs.FS
	Path     string
	TypeName string
}

// Reader implements metadata.Reader over Go doc comments.
type Reader struct{}

// New constructs the doc-comment reader.
func New() *Reader { return &Reader{} }

// Name implements metadata.Reader.
func (r *Reader) Name() string { return VariantName }

// Available always succeeds: source parsing needs no runtime capability.
func (r *Reader) Available() error { return nil }

// Read parses the source file and produces the Class description for the
// named struct type. Struct types referenced by fieldset/collection members
// are resolved within the same file.
func (r *Reader) Read(subject any) (metadata.Class, error) {
	src, ok := subject.(Source)
	if !ok {
		return metadata.Class{}, fmt.Errorf("docreader: subject must be a docreader.Source, got %T", subject)
	}
	if src.FS == nil || src.Path == "" || src.TypeName == "" {
		return metadata.Class{}, errors.New("docreader: source requires FS, Path and TypeName")
	}

	raw, err := fs.ReadFile(src.FS, src.Path)
	if err != nil {
		return metadata.Class{}, fmt.Errorf("docreader: read %s: %w", src.Path, err)
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, src.Path, raw, parser.ParseComments)
	if err != nil {
		return metadata.Class{}, fmt.Errorf("docreader: parse %s: %w", src.Path, err)
	}

	types := collectStructTypes(file)
	root, ok := types[src.TypeName]
	if !ok {
		return metadata.Class{}, fmt.Errorf("docreader: type %q not found in %s", src.TypeName, src.Path)
	}
	return readClass(src.TypeName, root, types, map[string]bool{})
}

func collectStructTypes(file *ast.File) map[string]*ast.StructType {
	types := make(map[string]*ast.StructType)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if st, ok := ts.Type.(*ast.StructType); ok {
				types[ts.Name.Name] = st
			}
		}
	}
	return types
}

func readClass(name string, st *ast.StructType, types map[string]*ast.StructType, seen map[string]bool) (metadata.Class, error) {
	if seen[name] {
		return metadata.Class{}, fmt.Errorf("docreader: recursive class reference through %s", name)
	}
	seen[name] = true
	defer delete(seen, name)

	class := metadata.Class{Name: name}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded fields carry no form metadata
		}
		member, ok, err := readMember(field, types, seen)
		if err != nil {
			return metadata.Class{}, err
		}
		if !ok {
			continue
		}
		class.Members = append(class.Members, member)
	}
	return class, nil
}

func readMember(field *ast.Field, types map[string]*ast.StructType, seen map[string]bool) (metadata.Member, bool, error) {
	lines := directiveLines(field.Doc)
	if len(lines) == 0 {
		return metadata.Member{}, false, nil
	}

	member := metadata.Member{
		Name: directives.SnakeCase(field.Names[0].Name),
		Kind: metadata.MemberElement,
	}
	var opts metadata.MemberOptions
	spec := make(map[string]any)

	for _, line := range lines {
		verb, args, _ := strings.Cut(line, " ")
		switch verb {
		case "exclude":
			return metadata.Member{}, false, nil
		case "element", "fieldset", "collection":
			if verb == "fieldset" {
				member.Kind = metadata.MemberFieldset
			}
			if verb == "collection" {
				member.Kind = metadata.MemberCollection
			}
			if err := applyNodeArgs(&member, &opts, args); err != nil {
				return metadata.Member{}, false, fmt.Errorf("docreader: field %s: %w", field.Names[0].Name, err)
			}
		case "filter":
			if refs := directives.ParseRefList(args); len(refs) > 0 {
				spec["filters"] = refs
			}
		case "validate":
			if refs := directives.ParseRefList(args); len(refs) > 0 {
				spec["validators"] = refs
			}
		default:
			return metadata.Member{}, false, fmt.Errorf("docreader: field %s: unknown directive %q", field.Names[0].Name, verb)
		}
	}

	if opts.Required {
		spec["required"] = true
	}
	if len(spec) > 0 {
		opts.InputSpec = spec
	}
	member.Options = opts

	if member.Kind != metadata.MemberElement {
		typeName := fieldTypeName(field.Type)
		st, ok := types[typeName]
		if !ok {
			return metadata.Member{}, false, fmt.Errorf("docreader: field %s: referenced type %q not found", field.Names[0].Name, typeName)
		}
		nested, err := readClass(typeName, st, types, seen)
		if err != nil {
			return metadata.Member{}, false, err
		}
		member.Class = &nested
	}
	return member, true, nil
}

func applyNodeArgs(member *metadata.Member, opts *metadata.MemberOptions, args string) error {
	for _, arg := range splitArgs(args) {
		key, value, hasValue := strings.Cut(arg, "=")
		value = strings.Trim(value, `"`)
		switch key {
		case "name":
			member.Name = value
		case "type":
			member.Type = value
		case "label":
			opts.Label = value
		case "kind":
			opts.ElementKind = forms.Kind(value)
		case "priority":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("priority: %w", err)
			}
			opts.Priority = n
		case "required":
			opts.Required = true
		default:
			if key == "" {
				continue
			}
			var attrValue any = true
			if hasValue {
				attrValue = value
			}
			opts.Attributes = append(opts.Attributes, metadata.Attribute{Key: key, Value: attrValue})
		}
	}
	return nil
}

// directiveLines extracts the payload of every `form:` line in a doc
// comment.
func directiveLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var out []string
	for _, comment := range doc.List {
		line := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
		line = strings.TrimSpace(strings.TrimPrefix(line, "/*"))
		line = strings.TrimSpace(strings.TrimSuffix(line, "*/"))
		if rest, ok := strings.CutPrefix(line, "form:"); ok {
			out = append(out, strings.TrimSpace(rest))
		}
	}
	return out
}

// splitArgs tokenizes directive arguments on spaces, keeping quoted values
// intact.
func splitArgs(args string) []string {
	var out []string
	var current strings.Builder
	quoted := false
	for _, r := range args {
		switch {
		case r == '"':
			quoted = !quoted
			current.WriteRune(r)
		case r == ' ' && !quoted:
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

func fieldTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return fieldTypeName(t.X)
	case *ast.ArrayType:
		return fieldTypeName(t.Elt)
	case *ast.SelectorExpr:
		return t.Sel.Name
	default:
		return ""
	}
}
