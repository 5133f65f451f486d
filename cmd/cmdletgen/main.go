// cmd/cmdletgen/main.go
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

// defaultDIImport is the import path of the di package referenced by generated plans.
const defaultDIImport = "github.com/utmo/cmdletdi/di"

// Member describes one injectable field of the cmdlet type.
type Member struct {
	// Field is the struct field receiving the value.
	Field string `json:"field"`

	// Type is the Go type requested from the resolver, as written in source.
	Type string `json:"type"`

	// Name is the resolution name. Absent means "by type only";
	// an empty string is a real name.
	Name *string `json:"name"`
}

// Spec is the full input schema consumed by the generator.
type Spec struct {
	Package    string `json:"package"`
	CmdletType string `json:"cmdletType"`
	PlanFunc   string `json:"planFunc"`

	// DIImport overrides the import path of the di package.
	DIImport string `json:"diImport"`

	// Imports maps package identifiers used in member types to import paths.
	// Used only when the owner file does not import the identifier.
	Imports map[string]string `json:"imports"`

	Members []Member `json:"members"`
}

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string
	Path  string
}

// templateData is the input passed to the Go template.
type templateData struct {
	Spec        Spec
	ImportsList []ImportSpec
}

// run executes the generator and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("cmdletgen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	specPath := flags.String("spec", "", "path to cmdlet.inject.json")
	outPath := flags.String("out", "", "output .gen.go file path")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*specPath) == "" || strings.TrimSpace(*outPath) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: cmdletgen -spec <file.inject.json> -out <file.gen.go>")
		return 2
	}

	if err := generate(*specPath, *outPath); err != nil {
		_, _ = fmt.Fprintln(stderr, "cmdletgen:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func generate(specPath, outPath string) error {
	specBytes, err := os.ReadFile(specPath)
	if err != nil {
		return err
	}

	var spec Spec
	if err := json.Unmarshal(specBytes, &spec); err != nil {
		return fmt.Errorf("decode spec: %w", err)
	}
	if err := validateSpec(&spec); err != nil {
		return err
	}

	generatedFilePath := filepath.Clean(outPath)
	packageDir := filepath.Dir(generatedFilePath)

	var ownerImports []ImportSpec
	if ownerGoFilePath, err := findOwnerGoGenerateFile(packageDir); err == nil {
		// Best-effort: a broken owner file falls back to spec.imports.
		ownerImports, _ = readImportsFromFile(ownerGoFilePath)
	}

	importsList, err := resolveImports(&spec, ownerImports)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := genTemplate.Execute(&out, templateData{Spec: spec, ImportsList: importsList}); err != nil {
		return err
	}
	src, err := format.Source(out.Bytes())
	if err != nil {
		return fmt.Errorf("format generated code: %w", err)
	}

	return writeFileAtomic(generatedFilePath, src, 0o644)
}

// validateSpec checks the spec and fills defaults.
// Every problem is reported, not only the first one.
func validateSpec(spec *Spec) error {
	var problems []string

	requireIdent := func(fieldName, value string) {
		switch {
		case strings.TrimSpace(value) == "":
			problems = append(problems, fieldName+" is required")
		case !token.IsIdentifier(value):
			problems = append(problems, fieldName+" is not a Go identifier: "+strconv.Quote(value))
		}
	}

	requireIdent("package", spec.Package)
	requireIdent("cmdletType", spec.CmdletType)

	if spec.PlanFunc == "" {
		spec.PlanFunc = spec.CmdletType + "Plan"
	}
	requireIdent("planFunc", spec.PlanFunc)

	if spec.DIImport == "" {
		spec.DIImport = defaultDIImport
	}

	if len(spec.Members) == 0 {
		problems = append(problems, "members must have at least 1 entry")
	}

	seenFields := make(map[string]struct{}, len(spec.Members))
	for i, m := range spec.Members {
		where := "members[" + strconv.Itoa(i) + "]"
		if !token.IsIdentifier(m.Field) {
			problems = append(problems, where+".field is not a Go identifier: "+strconv.Quote(m.Field))
		} else if _, dup := seenFields[m.Field]; dup {
			problems = append(problems, "duplicate member field: "+m.Field)
		}
		seenFields[m.Field] = struct{}{}

		if _, err := parser.ParseExpr(m.Type); strings.TrimSpace(m.Type) == "" || err != nil {
			problems = append(problems, where+".type is not a Go type: "+strconv.Quote(m.Type))
		}
	}

	if len(problems) > 0 {
		return errors.New("invalid spec: " + strings.Join(problems, "; "))
	}
	return nil
}

// typeQualifiers returns the package identifiers referenced by a type expression,
// e.g. "map[string]*zap.Logger" -> ["zap"].
func typeQualifiers(typeExpr string) []string {
	expr, err := parser.ParseExpr(typeExpr)
	if err != nil {
		return nil
	}

	var out []string
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if ident, ok := sel.X.(*ast.Ident); ok {
			out = append(out, ident.Name)
		}
		return false
	})
	return out
}

// findOwnerGoGenerateFile finds the Go source file in packageDir that contains a go:generate
// directive invoking cmdletgen.
//
// This is used to discover the owner file's imports so generated code matches local style.
func findOwnerGoGenerateFile(packageDir string) (string, error) {
	dirEntries, err := os.ReadDir(packageDir)
	if err != nil {
		return "", err
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		filePath := filepath.Join(packageDir, fileName)
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			// Best-effort: unreadable file shouldn't break generation.
			continue
		}

		if bytes.Contains(fileBytes, []byte("go:generate")) && bytes.Contains(fileBytes, []byte("cmdletgen")) {
			return filePath, nil
		}
	}

	return "", fmt.Errorf("could not find owner file with go:generate invoking cmdletgen in %s", packageDir)
}

// readImportsFromFile parses imports from a Go file.
func readImportsFromFile(goFilePath string) ([]ImportSpec, error) {
	fileSet := token.NewFileSet()
	parsedFile, err := parser.ParseFile(fileSet, goFilePath, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	var imports []ImportSpec
	for _, importDecl := range parsedFile.Imports {
		importPath := strings.Trim(importDecl.Path.Value, `"`)
		importAlias := ""
		if importDecl.Name != nil {
			importAlias = importDecl.Name.Name
		}
		imports = append(imports, ImportSpec{Alias: importAlias, Path: importPath})
	}

	return imports, nil
}

func ensureImport(imports *[]ImportSpec, required ImportSpec) {
	for _, existing := range *imports {
		if existing.Path == required.Path {
			// Don't duplicate the path; keep existing alias as-is.
			return
		}
	}
	*imports = append(*imports, required)
}

// importIdent returns the identifier an import is referred to by.
func importIdent(imp ImportSpec) string {
	if imp.Alias != "" {
		return imp.Alias
	}
	// Import paths always use forward slashes, even on Windows.
	return path.Base(strings.TrimSpace(imp.Path))
}

// resolveImports builds the final imports list for the generated file.
//
// Rules:
//   - Always import the di package.
//   - For each package identifier used in a member type, prefer the owner file's
//     import with that identifier, then spec.imports.
//   - Owner imports not referenced by member types are dropped, so the generated
//     file never carries unused imports.
func resolveImports(spec *Spec, ownerImports []ImportSpec) ([]ImportSpec, error) {
	final := []ImportSpec{{Path: spec.DIImport}}

	var missing []string
	for _, m := range spec.Members {
		for _, qualifier := range typeQualifiers(m.Type) {
			if qualifier == "di" {
				continue
			}
			if imp, ok := findImport(ownerImports, qualifier); ok {
				ensureImport(&final, imp)
				continue
			}
			if p := strings.TrimSpace(spec.Imports[qualifier]); p != "" {
				imp := ImportSpec{Path: p}
				if importIdent(imp) != qualifier {
					imp.Alias = qualifier
				}
				ensureImport(&final, imp)
				continue
			}
			missing = append(missing, qualifier)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("no import found for %s (add it to the owner file or spec.imports)", strings.Join(missing, ", "))
	}

	sort.Slice(final, func(i, j int) bool { return final[i].Path < final[j].Path })
	return final, nil
}

func findImport(imports []ImportSpec, ident string) (ImportSpec, bool) {
	for _, imp := range imports {
		if importIdent(imp) == ident {
			return imp, true
		}
	}
	return ImportSpec{}, false
}

// genTemplate is the Go source template used to generate the plan function.
var genTemplate = template.Must(
	template.New("cmdletgen").Funcs(template.FuncMap{
		"quote": strconv.Quote,
		"deref": func(s *string) string { return *s },
	}).Parse(`// Code generated by cmdletgen; DO NOT EDIT.

package {{.Spec.Package}}

import (
{{- range .ImportsList}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.Spec.PlanFunc}} returns the injection plan for {{.Spec.CmdletType}}.
func {{.Spec.PlanFunc}}() *di.Plan[{{.Spec.CmdletType}}] {
	return di.NewPlan(
	{{- range .Spec.Members}}
		di.Field({{quote .Field}}, func(c *{{$.Spec.CmdletType}}, v {{.Type}}) { c.{{.Field}} = v }){{if .Name}}.WithName({{quote (deref .Name)}}){{end}},
	{{- end}}
	).MustBuild()
}
`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes to a temporary file in the same directory and then
// renames it over the target path, so readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}
