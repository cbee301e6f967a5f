package gen

import (
	"cmp"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"pds-generator/internal/schema"
)

const header = "// Code generated by pds-generator. DO NOT EDIT."

// Config holds configuration for code generation.
type Config struct {
	// OutputDir is the directory of the generated root package. Unformatted
	// sidecars are written below it.
	OutputDir string `mapstructure:"output_dir"`
	// ImportPath is the Go import path of OutputDir.
	ImportPath string `mapstructure:"import_path"`
	// RuntimeImport is the import path of the pds runtime package.
	RuntimeImport string `mapstructure:"runtime_import"`
	// DefaultVersion names the version aliased by the root package. Empty
	// selects the single latest version.
	DefaultVersion string `mapstructure:"default_version"`
	// ReadOnly makes WriteFiles mark written files read-only.
	ReadOnly bool `mapstructure:"read_only"`
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir:     "./generated",
		ImportPath:    "generated",
		RuntimeImport: "pds-generator/pds",
	}
}

// Generator renders Go sources. It holds no per-run state and may be used
// concurrently.
type Generator struct {
	cfg Config
	log *zap.Logger
}

// NewGenerator creates a Generator; a nil logger disables logging.
func NewGenerator(cfg Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{cfg: cfg, log: log.Named("gen")}
}

// Config returns the generator configuration.
func (g *Generator) Config() Config { return g.cfg }

// GeneratedFile is a rendered Go source file.
type GeneratedFile struct {
	// Filename is the slash-separated path relative to the output directory
	// ("v1_2/test_entity_b.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// importSpec is one import of a generated file.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of a file, keyed by path.
type importSet map[string]importSpec

func (s importSet) add(alias, importPath string) {
	s[importPath] = importSpec{Alias: alias, Path: importPath}
}

func (s importSet) sorted() []importSpec {
	out := make([]importSpec, 0, len(s))
	for _, spec := range s {
		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int { return cmp.Compare(a.Path, b.Path) })

	return out
}

// importPath returns the import path of the directory dir, relative to the
// output directory.
func (g *Generator) importPath(dir string) string {
	return path.Join(g.cfg.ImportPath, dir)
}

// format runs imports.Process over src. On failure the unformatted source is
// returned along with the error and written to a sidecar file.
func (g *Generator) format(filename string, src []byte) (GeneratedFile, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		if serr := g.writeSidecar(filename, src); serr != nil {
			g.log.Warn("writing unformatted sidecar failed", zap.String("file", filename), zap.Error(serr))
		}

		return GeneratedFile{Filename: filename, Content: src},
			fmt.Errorf("formatting %s: %w (unformatted code returned)", filename, err)
	}

	return GeneratedFile{Filename: filename, Content: out}, nil
}

// writeSidecar writes src that failed to format next to where filename
// would go, as name.unformatted.go, so the generated code can be inspected.
// It does nothing without an output directory.
func (g *Generator) writeSidecar(filename string, src []byte) error {
	if g.cfg.OutputDir == "" {
		return nil
	}

	p := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(strings.TrimSuffix(filename, ".go")+".unformatted.go"))
	if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return err
	}

	return os.WriteFile(p, src, filePerm)
}

// RootImportPath returns the import path of the root package generated for
// pkg.
func (g *Generator) RootImportPath(pkg *schema.Package) string {
	return g.importPath(path.Clean(pkg.Path()))
}
