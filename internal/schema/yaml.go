package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSchemaFile is wrapped by errors in the YAML description itself,
// before any linker pass runs.
var ErrInvalidSchemaFile = errors.New("invalid schema file")

// File is the YAML form of a package.
type File struct {
	Package        string        `yaml:"package"`
	Path           string        `yaml:"path,omitempty"`
	DefaultVersion string        `yaml:"default_version,omitempty"`
	Versions       []VersionSpec `yaml:"versions"`
}

// VersionSpec is the YAML form of a Version.
type VersionSpec struct {
	Name     string     `yaml:"name"`
	Previous string     `yaml:"previous,omitempty"`
	Items    []ItemSpec `yaml:"items"`
}

// ItemSpec is the YAML form of an Item.
type ItemSpec struct {
	Name         string           `yaml:"name"`
	Entity       bool             `yaml:"entity,omitempty"`
	Lifecycle    string           `yaml:"lifecycle,omitempty"`
	Fields       []FieldSpec      `yaml:"fields,omitempty"`
	Dependencies []Dependency     `yaml:"dependencies,omitempty"`
	Templates    []Template       `yaml:"templates,omitempty"`
	Validations  []ValidationSpec `yaml:"validations,omitempty"`
	Mappings     []MappingSpec    `yaml:"mappings,omitempty"`
}

// FieldSpec is the YAML form of a Field.
type FieldSpec struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional,omitempty"`
	Vector   bool   `yaml:"vector,omitempty"`
	Indexed  bool   `yaml:"indexed,omitempty"`
}

// ValidationSpec is the YAML form of a Validation. Rule defaults to
// "all_keys_in_table".
type ValidationSpec struct {
	Rule        string `yaml:"rule,omitempty"`
	Table       string `yaml:"table"`
	MustExistIn string `yaml:"must_exist_in"`
}

// MappingSpec is the YAML form of a Mapping. Exactly one of New, Deleted,
// Renamed, Same and Custom is set.
type MappingSpec struct {
	New          string   `yaml:"new,omitempty"`
	Deleted      string   `yaml:"deleted,omitempty"`
	Renamed      string   `yaml:"renamed,omitempty"`
	Previous     string   `yaml:"previous,omitempty"`
	Same         string   `yaml:"same,omitempty"`
	Custom       []string `yaml:"custom,omitempty"`
	ToPrevious   string   `yaml:"to_previous,omitempty"`
	FromPrevious string   `yaml:"from_previous,omitempty"`
}

// LoadFile loads and parses a YAML schema file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if f.Path == "" {
		f.Path = "."
	}

	return &f, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Build converts the file into the object model and runs BuildPackage.
func (f *File) Build(opts ...BuildOption) (*Package, error) {
	versions := make([]*Version, 0, len(f.Versions))
	byName := make(map[string]*Version, len(f.Versions))

	for _, vs := range f.Versions {
		var prev *Version

		if vs.Previous != "" {
			p, ok := byName[vs.Previous]
			if !ok {
				return nil, &DefinitionError{
					Code:    CodeUnknownPreviousVersion,
					Package: f.Package,
					Version: vs.Name,
					Msg:     fmt.Sprintf("previous version %s is not declared before %s", vs.Previous, vs.Name),
					Err:     ErrUnknownPreviousVersion,
				}
			}

			prev = p
		}

		items := make([]*Item, 0, len(vs.Items))

		for _, is := range vs.Items {
			it, err := is.build()
			if err != nil {
				return nil, fmt.Errorf("package %s, version %s, item %s: %w", f.Package, vs.Name, is.Name, err)
			}

			items = append(items, it)
		}

		v := NewVersion(vs.Name, prev, items...)
		versions = append(versions, v)

		if _, dup := byName[vs.Name]; !dup {
			byName[vs.Name] = v
		}
	}

	return BuildPackage(f.Package, f.Path, versions, opts...)
}

func (is ItemSpec) build() (*Item, error) {
	lc, ok := ParseLifecycle(is.Lifecycle)
	if !ok {
		return nil, fmt.Errorf("%w: unknown lifecycle %q", ErrInvalidSchemaFile, is.Lifecycle)
	}

	if (lc == LifecycleIdentical || lc == LifecycleDeleted) &&
		(len(is.Fields) > 0 || len(is.Dependencies) > 0 || len(is.Templates) > 0 || len(is.Validations) > 0) {
		return nil, fmt.Errorf("%w: a %s item declares no definition", ErrInvalidSchemaFile, lc)
	}

	fields := make([]*Field, 0, len(is.Fields))

	for _, fs := range is.Fields {
		var opts []FieldOption
		if fs.Optional {
			opts = append(opts, Optional())
		}

		if fs.Vector {
			opts = append(opts, Vector())
		}

		if fs.Indexed {
			opts = append(opts, Indexed())
		}

		fld, err := NewField(fs.Type, fs.Name, opts...)
		if err != nil {
			return nil, err
		}

		fields = append(fields, fld)
	}

	mappings := make([]Mapping, 0, len(is.Mappings))

	for _, ms := range is.Mappings {
		m, err := ms.build()
		if err != nil {
			return nil, err
		}

		mappings = append(mappings, m)
	}

	validations := make([]Validation, 0, len(is.Validations))

	for _, vs := range is.Validations {
		if vs.Rule != "" && vs.Rule != "all_keys_in_table" {
			return nil, fmt.Errorf("%w: unknown validation rule %q", ErrInvalidSchemaFile, vs.Rule)
		}

		validations = append(validations, AllKeysInTable(vs.Table, vs.MustExistIn))
	}

	it := newItem(is.Name, is.Entity, lc, fields, mappings, []ItemOption{
		WithDependencies(is.Dependencies...),
		WithTemplates(is.Templates...),
		WithValidations(validations...),
	})

	return it, nil
}

func (ms MappingSpec) build() (Mapping, error) {
	var (
		m   Mapping
		set int
	)

	if ms.New != "" {
		m = NewFieldMapping(ms.New)
		set++
	}

	if ms.Deleted != "" {
		m = DeletedFieldMapping(ms.Deleted)
		set++
	}

	if ms.Renamed != "" {
		if ms.Previous == "" {
			return Mapping{}, fmt.Errorf("%w: renamed mapping %s without previous", ErrInvalidSchemaFile, ms.Renamed)
		}

		m = RenamedFieldMapping(ms.Renamed, ms.Previous)
		set++
	}

	if ms.Same != "" {
		m = SameFieldMapping(ms.Same)
		set++
	}

	if len(ms.Custom) > 0 {
		m = CustomMapping(ms.Custom, ms.ToPrevious, ms.FromPrevious)
		set++
	}

	if set != 1 {
		return Mapping{}, fmt.Errorf("%w: a mapping sets exactly one of new, deleted, renamed, same, custom", ErrInvalidSchemaFile)
	}

	return m, nil
}
