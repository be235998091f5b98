package entity

import (
	"fmt"
	"strings"

	"github.com/koustreak/graphix/internal/dialect"
	"github.com/koustreak/graphix/internal/errs"
	"github.com/koustreak/graphix/internal/native"
)

// TypeResolver maps a native type name to a column type.
type TypeResolver interface {
	Resolve(name string) (dialect.ColumnType, error)
}

// Builder turns declarations into descriptors using its resolver.
type Builder struct {
	resolver TypeResolver
}

// NewBuilder returns a Builder resolving types with r. A nil r uses the
// builtin native type table.
func NewBuilder(r TypeResolver) *Builder {
	if r == nil {
		r = native.NewResolver()
	}
	return &Builder{resolver: r}
}

// Build validates a record declaration with the builtin type table.
func Build(name string, fields []FieldDecl, mods Modifiers) (*Descriptor, error) {
	return NewBuilder(nil).Build(name, fields, mods)
}

// BuildDeclaration is Build for a Declaration value.
func (b *Builder) BuildDeclaration(d Declaration) (*Descriptor, error) {
	return b.Build(d.Name, d.Fields, d.Modifiers)
}

// Build validates the declaration of record name and returns its descriptor.
// The first invalid modifier or unresolvable field type aborts the build;
// no descriptor is returned alongside an error.
func (b *Builder) Build(name string, fields []FieldDecl, mods Modifiers) (*Descriptor, error) {
	if name == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "entity name must not be empty")
	}
	subject := fmt.Sprintf("entity %q", name)

	if err := mods.check(subject, structMods); err != nil {
		return nil, err
	}
	if err := checkTableName(subject, mods.str(ModTableName, "")); err != nil {
		return nil, err
	}

	d := &Descriptor{
		name:       name,
		tableName:  mods.str(ModTableName, DefaultTableName(name)),
		schemaName: mods.str(ModSchemaName, DefaultSchema),
		fields:     make([]Field, 0, len(fields)),
	}

	columns := make(map[string]string, len(fields))
	for _, fd := range fields {
		f, err := b.buildField(subject, fd)
		if err != nil {
			return nil, err
		}
		if prev, dup := columns[f.ColumnName]; dup {
			return nil, errs.Newf(errs.ErrKindInvalidInput,
				"%s: fields %q and %q both map to column %q", subject, prev, f.Name, f.ColumnName)
		}
		columns[f.ColumnName] = f.Name
		d.fields = append(d.fields, f)
	}

	return d, nil
}

func (b *Builder) buildField(entity string, fd FieldDecl) (Field, error) {
	if fd.Name == "" {
		return Field{}, errs.Newf(errs.ErrKindInvalidInput, "%s: field name must not be empty", entity)
	}
	subject := fmt.Sprintf("%s: field %q", entity, fd.Name)

	sqlType, err := b.resolver.Resolve(fd.Type)
	if err != nil {
		if errs.IsUnsupportedType(err) {
			return Field{}, errs.UnsupportedType(subject, fd.Type)
		}
		return Field{}, err
	}

	if err := fd.Modifiers.check(subject, fieldMods); err != nil {
		return Field{}, err
	}

	return Field{
		Name:       fd.Name,
		ColumnName: fd.Modifiers.str(ModColumnName, fd.Name),
		SourceType: fd.Type,
		SQLType:    sqlType,
		Unique:     fd.Modifiers.flag(ModUnique),
		Immutable:  fd.Modifiers.flag(ModImmutable),
		Nullable:   fd.Modifiers.flag(ModNullable),
	}, nil
}

// DefaultTableName is the table a record is stored in without an override:
// its lower-cased name with a trailing "s".
func DefaultTableName(record string) string {
	return strings.ToLower(record) + "s"
}
