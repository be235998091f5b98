// Package generator turns declarations into schema artifacts: the HCL
// document of every entity and, optionally, its DDL preview. Artifacts are
// written to an output directory and published to object storage.
package generator

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/koustreak/graphix/internal/atlas"
	"github.com/koustreak/graphix/internal/ddl"
	"github.com/koustreak/graphix/internal/entity"
	"github.com/koustreak/graphix/internal/errs"
	"github.com/koustreak/graphix/internal/filestore"
	"github.com/koustreak/graphix/internal/hcldoc"
	"github.com/koustreak/graphix/internal/logger"
)

// Options controls generation and output.
type Options struct {
	// OutDir receives <table>.hcl and <table>.sql files.
	OutDir string

	// DDL enables the CREATE TABLE preview next to each document.
	DDL bool

	// Workers bounds concurrent compilation. Zero or less uses GOMAXPROCS.
	Workers int
}

// Artifact is the generated output of one declaration.
type Artifact struct {
	Entity     string
	Table      string
	File       string // <table>.hcl
	HCL        []byte
	DDL        string // empty unless Options.DDL
	Descriptor *entity.Descriptor
}

// SQLFile is the file name of the DDL preview.
func (a Artifact) SQLFile() string {
	return a.Table + ".sql"
}

// Generator compiles declarations. It is safe for concurrent use.
type Generator struct {
	opts     Options
	builder  *entity.Builder
	store    filestore.Store
	storeCfg *filestore.Config
	log      *logger.Logger
}

// Option customises a Generator.
type Option func(*Generator)

// WithBuilder replaces the default descriptor builder.
func WithBuilder(b *entity.Builder) Option {
	return func(g *Generator) { g.builder = b }
}

// WithStore publishes written artifacts to s using the bucket and prefix of cfg.
func WithStore(s filestore.Store, cfg *filestore.Config) Option {
	return func(g *Generator) {
		g.store = s
		g.storeCfg = cfg
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) { g.log = l.Component("generator") }
}

// New returns a Generator.
func New(opts Options, options ...Option) *Generator {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	g := &Generator{
		opts:    opts,
		builder: entity.NewBuilder(nil),
		log:     logger.Nop(),
	}
	for _, o := range options {
		o(g)
	}
	return g
}

// Generate builds and compiles every declaration. Artifacts come back in
// declaration order. When several declarations fail, the error of the
// earliest one is returned; two declarations mapping to the same table are
// rejected.
func (g *Generator) Generate(ctx context.Context, decls []entity.Declaration) ([]Artifact, error) {
	arts := make([]Artifact, len(decls))
	failures := make([]error, len(decls))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, d := range decls {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			arts[i], failures[i] = g.compile(d)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errs.Interrupted("generation interrupted", err)
	}

	for _, err := range failures {
		if err != nil {
			return nil, err
		}
	}

	owner := make(map[string]string, len(arts))
	for _, a := range arts {
		if prev, dup := owner[a.Table]; dup {
			return nil, errs.Newf(errs.ErrKindInvalidInput,
				"entity %q: table %q is already declared by entity %q", a.Entity, a.Table, prev)
		}
		owner[a.Table] = a.Entity
	}
	return arts, nil
}

func (g *Generator) compile(d entity.Declaration) (Artifact, error) {
	desc, err := g.builder.BuildDeclaration(d)
	if err != nil {
		return Artifact{}, err
	}
	src, err := hcldoc.Marshal(atlas.Compile(desc))
	if err != nil {
		return Artifact{}, err
	}

	a := Artifact{
		Entity:     desc.Name(),
		Table:      desc.TableName(),
		File:       desc.TableName() + ".hcl",
		HCL:        src,
		Descriptor: desc,
	}
	if g.opts.DDL {
		a.DDL = ddl.Render(desc)
	}
	g.log.With().
		Str("entity", a.Entity).
		Str("table", a.Table).
		Int("fields", desc.NumFields()).
		Logger().
		Debug("compiled entity")
	return a, nil
}

// Write stores arts under the output directory and, when a store is set,
// uploads them. It returns the paths written locally.
func (g *Generator) Write(ctx context.Context, arts []Artifact) ([]string, error) {
	if err := os.MkdirAll(g.opts.OutDir, 0o755); err != nil {
		return nil, errs.Wrap(errs.ErrKindIOFailed, "failed to create output directory "+g.opts.OutDir, err)
	}

	var written []string
	for _, a := range arts {
		for name, data := range files(a) {
			path := filepath.Join(g.opts.OutDir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return written, errs.Wrap(errs.ErrKindIOFailed, "failed to write "+path, err)
			}
			written = append(written, path)
		}
		g.log.With().
			Str("entity", a.Entity).
			Str("table", a.Table).
			Str("dir", g.opts.OutDir).
			Logger().
			Info("wrote artifact")
	}

	if g.store == nil {
		return written, nil
	}
	return written, g.publish(ctx, arts)
}

// publish uploads every file of arts. Files whose stored copy already has
// the same size and content hash are skipped.
func (g *Generator) publish(ctx context.Context, arts []Artifact) error {
	bucket := g.storeCfg.Bucket
	if err := g.store.EnsureBucket(ctx, bucket); err != nil {
		return err
	}
	for _, a := range arts {
		for name, data := range files(a) {
			key := g.storeCfg.Key(name)
			if g.unchanged(ctx, bucket, key, data) {
				g.log.With().
					Str("bucket", bucket).
					Str("key", key).
					Logger().
					Debug("artifact unchanged")
				continue
			}
			info, err := g.store.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), contentType(name))
			if err != nil {
				g.log.ErrorWith("failed to publish artifact", err, map[string]any{"bucket": bucket, "key": key})
				return err
			}
			g.log.With().
				Str("bucket", bucket).
				Str("key", info.Key).
				Str("etag", info.ETag).
				Logger().
				Info("published artifact")
		}
	}
	return nil
}

// unchanged reports whether the object at key already holds data. A failed
// lookup other than not-found is logged and treated as changed.
func (g *Generator) unchanged(ctx context.Context, bucket, key string, data []byte) bool {
	info, err := g.store.StatObject(ctx, bucket, key)
	if err != nil {
		if !errs.IsNotFound(err) {
			g.log.Warnf("failed to stat %s/%s, uploading: %v", bucket, key, err)
		}
		return false
	}
	return info.Size == int64(len(data)) && sameETag(info.ETag, data)
}

// Fetch copies the published file name (e.g. "users.hcl") to w and returns
// its metadata.
func (g *Generator) Fetch(ctx context.Context, name string, w io.Writer) (*filestore.ObjectInfo, error) {
	if g.store == nil {
		return nil, errs.New(errs.ErrKindInvalidInput, "no object store configured")
	}
	key := g.storeCfg.Key(name)
	obj, err := g.store.GetObject(ctx, g.storeCfg.Bucket, key)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	if _, err := io.Copy(w, obj); err != nil {
		return nil, errs.Wrap(errs.ErrKindIOFailed, "failed to read "+key, err)
	}
	return obj.Info(), nil
}
