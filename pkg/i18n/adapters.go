package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path"
)

// TranslationAdapter loads translation bundles from some source.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations from an in-memory map.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single translation file from disk.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter returns nil if parser is nil or path is empty.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if parser == nil || path == "" {
		return nil
	}
	return &FileAdapter{parser: parser, path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrFailedToReadFile, a.path)
	}

	translations, err := a.parser.Parse(ctx, content)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, err)
	}
	return translations, nil
}

// FSAdapter loads every file in dir that the parser understands and merges
// them. It works with embed.FS as well as os.DirFS. Files that fail to
// parse are logged and skipped.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
	logger *slog.Logger
}

// NewFSAdapter returns nil if parser or fsys is nil. An empty dir means the
// root of fsys.
func NewFSAdapter(parser Parser, fsys fs.FS, dir string, logger *slog.Logger) *FSAdapter {
	if parser == nil || fsys == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir, logger: logger}
}

// NewDirectoryAdapter loads translation files from a directory on disk.
func NewDirectoryAdapter(parser Parser, dir string, logger *slog.Logger) *FSAdapter {
	if dir == "" {
		return nil
	}
	return NewFSAdapter(parser, os.DirFS(dir), ".", logger)
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrFailedToAccessDirectory, err)
		}
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	all := make(map[string]map[string]any)
	loaded := 0

	for _, entry := range entries {
		if entry.IsDir() || !a.parser.SupportsFileExtension(path.Ext(entry.Name())) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		if err := a.loadFile(ctx, name, all); err != nil {
			a.logger.WarnContext(ctx, "Skipping translation file", "file", name, "error", err)
			continue
		}
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTranslationFiles, a.dir)
	}
	return all, nil
}

func (a *FSAdapter) loadFile(ctx context.Context, name string, all map[string]map[string]any) error {
	content, err := fs.ReadFile(a.fsys, name)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrFailedToReadFile, name)
	}

	translations, err := a.parser.Parse(ctx, content)
	if err != nil {
		return errors.Join(ErrFailedToParseFile, err)
	}

	for lang, msgs := range translations {
		if all[lang] == nil {
			all[lang] = make(map[string]any, len(msgs))
		}
		maps.Copy(all[lang], msgs)
	}
	return nil
}
