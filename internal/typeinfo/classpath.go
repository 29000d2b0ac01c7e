package typeinfo

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/untillpro/goutils/logger"

	"github.com/grindlemire/go-formc/internal/classfile"
)

// DefaultCacheSize is the number of resolved classes a Classpath keeps.
const DefaultCacheSize = 1024

// Classpath resolves classes from directories and jar files, in order.
// It is safe for concurrent use.
type Classpath struct {
	entries []string
	cache   *lru.Cache[string, *ClassInfo]

	mu   sync.Mutex
	jars map[string]*zip.ReadCloser
}

// NewClasspath returns a resolver over entries. Each entry is a directory
// laid out by package or a .jar/.zip archive.
func NewClasspath(entries []string, cacheSize int) (*Classpath, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *ClassInfo](cacheSize)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if _, err := os.Stat(e); err != nil {
			return nil, fmt.Errorf("class path entry: %w", err)
		}
	}
	return &Classpath{entries: entries, cache: cache, jars: make(map[string]*zip.ReadCloser)}, nil
}

// SplitList splits a class path string on the OS list separator.
func SplitList(path string) []string {
	var out []string
	for _, e := range filepath.SplitList(path) {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

func (c *Classpath) Resolve(name string) (*ClassInfo, error) {
	if info, ok := c.cache.Get(name); ok {
		return info, nil
	}
	file := classfile.InternalName(name) + ".class"
	for _, e := range c.entries {
		data, err := c.read(e, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		cf, err := classfile.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s in %s: %w", file, e, err)
		}
		info, err := FromClassFile(cf)
		if err != nil {
			return nil, fmt.Errorf("%s in %s: %w", file, e, err)
		}
		if logger.IsVerbose() {
			logger.Verbose(fmt.Sprintf("resolved %s from %s", name, e))
		}
		c.cache.Add(name, info)
		return info, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (c *Classpath) read(entry, file string) ([]byte, error) {
	if !isArchive(entry) {
		return os.ReadFile(filepath.Join(entry, filepath.FromSlash(file)))
	}
	jar, err := c.open(entry)
	if err != nil {
		return nil, err
	}
	f, err := jar.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (c *Classpath) open(entry string) (*zip.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if jar, ok := c.jars[entry]; ok {
		return jar, nil
	}
	jar, err := zip.OpenReader(entry)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", entry, err)
	}
	c.jars[entry] = jar
	return jar, nil
}

func isArchive(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jar" || ext == ".zip"
}

// Close releases the open archives.
func (c *Classpath) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for name, jar := range c.jars {
		errs = append(errs, jar.Close())
		delete(c.jars, name)
	}
	return errors.Join(errs...)
}
