package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"
	"golang.org/x/sync/errgroup"

	formc "github.com/grindlemire/go-formc"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

// compileFlags are shared by generate and check.
type compileFlags struct {
	classes    string
	classpath  string
	types      []string
	jobs       int
	setupName  string
	rootGetter bool
}

func (f *compileFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.classes, "classes", ".", "Directory holding the compiled bound classes")
	fl.StringVar(&f.classpath, "classpath", "", "Extra directories and jars to resolve component classes from")
	fl.StringArrayVar(&f.types, "types", nil, "Type hints file for classes outside the class path (repeatable)")
	fl.IntVarP(&f.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Forms compiled in parallel")
	fl.StringVar(&f.setupName, "setup-name", formc.DefaultSetupMethodName, "Name of the synthetic setup method")
	fl.BoolVar(&f.rootGetter, "root-getter", true, "Add a getter returning the bound root component")
}

func (f *compileFlags) options() []formc.Option {
	return []formc.Option{
		formc.WithSetupMethodName(f.setupName),
		formc.WithRootGetter(f.rootGetter),
	}
}

// resolver chains the type hints, the class path (the classes directory
// first) and the built-in Swing table.
func (f *compileFlags) resolver() (formc.Resolver, func(), error) {
	var chain []formc.Resolver
	for _, path := range f.types {
		hints, err := formc.LoadTypeHints(path)
		if err != nil {
			return nil, nil, err
		}
		chain = append(chain, hints)
	}
	entries := append([]string{f.classes}, typeinfo.SplitList(f.classpath)...)
	cp, err := formc.NewClasspath(entries)
	if err != nil {
		return nil, nil, err
	}
	chain = append(chain, cp, formc.Swing())
	cleanup := func() {
		if err := cp.Close(); err != nil {
			logger.Warning("closing class path:", err)
		}
	}
	return formc.Chain(chain...), cleanup, nil
}

// unit is one form file and the outcome of compiling it.
type unit struct {
	form   string
	class  string
	result *formc.Result
	err    error
}

// compileAll compiles the forms under paths concurrently. Per-form failures
// are recorded on the units; the returned error is for failures that stop
// the whole run.
func compileAll(ctx context.Context, paths []string, flags *compileFlags, write bool) ([]*unit, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := collectFormFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", formExt)
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("found %d form file(s)", len(files)))
	}

	r, cleanup, err := flags.resolver()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	units := make([]*unit, len(files))
	forms := make([]*formc.Form, len(files))
	owners := make(map[string]string)
	for i, path := range files {
		u := &unit{form: path}
		units[i] = u
		f, err := formc.LoadFormFile(path)
		if err != nil {
			u.err = err
			continue
		}
		if f.ClassToBind == "" {
			u.err = errors.New("form names no bound class")
			continue
		}
		u.class = classFilePath(flags.classes, f.ClassToBind)
		if other, ok := owners[u.class]; ok {
			u.err = fmt.Errorf("%s is already bound by %s", f.ClassToBind, other)
			continue
		}
		owners[u.class] = path
		forms[i] = f
	}

	jobs := flags.jobs
	if jobs < 1 {
		jobs = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, u := range units {
		u := u // per-iteration copy for go1.21 loop semantics
		if u.err != nil {
			continue
		}
		f := forms[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u.result, u.err = compileUnit(u, f, r, flags.options(), write)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

func compileUnit(u *unit, f *formc.Form, r formc.Resolver, opts []formc.Option, write bool) (*formc.Result, error) {
	data, err := os.ReadFile(u.class)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("compiling %s -> %s", u.form, u.class))
	}
	// A missing class file compiles as empty input and reports ClassNotFoundError.
	res, err := formc.Compile(data, f, r, opts...)
	if err != nil {
		return nil, err
	}
	if write {
		if err := writeFileAtomic(u.class, res.Class); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// report prints errors and warnings in input order and returns an error
// when any form failed.
func report(w io.Writer, units []*unit) error {
	failed := 0
	for _, u := range units {
		if u.err != nil {
			failed++
			fmt.Fprintf(w, "%s: %s %v\n", u.form, red("error:"), u.err)
			continue
		}
		for _, warning := range u.result.Warnings {
			fmt.Fprintf(w, "%s: %s %s\n", u.form, yellow("warning:"), warning)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d form(s) had errors", failed, len(units))
	}
	return nil
}

func warningCount(units []*unit) int {
	n := 0
	for _, u := range units {
		if u.result != nil {
			n += len(u.result.Warnings)
		}
	}
	return n
}

func newGenerateCmd() *cobra.Command {
	var flags compileFlags
	cmd := &cobra.Command{
		Use:   "generate [path...]",
		Short: "Patch bound classes with the setup methods of their forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := compileAll(cmd.Context(), args, &flags, true)
			if err != nil {
				return err
			}
			if err := report(cmd.ErrOrStderr(), units); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "patched %d class(es), %d warning(s)\n", len(units), warningCount(units))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newCheckCmd() *cobra.Command {
	var flags compileFlags
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Compile forms without writing classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := compileAll(cmd.Context(), args, &flags, false)
			if err != nil {
				return err
			}
			if err := report(cmd.ErrOrStderr(), units); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d form(s), %d warning(s)\n", len(units), warningCount(units))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
