package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/grindlemire/go-formc/internal/asm"
	"github.com/grindlemire/go-formc/internal/classfile"
)

// Sections of a script archive that are not copied into the work directory.
//
//	args    one formc command line per line
//	classes one bound class per line: dotted name, then name:descriptor fields
//	stdout  lines that must appear in order in standard output
//	stderr  lines that must appear in order in standard error
//	error   text the last command's error must contain; empty means success
var scriptSections = map[string]bool{"args": true, "classes": true, "stdout": true, "stderr": true, "error": true}

func TestScripts(t *testing.T) {
	color.NoColor = true
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)
			runScript(t, ar)
		})
	}
}

func runScript(t *testing.T, ar *txtar.Archive) {
	t.Helper()
	sections := make(map[string]string)
	dir := t.TempDir()
	for _, f := range ar.Files {
		if scriptSections[f.Name] {
			sections[f.Name] = string(f.Data)
			continue
		}
		writeFile(t, filepath.Join(dir, filepath.FromSlash(f.Name)), f.Data)
	}
	for _, line := range lines(sections["classes"]) {
		fields := strings.Fields(line)
		writeFile(t, classFilePath(filepath.Join(dir, "classes"), fields[0]), boundClass(t, fields[0], fields[1:]))
	}
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })

	var stdout, stderr bytes.Buffer
	var err error
	for _, line := range lines(sections["args"]) {
		root := newRootCmd()
		root.SetOut(&stdout)
		root.SetErr(&stderr)
		root.SetArgs(strings.Fields(line))
		err = root.Execute()
		if err != nil {
			break
		}
	}

	if want := strings.TrimSpace(sections["error"]); want != "" {
		require.Error(t, err)
		require.Contains(t, err.Error(), want)
	} else {
		require.NoError(t, err, "stderr:\n%s", stderr.String())
	}
	requireLines(t, "stdout", stdout.String(), sections["stdout"])
	requireLines(t, "stderr", stderr.String(), sections["stderr"])
}

// boundClass builds a class extending Object with private fields given as
// name:descriptor and a no-argument constructor calling super().
func boundClass(t *testing.T, dotted string, fields []string) []byte {
	t.Helper()
	f := classfile.NewFile(classfile.InternalName(dotted), "java/lang/Object")
	for _, fld := range fields {
		name, desc, ok := strings.Cut(fld, ":")
		require.True(t, ok, "field %q", fld)
		f.AddField(classfile.AccPrivate, name, desc)
	}
	b := asm.New(f.Pool, 0)
	b.LoadThis()
	b.InvokeSpecial("java/lang/Object", classfile.ConstructorName, "()V")
	b.Return()
	code, err := b.Code()
	require.NoError(t, err)
	require.NoError(t, f.PutMethod(classfile.AccPublic, classfile.ConstructorName, "()V", code))
	data, err := f.Bytes()
	require.NoError(t, err)
	return data
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" && !strings.HasPrefix(l, "#") {
			out = append(out, l)
		}
	}
	return out
}

// requireLines asserts that every wanted line is contained, in order, in
// some line of got.
func requireLines(t *testing.T, stream, got, want string) {
	t.Helper()
	gotLines := strings.Split(got, "\n")
	i := 0
	for _, w := range lines(want) {
		for i < len(gotLines) && !strings.Contains(gotLines[i], w) {
			i++
		}
		require.Less(t, i, len(gotLines), "%s is missing %q after earlier matches:\n%s", stream, w, got)
		i++
	}
}

func TestCollectFormFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"a.form.yaml",
		"b.yaml",
		"sub/c.form.yaml",
		"sub/deeper/d.form.yaml",
		".hidden/e.form.yaml",
	} {
		writeFile(t, filepath.Join(dir, filepath.FromSlash(name)), []byte("class: x\n"))
	}

	type tc struct {
		paths []string
		want  []string
	}

	tests := map[string]tc{
		"directory": {
			paths: []string{dir},
			want:  []string{"a.form.yaml"},
		},
		"recursive": {
			paths: []string{dir + "/..."},
			want:  []string{"a.form.yaml", "sub/c.form.yaml", "sub/deeper/d.form.yaml"},
		},
		"file": {
			paths: []string{filepath.Join(dir, "sub", "c.form.yaml")},
			want:  []string{"sub/c.form.yaml"},
		},
		"other extension": {
			paths: []string{filepath.Join(dir, "b.yaml")},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			files, err := collectFormFiles(tt.paths)
			require.NoError(t, err)
			var rel []string
			for _, f := range files {
				r, err := filepath.Rel(dir, f)
				require.NoError(t, err)
				rel = append(rel, filepath.ToSlash(r))
			}
			require.Equal(t, tt.want, rel)
		})
	}

	_, err := collectFormFiles([]string{filepath.Join(dir, "missing")})
	require.Error(t, err)
}

func TestClassFilePath(t *testing.T) {
	require.Equal(t, filepath.Join("out", "demo", "Login.class"), classFilePath("out", "demo.Login"))
	require.Equal(t, filepath.Join("out", "Top.class"), classFilePath("out", "Top"))
}
