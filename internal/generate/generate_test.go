// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/confgen/internal/config"
	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/filesync"
	"grimm.is/confgen/internal/schema"
)

const runConfig = `
schemas = ["schema/*.hcl"]

docs {
  interface_file = "include/api.h"
  see_also       = "schema"
  markdown       = "docs/config.md"
  jsonschema     = "docs/config.schema.json"
}

table {
  output = "conf/config_gen.go"
}
`

const apiSchema = `
method "connection.open" {
  option "cache_size" {
    description = "maximum heap memory to allocate for the cache"
    type        = "int"
    min         = "1MB"
    max         = "10TB"
    default     = "100MB"
    runtime     = true
  }

  option "create" {
    description = "create the database if it does not exist"
    type        = "boolean"
    default     = false
  }
}

method "connection.config" {
  option "eviction_target" {
    description = "continue evicting until the cache is below this level"
    type        = "int"
    default     = 80
  }
}

method "session.create" {
  option "allocation_size" {
    description = "the file unit allocation size, in bytes"
    type        = "int"
    min         = 512
    max         = "128MB"
    default     = 4096
  }

  option "exclusive" {
    description = "fail if the object exists"
    type        = "boolean"
    default     = false
  }
}
`

const apiHeader = `/*
 * Open a connection.
 *
 * @configstart{connection.open, see old}
 * @configend
 */
int open(void);

/*
 * Reconfigure a connection.
 *
 * @configempty{connection.config, see old}
 */
int reconfigure(void);

/*
 * @configstart{session.frob, see old}
 * @configend
 */
`

type project struct {
	dir string
	cfg *config.Config
}

func newProject(t *testing.T, schemaSrc string) *project {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		config.DefaultFile: runConfig,
		"schema/api.hcl":   schemaSrc,
		"include/api.h":    apiHeader,
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	return &project{dir: dir, cfg: cfg}
}

func (p *project) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	require.NoError(t, err)
	return string(data)
}

func statuses(r *Report) map[Output]filesync.Status {
	out := make(map[Output]filesync.Status)
	for _, t := range r.Targets {
		out[t.Output] = t.Status
	}
	return out
}

func TestRun(t *testing.T) {
	p := newProject(t, apiSchema)

	report, err := Run(context.Background(), p.cfg, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Methods)
	assert.Equal(t, []string{filepath.Join(p.dir, "schema", "api.hcl")}, report.SchemaFiles)
	assert.Equal(t, map[Output]filesync.Status{
		OutputInterface:  filesync.Updated,
		OutputMarkdown:   filesync.Created,
		OutputJSONSchema: filesync.Created,
		OutputTable:      filesync.Created,
	}, statuses(report))

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, schema.UnknownMethod, report.Diagnostics[0].Kind)
	assert.Equal(t, "session.frob", report.Diagnostics[0].Method)

	header := p.read(t, "include/api.h")
	assert.Contains(t, header, " * @configstart{connection.open, see schema}\n")
	assert.Contains(t, header, " * @config{create,create the database if it does not exist.,a boolean flag;")
	assert.Contains(t, header, " * @configstart{connection.config, see schema}\n")
	assert.Contains(t, header, " * @configstart{session.frob, see old}\n", "unknown markers are left alone")

	table := p.read(t, "conf/config_gen.go")
	assert.True(t, strings.HasPrefix(table, "// Code generated by confgen from schema/*.hcl. DO NOT EDIT.\n"))
	assert.Contains(t, table, `const confdfl_session_create = "allocation_size=4096,exclusive=0"`)

	assert.Contains(t, p.read(t, "docs/config.md"), "## session.create")
	assert.Contains(t, p.read(t, "docs/config.schema.json"), `"$defs"`)
}

func TestRun_InheritsRuntimeOptions(t *testing.T) {
	p := newProject(t, apiSchema)

	_, err := Run(context.Background(), p.cfg, Options{})
	require.NoError(t, err)

	table := p.read(t, "conf/config_gen.go")
	assert.Contains(t, table, `const confdfl_connection_config = "cache_size=100MB,eviction_target=80"`)
	assert.Contains(t, table, `const confdfl_connection_open = "cache_size=100MB,create=0"`)

	header := p.read(t, "include/api.h")
	assert.Contains(t, header, "@config{cache_size,maximum heap memory to allocate for the cache.")
}

func TestRun_Idempotent(t *testing.T) {
	p := newProject(t, apiSchema)

	_, err := Run(context.Background(), p.cfg, Options{})
	require.NoError(t, err)
	first := p.read(t, "include/api.h")

	report, err := Run(context.Background(), p.cfg, Options{})
	require.NoError(t, err)
	for _, target := range report.Targets {
		assert.Equal(t, filesync.Unchanged, target.Status, target.Path)
	}
	assert.Equal(t, first, p.read(t, "include/api.h"))

	report, err = Run(context.Background(), p.cfg, Options{Check: true})
	require.NoError(t, err)
	assert.Empty(t, report.Stale())
}

func TestRun_CheckReportsStaleAndWritesNothing(t *testing.T) {
	p := newProject(t, apiSchema)

	var diff bytes.Buffer
	report, err := Run(context.Background(), p.cfg, Options{Check: true, Diff: &diff})
	require.Error(t, err)
	assert.Equal(t, errors.KindStale, errors.GetKind(err))
	assert.Len(t, report.Stale(), 4)
	assert.Contains(t, diff.String(), "+ * @configend")

	assert.Equal(t, apiHeader, p.read(t, "include/api.h"))
	assert.NoFileExists(t, filepath.Join(p.dir, "conf", "config_gen.go"))
}

func TestRun_CheckUnreadableTarget(t *testing.T) {
	p := newProject(t, apiSchema)
	table := filepath.Join(p.dir, "conf", "config_gen.go")
	require.NoError(t, os.MkdirAll(table, 0o755))

	var diff bytes.Buffer
	_, err := Run(context.Background(), p.cfg, Options{Check: true, Diff: &diff})
	require.Error(t, err)
	assert.Equal(t, errors.KindIO, errors.GetKind(err))
	attrs := errors.GetAttributes(err)
	assert.Equal(t, table, attrs["path"])
	assert.Equal(t, string(OutputTable), attrs["output"])
	assert.NotContains(t, diff.String(), table)
}

func TestRun_FatalErrorLeavesTargetsUntouched(t *testing.T) {
	p := newProject(t, apiSchema+`
method "session.drop" {
  option "ratio" {
    type = "float"
  }
}
`)

	_, err := Run(context.Background(), p.cfg, Options{})
	require.Error(t, err)
	assert.Equal(t, errors.KindSchema, errors.GetKind(err))
	assert.Equal(t, filepath.Join(p.dir, "schema", "api.hcl"), errors.GetAttributes(err)["path"])
	assert.Equal(t, "ratio", errors.GetAttributes(err)["option"])

	assert.Equal(t, apiHeader, p.read(t, "include/api.h"))
	assert.NoFileExists(t, filepath.Join(p.dir, "conf", "config_gen.go"))
	assert.NoFileExists(t, filepath.Join(p.dir, "docs", "config.md"))
}

func TestRun_UnterminatedBlock(t *testing.T) {
	p := newProject(t, apiSchema)
	require.NoError(t, os.WriteFile(filepath.Join(p.dir, "include/api.h"), []byte(" * @configstart{session.create, see x}\n"), 0o644))

	_, err := Run(context.Background(), p.cfg, Options{})
	require.Error(t, err)
	assert.Equal(t, errors.KindParse, errors.GetKind(err))
	assert.NoFileExists(t, filepath.Join(p.dir, "conf", "config_gen.go"))
}

func TestRun_BadOptionName(t *testing.T) {
	p := newProject(t, apiSchema+`
method "cursor.config" {
  option "bad.name" {}
}
`)

	report, err := Run(context.Background(), p.cfg, Options{})
	require.NoError(t, err)
	assert.Contains(t, report.Diagnostics, schema.Diagnostic{Kind: schema.BadOptionName, Method: "cursor.config", Option: "bad.name"})
}

func TestRun_Cancelled(t *testing.T) {
	p := newProject(t, apiSchema)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, p.cfg, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, apiHeader, p.read(t, "include/api.h"))
}

func TestRun_YAMLSchemaOutput(t *testing.T) {
	p := newProject(t, apiSchema)
	p.cfg.Docs.JSONSchema = "docs/config.schema.yaml"

	_, err := Run(context.Background(), p.cfg, Options{})
	require.NoError(t, err)
	assert.Contains(t, p.read(t, "docs/config.schema.yaml"), "$defs:")
}

func TestResolve_SkipsUnknownPairs(t *testing.T) {
	p := newProject(t, apiSchema)
	p.cfg.Inherit = []config.Inherit{{From: "missing.open", To: "connection.config"}}

	reg, _, err := Resolve(p.cfg)
	require.NoError(t, err)
	m, ok := reg.Lookup("connection.config")
	require.True(t, ok)
	assert.Len(t, m.Options, 1)
}
