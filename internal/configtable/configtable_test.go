// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configtable

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/schema"
)

func sessionCreate() schema.Method {
	return schema.Method{Name: "session.create", Options: []schema.ConfigItem{
		{Name: "exclusive", Default: schema.BoolLiteral(false), Flags: schema.Flags{Type: schema.TypeBoolean}},
		{Name: "allocation_size", Default: schema.IntLiteral(4096), Flags: schema.Flags{Type: schema.TypeInt, Min: "512", Max: "134217728"}},
	}}
}

// constValues parses generated source and returns each constant's value.
func constValues(t *testing.T, src []byte) map[string]string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	require.NoError(t, err)

	values := make(map[string]string)
	ast.Inspect(f, func(n ast.Node) bool {
		vs, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		values[vs.Names[0].Name] = concatLiterals(t, vs.Values[0])
		return false
	})
	return values
}

func concatLiterals(t *testing.T, e ast.Expr) string {
	switch v := e.(type) {
	case *ast.BasicLit:
		s, err := strconv.Unquote(v.Value)
		require.NoError(t, err)
		return s
	case *ast.BinaryExpr:
		return concatLiterals(t, v.X) + concatLiterals(t, v.Y)
	}
	t.Fatalf("unexpected expression %T", e)
	return ""
}

func TestGenerate_Scenario(t *testing.T) {
	reg := schema.NewRegistry(sessionCreate())
	src, err := Generate(reg, Options{})
	require.NoError(t, err)

	want := "// Code generated by confgen from confgen.hcl. DO NOT EDIT.\n\n" +
		"package conf\n\n" +
		"// confdfl_session_create holds the default configuration for session.create.\n" +
		"const confdfl_session_create = \"allocation_size=4096,exclusive=0\"\n\n" +
		"// confchk_session_create holds the configuration checks for session.create.\n" +
		"const confchk_session_create = \"allocation_size=(type=int,min=512,max=134217728),\" +\n" +
		"\t\"exclusive=(type=boolean)\"\n"
	assert.Equal(t, want, string(src))
}

func TestGenerate_EmptyMethodStillEmitsConstants(t *testing.T) {
	reg := schema.NewRegistry(schema.Method{Name: "session.close"})
	src, err := Generate(reg, Options{Package: "wt", DefaultPrefix: "dfl_", CheckPrefix: "chk_", Source: "dist/schema"})
	require.NoError(t, err)

	values := constValues(t, src)
	require.Contains(t, values, "dfl_session_close")
	require.Contains(t, values, "chk_session_close")
	assert.Empty(t, values["dfl_session_close"])
	assert.Empty(t, values["chk_session_close"])
	assert.Contains(t, string(src), "package wt\n")
	assert.Contains(t, string(src), "from dist/schema.")
}

func TestGenerate_WrapReassembles(t *testing.T) {
	var opts []schema.ConfigItem
	for i := range 30 {
		opts = append(opts, schema.ConfigItem{
			Name:    fmt.Sprintf("opt_%02d", i),
			Default: schema.IntLiteral(int64(i * 1024)),
			Flags:   schema.Flags{Min: "0", Max: "1GB", Choices: []string{"x"}},
		})
	}
	m := schema.Method{Name: "connection.open", Options: opts}
	src, err := Generate(schema.NewRegistry(m), Options{})
	require.NoError(t, err)

	values := constValues(t, src)
	assert.Equal(t, Defaults(m), values["confdfl_connection_open"])
	assert.Equal(t, Checks(m), values["confchk_connection_open"])

	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, `"`) {
			continue
		}
		lit := strings.TrimSuffix(line, " +")
		s, err := strconv.Unquote(lit)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(s), 72)
	}
}

func TestGenerate_SortedAndDeterministic(t *testing.T) {
	a := schema.NewRegistry(
		schema.Method{Name: "session.create", Options: []schema.ConfigItem{{Name: "b"}, {Name: "a"}}},
		schema.Method{Name: "connection.open", Options: []schema.ConfigItem{{Name: "z"}}},
	)
	b := schema.NewRegistry(
		schema.Method{Name: "connection.open", Options: []schema.ConfigItem{{Name: "z"}}},
		schema.Method{Name: "session.create", Options: []schema.ConfigItem{{Name: "a"}, {Name: "b"}}},
	)

	sa, err := Generate(a, Options{})
	require.NoError(t, err)
	sb, err := Generate(b, Options{})
	require.NoError(t, err)
	assert.Equal(t, string(sa), string(sb))

	s := string(sa)
	assert.Less(t, strings.Index(s, "confdfl_connection_open"), strings.Index(s, "confdfl_session_create"))
	assert.Contains(t, s, `"a=\"\",b=\"\""`)
}

func TestGenerate_DedupsOptions(t *testing.T) {
	m := schema.Method{Name: "m", Options: []schema.ConfigItem{
		{Name: "dup", Default: schema.StringLiteral("first")},
		{Name: "dup", Default: schema.StringLiteral("second")},
	}}
	src, err := Generate(schema.NewRegistry(m), Options{})
	require.NoError(t, err)
	assert.Equal(t, "dup=first", constValues(t, src)["confdfl_m"])
}

func TestGenerate_ChoicesAreQuoted(t *testing.T) {
	m := schema.Method{Name: "m", Options: []schema.ConfigItem{
		{Name: "isolation", Default: schema.StringLiteral("snapshot"), Flags: schema.Flags{Choices: []string{"read-committed", "snapshot"}}},
	}}
	src, err := Generate(schema.NewRegistry(m), Options{})
	require.NoError(t, err)
	assert.Equal(t, `isolation=(choices=["read-committed","snapshot"])`, constValues(t, src)["confchk_m"])
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		methods []schema.Method
		opts    Options
		kind    errors.Kind
		method  string
	}{
		{
			name:    "unknown option type",
			methods: []schema.Method{{Name: "m", Options: []schema.ConfigItem{{Name: "x", Flags: schema.Flags{Type: "float"}}}}},
			kind:    errors.KindSchema,
			method:  "m",
		},
		{
			name:    "method name is not an identifier",
			methods: []schema.Method{{Name: "bad-name"}},
			kind:    errors.KindSchema,
			method:  "bad-name",
		},
		{
			name:    "suffixes collide",
			methods: []schema.Method{{Name: "session.create"}, {Name: "session_create"}},
			kind:    errors.KindSchema,
			method:  "session_create",
		},
		{
			name:    "bad package clause",
			methods: []schema.Method{{Name: "m"}},
			opts:    Options{Package: "my-pkg"},
			kind:    errors.KindFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(schema.NewRegistry(tt.methods...), tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.GetKind(err))
			if tt.method != "" {
				assert.Equal(t, tt.method, errors.GetAttributes(err)["method"])
			}
		})
	}
}

func TestGenerate_CollisionNamesBothMethods(t *testing.T) {
	reg := schema.NewRegistry(schema.Method{Name: "session.create"}, schema.Method{Name: "session_create"})
	_, err := Generate(reg, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.create")
	assert.Contains(t, err.Error(), "session_create")
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "session_open_cursor", Identifier("session.open_cursor"))
	assert.Equal(t, "engine_open", Identifier("engine_open"))
}
