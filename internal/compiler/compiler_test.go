package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secmux/sqlmux/internal/model"
)

func TestCompileAllDefaultsIsBareProgram(t *testing.T) {
	cmd := Compile(model.NewOptions())
	assert.True(t, cmd.Empty())
	assert.Equal(t, "sqlmap", cmd.String())
	assert.Equal(t, []string{"sqlmap"}, cmd.Argv())
}

func TestCompileIsDeterministic(t *testing.T) {
	o := model.NewOptions()
	require.NoError(t, o.Set("url", "http://example.com/?id=1"))
	require.NoError(t, o.Set("risk", "2"))
	require.NoError(t, o.SetBool("batch", true))
	require.NoError(t, o.SetBool("technique_time", true))

	first := Compile(o.Snapshot()).String()
	second := Compile(o.Snapshot()).String()
	assert.Equal(t, first, second)
}

func TestCompileOmitsDefaults(t *testing.T) {
	o := model.NewOptions()
	require.NoError(t, o.Set("risk", "1"))
	require.NoError(t, o.Set("level", "1"))
	require.NoError(t, o.Set("timeout", "30"))
	require.NoError(t, o.SetBool("tor", false))

	out := Compile(o).String()
	assert.Equal(t, "sqlmap", out)
	assert.NotContains(t, out, "--risk")
	assert.NotContains(t, out, "--timeout")
	assert.NotContains(t, out, "--tor")
}

func TestTechniqueCanonicalOrder(t *testing.T) {
	o := model.NewOptions()
	// Toggled time-blind first, boolean-blind second; letters must still
	// come out as BT.
	require.NoError(t, o.SetBool("technique_time", true))
	require.NoError(t, o.SetBool("technique_boolean", true))

	assert.Equal(t, "sqlmap --technique=BT", Compile(o).String())
}

func TestTechniqueAllLetters(t *testing.T) {
	o := model.NewOptions()
	for _, key := range []string{
		"technique_inline", "technique_time", "technique_stacked",
		"technique_union", "technique_error", "technique_boolean",
	} {
		require.NoError(t, o.SetBool(key, true))
	}
	assert.Equal(t, "sqlmap --technique=BEUSTQ", Compile(o).String())
}

func TestTechniqueOmittedWhenNoneEnabled(t *testing.T) {
	o := model.NewOptions()
	require.NoError(t, o.SetBool("batch", true))
	assert.NotContains(t, Compile(o).String(), "--technique")
}

func TestCompileExampleScan(t *testing.T) {
	o := model.NewOptions()
	require.NoError(t, o.Set("url", "http://t/x?id=1"))
	require.NoError(t, o.Set("risk", "3"))
	require.NoError(t, o.SetBool("enum_dbs", true))
	require.NoError(t, o.SetBool("technique_union", true))

	cmd := Compile(o)
	assert.Equal(t, `sqlmap -u "http://t/x?id=1" --risk=3 --dbs --technique=U`, cmd.String())
	assert.Equal(t, []string{"sqlmap", "-u", "http://t/x?id=1", "--risk=3", "--dbs", "--technique=U"}, cmd.Argv())
}

func TestCompileEmissionOrderFollowsSchema(t *testing.T) {
	o := model.NewOptions()
	// Set in reverse of emission order on purpose.
	require.NoError(t, o.Set("output_dir", "/tmp/out"))
	require.NoError(t, o.SetBool("dbms_detect", true))
	require.NoError(t, o.SetBool("count", true))
	require.NoError(t, o.Set("database", "shop"))
	require.NoError(t, o.SetBool("verbose", true))
	require.NoError(t, o.Set("delay", "2"))
	require.NoError(t, o.Set("cookie", "sid=abc"))
	require.NoError(t, o.Set("url", "http://t/"))

	want := `sqlmap -u "http://t/" --cookie="sid=abc" --delay=2 -v` +
		` -D "shop" --count --dbms-detect --output-dir="/tmp/out"`
	assert.Equal(t, want, Compile(o).String())
}

func TestQuotingIsVerbatim(t *testing.T) {
	o := model.NewOptions()
	require.NoError(t, o.Set("data", `user=admin&pass=x`))
	assert.Equal(t, `sqlmap --data="user=admin&pass=x"`, Compile(o).String())

	// Argv passes the raw value, never the quotes.
	assert.Equal(t, []string{"sqlmap", "--data=user=admin&pass=x"}, Compile(o).Argv())
}
