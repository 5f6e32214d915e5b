package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Setenv("CHROME_PATH", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
}

func TestResolveConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := resolveConfig(documentOptions{})
	require.NoError(t, err)
	assert.Equal(t, "professional", cfg.Template)
	assert.Equal(t, "cv.pdf", cfg.Filename)
	assert.Equal(t, 0.98, cfg.ImageQuality)
	assert.Equal(t, "css", cfg.PageBreakMode)
	assert.False(t, cfg.Verbose)
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := writeJSON(t, dir, "config.json", map[string]any{
		"template":       "creative",
		"color":          "teal",
		"filename":       "mine.pdf",
		"export_timeout": "5s",
	})

	cfg, err := resolveConfig(documentOptions{configPath: cfgPath, template: "minimal", width: 400, verbose: true})
	require.NoError(t, err)
	assert.Equal(t, "minimal", cfg.Template)
	assert.Equal(t, "teal", cfg.Color)
	assert.Equal(t, "mine.pdf", cfg.Filename)
	assert.Equal(t, 400, cfg.ContainerWidth)
	assert.Equal(t, "5s", cfg.ExportTimeout)
	assert.True(t, cfg.Verbose)
}

func TestResolveConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHROME_PATH", "/opt/chrome")
	t.Setenv("PORT", "9090")

	cfg, err := resolveConfig(documentOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/opt/chrome", cfg.ChromePath)
	assert.Equal(t, 9090, cfg.Port)
}

func TestResolveConfig_Invalid(t *testing.T) {
	clearEnv(t)

	_, err := resolveConfig(documentOptions{template: "fancy"})
	assert.ErrorContains(t, err, `unknown template "fancy"`)

	_, err = resolveConfig(documentOptions{dataPath: "/nonexistent/cv.json"})
	assert.ErrorContains(t, err, "data file not found")

	_, err = resolveConfig(documentOptions{configPath: "/nonexistent/config.json"})
	assert.Error(t, err)
}

func TestLoadData(t *testing.T) {
	data, err := loadData("", true)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", data.PersonalInfo.FullName)

	_, err = loadData("", false)
	assert.ErrorContains(t, err, "--data or --sample")

	path := writeJSON(t, t.TempDir(), "cv.json", types.SampleCVData())
	data, err = loadData(path, false)
	require.NoError(t, err)
	assert.Equal(t, types.SampleCVData(), data)
}

func TestLoadData_InvalidDocument(t *testing.T) {
	path := writeJSON(t, t.TempDir(), "cv.json", map[string]any{"summary": "no personal info"})
	_, err := loadData(path, false)
	assert.Error(t, err)
}

func TestBuildSession(t *testing.T) {
	clearEnv(t)
	cfg, err := resolveConfig(documentOptions{template: "executive", color: "rose"})
	require.NoError(t, err)

	sess, err := buildSession(cfg, true)
	require.NoError(t, err)
	defer sess.Close()

	tpl := sess.Template()
	assert.Equal(t, types.TemplateExecutive, tpl.ID)
	assert.Equal(t, "rose", tpl.Color)
	assert.Equal(t, "Jane Doe - CV", sess.Title())
}

func TestCreateOutput_MakesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.html")
	f, err := createOutput(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}
