package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSONConfig(t *testing.T) {
	path := writeConfig(t, "apps_config.json", `{
		"apps": [
			{
				"name": "PDF Expert",
				"additional_locations": ["/opt/pdf-expert"],
				"deep_home_search": true,
				"patterns": ["~/Library/**/pdfexpert*"]
			},
			{"name": "VLC"}
		]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Apps, 2)
	assert.Equal(t, []string{"PDF Expert", "VLC"}, cfg.AppNames())
	assert.Equal(t, []string{"/opt/pdf-expert"}, cfg.Apps[0].AdditionalLocations)
	assert.True(t, cfg.Apps[0].DeepHomeSearch)
	assert.Equal(t, []string{"~/Library/**/pdfexpert*"}, cfg.Apps[0].Patterns)
	assert.False(t, cfg.Apps[1].DeepHomeSearch)
}

func TestLoadYAMLConfig(t *testing.T) {
	path := writeConfig(t, "apps.yaml", `
apps:
  - name: Transmission
    additional_locations:
      - /opt/transmission
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Apps, 1)
	assert.Equal(t, "Transmission", cfg.Apps[0].Name)
}

func TestLoadAnchorsRelativePathsAtConfigDir(t *testing.T) {
	path := writeConfig(t, "apps_config.json", `{
		"apps": [{"name": "Foo", "additional_locations": ["data/foo"], "installation_path": "installers/foo.pkg"}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	base := filepath.Dir(path)
	assert.Equal(t, filepath.Join(base, "data", "foo"), cfg.Apps[0].AdditionalLocations[0])
	assert.Equal(t, filepath.Join(base, "installers", "foo.pkg"), cfg.Apps[0].InstallationPath)
}

func TestLoadTrimsAppName(t *testing.T) {
	path := writeConfig(t, "apps_config.json", `{"apps": [{"name": "  Foo  "}]}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Foo", cfg.Apps[0].Name)
}

func TestLoadRejectsEmptyAppName(t *testing.T) {
	path := writeConfig(t, "apps_config.json", `{"apps": [{"name": "   "}]}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadRejectsEmptyAdditionalLocation(t *testing.T) {
	path := writeConfig(t, "apps_config.json", `{"apps": [{"name": "Foo", "additional_locations": [" "]}]}`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeConfig(t, "apps_config.json", `{"apps": [`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadAllMergesInOrder(t *testing.T) {
	first := writeConfig(t, "a.json", `{"apps": [{"name": "Foo"}]}`)
	second := writeConfig(t, "b.json", `{"apps": [{"name": "Bar"}]}`)

	cfg, err := LoadAll([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo", "Bar"}, cfg.AppNames())
}

func TestLoadAllFailsFast(t *testing.T) {
	good := writeConfig(t, "a.json", `{"apps": [{"name": "Foo"}]}`)

	_, err := LoadAll([]string{good, filepath.Join(t.TempDir(), "missing.json")})
	assert.ErrorIs(t, err, ErrInvalid)
}
