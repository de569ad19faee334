package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"two-lights", "Two Lights"},
		{"red_sphere", "Red Sphere"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

// writeScene writes content to dir/name and returns the path
func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

const minimalScene = `spheres:
  - center: [0, 0, -1]
    radius: 0.5
    color: [1, 0, 0]
`

func TestParseMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.yaml",
			content: `# Scene: Two Lights
# Description: Red sphere lit from both sides
# Group: Lighting Tests

` + minimalScene,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Two Lights",
				Description: "Red sphere lit from both sides",
				Group:       "Lighting Tests",
				Type:        "file",
			},
		},
		{
			name: "partial_metadata.yaml",
			content: `# Scene: Lonely Sphere
` + minimalScene,
			expected: SceneInfo{
				ID:    "file:partial_metadata",
				Name:  "Lonely Sphere",
				Group: "Scene Files",
				Type:  "file",
			},
		},
		{
			name:    "no_metadata.yaml",
			content: minimalScene,
			expected: SceneInfo{
				ID:    "file:no_metadata",
				Name:  "No Metadata",
				Group: "Scene Files",
				Type:  "file",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScene(t, dir, tc.name, tc.content)

			result, err := ParseMetadata(path)
			if err != nil {
				t.Fatalf("ParseMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if diff := cmp.Diff(tc.expected, result); diff != "" {
				t.Errorf("ParseMetadata() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "b.yaml", "# Scene: Beta\n"+minimalScene)
	writeScene(t, dir, "a.yml", "# Scene: Alpha\n"+minimalScene)
	writeScene(t, dir, "notes.txt", "not a scene")

	scenes, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	var names []string
	for _, s := range scenes {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"Alpha", "Beta"}, names); diff != "" {
		t.Errorf("Discover() names mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_MissingDirectory(t *testing.T) {
	scenes, err := Discover(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", scenes)
	}
}

func TestListAll(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "zeta.yaml", "# Group: Z Group\n"+minimalScene)
	writeScene(t, dir, "alpha.yaml", minimalScene)

	response, err := ListAll(dir)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}

	var groups []string
	for _, g := range response.Groups {
		groups = append(groups, g.Name)
	}
	if diff := cmp.Diff([]string{"Built-in Scenes", "Scene Files", "Z Group"}, groups); diff != "" {
		t.Fatalf("Group order mismatch (-want +got):\n%s", diff)
	}

	var builtinIDs []string
	for _, s := range response.Groups[0].Scenes {
		builtinIDs = append(builtinIDs, s.ID)
	}
	if diff := cmp.Diff([]string{"default", "shadows", "sphere-grid"}, builtinIDs); diff != "" {
		t.Errorf("Built-in scenes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "single.yaml", "# Scene: Single\nname: Single\n"+minimalScene)

	t.Run("builtin", func(t *testing.T) {
		cfg, err := Resolve("shadows", dir)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if cfg.Name != "Shadows" {
			t.Errorf("Expected Shadows scene, got %q", cfg.Name)
		}
	})

	t.Run("file id", func(t *testing.T) {
		cfg, err := Resolve("file:single", dir)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if cfg.Name != "Single" || len(cfg.Spheres) != 1 {
			t.Errorf("Unexpected scene: %+v", cfg)
		}
	})

	t.Run("path", func(t *testing.T) {
		cfg, err := Resolve(path, "")
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
			t.Errorf("Expected default size, got %dx%d", cfg.Width, cfg.Height)
		}
	})

	for _, id := range []string{"cornell-box", "file:missing", "missing.yaml"} {
		t.Run("unknown "+id, func(t *testing.T) {
			_, err := Resolve(id, dir)
			if errors.Cause(err) != ErrUnknownScene {
				t.Errorf("Expected ErrUnknownScene, got %v", err)
			}
		})
	}
}

func TestResolveID_IgnoresPaths(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	path := writeScene(t, outside, "private.yaml", "name: Private\n"+minimalScene)
	writeScene(t, dir, "public.yaml", "name: Public\n"+minimalScene)

	rel, err := filepath.Rel(dir, path)
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{path, rel, "file:" + rel, "file:private"} {
		t.Run(id, func(t *testing.T) {
			_, err := ResolveID(id, dir)
			if errors.Cause(err) != ErrUnknownScene {
				t.Errorf("Expected ErrUnknownScene, got %v", err)
			}
		})
	}

	cfg, err := ResolveID("file:public", dir)
	if err != nil {
		t.Fatalf("ResolveID() error: %v", err)
	}
	if cfg.Name != "Public" {
		t.Errorf("Expected Public scene, got %q", cfg.Name)
	}
}
