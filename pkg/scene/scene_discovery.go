package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
	filePrefix   = "file:"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier, accepted by Resolve
	Name        string `json:"name"`               // Scene name
	Description string `json:"description"`        // Optional description
	Group       string `json:"group"`              // Grouping category
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the YAML file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// findScenesDir returns dir, or the first existing default location when dir is empty
func findScenesDir(dir string) string {
	if dir != "" {
		return dir
	}
	for _, path := range []string{"scenes", "../scenes"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Discover scans dir for *.yaml and *.yml scene files. A missing directory
// yields an empty list.
func Discover(dir string) ([]SceneInfo, error) {
	dir = findScenesDir(dir)
	if dir == "" {
		return []SceneInfo{}, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan scenes directory")
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseMetadata extracts metadata from the leading comment block of a scene
// file. Recognised lines are "# Scene:", "# Description:" and "# Group:".
func ParseMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       filePrefix + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    fileGroup,
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, errors.Wrapf(err, "failed to open scene %s", filePath)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			info.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			info.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
		}
	}

	return info, scanner.Err()
}

// BuiltinInfos describes the built-in scenes
func BuiltinInfos() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, id := range BuiltinNames() {
		cfg := builtinScenes[id]()
		infos = append(infos, SceneInfo{
			ID:          id,
			Name:        cfg.Name,
			Description: cfg.Description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	return infos
}

// ListAll returns built-in and file scenes grouped by category, built-ins
// first and the remaining groups alphabetically
func ListAll(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := Discover(dir)
	if err != nil {
		return response, errors.Wrap(err, "failed to list scene files")
	}
	allScenes := append(BuiltinInfos(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, info := range allScenes {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtins, ok := groupMap[builtinGroup]; ok {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: builtins})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// ResolveID returns the scene named by a built-in name or a "file:<name>"
// ID found by Discover(dir). Paths are never opened.
func ResolveID(id, dir string) (*Config, error) {
	if cfg, ok := Builtin(id); ok {
		return cfg, nil
	}

	if name, ok := strings.CutPrefix(id, filePrefix); ok {
		scenes, err := Discover(dir)
		if err != nil {
			return nil, err
		}
		for _, info := range scenes {
			if info.ID == filePrefix+name {
				return Load(info.FilePath)
			}
		}
		return nil, errors.Wrapf(ErrUnknownScene, "%q", id)
	}

	return nil, errors.Wrapf(ErrUnknownScene, "%q (built-in scenes: %s)", id, strings.Join(BuiltinNames(), ", "))
}

// Resolve is ResolveID that also accepts a path to a YAML file. Only for
// trusted input such as command-line flags.
func Resolve(id, dir string) (*Config, error) {
	ext := filepath.Ext(id)
	if _, builtin := builtinScenes[id]; !builtin && (ext == ".yaml" || ext == ".yml") {
		if _, err := os.Stat(id); err == nil {
			return Load(id)
		}
	}
	return ResolveID(id, dir)
}

// titleCase converts a filename-style string to title case
// e.g., "two-lights" -> "Two Lights"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}

// String describes the scene for logs
func (s SceneInfo) String() string {
	if s.Description == "" {
		return fmt.Sprintf("%s (%s)", s.Name, s.ID)
	}
	return fmt.Sprintf("%s (%s): %s", s.Name, s.ID, s.Description)
}
