package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"stocktally/internal/files"
	"stocktally/pkg/contracts/domain"
)

// Project is the persisted run configuration: the ordered category labels,
// the sources to aggregate, and the filters that become summary columns.
type Project struct {
	Labels  []string              `yaml:"labels"`
	Sources []domain.SourceConfig `yaml:"sources"`
	Filters []domain.ColumnFilter `yaml:"filters"`
}

// SourceByID returns the source with the given ID, if present.
func (p *Project) SourceByID(id string) (domain.SourceConfig, bool) {
	for _, source := range p.Sources {
		if source.ID == id {
			return source, true
		}
	}
	return domain.SourceConfig{}, false
}

// ProjectStore loads and saves project files under an explicit root
// directory. Relative source paths resolve against the root, so a project
// file can travel with its workbooks.
type ProjectStore struct {
	root      string
	logger    *slog.Logger
	validate  *validator.Validate
	discovery *files.Discovery
}

// NewProjectStore creates a project store rooted at root.
func NewProjectStore(root string, logger *slog.Logger) *ProjectStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectStore{
		root:      root,
		logger:    logger,
		validate:  validator.New(),
		discovery: files.NewDiscovery(root),
	}
}

// Load reads the project file at name (relative to the store root).
//
// Entries that fail to rehydrate are dropped rather than failing the load:
// a source whose workbook has gone missing, a source or filter that fails
// validation. Dropped entries are logged, never fatal, so a stale project
// file still yields a usable run for everything that survived. Sources
// without an ID get one assigned, stable until the next Save.
func (s *ProjectStore) Load(name string) (*Project, error) {
	path := s.resolve(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	var raw Project
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}

	project := &Project{Labels: raw.Labels}

	for _, source := range raw.Sources {
		if err := s.validate.Struct(source); err != nil {
			s.logger.Warn("dropping invalid source from project",
				slog.String("source", source.Name()),
				slog.String("error", err.Error()))
			continue
		}
		if !s.discovery.FileExists(source.Path) {
			s.logger.Warn("dropping source with missing workbook",
				slog.String("source", source.Name()),
				slog.String("path", source.Path))
			continue
		}
		if source.ID == "" {
			source.ID = uuid.NewString()
		}
		project.Sources = append(project.Sources, source)
	}

	for _, filter := range raw.Filters {
		if err := s.validate.Struct(filter); err != nil {
			s.logger.Warn("dropping invalid filter from project",
				slog.String("column", filter.Column),
				slog.String("error", err.Error()))
			continue
		}
		project.Filters = append(project.Filters, filter)
	}

	return project, nil
}

// Save writes the project file at name (relative to the store root).
func (s *ProjectStore) Save(name string, project *Project) error {
	data, err := yaml.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to encode project file: %w", err)
	}

	path := s.resolve(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file %s: %w", path, err)
	}

	return nil
}

// ResolveSourcePath returns the absolute path of a source's workbook.
func (s *ProjectStore) ResolveSourcePath(source domain.SourceConfig) string {
	return s.resolve(source.Path)
}

func (s *ProjectStore) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}
