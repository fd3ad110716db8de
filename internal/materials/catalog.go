// Package materials holds the material catalog: densities, the data
// directory, and table loading.
package materials

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/user/radsim_go/internal/errors"
	"github.com/user/radsim_go/internal/parser"
)

// ID identifies a material. It doubles as the data file basename.
type ID string

const (
	Aluminium ID = "aluminium"
	Titanium  ID = "titanium"
	Steel     ID = "steel"
	Iron      ID = "iron"
)

// TableExt is the extension of material data files.
const TableExt = ".txt"

// DefaultDensities returns the densities (g/cm³) of the supported materials.
// A fresh map is returned on every call.
func DefaultDensities() map[ID]float64 {
	return map[ID]float64{
		Aluminium: 2.7,
		Titanium:  4.5,
		Steel:     7.8,
		Iron:      7.87,
	}
}

// Catalog is the read-only material configuration shared by all requests.
// It is safe for concurrent use.
type Catalog struct {
	dataDir   string
	densities map[ID]float64
	ids       []ID
}

// NewCatalog builds a catalog over dataDir. The densities map is copied.
func NewCatalog(dataDir string, densities map[ID]float64) (*Catalog, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory is empty")
	}
	if len(densities) == 0 {
		return nil, fmt.Errorf("no material densities configured")
	}
	c := &Catalog{
		dataDir:   dataDir,
		densities: make(map[ID]float64, len(densities)),
		ids:       make([]ID, 0, len(densities)),
	}
	for id, density := range densities {
		if err := validateID(id); err != nil {
			return nil, err
		}
		if !(density > 0) {
			return nil, fmt.Errorf("density for %s must be > 0, got %v", id, density)
		}
		c.densities[id] = density
		c.ids = append(c.ids, id)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return c, nil
}

// NewDefaultCatalog builds a catalog of the supported materials over dataDir.
func NewDefaultCatalog(dataDir string) (*Catalog, error) {
	return NewCatalog(dataDir, DefaultDensities())
}

// DataDir returns the directory holding the material tables.
func (c *Catalog) DataDir() string {
	return c.dataDir
}

// IDs returns the catalog materials in alphabetical order.
func (c *Catalog) IDs() []ID {
	return append([]ID(nil), c.ids...)
}

// Density returns the density of id in g/cm³.
func (c *Catalog) Density(id ID) (float64, error) {
	density, ok := c.densities[id]
	if !ok {
		return 0, apperrors.New(apperrors.CodeUnknownMaterial, fmt.Sprintf("no density for material %q", id))
	}
	return density, nil
}

// TablePath resolves the data file path of id.
func (c *Catalog) TablePath(id ID) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	return filepath.Join(c.dataDir, string(id)+TableExt), nil
}

// LoadTable reads and parses the table of id. Every call reads the file
// again and returns a new table.
func (c *Catalog) LoadTable(id ID) (*parser.MaterialTable, error) {
	path, err := c.TablePath(id)
	if err != nil {
		return nil, err
	}
	table, err := parser.LoadMaterialTable(path)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeNotFound {
			return nil, apperrors.New(apperrors.CodeNotFound,
				fmt.Sprintf("data file for %s not found: %s", id, path))
		}
		return nil, err
	}
	return table, nil
}

// CheckLockstep verifies that every catalog material has a data file and
// every data file in the data directory has a density entry.
func (c *Catalog) CheckLockstep() error {
	var problems []string
	for _, id := range c.ids {
		path, _ := c.TablePath(id)
		info, err := os.Stat(path)
		switch {
		case err != nil:
			problems = append(problems, fmt.Sprintf("missing data file for %s: %s", id, path))
		case info.IsDir():
			problems = append(problems, fmt.Sprintf("data file for %s is a directory: %s", id, path))
		}
	}

	entries, err := os.ReadDir(c.dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, TableExt) {
			continue
		}
		id := ID(strings.TrimSuffix(name, TableExt))
		if _, ok := c.densities[id]; !ok {
			problems = append(problems, fmt.Sprintf("data file %s has no density entry", name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("catalog and data directory disagree:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// ParseID normalizes a user-supplied material name.
func ParseID(name string) ID {
	return ID(strings.ToLower(strings.TrimSpace(name)))
}

func validateID(id ID) error {
	s := string(id)
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) || strings.ContainsRune(s, 0) {
		return apperrors.New(apperrors.CodeInvalidParameter, fmt.Sprintf("invalid material identifier %q", s))
	}
	return nil
}
