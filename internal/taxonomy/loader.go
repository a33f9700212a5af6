package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/casemark/taxonomy-mapper/internal/domain"
	"github.com/casemark/taxonomy-mapper/internal/logging"
)

// Resource file layout inside the taxonomy directory.
const (
	parentCategoriesFile = "law_categories/parent_categories.txt"
	subCategoriesDir     = "law_categories/sub_categories"
	subCategoryPrefix    = "sub-categories-"
	subCategorySuffix    = ".txt"
)

// tableRow matches pipe-delimited rows of the form `| 3 | Business Law |`.
// Rows whose first cell is not an integer (e.g. table headers) fall
// through the integer parse and are skipped.
var tableRow = regexp.MustCompile(`\|\s*(\d+)\s*\|\s*([^|]+)\|`)

// Loader parses the flat-file taxonomy definitions into a Store.
// Data-quality gaps (unparseable rows, unmatched subcategory files,
// missing section headers) are skipped with a logged warning; missing
// files and directories are hard errors.
type Loader struct {
	logger logging.Logger
}

// NewLoader creates a loader.
func NewLoader(logger logging.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the taxonomy resource directory and returns a store with
// all parent categories and subcategories. Keyword sets are empty until
// enrichment runs.
func (l *Loader) Load(resourceDir string) (*Store, error) {
	store := NewStore()

	parentNames, err := l.loadParents(store, resourceDir)
	if err != nil {
		return nil, err
	}

	if err := l.loadSubcategories(store, resourceDir, parentNames); err != nil {
		return nil, err
	}

	l.logger.Info("taxonomy loaded",
		"parents", store.ParentCount(),
		"categories", store.Len(),
	)
	return store, nil
}

// loadParents parses the parent category table and section descriptions.
// It returns the id->name table of every row that parsed, including
// rows that were not materialized as categories, because subcategory
// file resolution matches against the raw table.
func (l *Loader) loadParents(store *Store, resourceDir string) (map[int]string, error) {
	path := filepath.Join(resourceDir, parentCategoriesFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parent categories: %w", err)
	}
	content := string(data)

	parentNames := make(map[int]string)
	for _, row := range tableRow.FindAllStringSubmatch(content, -1) {
		id, err := strconv.Atoi(row[1])
		if err != nil {
			l.logger.Warn("skipping row with unparseable id", "file", path, "token", row[1])
			continue
		}
		name := strings.TrimSpace(row[2])

		if _, dup := parentNames[id]; dup {
			l.logger.Warn("skipping duplicate parent id", "file", path, "id", id, "name", name)
			continue
		}
		parentNames[id] = name

		description, ok := sectionBody(content, id, name)
		if !ok {
			l.logger.Warn("parent category has no section header, skipping",
				"file", path, "id", id, "name", name)
			continue
		}

		if err := store.Add(domain.NewCategory(id, name, nil, description)); err != nil {
			return nil, fmt.Errorf("add parent category %d: %w", id, err)
		}
	}

	return parentNames, nil
}

// loadSubcategories walks the sub_categories directory and parses each
// per-parent file. Files whose embedded parent name matches no known
// parent are skipped with a warning rather than failing the load.
func (l *Loader) loadSubcategories(store *Store, resourceDir string, parentNames map[int]string) error {
	dir := filepath.Join(resourceDir, subCategoriesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read subcategories dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, subCategoryPrefix) || !strings.HasSuffix(name, subCategorySuffix) {
			continue
		}

		parentName := strings.ReplaceAll(
			strings.TrimSuffix(strings.TrimPrefix(name, subCategoryPrefix), subCategorySuffix), "-", " ")
		parentID, ok := resolveParent(parentNames, parentName)
		if !ok {
			l.logger.Warn("subcategory file matches no parent category, skipping",
				"file", name, "parent_name", parentName)
			continue
		}

		if err := l.loadSubcategoryFile(store, filepath.Join(dir, name), parentID); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadSubcategoryFile(store *Store, path string, parentID int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read subcategory file: %w", err)
	}
	content := string(data)

	for _, row := range tableRow.FindAllStringSubmatch(content, -1) {
		localID, err := strconv.Atoi(row[1])
		if err != nil {
			l.logger.Warn("skipping row with unparseable id", "file", path, "token", row[1])
			continue
		}
		name := strings.TrimSpace(row[2])

		globalID, err := domain.SubcategoryID(parentID, localID)
		if err != nil {
			return fmt.Errorf("file %s: %w", path, err)
		}

		description, ok := sectionBody(content, localID, name)
		if !ok {
			l.logger.Warn("subcategory has no section header, skipping",
				"file", path, "id", localID, "name", name)
			continue
		}

		pid := parentID
		if err := store.Add(domain.NewCategory(globalID, name, &pid, description)); err != nil {
			l.logger.Warn("dropping subcategory", "file", path, "id", globalID, "error", err)
		}
	}
	return nil
}

// sectionBody extracts the text between the `## <id>. <name>` header
// and the next `## ` header (or end of document).
func sectionBody(content string, id int, name string) (string, bool) {
	header := fmt.Sprintf("## %d. %s", id, name)
	start := strings.Index(content, header)
	if start < 0 {
		return "", false
	}
	start += len(header)

	end := strings.Index(content[start:], "## ")
	if end < 0 {
		end = len(content)
	} else {
		end += start
	}
	return strings.TrimSpace(content[start:end]), true
}

// resolveParent finds a parent id by case-insensitive name match.
func resolveParent(parentNames map[int]string, name string) (int, bool) {
	for id, candidate := range parentNames {
		if strings.EqualFold(candidate, name) {
			return id, true
		}
	}
	return 0, false
}
