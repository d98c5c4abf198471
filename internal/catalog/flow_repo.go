package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shaiso/Simplify/internal/domain"
)

// FlowRepo — репозиторий flows поверх каталога с YAML-файлами.
type FlowRepo struct {
	dir    string
	logger *slog.Logger
}

// NewFlowRepo создаёт новый FlowRepo для каталога dir.
func NewFlowRepo(dir string, logger *slog.Logger) *FlowRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlowRepo{dir: dir, logger: logger}
}

// List возвращает сводки всех flows, отсортированные по имени файла.
//
// Файлы, которые не удалось прочитать или распарсить, пропускаются
// с предупреждением в логе. Если не загрузился ни один flow — ErrNoData.
func (r *FlowRepo) List(ctx context.Context) ([]domain.FlowSummary, error) {
	flows, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.FlowSummary, len(flows))
	for i := range flows {
		summaries[i] = flows[i].Summary()
	}
	return summaries, nil
}

// loadAll загружает все корректные flows каталога.
func (r *FlowRepo) loadAll(ctx context.Context) ([]domain.Flow, error) {
	files, err := r.files()
	if err != nil {
		return nil, err
	}

	var flows []domain.Flow
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		flow, err := r.load(filepath.Join(r.dir, name))
		if err != nil {
			r.logger.Warn("skipping malformed flow file", "file", name, "error", err)
			continue
		}
		flows = append(flows, *flow)
	}

	if len(flows) == 0 {
		return nil, ErrNoData
	}
	return flows, nil
}

// Get загружает flow по идентификатору.
//
// ErrNotFound — файла нет; любая другая ошибка означает проблему чтения
// или разбора документа.
func (r *FlowRepo) Get(ctx context.Context, flowID string) (*domain.Flow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validID(flowID) {
		return nil, ErrNotFound
	}

	flow, err := r.load(documentPath(r.dir, flowID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load flow %s: %w", flowID, err)
	}
	return flow, nil
}

// load читает и валидирует один документ flow.
func (r *FlowRepo) load(path string) (*domain.Flow, error) {
	var flow domain.Flow
	if err := LoadYAML(path, &flow); err != nil {
		return nil, err
	}
	if err := Validate(&flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

// files возвращает отсортированные имена YAML-файлов каталога.
func (r *FlowRepo) files() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("read flows dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !isYAML(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
