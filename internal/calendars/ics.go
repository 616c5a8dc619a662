package calendars

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/models"
)

const calNameProperty = "X-WR-CALNAME"

// ICSDirProvider treats every .ics file in a directory as one calendar.
// The ID is the file name without extension.
type ICSDirProvider struct {
	dir string
}

func NewICSDirProvider(dir string) *ICSDirProvider {
	return &ICSDirProvider{dir: dir}
}

// Calendars lists the directory in file name order. Unparseable files are skipped.
func (p *ICSDirProvider) Calendars(ctx context.Context) ([]models.Calendar, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("read calendar dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".ics") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	result := make([]models.Calendar, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cal, err := p.readCalendar(name)
		if err != nil {
			logger.Warn("Skipping calendar file", "file", name, "error", err)
			continue
		}
		result = append(result, cal)
	}
	return result, nil
}

func (p *ICSDirProvider) readCalendar(name string) (models.Calendar, error) {
	f, err := os.Open(filepath.Join(p.dir, name))
	if err != nil {
		return models.Calendar{}, err
	}
	defer f.Close()

	parsed, err := ical.ParseCalendar(f)
	if err != nil {
		return models.Calendar{}, err
	}

	id := strings.TrimSuffix(name, filepath.Ext(name))
	display := id
	for _, prop := range parsed.CalendarProperties {
		if strings.EqualFold(prop.IANAToken, calNameProperty) && strings.TrimSpace(prop.Value) != "" {
			display = prop.Value
			break
		}
	}
	return models.Calendar{ID: id, DisplayName: display}, nil
}
