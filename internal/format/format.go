// Package format renders raw stored bill values into display strings.
package format

import (
	"fmt"
	"time"

	"github.com/billed-app/billed-server/internal/domain/entity"
)

// French abbreviated month names, indexed by time.Month-1. Truncated to
// three letters the way the reference UI renders them, so both juin and
// juillet come out as "Jui".
var frenchMonths = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// dateLayouts lists the storage forms a bill date may arrive in.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
}

// FormatDate parses a raw stored date and renders it in the short French
// form used by the bills table, e.g. "4 Avr. 04": day without leading zero,
// abbreviated capitalized month, two-digit year. Unparsable input is an
// error the caller must handle.
func FormatDate(raw string) (string, error) {
	var t time.Time
	var err error
	for _, layout := range dateLayouts {
		t, err = time.Parse(layout, raw)
		if err == nil {
			return fmt.Sprintf("%d %s. %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100), nil
		}
	}
	return "", fmt.Errorf("unparsable date %q: %w", raw, err)
}

// FormatStatus maps a raw status to its display label. Unknown values pass
// through unchanged: status corruption is less catastrophic than an
// unparsable date, so unlike FormatDate this never fails.
func FormatStatus(raw string) string {
	switch raw {
	case entity.StatusPending:
		return "En attente"
	case entity.StatusAccepted:
		return "Accepté"
	case entity.StatusRefused:
		return "Refusé"
	default:
		return raw
	}
}
