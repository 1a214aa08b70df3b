// Package export renders a link collection as a portable document.
// Formatting is pure: input order (newest first, as delivered by the
// store) is preserved.
package export

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/linklock/linklock-api/internal/models"
)

// Recognized formats. Anything else falls back to JSON; see Format.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// csvHeader is the fixed column order. There is no header-less mode.
var csvHeader = []string{"URL", "Title", "Folder", "Date", "Private"}

// csvDateLayout renders the link's creation date. The upstream design
// formatted per caller locale; the server has none, so en-US short date.
const csvDateLayout = "01/02/2006"

// Format renders links in the requested format. An unrecognized format
// falls back to the JSON document rather than erroring; questionable as a
// default, but long-standing observable behavior.
func Format(links []models.Link, format string) ([]byte, error) {
	if format == FormatCSV {
		return CSV(links), nil
	}
	return JSON(links)
}

// ContentType returns the media type for the given format.
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Extension returns the file extension for the given format.
func Extension(format string) string {
	if format == FormatCSV {
		return "csv"
	}
	return "json"
}

// JSON renders the full link projection, pretty-printed.
func JSON(links []models.Link) ([]byte, error) {
	return json.MarshalIndent(links, "", "  ")
}

// CSV renders the fixed-column document. Every field is quoted,
// unconditionally.
func CSV(links []models.Link) []byte {
	rows := make([]string, 0, len(links)+1)
	rows = append(rows, csvRow(csvHeader))

	for _, l := range links {
		private := "No"
		if l.IsPrivate {
			private = "Yes"
		}
		rows = append(rows, csvRow([]string{
			l.URL,
			l.Title,
			l.Folder,
			csvDate(l.CreatedAt),
			private,
		}))
	}

	return []byte(strings.Join(rows, "\n"))
}

func csvRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

func csvDate(createdAt string) string {
	t, err := time.Parse(models.TimeLayout, createdAt)
	if err != nil {
		return createdAt
	}
	return t.Format(csvDateLayout)
}
