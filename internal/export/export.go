// Package export renders page records as a delimited text table.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/aidanlsb/onenotestats/internal/stats"
)

// DefaultSeparator is the field separator of a .tsv dump.
const DefaultSeparator = "\t"

// TimestampLayout renders timestamps with a 12-hour clock and no AM/PM
// marker, matching the historical dump format.
const TimestampLayout = "2006/01/02 03:04:05"

// LineEnding terminates every rendered line on write.
const LineEnding = "\r\n"

// Header lists the column names in output order.
var Header = []string{
	"PageName",
	"LastModifiedTime",
	"DateTime",
	"PageLevel",
	"IsCurrentlyViewed",
	"Location",
	"Id",
}

// wrap quotes a field. Embedded quotes and separators are left as-is.
func wrap(field string) string {
	return `"` + field + `"`
}

func joinFields(fields []string, sep string) string {
	wrapped := make([]string, len(fields))
	for i, f := range fields {
		wrapped[i] = wrap(f)
	}
	return strings.Join(wrapped, sep)
}

// Row returns the unquoted fields of a record in column order.
func Row(r stats.PageRecord) []string {
	viewed := ""
	if r.IsCurrentlyViewed != nil {
		viewed = *r.IsCurrentlyViewed
	}
	return []string{
		r.Name,
		r.LastModifiedTime.Format(TimestampLayout),
		r.DateTime.Format(TimestampLayout),
		strconv.Itoa(r.PageLevel),
		viewed,
		r.Location,
		r.ID,
	}
}

// Render returns the header line followed by one line per record, in order.
// Lines carry no terminator.
func Render(records []stats.PageRecord, sep string) []string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, joinFields(Header, sep))
	for _, r := range records {
		lines = append(lines, joinFields(Row(r), sep))
	}
	return lines
}

// Write encodes the rendered table to w as UTF-16 little-endian text with a
// byte order mark.
func Write(w io.Writer, records []stats.PageRecord, sep string) error {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	tw := transform.NewWriter(w, enc)
	bw := bufio.NewWriter(tw)

	for _, line := range Render(records, sep) {
		if _, err := bw.WriteString(line + LineEnding); err != nil {
			return fmt.Errorf("failed to write dump line: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush dump: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish dump encoding: %w", err)
	}
	return nil
}
