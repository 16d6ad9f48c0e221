package attendance

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/message"
)

const (
	exportTimeLayout = "02/01/2006 15.04.05"
	exportPageSize   = 500
	utf8BOM          = "\ufeff"
)

var exportHeaderKeys = []string{
	"export.no",
	"field.name",
	"field.class",
	"field.phone",
	"field.socialHandle",
	"field.school",
	"field.city",
	"field.province",
	"field.branch",
	"export.created_at",
}

// csvWriter quotes every text field, which encoding/csv only does on demand.
type csvWriter struct {
	w   *bufio.Writer
	err error
}

func newCSVWriter(w io.Writer) *csvWriter {
	return &csvWriter{w: bufio.NewWriter(w)}
}

func (cw *csvWriter) writeString(s string) {
	if cw.err == nil {
		_, cw.err = cw.w.WriteString(s)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func (cw *csvWriter) header(p *message.Printer) {
	labels := make([]string, 0, len(exportHeaderKeys))
	for i, key := range exportHeaderKeys {
		label := p.Sprintf(key)
		if i > 0 {
			label = quote(label)
		}
		labels = append(labels, label)
	}
	cw.writeString(strings.Join(labels, ",") + "\r\n")
}

func (cw *csvWriter) row(no int, a Attendance, loc *time.Location) {
	fields := []string{
		strconv.Itoa(no),
		quote(a.Name),
		quote(a.Class),
		quote(a.Phone),
		quote(a.SocialHandle),
		quote(a.School),
		quote(a.City),
		quote(a.Province),
		quote(a.Branch),
		quote(a.CreatedAt.In(loc).Format(exportTimeLayout)),
	}
	cw.writeString(strings.Join(fields, ",") + "\r\n")
}

func (cw *csvWriter) flush() error {
	if cw.err != nil {
		return cw.err
	}
	return cw.w.Flush()
}

var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

func filenameSegment(s string) string {
	s = unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}
