// Package export turns an analysis result into downloadable documents: a
// fixed-layout plain-text summary and a paginated PDF.
package export

import (
	"fmt"
	"regexp"
	"time"
)

// Format is a document type offered for download.
type Format string

const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "txt"/"text" and "pdf".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "txt", "text":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: must be txt or pdf", s)
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}

// Meta is the submission context printed on every export.
type Meta struct {
	TechnicianName string
	JobSiteName    string
	// Now is the export instant; it drives the printed date and the file name.
	Now time.Time
}

const (
	filePrefix   = "Report"
	siteFallback = "Site"
	notSpecified = "N/A"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

// FileName returns "Report_<site>_<YYYY-MM-DD>.<ext>" with every character of
// the site outside [A-Za-z0-9] replaced by "_".
func FileName(site string, f Format, now time.Time) string {
	name := siteFallback
	if site != "" {
		name = nonAlnum.ReplaceAllString(site, "_")
	}
	return fmt.Sprintf("%s_%s_%s.%s", filePrefix, name, now.UTC().Format(time.DateOnly), f)
}

// printedDate is the short locale-style date shown inside documents.
func printedDate(now time.Time) string {
	return now.Format("1/2/2006")
}

func orNA(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}
