// Package xdfio emits detected maps as an XDF document: the tuner-
// community XML format describing a calibration table's layout inside
// an image. Emission is deterministic modulo the document's Generated
// timestamp, which Write takes as an explicit parameter rather than
// reading the system clock.
package xdfio

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ms42scan/ms42scan/model"
)

// timeLayout is the ISO-8601 UTC form used for <Generated>.
const timeLayout = "2006-01-02T15:04:05Z"

// Write emits maps as an XDF document: a Header naming the tool and
// the generation instant, followed by one Map element per candidate
// with optional XAxis/YAxis and row-major Values. The offset attribute
// is unpadded lower-case hex with a 0x prefix.
func Write(w io.Writer, maps []model.DetectedMap, tool string, generated time.Time) error {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString("<XDF>\n")
	b.WriteString("  <Header>")
	b.WriteString("<Tool>")
	b.WriteString(escapeText(tool))
	b.WriteString("</Tool>")
	b.WriteString("<Generated>")
	b.WriteString(generated.UTC().Format(timeLayout))
	b.WriteString("</Generated>")
	b.WriteString("</Header>\n")
	b.WriteString("  <Maps>\n")

	for _, m := range maps {
		writeMap(&b, m)
	}

	b.WriteString("  </Maps>\n")
	b.WriteString("</XDF>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("xdfio: writing XDF: %w: %w", model.ErrWriteFailure, err)
	}
	return nil
}

func writeMap(b *strings.Builder, m model.DetectedMap) {
	fmt.Fprintf(b, "    <Map name=\"%s\" offset=\"0x%x\" rows=\"%d\" cols=\"%d\" elementSize=\"%d\">\n",
		escapeAttr(m.Name), m.Offset, m.Rows, m.Cols, m.ElementSize,
	)

	if len(m.AxisX) > 0 {
		b.WriteString("      <XAxis>")
		for _, v := range m.AxisX {
			fmt.Fprintf(b, "<V>%s</V>", formatValue(v))
		}
		b.WriteString("</XAxis>\n")
	}
	if len(m.AxisY) > 0 {
		b.WriteString("      <YAxis>")
		for _, v := range m.AxisY {
			fmt.Fprintf(b, "<V>%s</V>", formatValue(v))
		}
		b.WriteString("</YAxis>\n")
	}

	b.WriteString("      <Values>")
	for r := 0; r < m.Rows; r++ {
		b.WriteString("<Row>")
		for c := 0; c < m.Cols; c++ {
			idx := r*m.Cols + c
			fmt.Fprintf(b, "<V>%d</V>", m.Values[idx])
		}
		b.WriteString("</Row>")
	}
	b.WriteString("</Values>\n")

	b.WriteString("    </Map>\n")
}

func formatValue(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
}

// escapeAttr XML-escapes the four characters that must not appear
// literally in an attribute value: & < > ".
func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// escapeText applies the same escaping to element text content (Tool),
// which shares the XML special-character set.
func escapeText(s string) string {
	return escapeAttr(s)
}
