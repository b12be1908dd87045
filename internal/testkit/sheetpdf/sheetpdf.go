// Package sheetpdf builds minimal single-page AcroForm PDFs for tests.
// The documents are written byte by byte with a computed xref table so
// applicator and transport tests can run against real parseable PDFs
// without shipping a binary fixture.
package sheetpdf

import (
	"bytes"
	"fmt"
)

// Spec lists the form fields the generated template should carry.
type Spec struct {
	TextFields []string
	CheckBoxes []string
}

// Build renders a one-page PDF with one widget annotation per requested
// field: text fields start empty, checkboxes start Off.
func Build(spec Spec) []byte {
	fieldCount := len(spec.TextFields) + len(spec.CheckBoxes)
	firstWidget := 6
	objCount := firstWidget + fieldCount - 1

	refs := func(start, n int) string {
		var b bytes.Buffer
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d 0 R", start+i)
		}
		return b.String()
	}
	widgetRefs := refs(firstWidget, fieldCount)

	bodies := []string{
		"<< /Type /Catalog /Pages 2 0 R /AcroForm 3 0 R >>",
		"<< /Type /Pages /Kids [4 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Fields [%s] /DA (/Helv 0 Tf 0 g) /DR << /Font << /Helv 5 0 R >> >> >>", widgetRefs),
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Annots [%s] >>", widgetRefs),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	idx := 0
	for _, name := range spec.TextFields {
		bodies = append(bodies, fmt.Sprintf(
			"<< /Type /Annot /Subtype /Widget /FT /Tx /T (%s) /Rect [%s] /F 4 /V () >>",
			name, rect(idx)))
		idx++
	}
	for _, name := range spec.CheckBoxes {
		bodies = append(bodies, fmt.Sprintf(
			"<< /Type /Annot /Subtype /Widget /FT /Btn /T (%s) /Rect [%s] /F 4 /V /Off /AS /Off >>",
			name, rect(idx)))
		idx++
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")

	offsets := make([]int, objCount+1)
	for i, body := range bodies {
		objNum := i + 1
		offsets[objNum] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", objNum, body)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for objNum := 1; objNum <= objCount; objNum++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[objNum])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xrefPos)

	return buf.Bytes()
}

// rect lays widgets out in 18-point rows, wrapping into columns so any
// field count fits on the page.
func rect(idx int) string {
	col := idx / 40
	row := idx % 40
	x := 36 + col*110
	y := 756 - row*18
	return fmt.Sprintf("%d %d %d %d", x, y, x+100, y+14)
}

// V20Fields returns the full field complement of the V20 character sheet
// template: dot checkboxes with their row-end "a" suffixes, tracker and
// misc fields, plus every text field the generator fills.
func V20Fields() Spec {
	var checks []string

	// Eight-dot rows: attributes (9 from 1), abilities (30 from 73),
	// disciplines (6 from 313), backgrounds (6 from 361).
	for _, block := range []struct{ base, rows int }{
		{1, 9}, {73, 30}, {313, 6}, {361, 6},
	} {
		for row := 0; row < block.rows; row++ {
			start := block.base + row*8
			for i := 0; i < 8; i++ {
				checks = append(checks, fmt.Sprintf("dot%d", start+i))
			}
			checks = append(checks, fmt.Sprintf("dot%da", start+7))
		}
	}

	// Five-dot virtue rows.
	for _, base := range []int{409, 414, 419} {
		for i := 0; i < 5; i++ {
			checks = append(checks, fmt.Sprintf("dot%d", base+i))
		}
	}

	for i := 1; i <= 10; i++ {
		checks = append(checks, fmt.Sprintf("hdot%d", i))
		checks = append(checks, fmt.Sprintf("willdot%d", i))
	}

	texts := []string{
		"name", "player", "chronicle", "nature", "demeanor", "concept",
		"Clan", "gen", "sire", "ppt", "weakness", "experience", "misctitle",
	}
	for i := 1; i <= 6; i++ {
		texts = append(texts, fmt.Sprintf("disciplines%d", i))
		texts = append(texts, fmt.Sprintf("back%d", i))
	}
	for i := 1; i <= 13; i++ {
		texts = append(texts, fmt.Sprintf("misc%d", i))
	}

	return Spec{TextFields: texts, CheckBoxes: checks}
}
