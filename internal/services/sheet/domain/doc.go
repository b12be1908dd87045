// Package domain contains the core sheet-filling engine.
//
// This package provides the pure logic that turns a character record into
// AcroForm field values for the V20 character sheet, including:
//
//   - Dot-block rendering (trait ratings to per-dot checkbox states)
//   - Linear trackers (humanity, willpower)
//   - Ranking open-ended trait lists into the sheet's fixed slots, with
//     the remainder formatted into the free-text overflow section
//   - Reference resolution (clan, nature, demeanor, concept)
//
// Everything here is deterministic and side-effect free; reading the
// template and writing the PDF belong to the pdfform package.
package domain
