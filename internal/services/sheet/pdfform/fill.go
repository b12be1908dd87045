// Package pdfform applies assembled field values to the sheet template.
// It is the boundary between the pure field-mapping engine and the PDF
// primitives: open a template, set AcroForm values, serialize.
package pdfform

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/elysium-rpg/pdf-service/internal/services/sheet/domain"
)

// Checkbox appearance states used by the V20 template.
const (
	checkOn  = types.Name("Yes")
	checkOff = types.Name("Off")
)

var errNoAcroForm = errors.New("template has no AcroForm dictionary")

// Document is an open form template ready to receive field values.
type Document struct {
	ctx *model.Context
}

// Open parses template bytes into a fillable document. Validation is
// relaxed: scanned templates in the wild rarely pass strict checks.
func Open(template []byte) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(template), conf)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("ensure page count: %w", err)
	}
	return &Document{ctx: ctx}, nil
}

// SetFieldValues writes every matching field value into the document's
// AcroForm. Template fields absent from the map keep their current value;
// map entries without a matching template field are ignored, mirroring
// how partial templates behave in viewers.
func (d *Document) SetFieldValues(fields domain.FieldMap) error {
	acroDict, fieldsArray, err := d.formDict()
	if err != nil {
		return err
	}

	// Values are written without regenerating appearance streams, so
	// viewers must be told to rebuild them.
	acroDict["NeedAppearances"] = types.Boolean(true)

	for _, fieldObj := range fieldsArray {
		fieldDict, err := d.ctx.DereferenceDict(fieldObj)
		if err != nil || fieldDict == nil {
			continue
		}
		name, ok := d.fieldName(fieldDict)
		if !ok {
			continue
		}
		value, ok := fields[name]
		if !ok {
			continue
		}
		d.applyValue(fieldDict, value)
	}
	return nil
}

// Field describes one fillable template field.
type Field struct {
	Name string
	Type string
}

// Fields lists the template's named fields in document order. Type holds
// the raw AcroForm field type (Tx, Btn, Ch, Sig).
func (d *Document) Fields() ([]Field, error) {
	_, fieldsArray, err := d.formDict()
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(fieldsArray))
	for _, fieldObj := range fieldsArray {
		fieldDict, err := d.ctx.DereferenceDict(fieldObj)
		if err != nil || fieldDict == nil {
			continue
		}
		name, ok := d.fieldName(fieldDict)
		if !ok {
			continue
		}
		fieldType := ""
		if ftObj, found := fieldDict.Find("FT"); found {
			if ft, err := d.ctx.DereferenceName(ftObj, model.V10, nil); err == nil {
				fieldType = string(ft)
			}
		}
		fields = append(fields, Field{Name: name, Type: fieldType})
	}
	return fields, nil
}

// formDict returns the document's AcroForm dictionary and its dereferenced
// field array.
func (d *Document) formDict() (types.Dict, types.Array, error) {
	rootDict, err := d.ctx.Catalog()
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: %w", err)
	}

	acroObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, nil, errNoAcroForm
	}
	acroDict, err := d.ctx.DereferenceDict(acroObj)
	if err != nil || acroDict == nil {
		return nil, nil, fmt.Errorf("dereference AcroForm: %w", err)
	}

	fieldsObj, found := acroDict.Find("Fields")
	if !found {
		return nil, nil, errors.New("AcroForm has no Fields array")
	}
	fieldsArray, err := d.ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, nil, fmt.Errorf("dereference Fields: %w", err)
	}
	return acroDict, fieldsArray, nil
}

func (d *Document) fieldName(fieldDict types.Dict) (string, bool) {
	nameObj, found := fieldDict.Find("T")
	if !found {
		return "", false
	}
	name, err := d.ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil)
	if err != nil {
		return "", false
	}
	return name, true
}

// Serialize writes the filled document back to bytes.
func (d *Document) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}

// Fill is the one-shot path used by the service: open the template,
// apply the field map, serialize.
func Fill(template []byte, fields domain.FieldMap) ([]byte, error) {
	doc, err := Open(template)
	if err != nil {
		return nil, err
	}
	if err := doc.SetFieldValues(fields); err != nil {
		return nil, err
	}
	return doc.Serialize()
}

func (d *Document) applyValue(fieldDict types.Dict, value domain.FieldValue) {
	switch v := value.(type) {
	case domain.Text:
		fieldDict["V"] = textString(string(v))
	case domain.Check:
		state := checkOff
		if bool(v) {
			state = checkOn
		}
		fieldDict["V"] = state
		d.setWidgetState(fieldDict, state)
	}
}

// setWidgetState mirrors the value into the widget appearance state, on
// the field's kids when the widgets are split out, or on the field dict
// itself when merged.
func (d *Document) setWidgetState(fieldDict types.Dict, state types.Name) {
	kidsObj, found := fieldDict.Find("Kids")
	if !found {
		fieldDict["AS"] = state
		return
	}
	kids, err := d.ctx.DereferenceArray(kidsObj)
	if err != nil {
		fieldDict["AS"] = state
		return
	}
	for _, kidObj := range kids {
		kidDict, err := d.ctx.DereferenceDict(kidObj)
		if err != nil || kidDict == nil {
			continue
		}
		kidDict["AS"] = state
	}
}

// textString encodes a text field value as a UTF-16BE hex literal. The BOM
// marks the string as UTF-16; hex form needs no literal escaping.
func textString(s string) types.HexLiteral {
	encoded := utf16.Encode([]rune(s))
	buf := make([]byte, 0, 2+len(encoded)*2)
	buf = append(buf, 0xFE, 0xFF)
	for _, u := range encoded {
		buf = append(buf, byte(u>>8), byte(u))
	}
	return types.HexLiteral(hex.EncodeToString(buf))
}
