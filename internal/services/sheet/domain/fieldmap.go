package domain

// FieldValue is a value that can be written into an AcroForm field:
// literal text or a checkbox state.
type FieldValue interface {
	fieldValue()
}

// Text is a literal text field value.
type Text string

// Check is a checkbox activation state.
type Check bool

func (Text) fieldValue()  {}
func (Check) fieldValue() {}

// FieldMap is the flat field-name -> value mapping applied to the form in
// one shot. Category offsets keep dot fields disjoint by construction, so
// merging never overwrites in practice; if it ever did, the last writer
// would win.
type FieldMap map[string]FieldValue

func (m FieldMap) merge(other FieldMap) {
	for name, value := range other {
		m[name] = value
	}
}
