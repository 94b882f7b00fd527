package formbuilder

// QuestionType identifies how a question is answered and how its
// aggregation data is shaped.
type QuestionType string

// Question types known to FormBuilder.
const (
	QuestionTypeString   QuestionType = "string"   // short text
	QuestionTypeText     QuestionType = "text"     // long text
	QuestionTypeInteger  QuestionType = "integer"  // number
	QuestionTypeCheckbox QuestionType = "checkbox" // yes/no
)

// QuestionTypes lists the known types in display order.
var QuestionTypes = []QuestionType{
	QuestionTypeString,
	QuestionTypeText,
	QuestionTypeInteger,
	QuestionTypeCheckbox,
}

// String returns the wire value of the type.
func (t QuestionType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known types.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeString, QuestionTypeText, QuestionTypeInteger, QuestionTypeCheckbox:
		return true
	default:
		return false
	}
}

// IsTextual reports whether answers are free text.
func (t QuestionType) IsTextual() bool {
	return t == QuestionTypeString || t == QuestionTypeText
}

// Label returns the human label of the type.
func (t QuestionType) Label() string {
	switch t {
	case QuestionTypeString:
		return "Short Text"
	case QuestionTypeText:
		return "Long Text"
	case QuestionTypeInteger:
		return "Number"
	case QuestionTypeCheckbox:
		return "Checkbox"
	default:
		return string(t)
	}
}

// Color returns the display color tag of the type.
func (t QuestionType) Color() string {
	switch t {
	case QuestionTypeString:
		return "primary"
	case QuestionTypeText:
		return "success"
	case QuestionTypeInteger:
		return "warning"
	case QuestionTypeCheckbox:
		return "info"
	default:
		return "secondary"
	}
}
