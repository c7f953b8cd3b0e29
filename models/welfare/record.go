package welfare

// Field identifies one of the ten logical fields of a ServiceRecord.
type Field int

const (
	FieldName Field = iota
	FieldID
	FieldSummary
	FieldDepartment
	FieldContact
	FieldOnline
	FieldTargetGroup
	FieldLifeStage
	FieldTheme
	FieldDetailLink
)

// Fields lists every logical field in canonical column order.
var Fields = []Field{
	FieldName,
	FieldID,
	FieldSummary,
	FieldDepartment,
	FieldContact,
	FieldOnline,
	FieldTargetGroup,
	FieldLifeStage,
	FieldTheme,
	FieldDetailLink,
}

var fieldLabels = [...]string{
	FieldName:        "서비스명",
	FieldID:          "서비스ID",
	FieldSummary:     "요약",
	FieldDepartment:  "소관부처",
	FieldContact:     "문의처",
	FieldOnline:      "온라인신청",
	FieldTargetGroup: "대상",
	FieldLifeStage:   "생애주기",
	FieldTheme:       "관심주제",
	FieldDetailLink:  "상세링크",
}

// Label is the column header of the field.
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return ""
	}
	return fieldLabels[f]
}

// Columns returns the column headers in canonical order.
func Columns() []string {
	cols := make([]string, len(Fields))
	for i, f := range Fields {
		cols[i] = f.Label()
	}
	return cols
}

// ServiceRecord is one flattened welfare service. Missing values are empty strings.
type ServiceRecord struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Department  string `json:"department"`
	Contact     string `json:"contact"`
	Online      string `json:"online"`
	TargetGroup string `json:"targetGroup"`
	LifeStage   string `json:"lifeStage"`
	Theme       string `json:"theme"`
	DetailLink  string `json:"detailLink"`
}

func (r *ServiceRecord) field(f Field) *string {
	switch f {
	case FieldName:
		return &r.Name
	case FieldID:
		return &r.ID
	case FieldSummary:
		return &r.Summary
	case FieldDepartment:
		return &r.Department
	case FieldContact:
		return &r.Contact
	case FieldOnline:
		return &r.Online
	case FieldTargetGroup:
		return &r.TargetGroup
	case FieldLifeStage:
		return &r.LifeStage
	case FieldTheme:
		return &r.Theme
	case FieldDetailLink:
		return &r.DetailLink
	}
	return nil
}

// Get returns the value of a logical field.
func (r ServiceRecord) Get(f Field) string {
	if p := r.field(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns the value of a logical field. Unknown fields are ignored.
func (r *ServiceRecord) Set(f Field, value string) {
	if p := r.field(f); p != nil {
		*p = value
	}
}

// Values returns the field values in canonical column order.
func (r ServiceRecord) Values() []string {
	values := make([]string, len(Fields))
	for i, f := range Fields {
		values[i] = r.Get(f)
	}
	return values
}

// RecordFromValues builds a record from values in canonical column order.
// Missing trailing values stay empty.
func RecordFromValues(values []string) ServiceRecord {
	var r ServiceRecord
	for i, f := range Fields {
		if i >= len(values) {
			break
		}
		r.Set(f, values[i])
	}
	return r
}
