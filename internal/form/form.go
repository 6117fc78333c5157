package form

// Field names one input of the product form.
type Field string

const (
	FieldID          Field = "id"
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldPrice       Field = "price"
	FieldInventory   Field = "inventory"
	FieldOwner       Field = "owner"
	FieldCategory    Field = "category"
	FieldAmount      Field = "amount"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldID,
	FieldName,
	FieldDescription,
	FieldPrice,
	FieldInventory,
	FieldOwner,
	FieldCategory,
	FieldAmount,
}

// Form reads and writes the current value of form fields.
type Form interface {
	Value(f Field) string
	SetValue(f Field, v string)
}

// Values is a map-backed Form.
type Values map[Field]string

func (v Values) Value(f Field) string {
	return v[f]
}

func (v Values) SetValue(f Field, value string) {
	v[f] = value
}
