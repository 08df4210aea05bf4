package domain

// EditableField names a product or variant field offered for bulk
// editing. The set is fixed; anything else in a fields parameter is
// rejected.
type EditableField string

const (
	FieldTitle             EditableField = "title"
	FieldDescriptionHTML   EditableField = "descriptionHtml"
	FieldVendor            EditableField = "vendor"
	FieldProductType       EditableField = "productType"
	FieldTags              EditableField = "tags"
	FieldPrice             EditableField = "price"
	FieldCompareAtPrice    EditableField = "compareAtPrice"
	FieldInventoryQuantity EditableField = "inventoryQuantity"
)

// AllEditableFields lists every field the edit form can render, in
// display order.
var AllEditableFields = []EditableField{
	FieldTitle,
	FieldDescriptionHTML,
	FieldVendor,
	FieldProductType,
	FieldTags,
	FieldPrice,
	FieldCompareAtPrice,
	FieldInventoryQuantity,
}

// IsEditableField reports whether name is a member of the fixed field
// enumeration.
func IsEditableField(name string) bool {
	for _, f := range AllEditableFields {
		if string(f) == name {
			return true
		}
	}
	return false
}
