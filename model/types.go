package model

// IDField is the document field holding the unique identifier.
const IDField = "_id"

// Document is a single stored record. The body is arbitrary structured
// data; the only schema requirement is a unique string identifier under
// IDField.
type Document map[string]any

// ID returns the document identifier and whether a string identifier is
// present.
func (d Document) ID() (string, bool) {
	id, ok := d[IDField].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// IndexOptions describes a secondary index definition as recorded in the
// log. A later directive for the same field overwrites an earlier one.
type IndexOptions struct {
	FieldName string `json:"fieldName"`
	Unique    bool   `json:"unique,omitempty"`
	Sparse    bool   `json:"sparse,omitempty"`
}

// Change is a single mutation handed to the persistence layer. A deleted
// change is serialized as a tombstone for the document's identifier.
type Change struct {
	Doc     Document
	Deleted bool
}

// Insert wraps a document as an upsert change.
func Insert(doc Document) Change {
	return Change{Doc: doc}
}

// Delete wraps an identifier as a tombstone change.
func Delete(id string) Change {
	return Change{Doc: Document{IDField: id}, Deleted: true}
}
