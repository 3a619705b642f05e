package models

// Contact types. Organizations carry the list of individual contacts they
// represent.
const (
	ContactTypePerson       = "person"
	ContactTypeOrganization = "organization"
)

var contactTypes = []string{ContactTypePerson, ContactTypeOrganization}

// Contact is the identity a participant registers on behalf of. Contact data
// management itself lives outside the engine; this is the slice it consumes.
type Contact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Email string `json:"email,omitempty"`

	// RepresentedIDs lists individual contacts an organization stands for.
	RepresentedIDs []int64 `json:"represented_ids,omitempty"`
}

// NewContact validates the type against the allow-list.
func NewContact(id int64, name, contactType, email string) (*Contact, error) {
	valid := false
	for _, t := range contactTypes {
		if contactType == t {
			valid = true
			break
		}
	}
	if !valid {
		return nil, &InvalidTypeError{Value: contactType, Allowed: contactTypes}
	}
	return &Contact{ID: id, Name: name, Type: contactType, Email: email}, nil
}
