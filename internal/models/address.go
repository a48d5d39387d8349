package models

// AddressType classifies what an address is used as.
type AddressType string

const (
	AddressTypeHome      AddressType = "HOME"
	AddressTypeWork      AddressType = "WORK"
	AddressTypeTemporary AddressType = "TEMPORARY"
	AddressTypePermanent AddressType = "PERMANENT"
	AddressTypeOther     AddressType = "OTHER"
)

// Valid reports whether t is one of the known address types.
func (t AddressType) Valid() bool {
	switch t {
	case AddressTypeHome, AddressTypeWork, AddressTypeTemporary, AddressTypePermanent, AddressTypeOther:
		return true
	}
	return false
}

// Address is a postal address. It lives independently of any user and may be
// linked to several users at once through user_addresses.
type Address struct {
	BaseModel
	BuildingName string      `json:"building_name,omitempty"`
	Street       string      `json:"street"`
	City         string      `json:"city"`
	State        string      `gorm:"size:64" json:"state"`
	Pincode      string      `json:"pincode"`
	Country      string      `json:"country"`
	AddressType  AddressType `json:"address_type"`
	Users        []User      `gorm:"many2many:user_addresses;" json:"users,omitempty"`
}
