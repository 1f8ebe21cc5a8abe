// pkg/profile/profile.go

package profile

import "strings"

// StorageKey names the single slot the company profile lives in.
const StorageKey = "company_profile_v1"

// Profile is the company identity printed on every invoice.
// Logo holds an embedded image as a data URI, never a file reference.
type Profile struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Logo    string `json:"logo,omitempty"`
}

// Update is a partial profile. Nil fields are left untouched by Patch.
type Update struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Logo    *string `json:"logo,omitempty"`
}

// Patch merges u onto existing field by field. Text fields are trimmed; the
// logo, when present, replaces the previous one as is.
func Patch(existing Profile, u Update) Profile {
	next := existing
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&next.Name, u.Name)
	set(&next.Address, u.Address)
	set(&next.Email, u.Email)
	set(&next.Phone, u.Phone)
	if u.Logo != nil {
		next.Logo = *u.Logo
	}
	return next
}

// IsEmpty reports whether no field is set.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// HasLogo reports whether an embedded logo is present.
func (p Profile) HasLogo() bool {
	return p.Logo != ""
}

// String is a convenience for building updates from literals.
func String(s string) *string { return &s }
