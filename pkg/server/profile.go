// pkg/server/profile.go

package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/invoice-studio/pkg/profile"
)

// Form field names of the company form.
var profileFields = map[string]func(*profile.Update, *string){
	"company_name":    func(u *profile.Update, v *string) { u.Name = v },
	"company_address": func(u *profile.Update, v *string) { u.Address = v },
	"company_email":   func(u *profile.Update, v *string) { u.Email = v },
	"company_phone":   func(u *profile.Update, v *string) { u.Phone = v },
}

// updateFromForm includes only the fields present in the form.
func updateFromForm(form url.Values) profile.Update {
	var u profile.Update
	for key, set := range profileFields {
		if vs, ok := form[key]; ok && len(vs) > 0 {
			v := vs[0]
			set(&u, &v)
		}
	}
	return u
}

// logoReader returns the uploaded logo: the "logo" file of a multipart form,
// or the raw request body.
func logoReader(r *http.Request) (io.ReadCloser, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "multipart/form-data" {
		return r.Body, nil
	}
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return nil, errors.Wrap(err, "parsing upload")
	}
	file, _, err := r.FormFile("logo")
	if err != nil {
		return nil, errors.Wrap(err, "reading logo field")
	}
	return file, nil
}

func (s *Server) profileFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, "Error reading the company form", http.StatusBadRequest)
		return
	}
	s.profiles.SaveDetails(r.Context(), updateFromForm(r.PostForm))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logoFormHandler(w http.ResponseWriter, r *http.Request) {
	file, err := logoReader(r)
	if err != nil {
		http.Error(w, "Error reading the logo", http.StatusBadRequest)
		return
	}
	defer file.Close()
	if _, _, err := s.profiles.SetLogo(r.Context(), file); err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) clearFormHandler(w http.ResponseWriter, r *http.Request) {
	s.profiles.Clear(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// getProfile godoc
// @Summary  Get the company profile
// @Produce  json
// @Success  200 {object} Response{data=profile.Profile}
// @Router   /api/profile [get]
func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	s.reply(w, http.StatusOK, s.profiles.Current(r.Context()))
}

// patchProfile godoc
// @Summary  Merge fields into the company profile
// @Accept   json
// @Produce  json
// @Param    update body profile.Update true "Fields to change"
// @Success  200 {object} Response{data=profile.Profile}
// @Router   /api/profile [patch]
func (s *Server) patchProfile(w http.ResponseWriter, r *http.Request) {
	var u profile.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpload)).Decode(&u); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid profile update")
		return
	}
	s.reply(w, http.StatusOK, s.profiles.SaveDetails(r.Context(), u))
}

// LogoResponse reports whether an upload replaced the logo.
type LogoResponse struct {
	Changed bool            `json:"changed"`
	Profile profile.Profile `json:"profile"`
}

// putLogo godoc
// @Summary  Replace the company logo
// @Description Non image uploads are ignored and reported with changed=false.
// @Accept   image/png,image/jpeg,image/gif,multipart/form-data
// @Produce  json
// @Success  200 {object} Response{data=LogoResponse}
// @Router   /api/profile/logo [put]
func (s *Server) putLogo(w http.ResponseWriter, r *http.Request) {
	file, err := logoReader(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()
	p, changed, err := s.profiles.SetLogo(r.Context(), file)
	if errors.Is(err, profile.ErrLogoTooLarge) {
		s.fail(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.reply(w, http.StatusOK, LogoResponse{Changed: changed, Profile: p})
}

// deleteProfile godoc
// @Summary  Erase the company profile
// @Produce  json
// @Success  200 {object} Response
// @Router   /api/profile [delete]
func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	s.profiles.Clear(r.Context())
	s.reply(w, http.StatusOK, profile.Profile{})
}
