package model

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"careerprep/internal/domain"
)

// ListField names one of the variable-length sections of a draft.
type ListField string

const (
	FieldWorkExperience ListField = "work_experience"
	FieldEducation      ListField = "education"
	FieldSkills         ListField = "skills"
	FieldInterests      ListField = "interests"
	FieldReferences     ListField = "professional_references"
)

var (
	ErrIndexOutOfRange = errors.New("list index out of range")
	ErrUnknownField    = errors.New("unknown field")
	ErrPhotoTooLarge   = errors.New("photo exceeds size limit")
	ErrPhotoBadType    = errors.New("unsupported photo type")
)

// MaxPhotoBytes bounds accepted photo uploads.
const MaxPhotoBytes = 2 << 20

// ResumeDraft is the mutable working state of one editing session. It is
// owned by a single session and never shared; all mutation goes through
// the setter and list-editing methods below.
type ResumeDraft struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	ZipCode     string  `json:"zip_code"`
	City        string  `json:"city"`
	LinkedinURL string  `json:"linkedin_url"`
	WebsiteURL  string  `json:"website_url"`
	Summary     string  `json:"summary"`
	PhotoURL    string  `json:"photo_url"`
	CareerID    *string `json:"career_id,omitempty"`

	WorkExperience []domain.ExperienceEntry `json:"work_experience"`
	Education      []domain.EducationEntry  `json:"education"`
	Skills         []string                 `json:"skills"`
	Interests      []string                 `json:"interests"`
	References     []string                 `json:"professional_references"`
}

// NewDraft creates an empty draft. The email is pre-filled from the active
// session; careerID tags the draft when the user arrived via a career page.
func NewDraft(email string, careerID *string) *ResumeDraft {
	return &ResumeDraft{
		Email:          email,
		CareerID:       careerID,
		WorkExperience: []domain.ExperienceEntry{},
		Education:      []domain.EducationEntry{},
		Skills:         []string{},
		Interests:      []string{},
		References:     []string{},
	}
}

// SetField updates one scalar field by its wire name.
func (d *ResumeDraft) SetField(name, value string) error {
	switch name {
	case "first_name":
		d.FirstName = value
	case "last_name":
		d.LastName = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	case "address":
		d.Address = value
	case "zip_code":
		d.ZipCode = value
	case "city":
		d.City = value
	case "linkedin_url":
		d.LinkedinURL = value
	case "website_url":
		d.WebsiteURL = value
	case "summary":
		d.Summary = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Append pushes a new element with empty sub-fields to the end of the
// given list. Growth is unbounded on purpose.
func (d *ResumeDraft) Append(field ListField) error {
	switch field {
	case FieldWorkExperience:
		d.WorkExperience = append(d.WorkExperience, domain.ExperienceEntry{})
	case FieldEducation:
		d.Education = append(d.Education, domain.EducationEntry{})
	case FieldSkills:
		d.Skills = append(d.Skills, "")
	case FieldInterests:
		d.Interests = append(d.Interests, "")
	case FieldReferences:
		d.References = append(d.References, "")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// UpdateAt replaces one value in place. For the structured lists, subfield
// names which part of the entry changes; for the string lists it is
// ignored. An out-of-range index leaves the draft untouched and returns
// ErrIndexOutOfRange.
func (d *ResumeDraft) UpdateAt(field ListField, index int, subfield, value string) error {
	switch field {
	case FieldWorkExperience:
		if index < 0 || index >= len(d.WorkExperience) {
			return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, field, index)
		}
		e := &d.WorkExperience[index]
		switch subfield {
		case "position":
			e.Position = value
		case "company":
			e.Company = value
		case "duration":
			e.Duration = value
		case "description":
			e.Description = value
		default:
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, field, subfield)
		}
	case FieldEducation:
		if index < 0 || index >= len(d.Education) {
			return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, field, index)
		}
		e := &d.Education[index]
		switch subfield {
		case "degree":
			e.Degree = value
		case "institution":
			e.Institution = value
		case "year":
			e.Year = value
		case "details":
			e.Details = value
		default:
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, field, subfield)
		}
	case FieldSkills:
		return setString(d.Skills, field, index, value)
	case FieldInterests:
		return setString(d.Interests, field, index, value)
	case FieldReferences:
		return setString(d.References, field, index, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func setString(list []string, field ListField, index int, value string) error {
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, field, index)
	}
	list[index] = value
	return nil
}

// RemoveAt deletes the element at index; later elements shift left by one.
// There is no undo within the session.
func (d *ResumeDraft) RemoveAt(field ListField, index int) error {
	switch field {
	case FieldWorkExperience:
		if index < 0 || index >= len(d.WorkExperience) {
			return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, field, index)
		}
		d.WorkExperience = append(d.WorkExperience[:index], d.WorkExperience[index+1:]...)
	case FieldEducation:
		if index < 0 || index >= len(d.Education) {
			return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, field, index)
		}
		d.Education = append(d.Education[:index], d.Education[index+1:]...)
	case FieldSkills:
		out, err := removeString(d.Skills, field, index)
		if err != nil {
			return err
		}
		d.Skills = out
	case FieldInterests:
		out, err := removeString(d.Interests, field, index)
		if err != nil {
			return err
		}
		d.Interests = out
	case FieldReferences:
		out, err := removeString(d.References, field, index)
		if err != nil {
			return err
		}
		d.References = out
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func removeString(list []string, field ListField, index int) ([]string, error) {
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, field, index)
	}
	return append(list[:index], list[index+1:]...), nil
}

// Len reports the current length of the given list.
func (d *ResumeDraft) Len(field ListField) (int, error) {
	switch field {
	case FieldWorkExperience:
		return len(d.WorkExperience), nil
	case FieldEducation:
		return len(d.Education), nil
	case FieldSkills:
		return len(d.Skills), nil
	case FieldInterests:
		return len(d.Interests), nil
	case FieldReferences:
		return len(d.References), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AttachPhoto embeds an uploaded image as a data URI in the photo_url
// scalar. Uploads over MaxPhotoBytes or outside the common image MIME
// types are rejected and the draft is left unchanged.
func (d *ResumeDraft) AttachPhoto(data []byte, contentType string) error {
	if len(data) > MaxPhotoBytes {
		return fmt.Errorf("%w: %d bytes", ErrPhotoTooLarge, len(data))
	}
	if !allowedPhotoTypes[contentType] {
		return fmt.Errorf("%w: %q", ErrPhotoBadType, contentType)
	}
	d.PhotoURL = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return nil
}

// FullName derives the display name used on the stored resume: first and
// last name joined by one space, trimmed.
func (d *ResumeDraft) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}
