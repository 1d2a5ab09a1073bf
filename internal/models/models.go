package models

import "time"

// Company is the identity block of a listing. The name doubles as the key
// for duplicate detection and image lookups.
type Company struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Type        string `bson:"type" json:"type"`
}

type EducationRequirements struct {
	CGPA        string `bson:"cgpa" json:"cgpa"`
	TwelfthMark string `bson:"twelfthMark" json:"twelfthMark"`
	TenthMark   string `bson:"tenthMark" json:"tenthMark"`
}

type Question struct {
	Type  string `bson:"type" json:"type"`
	Count string `bson:"count" json:"count"`
}

type InterviewRound struct {
	Title     string     `bson:"title" json:"title"`
	Duration  string     `bson:"duration" json:"duration"`
	Questions []Question `bson:"questions" json:"questions"`
}

type Resource struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Link        string `bson:"link" json:"link"`
}

// Role lives only inside a Listing; it has no collection of its own.
// The pdf fields are optional and dropped from the stored document when
// absent (see listing.CleanNulls).
type Role struct {
	ID                    string                `bson:"id" json:"id"`
	Title                 string                `bson:"title" json:"title"`
	Description           string                `bson:"description" json:"description"`
	SalaryRange           string                `bson:"salaryRange" json:"salaryRange"`
	PDFFile               *string               `bson:"pdfFile" json:"pdfFile"`
	PDFFileName           *string               `bson:"pdfFileName" json:"pdfFileName"`
	EducationRequirements EducationRequirements `bson:"educationRequirements" json:"educationRequirements"`
	TechnicalSkills       []string              `bson:"technicalSkills" json:"technicalSkills"`
	EligibleDepartments   []string              `bson:"eligibleDepartments" json:"eligibleDepartments"`
	InterviewRounds       []InterviewRound      `bson:"interviewRounds" json:"interviewRounds"`
	Resources             []Resource            `bson:"resources" json:"resources"`
	ContactEmail          string                `bson:"contactEmail" json:"contactEmail"`
}

// User is a credential record. Password is stored as submitted; hashing is
// an explicit non-goal of this service.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Password  string    `bson:"password" json:"-"`
	Admin     bool      `bson:"admin" json:"admin"`
	TempAdmin bool      `bson:"tempadmin" json:"tempadmin"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Normalize fills the documented defaults on a role payload: "N/A" marks
// for absent education figures, "N/A" resource ids.
func (r *Role) Normalize() {
	if r.EducationRequirements.CGPA == "" {
		r.EducationRequirements.CGPA = "N/A"
	}
	if r.EducationRequirements.TwelfthMark == "" {
		r.EducationRequirements.TwelfthMark = "N/A"
	}
	if r.EducationRequirements.TenthMark == "" {
		r.EducationRequirements.TenthMark = "N/A"
	}
	for i := range r.Resources {
		if r.Resources[i].ID == "" {
			r.Resources[i].ID = "N/A"
		}
	}
}
