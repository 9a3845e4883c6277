// Package catalog holds the fixed Department -> Course -> Career tree that
// drives navigation and tip lookup. The data is compiled in and never
// mutated at runtime.
package catalog

// Career is a job path under a course. TipLink optionally overrides where
// "view tips" points for this career.
type Career struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TipLink     string `json:"tip_link,omitempty"`
}

// Course is a degree program under a department.
type Course struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Code    string   `json:"code"`
	Careers []Career `json:"careers"`
}

// Department is a top-level college.
type Department struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	LogoURL     string   `json:"logo_url"`
	Courses     []Course `json:"courses"`
}

var departments = []Department{
	{
		ID:          "ccs",
		Code:        "CCS",
		Name:        "College of Computer Studies",
		Description: "Information Technology and Computer Science",
		LogoURL:     "/ccs-logo.png",
		Courses: []Course{
			{
				ID:    "bsit",
				Title: "Bachelor of Science in Information Technology",
				Code:  "BSIT",
				Careers: []Career{
					{ID: "web-dev", Title: "Web Developer", Description: "Build and maintain websites"},
					{ID: "sys-admin", Title: "System Administrator", Description: "Manage IT infrastructure"},
					{ID: "db-admin", Title: "Database Administrator", Description: "Manage databases"},
				},
			},
			{
				ID:    "bscs",
				Title: "Bachelor of Science in Computer Science",
				Code:  "BSCS",
				Careers: []Career{
					{ID: "software-eng", Title: "Software Engineer", Description: "Design and develop software"},
					{ID: "data-scientist", Title: "Data Scientist", Description: "Analyze and interpret data"},
					{ID: "ai-engineer", Title: "AI Engineer", Description: "Develop AI solutions"},
				},
			},
		},
	},
	{
		ID:          "coe",
		Code:        "COE",
		Name:        "College of Engineering",
		Description: "Engineering Programs",
		LogoURL:     "/coe-logo.png",
		Courses: []Course{
			{
				ID:    "bsce",
				Title: "Bachelor of Science in Civil Engineering",
				Code:  "BSCE",
				Careers: []Career{
					{ID: "civil-eng", Title: "Civil Engineer", Description: "Design infrastructure projects"},
					{ID: "structural-eng", Title: "Structural Engineer", Description: "Design building structures"},
				},
			},
			{
				ID:    "bsee",
				Title: "Bachelor of Science in Electrical Engineering",
				Code:  "BSEE",
				Careers: []Career{
					{ID: "electrical-eng", Title: "Electrical Engineer", Description: "Design electrical systems"},
					{ID: "power-eng", Title: "Power Systems Engineer", Description: "Work with power distribution"},
				},
			},
		},
	},
	{
		ID:          "cba",
		Code:        "CBA",
		Name:        "College of Business Administration",
		Description: "Business and Management",
		LogoURL:     "/cba-logo.png",
		Courses: []Course{
			{
				ID:    "bsba",
				Title: "Bachelor of Science in Business Administration",
				Code:  "BSBA",
				Careers: []Career{
					{ID: "manager", Title: "Business Manager", Description: "Oversee business operations"},
					{ID: "marketing", Title: "Marketing Specialist", Description: "Develop marketing strategies"},
				},
			},
			{
				ID:    "bsa",
				Title: "Bachelor of Science in Accountancy",
				Code:  "BSA",
				Careers: []Career{
					{ID: "accountant", Title: "Accountant", Description: "Manage financial records"},
					{ID: "auditor", Title: "Auditor", Description: "Review financial statements"},
				},
			},
		},
	},
	{
		ID:          "coed",
		Code:        "COED",
		Name:        "College of Education",
		Description: "Teacher Education Programs",
		LogoURL:     "/ced-logo.png",
		Courses: []Course{
			{
				ID:    "beed",
				Title: "Bachelor of Elementary Education",
				Code:  "BEED",
				Careers: []Career{
					{ID: "elem-teacher", Title: "Elementary Teacher", Description: "Teach primary students"},
					{ID: "curriculum-dev", Title: "Curriculum Developer", Description: "Design educational materials"},
				},
			},
			{
				ID:    "bsed",
				Title: "Bachelor of Secondary Education",
				Code:  "BSED",
				Careers: []Career{
					{ID: "hs-teacher", Title: "High School Teacher", Description: "Teach secondary students"},
					{ID: "guidance", Title: "Guidance Counselor", Description: "Provide student counseling"},
				},
			},
		},
	},
	{
		ID:          "ccrim",
		Code:        "CCrim",
		Name:        "College of Criminology",
		Description: "Criminology and Law Enforcement",
		LogoURL:     "/coc-logo.png",
		Courses: []Course{
			{
				ID:    "bscrim",
				Title: "Bachelor of Science in Criminology",
				Code:  "BS Criminology",
				Careers: []Career{
					{ID: "police-officer", Title: "Police Officer", Description: "Law enforcement and public safety"},
					{ID: "forensic-investigator", Title: "Forensic Investigator", Description: "Crime scene investigation"},
					{ID: "security-manager", Title: "Security Manager", Description: "Corporate security management"},
				},
			},
		},
	},
	{
		ID:          "cas",
		Code:        "CAS",
		Name:        "College of Arts and Sciences",
		Description: "Liberal Arts and Sciences",
		LogoURL:     "/cas-logo.png",
		Courses: []Course{
			{
				ID:    "bspsych",
				Title: "Bachelor of Science in Psychology",
				Code:  "BS Psychology",
				Careers: []Career{
					{ID: "psychologist", Title: "Psychologist", Description: "Provide mental health services"},
					{ID: "hr-specialist", Title: "HR Specialist", Description: "Human resource management"},
				},
			},
			{
				ID:    "bsbio",
				Title: "Bachelor of Science in Biology",
				Code:  "BS Biology",
				Careers: []Career{
					{ID: "biologist", Title: "Biologist", Description: "Research living organisms"},
					{ID: "lab-tech", Title: "Laboratory Technician", Description: "Conduct lab analyses"},
				},
			},
		},
	},
}

// TipsOverride reports the external tips page configured for this career,
// if any. When set it takes precedence over the stored tips.
func (c Career) TipsOverride() (string, bool) {
	return c.TipLink, c.TipLink != ""
}

// Departments returns the full catalog in display order. Callers must not
// modify the returned slice.
func Departments() []Department {
	return departments
}

// DepartmentByID resolves a department id; ok is false for unknown ids.
func DepartmentByID(id string) (Department, bool) {
	for _, d := range departments {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}

// CourseByID resolves a course id anywhere in the tree.
func CourseByID(id string) (Course, bool) {
	for _, d := range departments {
		for _, c := range d.Courses {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Course{}, false
}

// CareerByID resolves a career id anywhere in the tree and reports the
// department and course that own it.
func CareerByID(id string) (Career, Course, Department, bool) {
	for _, d := range departments {
		for _, c := range d.Courses {
			for _, ca := range c.Careers {
				if ca.ID == id {
					return ca, c, d, true
				}
			}
		}
	}
	return Career{}, Course{}, Department{}, false
}
