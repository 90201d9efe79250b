package domain

// Resume is the plain data-entry resume (no positioning). It shares the
// document store with template documents under its own record kind.
type Resume struct {
	Personal       PersonalInfo `json:"personal"`
	Experiences    []Experience `json:"experiences"`
	Education      []Education  `json:"education"`
	Skills         []Skill      `json:"skills"`
	Languages      []string     `json:"languages,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
}

type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	Website   string `json:"website,omitempty"`
	Summary   string `json:"summary,omitempty"`
	AvatarURI string `json:"avatarUri,omitempty"`
}

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"` // ISO date
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
}

type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"` // beginner | intermediate | advanced | expert
}
