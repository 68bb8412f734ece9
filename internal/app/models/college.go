package models

// College is static reference data about an institution.
// ReviewCount and AverageRating are derived from live reviews when read.
type College struct {
	ID                             string                `json:"id" db:"id" example:"1"`
	Name                           string                `json:"name" db:"name" example:"Indian Institute of Technology, Delhi"`
	ShortName                      string                `json:"shortName" db:"short_name" example:"IIT Delhi"`
	Location                       string                `json:"location" db:"location" example:"New Delhi, Delhi"`
	Country                        string                `json:"country" db:"country" example:"India"`
	Description                    string                `json:"description" db:"description"`
	Founded                        int                   `json:"founded" db:"founded" example:"1961"`
	Type                           string                `json:"type" db:"type" example:"Public"`
	Ranking                        int                   `json:"ranking" db:"ranking" example:"2"`
	NIRFRanking                    *int                  `json:"nirfRanking,omitempty" db:"nirf_ranking"`
	AcceptanceRate                 float64               `json:"acceptanceRate" db:"acceptance_rate"`
	StudentCount                   int                   `json:"studentCount" db:"student_count"`
	UndergraduateCount             int                   `json:"undergraduateCount" db:"undergraduate_count"`
	GraduateCount                  int                   `json:"graduateCount" db:"graduate_count"`
	InternationalStudentPercentage float64               `json:"internationalStudentPercentage" db:"international_student_percentage"`
	MaleFemaleRatio                string                `json:"maleFemaleRatio" db:"male_female_ratio"`
	TuitionFee                     int64                 `json:"tuitionFee" db:"tuition_fee"`
	AverageLivingCost              int64                 `json:"averageLivingCost" db:"average_living_cost"`
	PopularMajors                  []string              `json:"popularMajors" db:"popular_majors"`
	TopEmployers                   []string              `json:"topEmployers" db:"top_employers"`
	AverageSalaryAfterGraduation   int64                 `json:"averageSalaryAfterGraduation" db:"average_salary_after_graduation"`
	Website                        string                `json:"website" db:"website"`
	LogoURL                        string                `json:"logoUrl" db:"logo_url"`
	BannerURL                      string                `json:"bannerUrl" db:"banner_url"`
	CampusImages                   []string              `json:"campusImages" db:"campus_images"`
	EntranceExams                  []string              `json:"entranceExams,omitempty" db:"entrance_exams"`
	ReservationCategories          []ReservationCategory `json:"reservationCategories,omitempty" db:"reservation_categories"`
	FeeStructure                   []ProgramFee          `json:"feeStructure,omitempty" db:"fee_structure"`
	PlacementStats                 []PlacementStat       `json:"placementStats,omitempty" db:"placement_stats"`
	HostelInfo                     []Hostel              `json:"hostelInfo,omitempty" db:"hostel_info"`
	Events                         []CampusEvent         `json:"events,omitempty" db:"events"`

	// Derived
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

// ReservationCategory is a seat reservation quota
type ReservationCategory struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

// ProgramFee is the fee of one program
type ProgramFee struct {
	Program string `json:"program"`
	Fees    int64  `json:"fees"`
}

// PlacementStat summarises offers made by one company
type PlacementStat struct {
	Company    string `json:"company"`
	Offers     int    `json:"offers"`
	AverageCTC int64  `json:"averageCTC"`
}

// Hostel describes a residence hall
type Hostel struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Fees     int64  `json:"fees"`
}

// CampusEvent is a recurring campus festival or event
type CampusEvent struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Department belongs to exactly one college
type Department struct {
	ID           string   `json:"id" db:"id"`
	CollegeID    string   `json:"collegeId" db:"college_id"`
	Name         string   `json:"name" db:"name"`
	Description  string   `json:"description" db:"description"`
	FacultyCount int      `json:"facultyCount" db:"faculty_count"`
	StudentCount int      `json:"studentCount" db:"student_count"`
	Courses      []string `json:"courses" db:"courses"`
	Facilities   []string `json:"facilities" db:"facilities"`

	// Derived
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

// RatingStats is the aggregate of live reviews for a college or department
type RatingStats struct {
	Count   int
	Average float64
}

// ApplyStats copies derived review stats onto the college
func (c *College) ApplyStats(stats RatingStats) {
	c.ReviewCount = stats.Count
	c.AverageRating = stats.Average
}

// ApplyStats copies derived review stats onto the department
func (d *Department) ApplyStats(stats RatingStats) {
	d.ReviewCount = stats.Count
	d.AverageRating = stats.Average
}

// Clone returns a deep copy of the college
func (c *College) Clone() *College {
	if c == nil {
		return nil
	}
	cp := *c
	if c.NIRFRanking != nil {
		rank := *c.NIRFRanking
		cp.NIRFRanking = &rank
	}
	cp.PopularMajors = append([]string(nil), c.PopularMajors...)
	cp.TopEmployers = append([]string(nil), c.TopEmployers...)
	cp.CampusImages = append([]string(nil), c.CampusImages...)
	cp.EntranceExams = append([]string(nil), c.EntranceExams...)
	cp.ReservationCategories = append([]ReservationCategory(nil), c.ReservationCategories...)
	cp.FeeStructure = append([]ProgramFee(nil), c.FeeStructure...)
	cp.PlacementStats = append([]PlacementStat(nil), c.PlacementStats...)
	cp.HostelInfo = append([]Hostel(nil), c.HostelInfo...)
	cp.Events = append([]CampusEvent(nil), c.Events...)
	return &cp
}

// Clone returns a deep copy of the department
func (d *Department) Clone() *Department {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Courses = append([]string(nil), d.Courses...)
	cp.Facilities = append([]string(nil), d.Facilities...)
	return &cp
}
