package seed

import (
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

// demoUser pairs an account with its plain-text demo password
type demoUser struct {
	user     models.User
	password string
}

var demoUsers = []demoUser{
	{
		password: "password123",
		user: models.User{
			ID:        "1",
			Name:      "John Doe",
			Email:     "john@example.com",
			CreatedAt: day(2023, time.January, 1),
			Role:      models.RoleUser,
			Bio:       "Computer Science student passionate about web development and AI.",
			Location:  "San Francisco, CA",
			Website:   "https://johndoe.dev",
			SocialLinks: []models.SocialLink{
				{Platform: "LinkedIn", URL: "https://linkedin.com/in/johndoe"},
				{Platform: "Twitter", URL: "https://twitter.com/johndoe"},
				{Platform: "GitHub", URL: "https://github.com/johndoe"},
			},
			Skills: []string{"JavaScript", "React", "Node.js", "Python", "Machine Learning"},
			Education: []models.Education{{
				ID:          "1",
				Institution: "Stanford University",
				Degree:      "Bachelor of Science",
				Field:       "Computer Science",
				StartYear:   2018,
				EndYear:     intPtr(2022),
			}},
		},
	},
	{
		password: "password456",
		user: models.User{
			ID:        "2",
			Name:      "Jane Smith",
			Email:     "jane@example.com",
			CreatedAt: day(2023, time.February, 15),
			Role:      models.RoleUser,
		},
	},
	{
		password: "adminpass",
		user: models.User{
			ID:        "3",
			Name:      "Admin User",
			Email:     "admin@example.com",
			CreatedAt: day(2023, time.January, 1),
			Role:      models.RoleAdmin,
		},
	},
}

var standardReservations = []models.ReservationCategory{
	{Category: "General", Percentage: 50.5},
	{Category: "OBC", Percentage: 27},
	{Category: "SC", Percentage: 15},
	{Category: "ST", Percentage: 7.5},
}

var placeholderImages = []string{
	"/placeholder.svg?height=300&width=400",
	"/placeholder.svg?height=300&width=400",
	"/placeholder.svg?height=300&width=400",
}

var colleges = []models.College{
	{
		ID:                             "1",
		Name:                           "Indian Institute of Technology, Delhi",
		ShortName:                      "IIT Delhi",
		Location:                       "New Delhi, Delhi",
		Country:                        "India",
		Description:                    "IIT Delhi is one of India's most prestigious engineering institutions, known for its rigorous academic programs and cutting-edge research.",
		Founded:                        1961,
		Type:                           "Public",
		Ranking:                        2,
		NIRFRanking:                    intPtr(2),
		AcceptanceRate:                 0.02,
		StudentCount:                   10000,
		UndergraduateCount:             4500,
		GraduateCount:                  5500,
		InternationalStudentPercentage: 5,
		MaleFemaleRatio:                "80:20",
		TuitionFee:                     200000,
		AverageLivingCost:              120000,
		PopularMajors:                  []string{"Computer Science", "Electrical Engineering", "Mechanical Engineering"},
		TopEmployers:                   []string{"Google", "Microsoft", "Tata Consultancy Services", "Reliance"},
		AverageSalaryAfterGraduation:   1600000,
		Website:                        "https://iitd.ac.in",
		LogoURL:                        "/placeholder.svg?height=100&width=100",
		BannerURL:                      "/placeholder.svg?height=400&width=800",
		CampusImages:                   placeholderImages,
		EntranceExams:                  []string{"JEE Advanced", "GATE"},
		ReservationCategories:          standardReservations,
		FeeStructure: []models.ProgramFee{
			{Program: "B.Tech", Fees: 222000},
			{Program: "M.Tech", Fees: 178000},
			{Program: "PhD", Fees: 82000},
		},
		PlacementStats: []models.PlacementStat{
			{Company: "Google", Offers: 38, AverageCTC: 3500000},
			{Company: "Microsoft", Offers: 42, AverageCTC: 2800000},
			{Company: "Amazon", Offers: 51, AverageCTC: 2600000},
		},
		HostelInfo: []models.Hostel{
			{Name: "Nilgiri Hostel", Type: "Boys", Capacity: 500, Fees: 80000},
			{Name: "Kailash Hostel", Type: "Boys", Capacity: 450, Fees: 80000},
			{Name: "Himadri Hostel", Type: "Girls", Capacity: 350, Fees: 80000},
		},
		Events: []models.CampusEvent{
			{Name: "Rendezvous", Date: "October 2023", Description: "Annual cultural festival of IIT Delhi"},
			{Name: "Tryst", Date: "March 2024", Description: "Annual technical festival of IIT Delhi"},
		},
	},
	{
		ID:                             "2",
		Name:                           "Indian Institute of Management, Ahmedabad",
		ShortName:                      "IIM-A",
		Location:                       "Ahmedabad, Gujarat",
		Country:                        "India",
		Description:                    "IIM Ahmedabad is India's premier management institution, consistently ranked as the top business school in the country.",
		Founded:                        1961,
		Type:                           "Public",
		Ranking:                        1,
		NIRFRanking:                    intPtr(1),
		AcceptanceRate:                 0.01,
		StudentCount:                   1200,
		UndergraduateCount:             0,
		GraduateCount:                  1200,
		InternationalStudentPercentage: 8,
		MaleFemaleRatio:                "65:35",
		TuitionFee:                     2300000,
		AverageLivingCost:              180000,
		PopularMajors:                  []string{"MBA", "PGPX", "Executive Education"},
		TopEmployers:                   []string{"McKinsey", "BCG", "Bain & Company", "Amazon"},
		AverageSalaryAfterGraduation:   2800000,
		Website:                        "https://iima.ac.in",
		LogoURL:                        "/placeholder.svg?height=100&width=100",
		BannerURL:                      "/placeholder.svg?height=400&width=800",
		CampusImages:                   placeholderImages,
		EntranceExams:                  []string{"CAT", "GMAT"},
		ReservationCategories:          standardReservations,
		FeeStructure: []models.ProgramFee{
			{Program: "MBA", Fees: 2300000},
			{Program: "PGPX", Fees: 2800000},
			{Program: "Executive Education", Fees: 1500000},
		},
		PlacementStats: []models.PlacementStat{
			{Company: "McKinsey", Offers: 18, AverageCTC: 4200000},
			{Company: "BCG", Offers: 15, AverageCTC: 4000000},
			{Company: "Amazon", Offers: 22, AverageCTC: 3500000},
		},
		HostelInfo: []models.Hostel{
			{Name: "New Campus", Type: "Co-ed", Capacity: 600, Fees: 120000},
			{Name: "Old Campus", Type: "Co-ed", Capacity: 400, Fees: 100000},
		},
		Events: []models.CampusEvent{
			{Name: "Confluence", Date: "November 2023", Description: "Annual business summit of IIM Ahmedabad"},
			{Name: "Chaos", Date: "January 2024", Description: "Annual cultural festival of IIM Ahmedabad"},
		},
	},
	{
		ID:                             "3",
		Name:                           "All India Institute of Medical Sciences, Delhi",
		ShortName:                      "AIIMS Delhi",
		Location:                       "New Delhi, Delhi",
		Country:                        "India",
		Description:                    "AIIMS Delhi is India's premier medical institution, offering world-class medical education and healthcare services.",
		Founded:                        1956,
		Type:                           "Public",
		Ranking:                        1,
		NIRFRanking:                    intPtr(1),
		AcceptanceRate:                 0.005,
		StudentCount:                   2500,
		UndergraduateCount:             1200,
		GraduateCount:                  1300,
		InternationalStudentPercentage: 3,
		MaleFemaleRatio:                "55:45",
		TuitionFee:                     6000,
		AverageLivingCost:              120000,
		PopularMajors:                  []string{"MBBS", "MD", "MS", "DM", "MCh"},
		TopEmployers:                   []string{"AIIMS", "Apollo Hospitals", "Fortis Healthcare", "Max Healthcare"},
		AverageSalaryAfterGraduation:   1200000,
		Website:                        "https://aiims.edu",
		LogoURL:                        "/placeholder.svg?height=100&width=100",
		BannerURL:                      "/placeholder.svg?height=400&width=800",
		CampusImages:                   placeholderImages,
		EntranceExams:                  []string{"NEET-UG", "NEET-PG", "INI-CET"},
		ReservationCategories:          standardReservations,
		FeeStructure: []models.ProgramFee{
			{Program: "MBBS", Fees: 6000},
			{Program: "MD/MS", Fees: 8000},
			{Program: "DM/MCh", Fees: 10000},
		},
		PlacementStats: []models.PlacementStat{
			{Company: "AIIMS", Offers: 45, AverageCTC: 1500000},
			{Company: "Apollo Hospitals", Offers: 32, AverageCTC: 1800000},
			{Company: "Fortis Healthcare", Offers: 28, AverageCTC: 1600000},
		},
		HostelInfo: []models.Hostel{
			{Name: "Undergraduate Hostel", Type: "Boys", Capacity: 450, Fees: 60000},
			{Name: "Girls Hostel", Type: "Girls", Capacity: 350, Fees: 60000},
			{Name: "Resident Doctors Hostel", Type: "Co-ed", Capacity: 600, Fees: 72000},
		},
		Events: []models.CampusEvent{
			{Name: "Pulse", Date: "September 2023", Description: "Annual medical festival of AIIMS Delhi"},
			{Name: "Confluence", Date: "March 2024", Description: "Annual research symposium of AIIMS Delhi"},
		},
	},
}

var departments = []models.Department{
	{
		ID:           "1",
		CollegeID:    "1",
		Name:         "Computer Science and Engineering",
		Description:  "The Department of Computer Science and Engineering at IIT Delhi is known for its cutting-edge research and comprehensive curriculum.",
		FacultyCount: 45,
		StudentCount: 800,
		Courses:      []string{"Data Structures and Algorithms", "Machine Learning", "Computer Networks", "Operating Systems"},
		Facilities:   []string{"AI Lab", "Systems Lab", "Networks Lab", "Graphics Lab"},
	},
	{
		ID:           "2",
		CollegeID:    "1",
		Name:         "Electrical Engineering",
		Description:  "The Department of Electrical Engineering at IIT Delhi offers programs in power systems, communications, and electronics.",
		FacultyCount: 50,
		StudentCount: 850,
		Courses:      []string{"Power Systems", "Digital Signal Processing", "VLSI Design", "Control Systems"},
		Facilities:   []string{"Power Lab", "Communications Lab", "VLSI Lab", "Embedded Systems Lab"},
	},
	{
		ID:           "3",
		CollegeID:    "2",
		Name:         "MBA Program",
		Description:  "The flagship two-year MBA program at IIM Ahmedabad is designed to prepare students for leadership roles in business.",
		FacultyCount: 90,
		StudentCount: 400,
		Courses:      []string{"Marketing Management", "Financial Accounting", "Operations Research", "Strategic Management"},
		Facilities:   []string{"Case Study Rooms", "Bloomberg Terminal", "Incubation Center", "Library"},
	},
}

var reviews = []models.Review{
	{
		ID:           "1",
		UserID:       "1",
		CollegeID:    "1",
		DepartmentID: "1",
		Content:      "IIT Delhi has an excellent Computer Science program. The faculty is knowledgeable and the curriculum is up-to-date with industry standards. Campus placements are outstanding with top tech companies visiting regularly. However, the workload can be overwhelming at times.",
		Rating:       4.5,
		CreatedAt:    day(2023, time.May, 15),
		Tags:         []string{"Academics", "Placements", "Faculty"},
	},
	{
		ID:           "2",
		UserID:       "2",
		CollegeID:    "1",
		DepartmentID: "2",
		Content:      "The Electrical Engineering department at IIT Delhi is top-notch. The labs are well-equipped and there are plenty of research opportunities. The faculty is supportive but some courses could be better structured. The JEE preparation was definitely worth it!",
		Rating:       4.0,
		CreatedAt:    day(2023, time.June, 20),
		IsAnonymous:  true,
		Tags:         []string{"Research", "Labs", "Curriculum"},
	},
	{
		ID:           "3",
		UserID:       "1",
		CollegeID:    "2",
		DepartmentID: "3",
		Content:      "IIM Ahmedabad's MBA program is intense but transformative. The case-based learning approach really prepares you for real-world business challenges. The alumni network is incredibly strong and helpful for placements. The campus is beautiful with the iconic Louis Kahn architecture.",
		Rating:       5.0,
		CreatedAt:    day(2023, time.April, 10),
		Tags:         []string{"Placements", "Networking", "Campus"},
	},
}

var comments = []models.Comment{
	{
		ID:        "1",
		UserID:    "2",
		ReviewID:  "1",
		Content:   "Thanks for sharing your experience! Did you participate in any internships?",
		CreatedAt: day(2023, time.May, 16),
	},
	{
		ID:        "2",
		UserID:    "1",
		ReviewID:  "1",
		Content:   "Yes, I did a summer internship at Google after my third year. The college's placement cell was very helpful in securing it.",
		CreatedAt: day(2023, time.May, 17),
	},
}

var reactions = []models.Reaction{
	{UserID: "2", ReviewID: "1", Emoji: "👍"},
	{UserID: "1", ReviewID: "2", Emoji: "❤️"},
}

var bookmarks = []models.Bookmark{
	{UserID: "1", ReviewID: "2"},
	{UserID: "2", ReviewID: "1"},
}

// pollLifetime is how long the seeded poll stays open from seeding time
const pollLifetime = 90 * 24 * time.Hour

var polls = []models.Poll{
	{
		ID:        "1",
		CollegeID: "1",
		Question:  "Which aspect of IIT Delhi do you value the most?",
		Options: []models.PollOption{
			{ID: "1", Text: "Academic Excellence", Votes: 145},
			{ID: "2", Text: "Research Opportunities", Votes: 98},
			{ID: "3", Text: "Placement Support", Votes: 187},
			{ID: "4", Text: "Campus Life", Votes: 76},
		},
		CreatedAt: day(2023, time.April, 1),
	},
}

var votes = []models.Vote{
	{UserID: "1", PollID: "1", OptionID: "3"},
	{UserID: "2", PollID: "1", OptionID: "1"},
}

var notifications = []models.Notification{
	{
		ID:        "1",
		UserID:    "1",
		Type:      models.NotificationComment,
		Message:   "Someone commented on your review of IIT Delhi",
		CreatedAt: day(2023, time.May, 16),
		RelatedID: "1",
	},
	{
		ID:        "2",
		UserID:    "1",
		Type:      models.NotificationReaction,
		Message:   "Someone reacted to your review of IIT Delhi",
		Read:      true,
		CreatedAt: day(2023, time.May, 15),
		RelatedID: "1",
	},
}
