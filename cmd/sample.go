package cmd

import "github.com/spigell/internbuddy/internal/catalog"

// samplePool is the demo pool used when no candidates file is configured.
func samplePool() *catalog.Pool {
	return catalog.NewPool(
		&catalog.Candidate{
			ID:           "int-data-analyst",
			Kind:         catalog.KindInternship,
			Title:        "Data Analyst Intern",
			Organization: "TechCorp India",
			Location:     "Bangalore",
			Type:         catalog.WorkHybrid,
			Skills:       []string{"Excel", "Data Analysis", "SQL"},
			Duration:     "3 months",
			Stipend:      "₹15,000/month",
			Description:  "Work with real-world datasets and create impactful business insights.",
		},
		&catalog.Candidate{
			ID:           "int-digital-marketing",
			Kind:         catalog.KindInternship,
			Title:        "Digital Marketing Trainee",
			Organization: "GrowthLab",
			Location:     "Remote",
			Type:         catalog.WorkRemote,
			Skills:       []string{"Social Media", "Content Creation", "Analytics"},
			Duration:     "4 months",
			Stipend:      "₹12,000/month",
			Description:  "Learn end-to-end digital marketing while working on live campaigns.",
		},
		&catalog.Candidate{
			ID:           "int-ai-research",
			Kind:         catalog.KindInternship,
			Title:        "AI Research Assistant",
			Organization: "FutureTech Labs",
			Location:     "Mumbai",
			Type:         catalog.WorkOnsite,
			Skills:       []string{"Python", "Machine Learning", "Research"},
			Duration:     "6 months",
			Stipend:      "₹25,000/month",
			Description:  "Join cutting-edge AI research and contribute to breakthrough innovations.",
		},
		&catalog.Candidate{
			ID:          "course-advanced-excel",
			Kind:        catalog.KindCourse,
			Title:       "Advanced Excel for Business Analytics",
			Provider:    "SWAYAM",
			Skills:      []string{"Excel", "Data Analysis"},
			Duration:    "8 weeks",
			Level:       "Intermediate",
			Description: "Master advanced Excel techniques for data analysis and business intelligence.",
		},
		&catalog.Candidate{
			ID:          "course-digital-marketing",
			Kind:        catalog.KindCourse,
			Title:       "Digital Marketing Fundamentals",
			Provider:    "Skill India",
			Skills:      []string{"Social Media", "Content Creation", "Analytics"},
			Duration:    "6 weeks",
			Level:       "Beginner",
			Description: "Comprehensive introduction to digital marketing strategies and tools.",
		},
		&catalog.Candidate{
			ID:          "course-intro-ml",
			Kind:        catalog.KindCourse,
			Title:       "Introduction to Machine Learning",
			Provider:    "SWAYAM",
			Skills:      []string{"Python", "Machine Learning"},
			Duration:    "12 weeks",
			Level:       "Advanced",
			Description: "Learn the basics of machine learning algorithms and applications.",
		},
	)
}
