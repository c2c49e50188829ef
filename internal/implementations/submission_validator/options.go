package submissionvalidator

var (
	startupIndustries = []string{
		"healthcare", "fintech", "edtech", "agritech", "cleantech", "artificial_intelligence",
		"blockchain", "iot", "cybersecurity", "biotechnology", "other",
	}
	fundingStages = []string{"idea_stage", "mvp_development", "pre_seed", "seed", "series_a", "series_b_plus"}
	teamSizes     = []string{"1_person", "2_5_people", "6_10_people", "11_25_people", "26_plus_people"}

	researchAreas = []string{
		"artificial_intelligence", "machine_learning", "data_science", "cybersecurity", "biotechnology",
		"renewable_energy", "quantum_computing", "robotics", "blockchain", "iot", "other",
	}
	academicLevels = []string{
		"undergraduate", "masters_student", "phd_student", "postdoc", "assistant_professor",
		"associate_professor", "professor", "industry_researcher",
	}
	collaborationTypes = []string{
		"joint_research", "resource_sharing", "student_exchange", "publication_collaboration",
		"grant_application", "other",
	}

	investorTypes = []string{
		"angel_investor", "venture_capital", "private_equity", "corporate_investor", "government_fund",
		"family_office", "other",
	}
	investmentRanges = []string{"under_50k", "50k_250k", "250k_1m", "1m_5m", "5m_20m", "above_20m"}
	industries       = []string{
		"healthcare", "fintech", "edtech", "agritech", "cleantech", "artificial_intelligence",
		"blockchain", "iot", "cybersecurity", "biotechnology", "consumer_products",
		"enterprise_software", "other",
	}

	experienceBands = []string{"1_3_years", "4_7_years", "8_15_years", "15_plus_years"}
	expertiseAreas  = []string{
		"business_strategy", "product_development", "marketing_sales", "fundraising", "technology",
		"operations", "legal_compliance", "hr_recruitment", "international_expansion", "other",
	}
	mentorshipExperience = []string{"first_time", "some_experience", "experienced_mentor", "professional_mentor"}
	availableTimes       = []string{"1_2_hours_month", "3_5_hours_month", "6_10_hours_month", "10_plus_hours_month"}

	studyLevels        = []string{"high_school", "undergraduate", "masters", "phd", "postgraduate"}
	interestedPrograms = []string{
		"internship", "mentorship", "workshops", "hackathons", "research_projects",
		"startup_incubation", "skill_development", "networking_events",
	}
	skills = []string{
		"programming", "data_analysis", "web_development", "mobile_development", "machine_learning",
		"cybersecurity", "ui_ux_design", "project_management", "digital_marketing",
		"business_development", "other",
	}

	organizationTypes = []string{
		"corporation", "nonprofit", "government_agency", "educational_institution",
		"research_institution", "startup", "other",
	}
	partnershipTypes = []string{
		"strategic_partnership", "technology_collaboration", "funding_partnership",
		"research_collaboration", "mentorship_program", "event_collaboration", "resource_sharing", "other",
	}
	organizationSizes = []string{"startup_1_10", "small_11_50", "medium_51_200", "large_201_1000", "enterprise_1000_plus"}
)
