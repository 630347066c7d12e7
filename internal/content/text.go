package content

const (
	linkedIn = "https://www.linkedin.com/in/mark-lester-laroya-215b9b252/"
	gitHub   = "https://github.com/marklaroya"
	email    = "lestermjlaroya@gmail.com"

	emerald = "bg-emerald-500"
	amber   = "bg-amber-500"
	orange  = "bg-orange-500"
)

const intro = `Passionate about creating innovative solutions and maintaining robust network infrastructures. 3+ years
of experience in network support engineering and growing expertise in software and web development.`

const journey = `I'm an IT graduate from **Arellano University** with a passion for both network infrastructure and
software development. Currently working as a Network Support Engineer, I manage Layer 3 networks
across the Philippines, handling router configurations, IPsec tunnels, and network security protocols.

As a self-taught developer, I'm continuously expanding my skills in modern web technologies, combining
my technical network expertise with creative problem-solving in software development.`

const pitch = `I'm always excited to discuss new opportunities, collaborate on innovative projects, or share insights
about technology and network engineering. Whether you're looking for a dedicated network engineer or a
passionate developer, I'd love to hear from you.`

const responseTime = `I typically respond to emails within 24 hours and LinkedIn messages within a few hours during business
days. For urgent matters, feel free to call directly.`

var owner = Profile{
	Name:       "Mark Lester Laroya",
	Role:       "Programmer & Network Support Engineer",
	Greeting:   "Hello, I'm",
	Intro:      intro,
	Portrait:   "/Images/Profile-pic 3.png",
	AboutImage: "/Images/Ohh.jpg",
	ResumePath: "/assets/Lester_Laroya_Resume.pdf",
	HeroSocials: []Social{
		{Icon: "linkedin", Href: linkedIn, Label: "LinkedIn"},
		{Icon: "github", Href: gitHub, Label: "GitHub"},
	},
	Highlights: []Highlight{
		{
			Icon:        "🏆",
			Title:       "Experience",
			Subtitle:    "3+ Years",
			Description: "Network Support Engineer",
			Color:       "highlight-emerald",
		},
		{
			Icon:        "🎓",
			Title:       "Education",
			Subtitle:    "Bachelor's Degree",
			Description: "Information Technology",
			Color:       "highlight-blue",
		},
	},
	Journey: journey,
	SkillGroups: []SkillCategory{
		{
			Title: "Software Developer",
			Color: "border-blue",
			Skills: []Skill{
				{Name: "HTML", Level: "Experienced", Color: emerald, Percentage: 90},
				{Name: "CSS", Level: "Experienced", Color: emerald, Percentage: 85},
				{Name: "Java", Level: "Experienced", Color: emerald, Percentage: 80},
				{Name: "C++", Level: "Intermediate", Color: amber, Percentage: 70},
				{Name: "Python", Level: "Intermediate", Color: amber, Percentage: 65},
				{Name: "JavaScript", Level: "Basic", Color: orange, Percentage: 50},
				{Name: "React", Level: "Basic", Color: orange, Percentage: 45},
			},
		},
		{
			Title: "Network Support Engineer",
			Color: "border-emerald",
			Skills: []Skill{
				{Name: "Troubleshooting", Level: "Experienced", Color: emerald, Percentage: 95},
				{Name: "Network Configuration", Level: "Experienced", Color: emerald, Percentage: 90},
				{Name: "Documentation & Reporting", Level: "Experienced", Color: emerald, Percentage: 85},
				{Name: "Technical Support", Level: "Experienced", Color: emerald, Percentage: 88},
				{Name: "Performance Monitoring", Level: "Experienced", Color: emerald, Percentage: 82},
				{Name: "Routing Protocols", Level: "Experienced", Color: emerald, Percentage: 87},
			},
		},
	},
	Projects: []Project{
		{
			Title:       "2048 Game By Zuitt!",
			Description: "A free JavaScript mini-game workshop project featuring animations, responsive design, and modern game mechanics. Built with vanilla JavaScript and CSS5.",
			Image:       "/Images/2048zuitt.png",
			Preview:     "https://marklaroya.github.io/Laroya-js-2048-fcb/",
			Code:        "https://github.com/marklaroya/Laroya-js-2048-fcb",
			Tech:        []string{"JavaScript", "CSS5", "HTML5"},
			Status:      "Completed",
		},
		{
			Title:       "UpFace",
			Description: "A comprehensive Zoom clone application built with React and TypeScript, featuring real-time video calls, screen sharing, and chat functionality.",
			Image:       "/Images/UpFace2.png",
			Preview:     "https://up-face.vercel.app/",
			Code:        "https://github.com/marklaroya/UpFace",
			Tech:        []string{"React", "TypeScript", "Firebase", "Vercel"},
			Status:      "Completed",
		},
		{
			Title:       "Frontliners",
			Description: "COVID-19 Frontliner Record Management System designed to track and manage healthcare worker information during the pandemic response.",
			Image:       "/Images/Frontliner.png",
			Code:        "https://github.com/marklaroya/COVID-19-Frontliner-Record-Management",
			Tech:        []string{"Java", "MySQL"},
			Status:      "Completed",
		},
	},
	Pitch: pitch,
	Contacts: []Contact{
		{
			Icon:        "mail",
			Title:       "Email",
			Value:       email,
			Description: "Send me an email anytime",
			Href:        "mailto:" + email,
			Color:       "bg-blue-500",
		},
		{
			Icon:        "phone",
			Title:       "Phone",
			Value:       "+63 960 440 1428",
			Description: "Call me during business hours",
			Href:        "tel:+639604401428",
			Color:       emerald,
		},
		{
			Icon:        "map-pin",
			Title:       "Location",
			Value:       "Paranaque, Philippines",
			Description: "Available for remote work",
			Href:        "#",
			Color:       "bg-purple-500",
		},
		{
			Icon:        "calendar",
			Title:       "Availability",
			Value:       "Open to opportunities",
			Description: "Ready to start new projects",
			Href:        "#",
			Color:       orange,
		},
	},
	ResponseTime: responseTime,
	CardSocials: []Social{
		{Icon: "linkedin", Href: linkedIn, Label: "LinkedIn"},
		{Icon: "github", Href: gitHub, Label: "GitHub"},
		{Icon: "mail", Href: "mailto:" + email, Label: "Email"},
	},
	FooterLinks: []Social{
		{Icon: "github", Href: gitHub, Label: "GitHub"},
		{Icon: "linkedin", Href: linkedIn, Label: "LinkedIn"},
		{Icon: "mail", Href: "mailto:" + email, Label: "Email"},
	},
	Copyright:    "© 2024 Mark Lester Laroya. All Rights Reserved.",
	Technologies: "Technologies: Go, Gin, and HTMX",
}
