package domain

// Template is a named, reusable bundle of sections plus a theme. Loading a
// template clones its sections with fresh ids; the stored copy is never
// mutated.
type Template struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Preview      string       `json:"preview"`
	Sections     []Section    `json:"sections"`
	GlobalStyles GlobalStyles `json:"globalStyles"`
	Featured     bool         `json:"featured,omitempty"`
}

// BuiltinTemplates returns the templates shipped with the builder.
func BuiltinTemplates() []Template {
	return []Template{
		{
			ID:          "startup-landing",
			Name:        "Startup Landing",
			Description: "Hero, feature copy and a gallery for a product launch page",
			Category:    "Business",
			Preview:     "Navigation, hero with call-to-action, content, gallery, footer",
			Featured:    true,
			Sections: []Section{
				{
					ID:    "tpl-startup-header",
					Type:  SectionHeader,
					Title: "Header Section",
					Content: &HeaderContent{
						Logo:       "Launchpad",
						Navigation: []string{"Product", "Pricing", "Blog", "Contact"},
					},
					Order: 0,
				},
				{
					ID:    "tpl-startup-hero",
					Type:  SectionHero,
					Title: "Hero Section",
					Content: &HeroContent{
						Title:           "Ship Your Idea Faster",
						Subtitle:        "Everything you need to take a product from sketch to launch day",
						ButtonText:      "Start Free Trial",
						ButtonLink:      "#pricing",
						BackgroundImage: "https://images.unsplash.com/photo-1557804506-669a67965ba0?w=1200&h=600&fit=crop",
					},
					Order: 1,
				},
				{
					ID:    "tpl-startup-content",
					Type:  SectionText,
					Title: "Content Section",
					Content: &TextContent{
						Title: "Built for Small Teams",
						Text:  "Focus on your product while the platform handles hosting, analytics and updates.",
					},
					Order: 2,
				},
				{
					ID:    "tpl-startup-gallery",
					Type:  SectionGallery,
					Title: "Gallery Section",
					Content: &GalleryContent{
						Title: "See It in Action",
						Images: []string{
							"https://images.unsplash.com/photo-1551434678-e076c223a692?w=400&h=300&fit=crop",
							"https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?w=400&h=300&fit=crop",
						},
					},
					Order: 3,
				},
				{
					ID:    "tpl-startup-footer",
					Type:  SectionFooter,
					Title: "Footer Section",
					Content: &FooterContent{
						Copyright: "© 2024 Launchpad Inc.",
						Links:     []string{"Privacy Policy", "Terms of Service", "Contact"},
					},
					Order: 4,
				},
			},
			GlobalStyles: GlobalStyles{
				PrimaryColor:    "#155dfc",
				SecondaryColor:  "#06B6D4",
				FontFamily:      "Inter",
				BackgroundColor: "#FFFFFF",
			},
		},
		{
			ID:          "portfolio",
			Name:        "Portfolio",
			Description: "Minimal personal site with a gallery front and center",
			Category:    "Personal",
			Preview:     "Hero, gallery, contact footer",
			Sections: []Section{
				{
					ID:    "tpl-portfolio-hero",
					Type:  SectionHero,
					Title: "Hero Section",
					Content: &HeroContent{
						Title:           "Jordan Reyes",
						Subtitle:        "Photographer and visual storyteller",
						ButtonText:      "View Work",
						ButtonLink:      "#gallery",
						BackgroundImage: "https://images.unsplash.com/photo-1557804506-669a67965ba0?w=1200&h=600&fit=crop",
					},
					Order: 0,
				},
				{
					ID:    "tpl-portfolio-gallery",
					Type:  SectionGallery,
					Title: "Gallery Section",
					Content: &GalleryContent{
						Title: "Selected Work",
						Images: []string{
							"https://images.unsplash.com/photo-1557804506-669a67965ba0?w=400&h=300&fit=crop",
							"https://images.unsplash.com/photo-1551434678-e076c223a692?w=400&h=300&fit=crop",
							"https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?w=400&h=300&fit=crop",
						},
					},
					Order: 1,
				},
				{
					ID:    "tpl-portfolio-footer",
					Type:  SectionFooter,
					Title: "Footer Section",
					Content: &FooterContent{
						Copyright: "© 2024 Jordan Reyes",
						Links:     []string{"Instagram", "Contact"},
					},
					Order: 2,
				},
			},
			GlobalStyles: GlobalStyles{
				PrimaryColor:    "#111827",
				SecondaryColor:  "#6B7280",
				FontFamily:      "Inter",
				BackgroundColor: "#F9FAFB",
			},
		},
	}
}

// FindTemplate looks up a built-in template by id.
func FindTemplate(id string) (Template, bool) {
	for _, t := range BuiltinTemplates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
