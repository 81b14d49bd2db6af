package domain

// DefaultContent returns the starter content for a section type. Unknown
// types get an empty opaque map so the renderer has something to degrade on.
func DefaultContent(t SectionType) SectionContent {
	switch t {
	case SectionHero:
		return &HeroContent{
			Title:           "Welcome to Our Website",
			Subtitle:        "Build something amazing with our tools and create stunning experiences",
			ButtonText:      "Get Started",
			ButtonLink:      "#",
			BackgroundImage: "https://images.unsplash.com/photo-1557804506-669a67965ba0?w=1200&h=600&fit=crop",
		}
	case SectionHeader:
		return &HeaderContent{
			Logo:       "Your Logo",
			Navigation: []string{"Home", "About", "Services", "Contact"},
		}
	case SectionText:
		return &TextContent{
			Title: "Content Section",
			Text:  "Add your content here. You can edit this text in the properties panel to create engaging and informative content for your visitors.",
		}
	case SectionGallery:
		return &GalleryContent{
			Title: "Image Gallery",
			Images: []string{
				"https://images.unsplash.com/photo-1557804506-669a67965ba0?w=400&h=300&fit=crop",
				"https://images.unsplash.com/photo-1551434678-e076c223a692?w=400&h=300&fit=crop",
				"https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?w=400&h=300&fit=crop",
			},
		}
	case SectionFooter:
		return &FooterContent{
			Copyright: "© 2024 Your Company. All rights reserved.",
			Links:     []string{"Privacy Policy", "Terms of Service", "Contact"},
		}
	default:
		return RawContent{}
	}
}
