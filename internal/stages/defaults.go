package stages

// DefaultSpecs returns the built-in four-stage build.
func DefaultSpecs() []Spec {
	return []Spec{
		{
			Name:        "foundation",
			Description: "Project configuration, dependencies and root layout",
			Instructions: `Create the project foundation: package manifest, framework and build
configuration, styling setup, and the root layout. Choose the tech stack
and list it in "techStack".`,
		},
		{
			Name:        "ui-primitives",
			Description: "Shared UI components",
			Instructions: `Create the reusable UI primitives the pages will share: buttons, cards,
navigation, header and footer. Follow the styling setup from the
foundation stage.`,
		},
		{
			Name:        "content-pages",
			Description: "Routes and page content",
			Instructions: `Create every page the product needs with real, specific copy for the
product described. Compose pages from the existing UI primitives.`,
		},
		{
			Name:        "interactivity",
			Description: "Client-side behaviour and forms",
			Instructions: `Add interactivity: forms with validation, client state, mobile
navigation and any small animations. Overwrite earlier files only when a
change is required.`,
		},
	}
}
