package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/sitegen/internal/ux"
)

var configTemplate = `name: my-site

provider:
  type: claude        # claude, ollama or gemini
  model: sonnet
  timeout: 300        # seconds per model call

selector:
  temperature: 0.1
  max-tokens: 50

generator:
  temperature: 0.8
  max-tokens: 4096

output-dir: site
asset-dir: components
component-ext: .tsx
concurrency: 4

# Omit 'stages' to use the built-in foundation, ui-primitives,
# content-pages and interactivity stages.
stages:
  - name: foundation
    description: Project configuration and root layout
    instructions: |
      Create the package manifest, framework configuration, styling setup
      and the root layout. List the chosen technologies in "techStack".

  - name: pages
    description: Pages and shared components
    instructions: |
      Create every page with real copy for the product described, plus the
      shared header, footer and navigation they use.

log:
  level: info
`

var templatesTemplate = `kinds:
  header:
    - id: header-minimal
      description: Brand on the left, navigation links on the right
      body: |
        export default function Header() {
          return (
            <header className="flex items-center justify-between p-6">
              <span className="text-xl font-bold">{{BRAND_NAME}}</span>
              <a href="#contact" className="btn">{{CTA_TEXT}}</a>
            </header>
          );
        }
    - id: header-centered
      description: Centered brand with tagline underneath
      body: |
        export default function Header() {
          return (
            <header className="py-8 text-center">
              <h1 className="text-3xl font-serif">{{BRAND_NAME}}</h1>
              <p className="text-sm opacity-70">{{TAGLINE}}</p>
            </header>
          );
        }

  hero:
    - id: hero-split
      description: Headline and call to action beside an image
      body: |
        export default function Hero() {
          return (
            <section className="grid md:grid-cols-2 gap-8 p-12">
              <div>
                <h2 className="text-5xl font-bold">{{HEADLINE}}</h2>
                <p className="mt-4 text-lg">{{SUBHEADLINE}}</p>
                <a href="#contact" className="btn mt-6">{{CTA_TEXT}}</a>
              </div>
              <img src="/hero.jpg" alt="{{IMAGE_ALT}}" />
            </section>
          );
        }
    - id: hero-statement
      description: One bold full-width statement
      body: |
        export default function Hero() {
          return (
            <section className="py-24 text-center">
              <h2 className="text-6xl font-black">{{HEADLINE}}</h2>
            </section>
          );
        }

  footer:
    - id: footer-simple
      description: Copyright and contact line
      body: |
        export default function Footer() {
          return (
            <footer className="p-6 text-sm">
              <p>{{COPYRIGHT}}</p>
              <p>{{CONTACT_EMAIL}}</p>
            </footer>
          );
        }
`

var gitignoreTemplate = `artifacts/
backups/
*.log
`

// Init creates a new .sitegen/ directory with example config and templates.
func Init(targetDir string) error {
	dir := filepath.Join(targetDir, ".sitegen")
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf(".sitegen directory already exists in %s", targetDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating .sitegen: %w", err)
	}

	files := []struct {
		name, content string
	}{
		{"config.yaml", configTemplate},
		{"templates.yaml", templatesTemplate},
		{".gitignore", gitignoreTemplate},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}

	fmt.Printf("\n%s%s✓ Initialized .sitegen/ directory%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Printf("  Created:\n")
	fmt.Printf("    %s.sitegen/config.yaml%s     provider and stage configuration\n", ux.Cyan, ux.Reset)
	fmt.Printf("    %s.sitegen/templates.yaml%s  component template library\n\n", ux.Cyan, ux.Reset)
	fmt.Printf("  Next steps:\n")
	fmt.Printf("    1. Pick a provider in %s.sitegen/config.yaml%s\n", ux.Cyan, ux.Reset)
	fmt.Printf("    2. Run %ssitegen build \"a site for my bakery\" --dry-run%s to preview\n", ux.Cyan, ux.Reset)
	fmt.Printf("    3. Run %ssitegen components --name \"Crumb & Co\" --kind hero%s\n\n", ux.Cyan, ux.Reset)

	return nil
}
