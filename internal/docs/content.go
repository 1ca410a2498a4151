package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with sitegen",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "stages",
		Title:   "Stage Pipeline",
		Summary: "How a build runs stage by stage and what each stage must return",
		Content: topicStages,
	},
	{
		Name:    "templates",
		Title:   "Template Library",
		Summary: "templates.yaml format and {{PLACEHOLDER}} markers",
		Content: topicTemplates,
	},
	{
		Name:    "components",
		Title:   "Component Generation",
		Summary: "Selection, copy generation, fallback copy and backups",
		Content: topicComponents,
	},
	{
		Name:    "artifacts",
		Title:   "Artifacts Directory",
		Summary: "Structure of .sitegen/artifacts/ and what gets saved",
		Content: topicArtifacts,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    cd your-project
    sitegen init

   This creates .sitegen/config.yaml and .sitegen/templates.yaml.

2. Pick a model provider in .sitegen/config.yaml. The default is the
   claude CLI; ollama and gemini are also supported.

3. Preview the stages without calling a model:

    sitegen build "a site for a neighbourhood bakery" --dry-run

4. Build for real:

    sitegen build "a site for a neighbourhood bakery"

   The generated project replaces the contents of output-dir (default
   site/) only after every stage succeeds.

5. Generate reusable components from the template library:

    sitegen components --name "Crumb & Co" --industry bakery \
        --kind header --kind hero --kind footer --backup

6. Inspect or diagnose the last build:

    sitegen status
    sitegen doctor
`

const topicConfig = `Configuration Reference
=======================

File: .sitegen/config.yaml

Top-level fields:

    name            (required)  Project name.
    provider                    Model service settings (see below).
    selector                    Profile for template selection calls.
    generator                   Profile for stage and copy generation calls.
    output-dir      site        Directory replaced by a successful build.
    asset-dir       components  Directory components are written into.
    component-ext   .tsx        Extension of component files.
    templates       .sitegen/templates.yaml
    backup-dir      .sitegen/backups
    concurrency     4           Maximum component kinds generated at once.
    stages                      Ordered stage list. Omit for the built-in four.
    log                         file (.sitegen/sitegen.log, "-" for stderr)
                                and level (debug, info, warn, error).

Relative paths are resolved against the project root. output-dir is
cleared on every successful build, so it may not be the project root or
one of its parents, and it may not overlap .sitegen, asset-dir, or
backup-dir.

provider:

    type         claude | ollama | gemini   (default claude)
    model        claude: sonnet, ollama: llama3.1, gemini: gemini-2.5-flash
    api-key-env  gemini only, default GEMINI_API_KEY
    timeout      seconds per model call, default 300

The ollama provider honours OLLAMA_HOST. The claude provider needs the
claude CLI on PATH and ignores temperature and max-tokens.

Profiles:

    temperature  0 to 2; omit for the default
    max-tokens   output budget; omit or 0 for the default

Each field defaults on its own. Defaults: selector 0.1 / 50 tokens, generator 0.8 / 4096 tokens. For
component copy the generator temperature is replaced by the creativity
level: conservative 0.5, balanced 0.8, experimental 1.0.

Stage fields:

    name          (required, unique)
    description   Shown in progress output and prompts.
    instructions  (required) What this stage must produce.
`

const topicStages = `Stage Pipeline
==============

A build runs its stages strictly in order. Each stage's prompt contains:

  - the original request
  - the description returned by the previous stage
  - every file path produced so far
  - the names of completed stages and the chosen tech stack
  - the stage's own instructions

Each stage must answer with one JSON object:

    {
      "stage": 2,
      "name": "ui-primitives",
      "description": "Buttons, cards and navigation",
      "techStack": ["next.js", "tailwind"],
      "files": { "components/Button.tsx": "..." }
    }

Text around the object and a surrounding code fence are ignored. A
stage number that does not match its position only produces a warning.

Failure is all-or-nothing. A refusal, a response with no valid JSON
object, or a transport error stops the build at that stage and nothing
is written to output-dir. Retrying starts again from stage 1.

When every stage succeeds, file maps are merged in order (a later stage
replaces an earlier stage's file at the same path), output-dir is
removed, and every file is written. Absolute paths and paths that
escape output-dir are rejected before anything is removed.
`

const topicTemplates = `Template Library
================

File: .sitegen/templates.yaml

    kinds:
      hero:
        - id: hero-split
          description: Headline and call to action beside an image
          body: |
            <h2>{{HEADLINE}}</h2>
            <a>{{CTA_TEXT}}</a>

Each kind lists one or more candidates. Ids must be unique within a
kind and bodies must not be empty.

Placeholders are written {{NAME}}. Anything between double braces up to
the first closing brace is a name. There is no escape for a literal
"{{", so bodies must not contain double braces that are not
placeholders. Unbalanced markers are left as they are.

Values are inserted once. A value that itself contains {{X}} is not
expanded again.
`

const topicComponents = `Component Generation
====================

    sitegen components --name NAME [--industry ..] [--description ..]
        [--style ..] [--personality ..] --kind KIND [--kind KIND ..]
        [--creativity conservative|balanced|experimental] [--backup]

Every kind runs independently, up to 'concurrency' at a time. A failure
in one kind never stops the others and the report always lists every
requested kind.

For each kind:

  1. Selection. When a kind has several candidates the selector profile
     picks one by id. An answer that names no candidate falls back to the
     first candidate in the library.
  2. Copy. The generator writes a JSON object mapping each placeholder to
     text. If the model refuses or the answer is not a JSON object, copy
     comes from deterministic fallback rules based on the website details.
     Placeholders the model left out are filled the same way.
  3. Write. The filled body is written to asset-dir/<Kind><ext>, for
     example components/HeroBanner.tsx for kind "hero-banner".

Kinds fail when they have no templates, when selection is refused or
cannot reach the model, when copy generation cannot reach the model, or
when the file cannot be written. The command exits 1 if any kind failed.

--backup copies asset-dir to backup-dir/<run-id>/<timestamp>/ before any
kind starts. The copy is staged in a hidden directory and renamed into
place when complete. If the backup fails, every kind is reported failed
and nothing is generated.
`

const topicArtifacts = `Artifacts Directory
===================

.sitegen/artifacts/ holds the record of the most recent build. It is
cleared when a new build starts.

    state.json              run id, prompt, next stage index, status, error
    timing.json             start, end and duration of each stage
    prompts/stage-N.md      rendered prompt sent for stage N
    logs/stage-N.log        raw model response for stage N
    feedback/stage-N.md     error that stopped the build at stage N

'sitegen status' summarises state.json and timing.json. 'sitegen
doctor' sends the failed stage's prompt, response and error to the
configured model for a diagnosis.
`
