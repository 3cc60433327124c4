package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/patternforge/skillsmith/internal/config"
	"github.com/patternforge/skillsmith/internal/research"
	"github.com/patternforge/skillsmith/internal/workflow"
)

// intakeStep identifies one requirements question asked before the
// research workflow starts.
type intakeStep int

const (
	intakeName intakeStep = iota
	intakePurpose
	intakeType
	intakeAudience
	intakeWorkflows
	intakePreferences
	intakePatterns
	intakeDone
)

// RunResult is everything the wizard collected: the skill requirements
// and the final research workflow state, ready for generation.
type RunResult struct {
	Requirements research.Requirements
	State        workflow.State
}

// checkOption is one toggleable entry in a checklist step.
type checkOption struct {
	value string
	label string
	desc  string
}

// typeItem implements list.Item for skill-type selection.
type typeItem struct {
	skillType   research.SkillType
	description string
}

func (t typeItem) Title() string       { return string(t.skillType) }
func (t typeItem) Description() string { return t.description }
func (t typeItem) FilterValue() string { return string(t.skillType) }

var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardNoticeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// wizardModel drives the skill-creation wizard: a requirements intake
// phase followed by the research workflow, with all step transitions
// delegated to workflow.ProcessAnswer.
type wizardModel struct {
	researcher Researcher

	intake intakeStep

	nameInput        textinput.Model
	purposeInput     textinput.Model
	audienceInput    textinput.Model
	workflowsInput   textinput.Model
	preferencesInput textinput.Model
	patternsInput    textinput.Model
	typeList         list.Model

	queryInput textinput.Model

	options []checkOption
	checked []bool
	cursor  int

	state  workflow.State
	notice string

	width  int
	height int
}

func newWizardModel(researcher Researcher) wizardModel {
	ni := textinput.New()
	ni.Placeholder = "skill-name"
	ni.Focus()
	ni.CharLimit = 63
	ni.Width = 40

	pi := textinput.New()
	pi.Placeholder = "What this skill helps with"
	pi.CharLimit = 256
	pi.Width = 60

	ai := textinput.New()
	ai.Placeholder = "Who is it for (optional)"
	ai.CharLimit = 128
	ai.Width = 50

	wi := textinput.New()
	wi.Placeholder = "Comma-separated workflows (optional)"
	wi.CharLimit = 512
	wi.Width = 60

	ci := textinput.New()
	ci.Placeholder = "e.g. testing, troubleshooting, anti-patterns (optional)"
	ci.CharLimit = 256
	ci.Width = 60

	si := textinput.New()
	si.Placeholder = "Comma-separated search terms (optional)"
	si.CharLimit = 256
	si.Width = 60

	qi := textinput.New()
	qi.Placeholder = "search query"
	qi.CharLimit = 256
	qi.Width = 60

	items := []list.Item{
		typeItem{research.SkillTypeTechnique, "A focused way of doing one thing well"},
		typeItem{research.SkillTypePattern, "A reusable structure to recognize and apply"},
		typeItem{research.SkillTypeReference, "A lookup companion for a library or API"},
		typeItem{research.SkillTypeWorkflow, "A multi-step procedure to follow end to end"},
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tl := list.New(items, delegate, 60, 12)
	tl.SetShowStatusBar(false)
	tl.SetFilteringEnabled(false)
	tl.SetShowHelp(false)
	tl.SetShowTitle(false)

	return wizardModel{
		researcher:       researcher,
		intake:           intakeName,
		nameInput:        ni,
		purposeInput:     pi,
		audienceInput:    ai,
		workflowsInput:   wi,
		preferencesInput: ci,
		patternsInput:    si,
		typeList:         tl,
		queryInput:       qi,
		state:            workflow.NewState(),
	}
}

func (w *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, result, cmd).
// done=true with non-nil result means the wizard finished; done=true
// with nil result means it was cancelled.
func (w *wizardModel) Update(msg tea.Msg) (bool, *RunResult, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			return w.handleBack()
		}
	}

	if w.intake < intakeDone {
		return w.updateIntake(msg)
	}
	return w.updateWorkflow(msg)
}

func (w *wizardModel) handleBack() (bool, *RunResult, tea.Cmd) {
	if w.intake == intakeName {
		return true, nil, nil
	}
	if w.intake < intakeDone {
		w.intake--
		w.notice = ""
		return false, nil, w.focusIntake()
	}
	// The research workflow only moves forward; Esc abandons the run.
	return true, nil, nil
}

func (w *wizardModel) updateIntake(msg tea.Msg) (bool, *RunResult, tea.Cmd) {
	if w.intake == intakeType {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			w.intake++
			return false, nil, w.focusIntake()
		}
		var cmd tea.Cmd
		w.typeList, cmd = w.typeList.Update(msg)
		return false, nil, cmd
	}

	input := w.intakeInput()
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		value := strings.TrimSpace(input.Value())
		switch w.intake {
		case intakeName:
			if err := config.ValidateSkillName(value); err != nil {
				w.notice = err.Error()
				return false, nil, nil
			}
		case intakePurpose:
			if value == "" {
				w.notice = "a purpose is required"
				return false, nil, nil
			}
		}
		w.notice = ""
		w.intake++
		if w.intake == intakeDone {
			return false, nil, w.prepareStep()
		}
		return false, nil, w.focusIntake()
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return false, nil, cmd
}

// intakeInput returns the text input backing the current intake step.
func (w *wizardModel) intakeInput() *textinput.Model {
	switch w.intake {
	case intakeName:
		return &w.nameInput
	case intakePurpose:
		return &w.purposeInput
	case intakeAudience:
		return &w.audienceInput
	case intakeWorkflows:
		return &w.workflowsInput
	case intakePreferences:
		return &w.preferencesInput
	default:
		return &w.patternsInput
	}
}

func (w *wizardModel) focusIntake() tea.Cmd {
	for _, input := range []*textinput.Model{
		&w.nameInput, &w.purposeInput, &w.audienceInput,
		&w.workflowsInput, &w.preferencesInput, &w.patternsInput,
	} {
		input.Blur()
	}
	if w.intake == intakeType || w.intake >= intakeDone {
		return nil
	}
	w.intakeInput().Focus()
	return textinput.Blink
}

func (w *wizardModel) updateWorkflow(msg tea.Msg) (bool, *RunResult, tea.Cmd) {
	step := w.state.CurrentStep

	if isQueryStep(step) {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			query := strings.TrimSpace(w.queryInput.Value())
			if query == "" {
				return false, nil, nil
			}
			return w.submit(workflow.Answer{Step: step, CustomInput: query})
		}
		var cmd tea.Cmd
		w.queryInput, cmd = w.queryInput.Update(msg)
		return false, nil, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		if len(w.options) > 0 {
			w.cursor = (w.cursor + 1) % len(w.options)
		}
	case "k", "up":
		if len(w.options) > 0 {
			w.cursor = (w.cursor - 1 + len(w.options)) % len(w.options)
		}
	case " ":
		if w.cursor < len(w.checked) {
			w.checked[w.cursor] = !w.checked[w.cursor]
		}
	case "enter":
		selected := w.selectedValues()
		if len(selected) == 0 {
			w.notice = "select at least one entry, or skip"
			return false, nil, nil
		}
		if step == workflow.StepContext7Fetch {
			w.attachDocs(selected)
		}
		return w.submit(workflow.Answer{Step: step, SelectedOptions: selected})
	case "r":
		if isResultsStep(step) {
			return w.submit(workflow.Answer{Step: step, Action: workflow.ActionSearchAgain})
		}
	case "s":
		if isResultsStep(step) || step == workflow.StepContext7Fetch {
			return w.submit(workflow.Answer{Step: step, Action: workflow.ActionSkip})
		}
	}
	return false, nil, nil
}

// submit hands the answer to the workflow core and reacts to wherever
// it lands. A stalled step re-prompts.
func (w *wizardModel) submit(answer workflow.Answer) (bool, *RunResult, tea.Cmd) {
	before := w.state.CurrentStep
	w.state = workflow.ProcessAnswer(w.state, answer)

	if w.state.CurrentStep == before {
		w.notice = "that answer did not move things forward, adjust and retry"
		return false, nil, nil
	}
	w.notice = ""

	if w.state.CurrentStep == workflow.StepGeneration {
		return true, &RunResult{Requirements: w.requirements(), State: w.state}, nil
	}
	return false, nil, w.prepareStep()
}

// prepareStep readies the UI for the workflow step just entered: it
// runs the researcher for results steps and attaches the payload to
// the state, and rebuilds the checklist or query input.
func (w *wizardModel) prepareStep() tea.Cmd {
	w.options = nil
	w.cursor = 0

	switch step := w.state.CurrentStep; step {
	case workflow.StepSourceSelection:
		w.setOptions([]checkOption{
			{value: string(workflow.SourceCodebase), label: "Codebase", desc: "Search this project for patterns and tests"},
			{value: string(workflow.SourceContext7), label: "Package docs", desc: "Look up external package documentation"},
			{value: string(workflow.SourceWeb), label: "Web", desc: "Collect findings from web research"},
		})

	case workflow.StepContext7Query, workflow.StepCodebaseQuery, workflow.StepWebQuery:
		w.queryInput.SetValue("")
		w.queryInput.Focus()
		return textinput.Blink

	case workflow.StepContext7Results:
		matches := w.researcher.SearchPackages(w.state.Context7.Query)
		w.state.Context7.Matches = matches
		opts := make([]checkOption, 0, len(matches))
		for _, m := range matches {
			opts = append(opts, checkOption{value: m.Name, label: m.Name, desc: m.Description})
		}
		w.setOptions(opts)

	case workflow.StepContext7Fetch:
		opts := make([]checkOption, 0, len(w.state.Context7.SelectedPackages))
		for _, name := range w.state.Context7.SelectedPackages {
			opts = append(opts, checkOption{value: name, label: name, desc: "fetch full documentation"})
		}
		w.setOptions(opts)
		// Everything already shortlisted is worth fetching by default.
		for i := range w.checked {
			w.checked[i] = true
		}

	case workflow.StepCodebaseResults:
		patterns := w.researcher.SearchCodebase(w.state.Codebase.Query)
		w.state.Codebase.Patterns = patterns
		var opts []checkOption
		if patterns != nil {
			for _, file := range patterns.Files {
				opts = append(opts, checkOption{
					value: file.Path,
					label: file.Path,
					desc:  fmt.Sprintf("%d matches for %q", file.Matches, file.Pattern),
				})
			}
		}
		w.setOptions(opts)

	case workflow.StepWebResults:
		findings := w.researcher.SearchWeb(w.state.Web.Query)
		w.state.Web.Findings = findings
		opts := make([]checkOption, 0, len(findings))
		for _, f := range findings {
			opts = append(opts, checkOption{value: f.Title, label: f.Title, desc: f.URL})
		}
		w.setOptions(opts)
	}

	return nil
}

func (w *wizardModel) setOptions(opts []checkOption) {
	w.options = opts
	w.checked = make([]bool, len(opts))
	w.cursor = 0
}

func (w *wizardModel) selectedValues() []string {
	var values []string
	for i, opt := range w.options {
		if w.checked[i] {
			values = append(values, opt.value)
		}
	}
	return values
}

// attachDocs fills in the documentation payload for the packages about
// to be recorded as fetched, so the answer processor sees real docs
// instead of creating stubs.
func (w *wizardModel) attachDocs(names []string) {
	for _, doc := range w.researcher.FetchDocs(names) {
		if !containsDoc(w.state.Context7.Docs, doc.Name) {
			w.state.Context7.Docs = append(w.state.Context7.Docs, doc)
		}
	}
}

func containsDoc(docs []research.PackageDocs, name string) bool {
	for _, doc := range docs {
		if doc.Name == name {
			return true
		}
	}
	return false
}

// requirements assembles the Requirements value from the intake answers.
func (w *wizardModel) requirements() research.Requirements {
	skillType := research.SkillTypeTechnique
	if item, ok := w.typeList.SelectedItem().(typeItem); ok {
		skillType = item.skillType
	}
	return research.Requirements{
		Name:               strings.TrimSpace(w.nameInput.Value()),
		Purpose:            strings.TrimSpace(w.purposeInput.Value()),
		SkillType:          skillType,
		Audience:           strings.TrimSpace(w.audienceInput.Value()),
		Workflows:          splitList(w.workflowsInput.Value()),
		ContentPreferences: splitList(w.preferencesInput.Value()),
		SearchPatterns:     splitList(w.patternsInput.Value()),
	}
}

// splitList parses a comma-separated intake answer.
func splitList(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func isQueryStep(step workflow.Step) bool {
	switch step {
	case workflow.StepContext7Query, workflow.StepCodebaseQuery, workflow.StepWebQuery:
		return true
	}
	return false
}

func isResultsStep(step workflow.Step) bool {
	switch step {
	case workflow.StepContext7Results, workflow.StepCodebaseResults, workflow.StepWebResults:
		return true
	}
	return false
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("New Skill"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	if w.intake < intakeDone {
		w.renderIntake(&b)
	} else {
		w.renderWorkflow(&b)
	}

	if w.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(wizardNoticeStyle.Render(w.notice))
	}

	return b.String()
}

func (w *wizardModel) renderIntake(b *strings.Builder) {
	switch w.intake {
	case intakeName:
		b.WriteString(wizardLabelStyle.Render("Skill name:"))
		b.WriteString("\n")
		b.WriteString(w.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Lowercase letters, digits, and hyphens."))
	case intakePurpose:
		b.WriteString(wizardLabelStyle.Render("Purpose:"))
		b.WriteString("\n")
		b.WriteString(w.purposeInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("One sentence; it becomes the skill description."))
	case intakeType:
		b.WriteString(wizardLabelStyle.Render("Skill type:"))
		b.WriteString("\n")
		b.WriteString(w.typeList.View())
	case intakeAudience:
		b.WriteString(wizardLabelStyle.Render("Audience:"))
		b.WriteString("\n")
		b.WriteString(w.audienceInput.View())
	case intakeWorkflows:
		b.WriteString(wizardLabelStyle.Render("Workflows:"))
		b.WriteString("\n")
		b.WriteString(w.workflowsInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Each becomes its own section."))
	case intakePreferences:
		b.WriteString(wizardLabelStyle.Render("Content preferences:"))
		b.WriteString("\n")
		b.WriteString(w.preferencesInput.View())
	case intakePatterns:
		b.WriteString(wizardLabelStyle.Render("Search patterns:"))
		b.WriteString("\n")
		b.WriteString(w.patternsInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Seeds codebase search and related-skill detection."))
	}
}

func (w *wizardModel) renderWorkflow(b *strings.Builder) {
	step := w.state.CurrentStep

	if isQueryStep(step) {
		b.WriteString(wizardLabelStyle.Render(queryLabel(step)))
		b.WriteString("\n")
		b.WriteString(w.queryInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Enter to search, Esc to abandon."))
		return
	}

	b.WriteString(wizardLabelStyle.Render(checklistLabel(step)))
	b.WriteString("\n\n")

	if len(w.options) == 0 {
		b.WriteString(wizardDimStyle.Render("  (nothing found)"))
	}
	for i, opt := range w.options {
		cursor := " "
		if i == w.cursor {
			cursor = ">"
		}
		checked := " "
		if w.checked[i] {
			checked = "x"
		}
		line := fmt.Sprintf("  %s [%s] %s", cursor, checked, opt.label)
		if i == w.cursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		if opt.desc != "" {
			b.WriteString("\n" + wizardDimStyle.Render("        "+opt.desc))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(wizardDimStyle.Render(checklistHelp(step)))
}

func queryLabel(step workflow.Step) string {
	switch step {
	case workflow.StepContext7Query:
		return "Search package documentation:"
	case workflow.StepCodebaseQuery:
		return "Search the codebase:"
	default:
		return "Search the web:"
	}
}

func checklistLabel(step workflow.Step) string {
	switch step {
	case workflow.StepSourceSelection:
		return "Research sources:"
	case workflow.StepContext7Results:
		return "Matching packages:"
	case workflow.StepContext7Fetch:
		return "Fetch documentation for:"
	case workflow.StepCodebaseResults:
		return "Codebase matches:"
	case workflow.StepWebResults:
		return "Web findings:"
	default:
		return string(step)
	}
}

func checklistHelp(step workflow.Step) string {
	if step == workflow.StepSourceSelection {
		return "Space to toggle, Enter to continue, Esc to cancel."
	}
	if step == workflow.StepContext7Fetch {
		return "Space to toggle, Enter to fetch, s to skip."
	}
	return "Space to toggle, Enter to keep, r to search again, s to skip."
}

func (w *wizardModel) progressBar() string {
	labels := []string{"1. Describe", "2. Research", "3. Generate"}
	current := 0
	if w.intake >= intakeDone {
		current = 1
	}
	if w.state.CurrentStep == workflow.StepGeneration || w.state.IsTerminal() {
		current = 2
	}

	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == current {
			parts[i] = wizardActiveStepStyle.Render(label)
		} else {
			parts[i] = wizardStepStyle.Render(label)
		}
	}
	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

// wizardRunner adapts wizardModel to the tea.Model interface.
type wizardRunner struct {
	wizard *wizardModel
	result *RunResult
}

func (r *wizardRunner) Init() tea.Cmd {
	return r.wizard.Init()
}

func (r *wizardRunner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		r.wizard.width = size.Width
		r.wizard.height = size.Height
		r.wizard.typeList.SetSize(size.Width-4, 12)
	}

	done, result, cmd := r.wizard.Update(msg)
	if done {
		r.result = result
		return r, tea.Quit
	}
	return r, cmd
}

func (r *wizardRunner) View() string {
	return r.wizard.View()
}

// Run executes the wizard. A nil result with nil error means the user
// cancelled.
func Run(researcher Researcher) (*RunResult, error) {
	w := newWizardModel(researcher)
	runner := &wizardRunner{wizard: &w}

	p := tea.NewProgram(runner, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return runner.result, nil
}
