package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Views
const (
	viewMain      = "main"
	viewInventory = "inventory"
	viewName      = "name"
	viewRegister  = "register"
	viewShare     = "share"
	viewAsk       = "ask"
	viewSuggest   = "suggestion"
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	inventory   table.Model
	state       *BarState
	suggestion  *RecommendationResponse
	link        string
	spinner     spinner.Model
	textInput   textinput.Model
	client      *ApiClient
	loading     bool
	currentView string
	message     string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "Inventory", desc: "Mark ingredients in or out of stock"},
		item{title: "Ask DrinkingMan", desc: "Get a suggestion from what the bar has"},
		item{title: "Share Menu", desc: "Link for guests, with the out of stock list"},
		item{title: "Bar Name", desc: "Rename the bar"},
		item{title: "Register Bar", desc: "Create a bar and an operator token"},
		item{title: "Exit", desc: "Exit the application"},
	}
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "DrinkingMan Bar Console"

	columns := []table.Column{
		{Title: "Ingredient", Width: 24},
		{Title: "Category", Width: 12},
		{Title: "In stock", Width: 10},
	}
	inventory := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	ti := textinput.New()
	ti.CharLimit = 156
	ti.Width = 48

	return Model{
		mainMenu:    mainMenu,
		inventory:   inventory,
		spinner:     s,
		textInput:   ti,
		client:      NewApiClient(),
		currentView: viewMain,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.currentView != viewMain {
				m.currentView = viewMain
				m.error, m.message = "", ""
				m.textInput.Blur()
				return m, nil
			}
		case "enter":
			return m.handleEnter()
		case "r":
			if m.currentView == viewInventory && !m.loading {
				m.loading = true
				return m, resetInventory(m.client)
			}
		case "q":
			if !m.textInput.Focused() {
				return m, tea.Quit
			}
		}
	case barMsg:
		m.loading = false
		m.error = ""
		m.state = msg.state
		m.inventory.SetRows(inventoryRows(msg.state))
		return m, nil
	case toggledMsg:
		m.loading = false
		m.message = fmt.Sprintf("%s is now %s", msg.item.Name, stockLabel(msg.item.Available))
		return m, fetchBar(m.client)
	case linkMsg:
		m.loading = false
		m.link = msg.link
		return m, nil
	case suggestionMsg:
		m.loading = false
		m.suggestion = msg.resp
		m.currentView = viewSuggest
		return m, nil
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case confirmMsg:
		m.loading = false
		m.error = ""
		m.message = msg.message
		m.currentView = viewMain
		m.textInput.Blur()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentView {
	case viewMain:
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case viewInventory:
		m.inventory, cmd = m.inventory.Update(msg)
	case viewName, viewRegister, viewAsk:
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	switch m.currentView {
	case viewMain:
		selected, ok := m.mainMenu.SelectedItem().(item)
		if !ok {
			return m, nil
		}
		m.error, m.message = "", ""
		switch selected.title {
		case "Exit":
			return m, tea.Quit
		case "Inventory":
			m.currentView = viewInventory
			m.loading = true
			return m, fetchBar(m.client)
		case "Ask DrinkingMan":
			m.currentView = viewAsk
			return m, m.prompt("Gin, relaxed, date night")
		case "Share Menu":
			m.currentView = viewShare
			m.link = ""
			m.loading = true
			return m, fetchLink(m.client)
		case "Bar Name":
			m.currentView = viewName
			return m, m.prompt("My Home Bar")
		case "Register Bar":
			m.currentView = viewRegister
			return m, m.prompt("My Home Bar")
		}
	case viewInventory:
		row := m.inventory.SelectedRow()
		if len(row) == 0 {
			return m, nil
		}
		m.loading = true
		return m, toggleIngredient(m.client, row[0])
	case viewName:
		m.loading = true
		return m, renameBar(m.client, m.textInput.Value())
	case viewRegister:
		m.loading = true
		return m, registerBar(m.client, m.textInput.Value())
	case viewAsk:
		req, err := parseAsk(m.textInput.Value())
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		if m.state != nil {
			req.BarID = m.state.Bar.ID
		}
		m.loading = true
		return m, askDrinkingMan(m.client, req)
	case viewSuggest:
		m.currentView = viewAsk
		return m, m.prompt("Gin, relaxed, date night")
	}
	return m, nil
}

// prompt resets and focuses the text input
func (m *Model) prompt(placeholder string) tea.Cmd {
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue("")
	return m.textInput.Focus()
}

// View renders the UI
func (m Model) View() string {
	var body string
	switch m.currentView {
	case viewMain:
		body = m.mainMenu.View()
		if m.message != "" {
			body += "\n" + successStyle.Render(m.message)
		}
	case viewInventory:
		body = titleStyle.Render(m.barTitle("Inventory")) + "\n\n" + m.inventory.View() +
			"\n\nPress 'enter' to toggle, 'r' to restore defaults, 'esc' to go back\n"
		if m.message != "" {
			body += infoStyle.Render(m.message) + "\n"
		}
	case viewName:
		body = titleStyle.Render("Bar Name") + "\n\n" + m.textInput.View() + "\n\nPress 'enter' to save, 'esc' to cancel\n"
	case viewRegister:
		body = titleStyle.Render("Register Bar") + "\n\n" + m.textInput.View() + "\n\nPress 'enter' to register, 'esc' to cancel\n"
	case viewShare:
		body = titleStyle.Render(m.barTitle("Share Menu")) + "\n\n"
		if m.link != "" {
			body += infoStyle.Render("Guest link:") + "\n" + m.link + "\n"
		}
		body += "\nPress 'esc' to go back\n"
	case viewAsk:
		body = titleStyle.Render("Ask DrinkingMan") + "\n\n" +
			"Format: <spirit>, <mood>, <occasion>\n\n" + m.textInput.View() + "\n"
	case viewSuggest:
		body = suggestionView(m.suggestion)
	default:
		body = "Loading..."
	}

	if m.loading {
		body += "\n" + m.spinner.View() + " working..."
	}
	if m.error != "" {
		body += "\n" + errorStyle.Render(m.error)
	}
	return docStyle.Render(body)
}

func (m Model) barTitle(title string) string {
	if m.state == nil {
		return title
	}
	return fmt.Sprintf("%s: %s", m.state.Bar.Name, title)
}

// Custom message types for the tea.Model
type barMsg struct {
	state *BarState
}

type toggledMsg struct {
	item *Ingredient
}

type linkMsg struct {
	link string
}

type suggestionMsg struct {
	resp *RecommendationResponse
}

type errorMsg struct {
	err string
}

type confirmMsg struct {
	message string
}

func fetchBar(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		state, err := client.GetBar()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching bar: %v", err)}
		}
		return barMsg{state: state}
	}
}

func toggleIngredient(client *ApiClient, name string) tea.Cmd {
	return func() tea.Msg {
		item, err := client.Toggle(name)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error toggling %s: %v", name, err)}
		}
		return toggledMsg{item: item}
	}
}

func resetInventory(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		state, err := client.Reset()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error resetting inventory: %v", err)}
		}
		return barMsg{state: state}
	}
}

func fetchLink(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		link, err := client.ShareLink()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error building link: %v", err)}
		}
		return linkMsg{link: link}
	}
}

func renameBar(client *ApiClient, name string) tea.Cmd {
	return func() tea.Msg {
		bar, err := client.SetBarName(name)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error renaming bar: %v", err)}
		}
		return confirmMsg{message: fmt.Sprintf("Bar renamed to %s", bar.Name)}
	}
}

func registerBar(client *ApiClient, name string) tea.Cmd {
	return func() tea.Msg {
		bar, err := client.RegisterBar(name)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error registering bar: %v", err)}
		}
		return confirmMsg{message: fmt.Sprintf("Registered %s. Token: %s", bar.Name, client.Token)}
	}
}

func askDrinkingMan(client *ApiClient, req RecommendationRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Recommend(req)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error asking DrinkingMan: %v", err)}
		}
		return suggestionMsg{resp: resp}
	}
}

// parseAsk reads "<spirit>, <mood>, <occasion>"
func parseAsk(input string) (RecommendationRequest, error) {
	parts := strings.Split(input, ",")
	if strings.TrimSpace(parts[0]) == "" {
		return RecommendationRequest{}, fmt.Errorf("a base spirit is required")
	}
	field := strings.TrimSpace

	req := RecommendationRequest{
		Locale:     os.Getenv("DRINKINGMAN_LOCALE"),
		BaseSpirit: field(parts[0]),
		Sliders:    Sliders{SweetBitter: 50, SmoothStrong: 50, RefreshingHeavy: 50},
	}
	if len(parts) > 1 {
		req.Mood = field(parts[1])
	}
	if len(parts) > 2 {
		req.Occasion = field(strings.Join(parts[2:], ","))
	}
	return req, nil
}

func inventoryRows(state *BarState) []table.Row {
	rows := []table.Row{}
	if state == nil {
		return rows
	}
	for _, group := range state.Groups {
		for _, ing := range group.Items {
			rows = append(rows, table.Row{ing.Name, group.Category, stockLabel(ing.Available)})
		}
	}
	return rows
}

func stockLabel(available bool) string {
	if available {
		return "yes"
	}
	return "OUT"
}

func suggestionView(resp *RecommendationResponse) string {
	view := titleStyle.Render("DrinkingMan suggests") + "\n\n"
	if resp == nil || resp.Suggestion == nil {
		return view + "No suggestion this time. Press 'enter' to try again, 'esc' to go back"
	}

	s := resp.Suggestion
	view += lipgloss.NewStyle().Bold(true).Render(s.Name) + "\n"
	view += s.Description + "\n\nIngredients:\n"
	for _, ing := range s.Ingredients {
		view += "• " + ing + "\n"
	}
	view += "\n" + s.Instructions + "\n\n"
	view += infoStyle.Render("Why it fits") + " " + s.WhyItFits + "\n"
	if len(resp.Unavailable) > 0 {
		view += "\nOut of stock: " + strings.Join(resp.Unavailable, ", ") + "\n"
	}
	return view + "\nPress 'enter' to ask again, 'esc' to go back"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
