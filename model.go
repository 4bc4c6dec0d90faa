package main

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"crowdfund-tui/campaign"
	"crowdfund-tui/carousel"
	"crowdfund-tui/config"
	"crowdfund-tui/helpers"
	"crowdfund-tui/pricefeed"
	"crowdfund-tui/styles"
	"crowdfund-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- MODEL --------------------

// listState is one paginated campaign list (active or completed)
type listState struct {
	items    []campaign.Campaign
	total    uint64
	offset   uint64
	selected int
	preview  carousel.Carousel // gallery of the highlighted campaign
	seq      int               // request sequence; stale results are dropped
	loading  bool
	errMsg   string
}

// detailState is the open campaign page
type detailState struct {
	id        *big.Int
	c         campaign.Campaign
	donations []campaign.Donation
	pending   *big.Int
	gallery   carousel.Carousel
	gen       int64 // session generation at request time
	loading   bool
	errMsg    string
	showQR    bool

	donating    bool // donate input focused
	donateInput textinput.Model
	donateHint  string // live fee/net preview
	donateErr   string
}

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page
	prevPage   config.Page // where Esc from detail returns to

	cfg        config.Config
	configPath string

	// connectivity
	source        *ledgerSource
	endpointName  string
	rpcConnected  bool
	rpcConnecting bool

	// wallet session
	session  *wallet.Session
	notices  chan wallet.Notice
	repo     *campaign.Repository
	feed     *pricefeed.Client
	feeBps   int64
	feeKnown bool
	rate     float64 // token USD rate, 0 = unknown

	spin spinner.Model

	// pages
	campaigns listState
	completed listState
	detail    detailState

	// create form
	createForm *huh.Form
	createVals *createValues

	// double-submit guards
	withdrawInFlight map[string]bool // keyed by campaign id
	donateInFlight   bool
	createInFlight   bool

	// transient status line
	statusMsg  string
	statusBad  bool
	copiedMsg  string

	// home form
	homeForm      *huh.Form
	homeSelection string

	// settings state
	settingsMode     string // "list", "add"
	selectedEndpoint int
	endpointForm     *huh.Form
	endpointVals     *endpointValues

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// createValues backs the create-campaign form
type createValues struct {
	Title        string
	Description  string
	Goal         string
	Category     string
	Images       string // comma-separated, max 5
	OwnerName    string
	OwnerContact string
}

// endpointValues backs the add-endpoint form
type endpointValues struct {
	Name string
	URL  string
}

// -------------------- INIT --------------------

// newModel creates and initializes a new model with configuration from
// disk. The model lives behind a pointer so huh forms can bind to its
// fields.
func newModel() *model {
	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".crowdfund-tui.json")

	cfg := config.LoadOrCreate(configPath)

	// env var prepends a highest-priority endpoint candidate
	if env := strings.TrimSpace(os.Getenv("CROWDFUND_RPC_URL")); env != "" {
		cfg.Endpoints = append([]config.Endpoint{{Name: "Env", URL: env}}, cfg.Endpoints...)
	}

	src := newLedgerSource(cfg.Endpoints, common.HexToAddress(cfg.Contract))

	// logger writes into the in-memory buffer shown by the log panel
	logBuffer := &strings.Builder{}
	logger := log.New(logBuffer)
	logger.SetLevel(log.DebugLevel)

	// HexToAddress silently folds garbage to zero, so check first
	if !helpers.IsValidEthAddress(cfg.Contract) {
		logger.Warn("configured contract address is malformed", "contract", cfg.Contract)
	}

	notices := make(chan wallet.Notice, 8)
	session := wallet.NewSession(big.NewInt(cfg.ChainID), logger, func(n wallet.Notice) {
		notices <- n
	})

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	in := textinput.New()
	in.Placeholder = "Amount in " + cfg.TokenSymbol
	in.Prompt = "Donate: "
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	in.CharLimit = 32
	in.Width = 24

	vp := viewport.New(0, 20) // resized on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := &model{
		activePage:       config.PageHome,
		prevPage:         config.PageCampaigns,
		cfg:              cfg,
		configPath:       configPath,
		source:           src,
		rpcConnecting:    true,
		session:          session,
		notices:          notices,
		feed:             pricefeed.New(cfg.PriceAsset),
		spin:             sp,
		withdrawInFlight: make(map[string]bool),
		settingsMode:     "list",
		logEnabled:       cfg.Logger,
		logger:           logger,
		logBuffer:        logBuffer,
		logViewport:      vp,
		logSpinner:       logSpin,
	}
	m.repo = campaign.NewRepository(src.resolve)
	m.detail.donateInput = in
	m.homeForm = newHomeForm(&m.homeSelection)
	return m
}

// newHomeForm builds the main menu form
func newHomeForm(selection *string) *huh.Form {
	*selection = ""
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(
					huh.NewOption("Browse Campaigns", "campaigns"),
					huh.NewOption("Completed Campaigns", "completed"),
					huh.NewOption("Start a Campaign", "create"),
					huh.NewOption("Settings", "settings"),
				).
				Title("Crowdfund").
				Description("Select a view to navigate to").
				Value(selection),
		),
	).WithTheme(huh.ThemeCatppuccin())
	form.Init()
	return form
}

// newCreateForm builds the create-campaign form
func newCreateForm(vals *createValues, symbol string) *huh.Form {
	*vals = createValues{}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(requireNonEmpty("title")).
				Value(&vals.Title),
			huh.NewText().
				Title("Description").
				Validate(requireNonEmpty("description")).
				Value(&vals.Description),
			huh.NewInput().
				Title("Goal ("+symbol+")").
				Validate(validateAmount).
				Value(&vals.Goal),
			huh.NewSelect[string]().
				Title("Category").
				Options(
					huh.NewOption("🏥 Medical", "medical"),
					huh.NewOption("🎓 Education", "education"),
					huh.NewOption("🚨 Emergency", "emergency"),
					huh.NewOption("🏘️ Community", "community"),
					huh.NewOption("💡 Other", "other"),
				).
				Value(&vals.Category),
			huh.NewInput().
				Title("Image URLs (comma separated, max 5)").
				Validate(validateImages).
				Value(&vals.Images),
			huh.NewInput().
				Title("Your name").
				Validate(requireNonEmpty("name")).
				Value(&vals.OwnerName),
			huh.NewInput().
				Title("Contact").
				Value(&vals.OwnerContact),
		),
	).WithTheme(huh.ThemeCatppuccin())
	form.Init()
	return form
}

// newEndpointForm builds the add-endpoint form
func newEndpointForm(vals *endpointValues) *huh.Form {
	*vals = endpointValues{}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(requireNonEmpty("name")).
				Value(&vals.Name),
			huh.NewInput().
				Title("URL").
				Validate(requireURL).
				Value(&vals.URL),
		),
	).WithTheme(huh.ThemeCatppuccin())
	form.Init()
	return form
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, waitForNotice(m.notices)}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}

	// bring the read path up first, then replay the persisted connector
	cmds = append(cmds,
		acquireEndpoint(m.source),
		fetchFeeRate(m.repo),
		fetchPriceRate(m.feed),
	)
	if cached := m.cachedConnector(); cached != nil {
		cmds = append(cmds, autoReconnect(m.session, cached))
	}
	return tea.Batch(cmds...)
}
