package constants

// UI Layout Constants
const (
	// StatusBarHeight is the height of the top status line
	StatusBarHeight = 1

	// TerminalHeight is the height of the terminal window (transcript, prompt, buttons)
	TerminalHeight = 9

	// TranscriptLimit is the number of transcript lines retained
	TranscriptLimit = 200

	// PagePaddingX is the horizontal margin applied to page content
	PagePaddingX = 2

	// MaxContentWidth caps the wrap width of page text
	MaxContentWidth = 96

	// GameEmbedRows is the number of rows reserved inside the game section for the minigame
	GameEmbedRows = 24

	// BlockCellWidth is the number of terminal columns per grid cell
	BlockCellWidth = 2

	// CardWidth and CardHeight size one rendered card
	CardWidth  = 14
	CardHeight = 9

	// CardGap is the spacing between cards
	CardGap = 3

	// Prompt is the shell prompt shown before user input
	Prompt = "ya@asmara:~$"
)
