package app

// DialogKind selects the icon and colour of a modal dialog.
type DialogKind int

const (
	Info DialogKind = iota
	Warning
	Error
)

func (k DialogKind) String() string {
	switch k {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Dialog is a modal message the user has to dismiss.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
}

// Dialog texts.
const (
	MsgNoData        = "No price data to save. Start tracking first."
	MsgSaved         = "Price saved successfully!"
	MsgNoHistory     = "No data saved yet."
	titleWarning     = "Warning"
	titleSuccess     = "Success"
	titleDatabaseErr = "Database Error"
	titleJournalErr  = "Log File Error"
)
