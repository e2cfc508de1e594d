package bot

// Button labels of the reply keyboards. Inbound text is matched against
// these exactly; the decorative prefixes of the category buttons are
// stripped by core.NormalizeCategory before storage.
const (
	ButtonAddExpense = "➕ Add expense"
	ButtonStats      = "📊 Stats"
	ButtonHistory    = "📅 History"
	ButtonReport     = "📈 Report"
	ButtonClearAll   = "🗑️ Clear all"
	ButtonCancel     = "❌ Cancel"

	ButtonToday = "📆 Today"
	ButtonWeek  = "📅 Week"
	ButtonMonth = "🗓️ Month"
)

var (
	mainMenu = []string{
		ButtonAddExpense,
		ButtonStats,
		ButtonHistory,
		ButtonReport,
		ButtonClearAll,
	}

	categoryMenu = []string{
		"🍔 Food", "🚕 Taxi",
		"🛍️ Shopping", "🎮 Fun",
		ButtonCancel,
	}

	reportMenu = []string{
		ButtonToday, ButtonWeek, ButtonMonth,
		ButtonCancel,
	}
)

const (
	msgGreeting       = "👋 Hi! I keep track of your expenses.\n\nPick an action below:"
	msgAskAmount      = "💰 Enter the amount:"
	msgAskCategory    = "🏷️ Pick a category:"
	msgBadAmount      = "⚠️ Enter the amount as a number, e.g. 250.50"
	msgBadCategory    = "⚠️ That doesn't look like a category, try again:"
	msgCancelled      = "🚫 Adding cancelled."
	msgActionCancel   = "❌ Action cancelled."
	msgNoExpenses     = "📭 No expenses saved yet."
	msgNoReportData   = "🚫 No expenses for this period."
	msgCleared        = "🗑️ All your expenses are gone."
	msgAskPeriod      = "📊 Which period should the report cover?"
	msgStorageFailure = "😔 Something went wrong, your request was not saved. Please try again."
	msgChartFailure   = "⚠️ Charts are unavailable right now."
	msgUnknown        = "🤔 Pick an action from the menu below:"
)
