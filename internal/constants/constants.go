package constants

// Application constants
const (
	ApplicationName   = "toolbox"
	ApplicationVendor = "intellicore"
	ApplicationTitle  = "IntelliCore Toolbox"
	ApplicationID     = "com.intellicore.toolbox"
)

// UI constants
const (
	// Window dimensions
	DefaultWindowWidth  = 1000
	DefaultWindowHeight = 680

	// Icon sizes
	DefaultIconSize = 32

	// Favorites strip
	FavoritesStripHeight = 96
)

// Persistence constants
const (
	ConfigFileName    = "config.json"
	UserAppsFileName  = "user-apps.json"
	FavoritesFileName = "favorites.json"
	DocumentVersion   = "1.0"

	// BackupTimeLayout is appended to a corrupt file name as ".backup.<stamp>"
	BackupTimeLayout = "20060102_150405"
	BackupSuffix     = ".backup."
)

// Registry constants
const (
	// LoopingRepeat is how many times the favorites sequence is repeated
	// in the looping list.
	LoopingRepeat = 3

	// MaxDisplayNameLength caps names derived from file names on load.
	MaxDisplayNameLength = 50

	DefaultAppIcon        = "&#xE8FC;"
	DefaultAppDescription = "User-added application"
	FallbackBackground    = "Gray"
)

// Save queue constants
const (
	SaveHistoryMax = 50
)

// BackgroundPalette is the set of background tags assigned to user-added
// entries.
var BackgroundPalette = []string{
	"Blue", "Green", "Red", "Purple", "Orange", "DarkBlue", "DarkCyan", "Brown",
	"Crimson", "Gold", "ForestGreen", "DarkOrange", "MediumPurple", "DarkMagenta",
	"Maroon", "Teal",
}

// Theme constants
const (
	DarkThemeDefault = true
	DefaultFontSize  = 14
)

// Logging constants
const (
	DefaultLogLevel = "info"
	EnvPrefix       = "TOOLBOX"
)
