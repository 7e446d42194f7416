package output

const defaultFileIcon = "📄"

// fileIcons maps a lower-cased extension to the icon shown in the structural listing.
var fileIcons = map[string]string{
	// code
	"py":    "🐍",
	"js":    "📜",
	"ts":    "📜",
	"jsx":   "⚛️",
	"tsx":   "⚛️",
	"html":  "🌐",
	"css":   "🎨",
	"scss":  "🎨",
	"sass":  "🎨",
	"java":  "☕",
	"c":     "📟",
	"cpp":   "📟",
	"h":     "📟",
	"cs":    "📟",
	"php":   "🐘",
	"rb":    "💎",
	"go":    "🔹",
	"rs":    "🦀",
	"swift": "🔶",
	"kt":    "🔷",

	// data
	"json": "📊",
	"xml":  "📊",
	"csv":  "📊",
	"yaml": "📊",
	"yml":  "📊",
	"toml": "📊",
	"sql":  "🗃️",

	// documents
	"md":   "📝",
	"txt":  "📄",
	"pdf":  "📑",
	"doc":  "📘",
	"docx": "📘",
	"xls":  "📗",
	"xlsx": "📗",
	"ppt":  "📙",
	"pptx": "📙",

	// images
	"jpg":  "🖼️",
	"jpeg": "🖼️",
	"png":  "🖼️",
	"gif":  "🖼️",
	"svg":  "🖼️",
	"ico":  "🖼️",
	"webp": "🖼️",

	// archives
	"zip": "📦",
	"rar": "📦",
	"tar": "📦",
	"gz":  "📦",
	"7z":  "📦",

	// config
	"ini":    "⚙️",
	"conf":   "⚙️",
	"config": "⚙️",
	"env":    "⚙️",

	// executables
	"exe": "⚡",
	"sh":  "⚡",
	"bat": "⚡",
	"cmd": "⚡",
}

// FileIcon returns the icon for a lower-cased extension, or the default document icon.
func FileIcon(extension string) string {
	if icon, found := fileIcons[extension]; found {
		return icon
	}
	return defaultFileIcon
}
