package models

// RoleType defines the user role type
type RoleType string

const (
	RoleUser  RoleType = "USER"
	RoleAdmin RoleType = "ADMIN"
)

// AvatarStyle is the rendering style of a generated avatar
type AvatarStyle string

const (
	AvatarStyleGradient AvatarStyle = "gradient"
	AvatarStyleEmoji    AvatarStyle = "emoji"
	AvatarStyleInitials AvatarStyle = "initials"
	AvatarStylePattern  AvatarStyle = "pattern"
	AvatarStyleAbstract AvatarStyle = "abstract"
)

// AvatarColor is one of the fixed avatar palette entries
type AvatarColor string

const (
	AvatarColorBlue   AvatarColor = "blue"
	AvatarColorGreen  AvatarColor = "green"
	AvatarColorYellow AvatarColor = "yellow"
	AvatarColorRed    AvatarColor = "red"
	AvatarColorPurple AvatarColor = "purple"
	AvatarColorPink   AvatarColor = "pink"
	AvatarColorOrange AvatarColor = "orange"
	AvatarColorCyan   AvatarColor = "cyan"
	AvatarColorTeal   AvatarColor = "teal"
	AvatarColorIndigo AvatarColor = "indigo"
)

// Defaults applied when anonymity is first enabled
const (
	DefaultAvatarStyle = AvatarStyleGradient
	DefaultAvatarColor = AvatarColorBlue
)

// AvatarStyles lists every supported style
var AvatarStyles = []AvatarStyle{
	AvatarStyleGradient,
	AvatarStyleEmoji,
	AvatarStyleInitials,
	AvatarStylePattern,
	AvatarStyleAbstract,
}

// AvatarColors lists the palette
var AvatarColors = []AvatarColor{
	AvatarColorBlue,
	AvatarColorGreen,
	AvatarColorYellow,
	AvatarColorRed,
	AvatarColorPurple,
	AvatarColorPink,
	AvatarColorOrange,
	AvatarColorCyan,
	AvatarColorTeal,
	AvatarColorIndigo,
}

// Valid reports whether s is a supported style
func (s AvatarStyle) Valid() bool {
	for _, style := range AvatarStyles {
		if s == style {
			return true
		}
	}
	return false
}

// Valid reports whether c is in the palette
func (c AvatarColor) Valid() bool {
	for _, color := range AvatarColors {
		if c == color {
			return true
		}
	}
	return false
}

// NotificationType classifies notifications
type NotificationType string

const (
	NotificationComment  NotificationType = "COMMENT"
	NotificationReaction NotificationType = "REACTION"
	NotificationSystem   NotificationType = "SYSTEM"
)
