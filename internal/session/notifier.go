package session

// Level 通知等級
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows non-blocking, toast style messages. It is never called while
// session state is locked.
type Notifier interface {
	Notify(level Level, msg string)
}

type NotifierFunc func(level Level, msg string)

func (f NotifierFunc) Notify(level Level, msg string) {
	f(level, msg)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}

type notification struct {
	level Level
	msg   string
}
