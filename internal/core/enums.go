// Package core holds the data model shared by every layer of the scraper:
// events, task results, system descriptions, and the plugin configuration
// format. Nothing in this package talks to a network; its only filesystem
// access is in the model import/export helpers (ImportModel,
// DecodeModelSource, FileModel.LogModel, WriteJSONModel).
package core

import "strings"

// EventPriority is a totally ordered severity for an Event. Ordering is the
// underlying int value, so combining two priorities is max(a, b).
type EventPriority int

const (
	Info EventPriority = iota
	Warning
	Error
	Critical
)

func (p EventPriority) String() string {
	switch p {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExecutionStatus is a totally ordered rollup status for a TaskResult or
// PluginResult. Ordering is the underlying int value.
type ExecutionStatus int

const (
	Unset ExecutionStatus = iota
	NotRan
	OK
	StatusWarning
	StatusError
	ExecutionFailure
)

func (s ExecutionStatus) String() string {
	switch s {
	case Unset:
		return "UNSET"
	case NotRan:
		return "NOT_RAN"
	case OK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusError:
		return "ERROR"
	case ExecutionFailure:
		return "EXECUTION_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// OSFamily identifies the operating system family of the target system.
type OSFamily int

const (
	OSUnknown OSFamily = iota
	OSLinux
	OSWindows
)

func (f OSFamily) String() string {
	switch f {
	case OSLinux:
		return "LINUX"
	case OSWindows:
		return "WINDOWS"
	default:
		return "UNKNOWN"
	}
}

// SystemLocation distinguishes a locally reachable target from one reached
// over a remote transport.
type SystemLocation int

const (
	Local SystemLocation = iota
	Remote
)

func (l SystemLocation) String() string {
	if l == Remote {
		return "REMOTE"
	}
	return "LOCAL"
}

// SystemInteractionLevel is a totally ordered bound on how intrusive a
// collector is permitted to be against the target system.
type SystemInteractionLevel int

const (
	Surface SystemInteractionLevel = iota
	Standard
	Disruptive
)

func (l SystemInteractionLevel) String() string {
	switch l {
	case Surface:
		return "SURFACE"
	case Standard:
		return "STANDARD"
	case Disruptive:
		return "DISRUPTIVE"
	default:
		return "UNKNOWN"
	}
}

// EventCategory is a closed set of subsystems an Event can be reported
// against. NewEventCategory normalizes arbitrary input to upper snake case
// and falls back to Unknown for anything not in the closed set.
type EventCategory string

const (
	CategoryOS             EventCategory = "OS"
	CategoryPlatform       EventCategory = "PLATFORM"
	CategoryIO             EventCategory = "IO"
	CategoryMemory         EventCategory = "MEMORY"
	CategoryStorage        EventCategory = "STORAGE"
	CategoryCompute        EventCategory = "COMPUTE"
	CategoryFW             EventCategory = "FW"
	CategorySWDriver       EventCategory = "SW_DRIVER"
	CategoryBIOS           EventCategory = "BIOS"
	CategorySSH            EventCategory = "SSH"
	CategoryRAS            EventCategory = "RAS"
	CategoryApplication    EventCategory = "APPLICATION"
	CategoryRuntime        EventCategory = "RUNTIME"
	CategoryInfrastructure EventCategory = "INFRASTRUCTURE"
	CategoryNetwork        EventCategory = "NETWORK"
	CategoryUnknown        EventCategory = "UNKNOWN"
)

var knownCategories = map[EventCategory]bool{
	CategoryOS: true, CategoryPlatform: true, CategoryIO: true,
	CategoryMemory: true, CategoryStorage: true, CategoryCompute: true,
	CategoryFW: true, CategorySWDriver: true, CategoryBIOS: true,
	CategorySSH: true, CategoryRAS: true, CategoryApplication: true,
	CategoryRuntime: true, CategoryInfrastructure: true, CategoryNetwork: true,
	CategoryUnknown: true,
}

// NewEventCategory normalizes an arbitrary category string into the closed
// EventCategory set (trimmed, upper-cased, spaces and hyphens turned into
// underscores), falling back to CategoryUnknown.
func NewEventCategory(raw string) EventCategory {
	normalized := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.TrimSpace(raw))
	c := EventCategory(strings.ToUpper(normalized))
	if knownCategories[c] {
		return c
	}
	return CategoryUnknown
}
