package cmd

import (
	"github.com/spf13/pflag"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
)

// targetFlags holds the --host/--user/... flags registered on run-plugins,
// read by newDefaultConnectionManager at execution time. It is
// package-level rather than threaded as a parameter because the registry
// (built once in init()) constructs connection managers from a factory
// with no room for per-invocation arguments.
var targetFlags struct {
	host           string
	username       string
	password       string
	privateKeyPath string
	port           int
	name           string
	interaction    string
}

// interactionLevel parses targetFlags.interaction, defaulting to Standard.
func interactionLevel() core.SystemInteractionLevel {
	switch targetFlags.interaction {
	case "surface":
		return core.Surface
	case "disruptive":
		return core.Disruptive
	default:
		return core.Standard
	}
}

// newDefaultConnectionManager builds the ConnectionManager registered
// under the "shell" connection type: RemoteShell when --host is set,
// LocalShell otherwise.
func newDefaultConnectionManager() connection.ConnectionManager {
	name := targetFlags.name
	if name == "" {
		name = "shell"
	}

	if targetFlags.host == "" {
		return connection.NewLocalShell(name, core.SystemInfo{Name: name, Location: core.Local})
	}

	params := connection.SSHParams{
		Hostname: targetFlags.host,
		Username: targetFlags.username,
		Port:     targetFlags.port,
	}
	if targetFlags.password != "" {
		params.Password = &targetFlags.password
	}
	if targetFlags.privateKeyPath != "" {
		params.PrivateKeyPath = &targetFlags.privateKeyPath
	}
	return connection.NewRemoteShell(name, params, interactionLevel(), core.SystemInfo{Name: name, Location: core.Remote})
}

// addTargetFlags registers the --host/--user/--password/--key/--port/
// --interaction flags shared by every subcommand that connects to a
// system.
func addTargetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&targetFlags.host, "host", "", "remote hostname or IP; omit to run against the local machine")
	fs.StringVar(&targetFlags.username, "user", "", "SSH username (remote targets only)")
	fs.StringVar(&targetFlags.password, "password", "", "SSH password (remote targets only)")
	fs.StringVar(&targetFlags.privateKeyPath, "key", "", "SSH private key path (remote targets only)")
	fs.IntVar(&targetFlags.port, "port", 22, "SSH port (remote targets only)")
	fs.StringVar(&targetFlags.interaction, "interaction", "standard", "interaction level bound: surface, standard, or disruptive")
	fs.StringVar(&targetFlags.name, "target-name", "", "name to record for this system in output; defaults to \"shell\" (the hostname is not used)")
}
