package connection

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/pkg/sftp"

	"nodescraper/internal/core"
	"nodescraper/internal/hooks"
)

// SSHParams configures a RemoteShell's target.
type SSHParams struct {
	Hostname       string
	Username       string
	Password       *string // never logged; see pkg/logging redaction discipline
	PrivateKeyPath *string
	Port           int // 1-65535; defaults to 22
}

func (p SSHParams) port() int {
	if p.Port <= 0 {
		return 22
	}
	return p.Port
}

// RemoteShell runs commands against a remote host over SSH, and reads
// files over SFTP on the same connection.
type RemoteShell struct {
	connectOnce
	name             string
	params           SSHParams
	interactionLevel core.SystemInteractionLevel
	systemInfo       core.SystemInfo
	connectionHooks  []hooks.TaskResultHook

	client *ssh.Client
	sftp   *sftp.Client
}

// NewRemoteShell builds a RemoteShell for the given SSH target.
func NewRemoteShell(name string, params SSHParams, interactionLevel core.SystemInteractionLevel, systemInfo core.SystemInfo) *RemoteShell {
	return &RemoteShell{name: name, params: params, interactionLevel: interactionLevel, systemInfo: systemInfo}
}

func (s *RemoteShell) InteractionLevel() core.SystemInteractionLevel { return s.interactionLevel }

// SetConnectionHooks implements connection.ConnectionHookSink.
func (s *RemoteShell) SetConnectionHooks(connectionHooks []hooks.TaskResultHook) {
	s.connectionHooks = connectionHooks
}

func (s *RemoteShell) Connect(ctx context.Context) core.TaskResult {
	if cached, ok := s.alreadyAttempted(); ok {
		return cached
	}
	result := RunConnect(s.name, s.connectionHooks,
		func(ctx context.Context) (core.OSFamily, error) { return ProbeOSFamily(ctx, s.RunCommand) },
		s.dial,
	)(ctx)
	s.markAttempted(result)
	return result
}

func (s *RemoteShell) dial(ctx context.Context) error {
	auth, err := s.authMethods()
	if err != nil {
		return err
	}

	config := &ssh.ClientConfig{
		User:            s.params.Username,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // node-health scraping targets are fleet-internal, trust-on-first-use is out of scope
		Timeout:         15 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", s.params.Hostname, s.params.port())
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", addr, err)
	}
	s.client = client

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		client.Close()
		return fmt.Errorf("starting sftp subsystem: %w", err)
	}
	s.sftp = sftpClient

	return nil
}

func (s *RemoteShell) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if s.params.PrivateKeyPath != nil {
		keyData, err := os.ReadFile(*s.params.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading private key %s: %w", *s.params.PrivateKeyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(keyData)
		if err != nil {
			return nil, fmt.Errorf("parsing private key %s: %w", *s.params.PrivateKeyPath, err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if s.params.Password != nil {
		methods = append(methods, ssh.Password(*s.params.Password))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no authentication method configured for %s", s.params.Hostname)
	}
	return methods, nil
}

func (s *RemoteShell) Disconnect() {
	if s.sftp != nil {
		s.sftp.Close()
		s.sftp = nil
	}
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}

func (s *RemoteShell) IsConnected() bool {
	_, ok := s.alreadyAttempted()
	return ok && s.client != nil
}

func (s *RemoteShell) SystemInfo() core.SystemInfo { return s.systemInfo }

// RunCommand opens a new SSH session for cmd, enforcing opts.TimeoutSeconds.
// A Disruptive command requiring Sudo is refused at Surface interaction
// level rather than executed.
func (s *RemoteShell) RunCommand(ctx context.Context, cmd string, opts RunOptions) (core.CommandArtifact, error) {
	if opts.Disruptive && opts.Sudo && s.interactionLevel == core.Surface {
		return core.CommandArtifact{}, fmt.Errorf("refusing disruptive sudo command %q at Surface interaction level", cmd)
	}
	if s.client == nil {
		return core.CommandArtifact{}, fmt.Errorf("not connected")
	}

	session, err := s.client.NewSession()
	if err != nil {
		return core.CommandArtifact{}, fmt.Errorf("opening ssh session: %w", err)
	}
	defer session.Close()

	fullCmd := cmd
	var stdin io.WriteCloser
	if opts.Sudo {
		fullCmd = "sudo -S " + cmd
		if s.params.Password != nil {
			stdin, err = session.StdinPipe()
			if err != nil {
				return core.CommandArtifact{}, fmt.Errorf("opening stdin pipe for sudo: %w", err)
			}
		}
	}

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err := session.Start(fullCmd); err != nil {
		return core.CommandArtifact{}, fmt.Errorf("starting command: %w", err)
	}
	if stdin != nil {
		fmt.Fprintf(stdin, "%s\n", *s.params.Password)
		stdin.Close()
	}

	done := make(chan error, 1)
	go func() { done <- session.Wait() }()

	runCtx := ctx
	var cancel context.CancelFunc
	if opts.TimeoutSeconds > 0 {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(opts.TimeoutSeconds*float64(time.Second)))
		defer cancel()
	}

	select {
	case <-runCtx.Done():
		session.Signal(ssh.SIGKILL)
		return core.TimedOutCommandArtifact(cmd, opts.TimeoutSeconds), nil
	case err := <-done:
		exitCode := 0
		if err != nil {
			if exitErr, ok := err.(*ssh.ExitError); ok {
				exitCode = exitErr.ExitStatus()
			} else {
				return core.CommandArtifact{}, err
			}
		}
		return core.CommandArtifact{
			Command:  cmd,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: exitCode,
		}, nil
	}
}

// ReadFile reads path from the remote host over the shared SFTP session.
func (s *RemoteShell) ReadFile(ctx context.Context, path string) (core.FileArtifact, error) {
	if s.sftp == nil {
		return core.FileArtifact{}, fmt.Errorf("not connected")
	}
	f, err := s.sftp.Open(path)
	if err != nil {
		return core.FileArtifact{}, fmt.Errorf("opening remote file %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return core.FileArtifact{}, fmt.Errorf("reading remote file %s: %w", path, err)
	}
	return core.FileArtifact{Filename: path, Contents: data}, nil
}
