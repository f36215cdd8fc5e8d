// Package register writes an MCP server entry for this binary into a
// project-level .mcp.json or the user-level ~/.claude.json configuration.
package register

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

type serverEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// Run executes the register subcommand. serverName is the MCP server name
// and args is everything after "register" on the command line.
func Run(serverName string, args []string) {
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	scope := args[0]
	if scope != "project" && scope != "user" {
		fmt.Fprintf(os.Stderr, "Error: scope must be \"project\" or \"user\", got %q\n", scope)
		printUsage()
		os.Exit(1)
	}

	var directory string
	var serverArgs []string

	if scope == "project" {
		directory, serverArgs = parseProjectArgs(args[1:])
	} else {
		serverArgs = parseUserArgs(args[1:])
	}

	binaryPath, err := detectBinaryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating the spacescan binary: %v\n", err)
		os.Exit(1)
	}

	configPath, err := resolveConfigPath(scope, directory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving the config path: %v\n", err)
		os.Exit(1)
	}

	entry := buildEntry(binaryPath, serverArgs)

	if err := writeConfig(configPath, serverName, entry); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating %s: %v\n", configPath, err)
		os.Exit(1)
	}

	fmt.Printf("Registered %q in %s\n", serverName, configPath)
}

func printUsage() {
	binaryName := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  %s register project [directory]    # entry in <directory>/.mcp.json (default: current directory)\n", binaryName)
	fmt.Fprintf(os.Stderr, "  %s register user                   # entry in ~/.claude.json\n", binaryName)
	fmt.Fprintf(os.Stderr, "  %s register user -- --top-n 50     # flags after -- are passed to the server\n", binaryName)
}

// splitForwarded separates the subcommand's own arguments from everything
// after the -- separator, which is forwarded to the server verbatim.
func splitForwarded(args []string) (own, forwarded []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func parseProjectArgs(args []string) (directory string, serverArgs []string) {
	own, forwarded := splitForwarded(args)
	directory = "."
	if len(own) > 0 {
		directory = own[0]
	}
	return directory, forwarded
}

func parseUserArgs(args []string) (serverArgs []string) {
	_, forwarded := splitForwarded(args)
	return forwarded
}

// detectBinaryPath resolves the running executable through any symlinks so
// the registered command keeps working if the launch path was a link.
func detectBinaryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("reading executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks for %s: %w", exe, err)
	}
	return resolved, nil
}

func resolveConfigPath(scope string, directory string) (string, error) {
	if scope == "user" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		return filepath.Join(home, ".claude.json"), nil
	}
	absDir, err := filepath.Abs(directory)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", directory, err)
	}
	return filepath.Join(absDir, ".mcp.json"), nil
}

// buildEntry always prepends --mcp: without it the binary runs its one-shot
// CLI analysis instead of serving stdio.
func buildEntry(binaryPath string, serverArgs []string) serverEntry {
	args := append([]string{"--mcp"}, serverArgs...)
	if runtime.GOOS == "windows" {
		return serverEntry{
			Command: "cmd",
			Args:    append([]string{"/C", binaryPath}, args...),
		}
	}
	return serverEntry{
		Command: binaryPath,
		Args:    args,
	}
}

// writeConfig merges the entry into the client config under mcpServers,
// preserving any other servers already registered there.
func writeConfig(configPath string, serverName string, entry serverEntry) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	servers, ok := config["mcpServers"].(map[string]interface{})
	if !ok {
		if _, present := config["mcpServers"]; present {
			return fmt.Errorf("mcpServers in %s is not an object", configPath)
		}
		servers = map[string]interface{}{}
		config["mcpServers"] = servers
	}
	servers[serverName] = entry

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	data = append(data, '\n')

	return replaceFile(configPath, data)
}

// loadConfig reads an existing client config; an absent file starts fresh.
func loadConfig(configPath string) (map[string]interface{}, error) {
	config := map[string]interface{}{}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return config, nil
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing existing config %s: %w", configPath, err)
	}
	return config, nil
}

// replaceFile writes data to a temp file next to target and renames it into
// place, so a concurrent reader never observes a half-written config.
func replaceFile(target string, data []byte) error {
	dir := filepath.Dir(target)
	f, err := os.CreateTemp(dir, ".mcp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.Name(), err)
	}
	if err := os.Rename(f.Name(), target); err != nil {
		return fmt.Errorf("replacing %s: %w", target, err)
	}
	return nil
}
