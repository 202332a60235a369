// Package mcphosts inventories MCP tool servers declared by assistant host
// applications.
package mcphosts

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/kaptinlin/jsonschema"
	"go.uber.org/zap"

	"github.com/seatbelt/seatbelt/internal/domain"
)

//go:embed host_config.schema.json
var hostConfigSchema []byte

// Host names as shown in reports.
const (
	HostClaudeDesktop = "Claude Desktop"
	HostClaudeCode    = "Claude Code"
	HostCursor        = "Cursor"
)

// HostFile locates one host's configuration file.
type HostFile struct {
	Name string
	Path string
}

// DefaultHosts returns the host files under home for the given OS.
func DefaultHosts(home, goos string) []HostFile {
	desktop := filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	if goos == "darwin" {
		desktop = filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	}
	return []HostFile{
		{Name: HostClaudeDesktop, Path: desktop},
		{Name: HostClaudeCode, Path: filepath.Join(home, ".claude.json")},
		{Name: HostCursor, Path: filepath.Join(home, ".cursor", "mcp.json")},
	}
}

// Prober implements domain.MCPProbe.
type Prober struct {
	hosts  []HostFile
	cost   domain.MCPConfig
	schema *jsonschema.Schema
	logger *zap.Logger
}

// New creates a Prober over the current user's default host files. Without
// a home directory every host is reported as not found.
func New(cost domain.MCPConfig, logger *zap.Logger) (*Prober, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		if logger != nil {
			logger.Debug("home directory unknown, skipping host configs", zap.Error(err))
		}
		return NewWithHosts(cost, logger, unresolvedHosts()...)
	}
	return NewWithHosts(cost, logger, DefaultHosts(home, runtime.GOOS)...)
}

func unresolvedHosts() []HostFile {
	return []HostFile{{Name: HostClaudeDesktop}, {Name: HostClaudeCode}, {Name: HostCursor}}
}

// NewWithHosts creates a Prober over explicit host files.
func NewWithHosts(cost domain.MCPConfig, logger *zap.Logger, hosts ...HostFile) (*Prober, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(hostConfigSchema)
	if err != nil {
		return nil, fmt.Errorf("compile host config schema: %w", err)
	}
	return &Prober{hosts: hosts, cost: cost, schema: schema, logger: logger}, nil
}

func (p *Prober) MCP(_ context.Context) domain.MCPFacts {
	f := domain.MCPFacts{Hosts: make([]domain.MCPHost, 0, len(p.hosts))}
	for _, hf := range p.hosts {
		h := p.readHost(hf)
		f.Hosts = append(f.Hosts, h)
		f.Total += h.Count()
	}
	f.Unique = len(union(f.Hosts))
	f.Parity = Parity(f.Hosts)

	f.MemoryMB = f.Total * p.cost.PerServerMemoryMB
	f.StartupMs = f.Total * p.cost.PerServerStartupMs
	f.FailurePercent = FailurePercent(p.cost.PerServerFailureRate, f.Total)
	return f
}

func (p *Prober) readHost(hf HostFile) domain.MCPHost {
	h := domain.MCPHost{Name: hf.Name, Path: hf.Path}
	if hf.Path == "" {
		return h
	}

	data, err := os.ReadFile(hf.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			p.logger.Debug("host config unreadable", zap.String("path", hf.Path), zap.Error(err))
		}
		return h
	}
	h.Found = true

	var doc struct {
		MCPServers map[string]json.RawMessage `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		p.logger.Debug("host config is not valid JSON", zap.String("path", hf.Path), zap.Error(err))
		h.Malformed = true
		return h
	}
	if result := p.schema.ValidateJSON(data); !result.IsValid() {
		p.logger.Debug("host config failed schema validation", zap.String("path", hf.Path), zap.Any("errors", result.Errors))
		h.Malformed = true
		return h
	}

	for name := range doc.MCPServers {
		h.Servers = append(h.Servers, name)
	}
	sort.Strings(h.Servers)
	return h
}

// Parity is the Jaccard similarity (percent) of server names across hosts
// that declare at least one server. Fewer than two such hosts is full parity.
func Parity(hosts []domain.MCPHost) int {
	var sets []map[string]bool
	for _, h := range hosts {
		if h.Count() == 0 {
			continue
		}
		s := make(map[string]bool, h.Count())
		for _, name := range h.Servers {
			s[name] = true
		}
		sets = append(sets, s)
	}
	if len(sets) < 2 {
		return 100
	}

	all := union(hosts)
	common := 0
	for name := range all {
		inAll := true
		for _, s := range sets {
			if !s[name] {
				inAll = false
				break
			}
		}
		if inAll {
			common++
		}
	}
	return int(math.Round(float64(common) * 100 / float64(len(all))))
}

// FailurePercent is the chance that at least one of n servers fails to
// start, given an independent per-server failure rate.
func FailurePercent(rate float64, n int) float64 {
	if n <= 0 || rate <= 0 {
		return 0
	}
	p := 1 - math.Pow(1-rate, float64(n))
	return math.Round(p*1000) / 10
}

func union(hosts []domain.MCPHost) map[string]bool {
	all := make(map[string]bool)
	for _, h := range hosts {
		for _, name := range h.Servers {
			all[name] = true
		}
	}
	return all
}
